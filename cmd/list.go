package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/probelab/probe/internal/scenario"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured agents and available scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			fmt.Println("Agents:")
			for _, a := range cfg.Agents {
				if a.Kind == "container" {
					fmt.Printf("  - %s: %s (container, image: %s)\n", a.ID, a.Name, a.Image)
				} else {
					fmt.Printf("  - %s: %s (%s)\n", a.ID, a.Name, a.Kind)
				}
			}

			fmt.Println("\nBuilt-in scenarios:")
			for _, def := range scenario.Builtins() {
				fmt.Printf("  - %s [%s, %d bottlenecks]: %s\n",
					def.ID, def.Difficulty, len(def.Bottlenecks), def.Description)
			}

			var files []string
			for _, s := range cfg.Scenarios {
				if s.File != "" {
					files = append(files, s.File)
				}
			}
			if len(files) > 0 {
				fmt.Println("\nScenario files:")
				for _, f := range files {
					fmt.Printf("  - %s\n", f)
				}
			}
			return nil
		},
	}
}
