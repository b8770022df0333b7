package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/probelab/probe/internal/config"
	"github.com/probelab/probe/internal/scenario"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the config file and every scenario it references",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			fmt.Printf("%s: config OK (%d agents, %d scenarios)\n",
				cfgFile, len(cfg.Agents), len(cfg.Scenarios))

			for _, sel := range cfg.Scenarios {
				switch {
				case sel.File != "":
					def, err := scenario.Load(sel.File)
					if err != nil {
						return err
					}
					fmt.Printf("%s: scenario %s OK (%d bottlenecks, %d actions)\n",
						sel.File, def.ID, len(def.Bottlenecks), len(def.Actions))
				default:
					if _, ok := scenario.ByID(sel.ID); !ok {
						return fmt.Errorf("unknown scenario id %q", sel.ID)
					}
					fmt.Printf("builtin scenario %s OK\n", sel.ID)
				}
			}
			return nil
		},
	}
}
