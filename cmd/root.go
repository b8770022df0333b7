package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "probe",
		Short: "Benchmark harness for measuring proactive agent behavior",
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "probe.yaml", "config file path")
	root.AddCommand(newRunCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newReportCmd())
	root.AddCommand(newHistoryCmd())
	root.AddCommand(newValidateCmd())
	return root
}
