package cmd

import (
	"fmt"

	"github.com/encodeous/loom/core"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:     "inspect",
	Aliases: []string{"i"},
	Short:   "Inspects the converged state of the configured network",
	Run: func(cmd *cobra.Command, args []string) {
		s, err := offlineState()
		if err != nil {
			fmt.Println("Error:", err.Error())
			return
		}
		defer core.Stop(s)
		fmt.Print(core.RenderState(s))
	},
	GroupID: "lm",
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
