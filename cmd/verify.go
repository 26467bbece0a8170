package cmd

import (
	"fmt"

	"github.com/encodeous/loom/core"
	"github.com/encodeous/loom/state"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verifies the network config and prints the links it evaluates to",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := core.ReadNetworkConfig(state.NetworkConfigPath)
		if err != nil {
			panic(err)
		}
		err = state.NetworkConfigValidator(cfg)
		if err != nil {
			panic(err)
		}
		links, err := cfg.Links()
		if err != nil {
			panic(err)
		}

		println("Config is valid")
		for _, link := range links {
			a := cfg.TryGetStop(link.V1)
			b := cfg.TryGetStop(link.V2)
			fmt.Printf("%s <-> %s (cost: %d)\n", link.V1, link.V2,
				state.NewStop(a.Name, a.Position).DistanceTo(state.NewStop(b.Name, b.Position)))
		}
	},
	GroupID: "lm",
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
