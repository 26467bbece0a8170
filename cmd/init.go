package cmd

import (
	"fmt"
	"os"

	"github.com/encodeous/loom/state"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new [stop]...",
	Short: "Create a network configuration",
	Long:  `Creates a starter network config with the named stops placed along a line and linked in a chain. Edit the positions and the graph afterwards.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 2 {
			_ = cmd.Usage()
			return
		}
		for _, name := range args {
			err := state.NameValidator(name)
			if err != nil {
				fmt.Printf("Invalid name: %s\n", name)
				os.Exit(-1)
			}
		}

		cfg := state.NetworkCfg{}
		for i, name := range args {
			cfg.Stops = append(cfg.Stops, state.StopCfg{
				Name:     state.StopName(name),
				Position: state.Point{X: i * 10, Y: 0},
			})
		}
		for i := 1; i < len(args); i++ {
			cfg.Graph = append(cfg.Graph, fmt.Sprintf("%s, %s", args[i-1], args[i]))
		}

		ncfg, err := yaml.Marshal(&cfg)
		if err != nil {
			panic(err)
		}

		outPath := cmd.Flag("output").Value.String()
		err = os.WriteFile(outPath, ncfg, 0700)
		if err != nil {
			panic(err)
		}
	},
	GroupID: "init",
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().StringP("output", "o", state.NetworkConfigPath, "network config output file path")
}
