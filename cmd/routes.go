package cmd

import (
	"fmt"

	"github.com/encodeous/loom/core"
	"github.com/encodeous/loom/state"
	"github.com/spf13/cobra"
)

var routesCmd = &cobra.Command{
	Use:     "routes [from] [to]",
	Aliases: []string{"r"},
	Short:   "Prints the cheapest path between stops",
	Long:    `Without arguments, prints the cheapest path between every pair of stops. With two stop names, prints only the path between them.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 0 && len(args) != 2 {
			_ = cmd.Usage()
			return
		}
		s, err := offlineState()
		if err != nil {
			fmt.Println("Error:", err.Error())
			return
		}
		defer core.Stop(s)

		if len(args) == 2 {
			from := s.GetStop(state.StopName(args[0]))
			to := s.GetStop(state.StopName(args[1]))
			if from == nil || to == nil {
				fmt.Println("Error: no such stop")
				return
			}
			path, err := core.FollowRoute(from, to)
			if err != nil {
				fmt.Println("Error:", err.Error())
				return
			}
			fmt.Println(path.String())
			return
		}

		paths, err := core.AllPaths(s.Stops)
		if err != nil {
			fmt.Println("Error:", err.Error())
			return
		}
		for _, path := range paths {
			fmt.Println(path.String())
		}
	},
	GroupID: "lm",
}

func init() {
	rootCmd.AddCommand(routesCmd)
}
