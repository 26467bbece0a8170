package cmd

import (
	"os"

	"github.com/encodeous/loom/state"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "loom",
	Short: "Loom Transit Routing CLI",
	Long: `Loom computes routes between the stops of a transit network.
Every stop keeps a table of the cheapest known way to reach every other stop, and the tables are synchronised between neighbouring stops until no route can be improved.`,
	// Uncomment the following line if your bare application
	// has an action associated with it:
	// Run: func(cmd *cobra.Command, args []string) { },
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Here you will define your flags and configuration settings.
	// Cobra supports persistent flags, which, if defined here,
	// will be global for your application.

	rootCmd.AddGroup(&cobra.Group{
		ID:    "init",
		Title: "Initialize Loom",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "lm",
		Title: "Loom Commands",
	})
	rootCmd.PersistentFlags().StringVarP(&state.NetworkConfigPath, "config", "c", state.NetworkConfigPath, "network topology config")
}
