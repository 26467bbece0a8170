package cmd

import (
	"github.com/encodeous/loom/core"
	"github.com/encodeous/loom/state"
	"github.com/spf13/cobra"
)

var (
	localPath string
	logPath   string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run loom",
	Long:  `This will run loom on the current host, building every configured stop and routing between them until interrupted.`,
	Run: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		core.Bootstrap(state.NetworkConfigPath, localPath, logPath, verbose)
	},
	GroupID: "lm",
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("verbose", "v", false, "Verbose output")
	runCmd.Flags().StringVarP(&localPath, "local", "l", "", "Path to the process-local config")
	runCmd.Flags().StringVar(&logPath, "log", "", "Also write logs to this file")
	runCmd.Flags().BoolVarP(&state.DBG_log_sync, "lsync", "s", false, "Write routing tables to console after every topology application")
	runCmd.Flags().BoolVarP(&state.DBG_trace, "trace", "t", false, "Write a runtime trace to trace.out")
	runCmd.Flags().BoolVarP(&state.DBG_debug, "pprof", "d", false, "Serve pprof on 0.0.0.0:6060")
}
