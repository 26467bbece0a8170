package cmd

import (
	"log/slog"
	"os"

	"github.com/encodeous/loom/core"
	"github.com/encodeous/loom/state"
	"github.com/encodeous/tint"
)

// offlineState builds and converges the configured network on the calling
// goroutine, for commands that only want to look at the result.
func offlineState() (*state.State, error) {
	cfg, err := core.ReadNetworkConfig(state.NetworkConfigPath)
	if err != nil {
		return nil, err
	}
	err = state.NetworkConfigValidator(cfg)
	if err != nil {
		return nil, err
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:        slog.LevelWarn,
		CustomPrefix: "loom",
	}))
	return core.BuildOffline(*cfg, logger)
}
