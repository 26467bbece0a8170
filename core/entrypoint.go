package core

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"path"
	"reflect"
	"runtime"
	"runtime/trace"
	"syscall"
	"time"

	"github.com/encodeous/loom/perf"
	"github.com/encodeous/loom/state"
	"github.com/encodeous/tint"
	"github.com/goccy/go-yaml"
	slogmulti "github.com/samber/slog-multi"
)

func setupDebugging() func() {
	teardown := func() {}
	if state.DBG_trace {
		f, err := os.Create("trace.out")
		if err != nil {
			log.Fatal(err)
		}
		if err := trace.Start(f); err == nil {
			log.Println("started tracing")
			teardown = func() {
				trace.Stop()
				f.Close()
			}
		}
	}
	if state.DBG_debug {
		go func() {
			log.Println(http.ListenAndServe("0.0.0.0:6060", nil))
		}()
	}
	return teardown
}

func ReadNetworkConfig(configPath string) (*state.NetworkCfg, error) {
	var cfg state.NetworkCfg
	file, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	err = yaml.Unmarshal(file, &cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func ReadLocalConfig(localPath string) (*state.LocalCfg, error) {
	var cfg state.LocalCfg
	file, err := os.ReadFile(localPath)
	if err != nil {
		return nil, err
	}
	err = yaml.Unmarshal(file, &cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Bootstrap manages the lifetime of the whole process: read and validate the
// configs, then run the network until shutdown.
func Bootstrap(configPath, localPath, logPath string, verbose bool) {
	defer setupDebugging()()
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	ncfg, err := ReadNetworkConfig(configPath)
	if err != nil {
		panic(err)
	}
	lcfg := &state.LocalCfg{}
	if localPath != "" {
		lcfg, err = ReadLocalConfig(localPath)
		if err != nil {
			panic(err)
		}
	}
	if logPath != "" {
		lcfg.LogPath = logPath
	}

	err = state.NetworkConfigValidator(ncfg)
	if err != nil {
		panic(err)
	}
	err = state.LocalConfigValidator(lcfg)
	if err != nil {
		panic(err)
	}
	err = Start(*ncfg, *lcfg, level, configPath, nil)
	if err != nil {
		panic(err)
	}
}

func Start(ncfg state.NetworkCfg, lcfg state.LocalCfg, logLevel slog.Level, configPath string, initState **state.State) error {
	dispatch := make(chan func(env *state.State) error, 128)

	handlers := make([]slog.Handler, 0)
	handlers = append(handlers,
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:        logLevel,
			AddSource:    false,
			CustomPrefix: "loom",
			ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
				if attr.Key == "time" {
					return slog.Attr{}
				}
				return attr
			},
		}))

	if lcfg.LogPath != "" {
		err := os.MkdirAll(path.Dir(lcfg.LogPath), 0700)
		if err != nil {
			return err
		}
		f, err := os.OpenFile(lcfg.LogPath, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0700)
		if err != nil {
			return err
		}
		handlers = append(handlers, slog.NewTextHandler(f, &slog.HandlerOptions{Level: logLevel}))
	}

	logger := slog.New(
		slogmulti.Fanout(handlers...))

	ctx, cancel := context.WithCancelCause(context.Background())

	s := state.State{
		Modules: make(map[string]state.LmModule),
		Env: &state.Env{
			Context:         ctx,
			Cancel:          cancel,
			DispatchChannel: dispatch,
			NetworkCfg:      ncfg,
			LocalCfg:        lcfg,
			Log:             logger,
			ConfigPath:      configPath,
		},
	}
	if initState != nil {
		*initState = &s
	}

	s.Log.Info("init modules")
	err := initModules(&s)
	if err != nil {
		return err
	}
	s.Log.Info("init modules complete")

	// first topology application runs as the first dispatch
	tp := Get[*Topology](&s)
	s.Dispatch(func(s *state.State) error {
		return tp.ApplyNetwork(s, ncfg)
	})

	if lcfg.DebugBind != "" {
		go func() {
			s.Log.Info("debug server listening", "bind", lcfg.DebugBind)
			err := http.ListenAndServe(lcfg.DebugBind, nil)
			if err != nil {
				s.Log.Warn("debug server stopped", "err", err)
			}
		}()
	}

	s.Log.Info("Loom has been initialized. To gracefully exit, send SIGINT or Ctrl+C.")

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-c:
			s.Cancel(errors.New("received shutdown signal"))
		case <-ctx.Done():
			return
		}
	}()

	return MainLoop(&s, dispatch)
}

// BuildOffline constructs a fully applied, converged network without running
// the main loop. Everything happens on the calling goroutine. The caller owns
// the returned state and must Stop it.
func BuildOffline(ncfg state.NetworkCfg, logger *slog.Logger) (*state.State, error) {
	ctx, cancel := context.WithCancelCause(context.Background())
	dispatch := make(chan func(s *state.State) error, 128)
	s := &state.State{
		Modules: make(map[string]state.LmModule),
		Env: &state.Env{
			Context:         ctx,
			Cancel:          cancel,
			DispatchChannel: dispatch,
			NetworkCfg:      ncfg,
			Log:             logger,
		},
	}
	if err := initModules(s); err != nil {
		Stop(s)
		return nil, err
	}
	tp := Get[*Topology](s)
	if err := tp.ApplyNetwork(s, ncfg); err != nil {
		Stop(s)
		return nil, err
	}
	return s, nil
}

func initModules(s *state.State) error {
	var modules []state.LmModule
	modules = append(modules, &LoomRouter{})
	modules = append(modules, &Topology{})

	for _, module := range modules {
		s.Modules[reflect.TypeOf(module).String()] = module
		if err := module.Init(s); err != nil {
			return err
		}
	}
	return nil
}

func MainLoop(s *state.State, dispatch <-chan func(*state.State) error) error {
	s.Log.Debug("started main loop")
	s.Started.Store(true)
	for {
		select {
		case fun := <-dispatch:
			if fun == nil {
				goto endLoop
			}
			start := time.Now()
			err := fun(s)
			if err != nil {
				s.Log.Error("error occurred during dispatch: ", "error", err)
				s.Cancel(err)
			}
			elapsed := time.Since(start)
			perf.DispatchLatency.Add(float64(elapsed.Microseconds()))
			if elapsed > time.Millisecond*4 {
				s.Log.Warn("dispatch took a long time!", "fun", runtime.FuncForPC(reflect.ValueOf(fun).Pointer()).Name(), "elapsed", elapsed, "len", len(dispatch))
			}
		case <-s.Context.Done():
			goto endLoop
		}
	}
endLoop:
	s.Log.Info("stopped main loop", "reason", context.Cause(s.Context).Error())
	Stop(s)
	return nil
}

func Stop(s *state.State) {
	if s.Stopping.Swap(true) {
		return // don't stop twice
	}
	s.Cancel(context.Canceled)
	if s.DispatchChannel != nil {
		close(s.DispatchChannel)
		s.DispatchChannel = nil
	}
	s.Log.Info("cleaning up modules")
	for moduleName, module := range s.Modules {
		err := module.Cleanup(s)
		if err != nil {
			s.Log.Error("error occurred during Stop: ", "module", moduleName, "error", err)
		}
	}
	s.Log.Info("stopped")
}
