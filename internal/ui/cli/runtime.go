package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"littlelemon/internal/api"
	coreapp "littlelemon/internal/core/app"
	"littlelemon/internal/core/config"
	"littlelemon/internal/data/menu"
	"littlelemon/internal/shared/observability"
)

func Run(args []string) int {
	opts, err := parseOptions(args)
	if err != nil {
		return 2
	}

	if opts.version {
		fmt.Printf("littlelemon v%s\n", versionString)
		return 0
	}

	if err := applyModeOptions(&opts); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}

	if err := config.LoadDotEnv(opts.envPath); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", opts.envPath, err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to detect working directory: %v\n", err)
		return 1
	}

	cfg, cfgPath, err := loadConfig(opts.configPath, cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return 1
	}

	paths, err := config.ResolvePaths(cfg, cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to resolve runtime paths: %v\n", err)
		return 1
	}

	levelVar, cleanupLogs := configureLogging(opts.ui, opts.verbose, cfg.Logging.Level, paths.LogPath)
	defer cleanupLogs()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingOptions{
		Enabled:      cfg.Observability.EnableTracing,
		OTLPEndpoint: cfg.Observability.OTLPEndpoint,
		Insecure:     cfg.Observability.OTLPInsecure,
		SampleRatio:  cfg.Observability.SampleRatio,
	})
	if err != nil {
		slog.Error("failed to initialize tracing", "error", err)
		return 1
	}
	defer shutdownWithTimeout(shutdownTracing)

	app, err := coreapp.New(cfg, cwd)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		return 1
	}
	defer app.Close(context.Background())

	if !opts.noSeed {
		if _, err := app.Seed(ctx); err != nil {
			slog.Error("seeding menu failed", "error", err)
			return 1
		}
	}

	if opts.list {
		return runListCommand(ctx, app, opts, os.Stdout)
	}

	if cfgPath != "" {
		watcher := config.NewWatcher(cfgPath, func(next *config.Config) {
			app.ApplyConfig(next)
			if !opts.verbose {
				if level, err := config.ParseLogLevel(next.Logging.Level); err == nil {
					levelVar.Set(level)
				}
			}
		})
		if err := watcher.Start(ctx); err != nil {
			slog.Warn("config watcher unavailable", "path", cfgPath, "error", err)
		} else {
			defer watcher.Stop()
		}
	}

	if opts.serve || cfg.API.Enabled {
		server, err := api.NewServer(ctx, api.Options{
			Address:        cfg.API.Address,
			RateLimit:      cfg.API.RateLimit,
			Burst:          cfg.API.Burst,
			RequestTimeout: cfg.API.RequestTimeout,
		}, app.MenuService(), coreapp.NewHealthService(app))
		if err != nil {
			slog.Error("failed to build menu api", "error", err)
			return 1
		}
		if err := server.Start(ctx); err != nil {
			slog.Error("failed to start menu api", "error", err)
			return 1
		}
		defer shutdownWithTimeout(server.Stop)
	}

	if opts.ui {
		if err := runUI(ctx, app); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("failed to run UI", "error", err)
			return 1
		}
		return 0
	}

	<-ctx.Done()
	slog.Info("shutting down")
	return 0
}

func applyModeOptions(opts *cliOptions) error {
	if opts.list && (opts.ui || opts.serve) {
		return fmt.Errorf("--list cannot be combined with --ui or --serve")
	}
	if !opts.list && (opts.category != "" || opts.query != "") {
		return fmt.Errorf("--category and --q require --list")
	}
	if len(opts.args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", opts.args)
	}
	if !opts.list && !opts.ui && !opts.serve {
		opts.ui = true
	}
	return nil
}

func runListCommand(ctx context.Context, app *coreapp.App, opts cliOptions, out io.Writer) int {
	filter := menu.Filter{
		Categories: splitCategories(opts.category),
		Search:     opts.query,
	}
	items, err := app.MenuService().List(ctx, filter)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	fmt.Fprintf(out, "Menu (%d):\n", len(items))
	for _, item := range items {
		fmt.Fprintf(out, "  %3d  %-24s %7.2f  %s\n", item.ID, item.Name, item.Price, item.Category)
	}
	return 0
}

// loadConfig reads path. A missing file at the default location falls back
// to built-in defaults plus env overrides, with no file to watch.
func loadConfig(path, cwd string) (*config.Config, string, error) {
	resolved := config.ResolveRelative(cwd, path)
	cfg, err := config.Load(resolved)
	if err == nil {
		return cfg, resolved, nil
	}
	if !os.IsNotExist(err) || path != defaultConfigPath {
		return nil, "", err
	}

	example := filepath.Join(cwd, "littlelemon.example.toml")
	if cfg, exErr := config.Load(example); exErr == nil {
		return cfg, "", nil
	}

	cfg = config.DefaultConfig()
	config.ApplyEnvOverrides(cfg)
	if err := config.Validate(cfg); err != nil {
		return nil, "", err
	}
	return cfg, "", nil
}

func configureLogging(uiMode, verbose bool, level, logPath string) (*slog.LevelVar, func()) {
	levelVar := new(slog.LevelVar)
	parsed, err := config.ParseLogLevel(level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	levelVar.Set(parsed)
	if verbose {
		levelVar.Set(slog.LevelDebug)
	}

	output := io.Writer(os.Stdout)
	closeFn := func() {}
	if uiMode {
		// stdout belongs to the TUI.
		if err := os.MkdirAll(filepath.Dir(logPath), 0o700); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to create log dir for %s: %v\n", logPath, err)
			output = io.Discard
		} else if fi, err := os.Lstat(logPath); err == nil && (fi.Mode()&os.ModeSymlink) != 0 {
			fmt.Fprintf(os.Stderr, "warning: refusing to write logs to symlink path %s\n", logPath)
			output = io.Discard
		} else {
			f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
			if err == nil {
				output = f
				closeFn = func() { _ = f.Close() }
			} else {
				fmt.Fprintf(os.Stderr, "warning: failed to open log file %s: %v\n", logPath, err)
				output = io.Discard
			}
		}
	}

	logger := slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{Level: levelVar}))
	slog.SetDefault(logger)
	return levelVar, closeFn
}

func shutdownWithTimeout(fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := fn(ctx); err != nil {
		slog.Warn("shutdown step failed", "error", err)
	}
}
