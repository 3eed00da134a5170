package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"golang.org/x/term"

	"tradetools/config"
	"tradetools/doctor"
	"tradetools/log"
	"tradetools/shortcut"
	"tradetools/shutdown"
	"tradetools/toggle"
	"tradetools/trade"
	"tradetools/window"
)

var version = "dev"

type options struct {
	gui         bool
	test        bool
	doctor      bool
	selfTest    bool
	hidden      bool
	writeConfig bool
	version     bool
	crash       bool
	configPath  string
	logPath     string
}

func parseOptions() options {
	var o options
	flag.BoolVar(&o.gui, "gui", false, "Run the desktop window (requires a build with -tags gui)")
	flag.BoolVar(&o.test, "test", false, "Test mode (headless, stdin-driven)")
	flag.BoolVar(&o.doctor, "doctor", false, "Run system diagnostics and exit")
	flag.BoolVar(&o.selfTest, "selftest", false, "With -doctor: synthesize the shortcut instead of waiting for a key press")
	flag.BoolVar(&o.hidden, "hidden", false, "Start with the main window hidden")
	flag.BoolVar(&o.writeConfig, "writeconfig", false, "Write the current configuration to the config path and exit")
	flag.BoolVar(&o.version, "version", false, "Print version and exit")
	flag.BoolVar(&o.crash, "crash", false, "Trigger synthetic panic for testing crash logging")
	flag.StringVar(&o.configPath, "config", "", "config file path (default: OS config dir)")
	flag.StringVar(&o.logPath, "logpath", "", "log directory path (default: OS-specific location, use ./ for current dir)")
	flag.Parse()
	return o
}

// prepare loads config and logging. One-shot flags exit from here.
func prepare(o options) *config.Config {
	if o.version {
		fmt.Printf("tradetools %s\n", version)
		os.Exit(0)
	}

	cfgPath, err := config.ResolvePath(o.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to resolve config path: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if o.hidden {
		cfg.Window.StartHidden = true
	}
	if o.writeConfig {
		if err := cfg.Save(cfgPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", cfgPath)
		os.Exit(0)
	}

	logFlag := o.logPath
	if logFlag == "" {
		logFlag = cfg.Log.Path
	}
	logPath, err := log.ResolveDir(logFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to resolve log directory: %v\n", err)
		os.Exit(1)
	}
	log.SetDir(logPath)

	if err := log.EnsureDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log directory: %v\n", err)
	}

	crashPath := filepath.Join(log.Dir(), "crash_log.txt")
	crashFile, err := os.OpenFile(crashPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		fmt.Fprintf(crashFile, "\n=== Session %s [pid=%d] ===\n", time.Now().Format("2006-01-02 15:04:05"), os.Getpid())
		debug.SetCrashOutput(crashFile, debug.CrashOptions{})
	}

	if o.crash {
		panic("TEST CRASH: synthetic panic to verify crash logging")
	}

	if o.doctor {
		os.Exit(doctor.Run(shortcut.Default(), o.selfTest))
	}

	if err := log.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not init logging: %v\n", err)
	}
	return cfg
}

// loadPrices opens the price list. A broken file is reported and the defaults
// are used in memory; the file is left alone until the user saves.
func loadPrices(cfg *config.Config) (*trade.PriceList, string) {
	path, err := trade.ResolvePath(cfg.Prices.Path)
	if err != nil {
		log.Warnf("resolving price file: %v", err)
		path = filepath.Join(log.Dir(), "prices.yaml")
	}
	prices, err := trade.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v; using default prices\n", err)
		log.Warnf("loading prices: %v", err)
		prices, _ = trade.NewPriceList(trade.Defaults())
	}
	return prices, path
}

func hintText(b shortcut.Binding) string {
	return fmt.Sprintf("press %s to show or hide", b)
}

// startShortcut claims the global shortcut and wires it to the main window.
func startShortcut(ctx context.Context, ref window.Ref, dispatch window.Dispatcher, opts ...toggle.Option) (*toggle.Controller, error) {
	src := shortcut.New(shortcut.Default())
	ctrl, err := toggle.Setup(ctx, src, ref, dispatch, opts...)
	if err != nil {
		log.Errorf("shortcut register error: %v", err)
		return nil, err
	}
	return ctrl, nil
}

func reportStartupError(err error) {
	var regErr *shortcut.RegistrationError
	if errors.As(err, &regErr) {
		fmt.Fprintf(os.Stderr, "Error: could not register %s: %v\n", regErr.Binding, regErr.Err)
		if errors.Is(err, shortcut.ErrNoKeyboard) {
			fmt.Fprintln(os.Stderr, "Run `tradetools -doctor` for details.")
		}
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}

// run hosts the main window in the terminal.
func run(o options, cfg *config.Config) {
	defer log.Close()

	if o.test {
		runTestMode(cfg)
		return
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: no window surface: run in a terminal or pass -gui")
		os.Exit(1)
	}

	binding := shortcut.Default()
	log.SessionStart("terminal", binding.String())

	ctx, cancel := shutdown.Context(context.Background())
	defer cancel()

	prices, pricesPath := loadPrices(cfg)
	surface := newTermSurface(cfg.Window.Title, hintText(binding), cfg.Window.StartHidden, prices, pricesPath)
	ctrl, err := startShortcut(ctx, surface.Ref(), surface.Dispatch, toggle.WithObserver(surface.Observe))
	if err != nil {
		reportStartupError(err)
		os.Exit(1)
	}

	go func() {
		<-ctx.Done()
		surface.Quit()
	}()

	if err := surface.Run(); err != nil {
		log.Errorf("terminal surface error: %v", err)
	}
	cancel()
	log.SessionEnd(ctrl.Toggles())
}
