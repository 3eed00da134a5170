package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"tradetools/config"
	"tradetools/log"
	"tradetools/shortcut"
	"tradetools/toggle"
	"tradetools/window"
)

// runTestMode drives the controller from stdin with a fake shortcut source
// and an in-memory window, printing one line per handled event.
func runTestMode(cfg *config.Config) {
	binding := shortcut.Default()
	log.SessionStart("test", binding.String())

	hk := shortcut.NewFake(binding)
	win := window.NewFake(!cfg.Window.StartHidden)

	var attached atomic.Bool
	attached.Store(true)
	ref := func() (window.Window, bool) {
		if !attached.Load() {
			return nil, false
		}
		return win, true
	}

	handled := make(chan toggle.Result, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctrl, err := toggle.Setup(ctx, hk, ref, nil, toggle.WithObserver(func(r toggle.Result) {
		handled <- r
	}))
	if err != nil {
		reportStartupError(err)
		os.Exit(1)
	}

	fmt.Printf("ready binding=%s visible=%v\n", binding, win.Visible())

	waitHandled := func() {
		select {
		case r := <-handled:
			printResult(r, win)
		case <-time.After(2 * time.Second):
			fmt.Println("timeout")
		}
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		cmd := strings.TrimSpace(scanner.Text())
		switch cmd {
		case "":
		case "KEYDOWN":
			hk.SimKeydown()
			waitHandled()
		case "KEYUP":
			hk.SimKeyup()
			waitHandled()
		case "FAILQUERY":
			win.QueryErr = window.ErrNoWindow
		case "FAILFOCUS":
			win.FocusErr = window.ErrFocusDenied
		case "FAILSHOW":
			win.ShowErr = window.ErrNoWindow
		case "FAILHIDE":
			win.HideErr = window.ErrNoWindow
		case "CLEAR":
			win.QueryErr, win.FocusErr, win.ShowErr, win.HideErr = nil, nil, nil, nil
		case "DETACH":
			attached.Store(false)
		case "ATTACH":
			attached.Store(true)
		case "STATE":
			fmt.Printf("state visible=%v focused=%v toggles=%d\n", win.Visible(), win.Focused(), ctrl.Toggles())
		case "QUIT":
			log.SessionEnd(ctrl.Toggles())
			return
		default:
			if strings.HasPrefix(cmd, "SLEEP ") {
				if ms, err := strconv.Atoi(cmd[6:]); err == nil {
					time.Sleep(time.Duration(ms) * time.Millisecond)
				}
				continue
			}
			fmt.Printf("unknown %q\n", cmd)
		}
	}
	log.SessionEnd(ctrl.Toggles())
}

func printResult(r toggle.Result, win *window.Fake) {
	line := fmt.Sprintf("event=%s resolved=%v action=%s visible=%v focused=%v",
		r.State, r.Resolved, r.Action, win.Visible(), win.Focused())
	for _, e := range []struct {
		name string
		err  error
	}{{"query_err", r.QueryErr}, {"command_err", r.CommandErr}, {"focus_err", r.FocusErr}} {
		if e.err != nil {
			line += fmt.Sprintf(" %s=%q", e.name, e.err)
		}
	}
	fmt.Println(line)
}
