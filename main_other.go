//go:build !linux

package main

import (
	"runtime"

	"golang.design/x/hotkey/mainthread"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	o := parseOptions()
	cfg := prepare(o)
	if o.gui {
		initGUI(o, cfg) // fyne takes the main thread
		return
	}
	// Cocoa hotkeys need the main thread's event loop.
	mainthread.Init(func() { run(o, cfg) })
}
