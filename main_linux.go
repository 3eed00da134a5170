//go:build linux

package main

func main() {
	o := parseOptions()
	cfg := prepare(o)
	if o.gui {
		initGUI(o, cfg)
		return
	}
	run(o, cfg)
}
