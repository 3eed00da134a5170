package doctor

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/term"

	"tradetools/shortcut"
)

const (
	pressTimeout = 10 * time.Second
	synthTimeout = 3 * time.Second
)

// Run executes diagnostic checks and returns an exit code (0=all pass, 1=any fail).
// With selfTest the key press is synthesized instead of waiting for the user.
func Run(b shortcut.Binding, selfTest bool) int {
	resetTerminal()
	setupInterruptHandler()

	fmt.Println("tradetools doctor - system diagnostics")
	fmt.Println("======================================")

	allPass := checkBackend(b)
	if allPass && !checkDelivery(b, selfTest) {
		allPass = false
	}

	fmt.Println()
	if allPass {
		fmt.Println("All checks passed!")
		return 0
	}
	fmt.Println("Some checks failed. See details above.")
	return 1
}

func checkBackend(b shortcut.Binding) bool {
	fmt.Println()
	fmt.Println("[1/2] Shortcut backend")
	msg, err := shortcut.Diagnose(b)
	if err != nil {
		fmt.Printf("  FAIL: %v\n", err)
		return false
	}
	fmt.Printf("  PASS: %s\n", msg)
	return true
}

func checkDelivery(b shortcut.Binding, selfTest bool) bool {
	fmt.Println()
	fmt.Println("[2/2] Shortcut delivery")

	if !selfTest && !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Println("  SKIP: not attached to a terminal (use -selftest)")
		return true
	}

	src := shortcut.New(b)
	if err := src.Register(); err != nil {
		fmt.Printf("  FAIL: could not register %s: %v\n", b, err)
		return false
	}
	defer src.Unregister()

	timeout := pressTimeout
	if selfTest {
		timeout = synthTimeout
		fmt.Printf("Synthesizing %s...\n", b)
		if err := synthesize(b); err != nil {
			fmt.Printf("  FAIL: could not synthesize key press: %v\n", err)
			return false
		}
	} else {
		fmt.Printf("Press %s...\n", b)
	}

	select {
	case <-src.Keydown():
		fmt.Println("  PASS: shortcut press detected")
		// Wait for keyup so the release does not leak into the terminal
		select {
		case <-src.Keyup():
		case <-time.After(5 * time.Second):
		}
		resetTerminal()
		return true
	case <-time.After(timeout):
		fmt.Println("  FAIL: timeout waiting for shortcut")
		return false
	}
}
