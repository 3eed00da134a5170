//go:build integration

package test_test

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

var testBinary string

func TestMain(m *testing.M) {
	testBinary = os.Getenv("TRADETOOLS_TEST_BIN")
	if testBinary == "" {
		fmt.Fprintln(os.Stderr, "TRADETOOLS_TEST_BIN not set; build the binary and point the variable at it")
		os.Exit(1)
	}
	os.Exit(m.Run())
}

func cmds(parts ...string) string {
	return strings.Join(parts, "\n") + "\n"
}

// runApp runs the binary in test mode and returns its stdout lines and log dir.
func runApp(t *testing.T, stdin string, args ...string) ([]string, string) {
	t.Helper()
	logDir := t.TempDir()
	cmdArgs := append([]string{
		"-test",
		"-logpath", logDir,
		"-config", filepath.Join(logDir, "missing.yaml"),
	}, args...)

	cmd := exec.Command(testBinary, cmdArgs...)
	cmd.Stdin = strings.NewReader(stdin)
	cmd.Env = os.Environ()

	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("tradetools exited with error: %v\noutput: %s", err, out)
	}
	return strings.Split(strings.TrimSpace(string(out)), "\n"), logDir
}

func readLog(t *testing.T, logDir, filename string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(logDir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return ""
		}
		t.Fatalf("failed to read %s: %v", filename, err)
	}
	return string(data)
}

func requireLine(t *testing.T, lines []string, i int, parts ...string) {
	t.Helper()
	if i >= len(lines) {
		t.Fatalf("line %d missing, output: %q", i, lines)
	}
	for _, p := range parts {
		if !strings.Contains(lines[i], p) {
			t.Errorf("line %d = %q, missing %q", i, lines[i], p)
		}
	}
}

func TestStartsVisible(t *testing.T) {
	lines, _ := runApp(t, cmds("QUIT"))
	requireLine(t, lines, 0, "ready", "binding=Ctrl+Shift+P", "visible=true")
}

func TestPressTogglesAndReleaseIsIgnored(t *testing.T) {
	lines, logDir := runApp(t, cmds("KEYDOWN", "KEYUP", "KEYDOWN", "KEYUP", "STATE", "QUIT"))
	requireLine(t, lines, 1, "event=pressed", "action=hide", "visible=false")
	requireLine(t, lines, 2, "event=released", "action=none", "visible=false")
	requireLine(t, lines, 3, "event=pressed", "action=show", "visible=true", "focused=true")
	requireLine(t, lines, 4, "event=released", "action=none", "visible=true")
	requireLine(t, lines, 5, "state", "toggles=2")

	diag := readLog(t, logDir, "diagnostics_log.txt")
	for _, want := range []string{"shortcut_registered", "session_start", "action=hide", "action=show", "toggles=2"} {
		if !strings.Contains(diag, want) {
			t.Errorf("diagnostics missing %q", want)
		}
	}
}

func TestStartHidden(t *testing.T) {
	lines, _ := runApp(t, cmds("KEYDOWN", "QUIT"), "-hidden")
	requireLine(t, lines, 0, "visible=false")
	requireLine(t, lines, 1, "action=show", "visible=true")
}

func TestFocusDeniedKeepsWindowShown(t *testing.T) {
	lines, logDir := runApp(t, cmds("FAILFOCUS", "KEYDOWN", "KEYDOWN", "QUIT"), "-hidden")
	requireLine(t, lines, 1, "action=show", "visible=true", "focused=false", "focus_err=")
	requireLine(t, lines, 2, "action=hide", "visible=false")

	if !strings.Contains(readLog(t, logDir, "diagnostics_log.txt"), "op=set-focus") {
		t.Error("focus failure not logged")
	}
}

func TestQueryFailureHides(t *testing.T) {
	lines, _ := runApp(t, cmds("FAILQUERY", "KEYDOWN", "QUIT"), "-hidden")
	requireLine(t, lines, 1, "action=hide", "query_err=")
}

func TestDetachedWindowIsIgnored(t *testing.T) {
	lines, _ := runApp(t, cmds("DETACH", "KEYDOWN", "ATTACH", "KEYDOWN", "QUIT"))
	requireLine(t, lines, 1, "resolved=false", "action=none", "visible=true")
	requireLine(t, lines, 2, "resolved=true", "action=hide", "visible=false")
}
