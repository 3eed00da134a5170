package log

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func setupLogDir(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	SetDir(tmp)
	t.Cleanup(func() { Close(); SetDir("") })
	return tmp
}

func readDiag(t *testing.T, dir string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "diagnostics_log.txt"))
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestResolveDirFlag(t *testing.T) {
	got, err := ResolveDir("/tmp/mylog")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/tmp/mylog" {
		t.Errorf("got %q, want /tmp/mylog", got)
	}
}

func TestResolveDirFlagRelative(t *testing.T) {
	got, err := ResolveDir("logs")
	if err != nil {
		t.Fatal(err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(wd, "logs")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestResolveDirEnv(t *testing.T) {
	t.Setenv("TRADETOOLS_LOG_PATH", "/tmp/tradetools-env-log")
	got, err := ResolveDir("")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/tmp/tradetools-env-log" {
		t.Errorf("got %q, want /tmp/tradetools-env-log", got)
	}
}

func TestResolveDirDefault(t *testing.T) {
	t.Setenv("TRADETOOLS_LOG_PATH", "")
	got, err := ResolveDir("")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "tradetools") {
		t.Errorf("default directory %q should be app-specific", got)
	}
}

func TestInitCreatesFile(t *testing.T) {
	tmp := setupLogDir(t)

	if err := Init(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(tmp, "diagnostics_log.txt")); err != nil {
		t.Errorf("diagnostics_log.txt not created: %v", err)
	}
	if Session() == "" {
		t.Error("expected a session id after Init")
	}
}

func TestToggleAndWindowError(t *testing.T) {
	tmp := setupLogDir(t)

	if err := Init(); err != nil {
		t.Fatal(err)
	}
	Toggle("hide", 1500*time.Microsecond)
	WindowError("set-focus", errors.New("focus stolen"))
	WindowError("hide", nil)
	Close()

	out := readDiag(t, tmp)
	for _, want := range []string{"toggle", "action=hide", "elapsed_ms=1.5", "window_error", "op=set-focus", "focus stolen", "session="} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "op=hide") {
		t.Error("nil window errors must not be logged")
	}
}

func TestLogBeforeInitIsNoop(t *testing.T) {
	setupLogDir(t)
	Info("dropped")
	Toggle("show", time.Millisecond)
}

func TestCloseIdempotent(t *testing.T) {
	setupLogDir(t)

	if err := Init(); err != nil {
		t.Fatal(err)
	}
	Close()
	Close() // should not panic
}

func TestHelpersRaceClose(t *testing.T) {
	tmp := setupLogDir(t)

	if err := Init(); err != nil {
		t.Fatal(err)
	}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				Toggle("show", time.Millisecond)
				WindowError("hide", errors.New("gone"))
				SessionEnd(j)
			}
		}()
	}
	Close()
	wg.Wait()

	// Nothing is written once Close has returned.
	before := readDiag(t, tmp)
	Info("after close")
	if after := readDiag(t, tmp); after != before {
		t.Errorf("log grew after Close:\n%s", after)
	}
}

func TestPricesAndConversionFields(t *testing.T) {
	tmp := setupLogDir(t)

	if err := Init(); err != nil {
		t.Fatal(err)
	}
	PricesSaved("/tmp/prices.yaml", 3)
	Conversion("divine", "exalt", 3, 1200)
	Close()

	out := readDiag(t, tmp)
	for _, want := range []string{"prices_saved", "items=3", "convert", "from=divine", "to=exalt", "result=1200"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q, got:\n%s", want, out)
		}
	}
}
