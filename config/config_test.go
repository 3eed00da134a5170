package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if c.Window.Title != "Path Trade Tools" || c.Window.StartHidden || !c.Tray.Enabled {
		t.Errorf("unexpected defaults: %+v", c)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, "window:\n  start_hidden: true\n  width: 300\nlog:\n  path: /tmp/tt\n")
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !c.Window.StartHidden || c.Window.Width != 300 || c.Log.Path != "/tmp/tt" {
		t.Errorf("overrides not applied: %+v", c)
	}
	if c.Window.Height != 560 {
		t.Errorf("unset height should keep default, got %d", c.Window.Height)
	}
}

func TestLoadRejectsBadSize(t *testing.T) {
	path := writeConfig(t, "window:\n  height: 0\n")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "positive") {
		t.Errorf("got %v", err)
	}
}

func TestLoadRejectsMalformed(t *testing.T) {
	path := writeConfig(t, "window: [\n")
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestResolvePath(t *testing.T) {
	if got, _ := ResolvePath("/etc/tt.yaml"); got != "/etc/tt.yaml" {
		t.Errorf("flag: got %q", got)
	}
	t.Setenv("TRADETOOLS_CONFIG", "/tmp/env.yaml")
	if got, _ := ResolvePath(""); got != "/tmp/env.yaml" {
		t.Errorf("env: got %q", got)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	c := Default()
	c.Window.Title = "Trade"
	if err := c.Save(path); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Window.Title != "Trade" {
		t.Errorf("title = %q", got.Window.Title)
	}
}
