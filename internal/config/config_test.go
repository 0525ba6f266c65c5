package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := ParseShippu(defaultShippuYAML)
	if err != nil {
		t.Fatalf("embedded defaults: %v", err)
	}
	if cfg != DefaultShippuConfig() {
		t.Errorf("embedded defaults differ from DefaultShippuConfig:\n%+v\n%+v", cfg, DefaultShippuConfig())
	}
}

func TestLoadShippuCustomPathOverridesDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "custom.yaml", `
player:
  stock: 7
reward:
  far_factor: 0.5
`)
	cfg, err := LoadShippu(path)
	if err != nil {
		t.Fatalf("LoadShippu: %v", err)
	}
	if cfg.Player.Stock != 7 {
		t.Errorf("stock = %d, want 7", cfg.Player.Stock)
	}
	if cfg.Reward.FarFactor != 0.5 {
		t.Errorf("far_factor = %g, want 0.5", cfg.Reward.FarFactor)
	}
	if cfg.Reward.NearFactor != 1.1 || cfg.Seeds.Agent != 789 {
		t.Errorf("unset keys lost their defaults: %+v", cfg)
	}
}

func TestLoadShippuErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		path string
		want string
	}{
		{"missing", filepath.Join(dir, "nope.yaml"), "failed to read config"},
		{"malformed", writeFile(t, dir, "bad.yaml", "player: [1, 2"), "failed to parse config"},
		{"invalid", writeFile(t, dir, "zero.yaml", "player:\n  stock: 0\n"), "player.stock"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadShippu(tt.path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadShippuSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	cfg, err := LoadShippu("")
	if err != nil {
		t.Fatalf("LoadShippu: %v", err)
	}
	if cfg.Player.Stock != 3 {
		t.Errorf("embedded stock = %d, want 3", cfg.Player.Stock)
	}
	if src := Source(""); src != "embedded" {
		t.Errorf("Source() = %q, want embedded", src)
	}

	if err := os.MkdirAll(filepath.Join(work, "configs"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(work, "configs"), FileName, "player:\n  stock: 4\n")
	if cfg, _ = LoadShippu(""); cfg.Player.Stock != 4 {
		t.Errorf("local stock = %d, want 4", cfg.Player.Stock)
	}
	if src := Source(""); src != filepath.Join("configs", FileName) {
		t.Errorf("Source() = %q, want the local file", src)
	}

	userDir := filepath.Join(home, ".shippu", "configs")
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, userDir, FileName, "player:\n  stock: 6\n")
	if cfg, _ = LoadShippu(""); cfg.Player.Stock != 6 {
		t.Errorf("user stock = %d, want 6", cfg.Player.Stock)
	}
	if src := Source(""); src != filepath.Join(userDir, FileName) {
		t.Errorf("Source() = %q, want the user file", src)
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		in    string
		want  DifficultyPreset
		stock int
	}{
		{"", DifficultyNormal, 3},
		{"easy", DifficultyEasy, 5},
		{"Normal", DifficultyNormal, 3},
		{" hard ", DifficultyHard, 1},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p, err := ParsePreset(tt.in)
			if err != nil {
				t.Fatalf("ParsePreset(%q): %v", tt.in, err)
			}
			if p != tt.want {
				t.Errorf("preset = %q, want %q", p, tt.want)
			}
			cfg := DefaultShippuConfig()
			ApplyShippuPreset(&cfg, p)
			if cfg.Player.Stock != tt.stock {
				t.Errorf("stock = %d, want %d", cfg.Player.Stock, tt.stock)
			}
		})
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestMarshalRoundTripsThroughParse(t *testing.T) {
	cfg := DefaultShippuConfig()
	cfg.Agent.Population = 9
	data, err := cfg.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := ParseShippu(data)
	if err != nil {
		t.Fatalf("ParseShippu: %v", err)
	}
	if got != cfg {
		t.Errorf("got %+v, want %+v", got, cfg)
	}
}

func TestWatchFileReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "level.yaml", "name: a\n")
	writeFile(t, dir, "other.yaml", "name: b\n")

	w, err := WatchFile(path)
	if err != nil {
		t.Fatalf("WatchFile: %v", err)
	}
	defer w.Close()

	writeFile(t, dir, "other.yaml", "name: c\n")
	writeFile(t, dir, "level.yaml", "name: d\n")

	select {
	case name := <-w.Events:
		if filepath.Base(name) != "level.yaml" {
			t.Errorf("event for %s, want level.yaml", name)
		}
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no event within 5s")
	}
}
