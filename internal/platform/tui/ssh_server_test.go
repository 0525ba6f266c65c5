package tui

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewSSHServer(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(dir, "keys", "host_key")
	cfg.DBPath = filepath.Join(dir, "scores.db")
	cfg.Seed = 42
	cfg.Stock = 5
	cfg.Logger = log.New(io.Discard)

	srv, err := NewSSHServer(cfg)
	if err != nil {
		t.Fatalf("NewSSHServer() error = %v", err)
	}
	defer srv.Shutdown()

	if _, err := os.Stat(filepath.Dir(cfg.HostKeyPath)); err != nil {
		t.Errorf("host key directory missing: %v", err)
	}
	if srv.store == nil {
		t.Error("store should be open")
	}
	if srv.Addr() != cfg.Address || srv.ActiveSessions() != 0 {
		t.Errorf("Addr() = %q, ActiveSessions() = %d", srv.Addr(), srv.ActiveSessions())
	}

	rc := srv.sessionConfig(100, 30)
	if rc.ScreenW != 100 || rc.ScreenH != 30 || rc.Seed != 42 || rc.Stock != 5 || rc.TickRate != 60 {
		t.Errorf("sessionConfig() = %+v", rc)
	}
}
