package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/backmassage/gsjoin/internal/config"
	"github.com/backmassage/gsjoin/internal/term"
)

func TestNewLogger_NoFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.LogFile = ""
	cfg.ColorMode = config.ColorNever
	l, err := NewLogger(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()
	l.Info("test message")
}

func TestNewLogger_WithFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	cfg.LogFile = filepath.Join(dir, "logs", "gsjoin.log")
	var out, errOut bytes.Buffer
	l, err := NewLoggerTo(&cfg, &out, &errOut)
	if err != nil {
		t.Fatal(err)
	}
	l.Info("to file")
	l.Error("group %s failed", "0001")
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}
	b, _ := os.ReadFile(cfg.LogFile)
	if !bytes.Contains(b, []byte("[INFO] to file")) || !bytes.Contains(b, []byte("[ERROR] group 0001 failed")) {
		t.Errorf("log file content: %s", string(b))
	}
}

func TestLogger_ErrorGoesToStderr(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	var out, errOut bytes.Buffer
	l, err := NewLoggerTo(&cfg, &out, &errOut)
	if err != nil {
		t.Fatal(err)
	}
	l.Info("progress")
	l.Error("boom")

	if !strings.Contains(out.String(), "[INFO] progress") {
		t.Errorf("stdout = %q", out.String())
	}
	if strings.Contains(out.String(), "boom") {
		t.Error("error message leaked to stdout")
	}
	if !strings.Contains(errOut.String(), "[ERROR] boom") {
		t.Errorf("stderr = %q", errOut.String())
	}
}

func TestLogger_DebugGated(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	var out, errOut bytes.Buffer
	l, _ := NewLoggerTo(&cfg, &out, &errOut)

	l.Debug(false, "hidden")
	l.Debug(true, "shown")
	if strings.Contains(out.String(), "hidden") {
		t.Error("debug line written while not verbose")
	}
	if !strings.Contains(out.String(), "[DEBUG] shown") {
		t.Errorf("stdout = %q", out.String())
	}
}

func TestLogger_ColoredLevelPlainFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorAlways
	cfg.LogFile = filepath.Join(t.TempDir(), "gsjoin.log")
	var out, errOut bytes.Buffer
	l, err := NewLoggerTo(&cfg, &out, &errOut)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { term.Configure(config.ColorNever, nil) })

	l.Info("colored")
	l.Close()

	if !strings.Contains(out.String(), "\033[1;94m[INFO]\033[0m colored") {
		t.Errorf("stdout = %q, want painted level", out.String())
	}
	b, _ := os.ReadFile(cfg.LogFile)
	if strings.Contains(string(b), "\033[") {
		t.Errorf("log file contains ANSI escapes: %q", b)
	}
}
