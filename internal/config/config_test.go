package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

func TestNormalizeDirArg(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no trailing slash", "/media/gopro", "/media/gopro"},
		{"single trailing slash", "/media/gopro/", "/media/gopro"},
		{"multiple trailing slashes", "/media/gopro///", "/media/gopro"},
		{"root path", "/", "/"},
		{"relative path", "output", "output"},
		{"relative with slash", "output/", "output"},
		{"empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDirArg(tt.in)
			if got != tt.want {
				t.Errorf("NormalizeDirArg(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeExtension(t *testing.T) {
	tests := []struct{ in, want string }{
		{"360", "360"},
		{".360", "360"},
		{" .MP4 ", "mp4"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeExtension(tt.in); got != tt.want {
			t.Errorf("NormalizeExtension(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidate_ColorMode(t *testing.T) {
	tests := []struct {
		name    string
		mode    ColorMode
		wantErr bool
	}{
		{"auto is valid", ColorAuto, false},
		{"always is valid", ColorAlways, false},
		{"never is valid", ColorNever, false},
		{"empty is invalid", "", true},
		{"unknown is invalid", "rainbow", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.ColorMode = tt.mode
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_Extension(t *testing.T) {
	tests := []struct {
		name    string
		ext     string
		wantErr bool
	}{
		{"default", "360", false},
		{"leading dot stripped", ".360", false},
		{"empty", "", true},
		{"nested dot", "tar.gz", true},
		{"separator", "a/b", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Extension = tt.ext
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_StreamMaps(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StreamMaps = nil
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject an empty stream map list")
	}

	cfg = DefaultConfig()
	cfg.StreamMaps = []int{0, -1}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject a negative stream index")
	}
}

func TestValidate_ToolPaths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FFmpegPath = " "
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail with an empty ffmpeg path")
	}

	cfg.SortOnly = true
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() in sort-only mode should not need tools, got: %v", err)
	}

	cfg = DefaultConfig()
	cfg.UdtacopyPath = ""
	cfg.CheckOnly = true
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() in check mode should pass, got: %v", err)
	}
}

func TestResolvePaths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ResolvePaths()
	if cfg.InputDir != "." || cfg.OutputDir != "." {
		t.Errorf("defaults: input=%q output=%q, want \".\"", cfg.InputDir, cfg.OutputDir)
	}
	if cfg.ArchiveDir != DefaultArchiveDirName {
		t.Errorf("archive = %q, want %q", cfg.ArchiveDir, DefaultArchiveDirName)
	}

	cfg = DefaultConfig()
	cfg.InputDir = "/media/in"
	cfg.OutputDir = "/media/out"
	cfg.ResolvePaths()
	if cfg.OutputDir != "/media/out" {
		t.Errorf("explicit output overwritten: %q", cfg.OutputDir)
	}
	if cfg.ArchiveDir != "/media/in/joined_files" {
		t.Errorf("archive = %q", cfg.ArchiveDir)
	}
}

func TestValidatePaths(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.ValidatePaths("/media/in", "/media/in"); err == nil {
		t.Error("archive equal to input should be rejected")
	}
	if err := cfg.ValidatePaths("/media/in", "/media/in/joined_files"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDefaultConfig_SaneDefaults(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Extension != "360" {
		t.Errorf("default Extension = %q, want 360", cfg.Extension)
	}
	want := []int{0, 1, 3, 5}
	if len(cfg.StreamMaps) != len(want) {
		t.Fatalf("default StreamMaps = %v, want %v", cfg.StreamMaps, want)
	}
	for i := range want {
		if cfg.StreamMaps[i] != want[i] {
			t.Errorf("default StreamMaps = %v, want %v", cfg.StreamMaps, want)
		}
	}
	if !cfg.SkipExisting {
		t.Error("default SkipExisting should be true")
	}
	if cfg.KeepGoing {
		t.Error("default KeepGoing should be false (abort on first failure)")
	}
	if cfg.DryRun {
		t.Error("default DryRun should be false")
	}
}

// --- Config file tests ---

func TestLoadFile_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gsjoin.toml")
	body := `ffmpeg = "/opt/ffmpeg/bin/ffmpeg"
udtacopy = "/opt/bin/udtacopy"
extension = ".360"
stream_maps = [0, 1, 3]
keep_going = true
color = "never"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	got, err := LoadFile(&cfg, path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got != path {
		t.Errorf("loaded path = %q, want %q", got, path)
	}
	if cfg.FFmpegPath != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("FFmpegPath = %q", cfg.FFmpegPath)
	}
	if cfg.UdtacopyPath != "/opt/bin/udtacopy" {
		t.Errorf("UdtacopyPath = %q", cfg.UdtacopyPath)
	}
	if cfg.Extension != "360" {
		t.Errorf("Extension = %q, want 360", cfg.Extension)
	}
	if len(cfg.StreamMaps) != 3 || cfg.StreamMaps[2] != 3 {
		t.Errorf("StreamMaps = %v", cfg.StreamMaps)
	}
	if !cfg.KeepGoing {
		t.Error("KeepGoing should be set from file")
	}
	if cfg.ColorMode != ColorNever {
		t.Errorf("ColorMode = %q, want never", cfg.ColorMode)
	}
	if !cfg.SkipExisting {
		t.Error("keys absent from the file must keep their defaults")
	}
}

func TestLoadFile_MissingExplicitPath(t *testing.T) {
	cfg := DefaultConfig()
	_, err := LoadFile(&cfg, filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("LoadFile error = %v, want fs.ErrNotExist", err)
	}
}

func TestLoadFile_UnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("ffmpag = \"typo\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	if _, err := LoadFile(&cfg, path); err == nil {
		t.Error("LoadFile should reject unknown keys")
	}
}

func TestLoadFile_BadColor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("color = \"rainbow\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	if _, err := LoadFile(&cfg, path); err == nil {
		t.Error("LoadFile should reject an invalid color mode")
	}
}

// --- Flag tests ---

func parseFlags(t *testing.T, cfg *Config, argv ...string) error {
	t.Helper()
	fs := pflag.NewFlagSet("gsjoin", pflag.ContinueOnError)
	f := RegisterFlags(fs)
	if err := fs.Parse(argv); err != nil {
		return err
	}
	return f.Apply(cfg, fs, fs.Args())
}

func TestFlags_OverrideFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FFmpegPath = "/from/file/ffmpeg"
	cfg.KeepGoing = true

	if err := parseFlags(t, &cfg, "--ffmpeg", "/from/flag/ffmpeg", "-f", "--no-color", "/media/card/"); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.FFmpegPath != "/from/flag/ffmpeg" {
		t.Errorf("FFmpegPath = %q, want flag value", cfg.FFmpegPath)
	}
	if !cfg.KeepGoing {
		t.Error("KeepGoing from file should survive when the flag is absent")
	}
	if cfg.SkipExisting {
		t.Error("--force should clear SkipExisting")
	}
	if cfg.ColorMode != ColorNever {
		t.Errorf("ColorMode = %q, want never", cfg.ColorMode)
	}
	if cfg.InputDir != "/media/card" {
		t.Errorf("InputDir = %q", cfg.InputDir)
	}
}

func TestFlags_UnsetFlagsKeepValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UdtacopyPath = "/from/file/udtacopy"
	if err := parseFlags(t, &cfg); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.UdtacopyPath != "/from/file/udtacopy" {
		t.Errorf("UdtacopyPath = %q", cfg.UdtacopyPath)
	}
	if cfg.InputDir != "" {
		t.Errorf("InputDir = %q, want empty until ResolvePaths", cfg.InputDir)
	}
}

func TestFlags_TooManyArgs(t *testing.T) {
	cfg := DefaultConfig()
	if err := parseFlags(t, &cfg, "a", "b"); err == nil {
		t.Error("expected error for two positional args")
	}
}

func TestFlags_ColorPrecedence(t *testing.T) {
	cfg := DefaultConfig()
	if err := parseFlags(t, &cfg, "--color", "--no-color"); err != nil {
		t.Fatal(err)
	}
	if cfg.ColorMode != ColorNever {
		t.Errorf("--no-color should win, got %q", cfg.ColorMode)
	}
}

func TestFlags_ExplicitFalseClearsFileValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gsjoin.toml")
	body := "keep_going = true\nkeep_manifests = true\ncolor = \"always\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	if _, err := LoadFile(&cfg, path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if err := parseFlags(t, &cfg, "--keep-going=false", "--keep-manifests=false", "--color=false", "--force=false"); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.KeepGoing {
		t.Error("--keep-going=false should clear keep_going from the file")
	}
	if cfg.KeepManifests {
		t.Error("--keep-manifests=false should clear keep_manifests from the file")
	}
	if cfg.ColorMode != ColorAuto {
		t.Errorf("--color=false: ColorMode = %q, want auto", cfg.ColorMode)
	}
	if !cfg.SkipExisting {
		t.Error("--force=false should keep SkipExisting")
	}
}
