package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// fileConfig mirrors the keys accepted in gsjoin.toml. Pointer fields
// distinguish "unset" from zero values so the file only overrides what it
// names.
type fileConfig struct {
	FFmpeg        *string `toml:"ffmpeg"`
	Udtacopy      *string `toml:"udtacopy"`
	Extension     *string `toml:"extension"`
	StreamMaps    []int   `toml:"stream_maps"`
	OutputDir     *string `toml:"output_dir"`
	ArchiveDir    *string `toml:"archive_dir"`
	KeepGoing     *bool   `toml:"keep_going"`
	KeepManifests *bool   `toml:"keep_manifests"`
	LogFile       *string `toml:"log_file"`
	Color         *string `toml:"color"`
}

// DefaultConfigPath returns the per-user config file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/gsjoin/config.toml")
}

// LoadFile locates and decodes a config file into cfg. An explicit path that
// does not exist is an error; when path is empty the per-user file and then
// ./gsjoin.toml are tried, and finding neither is not an error. It returns
// the path that was loaded, or "" when none was.
func LoadFile(cfg *Config, path string) (string, error) {
	resolved, exists, err := resolveConfigPath(path)
	if err != nil {
		return "", err
	}
	if !exists {
		if path != "" {
			return "", fmt.Errorf("config file %s: %w", resolved, fs.ErrNotExist)
		}
		return "", nil
	}

	file, err := os.Open(resolved)
	if err != nil {
		return "", fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var fc fileConfig
	decoder := toml.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&fc); err != nil {
		return "", fmt.Errorf("parse config %s: %w", resolved, err)
	}
	if err := fc.apply(cfg); err != nil {
		return "", fmt.Errorf("config %s: %w", resolved, err)
	}
	cfg.ConfigFile = resolved
	return resolved, nil
}

func (fc *fileConfig) apply(cfg *Config) error {
	if fc.FFmpeg != nil {
		cfg.FFmpegPath = strings.TrimSpace(*fc.FFmpeg)
	}
	if fc.Udtacopy != nil {
		cfg.UdtacopyPath = strings.TrimSpace(*fc.Udtacopy)
	}
	if fc.Extension != nil {
		cfg.Extension = NormalizeExtension(*fc.Extension)
	}
	if fc.StreamMaps != nil {
		cfg.StreamMaps = append([]int(nil), fc.StreamMaps...)
	}
	if fc.OutputDir != nil {
		dir, err := expandPath(*fc.OutputDir)
		if err != nil {
			return err
		}
		cfg.OutputDir = dir
	}
	if fc.ArchiveDir != nil {
		dir, err := expandPath(*fc.ArchiveDir)
		if err != nil {
			return err
		}
		cfg.ArchiveDir = dir
	}
	if fc.KeepGoing != nil {
		cfg.KeepGoing = *fc.KeepGoing
	}
	if fc.KeepManifests != nil {
		cfg.KeepManifests = *fc.KeepManifests
	}
	if fc.LogFile != nil {
		logFile, err := expandPath(*fc.LogFile)
		if err != nil {
			return err
		}
		cfg.LogFile = logFile
	}
	if fc.Color != nil {
		v := colorModeValue{&cfg.ColorMode}
		if err := v.Set(*fc.Color); err != nil {
			return err
		}
	}
	return nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		return statConfig(expanded)
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if p, ok, err := statConfig(defaultPath); err != nil || ok {
		return p, ok, err
	}

	projectPath, err := filepath.Abs("gsjoin.toml")
	if err != nil {
		return "", false, err
	}
	return statConfig(projectPath)
}

func statConfig(path string) (string, bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return path, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	if info.IsDir() {
		return "", false, fmt.Errorf("config path %s is a directory", path)
	}
	return path, true, nil
}

// expandPath resolves a leading "~" and returns an absolute, cleaned path.
func expandPath(pathValue string) (string, error) {
	pathValue = strings.TrimSpace(pathValue)
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}
