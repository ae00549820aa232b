package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

type ResolvedPaths struct {
	DataDir    string
	StateDir   string
	MenuDBPath string
	KVDBPath   string
	SeedDir    string
	LogPath    string
}

// ResolvePaths anchors relative paths: data/state dirs at base, database
// files at the data dir.
func ResolvePaths(cfg *Config, base string) (ResolvedPaths, error) {
	if strings.TrimSpace(base) == "" {
		return ResolvedPaths{}, fmt.Errorf("base directory must not be empty")
	}
	dataDir := ResolveRelative(base, cfg.Paths.DataDir)
	stateDir := ResolveRelative(base, cfg.Paths.StateDir)

	resolved := ResolvedPaths{
		DataDir:    dataDir,
		StateDir:   stateDir,
		MenuDBPath: ResolveRelative(dataDir, cfg.DB.Path),
		KVDBPath:   ResolveRelative(dataDir, cfg.DB.KVPath),
		LogPath:    filepath.Join(stateDir, "littlelemon.log"),
	}
	if strings.TrimSpace(cfg.Seed.Dir) != "" {
		resolved.SeedDir = ResolveRelative(base, cfg.Seed.Dir)
	}
	return resolved, nil
}

func ResolveRelative(base, value string) string {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return filepath.Clean(base)
	}
	if filepath.IsAbs(raw) {
		return filepath.Clean(raw)
	}
	return filepath.Clean(filepath.Join(base, raw))
}
