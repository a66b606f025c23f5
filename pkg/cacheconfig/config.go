// Package cacheconfig handles user configuration of cache diagnostics behavior:
// which Diagnostics sink to wire up, whether it abbreviates type names, and
// where it writes its output: an XDG config directory, a YAML file merged over
// hardcoded defaults, loaded once at startup.
package cacheconfig

import (
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"github.com/OpenPeeDeeP/xdg"
	"github.com/spkg/bom"
	yaml "github.com/jesseduffield/yaml"
)

// DiagnosticsKind selects which cache.Diagnostics sink BuildDiagnostics wires up.
type DiagnosticsKind string

const (
	DiagnosticsNull     DiagnosticsKind = "null"
	DiagnosticsTextual  DiagnosticsKind = "textual"
	DiagnosticsVisgraph DiagnosticsKind = "visgraph"
)

// CacheBehaviorConfig holds all of the user-configurable options for how a
// wired-up cache reports and stores its own activity. It does not configure the
// cache's data model itself (there is nothing to configure there - see
// pkg/cache) only the ambient diagnostics/concurrency choices around it.
type CacheBehaviorConfig struct {
	// Diagnostics selects which sink BuildDiagnostics constructs: "null" (no
	// observation, the default), "textual" (colorized logrus lines, see
	// pkg/diagnostics/textual) or "visgraph" (DOT graph emitter, see
	// pkg/diagnostics/visgraph).
	Diagnostics DiagnosticsKind `yaml:"diagnostics,omitempty"`

	// Abbreviate shortens type/identifier names in diagnostic output.
	Abbreviate bool `yaml:"abbreviate,omitempty"`

	// TextualOutputPath is where the textual sink's log file is written. Empty
	// means stderr.
	TextualOutputPath string `yaml:"textualOutputPath,omitempty"`

	// VisgraphOutputPath is where the visgraph sink's DOT file is written when
	// the io.Closer returned by BuildDiagnostics is closed. Empty means the graph
	// is only available in-memory via DOT().
	VisgraphOutputPath string `yaml:"visgraphOutputPath,omitempty"`

	// LockedCache is a flag for a caller's own wiring code: set when the cache
	// should be a cache.Locked rather than a plain cache.Cache, for concurrent
	// access. Nothing in this module reads it.
	LockedCache bool `yaml:"lockedCache,omitempty"`

	// Debug turns on verbose logging in pkg/log regardless of the DEBUG env var.
	Debug bool `yaml:"debug,omitempty"`
}

// GetDefaultConfig returns the default behavior configuration. As with the
// teacher's own GetDefaultConfig, no boolean here defaults to true: false is the
// zero value and would otherwise be indistinguishable from "unset" once merged
// against a user's partial YAML.
func GetDefaultConfig() CacheBehaviorConfig {
	return CacheBehaviorConfig{
		Diagnostics: DiagnosticsNull,
	}
}

// CacheConfig is the loaded, merged configuration plus the filesystem location it
// came from.
type CacheConfig struct {
	Behavior  CacheBehaviorConfig
	ConfigDir string
}

// NewCacheConfig locates (creating if necessary) the XDG config directory for
// appName, loads cache-config.yml from it if present, and merges it over
// GetDefaultConfig.
func NewCacheConfig(appName string) (*CacheConfig, error) {
	dir, err := findOrCreateConfigDir(appName)
	if err != nil {
		return nil, err
	}

	behavior, err := loadBehaviorWithDefaults(dir)
	if err != nil {
		return nil, err
	}

	if err := behavior.Validate(); err != nil {
		return nil, err
	}

	return &CacheConfig{Behavior: *behavior, ConfigDir: dir}, nil
}

func (c *CacheConfig) ConfigFilename() string {
	return filepath.Join(c.ConfigDir, "cache-config.yml")
}

// WriteToUserConfig loads the user's own (non-defaulted) config file, applies
// update, and writes it back, so programmatic config edits never clobber
// defaults the user never actually set.
func (c *CacheConfig) WriteToUserConfig(update func(*CacheBehaviorConfig) error) error {
	var userOnly CacheBehaviorConfig
	if _, err := loadBehaviorFile(c.ConfigFilename(), &userOnly); err != nil {
		return err
	}

	if err := update(&userOnly); err != nil {
		return err
	}

	file, err := os.OpenFile(c.ConfigFilename(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o666)
	if err != nil {
		return err
	}
	defer file.Close()

	return yaml.NewEncoder(file).Encode(userOnly)
}

func configDir(appName string) string {
	if envDir := os.Getenv("DAGCACHE_CONFIG_DIR"); envDir != "" {
		return envDir
	}
	dirs := xdg.New("", appName)
	return dirs.ConfigHome()
}

func findOrCreateConfigDir(appName string) (string, error) {
	dir := configDir(appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

func loadBehaviorWithDefaults(dir string) (*CacheBehaviorConfig, error) {
	defaults := GetDefaultConfig()
	return loadBehaviorFile(filepath.Join(dir, "cache-config.yml"), &defaults)
}

// loadBehaviorFile unmarshals fileName's YAML onto base, creating an empty file
// if none exists yet, and strips a leading UTF-8 BOM first since some editors
// (notably on Windows) save YAML files with one and the YAML parser otherwise
// chokes on it.
func loadBehaviorFile(fileName string, base *CacheBehaviorConfig) (*CacheBehaviorConfig, error) {
	if _, err := os.Stat(fileName); err != nil {
		if os.IsNotExist(err) {
			f, err := os.Create(fileName)
			if err != nil {
				return nil, err
			}
			f.Close()
		} else {
			return nil, err
		}
	}

	raw, err := os.ReadFile(fileName)
	if err != nil {
		return nil, err
	}

	var fromFile CacheBehaviorConfig
	if err := yaml.Unmarshal(bom.Clean(raw), &fromFile); err != nil {
		return nil, err
	}

	if err := mergo.Merge(base, fromFile, mergo.WithOverride); err != nil {
		return nil, err
	}

	return base, nil
}
