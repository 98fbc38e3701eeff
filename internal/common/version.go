package common

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// Set at build time:
//
//	go build -ldflags "-X github.com/bobmcallan/folio/internal/common.Version=1.4.0"
var (
	Version   = "dev"
	Build     = "unknown"
	GitCommit = "unknown"
)

func GetVersion() string   { return Version }
func GetBuild() string     { return Build }
func GetGitCommit() string { return GitCommit }

// GetFullVersion returns "<version> (build: <build>, commit: <commit>)".
func GetFullVersion() string {
	return fmt.Sprintf("%s (build: %s, commit: %s)", Version, Build, GitCommit)
}

// versionFile is the optional .version file written by release packaging.
type versionFile struct {
	Version string `toml:"version"`
	Build   string `toml:"build"`
	Commit  string `toml:"commit"`
}

// LoadVersionFromFile reads .version next to the binary. File values only
// fill fields that ldflags left at their defaults.
func LoadVersionFromFile() {
	exe, err := os.Executable()
	if err != nil {
		return
	}
	_ = loadVersionFile(filepath.Join(filepath.Dir(exe), ".version"))
}

func loadVersionFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var vf versionFile
	if err := toml.Unmarshal(data, &vf); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if Version == "dev" && vf.Version != "" {
		Version = vf.Version
	}
	if Build == "unknown" && vf.Build != "" {
		Build = vf.Build
	}
	if GitCommit == "unknown" && vf.Commit != "" {
		GitCommit = vf.Commit
	}
	return nil
}
