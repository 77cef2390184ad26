// Package scaffold creates the .claude/ workflow tree in a project: slash
// command documents, spec templates, and the workflow config file. Setup is
// idempotent and never touches existing spec documents.
package scaffold

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Pimzino/claude-code-spec-workflow/spec"
)

//go:embed assets
var assets embed.FS

// ConfigFile is the workflow config written into .claude/.
const ConfigFile = "spec-config.yaml"

// workflowConfig is the content of spec-config.yaml.
type workflowConfig struct {
	Version  string `yaml:"version"`
	Language string `yaml:"language"`
}

// Result reports what Setup did, for logging and CLI output.
type Result struct {
	Created []string
	Skipped []string
}

// Setup creates the workflow tree under projectRoot/.claude. Existing files
// are left alone unless force is set; existing directories are never an
// error. Spec documents under specs/ are never written by Setup.
func Setup(projectRoot, version string, force bool, logger *slog.Logger) (*Result, error) {
	claude := filepath.Join(projectRoot, spec.ClaudeDir)
	dirs := []string{
		filepath.Join(claude, spec.SpecsDir),
		filepath.Join(claude, spec.SteeringDir),
		filepath.Join(claude, "commands"),
		filepath.Join(claude, "templates"),
		filepath.Join(claude, "agents"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}

	res := &Result{}
	if err := copyAssetDir("assets/commands", filepath.Join(claude, "commands"), force, res); err != nil {
		return nil, err
	}
	if err := copyAssetDir("assets/templates", filepath.Join(claude, "templates"), force, res); err != nil {
		return nil, err
	}

	cfgPath := filepath.Join(claude, ConfigFile)
	if err := writeConfig(cfgPath, version, force, res); err != nil {
		return nil, err
	}

	logger.Info("workflow setup complete",
		slog.String("project", projectRoot),
		slog.Int("created", len(res.Created)),
		slog.Int("skipped", len(res.Skipped)),
	)
	return res, nil
}

// copyAssetDir writes every embedded file in src into dst, skipping files
// that already exist unless force is set.
func copyAssetDir(src, dst string, force bool, res *Result) error {
	entries, err := fs.ReadDir(assets, src)
	if err != nil {
		return fmt.Errorf("read embedded %s: %w", src, err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		target := filepath.Join(dst, e.Name())
		if !force && fileExists(target) {
			res.Skipped = append(res.Skipped, target)
			continue
		}
		data, err := assets.ReadFile(src + "/" + e.Name())
		if err != nil {
			return fmt.Errorf("read embedded %s/%s: %w", src, e.Name(), err)
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", target, err)
		}
		res.Created = append(res.Created, target)
	}
	return nil
}

func writeConfig(path, version string, force bool, res *Result) error {
	if !force && fileExists(path) {
		res.Skipped = append(res.Skipped, path)
		return nil
	}
	data, err := yaml.Marshal(workflowConfig{Version: version, Language: "en"})
	if err != nil {
		return fmt.Errorf("marshal %s: %w", ConfigFile, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	res.Created = append(res.Created, path)
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
