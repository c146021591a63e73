package common

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/yejune/thai-i18n/internal/config"
	"github.com/yejune/thai-i18n/internal/dictionary"
	"github.com/yejune/thai-i18n/internal/git"
	"github.com/yejune/thai-i18n/internal/i18n"
	"github.com/yejune/thai-i18n/internal/logger"
	"github.com/yejune/thai-i18n/internal/translate"
)

// ProjectContext holds the project root, its configuration and the resolved
// dictionaries and profiles
type ProjectContext struct {
	Root     string
	Config   *config.Config
	Registry *dictionary.Registry
	Profiles map[string]translate.Profile
}

// FindRoot returns dir when set, else the git top-level, else the working directory
func FindRoot(dir string) (string, error) {
	if dir != "" {
		return filepath.Abs(dir)
	}
	if root, err := git.GetRepoRoot(); err == nil {
		return root, nil
	}
	return os.Getwd()
}

// LoadProjectContext initializes the project context from root's .thai-i18n.yaml.
// configPath overrides the configuration file location.
func LoadProjectContext(dir, configPath string) (*ProjectContext, error) {
	root, err := FindRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to find project root: %w", err)
	}

	cfg, err := config.Load(root, configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	i18n.SetLanguage(cfg.Language)

	registry, err := dictionary.NewRegistry(root, cfg.Dictionaries)
	if err != nil {
		return nil, fmt.Errorf("failed to load dictionaries: %w", err)
	}

	profiles, err := translate.ResolveProfiles(cfg.Profiles)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve profiles: %w", err)
	}

	logger.Debug("project loaded")

	return &ProjectContext{
		Root:     root,
		Config:   cfg,
		Registry: registry,
		Profiles: profiles,
	}, nil
}

// BackupDir returns the absolute backup directory
func (ctx *ProjectContext) BackupDir() string {
	return ctx.Config.BackupDir(ctx.Root)
}

// Abs resolves a project-relative path
func (ctx *ProjectContext) Abs(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(ctx.Root, rel)
}

// Rel returns path relative to the project root, or path itself outside it
func (ctx *ProjectContext) Rel(path string) string {
	if !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(ctx.Root, path)
	if err != nil {
		return path
	}
	return rel
}
