package config

import (
	"regexp"

	"github.com/pkg/errors"

	"fbnoi.com/mirror-upload/template"
)

// Target is a project with every unset value taken from the top-level config.
type Target struct {
	Loaders       []Loader
	GameVersions  []string
	FileRegex     *regexp.Regexp
	CurseForge    *CurseForgeSettings
	Modrinth      *ModrinthSettings
	VersionNumber *template.Template
}

// Targets merges each project with the top-level config. Without projects the
// top-level config alone forms the only target.
func (c *Config) Targets() ([]Target, error) {
	projects := c.Projects
	if len(projects) == 0 {
		projects = []Project{{}}
	}
	targets := make([]Target, 0, len(projects))
	for i, p := range projects {
		t, err := c.Target(p)
		if err != nil {
			return nil, errors.Wrapf(err, "project %d", i)
		}
		targets = append(targets, t)
	}

	return targets, nil
}

func (c *Config) Target(p Project) (Target, error) {
	t := Target{
		Loaders:      p.Loaders,
		GameVersions: p.GameVersions,
		CurseForge:   p.CurseForge,
		Modrinth:     p.Modrinth,
	}
	if t.Loaders == nil {
		t.Loaders = c.Loaders
	}
	if t.GameVersions == nil {
		t.GameVersions = c.GameVersions
	}
	if t.CurseForge == nil {
		t.CurseForge = c.CurseForge
	}
	if t.Modrinth == nil {
		t.Modrinth = c.Modrinth
	}
	if len(t.Loaders) == 0 {
		return Target{}, errors.New("no loaders defined")
	}
	if len(t.GameVersions) == 0 {
		return Target{}, errors.New("no game versions defined")
	}

	expr := p.FileRegex
	if expr == "" {
		expr = c.FileRegex
	}
	re, err := compileRegex(expr)
	if err != nil {
		return Target{}, err
	}
	t.FileRegex = re

	if t.Modrinth != nil {
		if t.VersionNumber, err = t.Modrinth.VersionTemplate(); err != nil {
			return Target{}, err
		}
	}

	return t, nil
}
