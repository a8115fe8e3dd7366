package config

import (
	"os"
	"regexp"

	"github.com/pkg/errors"
	v2 "gopkg.in/yaml.v2"

	"fbnoi.com/mirror-upload/release"
	"fbnoi.com/mirror-upload/template"
)

const (
	DefaultConfigPath  = "mirror_upload.config.yaml"
	DefaultSecretsPath = "mirror_upload.secrets.yaml"

	// DefaultVersionNumber is used when a Modrinth section sets no version_number.
	DefaultVersionNumber = "${tag}"
)

type Config struct {
	// GitHub project, "owner/repo".
	GitHub       string              `yaml:"github"`
	Loaders      []Loader            `yaml:"loaders"`
	CurseForge   *CurseForgeSettings `yaml:"curseforge"`
	Modrinth     *ModrinthSettings   `yaml:"modrinth"`
	Projects     []Project           `yaml:"projects"`
	GameVersions []string            `yaml:"game_versions"`
	FileRegex    string              `yaml:"file_regex"`
	ReleaseLevel ReleaseLevel        `yaml:"release_level"`
}

// Project overrides the top-level settings for one uploaded project.
type Project struct {
	Loaders      []Loader            `yaml:"loaders"`
	CurseForge   *CurseForgeSettings `yaml:"curseforge"`
	Modrinth     *ModrinthSettings   `yaml:"modrinth"`
	GameVersions []string            `yaml:"game_versions"`
	FileRegex    string              `yaml:"file_regex"`
}

type CurseForgeSettings struct {
	ProjectID string            `yaml:"project_id"`
	Slug      string            `yaml:"slug"`
	Relations []ProjectRelation `yaml:"relations"`
}

type ProjectRelation struct {
	Slug string `yaml:"slug" json:"slug"`
	Type string `yaml:"type" json:"type"`
}

type ModrinthSettings struct {
	ProjectID     string       `yaml:"project_id"`
	Slug          string       `yaml:"slug"`
	VersionNumber string       `yaml:"version_number"`
	Dependencies  []Dependency `yaml:"dependencies"`
}

// VersionTemplate parses the version_number template.
func (s *ModrinthSettings) VersionTemplate() (*template.Template, error) {
	if s.VersionNumber == "" {
		return template.Parse(DefaultVersionNumber)
	}

	return template.Parse(s.VersionNumber)
}

type Dependency struct {
	DependencyType DependencyType `yaml:"dependency_type" json:"dependency_type"`
	FileName       *string        `yaml:"file_name" json:"file_name"`
	ProjectID      *string        `yaml:"project_id" json:"project_id"`
	VersionID      *string        `yaml:"version_id" json:"version_id"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read config %s", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}

	return cfg, nil
}

func Parse(data []byte) (*Config, error) {
	cfg := new(Config)
	if err := v2.UnmarshalStrict(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks everything that can be checked without a release: the
// repository name, every file regex and every version number template.
func (c *Config) Validate() error {
	if _, err := release.ParseRepo(c.GitHub); err != nil {
		return err
	}
	if _, err := compileRegex(c.FileRegex); err != nil {
		return err
	}
	if err := validateModrinth(c.Modrinth); err != nil {
		return err
	}
	for i, p := range c.Projects {
		if _, err := compileRegex(p.FileRegex); err != nil {
			return errors.Wrapf(err, "project %d", i)
		}
		if err := validateModrinth(p.Modrinth); err != nil {
			return errors.Wrapf(err, "project %d", i)
		}
	}

	return nil
}

func validateModrinth(s *ModrinthSettings) error {
	if s == nil {
		return nil
	}
	if _, err := s.VersionTemplate(); err != nil {
		return errors.Wrap(err, "modrinth version_number")
	}

	return nil
}

func compileRegex(expr string) (*regexp.Regexp, error) {
	if expr == "" {
		return nil, nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid file_regex %q", expr)
	}

	return re, nil
}

// Level returns the configured release level, falling back to beta for
// prereleases and release otherwise.
func (c *Config) Level(prerelease bool) ReleaseLevel {
	switch {
	case c.ReleaseLevel != "":
		return c.ReleaseLevel
	case prerelease:
		return Beta
	default:
		return Release
	}
}
