package config

import (
	"os"

	"github.com/pkg/errors"
	v2 "gopkg.in/yaml.v2"
)

type Secrets struct {
	GitHubToken     string `yaml:"github_token"`
	CurseForgeToken string `yaml:"curseforge_token"`
	ModrinthToken   string `yaml:"modrinth_token"`
}

func LoadSecrets(path string) (Secrets, error) {
	var s Secrets
	data, err := os.ReadFile(path)
	if err != nil {
		return s, errors.Wrapf(err, "could not read secrets %s", path)
	}
	if err = v2.Unmarshal(data, &s); err != nil {
		return s, errors.Wrapf(err, "invalid secrets %s", path)
	}

	return s, nil
}

// SecretsFromEnv reads GITHUB_TOKEN, CURSEFORGE_TOKEN and MODRINTH_TOKEN.
// Unset variables leave the token empty.
func SecretsFromEnv() Secrets {
	return Secrets{
		GitHubToken:     os.Getenv("GITHUB_TOKEN"),
		CurseForgeToken: os.Getenv("CURSEFORGE_TOKEN"),
		ModrinthToken:   os.Getenv("MODRINTH_TOKEN"),
	}
}

func (s Secrets) CurseForge() (string, error) {
	if s.CurseForgeToken == "" {
		return "", errors.New("no CurseForge token configured")
	}

	return s.CurseForgeToken, nil
}

func (s Secrets) Modrinth() (string, error) {
	if s.ModrinthToken == "" {
		return "", errors.New("no Modrinth token configured")
	}

	return s.ModrinthToken, nil
}
