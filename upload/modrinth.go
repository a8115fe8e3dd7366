package upload

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pkg/errors"

	"fbnoi.com/mirror-upload/config"
	"fbnoi.com/mirror-upload/multipart"
	"fbnoi.com/mirror-upload/release"
)

type CreateVersionData struct {
	Name          string              `json:"name"`
	VersionNumber string              `json:"version_number"`
	Changelog     *string             `json:"changelog"`
	Dependencies  []config.Dependency `json:"dependencies"`
	GameVersions  []string            `json:"game_versions"`
	VersionType   config.ReleaseLevel `json:"version_type"`
	Loaders       []string            `json:"loaders"`
	Featured      bool                `json:"featured"`
	ProjectID     string              `json:"project_id"`
	FileParts     []string            `json:"file_parts"`
	PrimaryFile   string              `json:"primary_file"`
}

type ModrinthVersion struct {
	ID string `json:"id"`
}

// NewVersionData builds the Modrinth version for assets. The first asset
// becomes the primary file.
func NewVersionData(cfg *config.Config, target config.Target, rel *release.Release, assets []release.Asset) (*CreateVersionData, error) {
	if target.Modrinth == nil {
		return nil, errors.New("no Modrinth project configured")
	}
	if len(assets) == 0 {
		return nil, errors.Errorf("no assets of release %s match the file regex", rel.TagName)
	}
	tpl := target.VersionNumber
	if tpl == nil {
		var err error
		if tpl, err = target.Modrinth.VersionTemplate(); err != nil {
			return nil, err
		}
	}
	version, err := tpl.Resolve(rel.Variables().Lookup())
	if err != nil {
		return nil, errors.Wrap(err, "could not compute version number")
	}

	data := &CreateVersionData{
		Name:          rel.DisplayName(),
		VersionNumber: version,
		Changelog:     rel.Body,
		Dependencies:  target.Modrinth.Dependencies,
		GameVersions:  target.GameVersions,
		VersionType:   cfg.Level(rel.Prerelease),
		Featured:      false,
		ProjectID:     target.Modrinth.ProjectID,
		PrimaryFile:   assets[0].Name,
	}
	if data.Dependencies == nil {
		data.Dependencies = []config.Dependency{}
	}
	for _, l := range target.Loaders {
		data.Loaders = append(data.Loaders, l.ModrinthID())
	}
	for _, a := range assets {
		data.FileParts = append(data.FileParts, a.Name)
	}

	return data, nil
}

// UploadToModrinth creates a Modrinth version holding the target's assets.
func (c *Client) UploadToModrinth(ctx context.Context, cfg *config.Config, target config.Target, rel *release.Release) (*ModrinthVersion, error) {
	token, err := c.Secrets.Modrinth()
	if err != nil {
		return nil, err
	}
	assets := rel.FilterAssets(target.FileRegex)
	data, err := NewVersionData(cfg, target, rel, assets)
	if err != nil {
		return nil, err
	}
	c.Logger.Info("uploading to Modrinth", "tag", rel.TagName, "version", data.VersionNumber, "files", len(assets))

	metadata, err := json.Marshal(data)
	if err != nil {
		return nil, errors.Wrap(err, "could not encode Modrinth version data")
	}
	form := multipart.New()
	form.AddText("data", string(metadata))
	for _, a := range assets {
		if err = c.AttachAsset(ctx, form, a.Name, a); err != nil {
			return nil, err
		}
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.Endpoints.Modrinth+"/version", form.Reader())
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", token)
	req.Header.Set("Content-Type", form.ContentType())

	version := new(ModrinthVersion)
	if err = c.doJSON(req, "could not upload project to Modrinth", version); err != nil {
		return nil, err
	}
	if slug := target.Modrinth.Slug; slug != "" {
		c.Logger.Info("uploaded to Modrinth", "link", fmt.Sprintf("https://modrinth.com/mod/%s/version/%s", slug, version.ID))
	}

	return version, nil
}
