package upload

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"fbnoi.com/mirror-upload/config"
	"fbnoi.com/mirror-upload/multipart"
	"fbnoi.com/mirror-upload/release"
)

const curseForgeTokenHeader = "X-Api-Token"

type GameVersionType struct {
	ID   int    `json:"id"`
	Slug string `json:"slug"`
}

type GameVersion struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	GameVersionTypeID int    `json:"gameVersionTypeID"`
}

type Relations struct {
	Projects []config.ProjectRelation `json:"projects"`
}

type UploadFileData struct {
	Changelog     string              `json:"changelog"`
	ChangelogType string              `json:"changelogType"`
	DisplayName   string              `json:"displayName,omitempty"`
	ParentFileID  *int                `json:"parentFileID,omitempty"`
	GameVersions  []int               `json:"gameVersions"`
	ReleaseType   config.ReleaseLevel `json:"releaseType"`
	Relations     Relations           `json:"relations"`
}

type uploadFileResponse struct {
	ID int `json:"id"`
}

func (c *Client) curseForgeGet(ctx context.Context, path, action string, v any) error {
	token, err := c.Secrets.CurseForge()
	if err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodGet, c.Endpoints.CurseForge+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set(curseForgeTokenHeader, token)

	return c.doJSON(req, action, v)
}

func (c *Client) GameVersionTypes(ctx context.Context) ([]GameVersionType, error) {
	var types []GameVersionType
	err := c.curseForgeGet(ctx, "/game/version-types", "could not get game version types from CurseForge", &types)

	return types, err
}

func (c *Client) GameVersions(ctx context.Context) ([]GameVersion, error) {
	var versions []GameVersion
	err := c.curseForgeGet(ctx, "/game/versions", "could not get game versions from CurseForge", &versions)

	return versions, err
}

func allowedVersionType(slug string) bool {
	return strings.HasPrefix(slug, "minecraft-") || slug == "java" || slug == "modloader"
}

// GameVersionIDs returns the ids of the versions named in wanted whose type is
// a Minecraft, Java or mod loader type.
func GameVersionIDs(types []GameVersionType, versions []GameVersion, wanted []string) []int {
	allowed := make(map[int]bool)
	for _, t := range types {
		if allowedVersionType(t.Slug) {
			allowed[t.ID] = true
		}
	}
	names := make(map[string]bool, len(wanted))
	for _, w := range wanted {
		names[w] = true
	}
	ids := []int{}
	for _, v := range versions {
		if allowed[v.GameVersionTypeID] && names[v.Name] {
			ids = append(ids, v.ID)
		}
	}

	return ids
}

// NewUploadFileData builds the metadata for one CurseForge file. parent is nil
// for the primary file.
func NewUploadFileData(cfg *config.Config, target config.Target, rel *release.Release, gameVersions []int, parent *int) *UploadFileData {
	data := &UploadFileData{
		Changelog:     rel.Changelog(),
		ChangelogType: "markdown",
		ParentFileID:  parent,
		GameVersions:  gameVersions,
		ReleaseType:   cfg.Level(rel.Prerelease),
		Relations:     Relations{Projects: []config.ProjectRelation{}},
	}
	if rel.Name != nil {
		data.DisplayName = *rel.Name
	}
	if target.CurseForge != nil && target.CurseForge.Relations != nil {
		data.Relations.Projects = target.CurseForge.Relations
	}

	return data
}

func (c *Client) uploadCurseForgeFile(ctx context.Context, projectID string, data *UploadFileData, asset release.Asset) (int, error) {
	token, err := c.Secrets.CurseForge()
	if err != nil {
		return 0, err
	}
	metadata, err := json.Marshal(data)
	if err != nil {
		return 0, errors.Wrap(err, "could not encode CurseForge metadata")
	}
	form := multipart.New()
	form.AddText("metadata", string(metadata))
	if err = c.AttachAsset(ctx, form, "file", asset); err != nil {
		return 0, err
	}

	u := fmt.Sprintf("%s/projects/%s/upload-file", c.Endpoints.CurseForge, projectID)
	req, err := c.newRequest(ctx, http.MethodPost, u, form.Reader())
	if err != nil {
		return 0, err
	}
	req.Header.Set(curseForgeTokenHeader, token)
	req.Header.Set("Content-Type", form.ContentType())

	resp := new(uploadFileResponse)
	if err = c.doJSON(req, fmt.Sprintf("could not upload file %s to CurseForge", asset.Name), resp); err != nil {
		return 0, err
	}
	c.Logger.Debug("uploaded file to CurseForge", "name", asset.Name, "id", resp.ID)

	return resp.ID, nil
}

// UploadToCurseForge uploads the target's assets. The first asset is the
// primary file; the others are attached to it as additional files. The id of
// the primary file is returned.
func (c *Client) UploadToCurseForge(ctx context.Context, cfg *config.Config, target config.Target, rel *release.Release) (int, error) {
	settings := target.CurseForge
	if settings == nil {
		return 0, errors.New("no CurseForge project configured")
	}
	assets := rel.FilterAssets(target.FileRegex)
	if len(assets) == 0 {
		return 0, errors.Errorf("no assets of release %s match the file regex", rel.TagName)
	}

	types, err := c.GameVersionTypes(ctx)
	if err != nil {
		return 0, err
	}
	versions, err := c.GameVersions(ctx)
	if err != nil {
		return 0, err
	}
	wanted := append([]string{}, target.GameVersions...)
	for _, l := range target.Loaders {
		wanted = append(wanted, l.CurseForgeName())
	}
	ids := GameVersionIDs(types, versions, wanted)
	c.Logger.Info("uploading to CurseForge", "tag", rel.TagName, "files", len(assets), "game_versions", len(ids))

	primary, err := c.uploadCurseForgeFile(ctx, settings.ProjectID, NewUploadFileData(cfg, target, rel, ids, nil), assets[0])
	if err != nil {
		return 0, err
	}
	for _, a := range assets[1:] {
		data := NewUploadFileData(cfg, target, rel, ids, &primary)
		if _, err = c.uploadCurseForgeFile(ctx, settings.ProjectID, data, a); err != nil {
			return primary, err
		}
	}
	if settings.Slug != "" {
		c.Logger.Info("uploaded to CurseForge", "link",
			fmt.Sprintf("https://curseforge.com/minecraft/mc-mods/%s/files/%d", settings.Slug, primary))
	}

	return primary, nil
}
