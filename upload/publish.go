package upload

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"fbnoi.com/mirror-upload/config"
	"fbnoi.com/mirror-upload/release"
)

// Publisher mirrors one GitHub release to every configured target.
type Publisher struct {
	Client *Client
	Config *config.Config
	// DryRun resolves and logs every upload without sending it.
	DryRun bool
}

func (p *Publisher) logger() *slog.Logger {
	return p.Client.Logger
}

func (p *Publisher) Publish(ctx context.Context, tag string) error {
	repo, err := release.ParseRepo(p.Config.GitHub)
	if err != nil {
		return err
	}
	targets, err := p.Config.Targets()
	if err != nil {
		return err
	}
	rel, err := p.Client.GetRelease(ctx, repo, tag)
	if err != nil {
		return err
	}
	p.logger().Info("found GitHub release", "repo", repo.String(), "tag", rel.TagName, "assets", len(rel.Assets))
	if len(rel.Assets) == 0 {
		return errors.Errorf("no assets in GitHub release %s", rel.TagName)
	}

	p.logger().Info("publishing projects", "count", len(targets))
	for i, t := range targets {
		if err = p.publishTarget(ctx, t, rel); err != nil {
			return errors.Wrapf(err, "project %d", i)
		}
	}

	return nil
}

func (p *Publisher) publishTarget(ctx context.Context, t config.Target, rel *release.Release) error {
	if t.Modrinth != nil {
		if p.DryRun {
			data, err := NewVersionData(p.Config, t, rel, rel.FilterAssets(t.FileRegex))
			if err != nil {
				return err
			}
			p.logger().Info("dry run: Modrinth version", "project", data.ProjectID,
				"version", data.VersionNumber, "files", data.FileParts, "type", data.VersionType)
		} else if _, err := p.Client.UploadToModrinth(ctx, p.Config, t, rel); err != nil {
			return err
		}
	}

	if t.CurseForge != nil {
		if p.DryRun {
			assets := rel.FilterAssets(t.FileRegex)
			if len(assets) == 0 {
				return errors.Errorf("no assets of release %s match the file regex", rel.TagName)
			}
			data := NewUploadFileData(p.Config, t, rel, nil, nil)
			for _, a := range assets {
				p.logger().Info("dry run: CurseForge file", "project", t.CurseForge.ProjectID,
					"file", a.Name, "type", data.ReleaseType)
			}
		} else if _, err := p.Client.UploadToCurseForge(ctx, p.Config, t, rel); err != nil {
			return err
		}
	}

	return nil
}
