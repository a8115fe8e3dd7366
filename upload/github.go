package upload

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"fbnoi.com/mirror-upload/multipart"
	"fbnoi.com/mirror-upload/release"
)

const (
	githubAPIVersion  = "2022-11-28"
	githubContentType = "application/vnd.github+json"
)

func (c *Client) githubRequest(ctx context.Context, u, accept string) (*http.Request, error) {
	req, err := c.newRequest(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("X-GitHub-Api-Version", githubAPIVersion)
	if c.Secrets.GitHubToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.Secrets.GitHubToken)
	}

	return req, nil
}

func (c *Client) GetRelease(ctx context.Context, repo release.Repo, tag string) (*release.Release, error) {
	u := fmt.Sprintf("%s/repos/%s/%s/releases/tags/%s", c.Endpoints.GitHub,
		url.PathEscape(repo.Owner), url.PathEscape(repo.Name), url.PathEscape(tag))
	req, err := c.githubRequest(ctx, u, githubContentType)
	if err != nil {
		return nil, err
	}
	rel := new(release.Release)
	if err = c.doJSON(req, fmt.Sprintf("could not get release %s@%s from GitHub", repo, tag), rel); err != nil {
		return nil, err
	}

	return rel, nil
}

func (c *Client) DownloadAsset(ctx context.Context, asset release.Asset) ([]byte, error) {
	req, err := c.githubRequest(ctx, asset.URL, "application/octet-stream")
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req, fmt.Sprintf("could not get asset %s from GitHub", asset.Name))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "could not download %s", asset.URL)
	}
	c.Logger.Debug("downloaded asset", "name", asset.Name, "bytes", len(data))

	return data, nil
}

// AttachAsset downloads asset and adds it to form as a file field.
func (c *Client) AttachAsset(ctx context.Context, form *multipart.Form, field string, asset release.Asset) error {
	data, err := c.DownloadAsset(ctx, asset)
	if err != nil {
		return err
	}
	form.AddFile(field, asset.Name, data)

	return nil
}
