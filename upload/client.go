// Package upload talks to GitHub, Modrinth and CurseForge.
package upload

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/pkg/errors"

	"fbnoi.com/mirror-upload/config"
	"fbnoi.com/mirror-upload/logging"
)

const (
	GitHubAPI     = "https://api.github.com"
	ModrinthAPI   = "https://api.modrinth.com/v2"
	CurseForgeAPI = "https://minecraft.curseforge.com/api"

	DefaultUserAgent = "fbnoi/mirror-upload"
)

type Endpoints struct {
	GitHub     string
	Modrinth   string
	CurseForge string
}

func DefaultEndpoints() Endpoints {
	return Endpoints{GitHub: GitHubAPI, Modrinth: ModrinthAPI, CurseForge: CurseForgeAPI}
}

type Client struct {
	HTTP      *http.Client
	Endpoints Endpoints
	Secrets   config.Secrets
	Logger    *slog.Logger
	UserAgent string
}

func NewClient(secrets config.Secrets, logger *slog.Logger) *Client {
	if logger == nil {
		logger = logging.Nop()
	}

	return &Client{
		HTTP:      http.DefaultClient,
		Endpoints: DefaultEndpoints(),
		Secrets:   secrets,
		Logger:    logger,
		UserAgent: DefaultUserAgent,
	}
}

// StatusError is returned for responses outside the 2xx range. ReadErr
// is set when the error body could not be read in full; Body then holds
// what arrived before the failure.
type StatusError struct {
	Action  string
	Status  int
	Body    string
	ReadErr error
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s: %d %s\n%s", e.Action, e.Status, http.StatusText(e.Status), e.Body)
	if e.ReadErr != nil {
		msg += fmt.Sprintf("\n(could not read response body: %v)", e.ReadErr)
	}

	return msg
}

func (e *StatusError) Unwrap() error {
	return e.ReadErr
}

func (c *Client) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, errors.Wrapf(err, "could not create request for %s", url)
	}
	req.Header.Set("User-Agent", c.UserAgent)

	return req, nil
}

// do sends req and turns non-2xx responses into a *StatusError. action
// describes the request for error messages.
func (c *Client) do(req *http.Request, action string) (*http.Response, error) {
	c.Logger.Debug("request", "method", req.Method, "url", req.URL.String())
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, action)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)

		return nil, &StatusError{Action: action, Status: resp.StatusCode, Body: string(body), ReadErr: err}
	}

	return resp, nil
}

func (c *Client) doJSON(req *http.Request, action string, v any) error {
	resp, err := c.do(req, action)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err = json.NewDecoder(resp.Body).Decode(v); err != nil {
		return errors.Wrapf(err, "%s: invalid response", action)
	}

	return nil
}
