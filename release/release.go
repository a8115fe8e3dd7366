// Package release models GitHub releases and the template variables they
// provide.
package release

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"fbnoi.com/mirror-upload/template"
)

type Release struct {
	TagName    string  `json:"tag_name"`
	Name       *string `json:"name"`
	Body       *string `json:"body"`
	Prerelease bool    `json:"prerelease"`
	Assets     []Asset `json:"assets"`
}

type Asset struct {
	URL  string `json:"url"`
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// DisplayName returns the release name, or the tag when the release is
// unnamed.
func (r *Release) DisplayName() string {
	if r.Name != nil && *r.Name != "" {
		return *r.Name
	}

	return r.TagName
}

func (r *Release) Changelog() string {
	if r.Body == nil {
		return ""
	}

	return *r.Body
}

// FilterAssets returns the assets whose name matches re, in release order.
// A nil re matches every asset.
func (r *Release) FilterAssets(re *regexp.Regexp) []Asset {
	var assets []Asset
	for _, a := range r.Assets {
		if re == nil || re.MatchString(a.Name) {
			assets = append(assets, a)
		}
	}

	return assets
}

// Variables returns the template variables of the release:
//
//	tag      the tag name
//	version  the tag name without a leading "v"
//	name     the display name
func (r *Release) Variables() template.Params {
	return template.Params{
		"tag":     r.TagName,
		"version": strings.TrimPrefix(r.TagName, "v"),
		"name":    r.DisplayName(),
	}
}

type Repo struct {
	Owner string
	Name  string
}

func (r Repo) String() string {
	return r.Owner + "/" + r.Name
}

func ParseRepo(s string) (Repo, error) {
	owner, name, ok := strings.Cut(s, "/")
	if !ok || owner == "" || name == "" {
		return Repo{}, errors.Errorf("expected GitHub repository name in the format 'owner/repo', found %q", s)
	}

	return Repo{Owner: owner, Name: name}, nil
}
