// Package hex fetches package metadata from the hex.pm registry API.
package hex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/deppfellow/catalog/internal/config"
	"github.com/deppfellow/catalog/internal/model"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// ErrPackageNotFound is returned when the registry has no package by that name.
var ErrPackageNotFound = errors.New("hex package not found")

type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	now        func() time.Time

	logger *zerolog.Logger
}

func NewClient(cfg *config.SyncConfig, logger *zerolog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: newrelic.NewRoundTripper(http.DefaultTransport),
		},
		baseURL:   strings.TrimRight(cfg.HexAPIURL, "/"),
		userAgent: cfg.UserAgent,
		now:       time.Now,
		logger:    logger,
	}
}

// packageResponse is the subset of GET /packages/{name} the catalog keeps.
type packageResponse struct {
	Name                string `json:"name"`
	HTMLURL             string `json:"html_url"`
	DocsHTMLURL         string `json:"docs_html_url"`
	LatestVersion       string `json:"latest_version"`
	LatestStableVersion string `json:"latest_stable_version"`
	Meta                struct {
		Description string            `json:"description"`
		Links       map[string]string `json:"links"`
	} `json:"meta"`
	Downloads struct {
		All int64 `json:"all"`
	} `json:"downloads"`
}

// FetchPackage loads the registry metadata for name.
func (c *Client) FetchPackage(ctx context.Context, name string) (model.PackageSyncFields, error) {
	endpoint := fmt.Sprintf("%s/packages/%s", c.baseURL, url.PathEscape(name))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return model.PackageSyncFields{}, errors.Wrapf(err, "failed to build request for package %s", name)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.PackageSyncFields{}, errors.Wrapf(err, "failed to fetch package %s", name)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return model.PackageSyncFields{}, errors.Wrapf(ErrPackageNotFound, "package %s", name)
	case resp.StatusCode != http.StatusOK:
		return model.PackageSyncFields{}, errors.Errorf("unexpected status %d fetching package %s", resp.StatusCode, name)
	}

	var body packageResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return model.PackageSyncFields{}, errors.Wrapf(err, "failed to decode package %s", name)
	}

	c.logger.Debug().
		Str("package", name).
		Str("latest_version", body.LatestVersion).
		Msg("fetched package from hex")

	return body.syncFields(c.now().UTC()), nil
}

func (r packageResponse) syncFields(syncedAt time.Time) model.PackageSyncFields {
	version := r.LatestStableVersion
	if version == "" {
		version = r.LatestVersion
	}

	return model.PackageSyncFields{
		Description:   optional(r.Meta.Description),
		LatestVersion: optional(version),
		HTMLURL:       optional(r.HTMLURL),
		DocsURL:       optional(r.DocsHTMLURL),
		SourceURL:     optional(sourceLink(r.Meta.Links)),
		Downloads:     r.Downloads.All,
		SyncedAt:      syncedAt,
	}
}

var sourceLinkNames = []string{"github", "gitlab", "source", "repository", "bitbucket"}

// sourceLink picks the repository link out of the package's free-form links,
// matching names case-insensitively.
func sourceLink(links map[string]string) string {
	names := make([]string, 0, len(links))
	for name := range links {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, want := range sourceLinkNames {
		for _, name := range names {
			if strings.EqualFold(strings.TrimSpace(name), want) {
				return links[name]
			}
		}
	}
	return ""
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
