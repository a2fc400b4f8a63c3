// pkg/winget/client.go
package winget

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/UriCaBa/initio/pkg/process"
	"github.com/UriCaBa/initio/pkg/validate"
)

// Client shells out to the winget executable.
type Client struct {
	runner process.Runner
	config *Config
	logger *logrus.Logger
}

// NewClient creates a client. Zero-valued config fields get defaults and a nil
// logger discards output.
func NewClient(runner process.Runner, cfg *Config, logger *logrus.Logger) *Client {
	if cfg == nil {
		cfg = &Config{Silent: true}
	}
	if cfg.Path == "" {
		cfg.Path = DefaultExecutable
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultMaxResults
	}
	if cfg.VersionTimeout == 0 {
		cfg.VersionTimeout = DefaultVersionTimeout
	}
	if cfg.InstallTimeout == 0 {
		cfg.InstallTimeout = DefaultInstallTimeout
	}
	if cfg.ListTimeout == 0 {
		cfg.ListTimeout = DefaultListTimeout
	}
	if cfg.ExportTimeout == 0 {
		cfg.ExportTimeout = DefaultExportTimeout
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	if runner == nil {
		runner = process.NewRunner(logger)
	}
	return &Client{runner: runner, config: cfg, logger: logger}
}

// Config returns the effective configuration.
func (c *Client) Config() *Config {
	return c.config
}

// Version runs `winget --version`.
func (c *Client) Version(ctx context.Context) (string, error) {
	res, err := c.runner.Run(ctx, c.config.Path, []string{"--version"}, c.config.VersionTimeout)
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		return "", fmt.Errorf("winget --version exited with code %d", res.ExitCode)
	}
	return strings.TrimSpace(res.Stdout), nil
}

// InstallArgs builds the install command line for id.
func InstallArgs(id string, silent bool) []string {
	args := []string{"install", "--id", id}
	if silent {
		args = append(args, "--silent")
	}
	return append(args, AcceptFlags...)
}

// Install runs one install attempt. The id is validated before anything is
// launched.
func (c *Client) Install(ctx context.Context, id string, onLine process.LineFunc) (*process.Result, error) {
	if err := validate.PackageID(id); err != nil {
		return nil, err
	}
	c.logger.WithField("id", id).Debug("Installing package")
	return c.runner.RunLines(ctx, c.config.Path, InstallArgs(id, c.config.Silent), c.config.InstallTimeout, onLine)
}

// List runs `winget list` and returns its raw output.
func (c *Client) List(ctx context.Context) (*process.Result, error) {
	args := append([]string{"list"}, AcceptFlags...)
	return c.runner.Run(ctx, c.config.Path, args, c.config.ListTimeout)
}

// ListQuery runs `winget list <query>` and reports whether the output mentions
// query. It works for both ids and display names.
func (c *Client) ListQuery(ctx context.Context, query string) (bool, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return false, nil
	}
	args := append([]string{"list", query}, AcceptFlags...)
	res, err := c.runner.Run(ctx, c.config.Path, args, c.config.ListTimeout)
	if err != nil {
		return false, err
	}
	return containsFold(res.Combined(), query), nil
}

// ExportIDs runs `winget export` into a temporary file and returns every
// package identifier in it.
func (c *Client) ExportIDs(ctx context.Context) ([]string, error) {
	dir, err := os.MkdirTemp("", "initio-export-*")
	if err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}
	defer os.RemoveAll(dir)

	out := filepath.Join(dir, "export.json")
	args := []string{"export", "--output", out, "--accept-source-agreements", "--disable-interactivity"}
	res, err := c.runner.Run(ctx, c.config.Path, args, c.config.ExportTimeout)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(out)
	if err != nil {
		return nil, fmt.Errorf("winget export exited with code %d and wrote nothing: %w", res.ExitCode, err)
	}
	return ParseExport(data)
}

// Search runs `winget search` for a sanitised query.
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	query = validate.SanitizeQuery(query)
	if query == "" {
		return nil, nil
	}
	args := []string{"search", query, "--source", DefaultSource, "--disable-interactivity"}
	res, err := c.runner.Run(ctx, c.config.Path, args, c.config.ListTimeout)
	if err != nil {
		return nil, err
	}
	// Some winget versions exit non-zero for "no results"; parse regardless.
	return ParseSearch(res.Stdout, c.config.MaxResults), nil
}

// IsSuccess reports whether an install result counts as success: exit code
// zero or a known success phrase in the output.
func IsSuccess(res *process.Result) bool {
	if res == nil {
		return false
	}
	if res.ExitCode == 0 {
		return true
	}
	out := res.Combined()
	for _, phrase := range SuccessPhrases {
		if containsFold(out, phrase) {
			return true
		}
	}
	return false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
