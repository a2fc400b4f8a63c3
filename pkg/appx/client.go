// pkg/appx/client.go
package appx

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/UriCaBa/initio/pkg/process"
	"github.com/UriCaBa/initio/pkg/validate"
)

// Client runs Appx cmdlets through the scripting shell.
type Client struct {
	runner process.Runner
	config *Config
	logger *logrus.Logger
}

func NewClient(runner process.Runner, cfg *Config, logger *logrus.Logger) *Client {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.Shell == "" {
		cfg.Shell = DefaultShell
	}
	if cfg.DetectTimeout == 0 {
		cfg.DetectTimeout = DefaultDetectTimeout
	}
	if cfg.RemoveTimeout == 0 {
		cfg.RemoveTimeout = DefaultRemoveTimeout
	}
	if cfg.VerifyTimeout == 0 {
		cfg.VerifyTimeout = DefaultVerifyTimeout
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

// ScriptArgs wraps a script in the shell's non-interactive invocation.
func ScriptArgs(script string) []string {
	args := make([]string, 0, len(shellArgs)+1)
	args = append(args, shellArgs...)
	return append(args, script)
}

func (c *Client) script(ctx context.Context, script string, timeout time.Duration, onLine process.LineFunc) (*process.Result, error) {
	c.logger.WithField("script", script).Debug("Running shell script")
	return c.runner.RunLines(ctx, c.config.Shell, ScriptArgs(script), timeout, onLine)
}

// InstalledNames lists every installed Appx package name. The JSON form is
// tried first; plain one-name-per-line output is the fallback.
func (c *Client) InstalledNames(ctx context.Context) ([]string, error) {
	res, err := c.script(ctx, detectJSONScript, c.config.DetectTimeout, nil)
	if err == nil && res.ExitCode == 0 {
		if names, perr := ParseNamesJSON(res.Stdout); perr == nil && len(names) > 0 {
			return names, nil
		}
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		c.logger.WithError(err).Debug("JSON detection failed, retrying as text")
	}

	res, err = c.script(ctx, detectTextScript, c.config.DetectTimeout, nil)
	if err != nil {
		return nil, err
	}
	if res.ExitCode != 0 {
		return nil, fmt.Errorf("package detection exited with code %d: %s", res.ExitCode, strings.TrimSpace(res.Stderr))
	}
	return ParseNamesText(res.Stdout), nil
}

// Remove runs one removal attempt for packageName.
func (c *Client) Remove(ctx context.Context, packageName string, onLine process.LineFunc) (*process.Result, error) {
	if err := validate.PackageName(packageName); err != nil {
		return nil, err
	}
	return c.script(ctx, fmt.Sprintf(removeScript, packageName), c.config.RemoveTimeout, onLine)
}

// VerifyRemoved reports whether no installed package matches packageName.
func (c *Client) VerifyRemoved(ctx context.Context, packageName string) (bool, error) {
	if err := validate.PackageName(packageName); err != nil {
		return false, err
	}
	res, err := c.script(ctx, fmt.Sprintf(verifyScript, packageName), c.config.VerifyTimeout, nil)
	if err != nil {
		return false, err
	}
	return res.ExitCode == 0 && strings.TrimSpace(res.Stdout) == "", nil
}

// ParseNamesJSON reads ConvertTo-Json output, which is an array of
// {"Name": ...} objects or a single object when only one package exists.
func ParseNamesJSON(out string) ([]string, error) {
	out = strings.TrimSpace(out)
	if !gjson.Valid(out) {
		return nil, fmt.Errorf("detection output is not valid JSON")
	}

	doc := gjson.Parse(out)
	var values []gjson.Result
	switch {
	case doc.IsArray():
		values = doc.Get("#.Name").Array()
	case doc.IsObject():
		values = []gjson.Result{doc.Get("Name")}
	default:
		return nil, fmt.Errorf("unexpected detection output type")
	}

	var names []string
	for _, v := range values {
		if s := strings.TrimSpace(v.String()); s != "" {
			names = append(names, s)
		}
	}
	return names, nil
}

// ParseNamesText splits one-name-per-line output.
func ParseNamesText(out string) []string {
	var names []string
	for _, line := range strings.Split(out, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			names = append(names, s)
		}
	}
	return names
}
