// initio.go
package initio

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/UriCaBa/initio/pkg/appx"
	"github.com/UriCaBa/initio/pkg/catalog"
	"github.com/UriCaBa/initio/pkg/core"
	"github.com/UriCaBa/initio/pkg/executor"
	"github.com/UriCaBa/initio/pkg/platform"
	"github.com/UriCaBa/initio/pkg/process"
	"github.com/UriCaBa/initio/pkg/setup"
	"github.com/UriCaBa/initio/pkg/store"
	"github.com/UriCaBa/initio/pkg/validate"
	"github.com/UriCaBa/initio/pkg/winget"
)

// Re-export core types for convenience
type (
	Config       = core.Config
	PackageItem  = core.PackageItem
	CatalogEntry = catalog.Entry
	RunReport    = executor.RunReport
	Observer     = executor.Observer
	Run          = store.Run
	SearchResult = winget.SearchResult
)

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return core.DefaultConfig()
}

// Option customises a Manager
type Option func(*Manager)

// WithRunner replaces the process runner used for every external call.
func WithRunner(r process.Runner) Option {
	return func(m *Manager) { m.runner = r }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *logrus.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithPlatform replaces PATH detection, e.g. with a fixed tool set.
func WithPlatform(p *platform.Platform) Option {
	return func(m *Manager) { m.platform = p }
}

// WithNotifier receives every item mutation.
func WithNotifier(n core.ChangeNotifier) Option {
	return func(m *Manager) { m.notifier = n }
}

// Manager owns the tracked items and wires the orchestrator components.
type Manager struct {
	config   *Config
	logger   *logrus.Logger
	runner   process.Runner
	notifier core.ChangeNotifier
	platform *platform.Platform
	shell    string
	shellErr error

	winget   *winget.PackageManager
	appx     *appx.Manager
	resolver *catalog.Resolver
	db       *store.DB
}

// NewManager creates a manager and opens its state database.
func NewManager(cfg *Config, opts ...Option) (*Manager, error) {
	if cfg == nil {
		cfg = core.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, &Error{Op: "init", Err: err}
	}

	m := &Manager{config: cfg}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = logrus.New()
		m.logger.SetOutput(io.Discard)
	}
	if m.runner == nil {
		m.runner = process.NewRunner(m.logger)
	}

	if m.platform == nil {
		m.platform = platform.Detect(cfg.Winget.Path, cfg.Shell.Path, platform.ToolPowerShell, platform.ToolPwsh)
	}

	// Unresolved tools keep their configured name; launching them reports the
	// failure per item and Probe reports it up front.
	wingetPath, err := platform.ResolveWinget(m.platform, cfg.Winget.Path)
	if err != nil {
		wingetPath = cfg.Winget.Path
		m.logger.WithError(err).Debug("winget not resolved")
	}
	m.shell, m.shellErr = platform.ResolveShell(m.platform, cfg.Shell.Path)
	if m.shellErr != nil {
		m.shell = cfg.Shell.Path
		m.logger.WithError(m.shellErr).Debug("Shell not resolved")
	}
	m.logger.WithFields(logrus.Fields{"winget": wingetPath, "shell": m.shell}).Debug("Resolved tools")

	m.winget = winget.NewPackageManager(winget.NewClient(m.runner, &winget.Config{
		Path:           wingetPath,
		Silent:         cfg.Winget.Silent,
		VersionTimeout: cfg.Timeouts.Version,
		InstallTimeout: cfg.Timeouts.Install,
		ListTimeout:    cfg.Timeouts.List,
		ExportTimeout:  cfg.Timeouts.List,
	}, m.logger), m.logger)

	m.appx = appx.NewManager(appx.NewClient(m.runner, &appx.Config{
		Shell:         m.shell,
		DetectTimeout: cfg.Timeouts.Detect,
		RemoveTimeout: cfg.Timeouts.Remove,
		VerifyTimeout: cfg.Timeouts.VerifyRemoved,
	}, m.logger), m.logger)

	m.resolver = catalog.NewResolver(&catalog.Config{
		URL:       cfg.Catalog.URL,
		CachePath: cfg.Catalog.CachePath,
		Timeout:   cfg.Timeouts.Catalog,
		Retries:   cfg.Catalog.Retries,
		Logger:    m.logger,
	})

	db, err := store.Open(cfg.State.Path)
	if err != nil {
		return nil, &Error{Op: "open state", Err: err}
	}
	m.db = db
	return m, nil
}

// Config returns the active configuration.
func (m *Manager) Config() *Config {
	return m.config
}

// Close cleans up any resources used by the manager
func (m *Manager) Close() error {
	return m.db.Close()
}

// ProbeResult reports tool availability.
type ProbeResult struct {
	Platform      *platform.Platform
	WingetPath    string
	WingetVersion string
	WingetErr     error
	Shell         string
	ShellErr      error
}

// WingetAvailable reports whether `winget --version` succeeded.
func (p *ProbeResult) WingetAvailable() bool {
	return p.WingetErr == nil && p.WingetVersion != ""
}

// Probe checks which tools are usable. Shell is the shell removal runs use.
func (m *Manager) Probe(ctx context.Context) *ProbeResult {
	p := &ProbeResult{
		Platform:   m.platform,
		WingetPath: m.winget.Client().Config().Path,
		Shell:      m.shell,
		ShellErr:   m.shellErr,
	}

	p.WingetVersion, p.WingetErr = m.winget.Version(ctx)
	if p.WingetErr != nil {
		m.logger.WithError(p.WingetErr).Warn("winget not detected")
	} else {
		m.logger.WithField("version", p.WingetVersion).Info("winget detected")
	}
	return p
}

// Catalog resolves the installable catalog. It never fails.
func (m *Manager) Catalog(ctx context.Context) ([]CatalogEntry, catalog.Source) {
	entries, source := m.resolver.Resolve(ctx)
	m.logger.WithFields(logrus.Fields{"source": source, "entries": len(entries)}).Info("Catalog loaded")
	return entries, source
}

// Search asks winget for packages matching query.
func (m *Manager) Search(ctx context.Context, query string) ([]SearchResult, error) {
	if validate.SanitizeQuery(query) == "" {
		return nil, &Error{Op: "search", Err: fmt.Errorf("%w: empty query", ErrInvalidItem)}
	}
	results, err := m.winget.Search(ctx, query)
	if err != nil {
		return nil, &Error{Op: "search", Err: err}
	}
	return results, nil
}

// Items returns the tracked install items. The first call on a new state
// seeds it from the configured setup file or the built-in default setup.
func (m *Manager) Items(ctx context.Context) ([]*PackageItem, error) {
	items, err := m.db.Items(ctx)
	if err != nil {
		return nil, &Error{Op: "load items", Err: err}
	}
	if len(items) > 0 {
		return items, nil
	}
	seeded, err := m.db.Seeded(ctx)
	if err != nil {
		return nil, &Error{Op: "load items", Err: err}
	}
	if seeded {
		return items, nil
	}

	manifest := setup.Default()
	if m.config.Setup.Path != "" {
		manifest, err = setup.Load(m.config.Setup.Path)
		if err != nil {
			return nil, &Error{Op: "load setup", Err: err}
		}
	}
	items = manifest.Items()
	if err := m.SaveItems(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

// SaveItems persists the tracked install items.
func (m *Manager) SaveItems(ctx context.Context, items []*PackageItem) error {
	if err := m.db.SaveItems(ctx, items); err != nil {
		return &Error{Op: "save items", Err: err}
	}
	return nil
}

func (m *Manager) notify(item *PackageItem) {
	core.Notify(m.notifier, item)
}

func findItem(items []*PackageItem, id string) (int, *PackageItem) {
	for i, item := range items {
		if strings.EqualFold(item.ID, id) {
			return i, item
		}
	}
	return -1, nil
}
