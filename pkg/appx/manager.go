// pkg/appx/manager.go
package appx

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/UriCaBa/initio/pkg/core"
	"github.com/UriCaBa/initio/pkg/process"
	"github.com/UriCaBa/initio/pkg/validate"
)

// Manager removes preinstalled packages. It satisfies the executor's tool
// contract and the reconciler's listing source for removal items.
type Manager struct {
	client *Client
	logger *logrus.Logger
}

func NewManager(client *Client, logger *logrus.Logger) *Manager {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	if client == nil {
		client = NewClient(nil, nil, logger)
	}
	return &Manager{client: client, logger: logger}
}

func (m *Manager) Client() *Client {
	return m.client
}

func (m *Manager) Validate(item *core.PackageItem) error {
	return validate.PackageName(item.ID)
}

func (m *Manager) Apply(ctx context.Context, item *core.PackageItem, onLine process.LineFunc) (*process.Result, error) {
	return m.client.Remove(ctx, item.ID, onLine)
}

// Succeeded never short-circuits: Remove-AppxPackage exits 0 when the
// wildcard matched nothing, so every removal is confirmed by Verify.
func (m *Manager) Succeeded(_ *core.PackageItem, _ *process.Result) bool {
	return false
}

// Verify confirms nothing matching the package is left.
func (m *Manager) Verify(ctx context.Context, item *core.PackageItem) (bool, error) {
	return m.client.VerifyRemoved(ctx, item.ID)
}

// Installed lists installed package names.
func (m *Manager) Installed(ctx context.Context) (core.Listing, error) {
	names, err := m.client.InstalledNames(ctx)
	if err != nil {
		return core.Listing{}, err
	}
	m.logger.WithField("count", len(names)).Debug("Detected installed packages")
	return core.Listing{IDs: names}, nil
}
