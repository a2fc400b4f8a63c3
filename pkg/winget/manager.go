// pkg/winget/manager.go
package winget

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/UriCaBa/initio/pkg/core"
	"github.com/UriCaBa/initio/pkg/process"
	"github.com/UriCaBa/initio/pkg/validate"
)

// PackageManager drives installs and listings through a Client. It satisfies
// both the executor's tool contract and the reconciler's listing source.
type PackageManager struct {
	client *Client
	logger *logrus.Logger
}

func NewPackageManager(client *Client, logger *logrus.Logger) *PackageManager {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	if client == nil {
		client = NewClient(nil, nil, logger)
	}
	return &PackageManager{client: client, logger: logger}
}

// Client returns the underlying CLI client.
func (pm *PackageManager) Client() *Client {
	return pm.client
}

func (pm *PackageManager) Validate(item *core.PackageItem) error {
	return validate.PackageID(item.ID)
}

func (pm *PackageManager) Apply(ctx context.Context, item *core.PackageItem, onLine process.LineFunc) (*process.Result, error) {
	return pm.client.Install(ctx, item.ID, onLine)
}

func (pm *PackageManager) Succeeded(_ *core.PackageItem, res *process.Result) bool {
	return IsSuccess(res)
}

// Verify asks winget whether the item is present, first by id and then by
// display name, since store and winget ids can differ for the same product.
func (pm *PackageManager) Verify(ctx context.Context, item *core.PackageItem) (bool, error) {
	log := pm.logger.WithField("id", item.ID)

	found, err := pm.client.ListQuery(ctx, item.ID)
	if err != nil {
		if errors.Is(err, process.ErrCancelled) {
			return false, err
		}
		log.WithError(err).Debug("Verification by id failed")
	}
	if found {
		return true, nil
	}

	if item.Name == "" || strings.EqualFold(item.Name, item.ID) {
		return false, err
	}
	found, err = pm.client.ListQuery(ctx, item.Name)
	if err != nil {
		log.WithError(err).Debug("Verification by name failed")
	}
	return found, err
}

// Installed returns the current installed listing: identifiers from
// `winget export` when that works, plus the raw `winget list` text. The text
// carries display names for items whose export id is a store code.
func (pm *PackageManager) Installed(ctx context.Context) (core.Listing, error) {
	ids, err := pm.client.ExportIDs(ctx)
	if errors.Is(err, process.ErrCancelled) {
		return core.Listing{}, err
	}
	if err != nil {
		pm.logger.WithError(err).Debug("Export failed, falling back to list output")
	} else {
		pm.logger.WithField("count", len(ids)).Debug("Read installed ids from export")
	}

	res, lerr := pm.client.List(ctx)
	if lerr != nil {
		if len(ids) > 0 && !errors.Is(lerr, process.ErrCancelled) {
			pm.logger.WithError(lerr).Debug("List failed, matching by export ids only")
			return core.Listing{IDs: ids}, nil
		}
		return core.Listing{}, lerr
	}
	return core.Listing{IDs: ids, Text: res.Combined()}, nil
}

func (pm *PackageManager) Search(ctx context.Context, query string) ([]SearchResult, error) {
	return pm.client.Search(ctx, query)
}

func (pm *PackageManager) Version(ctx context.Context) (string, error) {
	return pm.client.Version(ctx)
}
