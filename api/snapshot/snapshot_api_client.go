package snapshot

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"terre-server/api"
)

// SnapshotApiClient embeds the common HTTPClient
type SnapshotApiClient struct {
	*api.HTTPClient
	path string
}

// NewSnapshotApiClient creates a client reading the snapshot at path, relative to the base URL.
func NewSnapshotApiClient(httpClient *api.HTTPClient, path string) *SnapshotApiClient {
	return &SnapshotApiClient{
		HTTPClient: httpClient,
		path:       path,
	}
}

// FetchSnapshot issues a single GET for the snapshot document.
func (c *SnapshotApiClient) FetchSnapshot(ctx context.Context) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.Request(ctx, "GET", c.path, nil, nil, &raw); err != nil {
		return nil, errors.Wrapf(err, "fetching snapshot %s", c.path)
	}
	return raw, nil
}
