package snapshot

import (
	"context"
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// SnapshotApiClientMock serves the snapshot from a JSON file on disk.
type SnapshotApiClientMock struct {
	filePath string
}

func NewSnapshotApiClientMock(filePath string) *SnapshotApiClientMock {
	return &SnapshotApiClientMock{filePath: filePath}
}

func (c *SnapshotApiClientMock) FetchSnapshot(ctx context.Context) (json.RawMessage, error) {
	data, err := os.ReadFile(c.filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "reading snapshot %q", c.filePath)
	}
	if !json.Valid(data) {
		return nil, errors.Errorf("snapshot %q is not valid JSON", c.filePath)
	}
	return json.RawMessage(data), nil
}
