package snapshot

import (
	"context"
	"encoding/json"
)

// SnapshotAPI fetches the published companies snapshot as raw JSON.
// Shape validation is left to the caller.
type SnapshotAPI interface {
	FetchSnapshot(ctx context.Context) (json.RawMessage, error)
}
