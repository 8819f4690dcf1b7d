package services

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"terre-server/api/snapshot"
	"terre-server/models/business"
)

// ErrInvalidSnapshot is returned when the snapshot is not a non-empty array
// whose first element carries an id.
var ErrInvalidSnapshot = errors.New("invalid companies snapshot")

// BusinessProvider loads the business list once, falling back to the bundled
// snapshot on any failure.
type BusinessProvider struct {
	snapshotApi snapshot.SnapshotAPI
	fallback    []byte
}

func NewBusinessProvider(snapshotApi snapshot.SnapshotAPI, fallback []byte) *BusinessProvider {
	return &BusinessProvider{
		snapshotApi: snapshotApi,
		fallback:    fallback,
	}
}

// Load performs a single fetch. There is no retry and no merge with a
// previously loaded list.
func (p *BusinessProvider) Load(ctx context.Context) (businesses []business.Business, usedFallback bool) {
	raw, err := p.snapshotApi.FetchSnapshot(ctx)
	if err == nil {
		businesses, err = DecodeSnapshot(raw)
	}
	if err == nil {
		log.Infof("[BusinessProvider] Loaded %d businesses from the remote snapshot", len(businesses))
		return businesses, false
	}

	log.Warnf("[BusinessProvider] Remote snapshot unavailable, using bundled data: %v", err)
	fallback, ferr := DecodeSnapshot(p.fallback)
	if ferr != nil {
		// The bundled file is part of the binary; this only happens on a bad build.
		log.Errorf("[BusinessProvider] Bundled snapshot is invalid: %v", ferr)
		return []business.Business{}, true
	}
	return fallback, true
}

// DecodeSnapshot validates and decodes a snapshot document. Validation is
// minimal and all-or-nothing.
func DecodeSnapshot(raw []byte) ([]business.Business, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, errors.Wrap(ErrInvalidSnapshot, "not a JSON array")
	}
	if len(items) == 0 {
		return nil, errors.Wrap(ErrInvalidSnapshot, "empty array")
	}

	var first struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(items[0], &first); err != nil || first.ID == "" {
		return nil, errors.Wrap(ErrInvalidSnapshot, "first element has no id")
	}

	businesses := make([]business.Business, len(items))
	for i, item := range items {
		if err := json.Unmarshal(item, &businesses[i]); err != nil {
			return nil, errors.Wrapf(err, "decoding business #%d", i)
		}
	}
	return businesses, nil
}
