// Package resources bundles the static data shipped inside the binary.
package resources

import _ "embed"

// FallbackBusinesses is the companies snapshot used when the published one
// cannot be fetched or validated.
//
//go:embed fallback_businesses.json
var FallbackBusinesses []byte
