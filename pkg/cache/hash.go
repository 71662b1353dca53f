package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/panelstitch/panelstitch/pkg/compose/feature"
)

// Hash fingerprints panel file content. The full 64-character hex digest is
// used so distinct panels never share an analysis entry.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// CatalogHash fingerprints a feature catalog. A panel analyzed with one
// catalog must not be served for another, since the catalog decides which
// structural groups the locator matches.
func CatalogHash(c feature.Catalog) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%v|%v|%v|%v|%v",
		c.Axes, c.XAxis, c.YAxis, c.Tick, c.Patch)))
	return hex.EncodeToString(sum[:])
}

// AnalysisKey builds the cache key for one panel's analysis result. The key
// binds the content hash and the catalog hash, so changing either
// invalidates the entry.
func AnalysisKey(contentHash, catalogHash string) string {
	sum := sha256.Sum256([]byte(contentHash + "\x00" + catalogHash))
	return "analysis:" + hex.EncodeToString(sum[:])
}
