package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...interface{}) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// GraphKeyOpts are the rendering options that change a graph artifact.
type GraphKeyOpts struct {
	Format     string `json:"format"` // "svg" or "dot"
	Detailed   bool   `json:"detailed"`
	EdgeLabels bool   `json:"edge_labels"`
}

// Keyer derives cache keys.
type Keyer interface {
	// GraphKey returns the key of the rendered reference graph of the
	// document whose content hash is docHash.
	GraphKey(docHash string, opts GraphKeyOpts) string
}

// DefaultKeyer is the unprefixed [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) GraphKey(docHash string, opts GraphKeyOpts) string {
	return hashKey("graph", docHash, opts)
}
