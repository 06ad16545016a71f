package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// Domain-specific hash types
type (
	DatasetHash Hash
	EngineHash  Hash
)

// Constructors
func NewDatasetHash(data []byte) DatasetHash { return DatasetHash(NewHash(data)) }
func NewEngineHash(data []byte) EngineHash   { return EngineHash(NewHash(data)) }

// String conversions
func (h DatasetHash) String() string { return Hash(h).String() }
func (h EngineHash) String() string  { return Hash(h).String() }

// ComputeDatasetHash fingerprints an observed spectrum. Identical
// frequency/temperature columns always produce the same hash.
func ComputeDatasetHash(freq, temp []float64) DatasetHash {
	var data strings.Builder
	for i := range freq {
		data.WriteString(fmt.Sprintf("%v,%v;", freq[i], temp[i]))
	}
	return NewDatasetHash([]byte(data.String()))
}

// ComputeEngineHash fingerprints an engine configuration over a dataset so
// ledger rows from different runs stay distinguishable.
func ComputeEngineHash(order int, model string, sigma float64, dataset DatasetHash) EngineHash {
	var data strings.Builder
	data.WriteString(fmt.Sprintf("order=%d;model=%s;sigma=%v;", order, model, sigma))
	data.WriteString(dataset.String())
	return NewEngineHash([]byte(data.String()))
}
