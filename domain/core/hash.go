package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
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

// FingerprintHash identifies a ProfileResult's inputs (source identity,
// seed, column names) so two runs can be compared for reproducibility.
type FingerprintHash Hash

func (h FingerprintHash) String() string { return Hash(h).String() }

// ComputeFingerprint hashes the facts that identify a profiling run:
// source identity, seed, and the set of column names. The names are
// sorted first, so column order does not change the fingerprint.
func ComputeFingerprint(sourceIdentity string, seed int64, columnNames []string) FingerprintHash {
	names := make([]string, len(columnNames))
	copy(names, columnNames)
	sort.Strings(names)

	var data strings.Builder
	data.WriteString(sourceIdentity)
	data.WriteString(fmt.Sprintf("|seed=%d|", seed))
	for _, name := range names {
		data.WriteString(name)
		data.WriteString(",")
	}

	return FingerprintHash(NewHash([]byte(data.String())))
}
