// Package id generates prefixed identifiers for stored records.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes for each record family.
const (
	PrefixItem   = "item"
	PrefixReview = "review"
	PrefixUser   = "user"
)

// Generate creates a prefixed NanoID, e.g. "item-V1StGXR8_Z5jdHi6B-myT".
//
// Returns an error if the system has insufficient entropy.
func Generate(prefix string) (string, error) {
	raw, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + raw, nil
}

// MustGenerate is like Generate but panics on failure.
func MustGenerate(prefix string) string {
	v, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return v
}
