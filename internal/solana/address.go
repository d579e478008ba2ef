// Package solana holds the small amount of Solana knowledge moon needs:
// address validation, Hello Moon collection ids and lamport formatting.
package solana

import (
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
)

// PublicKeyLen is the byte length of an ed25519 Solana public key.
const PublicKeyLen = 32

// collectionIDLen is the length of a Hello Moon collection id (hex md5).
const collectionIDLen = 32

// ValidateAddress checks that s is a base58 encoded 32-byte public key.
func ValidateAddress(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("empty address")
	}
	raw, err := base58.Decode(s)
	if err != nil {
		return fmt.Errorf("invalid address %q: %w", s, err)
	}
	if len(raw) != PublicKeyLen {
		return fmt.Errorf("invalid address %q: decodes to %d bytes, want %d", s, len(raw), PublicKeyLen)
	}
	return nil
}

// IsAddress reports whether s is a valid Solana address.
func IsAddress(s string) bool {
	return ValidateAddress(s) == nil
}

// IsCollectionID reports whether s looks like a helloMoonCollectionId
// (32 lowercase hex characters).
func IsCollectionID(s string) bool {
	if len(s) != collectionIDLen {
		return false
	}
	for _, r := range s {
		if !('0' <= r && r <= '9' || 'a' <= r && r <= 'f') {
			return false
		}
	}
	return true
}
