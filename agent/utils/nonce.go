package utils

import (
	"crypto/sha256"

	"github.com/google/uuid"
	"github.com/mr-tron/base58"
)

// UUID generates new random UUID, and returns value as string.
func UUID() string {
	return uuid.New().String()
}

// RawKey derives a libindy RAW wallet key from the secret. The key is base58
// encoded 32 bytes.
func RawKey(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return base58.Encode(sum[:])
}

// ShortDID derives an indy DID from the seed, i.e. the first 16 bytes of the
// SHA-256 digest as base58.
func ShortDID(seed string) string {
	sum := sha256.Sum256([]byte(seed))
	return base58.Encode(sum[:16])
}
