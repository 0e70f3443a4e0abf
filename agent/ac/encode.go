package ac

import (
	"crypto/sha256"
	"math"
	"math/big"
	"strconv"
)

// EncodeValue returns the AnonCreds encoding of the raw attribute value.
// 32 bit integers are kept as they are, everything else is the SHA-256 of the
// raw value as a decimal big integer.
func EncodeValue(raw string) string {
	i, err := strconv.ParseInt(raw, 10, 64)
	if err == nil && i <= math.MaxInt32 && i >= math.MinInt32 {
		return strconv.FormatInt(i, 10)
	}
	sum := sha256.Sum256([]byte(raw))
	return new(big.Int).SetBytes(sum[:]).String()
}

// EncodeValues returns the credential values JSON model for the raw values.
func EncodeValues(raws map[string]string) map[string]AttrValue {
	values := make(map[string]AttrValue, len(raws))
	for name, raw := range raws {
		values[name] = AttrValue{Raw: raw, Encoded: EncodeValue(raw)}
	}
	return values
}
