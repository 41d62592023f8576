package mmqa

import (
	"strings"
)

// Context constant for skiplist entries produced by a traversal
const (
	ScanContext = "scan"
)

// Hash type constants
const (
	HashTypeSHA256  uint16 = 2 // SHA-256 (32 bytes)
	HashTypeSHA3256 uint16 = 4 // SHA3-256 (32 bytes)
	HashTypeBLAKE3  uint16 = 5 // BLAKE3, 256-bit output (32 bytes)
)

// DigestSize is the width in bytes of every supported digest
const DigestSize = 32

// DefaultHashAlgorithm is used when neither config nor caller picks one
const DefaultHashAlgorithm = "sha256"

// DefaultHashBuffer is the read chunk size used when hashing file content
const DefaultHashBuffer = "2M"

// HashTypeName returns the human-readable name for a hash type
func HashTypeName(hashType uint16) string {
	switch hashType {
	case HashTypeSHA256:
		return "sha256"
	case HashTypeSHA3256:
		return "sha3-256"
	case HashTypeBLAKE3:
		return "blake3"
	default:
		return "unknown"
	}
}

// HashTypeFromName returns the hash type constant from a name (case-insensitive)
func HashTypeFromName(name string) (uint16, bool) {
	switch strings.ToLower(name) {
	case "sha256":
		return HashTypeSHA256, true
	case "sha3-256", "sha3":
		return HashTypeSHA3256, true
	case "blake3":
		return HashTypeBLAKE3, true
	default:
		return 0, false
	}
}
