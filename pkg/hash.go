package mmqa

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"log/slog"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/zeebo/blake3"
	"golang.org/x/crypto/sha3"
)

// HashAlgorithm represents a hash algorithm configuration
type HashAlgorithm struct {
	Name    string
	Size    int // digest width in bytes
	NewFunc func() hash.Hash
}

// GetHashAlgorithm returns the hash algorithm configuration for the given name.
// Only 256-bit algorithms are offered so digests stay fixed-width.
func GetHashAlgorithm(name string) (*HashAlgorithm, error) {
	hashType, ok := HashTypeFromName(strings.TrimSpace(name))
	if !ok {
		return nil, fmt.Errorf("unsupported hash algorithm: %s", name)
	}

	algorithm := &HashAlgorithm{Name: HashTypeName(hashType), Size: DigestSize}
	switch hashType {
	case HashTypeSHA256:
		algorithm.NewFunc = func() hash.Hash { return sha256.New() }
	case HashTypeSHA3256:
		algorithm.NewFunc = func() hash.Hash { return sha3.New256() }
	case HashTypeBLAKE3:
		algorithm.NewFunc = func() hash.Hash { return blake3.New() }
	}
	return algorithm, nil
}

// Hasher computes content digests by streaming files through a fixed-size buffer
type Hasher struct {
	algorithm  *HashAlgorithm
	bufferSize int
	logger     *slog.Logger
}

// NewHasher creates a hasher. A nil algorithm selects SHA-256 and a
// non-positive buffer size selects DefaultHashBuffer.
func NewHasher(algorithm *HashAlgorithm, bufferSize int) *Hasher {
	if algorithm == nil {
		algorithm, _ = GetHashAlgorithm(DefaultHashAlgorithm)
	}
	if bufferSize <= 0 {
		bufferSize, _ = ParseHumanSize(DefaultHashBuffer)
	}
	return &Hasher{algorithm: algorithm, bufferSize: bufferSize, logger: discardLogger()}
}

// withLogger returns a copy of h that reports per-file diagnostics to logger
func (h *Hasher) withLogger(logger *slog.Logger) *Hasher {
	clone := *h
	clone.logger = logger
	return &clone
}

// Algorithm returns the configured algorithm
func (h *Hasher) Algorithm() *HashAlgorithm {
	return h.algorithm
}

// HashReader folds r into a fresh hash chunk by chunk and returns the raw digest
func (h *Hasher) HashReader(r io.Reader) ([]byte, error) {
	hasher := h.algorithm.NewFunc()
	buffer := make([]byte, h.bufferSize)

	for {
		n, err := r.Read(buffer)
		if n > 0 {
			hasher.Write(buffer[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	sum := hasher.Sum(nil)
	if len(sum) != h.algorithm.Size {
		return nil, fmt.Errorf("%s produced a %d-byte digest, expected %d", h.algorithm.Name, len(sum), h.algorithm.Size)
	}
	return sum, nil
}

// HashFile opens path on fsys, streams its content and returns the hex digest.
// Errors are *FileAccessError; the file is closed on every path.
func (h *Hasher) HashFile(fsys billy.Filesystem, path string) (string, error) {
	file, err := fsys.Open(path)
	if err != nil {
		return "", &FileAccessError{Op: "open", Path: path, Err: err}
	}
	defer file.Close()

	if err := adviseSequential(file); err != nil {
		h.logger.Debug("Skipping read-ahead advice", "path", path, "error", err)
	}

	sum, err := h.HashReader(file)
	if err != nil {
		return "", &FileAccessError{Op: "read", Path: path, Err: err}
	}
	return hex.EncodeToString(sum), nil
}
