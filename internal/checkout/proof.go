package checkout

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxProofSize is the largest accepted payment screenshot.
const MaxProofSize = 5 << 20

var allowedProofTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
}

// ProofFile is an uploaded payment screenshot held in memory.
type ProofFile struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}

// Ext is the lowercased extension of the original filename, or one derived
// from the content type when the filename has none.
func (f *ProofFile) Ext() string {
	if ext := strings.ToLower(filepath.Ext(f.Filename)); ext != "" {
		return ext
	}
	return allowedProofTypes[normalizeType(f.ContentType)]
}

// ProofName is the storage name of a proof: payment-proof-<unixnano>-<uuid><ext>.
// The primary copy and its mirror are stored under the same name.
func ProofName(f *ProofFile, now time.Time) string {
	return fmt.Sprintf("payment-proof-%d-%s%s", now.UnixNano(), uuid.New().String(), f.Ext())
}

// ValidateProof checks presence, type and size, in that order.
func ValidateProof(f *ProofFile) error {
	if f == nil {
		return ErrProofRequired
	}
	if _, ok := allowedProofTypes[normalizeType(f.ContentType)]; !ok {
		return ErrInvalidFileType
	}
	if f.Size > MaxProofSize {
		return ErrFileTooLarge
	}
	return nil
}

func normalizeType(ct string) string {
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}

// SavedProof identifies a proof persisted by a ProofStore.
type SavedProof struct {
	Name string
	URL  string
}

// ProofStore persists the primary copy of a proof under name and returns its
// public URL.
type ProofStore interface {
	Save(ctx context.Context, name string, f *ProofFile) (*SavedProof, error)
}

// ProofMirror keeps a secondary copy of a proof, named after the primary
// copy, and returns its URL.
type ProofMirror interface {
	Name() string
	Mirror(ctx context.Context, name string, f *ProofFile) (string, error)
}
