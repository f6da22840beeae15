// Package backup persists payment screenshots: the primary copy on local
// disk and an optional mirror on Google Drive or Cloudinary.
package backup

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"github.com/xyzlearns/ShopEase1/internal/checkout"
)

// ThumbnailWidth is the width of the preview written next to each proof.
const ThumbnailWidth = 300

// LocalStore writes proofs under dir and serves them from baseURL/uploads.
type LocalStore struct {
	dir     string
	baseURL string
	logger  *zap.Logger
}

var _ checkout.ProofStore = (*LocalStore)(nil)

// NewLocalStore creates dir and its thumb/ subdirectory when missing.
func NewLocalStore(dir, baseURL string, logger *zap.Logger) (*LocalStore, error) {
	if err := os.MkdirAll(filepath.Join(dir, "thumb"), 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalStore{dir: dir, baseURL: baseURL, logger: logger}, nil
}

// Dir is the directory served under /uploads.
func (s *LocalStore) Dir() string { return s.dir }

// Save writes the proof as dir/name. A thumbnail is attempted afterwards; its
// failure is logged and does not fail Save.
func (s *LocalStore) Save(_ context.Context, name string, f *checkout.ProofFile) (*checkout.SavedProof, error) {
	if name == "" || filepath.Base(name) != name {
		return nil, fmt.Errorf("invalid proof name %q", name)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), f.Data, 0o644); err != nil {
		return nil, fmt.Errorf("write proof: %w", err)
	}

	if err := s.thumbnail(name, f.Data); err != nil {
		s.logger.Warn("Thumbnail generation failed", zap.String("file", name), zap.Error(err))
	}

	return &checkout.SavedProof{
		Name: name,
		URL:  fmt.Sprintf("%s/uploads/%s", s.baseURL, name),
	}, nil
}

func (s *LocalStore) thumbnail(name string, data []byte) error {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}
	thumb := imaging.Resize(img, ThumbnailWidth, 0, imaging.Lanczos)
	return imaging.Save(thumb, filepath.Join(s.dir, "thumb", name))
}
