package backup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/xyzlearns/ShopEase1/internal/checkout"
)

// DriveMirror uploads proofs into a Drive folder and shares them read-only
// with anyone holding the link.
type DriveMirror struct {
	files       *drive.FilesService
	permissions *drive.PermissionsService
	folderID    string
}

var _ checkout.ProofMirror = (*DriveMirror)(nil)

func NewDriveMirror(ctx context.Context, folderID string, opts ...option.ClientOption) (*DriveMirror, error) {
	svc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("drive client: %w", err)
	}
	if folderID == "" {
		folderID = "root"
	}
	return &DriveMirror{files: svc.Files, permissions: svc.Permissions, folderID: folderID}, nil
}

func (m *DriveMirror) Name() string { return "drive" }

func (m *DriveMirror) Mirror(ctx context.Context, name string, f *checkout.ProofFile) (string, error) {
	mirrored, err := mirrorName(name)
	if err != nil {
		return "", err
	}
	meta := &drive.File{
		Name:     mirrored,
		Parents:  []string{m.folderID},
		MimeType: f.ContentType,
	}
	created, err := m.files.Create(meta).
		Media(bytes.NewReader(f.Data), googleapi.ContentType(f.ContentType)).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("drive upload: %w", err)
	}

	perm := &drive.Permission{Role: "reader", Type: "anyone"}
	if _, err := m.permissions.Create(created.Id, perm).Context(ctx).Do(); err != nil {
		return "", fmt.Errorf("drive share %s: %w", created.Id, err)
	}
	return fmt.Sprintf("https://drive.google.com/file/d/%s/view", created.Id), nil
}

// mirrorName slugs the stem of the stored proof name and keeps its extension.
func mirrorName(name string) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if stem == "" {
		return "", errors.New("proof name is required")
	}
	return slug.Make(stem) + ext, nil
}
