package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"job-portal-backend/internal/domain"
	"job-portal-backend/pkg/apperror"
	"job-portal-backend/pkg/security"

	"github.com/gabriel-vasile/mimetype"
)

// LocalStore keeps uploaded files flat in a single directory on disk.
type LocalStore struct {
	root string
}

var _ domain.FileStore = (*LocalStore)(nil)

// NewLocalStore resolves dir to an absolute path, creating it when missing.
// It fails when the directory cannot be created or is not a directory.
func NewLocalStore(dir string) (*LocalStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("storage: upload directory not configured")
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve upload directory %q: %w", dir, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create upload directory %q: %w", abs, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("storage: stat upload directory %q: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("storage: upload path %q is not a directory", abs)
	}

	// Symlinked roots are compared by their real location
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		abs = real
	}

	return &LocalStore{root: abs}, nil
}

// Root returns the absolute storage directory
func (s *LocalStore) Root() string {
	return s.root
}

// Check reports whether the root is still a usable directory
func (s *LocalStore) Check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	info, err := os.Stat(s.root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("storage: %q is not a directory", s.root)
	}
	return nil
}

// Save writes r to name, replacing any existing file of that name.
// The content is staged in a temp file and renamed into place.
func (s *LocalStore) Save(ctx context.Context, name string, r io.Reader) (int64, error) {
	path, err := s.resolve(name)
	if err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	// The root may have been removed underneath us
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return 0, apperror.Storage("Failed to prepare upload directory", err)
	}

	tmp, err := os.CreateTemp(s.root, ".upload-*")
	if err != nil {
		return 0, apperror.Storage("Failed to create file", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// no-op after a successful rename
		_ = os.Remove(tmpName)
	}()

	written, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return 0, apperror.Storage("Failed to write file", err)
	}
	if err := tmp.Close(); err != nil {
		return 0, apperror.Storage("Failed to write file", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return 0, apperror.Storage("Failed to write file", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return 0, apperror.Storage("Failed to store file", err)
	}

	return written, nil
}

// Open returns a readable handle for name. Missing, unreadable and
// non-regular files all report not found.
func (s *LocalStore) Open(ctx context.Context, name string) (*domain.FileDownload, error) {
	path, err := s.resolve(name)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Second containment check on the real location, catching symlinks
	// that point outside the root.
	real, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil, apperror.NotFound("File not found")
	}
	if !s.contains(real) {
		return nil, apperror.New(apperror.KindInvalidPath, "Invalid file path", nil)
	}

	f, err := os.Open(real)
	if err != nil {
		return nil, apperror.NotFound("File not found")
	}
	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		f.Close()
		return nil, apperror.NotFound("File not found")
	}

	contentType, err := probe(f, name)
	if err != nil {
		f.Close()
		return nil, apperror.Storage("Failed to read file", err)
	}

	return &domain.FileDownload{
		Name:        name,
		ContentType: contentType,
		Size:        info.Size(),
		ModTime:     info.ModTime(),
		Content:     f,
	}, nil
}

// Remove deletes name if it exists
func (s *LocalStore) Remove(ctx context.Context, name string) (bool, error) {
	path, err := s.resolve(name)
	if err != nil {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, apperror.Storage("Failed to delete file", err)
	}
	return true, nil
}

// resolve maps a bare filename to its absolute path inside the root
func (s *LocalStore) resolve(name string) (string, error) {
	if !security.IsSafeFilename(name) {
		return "", apperror.New(apperror.KindInvalidPath, "Invalid file path", nil)
	}
	path := filepath.Clean(filepath.Join(s.root, name))
	if !s.contains(path) {
		return "", apperror.New(apperror.KindInvalidPath, "Invalid file path", nil)
	}
	return path, nil
}

func (s *LocalStore) contains(path string) bool {
	rel, err := filepath.Rel(s.root, path)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}

// probe sniffs the content type of f and rewinds it. Generic results fall
// back to the extension table.
func probe(f io.ReadSeeker, name string) (string, error) {
	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return "", err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	switch {
	case mtype.Is("application/octet-stream"), mtype.Is("text/plain"), mtype.Is("application/zip"), mtype.Is("application/x-ole-storage"):
		return security.ContentTypeByExtension(name), nil
	}
	return mtype.String(), nil
}
