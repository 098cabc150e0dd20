package persistent

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aleksmelnikov/meme-annotator/internal/repo"
	"github.com/aleksmelnikov/meme-annotator/pkg/types/errs"
)

// AssetStore - изображения на локальном диске. Логические пути:
//
//	/images/<username>/<file> -> <dir>/instagram/<username>/<file>
//	/uploads/<file>           -> <dir>/uploads/<file>
type AssetStore struct {
	dir string
}

var _ repo.AssetRepo = (*AssetStore)(nil)

func NewAssetStore(dir string) *AssetStore {
	return &AssetStore{dir: dir}
}

func (s *AssetStore) Exists(path string) bool {
	full, err := s.resolve(path)
	if err != nil {
		return false
	}

	_, err = os.Stat(full)

	return err == nil
}

func (s *AssetStore) ReadBytes(path string) ([]byte, error) {
	full, err := s.resolve(path)
	if err != nil {
		return nil, fmt.Errorf("AssetStore - ReadBytes - s.resolve: %w", err)
	}

	data, err := os.ReadFile(full)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errs.ErrAssetMissing
		}
		return nil, fmt.Errorf("AssetStore - ReadBytes - os.ReadFile: %w", err)
	}

	return data, nil
}

func (s *AssetStore) Write(path string, data io.Reader) error {
	full, err := s.resolve(path)
	if err != nil {
		return fmt.Errorf("AssetStore - Write - s.resolve: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("AssetStore - Write - os.MkdirAll: %w", err)
	}

	f, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("AssetStore - Write - os.Create: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, data); err != nil {
		return fmt.Errorf("AssetStore - Write - io.Copy: %w", err)
	}

	return nil
}

func (s *AssetStore) Delete(path string) error {
	full, err := s.resolve(path)
	if err != nil {
		return fmt.Errorf("AssetStore - Delete - s.resolve: %w", err)
	}

	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("AssetStore - Delete - os.Remove: %w", err)
	}

	return nil
}

func (s *AssetStore) DeleteDir(username string) error {
	if username == "" || strings.ContainsAny(username, `/\`) {
		return fmt.Errorf("AssetStore - DeleteDir: invalid username %q", username)
	}

	if err := os.RemoveAll(filepath.Join(s.dir, "instagram", username)); err != nil {
		return fmt.Errorf("AssetStore - DeleteDir - os.RemoveAll: %w", err)
	}

	return nil
}

func (s *AssetStore) resolve(path string) (string, error) {
	cleaned := filepath.ToSlash(filepath.Clean("/" + strings.TrimPrefix(path, "/")))

	switch {
	case strings.HasPrefix(cleaned, "/images/"):
		return filepath.Join(s.dir, "instagram", filepath.FromSlash(strings.TrimPrefix(cleaned, "/images/"))), nil
	case strings.HasPrefix(cleaned, "/uploads/"):
		return filepath.Join(s.dir, "uploads", filepath.FromSlash(strings.TrimPrefix(cleaned, "/uploads/"))), nil
	default:
		return "", fmt.Errorf("unsupported asset path %q", path)
	}
}
