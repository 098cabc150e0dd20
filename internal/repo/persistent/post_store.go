package persistent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aleksmelnikov/meme-annotator/internal/entity"
	"github.com/aleksmelnikov/meme-annotator/internal/repo"
	"github.com/aleksmelnikov/meme-annotator/pkg/types/errs"
)

const (
	scrapedMetadataFile  = "metadata.json"
	uploadedMetadataFile = "uploads/metadata.json"
)

// PostStore - снапшоты записей в JSON, отдельный файл на каждый origin.
type PostStore struct {
	dir string
}

var _ repo.PostRepo = (*PostStore)(nil)

func NewPostStore(dir string) *PostStore {
	return &PostStore{dir: dir}
}

func (s *PostStore) Load(_ context.Context, origin entity.Origin) ([]*entity.Post, error) {
	path, err := s.metadataPath(origin)
	if err != nil {
		return nil, fmt.Errorf("PostStore - Load - s.metadataPath: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		// файла ещё нет - пустая история
		if errors.Is(err, os.ErrNotExist) {
			return []*entity.Post{}, nil
		}
		return nil, fmt.Errorf("PostStore - Load - os.ReadFile: %w", err)
	}

	var posts []*entity.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, fmt.Errorf("PostStore - Load - json.Unmarshal: %w", err)
	}

	return posts, nil
}

// Save атомарно перезаписывает снапшот: сначала полностью пишем временный
// файл рядом, потом rename. Прерванная запись не портит прежнее содержимое.
func (s *PostStore) Save(_ context.Context, origin entity.Origin, posts []*entity.Post) error {
	path, err := s.metadataPath(origin)
	if err != nil {
		return fmt.Errorf("PostStore - Save - s.metadataPath: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("PostStore - Save - os.MkdirAll: %w", err)
	}

	data, err := json.MarshalIndent(posts, "", "  ")
	if err != nil {
		return fmt.Errorf("PostStore - Save - json.MarshalIndent: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".metadata-*.json")
	if err != nil {
		return fmt.Errorf("PostStore - Save - os.CreateTemp: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("PostStore - Save - tmp.Write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("PostStore - Save - tmp.Close: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("PostStore - Save - os.Rename: %w", err)
	}

	return nil
}

func (s *PostStore) FindByID(ctx context.Context, origin entity.Origin, id string) (*entity.Post, error) {
	posts, err := s.Load(ctx, origin)
	if err != nil {
		return nil, fmt.Errorf("PostStore - FindByID - s.Load: %w", err)
	}

	for _, p := range posts {
		if p.ID == id {
			return p, nil
		}
	}

	return nil, errs.ErrRecordNotFound
}

func (s *PostStore) metadataPath(origin entity.Origin) (string, error) {
	switch origin {
	case entity.OriginScraped:
		return filepath.Join(s.dir, scrapedMetadataFile), nil
	case entity.OriginUploaded:
		return filepath.Join(s.dir, uploadedMetadataFile), nil
	default:
		return "", errs.ErrUnknownOrigin
	}
}
