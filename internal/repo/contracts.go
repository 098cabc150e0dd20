package repo

import (
	"context"
	"io"

	"github.com/aleksmelnikov/meme-annotator/internal/entity"
)

type (
	// PostRepo - плоское хранилище записей одного origin. Save перезаписывает
	// снапшот целиком и атомарно. Конкурентные записи одного origin на уровне
	// процесса должны сериализоваться вызывающим.
	PostRepo interface {
		Load(ctx context.Context, origin entity.Origin) ([]*entity.Post, error)
		Save(ctx context.Context, origin entity.Origin, posts []*entity.Post) error
		FindByID(ctx context.Context, origin entity.Origin, id string) (*entity.Post, error)
	}

	// AssetRepo - бинарные файлы изображений по логическому пути
	// вида /images/<username>/<file>.
	AssetRepo interface {
		Exists(path string) bool
		ReadBytes(path string) ([]byte, error)
		Write(path string, data io.Reader) error
		Delete(path string) error
		DeleteDir(username string) error
	}
)
