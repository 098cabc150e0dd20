package usecase

import (
	"context"
	"io"

	"github.com/aleksmelnikov/meme-annotator/internal/dto"
	"github.com/aleksmelnikov/meme-annotator/internal/entity"
)

type (
	// EnrichUseCase - обогащение батча постов атрибутами через AI-экстрактор.
	EnrichUseCase interface {
		EnrichBatch(ctx context.Context, origin entity.Origin, ids []string) ([]dto.EnrichOutcome, error)
	}

	// AnnotateUseCase - массовая отправка обогащённых постов в каталог.
	AnnotateUseCase interface {
		SubmitBatch(ctx context.Context, ids []string, authToken string) (*dto.AnnotateSummary, error)
	}

	// PostUseCase - история, ручная загрузка и удаление.
	PostUseCase interface {
		History(ctx context.Context, origin entity.Origin) ([]*entity.Post, error)
		UploadPost(ctx context.Context, data io.Reader, originalName, caption string) (*entity.Post, error)
		DeletePost(ctx context.Context, id string) error
		DeleteFolder(ctx context.Context, username string) error
	}
)
