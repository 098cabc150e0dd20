package infrastructure

import (
	"context"

	"github.com/aleksmelnikov/meme-annotator/internal/dto"
	"github.com/aleksmelnikov/meme-annotator/internal/entity"
)

type (
	// AttributeExtractor - внешний AI-экстрактор: картинка + подпись -> атрибуты.
	AttributeExtractor interface {
		Extract(ctx context.Context, image []byte, contentType, caption string) (*entity.Attributes, error)
	}

	// CatalogClient - внешний API каталога: один запрос на весь батч,
	// ответ с частичным успехом по индексам.
	CatalogClient interface {
		Submit(ctx context.Context, items []*dto.SubmissionItem, authToken string) (*dto.SubmissionResult, error)
	}

	// ImageProcessor - приведение вложения к допустимому формату каталога.
	ImageProcessor interface {
		EnsureSubmittable(data []byte, filename string) (out []byte, contentType, outName string, err error)
	}
)
