package v1

import (
	"github.com/aleksmelnikov/meme-annotator/internal/usecase"
	"github.com/aleksmelnikov/meme-annotator/pkg/logger"
)

type V1 struct {
	enrich   usecase.EnrichUseCase
	annotate usecase.AnnotateUseCase
	posts    usecase.PostUseCase
	logger   logger.Interface
}
