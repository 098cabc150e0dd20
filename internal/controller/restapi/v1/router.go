package v1

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aleksmelnikov/meme-annotator/internal/usecase"
	"github.com/aleksmelnikov/meme-annotator/pkg/logger"
)

func NewPipelineRoutes(
	apiV1Group fiber.Router,
	enrich usecase.EnrichUseCase,
	annotate usecase.AnnotateUseCase,
	posts usecase.PostUseCase,
	l logger.Interface,
) {
	r := &V1{enrich: enrich, annotate: annotate, posts: posts, logger: l}

	{
		// история
		apiV1Group.Get("/history", r.history)
		apiV1Group.Get("/uploads/history", r.uploadsHistory)

		// ручная загрузка
		apiV1Group.Post("/upload", r.uploadPost)

		// пайплайн
		apiV1Group.Post("/enrich", r.enrichScraped)
		apiV1Group.Post("/uploads/enrich", r.enrichUploaded)
		apiV1Group.Post("/annotate", r.annotateBatch)

		// удаление
		apiV1Group.Delete("/post/:id", r.deletePost)
		apiV1Group.Delete("/folder/:username", r.deleteFolder)
	}
}
