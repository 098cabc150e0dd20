package restapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"github.com/aleksmelnikov/meme-annotator/config"
	v1 "github.com/aleksmelnikov/meme-annotator/internal/controller/restapi/v1"
	"github.com/aleksmelnikov/meme-annotator/internal/usecase"
	"github.com/aleksmelnikov/meme-annotator/pkg/logger"
)

// @title Meme annotator
// @version 1.0.0
// @host localhost:8080
// @BasePath /v1
func NewRouter(
	app *fiber.App,
	cfg *config.Config,
	enrich usecase.EnrichUseCase,
	annotate usecase.AnnotateUseCase,
	posts usecase.PostUseCase,
	l logger.Interface,
) {
	// Swagger
	if cfg.Swagger.Enabled {
		app.Get("/swagger/*", swagger.HandlerDefault)
	}

	// Routers
	apiV1Group := app.Group("/v1")
	{
		v1.NewPipelineRoutes(apiV1Group, enrich, annotate, posts, l)
	}
}
