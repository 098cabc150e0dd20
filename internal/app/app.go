package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aleksmelnikov/meme-annotator/config"
	"github.com/aleksmelnikov/meme-annotator/internal/controller/restapi"
	"github.com/aleksmelnikov/meme-annotator/internal/infrastructure/catalog"
	"github.com/aleksmelnikov/meme-annotator/internal/infrastructure/extractor"
	"github.com/aleksmelnikov/meme-annotator/internal/infrastructure/processor"
	"github.com/aleksmelnikov/meme-annotator/internal/repo/persistent"
	"github.com/aleksmelnikov/meme-annotator/internal/usecase/annotate"
	"github.com/aleksmelnikov/meme-annotator/internal/usecase/enrich"
	"github.com/aleksmelnikov/meme-annotator/internal/usecase/post"
	"github.com/aleksmelnikov/meme-annotator/pkg/httpserver"
	"github.com/aleksmelnikov/meme-annotator/pkg/logger"
)

func Run(cfg *config.Config) {
	// Logger
	l := logger.New(cfg.Log.Level)

	// Repository
	postStore := persistent.NewPostStore(cfg.Storage.Dir)
	assetStore := persistent.NewAssetStore(cfg.Storage.Dir)

	// Infrastructure
	attributeExtractor := extractor.New(cfg.AI.APIKey, cfg.AI.Model)
	catalogClient := catalog.New(cfg.Catalog.URL, cfg.Catalog.Timeout)
	imageProcessor := processor.New()

	// Use-Case

	// enrich use-case
	enrichUseCase := enrich.New(
		postStore,
		assetStore,
		attributeExtractor,
		l,
		cfg.Enrich.Workers,
		cfg.AI.ExtractTimeout,
	)

	// annotate use-case
	annotateUseCase := annotate.New(
		postStore,
		assetStore,
		catalogClient,
		imageProcessor,
		l,
	)

	// post use-case
	postUseCase := post.New(postStore, assetStore, l)

	// HTTP Server
	httpServer := httpserver.New(l, httpserver.Port(cfg.HTTP.Port), httpserver.Prefork(cfg.HTTP.UsePreforkMode))
	restapi.NewRouter(httpServer.App, cfg, enrichUseCase, annotateUseCase, postUseCase, l)

	// Start Components
	httpServer.Start()

	// Waiting Signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		l.Info("app - Run - signal: %s", s.String())
	case err := <-httpServer.Notify():
		l.Error(fmt.Errorf("app - Run - httpServer.Notify: %w", err))
	}

	// Shutdown
	err := httpServer.Shutdown()
	if err != nil {
		l.Error(fmt.Errorf("app - Run - httpServer.Shutdown: %w", err))
	}
}
