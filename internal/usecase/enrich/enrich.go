package enrich

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aleksmelnikov/meme-annotator/internal/dto"
	"github.com/aleksmelnikov/meme-annotator/internal/entity"
	"github.com/aleksmelnikov/meme-annotator/internal/infrastructure"
	"github.com/aleksmelnikov/meme-annotator/internal/repo"
	"github.com/aleksmelnikov/meme-annotator/internal/usecase"
	"github.com/aleksmelnikov/meme-annotator/pkg/logger"
)

type EnrichUseCase struct {
	posts  repo.PostRepo
	assets repo.AssetRepo
	ex     infrastructure.AttributeExtractor
	logger logger.Interface

	workers        int
	extractTimeout time.Duration
}

var _ usecase.EnrichUseCase = (*EnrichUseCase)(nil)

func New(
	posts repo.PostRepo,
	assets repo.AssetRepo,
	ex infrastructure.AttributeExtractor,
	l logger.Interface,
	workers int,
	extractTimeout time.Duration,
) *EnrichUseCase {
	return &EnrichUseCase{
		posts:          posts,
		assets:         assets,
		ex:             ex,
		logger:         l,
		workers:        workers,
		extractTimeout: extractTimeout,
	}
}

// EnrichBatch обогащает запрошенные посты одного origin. Вызовы экстрактора
// идут конкурентно, не больше workers одновременно. Ошибка одного id не
// прерывает остальных; порядок результатов не гарантируется.
func (uc *EnrichUseCase) EnrichBatch(ctx context.Context, origin entity.Origin, ids []string) ([]dto.EnrichOutcome, error) {
	ids = dedupe(ids)
	if len(ids) == 0 {
		return []dto.EnrichOutcome{}, nil
	}

	// 1. читаем снапшот один раз, мутируем в памяти, сохраняем один раз
	posts, err := uc.posts.Load(ctx, origin)
	if err != nil {
		return nil, fmt.Errorf("EnrichUseCase - EnrichBatch - uc.posts.Load: %w", err)
	}

	byID := make(map[string]*entity.Post, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}

	// 2. фан-аут с ограничением: воркеры читают канал задач.
	// Каждая задача мутирует только свой пост, общий слайс не трогает.
	tasks := make(chan string)
	outcomes := make(chan dto.EnrichOutcome, len(ids))

	var wg sync.WaitGroup
	for i := 0; i < min(uc.workers, len(ids)); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range tasks {
				outcomes <- uc.enrichOne(ctx, byID[id], id)
			}
		}()
	}

	for _, id := range ids {
		tasks <- id
	}
	close(tasks)

	// 3. барьер: сохраняем только после завершения всех задач
	wg.Wait()
	close(outcomes)

	results := make([]dto.EnrichOutcome, 0, len(ids))
	succeeded := 0
	for outcome := range outcomes {
		if outcome.Kind == dto.OutcomeSuccess {
			succeeded++
		}
		results = append(results, outcome)
	}

	// 4. одно сохранение, только если что-то изменилось
	if succeeded > 0 {
		if err := uc.posts.Save(ctx, origin, posts); err != nil {
			return results, fmt.Errorf("EnrichUseCase - EnrichBatch - uc.posts.Save: %w", err)
		}
	}

	uc.logger.Info("enrich batch done: origin=%s requested=%d succeeded=%d", origin, len(ids), succeeded)

	return results, nil
}

func (uc *EnrichUseCase) enrichOne(ctx context.Context, post *entity.Post, id string) dto.EnrichOutcome {
	if post == nil {
		return dto.EnrichOutcome{PostID: id, Kind: dto.OutcomeNotFound}
	}

	if !uc.assets.Exists(post.ImagePath) {
		return dto.EnrichOutcome{PostID: id, Kind: dto.OutcomeAssetMissing}
	}

	image, err := uc.assets.ReadBytes(post.ImagePath)
	if err != nil {
		return dto.EnrichOutcome{PostID: id, Kind: dto.OutcomeAssetMissing, Error: err.Error()}
	}

	extractCtx, cancel := context.WithTimeout(ctx, uc.extractTimeout)
	defer cancel()

	attrs, err := uc.ex.Extract(extractCtx, image, contentTypeFromPath(post.ImagePath), post.Caption)
	if err != nil {
		// запись не трогаем, повтор безопасен
		return dto.EnrichOutcome{PostID: id, Kind: dto.OutcomeExtractionFailed, Error: err.Error()}
	}

	post.Attributes = attrs
	if post.Status == entity.Pending {
		post.Status = entity.Enriched
	}

	return dto.EnrichOutcome{PostID: id, Kind: dto.OutcomeSuccess}
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}

func contentTypeFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
