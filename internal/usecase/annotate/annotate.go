package annotate

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/aleksmelnikov/meme-annotator/internal/dto"
	"github.com/aleksmelnikov/meme-annotator/internal/eligibility"
	"github.com/aleksmelnikov/meme-annotator/internal/entity"
	"github.com/aleksmelnikov/meme-annotator/internal/infrastructure"
	"github.com/aleksmelnikov/meme-annotator/internal/repo"
	"github.com/aleksmelnikov/meme-annotator/internal/usecase"
	"github.com/aleksmelnikov/meme-annotator/pkg/logger"
	"github.com/aleksmelnikov/meme-annotator/pkg/types/errs"
)

type AnnotateUseCase struct {
	posts   repo.PostRepo
	assets  repo.AssetRepo
	catalog infrastructure.CatalogClient
	proc    infrastructure.ImageProcessor
	logger  logger.Interface
}

var _ usecase.AnnotateUseCase = (*AnnotateUseCase)(nil)

func New(
	posts repo.PostRepo,
	assets repo.AssetRepo,
	catalog infrastructure.CatalogClient,
	proc infrastructure.ImageProcessor,
	l logger.Interface,
) *AnnotateUseCase {
	return &AnnotateUseCase{
		posts:   posts,
		assets:  assets,
		catalog: catalog,
		proc:    proc,
		logger:  l,
	}
}

// SubmitBatch отправляет обогащённые посты в каталог одним запросом и
// раскладывает частичный ответ обратно по двум хранилищам.
//
// Индексное пространство ответа каталога ссылается только на реально
// отправленные посты в порядке их добавления в форму. Пропущенные фильтром
// посты индексов не получают - нарушение этого порядка молча перепутает
// статусы между несвязанными постами.
func (uc *AnnotateUseCase) SubmitBatch(ctx context.Context, ids []string, authToken string) (*dto.AnnotateSummary, error) {
	// 1. собираем кандидатов из обоих хранилищ, только enriched
	scraped, err := uc.posts.Load(ctx, entity.OriginScraped)
	if err != nil {
		return nil, fmt.Errorf("AnnotateUseCase - SubmitBatch - uc.posts.Load(scraped): %w", err)
	}
	uploaded, err := uc.posts.Load(ctx, entity.OriginUploaded)
	if err != nil {
		return nil, fmt.Errorf("AnnotateUseCase - SubmitBatch - uc.posts.Load(uploaded): %w", err)
	}

	requested := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		requested[id] = struct{}{}
	}

	var candidates []*entity.Post
	for _, p := range append(append([]*entity.Post{}, scraped...), uploaded...) {
		if _, ok := requested[p.ID]; ok && p.Status == entity.Enriched {
			candidates = append(candidates, p)
		}
	}

	if len(candidates) == 0 {
		return nil, errs.ErrNothingToSubmit
	}

	// 2. назначаем индексы отправки; непригодные пропускаем молча,
	// они остаются enriched до следующей попытки
	items := uc.buildItems(candidates)
	if len(items) == 0 {
		return nil, errs.ErrNothingToSubmit
	}

	// 3. один вызов на весь батч; при ошибке статусы не меняются
	result, err := uc.catalog.Submit(ctx, items, authToken)
	if err != nil {
		return nil, fmt.Errorf("AnnotateUseCase - SubmitBatch - uc.catalog.Submit: %w", err)
	}

	// 4. реконсиляция по индексам отправки
	accepted := make(map[int]bool, len(items))
	if result.All {
		for _, item := range items {
			accepted[item.Index] = true
		}
	} else {
		for _, idx := range result.AcceptedIndexes {
			if idx >= 0 && idx < len(items) {
				accepted[idx] = true
			}
		}
	}

	changed := make(map[entity.Origin]bool)
	acceptedCount := 0
	for _, item := range items {
		if accepted[item.Index] {
			item.Post.Status = entity.Completed
			changed[item.Post.Origin] = true
			acceptedCount++
		}
	}

	// 5. сохраняем каждый origin, где были переходы, независимо
	if changed[entity.OriginScraped] {
		if err := uc.posts.Save(ctx, entity.OriginScraped, scraped); err != nil {
			return nil, fmt.Errorf("AnnotateUseCase - SubmitBatch - uc.posts.Save(scraped): %w", err)
		}
	}
	if changed[entity.OriginUploaded] {
		if err := uc.posts.Save(ctx, entity.OriginUploaded, uploaded); err != nil {
			return nil, fmt.Errorf("AnnotateUseCase - SubmitBatch - uc.posts.Save(uploaded): %w", err)
		}
	}

	uc.logger.Info("annotate batch done: submitted=%d accepted=%d", len(items), acceptedCount)

	return &dto.AnnotateSummary{Submitted: len(items), Accepted: acceptedCount}, nil
}

func (uc *AnnotateUseCase) buildItems(candidates []*entity.Post) []*dto.SubmissionItem {
	var items []*dto.SubmissionItem

	for _, p := range candidates {
		if !eligibility.IsSubmittable(p) {
			continue
		}

		image, err := uc.assets.ReadBytes(p.ImagePath)
		if err != nil {
			uc.logger.Warn("skip post without asset: id=%s path=%s", p.ID, p.ImagePath)
			continue
		}

		data, contentType, name, err := uc.proc.EnsureSubmittable(image, filepath.Base(p.ImagePath))
		if err != nil {
			uc.logger.Warn("skip post with broken image: id=%s error=%v", p.ID, err)
			continue
		}

		items = append(items, &dto.SubmissionItem{
			Index:       len(items),
			Post:        p,
			Actors:      eligibility.FilterActors(p.Attributes.Actors),
			Dialogs:     eligibility.FilterDialogs(p.Attributes.Dialogs),
			Image:       data,
			ImageName:   name,
			ContentType: contentType,
		})
	}

	return items
}
