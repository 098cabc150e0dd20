package post

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aleksmelnikov/meme-annotator/internal/entity"
	"github.com/aleksmelnikov/meme-annotator/internal/repo"
	"github.com/aleksmelnikov/meme-annotator/internal/usecase"
	"github.com/aleksmelnikov/meme-annotator/pkg/logger"
	"github.com/aleksmelnikov/meme-annotator/pkg/types/errs"
)

type PostUseCase struct {
	posts  repo.PostRepo
	assets repo.AssetRepo
	logger logger.Interface
}

var _ usecase.PostUseCase = (*PostUseCase)(nil)

func New(posts repo.PostRepo, assets repo.AssetRepo, l logger.Interface) *PostUseCase {
	return &PostUseCase{
		posts:  posts,
		assets: assets,
		logger: l,
	}
}

func (uc *PostUseCase) History(ctx context.Context, origin entity.Origin) ([]*entity.Post, error) {
	posts, err := uc.posts.Load(ctx, origin)
	if err != nil {
		return nil, fmt.Errorf("PostUseCase - History - uc.posts.Load: %w", err)
	}

	return posts, nil
}

func (uc *PostUseCase) UploadPost(ctx context.Context, data io.Reader, originalName, caption string) (*entity.Post, error) {
	id := entity.UploadedIDPrefix + uuid.New().String()

	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		ext = ".jpg"
	}
	imagePath := "/uploads/" + id + ext

	// 1. сначала файл
	if err := uc.assets.Write(imagePath, data); err != nil {
		return nil, fmt.Errorf("PostUseCase - UploadPost - uc.assets.Write: %w", err)
	}

	now := time.Now()
	post := &entity.Post{
		ID:        id,
		Origin:    entity.OriginUploaded,
		Caption:   caption,
		ImagePath: imagePath,
		Status:    entity.Pending,
		Timestamp: now,
		ScrapedAt: now,
	}

	// 2. потом запись в снапшот
	posts, err := uc.posts.Load(ctx, entity.OriginUploaded)
	if err == nil {
		err = uc.posts.Save(ctx, entity.OriginUploaded, append(posts, post))
	}

	// если запись не прошла - подчищаем созданный файл
	if err != nil {
		if deleteErr := uc.assets.Delete(imagePath); deleteErr != nil {
			uc.logger.Error(deleteErr, "PostUseCase - UploadPost - uc.assets.Delete")
		}
		return nil, fmt.Errorf("PostUseCase - UploadPost: %w", err)
	}

	return post, nil
}

// DeletePost ищет в обоих хранилищах и удаляет первое совпадение
// вместе с файлом изображения.
func (uc *PostUseCase) DeletePost(ctx context.Context, id string) error {
	for _, origin := range []entity.Origin{entity.OriginScraped, entity.OriginUploaded} {
		posts, err := uc.posts.Load(ctx, origin)
		if err != nil {
			return fmt.Errorf("PostUseCase - DeletePost - uc.posts.Load: %w", err)
		}

		for i, p := range posts {
			if p.ID != id {
				continue
			}

			if err := uc.assets.Delete(p.ImagePath); err != nil {
				uc.logger.Warn("failed to delete asset path=%s, error=%v", p.ImagePath, err)
			}

			remaining := append(append([]*entity.Post{}, posts[:i]...), posts[i+1:]...)
			if err := uc.posts.Save(ctx, origin, remaining); err != nil {
				return fmt.Errorf("PostUseCase - DeletePost - uc.posts.Save: %w", err)
			}

			return nil
		}
	}

	return errs.ErrRecordNotFound
}

// DeleteFolder удаляет все scraped-посты одного аккаунта и каталог их картинок.
func (uc *PostUseCase) DeleteFolder(ctx context.Context, username string) error {
	posts, err := uc.posts.Load(ctx, entity.OriginScraped)
	if err != nil {
		return fmt.Errorf("PostUseCase - DeleteFolder - uc.posts.Load: %w", err)
	}

	remaining := make([]*entity.Post, 0, len(posts))
	for _, p := range posts {
		if p.Username != username {
			remaining = append(remaining, p)
		}
	}

	if len(remaining) == len(posts) {
		return errs.ErrRecordNotFound
	}

	if err := uc.assets.DeleteDir(username); err != nil {
		uc.logger.Warn("failed to delete asset dir username=%s, error=%v", username, err)
	}

	if err := uc.posts.Save(ctx, entity.OriginScraped, remaining); err != nil {
		return fmt.Errorf("PostUseCase - DeleteFolder - uc.posts.Save: %w", err)
	}

	return nil
}
