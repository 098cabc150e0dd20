package persistent

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleksmelnikov/meme-annotator/internal/entity"
	"github.com/aleksmelnikov/meme-annotator/pkg/types/errs"
)

func TestPostStore_LoadEmpty(t *testing.T) {
	store := NewPostStore(t.TempDir())

	posts, err := store.Load(context.Background(), entity.OriginScraped)

	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestPostStore_SaveLoadRoundtrip(t *testing.T) {
	store := NewPostStore(t.TempDir())
	ctx := context.Background()

	posts := []*entity.Post{
		{
			ID:        "AbCdEf123",
			Origin:    entity.OriginScraped,
			Username:  "nasa",
			Caption:   "to the moon",
			ImagePath: "/images/nasa/AbCdEf123.jpg",
			Status:    entity.Pending,
			ScrapedAt: time.Now().UTC().Truncate(time.Second),
		},
		{
			ID:        "XyZ",
			Origin:    entity.OriginScraped,
			Status:    entity.Enriched,
			ImagePath: "/images/nasa/XyZ.jpg",
			Attributes: &entity.Attributes{
				Title:       "Fight Club",
				ReleaseYear: 1999,
				Actors:      []entity.Actor{{Name: "Brad Pitt", Filmography: []string{"Se7en", "Troy"}}},
			},
		},
	}

	require.NoError(t, store.Save(ctx, entity.OriginScraped, posts))

	loaded, err := store.Load(ctx, entity.OriginScraped)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "AbCdEf123", loaded[0].ID)
	assert.Nil(t, loaded[0].Attributes)
	require.NotNil(t, loaded[1].Attributes)
	assert.Equal(t, entity.Year(1999), loaded[1].Attributes.ReleaseYear)
	assert.Equal(t, []string{"Se7en", "Troy"}, loaded[1].Attributes.Actors[0].Filmography)
}

func TestPostStore_OriginsAreIndependent(t *testing.T) {
	store := NewPostStore(t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, entity.OriginScraped, []*entity.Post{{ID: "scraped1", Origin: entity.OriginScraped}}))
	require.NoError(t, store.Save(ctx, entity.OriginUploaded, []*entity.Post{{ID: "upload_1", Origin: entity.OriginUploaded}}))

	scraped, err := store.Load(ctx, entity.OriginScraped)
	require.NoError(t, err)
	uploaded, err := store.Load(ctx, entity.OriginUploaded)
	require.NoError(t, err)

	require.Len(t, scraped, 1)
	require.Len(t, uploaded, 1)
	assert.Equal(t, "scraped1", scraped[0].ID)
	assert.Equal(t, "upload_1", uploaded[0].ID)
}

func TestPostStore_SaveOverwritesSnapshot(t *testing.T) {
	dir := t.TempDir()
	store := NewPostStore(dir)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, entity.OriginScraped, []*entity.Post{{ID: "a"}, {ID: "b"}}))
	require.NoError(t, store.Save(ctx, entity.OriginScraped, []*entity.Post{{ID: "b"}}))

	loaded, err := store.Load(ctx, entity.OriginScraped)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "b", loaded[0].ID)

	// временных файлов после сохранения не остаётся
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".metadata-")
	}
	assert.FileExists(t, filepath.Join(dir, "metadata.json"))
}

func TestPostStore_FindByID(t *testing.T) {
	store := NewPostStore(t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, entity.OriginScraped, []*entity.Post{{ID: "a"}, {ID: "b"}}))

	post, err := store.FindByID(ctx, entity.OriginScraped, "b")
	require.NoError(t, err)
	assert.Equal(t, "b", post.ID)

	_, err = store.FindByID(ctx, entity.OriginScraped, "missing")
	assert.ErrorIs(t, err, errs.ErrRecordNotFound)
}

func TestPostStore_UnknownOrigin(t *testing.T) {
	store := NewPostStore(t.TempDir())

	_, err := store.Load(context.Background(), entity.Origin("mystery"))

	assert.ErrorIs(t, err, errs.ErrUnknownOrigin)
}
