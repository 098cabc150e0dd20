package eligibility

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aleksmelnikov/meme-annotator/internal/entity"
)

func TestIsUnknownToken(t *testing.T) {
	cases := []struct {
		text     string
		expected bool
	}{
		{"Brad Pitt", false},
		{"Unknown", true},
		{"UNCREDITED", true},
		{"Uncredited Actor", true},
		{"N/A", true},
		{"character unknown", true},
		{"Not Available", true},
		{"", true},
		{"Main Character (Uncredited)", true},
		// совпадение по подстроке, а не по точному значению
		{"The Unknown Soldier", true},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, IsUnknownToken(tc.text), "text=%q", tc.text)
	}
}

func TestFilterActors(t *testing.T) {
	actors := []entity.Actor{
		{Name: "Brad Pitt"},
		{Name: "Unknown"},
		{Name: "Edward Norton"},
		{Name: ""},
	}

	valid := FilterActors(actors)

	assert.Equal(t, []entity.Actor{{Name: "Brad Pitt"}, {Name: "Edward Norton"}}, valid)
}

func TestFilterDialogs(t *testing.T) {
	dialogs := []entity.Dialog{
		{Text: "First rule...", Actor: "Brad Pitt"},
		{Text: "...", Actor: "Unknown"},
	}

	valid := FilterDialogs(dialogs)

	assert.Len(t, valid, 1)
	assert.Equal(t, "Brad Pitt", valid[0].Actor)
}

func TestIsSubmittable(t *testing.T) {
	t.Run("unknown title excluded regardless of actors", func(t *testing.T) {
		post := &entity.Post{
			Status: entity.Enriched,
			Attributes: &entity.Attributes{
				Title:  "Unknown Movie",
				Actors: []entity.Actor{{Name: "Brad Pitt"}},
			},
		}

		assert.False(t, IsSubmittable(post))
	})

	t.Run("one valid actor is enough", func(t *testing.T) {
		post := &entity.Post{
			Status: entity.Enriched,
			Attributes: &entity.Attributes{
				Title:  "Fight Club",
				Actors: []entity.Actor{{Name: "Brad Pitt"}, {Name: "Unknown"}},
			},
		}

		assert.True(t, IsSubmittable(post))
		assert.Equal(t, []entity.Actor{{Name: "Brad Pitt"}}, FilterActors(post.Attributes.Actors))
	})

	t.Run("no valid actors", func(t *testing.T) {
		post := &entity.Post{
			Status: entity.Enriched,
			Attributes: &entity.Attributes{
				Title:  "Movie",
				Actors: []entity.Actor{{Name: "Unknown"}},
			},
		}

		assert.False(t, IsSubmittable(post))
	})

	t.Run("no attributes", func(t *testing.T) {
		assert.False(t, IsSubmittable(&entity.Post{Status: entity.Pending}))
	})
}
