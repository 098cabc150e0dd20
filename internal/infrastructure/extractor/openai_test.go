package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleksmelnikov/meme-annotator/internal/entity"
)

const sampleJSON = `{
	"title": "Fight Club",
	"releaseYear": 1999,
	"genre": "Drama",
	"director": "David Fincher",
	"emotionLabel": "Tension",
	"emotionDescription": "Confrontational standoff",
	"relatedEmotions": ["Anger", "Anticipation"],
	"memeReleaseYear": "2015",
	"actors": [{"name": "Brad Pitt", "dob": "1963-12-18", "filmography": ["Se7en", "Troy"]}],
	"dialogs": [{"text": "First rule...", "actor": "Brad Pitt"}],
	"tags": [{"name": "Chaos", "category": "concept"}]
}`

func TestStripCodeFence(t *testing.T) {
	cases := []struct {
		name string
		in   string
		out  string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  \n```json\n{\"a\":1}\n```\n ", `{"a":1}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.out, stripCodeFence(tc.in))
		})
	}
}

func TestParseAttributes(t *testing.T) {
	attrs, err := parseAttributes("```json\n" + sampleJSON + "\n```")

	require.NoError(t, err)
	assert.Equal(t, "Fight Club", attrs.Title)
	assert.Equal(t, entity.Year(1999), attrs.ReleaseYear)
	// год строкой тоже принимается
	assert.Equal(t, entity.Year(2015), attrs.MemeReleaseYear)
	require.Len(t, attrs.Actors, 1)
	assert.Equal(t, []string{"Se7en", "Troy"}, attrs.Actors[0].Filmography)
}

func TestParseAttributes_MalformedAfterStripping(t *testing.T) {
	_, err := parseAttributes("```json\nSure, here is the JSON you asked for\n```")

	assert.Error(t, err)
}
