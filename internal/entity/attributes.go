package entity

import (
	"bytes"
	"strconv"
)

// Attributes - структурированные метаданные, извлечённые AI по изображению и подписи.
// Присутствуют только у постов со статусом enriched и выше.
type Attributes struct {
	Title              string   `json:"title"`
	ReleaseYear        Year     `json:"releaseYear"`
	Genre              string   `json:"genre"`
	Director           string   `json:"director"`
	EmotionLabel       string   `json:"emotionLabel"`
	EmotionDescription string   `json:"emotionDescription"`
	RelatedEmotions    []string `json:"relatedEmotions"`
	MemeReleaseYear    Year     `json:"memeReleaseYear"`
	Actors             []Actor  `json:"actors"`
	Dialogs            []Dialog `json:"dialogs"`
	Tags               []Tag    `json:"tags"`
}

type Actor struct {
	Name        string   `json:"name"`
	DOB         string   `json:"dob,omitempty"`
	Filmography []string `json:"filmography,omitempty"`
}

type Dialog struct {
	Text  string `json:"text"`
	Actor string `json:"actor"`
}

type Tag struct {
	Name     string `json:"name"`
	Category string `json:"category"` // character, concept, situation, context
}

// Year - год из ответа модели. Модели периодически присылают год строкой,
// поэтому принимаем и число, и число в кавычках.
type Year int

func (y *Year) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*y = 0
		return nil
	}

	v, err := strconv.Atoi(string(data))
	if err != nil {
		return err
	}

	*y = Year(v)

	return nil
}
