package response

import "github.com/aleksmelnikov/meme-annotator/internal/dto"

type Error struct {
	Error string `json:"error"`
}

type Upload struct {
	PostID    string `json:"post_id"`
	ImagePath string `json:"image_path"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

type Enrich struct {
	Results []dto.EnrichOutcome `json:"results"`
}

type Annotate struct {
	Submitted int `json:"submitted"`
	Accepted  int `json:"accepted"`
}
