package dto

import "github.com/aleksmelnikov/meme-annotator/internal/entity"

type OutcomeKind string

const (
	OutcomeSuccess          OutcomeKind = "success"
	OutcomeNotFound         OutcomeKind = "not_found"
	OutcomeAssetMissing     OutcomeKind = "asset_missing"
	OutcomeExtractionFailed OutcomeKind = "extraction_failed"
)

// EnrichOutcome - результат обогащения одного поста. Порядок результатов
// батча не гарантируется, привязка - только по PostID.
type EnrichOutcome struct {
	PostID string      `json:"post_id"`
	Kind   OutcomeKind `json:"status"`
	Error  string      `json:"error,omitempty"`
}

// SubmissionItem - один пост в батче отправки. Index - позиция в форме,
// назначается только реально отправляемым постам в исходном относительном
// порядке. Индексное пространство ответа каталога ссылается именно на неё.
type SubmissionItem struct {
	Index   int
	Post    *entity.Post
	Actors  []entity.Actor
	Dialogs []entity.Dialog

	Image       []byte
	ImageName   string
	ContentType string
}

// SubmissionResult - распарсенный ответ каталога.
// All=true - каталог не вернул разбираемый список индексов на 2xx,
// считаем все отправленные индексы принятыми.
type SubmissionResult struct {
	All             bool
	AcceptedIndexes []int
}

type AnnotateSummary struct {
	Submitted int `json:"submitted"`
	Accepted  int `json:"accepted"`
}
