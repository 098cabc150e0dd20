package errs

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound  = errors.New("record not found")
	ErrAssetMissing    = errors.New("asset missing")
	ErrNothingToSubmit = errors.New("nothing to submit")
	ErrUnknownOrigin   = errors.New("unknown origin")
)

// SubmissionError - ошибка всего батча: транспорт или не-2xx от каталога.
// Статусы постов при этом не меняются, повтор безопасен.
type SubmissionError struct {
	StatusCode int
	Body       string
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submission failed: status=%d body=%s", e.StatusCode, e.Body)
}
