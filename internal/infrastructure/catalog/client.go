package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aleksmelnikov/meme-annotator/internal/dto"
	"github.com/aleksmelnikov/meme-annotator/internal/infrastructure"
	"github.com/aleksmelnikov/meme-annotator/pkg/types/errs"
)

// Client - HTTP-клиент внешнего API каталога. Один submit на весь батч,
// ретраев внутри нет - повтор всего батча решает вызывающий.
type Client struct {
	url        string
	httpClient *http.Client
}

var _ infrastructure.CatalogClient = (*Client)(nil)

func New(url string, timeout time.Duration) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Submit(ctx context.Context, items []*dto.SubmissionItem, authToken string) (*dto.SubmissionResult, error) {
	body, contentType, err := buildForm(items)
	if err != nil {
		return nil, fmt.Errorf("Client - Submit - buildForm: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, body)
	if err != nil {
		return nil, fmt.Errorf("Client - Submit - http.NewRequestWithContext: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Client - Submit - c.httpClient.Do: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("Client - Submit - io.ReadAll: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &errs.SubmissionError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return parseResponse(respBody), nil
}

// Ответ каталога на 2xx: {"status": "...", "data": [{"index": 0, ...}, ...]}.
// Если тело не разбирается или списка нет - считаем принятыми все
// отправленные индексы. Осознанный компромисс: лучше изредка пометить
// лишнее, чем навсегда подвесить принятую каталогом работу.
func parseResponse(body []byte) *dto.SubmissionResult {
	var parsed struct {
		Data []struct {
			Index *int `json:"index"`
		} `json:"data"`
	}

	if err := json.Unmarshal(body, &parsed); err != nil || parsed.Data == nil {
		return &dto.SubmissionResult{All: true}
	}

	result := &dto.SubmissionResult{}
	for _, entry := range parsed.Data {
		if entry.Index != nil {
			result.AcceptedIndexes = append(result.AcceptedIndexes, *entry.Index)
		}
	}

	return result
}
