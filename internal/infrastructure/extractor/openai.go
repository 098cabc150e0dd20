package extractor

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/aleksmelnikov/meme-annotator/internal/entity"
)

const prompt = `You are an expert at identifying memes from movies and TV shows.
Analyze the provided image and caption.
Extract the following information in a valid JSON format.

Required Fields:
1. title: The name of the movie or TV show.
2. releaseYear: Year the movie/show was released.
3. genre: Main genre of the movie/show.
4. director: Name of the director.
5. emotionLabel: A single primary emotion shown in the meme (e.g., Tension, Joy, Anger).
6. emotionDescription: A brief description of the emotion and why it's appropriate.
7. relatedEmotions: A list of 2-3 similar or related emotions for better search results.
8. memeReleaseYear: Approximately when this meme became popular.
9. actors: A list of main actors in the scene. Each actor object should have:
   - name: Actor name.
   - dob: Date of birth (YYYY-MM-DD) if known.
   - filmography: 3-4 other famous works.
10. dialogs: A list of key dialogs from the scene. Each dialog object should have:
    - text: The dialog text.
    - actor: Who said it.
11. tags: A list of 5-10 descriptive tags. Each tag object should have:
    - name: Tag name (e.g., Villian, Chaos, Interrogation).
    - category: One of [character, concept, situation, context].

IMPORTANT:
- Be specific and accurate.
- If information is missing, use your internal knowledge about the movie/scene.
- Ensure the output is ONLY the JSON object, NO markdown formatting (like ` + "```json" + `), no extra text.`

// OpenAIExtractor извлекает атрибуты мема через vision chat completion.
type OpenAIExtractor struct {
	client *openai.Client
	model  string
}

func New(apiKey, model string) *OpenAIExtractor {
	return &OpenAIExtractor{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (e *OpenAIExtractor) Extract(ctx context.Context, image []byte, contentType, caption string) (*entity.Attributes, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(image))

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: prompt + "\n\nCaption: " + caption,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    dataURL,
							Detail: openai.ImageURLDetailAuto,
						},
					},
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAIExtractor - Extract - e.client.CreateChatCompletion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("OpenAIExtractor - Extract: empty response")
	}

	attrs, err := parseAttributes(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, fmt.Errorf("OpenAIExtractor - Extract - parseAttributes: %w", err)
	}

	return attrs, nil
}

func parseAttributes(raw string) (*entity.Attributes, error) {
	attrs := &entity.Attributes{}
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), attrs); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	return attrs, nil
}

// stripCodeFence снимает markdown-обёртку, которой модель иногда оборачивает
// JSON, несмотря на инструкцию в промпте.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")

	return strings.TrimSpace(s)
}
