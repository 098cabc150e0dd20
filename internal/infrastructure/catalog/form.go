package catalog

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/aleksmelnikov/meme-annotator/internal/dto"
)

const (
	// каталог требует номинальный размер, реальные габариты ему не нужны
	nominalImageSize = "1080x1080"

	submissionStatus = "approved"

	listDelimiter = ", "
)

// buildForm сериализует батч в multipart-форму. Ключи полей плоские,
// по индексу отправки; порядок полей и вложений соответствует порядку items.
func buildForm(items []*dto.SubmissionItem) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	for _, item := range items {
		i := item.Index
		attrs := item.Post.Attributes

		fields := map[string]string{
			field(i, "title"):              attrs.Title,
			field(i, "releaseYear"):        strconv.Itoa(int(attrs.ReleaseYear)),
			field(i, "genre"):              attrs.Genre,
			field(i, "director"):           attrs.Director,
			field(i, "emotionLabel"):       attrs.EmotionLabel,
			field(i, "emotionDescription"): attrs.EmotionDescription,
			field(i, "relatedEmotions"):    strings.Join(attrs.RelatedEmotions, listDelimiter),
			field(i, "memeReleaseYear"):    strconv.Itoa(int(attrs.MemeReleaseYear)),
			field(i, "imageSize"):          nominalImageSize,
			field(i, "status"):             submissionStatus,
		}
		for k, v := range fields {
			if err := w.WriteField(k, v); err != nil {
				return nil, "", fmt.Errorf("w.WriteField: %w", err)
			}
		}

		for j, actor := range item.Actors {
			if err := writeFields(w, map[string]string{
				subField(i, "actors", j, "name"):        actor.Name,
				subField(i, "actors", j, "dob"):         actor.DOB,
				subField(i, "actors", j, "filmography"): strings.Join(actor.Filmography, listDelimiter),
			}); err != nil {
				return nil, "", err
			}
		}

		for j, dialog := range item.Dialogs {
			if err := writeFields(w, map[string]string{
				subField(i, "dialogs", j, "text"):    dialog.Text,
				subField(i, "dialogs", j, "speaker"): dialog.Actor,
			}); err != nil {
				return nil, "", err
			}
		}

		for j, tag := range attrs.Tags {
			if err := writeFields(w, map[string]string{
				subField(i, "tags", j, "name"):     tag.Name,
				subField(i, "tags", j, "category"): tag.Category,
			}); err != nil {
				return nil, "", err
			}
		}

		part, err := w.CreateFormFile(fmt.Sprintf("images[%d]", i), item.ImageName)
		if err != nil {
			return nil, "", fmt.Errorf("w.CreateFormFile: %w", err)
		}
		if _, err := part.Write(item.Image); err != nil {
			return nil, "", fmt.Errorf("part.Write: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("w.Close: %w", err)
	}

	return body, w.FormDataContentType(), nil
}

func writeFields(w *multipart.Writer, fields map[string]string) error {
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("w.WriteField: %w", err)
		}
	}

	return nil
}

func field(i int, name string) string {
	return fmt.Sprintf("posts[%d][%s]", i, name)
}

func subField(i int, group string, j int, name string) string {
	return fmt.Sprintf("posts[%d][%s][%d][%s]", i, group, j, name)
}
