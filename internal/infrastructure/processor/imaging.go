package processor

import (
	"bytes"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // декодирование webp, каталог его не принимает
)

// Каталог принимает только jpeg, png и gif. Всё остальное (в т.ч. webp со
// скрейпа) переэнкодим в jpeg. Файл с "не тем" расширением переэнкодим тоже,
// даже если содержимое допустимое - каталог валидирует по имени файла.
var (
	allowedFormats = map[string]bool{
		"jpeg": true,
		"png":  true,
		"gif":  true,
	}

	allowedExtensions = map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".gif":  true,
	}

	contentTypes = map[string]string{
		"jpeg": "image/jpeg",
		"png":  "image/png",
		"gif":  "image/gif",
	}
)

type ImageProcessor struct {
}

func New() *ImageProcessor {
	return &ImageProcessor{}
}

func (p *ImageProcessor) EnsureSubmittable(data []byte, filename string) ([]byte, string, string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", "", fmt.Errorf("ImageProcessor - EnsureSubmittable - image.DecodeConfig: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if allowedFormats[format] && allowedExtensions[ext] {
		return data, contentTypes[format], filename, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", "", fmt.Errorf("ImageProcessor - EnsureSubmittable - imaging.Decode: %w", err)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG); err != nil {
		return nil, "", "", fmt.Errorf("ImageProcessor - EnsureSubmittable - imaging.Encode: %w", err)
	}

	outName := strings.TrimSuffix(filename, ext) + ".jpg"

	return buf.Bytes(), "image/jpeg", outName, nil
}
