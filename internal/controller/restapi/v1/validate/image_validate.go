package validate

const (
	MaxFileSize int64 = 10 * 1024 * 1024

	// столько id принимаем в один enrich/annotate запрос
	MaxBatchSize int = 100
)

var (
	AllowedContentTypes = map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
		"image/gif":  true,
		"image/webp": true,
	}

	AllowedExtensions = map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".gif":  true,
		".webp": true,
	}
)
