package entity

// Origin определяет, какому из двух независимых хранилищ принадлежит пост.
// Фиксируется при создании записи и больше никогда не выводится из формы id.
type Origin string

const (
	OriginScraped  Origin = "scraped"
	OriginUploaded Origin = "uploaded"
)

// UploadedIDPrefix - конвенция именования id для ручных загрузок.
// Исключает коллизии с шорткодами постов, источник истины - поле Origin.
const UploadedIDPrefix = "upload_"
