package entity

type Status string

const (
	Pending   Status = "pending"   // создан, атрибутов нет
	Enriched  Status = "enriched"  // атрибуты извлечены
	Completed Status = "completed" // принят каталогом
)
