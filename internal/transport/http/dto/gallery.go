package dto

// CreateGalleryItemRequest представляет собой тело запроса на создание альбома
type CreateGalleryItemRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnailUrl"`
	Category     string `json:"category"`
	UploadedBy   string `json:"uploadedBy"`
	IsPublic     *bool  `json:"isPublic"`
	Featured     bool   `json:"featured"`
}

// UpdateGalleryItemRequest перечисляет изменяемые поля альбома.
// Счётчик imageCount и списки дочерних документов меняются только
// через операции над снимками и ссылками.
type UpdateGalleryItemRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	ThumbnailURL *string `json:"thumbnailUrl"`
	Category     *string `json:"category"`
	UploadedBy   *string `json:"uploadedBy"`
	IsPublic     *bool   `json:"isPublic"`
	Featured     *bool   `json:"featured"`
}
