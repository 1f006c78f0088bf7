package dto

import (
	"mime/multipart"

	"school_portal/internal/domain/models"

	"github.com/google/uuid"
)

// PhotoUploadInput содержит данные multipart-запроса на загрузку снимков.
// Файлы уходят в медиахранилище, по одной записи Photo на файл.
type PhotoUploadInput struct {
	GalleryItemID uuid.UUID
	Files         []*multipart.FileHeader
	UploadedBy    string
	IsPublic      bool
	Featured      bool
}

// PhotosUploadedResponse содержит записи созданной партии снимков
type PhotosUploadedResponse struct {
	Photos []models.Photo `json:"photos"`
}
