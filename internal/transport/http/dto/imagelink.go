package dto

import (
	"school_portal/internal/domain/models"

	"github.com/google/uuid"
)

// UploadImageLinksRequest описывает партию внешних ссылок для альбома.
// Адреса принимаются как есть, без валидации формата.
type UploadImageLinksRequest struct {
	GalleryItemID  uuid.UUID `json:"galleryItemId"`
	ImageAddresses []string  `json:"imageAddresses"`
	UploadedBy     string    `json:"uploadedBy"`
	IsPublic       bool      `json:"isPublic"`
	Featured       bool      `json:"featured"`
}

// ImageLinksResponse содержит ссылки альбома в порядке добавления
type ImageLinksResponse struct {
	Images []models.ImageLink `json:"images"`
}
