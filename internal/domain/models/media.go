package models

import "time"

type MediaKind string

const (
	MediaKindUpload MediaKind = "upload"
	MediaKindLink   MediaKind = "link"
)

// GalleryMedia представляет нормализованную запись изображения альбома.
// Объединяет два независимых источника (загруженные Photo и внешние
// ImageLink) в одну форму с общим displayUrl, чтобы клиенту не приходилось
// склеивать и нормализовывать их самостоятельно.
type GalleryMedia struct {
	ID         string    `json:"id"`
	Kind       MediaKind `json:"kind"`
	DisplayURL string    `json:"displayUrl"`
	UploadedBy string    `json:"uploadedBy"`
	IsPublic   bool      `json:"isPublic"`
	Featured   bool      `json:"featured"`
	CreatedAt  time.Time `json:"createdAt"`
}

// FromPhoto приводит загруженный снимок к общей форме
func FromPhoto(p Photo) GalleryMedia {
	return GalleryMedia{
		ID:         p.ID.String(),
		Kind:       MediaKindUpload,
		DisplayURL: p.ImageURL,
		UploadedBy: p.UploadedBy,
		IsPublic:   p.IsPublic,
		Featured:   p.Featured,
		CreatedAt:  p.CreatedAt,
	}
}

// FromImageLink приводит внешнюю ссылку к общей форме
func FromImageLink(l ImageLink) GalleryMedia {
	return GalleryMedia{
		ID:         l.ID.String(),
		Kind:       MediaKindLink,
		DisplayURL: l.ImageAddress,
		UploadedBy: l.UploadedBy,
		IsPublic:   l.IsPublic,
		Featured:   l.Featured,
		CreatedAt:  l.CreatedAt,
	}
}
