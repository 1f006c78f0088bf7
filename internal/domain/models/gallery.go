package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type GalleryCategory string

const (
	CategoryEvents   GalleryCategory = "events"
	CategoryAcademic GalleryCategory = "academic"
	CategorySports   GalleryCategory = "sports"
	CategoryCultural GalleryCategory = "cultural"
)

// IsValid проверяет, что категория входит в допустимый набор
func (c GalleryCategory) IsValid() bool {
	switch c {
	case CategoryEvents, CategoryAcademic, CategorySports, CategoryCultural:
		return true
	}
	return false
}

// GalleryItem представляет собой фотоальбом.
// Photos и ImageAdresses хранят упорядоченные списки идентификаторов дочерних
// документов (в порядке создания). Имя imageAdresses с опечаткой сохранено:
// его использует существующий клиент.
type GalleryItem struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	Title        string          `db:"title" json:"title"`
	Description  string          `db:"description" json:"description"`
	ThumbnailURL string          `db:"thumbnail_url" json:"thumbnailUrl"`
	Category     GalleryCategory `db:"category" json:"category"`
	UploadedBy   string          `db:"uploaded_by" json:"uploadedBy"`
	UploadDate   time.Time       `db:"upload_date" json:"uploadDate"`
	IsPublic     bool            `db:"is_public" json:"isPublic"`
	Featured     bool            `db:"featured" json:"featured"`
	ImageCount   int             `db:"image_count" json:"imageCount"`
	Photos       []string        `json:"photos"`
	ImageAdress  []string        `json:"imageAdresses"`
	CreatedAt    time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updatedAt"`
}

// Validate проверяет обязательные поля альбома
func (g *GalleryItem) Validate() error {
	var missing []string

	if strings.TrimSpace(g.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(g.ThumbnailURL) == "" {
		missing = append(missing, "thumbnail")
	}
	if g.Category == "" {
		missing = append(missing, "category")
	}

	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}

	if !g.Category.IsValid() {
		return &ValidationError{Fields: []string{"category"}}
	}

	return nil
}

// Photo представляет снимок, загруженный в медиахранилище.
// PublicID служит дескриптором для удаления файла на стороне хранилища.
type Photo struct {
	ID          uuid.UUID `db:"id" json:"id"`
	GalleryItem uuid.UUID `db:"gallery_item_id" json:"galleryItem"`
	ImageURL    string    `db:"image_url" json:"imageUrl"`
	PublicID    string    `db:"public_id" json:"publicId"`
	UploadedBy  string    `db:"uploaded_by" json:"uploadedBy"`
	IsPublic    bool      `db:"is_public" json:"isPublic"`
	Featured    bool      `db:"featured" json:"featured"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// ImageLink представляет внешнюю ссылку на изображение.
// Адрес принимается как есть, без валидации формата (как в исходном API).
type ImageLink struct {
	ID           uuid.UUID `db:"id" json:"id"`
	GalleryItem  uuid.UUID `db:"gallery_item_id" json:"galleryItem"`
	ImageAddress string    `db:"image_address" json:"imageAddress"`
	UploadedBy   string    `db:"uploaded_by" json:"uploadedBy"`
	IsPublic     bool      `db:"is_public" json:"isPublic"`
	Featured     bool      `db:"featured" json:"featured"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}
