package repository

import (
	"strings"

	"github.com/jackc/pgx/v4/pgxpool"
)

// Repository объединяет все репозитории над одним пулом соединений
type Repository struct {
	db         *pgxpool.Pool
	News       NewsRepository
	Events     EventRepository
	Gallery    GalleryRepository
	Photos     PhotoRepository
	ImageLinks ImageLinkRepository
	Users      UserRepository
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{
		db:         db,
		News:       NewNewsRepository(db),
		Events:     NewEventRepository(db),
		Gallery:    NewGalleryRepository(db),
		Photos:     NewPhotoRepository(db),
		ImageLinks: NewImageLinkRepository(db),
		Users:      NewUserRepository(db),
	}
}

func (r *Repository) Close() {
	r.db.Close()
}

func joinColumns(columns []string) string {
	return strings.Join(columns, ", ")
}
