package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"school_portal/internal/domain/models"
	"school_portal/internal/lib/logger/sl"
	linksvc "school_portal/internal/services/imagelink_service"
	photosvc "school_portal/internal/services/photo_service"
	usersvc "school_portal/internal/services/user_service"
	"school_portal/internal/storage"
	"school_portal/internal/transport/http/dto"
	"school_portal/internal/transport/http/dto/request"
	"school_portal/internal/transport/http/dto/response"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

type NewsService interface {
	CreateNews(ctx context.Context, req dto.CreateNewsRequest) (models.NewsArticle, error)
	GetNews(ctx context.Context) ([]models.NewsArticle, error)
	GetNewsByID(ctx context.Context, id uuid.UUID) (models.NewsArticle, error)
	UpdateNews(ctx context.Context, id uuid.UUID, req dto.UpdateNewsRequest) (models.NewsArticle, error)
	DeleteNews(ctx context.Context, id uuid.UUID) error
}

type EventService interface {
	CreateEvent(ctx context.Context, req dto.CreateEventRequest) (models.Event, error)
	GetEvents(ctx context.Context) ([]models.Event, error)
	GetEventByID(ctx context.Context, id uuid.UUID) (models.Event, error)
	UpdateEvent(ctx context.Context, id uuid.UUID, req dto.UpdateEventRequest) (models.Event, error)
	DeleteEvent(ctx context.Context, id uuid.UUID) error
}

type GalleryService interface {
	CreateGalleryItem(ctx context.Context, req dto.CreateGalleryItemRequest) (models.GalleryItem, error)
	GetGalleryItems(ctx context.Context, categories []string) ([]models.GalleryItem, error)
	GetGalleryItemByID(ctx context.Context, id uuid.UUID) (models.GalleryItem, error)
	UpdateGalleryItem(ctx context.Context, id uuid.UUID, req dto.UpdateGalleryItemRequest) (models.GalleryItem, error)
	DeleteGalleryItem(ctx context.Context, id uuid.UUID) error
	GetGalleryMedia(ctx context.Context, id uuid.UUID) ([]models.GalleryMedia, error)
}

type PhotoService interface {
	UploadPhotos(ctx context.Context, input dto.PhotoUploadInput) ([]models.Photo, error)
	GetPhotosByGalleryItem(ctx context.Context, galleryItemID uuid.UUID) ([]models.Photo, error)
	DeletePhoto(ctx context.Context, id uuid.UUID) error
}

type ImageLinkService interface {
	CreateImageLinks(ctx context.Context, req dto.UploadImageLinksRequest) ([]models.ImageLink, error)
	GetImageLinksByGalleryItem(ctx context.Context, galleryItemID uuid.UUID) ([]models.ImageLink, error)
	DeleteImageLink(ctx context.Context, id uuid.UUID) error
}

type UserService interface {
	Login(ctx context.Context, c echo.Context, email, password string) (*models.TokenPair, error)
	RegisterNewUser(ctx context.Context, input dto.UserRegisterInput) (uuid.UUID, error)
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
	GetUserById(ctx context.Context, userID uuid.UUID) (models.User, error)
}

type AuthService interface {
	RefreshTokens(ctx context.Context, refreshToken string) (*models.TokenPair, error)
}

type Routers struct {
	log              *slog.Logger
	NewsService      NewsService
	EventService     EventService
	GalleryService   GalleryService
	PhotoService     PhotoService
	ImageLinkService ImageLinkService
	UserService      UserService
	AuthService      AuthService
}

func NewRouter(
	log *slog.Logger,
	newsService NewsService,
	eventService EventService,
	galleryService GalleryService,
	photoService PhotoService,
	imageLinkService ImageLinkService,
	userService UserService,
	authService AuthService,
) *Routers {
	return &Routers{
		log:              log,
		NewsService:      newsService,
		EventService:     eventService,
		GalleryService:   galleryService,
		PhotoService:     photoService,
		ImageLinkService: imageLinkService,
		UserService:      userService,
		AuthService:      authService,
	}
}

// bindStrict декодирует тело запроса, отклоняя неизвестные ключи.
// Используется для частичных обновлений: опечатка в имени поля не должна
// молча проходить в документ.
func bindStrict(c echo.Context, v interface{}) error {
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// writeServiceError переводит ошибку сервиса в HTTP-ответ. Детали
// внутренних ошибок остаются в логах, клиенту уходит общий текст.
func (r *Routers) writeServiceError(c echo.Context, log *slog.Logger, err error) error {
	if models.IsValidationError(err) {
		return c.JSON(http.StatusBadRequest,
			response.ErrorResponseWithDetails("validation_failed", err.Error()))
	}
	if errors.Is(err, storage.ErrNotFound) ||
		errors.Is(err, photosvc.ErrAlbumNotFound) ||
		errors.Is(err, linksvc.ErrAlbumNotFound) {
		return c.JSON(http.StatusNotFound,
			response.ErrorResponseWithDetails("not_found", "Resource not found"))
	}
	if errors.Is(err, photosvc.ErrNoFiles) ||
		errors.Is(err, photosvc.ErrTooManyFiles) ||
		errors.Is(err, linksvc.ErrNoAddresses) {
		return c.JSON(http.StatusBadRequest,
			response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	log.Error("request failed", sl.Err(err))
	return c.JSON(http.StatusInternalServerError, response.ErrInternal)
}

func parseIDParam(c echo.Context, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Param(name))
}

// ---------- Новости ----------

// GetNews godoc
// @Summary Список новостей
// @Description Возвращает все статьи, свежие первыми
// @Tags news
// @Produce json
// @Success 200 {array} models.NewsArticle
// @Failure 500 {object} response.ErrorResponse
// @Router /api/news [get]
func (r *Routers) GetNews(c echo.Context) error {
	const op = "http.routers.GetNews"
	log := r.log.With(slog.String("op", op))

	articles, err := r.NewsService.GetNews(c.Request().Context())
	if err != nil {
		return r.writeServiceError(c, log, err)
	}
	if articles == nil {
		articles = []models.NewsArticle{}
	}

	return c.JSON(http.StatusOK, articles)
}

// CreateNews godoc
// @Summary Создание статьи
// @Description Создает новостную статью. title, summary, content и author обязательны.
// @Tags news
// @Accept json
// @Produce json
// @Param request body dto.CreateNewsRequest true "Данные статьи"
// @Success 201 {object} models.NewsArticle
// @Failure 400 {object} response.ErrorResponse "Отсутствуют обязательные поля"
// @Failure 500 {object} response.ErrorResponse
// @Router /api/news [post]
func (r *Routers) CreateNews(c echo.Context) error {
	const op = "http.routers.CreateNews"
	log := r.log.With(slog.String("op", op))

	var req dto.CreateNewsRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	created, err := r.NewsService.CreateNews(c.Request().Context(), req)
	if err != nil {
		return r.writeServiceError(c, log, err)
	}

	return c.JSON(http.StatusCreated, created)
}

// GetNewsById godoc
// @Summary Статья по ID
// @Tags news
// @Produce json
// @Param id path string true "UUID статьи" format(uuid)
// @Success 200 {object} models.NewsArticle
// @Failure 404 {object} response.ErrorResponse
// @Router /api/news/{id} [get]
func (r *Routers) GetNewsById(c echo.Context) error {
	const op = "http.routers.GetNewsById"
	log := r.log.With(slog.String("op", op))

	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest,
			response.ErrorResponseWithDetails("invalid_request", "invalid id format"))
	}

	article, err := r.NewsService.GetNewsByID(c.Request().Context(), id)
	if err != nil {
		return r.writeServiceError(c, log, err)
	}

	return c.JSON(http.StatusOK, article)
}

// UpdateNews godoc
// @Summary Частичное обновление статьи
// @Description Обновляет только присланные поля. Неизвестные ключи отклоняются.
// @Tags news
// @Accept json
// @Produce json
// @Param id path string true "UUID статьи" format(uuid)
// @Param request body dto.UpdateNewsRequest true "Изменяемые поля"
// @Success 200 {object} models.NewsArticle
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/news/{id} [put]
func (r *Routers) UpdateNews(c echo.Context) error {
	const op = "http.routers.UpdateNews"
	log := r.log.With(slog.String("op", op))

	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest,
			response.ErrorResponseWithDetails("invalid_request", "invalid id format"))
	}

	var req dto.UpdateNewsRequest
	if err := bindStrict(c, &req); err != nil {
		log.Warn("failed to decode request", sl.Err(err))
		return c.JSON(http.StatusBadRequest,
			response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	updated, err := r.NewsService.UpdateNews(c.Request().Context(), id, req)
	if err != nil {
		return r.writeServiceError(c, log, err)
	}

	return c.JSON(http.StatusOK, updated)
}

// DeleteNews godoc
// @Summary Удаление статьи
// @Tags news
// @Produce json
// @Param id path string true "UUID статьи" format(uuid)
// @Success 200 {object} map[string]string
// @Failure 404 {object} response.ErrorResponse
// @Router /api/news/{id} [delete]
func (r *Routers) DeleteNews(c echo.Context) error {
	const op = "http.routers.DeleteNews"
	log := r.log.With(slog.String("op", op))

	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest,
			response.ErrorResponseWithDetails("invalid_request", "invalid id format"))
	}

	if err := r.NewsService.DeleteNews(c.Request().Context(), id); err != nil {
		return r.writeServiceError(c, log, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "News article deleted successfully"})
}

// ---------- Мероприятия ----------

// GetEvents godoc
// @Summary Список мероприятий
// @Tags events
// @Produce json
// @Success 200 {array} models.Event
// @Router /api/events [get]
func (r *Routers) GetEvents(c echo.Context) error {
	const op = "http.routers.GetEvents"
	log := r.log.With(slog.String("op", op))

	events, err := r.EventService.GetEvents(c.Request().Context())
	if err != nil {
		return r.writeServiceError(c, log, err)
	}
	if events == nil {
		events = []models.Event{}
	}

	return c.JSON(http.StatusOK, events)
}

// CreateEvent godoc
// @Summary Создание мероприятия
// @Tags events
// @Accept json
// @Produce json
// @Param request body dto.CreateEventRequest true "Данные мероприятия"
// @Success 201 {object} models.Event
// @Failure 400 {object} response.ErrorResponse
// @Router /api/events [post]
func (r *Routers) CreateEvent(c echo.Context) error {
	const op = "http.routers.CreateEvent"
	log := r.log.With(slog.String("op", op))

	var req dto.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	created, err := r.EventService.CreateEvent(c.Request().Context(), req)
	if err != nil {
		return r.writeServiceError(c, log, err)
	}

	return c.JSON(http.StatusCreated, created)
}

// GetEventById godoc
// @Summary Мероприятие по ID
// @Tags events
// @Produce json
// @Param id path string true "UUID мероприятия" format(uuid)
// @Success 200 {object} models.Event
// @Failure 404 {object} response.ErrorResponse
// @Router /api/events/{id} [get]
func (r *Routers) GetEventById(c echo.Context) error {
	const op = "http.routers.GetEventById"
	log := r.log.With(slog.String("op", op))

	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest,
			response.ErrorResponseWithDetails("invalid_request", "invalid id format"))
	}

	event, err := r.EventService.GetEventByID(c.Request().Context(), id)
	if err != nil {
		return r.writeServiceError(c, log, err)
	}

	return c.JSON(http.StatusOK, event)
}

// UpdateEvent godoc
// @Summary Частичное обновление мероприятия
// @Tags events
// @Accept json
// @Produce json
// @Param id path string true "UUID мероприятия" format(uuid)
// @Param request body dto.UpdateEventRequest true "Изменяемые поля"
// @Success 200 {object} models.Event
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/events/{id} [put]
func (r *Routers) UpdateEvent(c echo.Context) error {
	const op = "http.routers.UpdateEvent"
	log := r.log.With(slog.String("op", op))

	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest,
			response.ErrorResponseWithDetails("invalid_request", "invalid id format"))
	}

	var req dto.UpdateEventRequest
	if err := bindStrict(c, &req); err != nil {
		log.Warn("failed to decode request", sl.Err(err))
		return c.JSON(http.StatusBadRequest,
			response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	updated, err := r.EventService.UpdateEvent(c.Request().Context(), id, req)
	if err != nil {
		return r.writeServiceError(c, log, err)
	}

	return c.JSON(http.StatusOK, updated)
}

// DeleteEvent godoc
// @Summary Удаление мероприятия
// @Tags events
// @Produce json
// @Param id path string true "UUID мероприятия" format(uuid)
// @Success 200 {object} map[string]string
// @Failure 404 {object} response.ErrorResponse
// @Router /api/events/{id} [delete]
func (r *Routers) DeleteEvent(c echo.Context) error {
	const op = "http.routers.DeleteEvent"
	log := r.log.With(slog.String("op", op))

	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest,
			response.ErrorResponseWithDetails("invalid_request", "invalid id format"))
	}

	if err := r.EventService.DeleteEvent(c.Request().Context(), id); err != nil {
		return r.writeServiceError(c, log, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Event deleted successfully"})
}

// ---------- Галерея ----------

// GetGalleryItems godoc
// @Summary Список альбомов
// @Description Возвращает альбомы, свежие первыми. Параметр category (можно несколько) ограничивает выборку.
// @Tags gallery
// @Produce json
// @Param category query string false "Фильтр по категории"
// @Success 200 {array} models.GalleryItem
// @Router /api/gallery [get]
func (r *Routers) GetGalleryItems(c echo.Context) error {
	const op = "http.routers.GetGalleryItems"
	log := r.log.With(slog.String("op", op))

	categories := c.QueryParams()["category"]

	items, err := r.GalleryService.GetGalleryItems(c.Request().Context(), categories)
	if err != nil {
		return r.writeServiceError(c, log, err)
	}
	if items == nil {
		items = []models.GalleryItem{}
	}

	return c.JSON(http.StatusOK, items)
}

// CreateGalleryItem godoc
// @Summary Создание альбома
// @Description title, thumbnailUrl и category обязательны; category из набора events/academic/sports/cultural
// @Tags gallery
// @Accept json
// @Produce json
// @Param request body dto.CreateGalleryItemRequest true "Данные альбома"
// @Success 201 {object} models.GalleryItem
// @Failure 400 {object} response.ErrorResponse "Отсутствуют обязательные поля"
// @Router /api/gallery [post]
func (r *Routers) CreateGalleryItem(c echo.Context) error {
	const op = "http.routers.CreateGalleryItem"
	log := r.log.With(slog.String("op", op))

	var req dto.CreateGalleryItemRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	created, err := r.GalleryService.CreateGalleryItem(c.Request().Context(), req)
	if err != nil {
		return r.writeServiceError(c, log, err)
	}

	return c.JSON(http.StatusCreated, created)
}

// GetGalleryItemById godoc
// @Summary Альбом по ID
// @Tags gallery
// @Produce json
// @Param id path string true "UUID альбома" format(uuid)
// @Success 200 {object} models.GalleryItem
// @Failure 404 {object} response.ErrorResponse
// @Router /api/gallery/{id} [get]
func (r *Routers) GetGalleryItemById(c echo.Context) error {
	const op = "http.routers.GetGalleryItemById"
	log := r.log.With(slog.String("op", op))

	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest,
			response.ErrorResponseWithDetails("invalid_request", "invalid id format"))
	}

	item, err := r.GalleryService.GetGalleryItemByID(c.Request().Context(), id)
	if err != nil {
		return r.writeServiceError(c, log, err)
	}

	return c.JSON(http.StatusOK, item)
}

// UpdateGalleryItem godoc
// @Summary Частичное обновление альбома
// @Description Только для авторизованных. Счётчик изображений и списки дочерних документов недоступны для изменения.
// @Tags gallery
// @Accept json
// @Produce json
// @Param id path string true "UUID альбома" format(uuid)
// @Param request body dto.UpdateGalleryItemRequest true "Изменяемые поля"
// @Success 200 {object} models.GalleryItem
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/gallery/{id} [put]
func (r *Routers) UpdateGalleryItem(c echo.Context) error {
	const op = "http.routers.UpdateGalleryItem"
	log := r.log.With(slog.String("op", op))

	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest,
			response.ErrorResponseWithDetails("invalid_request", "invalid id format"))
	}

	var req dto.UpdateGalleryItemRequest
	if err := bindStrict(c, &req); err != nil {
		log.Warn("failed to decode request", sl.Err(err))
		return c.JSON(http.StatusBadRequest,
			response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	updated, err := r.GalleryService.UpdateGalleryItem(c.Request().Context(), id, req)
	if err != nil {
		return r.writeServiceError(c, log, err)
	}

	return c.JSON(http.StatusOK, updated)
}

// DeleteGalleryItem godoc
// @Summary Удаление альбома
// @Description Только для авторизованных. Снимки и ссылки альбома не удаляются.
// @Tags gallery
// @Produce json
// @Param id path string true "UUID альбома" format(uuid)
// @Success 200 {object} map[string]string
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/gallery/{id} [delete]
func (r *Routers) DeleteGalleryItem(c echo.Context) error {
	const op = "http.routers.DeleteGalleryItem"
	log := r.log.With(slog.String("op", op))

	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest,
			response.ErrorResponseWithDetails("invalid_request", "invalid id format"))
	}

	if err := r.GalleryService.DeleteGalleryItem(c.Request().Context(), id); err != nil {
		return r.writeServiceError(c, log, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Gallery item deleted successfully"})
}

// GetGalleryMedia godoc
// @Summary Изображения альбома в нормализованной форме
// @Description Объединяет загруженные снимки и внешние ссылки в одну ленту: сначала снимки, затем ссылки, в порядке добавления
// @Tags gallery
// @Produce json
// @Param id path string true "UUID альбома" format(uuid)
// @Success 200 {array} models.GalleryMedia
// @Failure 404 {object} response.ErrorResponse
// @Router /api/gallery/{id}/media [get]
func (r *Routers) GetGalleryMedia(c echo.Context) error {
	const op = "http.routers.GetGalleryMedia"
	log := r.log.With(slog.String("op", op))

	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest,
			response.ErrorResponseWithDetails("invalid_request", "invalid id format"))
	}

	media, err := r.GalleryService.GetGalleryMedia(c.Request().Context(), id)
	if err != nil {
		return r.writeServiceError(c, log, err)
	}
	if media == nil {
		media = []models.GalleryMedia{}
	}

	return c.JSON(http.StatusOK, media)
}

// ---------- Снимки ----------

// UploadPhotos godoc
// @Summary Загрузка снимков в альбом
// @Description Multipart-запрос: поле galleryItemId и от 1 до 10 файлов под именем photos (jpg/jpeg/png). Либо записываются все файлы, либо ни одного.
// @Tags photos
// @Accept multipart/form-data
// @Produce json
// @Param galleryItemId formData string true "UUID альбома" format(uuid)
// @Param photos formData file true "Файлы изображений"
// @Success 201 {object} dto.PhotosUploadedResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse "Альбом не найден"
// @Security ApiKeyAuth
// @Router /api/photos/upload [post]
func (r *Routers) UploadPhotos(c echo.Context) error {
	const op = "http.routers.UploadPhotos"
	log := r.log.With(slog.String("op", op))

	galleryItemID, err := uuid.Parse(c.FormValue("galleryItemId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest,
			response.ErrorResponseWithDetails("invalid_request", "galleryItemId is required"))
	}

	form, err := c.MultipartForm()
	if err != nil {
		log.Warn("failed to read multipart form", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	files := form.File["photos"]
	if len(files) == 0 {
		return c.JSON(http.StatusBadRequest,
			response.ErrorResponseWithDetails("invalid_request", "no files provided"))
	}

	isPublic, _ := strconv.ParseBool(c.FormValue("isPublic"))
	featured, _ := strconv.ParseBool(c.FormValue("featured"))

	input := dto.PhotoUploadInput{
		GalleryItemID: galleryItemID,
		Files:         files,
		UploadedBy:    c.FormValue("uploadedBy"),
		IsPublic:      isPublic,
		Featured:      featured,
	}

	photos, err := r.PhotoService.UploadPhotos(c.Request().Context(), input)
	if err != nil {
		return r.writeServiceError(c, log, err)
	}

	return c.JSON(http.StatusCreated, dto.PhotosUploadedResponse{Photos: photos})
}

// GetPhotosByGalleryItem godoc
// @Summary Снимки альбома
// @Tags photos
// @Produce json
// @Param galleryItemId path string true "UUID альбома" format(uuid)
// @Success 200 {array} models.Photo
// @Router /api/photos/{galleryItemId} [get]
func (r *Routers) GetPhotosByGalleryItem(c echo.Context) error {
	const op = "http.routers.GetPhotosByGalleryItem"
	log := r.log.With(slog.String("op", op))

	galleryItemID, err := parseIDParam(c, "galleryItemId")
	if err != nil {
		return c.JSON(http.StatusBadRequest,
			response.ErrorResponseWithDetails("invalid_request", "invalid id format"))
	}

	photos, err := r.PhotoService.GetPhotosByGalleryItem(c.Request().Context(), galleryItemID)
	if err != nil {
		return r.writeServiceError(c, log, err)
	}
	if photos == nil {
		photos = []models.Photo{}
	}

	return c.JSON(http.StatusOK, photos)
}

// DeletePhoto godoc
// @Summary Удаление снимка
// @Description Удаляет файл в хранилище и запись; счётчик альбома уменьшается на 1. Повторное удаление вернет 404.
// @Tags photos
// @Produce json
// @Param photoId path string true "UUID снимка" format(uuid)
// @Success 200 {object} map[string]string
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/photos/{photoId} [delete]
func (r *Routers) DeletePhoto(c echo.Context) error {
	const op = "http.routers.DeletePhoto"
	log := r.log.With(slog.String("op", op))

	photoID, err := parseIDParam(c, "photoId")
	if err != nil {
		return c.JSON(http.StatusBadRequest,
			response.ErrorResponseWithDetails("invalid_request", "invalid id format"))
	}

	if err := r.PhotoService.DeletePhoto(c.Request().Context(), photoID); err != nil {
		return r.writeServiceError(c, log, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Photo deleted successfully"})
}

// ---------- Внешние ссылки ----------

// UploadImageLinks godoc
// @Summary Добавление партии внешних ссылок в альбом
// @Description Принимает galleryItemId и массив imageAddresses. Адреса сохраняются как есть, порядок партии сохраняется.
// @Tags imageLinks
// @Accept json
// @Produce json
// @Param request body dto.UploadImageLinksRequest true "Партия ссылок"
// @Success 201 {object} dto.ImageLinksResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse "Альбом не найден"
// @Router /api/uploadImageLinks [post]
func (r *Routers) UploadImageLinks(c echo.Context) error {
	const op = "http.routers.UploadImageLinks"
	log := r.log.With(slog.String("op", op))

	var req dto.UploadImageLinksRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if req.GalleryItemID == uuid.Nil {
		return c.JSON(http.StatusBadRequest,
			response.ErrorResponseWithDetails("invalid_request", "galleryItemId is required"))
	}
	if len(req.ImageAddresses) == 0 {
		return c.JSON(http.StatusBadRequest,
			response.ErrorResponseWithDetails("invalid_request", "imageAddresses is required"))
	}

	links, err := r.ImageLinkService.CreateImageLinks(c.Request().Context(), req)
	if err != nil {
		return r.writeServiceError(c, log, err)
	}

	return c.JSON(http.StatusCreated, dto.ImageLinksResponse{Images: links})
}

// GetImageLinks godoc
// @Summary Внешние ссылки альбома
// @Tags imageLinks
// @Produce json
// @Param id path string true "UUID альбома" format(uuid)
// @Success 200 {object} dto.ImageLinksResponse
// @Failure 404 {object} response.ErrorResponse "Альбом не найден"
// @Router /api/uploadImageLinks/{id} [get]
func (r *Routers) GetImageLinks(c echo.Context) error {
	const op = "http.routers.GetImageLinks"
	log := r.log.With(slog.String("op", op))

	galleryItemID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest,
			response.ErrorResponseWithDetails("invalid_request", "invalid id format"))
	}

	links, err := r.ImageLinkService.GetImageLinksByGalleryItem(c.Request().Context(), galleryItemID)
	if err != nil {
		return r.writeServiceError(c, log, err)
	}
	if links == nil {
		links = []models.ImageLink{}
	}

	return c.JSON(http.StatusOK, dto.ImageLinksResponse{Images: links})
}

// DeleteImageLink godoc
// @Summary Удаление внешней ссылки
// @Description Удаляет ссылку; счётчик альбома уменьшается на 1
// @Tags imageLinks
// @Produce json
// @Param id path string true "UUID ссылки" format(uuid)
// @Success 200 {object} map[string]string
// @Failure 404 {object} response.ErrorResponse
// @Router /api/uploadImageLinks/{id} [delete]
func (r *Routers) DeleteImageLink(c echo.Context) error {
	const op = "http.routers.DeleteImageLink"
	log := r.log.With(slog.String("op", op))

	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest,
			response.ErrorResponseWithDetails("invalid_request", "invalid id format"))
	}

	if err := r.ImageLinkService.DeleteImageLink(c.Request().Context(), id); err != nil {
		return r.writeServiceError(c, log, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Image link deleted successfully"})
}

// ---------- Аутентификация ----------

// Login godoc
// @Summary Аутентификация пользователя
// @Description Вход по email и паролю. Возвращает пару access/refresh токенов.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Данные для входа"
// @Success 200 {object} response.Response{data=map[string]string}
// @Failure 400 {object} response.ErrorResponse "Неверный формат запроса"
// @Failure 401 {object} response.ErrorResponse "Ошибка аутентификации"
// @Router /api/auth/login [post]
func (r *Routers) Login(c echo.Context) error {
	const op = "http.routers.Login"
	log := r.log.With(slog.String("op", op))

	var req request.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("invalid format request", slog.String("email", req.Email))
		return c.JSON(http.StatusBadRequest,
			response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	pair, err := r.UserService.Login(c.Request().Context(), c, req.Email, req.Password)
	if err != nil {
		log.Warn("login failed", sl.Err(err))
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
	}

	return c.JSON(http.StatusOK, response.Response{
		Status: "success",
		Data: map[string]string{
			"user_id":       pair.UserID.String(),
			"access_token":  pair.AccessToken,
			"refresh_token": pair.RefreshToken,
		},
	})
}

// Register godoc
// @Summary Регистрация нового пользователя
// @Description Создание аккаунта. Возвращает ID пользователя.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.UserRegisterInput true "Данные для регистрации"
// @Success 201 {object} response.Response{data=object{user_id=string}}
// @Failure 400 {object} response.ErrorResponse "Неверный формат запроса"
// @Failure 409 {object} response.ErrorResponse "Пользователь уже существует"
// @Failure 500 {object} response.ErrorResponse
// @Router /api/auth/register [post]
func (r *Routers) Register(c echo.Context) error {
	const op = "http.routers.Register"
	log := r.log.With(slog.String("op", op))

	var req dto.UserRegisterInput
	if err := c.Bind(&req); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRegisterRequest)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("validation failed", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRegisterRequest)
	}

	userID, err := r.UserService.RegisterNewUser(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, usersvc.ErrUserExist) {
			log.Warn("user already exists", slog.String("email", req.Email))
			return c.JSON(http.StatusConflict, response.ErrUserAlreadyExists)
		}
		log.Error("registration failed", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	log.Info("user registered successfully", slog.String("user_id", userID.String()))

	return c.JSON(http.StatusCreated, response.Response{
		Status: "success",
		Data:   map[string]uuid.UUID{"user_id": userID},
	})
}

// Refresh godoc
// @Summary Обновление пары токенов
// @Description Принимает refresh токен, проверяет подпись и наличие в хранилище, ротирует его
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.RefreshRequest true "Refresh токен"
// @Success 200 {object} models.TokenPair
// @Failure 401 {object} response.ErrorResponse
// @Router /api/auth/refresh [post]
func (r *Routers) Refresh(c echo.Context) error {
	const op = "http.routers.Refresh"
	log := r.log.With(slog.String("op", op))

	var req request.RefreshRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	pair, err := r.AuthService.RefreshTokens(c.Request().Context(), req.RefreshToken)
	if err != nil {
		log.Warn("refresh rejected", sl.Err(err))
		return c.JSON(http.StatusUnauthorized,
			response.ErrorResponseWithDetails("authentication_failed", "invalid refresh token"))
	}

	return c.JSON(http.StatusOK, pair)
}

// IsAdminPermission godoc
// @Summary Проверка административного статуса пользователя
// @Tags auth
// @Produce json
// @Param user_id path string true "UUID пользователя" format(uuid)
// @Success 200 {object} map[string]bool
// @Failure 400 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/auth/users/{user_id}/is-admin [get]
func (r *Routers) IsAdminPermission(c echo.Context) error {
	const op = "http.routers.IsAdminPermission"
	log := r.log.With(slog.String("op", op))

	userID, err := parseIDParam(c, "user_id")
	if err != nil {
		log.Warn("error parse uuid", sl.Err(err))
		return c.JSON(http.StatusBadRequest,
			response.ErrorResponseWithDetails("invalid_request", "invalid user ID format"))
	}

	isAdmin, err := r.UserService.IsAdmin(c.Request().Context(), userID)
	if err != nil {
		return r.writeServiceError(c, log, err)
	}

	sess, err := session.Get("session", c)
	if err == nil {
		sess.Values["user_id"] = userID.String()
		sess.Values["is_admin"] = isAdmin
		_ = sess.Save(c.Request(), c.Response())
	}

	return c.JSON(http.StatusOK, map[string]bool{"is_admin": isAdmin})
}
