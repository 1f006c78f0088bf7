package app

import (
	"context"
	"log/slog"

	httpapp "school_portal/internal/app/http"
	"school_portal/internal/config"
	"school_portal/internal/repository"
	eventsvc "school_portal/internal/services/event_service"
	gallerysvc "school_portal/internal/services/gallery_service"
	linksvc "school_portal/internal/services/imagelink_service"
	newssvc "school_portal/internal/services/news_service"
	photosvc "school_portal/internal/services/photo_service"
	tokensvc "school_portal/internal/services/token_service"
	usersvc "school_portal/internal/services/user_service"
	filestorage "school_portal/internal/storage/filestorage"
	"school_portal/internal/storage/postgresql"
	redisapp "school_portal/internal/storage/redis"
	httprouters "school_portal/internal/transport/http"
)

type App struct {
	HTTPServer *httpapp.Server
	storage    *postgresql.Storage
	redis      *redisapp.Client
}

func New(log *slog.Logger, cfg *config.Config) *App {
	storage, err := postgresql.New(context.Background(), cfg.DSN)
	if err != nil {
		panic(err)
	}

	redisClient := redisapp.NewClient(cfg.Redis.RedisAddr, cfg.Redis.RedisPassword, cfg.Redis.RedisDB)

	mediaHost, err := filestorage.NewLocalMediaHost(
		cfg.FileStorage.BaseDir,
		cfg.FileStorage.BaseURL,
		cfg.FileStorage.MaxSize,
	)
	if err != nil {
		panic(err)
	}

	repo := repository.NewRepository(storage.DB)
	tokenRepo := repository.NewRedisTokenRepo(redisClient)

	tokenService := tokensvc.NewTokenService(log, tokenRepo, cfg.TokenSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	newsService := newssvc.NewNewsService(log, repo.News)
	eventService := eventsvc.NewEventService(log, repo.Events)
	galleryService := gallerysvc.NewGalleryService(log, repo.Gallery, repo.Photos, repo.ImageLinks)
	photoService := photosvc.NewPhotoService(log, repo.Photos, repo.Gallery, mediaHost)
	imageLinkService := linksvc.NewImageLinkService(log, repo.ImageLinks, repo.Gallery)
	userService := usersvc.NewUserService(log, repo.Users, tokenService)

	routers := httprouters.NewRouter(
		log,
		newsService,
		eventService,
		galleryService,
		photoService,
		imageLinkService,
		userService,
		tokenService,
	)

	server := httpapp.New(log, cfg.TokenSecret, cfg.HTTP.Host, cfg.HTTP.Port, cfg.FileStorage.BaseDir, cfg.RequestTimeout, routers)
	server.BuildRouters()

	return &App{
		HTTPServer: server,
		storage:    storage,
		redis:      redisClient,
	}
}

func (a *App) Stop() error {
	if err := a.HTTPServer.Stop(); err != nil {
		return err
	}

	a.storage.Stop()
	return a.redis.Close()
}
