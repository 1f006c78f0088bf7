package httpapp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	custommw "school_portal/internal/middleware"
	httprouters "school_portal/internal/transport/http"

	"github.com/arl/statsviz"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

type Server struct {
	m          *http.ServeMux
	log        *slog.Logger
	e          *echo.Echo
	routers    *httprouters.Routers
	host       string
	port       string
	token      string
	uploadsDir string
}

func New(log *slog.Logger, token string, host, port, uploadsDir string, requestTimeout time.Duration, routers *httprouters.Routers) *Server {
	e := echo.New()
	e.HideBanner = true

	validate := validator.New()
	e.Validator = &CustomValidator{validator: validate}

	e.Use(session.Middleware(sessions.NewCookieStore([]byte(token))))

	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(custommw.PrometheusMetrics)
	e.Use(requestTimeoutMiddleware(requestTimeout))

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("URI", v.URI),
				slog.Int("status", v.Status),
				slog.String("remote ip", v.RemoteIP),
			)

			return nil
		},
	}))

	mux := http.NewServeMux()
	err := statsviz.Register(mux)
	if err != nil {
		log.Info("Statsviz start with error", slog.Any("error:", err.Error()))
	}

	return &Server{
		m:          mux,
		log:        log,
		e:          e,
		routers:    routers,
		host:       host,
		port:       port,
		token:      token,
		uploadsDir: uploadsDir,
	}
}

// requestTimeoutMiddleware ограничивает время обработки запроса: контекст
// обрывает обращения к базе и хранилищу, зависший запрос не живет вечно
func requestTimeoutMiddleware(timeout time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if timeout <= 0 {
				return next(c)
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
			defer cancel()

			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

func (s *Server) MustRun() {
	const op = "http.Server.MustRun"

	s.log.Info(op, slog.String("Start", "server"))

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "http.Server.Start"

	if err := s.e.Start(fmt.Sprintf(":%s", s.port)); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("%s server stopped: %w", op, err)
	}

	return nil
}

func (s *Server) Stop() error {
	const op = "http.Server.Stop"

	optCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	s.log.Info("stopping", op, "http server")

	if err := s.e.Shutdown(optCtx); err != nil {
		return fmt.Errorf("%s could not shutdown server gracefuly: %w", op, err)
	}

	return nil
}

func (s *Server) BuildRouters() {
	jwtGuard := echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(s.token),
	})

	api := s.e.Group("/api")
	{
		// Новости и мероприятия исторически открыты без токена,
		// выравнивание контракта отложено до согласования с клиентом
		newsGroup := api.Group("/news")
		{
			newsGroup.GET("", s.routers.GetNews)
			newsGroup.POST("", s.routers.CreateNews)
			newsGroup.GET("/:id", s.routers.GetNewsById)
			newsGroup.PUT("/:id", s.routers.UpdateNews)
			newsGroup.DELETE("/:id", s.routers.DeleteNews)
		}

		eventGroup := api.Group("/events")
		{
			eventGroup.GET("", s.routers.GetEvents)
			eventGroup.POST("", s.routers.CreateEvent)
			eventGroup.GET("/:id", s.routers.GetEventById)
			eventGroup.PUT("/:id", s.routers.UpdateEvent)
			eventGroup.DELETE("/:id", s.routers.DeleteEvent)
		}

		galleryGroup := api.Group("/gallery")
		{
			galleryGroup.GET("", s.routers.GetGalleryItems)
			galleryGroup.POST("", s.routers.CreateGalleryItem)
			galleryGroup.GET("/:id", s.routers.GetGalleryItemById)
			galleryGroup.GET("/:id/media", s.routers.GetGalleryMedia)
			galleryGroup.PUT("/:id", s.routers.UpdateGalleryItem, jwtGuard)
			galleryGroup.DELETE("/:id", s.routers.DeleteGalleryItem, jwtGuard)
		}

		photoGroup := api.Group("/photos")
		{
			photoGroup.POST("/upload", s.routers.UploadPhotos, jwtGuard)
			photoGroup.GET("/:galleryItemId", s.routers.GetPhotosByGalleryItem)
			photoGroup.DELETE("/:photoId", s.routers.DeletePhoto, jwtGuard)
		}

		linkGroup := api.Group("/uploadImageLinks")
		{
			linkGroup.POST("", s.routers.UploadImageLinks)
			linkGroup.GET("/:id", s.routers.GetImageLinks)
			linkGroup.DELETE("/:id", s.routers.DeleteImageLink)
		}

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", s.routers.Register)
			authGroup.POST("/login", s.routers.Login)
			authGroup.POST("/refresh", s.routers.Refresh)
			authGroup.GET("/users/:user_id/is-admin", s.routers.IsAdminPermission, jwtGuard)
		}
	}

	s.e.Static("/uploads", s.uploadsDir)
	s.e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	debug := s.e.Group("/debug")
	{
		debug.GET("/statsviz/", echo.WrapHandler(s.m))
		debug.GET("/statsviz/*", echo.WrapHandler(s.m))
	}

	swagger := s.e.Group("/swag")
	{
		swagger.GET("/swagger/*", echoSwagger.WrapHandler)
	}
}
