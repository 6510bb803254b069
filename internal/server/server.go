package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"user-console/internal/config"
	"user-console/internal/directory"
	authhandler "user-console/internal/handler/auth"
	"user-console/internal/handler/health"
	"user-console/internal/handler/middleware"
	userhandler "user-console/internal/handler/user"
	"user-console/internal/session"
	jwtsvc "user-console/pkg/jwt"
	"user-console/pkg/logger"
)

// Server представляет HTTP сервер консоли управления пользователями
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	cfg        *config.Config
	log        logger.Logger

	jwtService  jwtsvc.Service
	authHandler *authhandler.Handler
	userHandler *userhandler.Handler
	healthH     *health.Handler
}

// NewServer создает новый экземпляр сервера
func NewServer(cfg *config.Config, log logger.Logger) *Server {
	// Устанавливаем режим Gin в зависимости от окружения
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()

	s := &Server{
		router: router,
		cfg:    cfg,
		log:    log,
	}

	// Инициализируем клиентов внешних сервисов и хендлеры один раз
	dirClient := directory.NewClient(cfg.Directory.BaseURL, cfg.Directory.Timeout)
	sessClient := session.NewClient(cfg.Session.BaseURL, cfg.Session.Timeout)

	s.jwtService = jwtsvc.NewService(&cfg.JWT)
	s.authHandler = authhandler.NewHandler(sessClient, s.jwtService)
	s.userHandler = userhandler.NewHandler(dirClient)
	s.healthH = health.NewHandler(dirClient, cfg.AppEnv)

	// Настраиваем middleware и роуты
	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware настраивает middleware для роутера
func (s *Server) setupMiddleware() {
	// Recovery middleware - должен быть первым для перехвата паник
	s.router.Use(middleware.Recovery(s.log))

	// RequestID middleware - идентификатор запроса для логов и ответов
	s.router.Use(middleware.RequestID())

	// Logger middleware - логирование всех запросов
	s.router.Use(middleware.LoggerStructured(s.log))

	// CORS middleware - настройка CORS
	s.router.Use(middleware.CORS(&s.cfg.CORS))
}

// setupRoutes настраивает маршруты приложения
func (s *Server) setupRoutes() {
	s.setupHealthRoutes()
	s.setupAuthRoutes()
	s.setupUserRoutes()
}

// setupHealthRoutes настраивает health-check эндпоинты.
func (s *Server) setupHealthRoutes() {
	// GET /health — базовый health-check сервера (жив ли процесс).
	s.router.GET("/health", s.healthH.Health)
	// GET /health/directory — проверка доступности сервиса каталога.
	s.router.GET("/health/directory", s.healthH.HealthDirectory)
}

// setupAuthRoutes настраивает эндпоинты аутентификации и корневой роут API.
func (s *Server) setupAuthRoutes() {
	v1 := s.router.Group("/api/v1")

	// GET /api/v1/ — корневой эндпоинт API v1, возвращает версию и базовую информацию.
	v1.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "User Console API v1",
			"version": "1.0.0",
		})
	})

	authGroup := v1.Group("/auth")
	{
		// POST /api/v1/auth/login — вход оператора; учётные данные проверяет внешний сервис сессий.
		authGroup.POST("/login", s.authHandler.Login)
		// GET /api/v1/auth/me — личность текущего аутентифицированного оператора.
		authGroup.GET("/me", middleware.Auth(s.jwtService), s.authHandler.Me)
	}
}

// setupUserRoutes настраивает защищённые эндпоинты записей пользователей.
func (s *Server) setupUserRoutes() {
	v1 := s.router.Group("/api/v1")

	userGroup := v1.Group("/users")
	userGroup.Use(middleware.Auth(s.jwtService))
	{
		// GET /api/v1/users — список записей каталога.
		userGroup.GET("", s.userHandler.List)
		// GET /api/v1/users/:id — одна запись (источник гидрации формы редактирования).
		userGroup.GET("/:id", s.userHandler.Get)
		// POST /api/v1/users — создание записи через движок формы.
		userGroup.POST("", s.userHandler.Create)
		// PATCH /api/v1/users/:id — частичное обновление записи (разреженный дифф).
		userGroup.PATCH("/:id", s.userHandler.Update)
		// DELETE /api/v1/users/:id — удаление записи (требует confirm=true).
		userGroup.DELETE("/:id", s.userHandler.Delete)
	}
}

// Start запускает HTTP сервер с graceful shutdown
func (s *Server) Start() error {
	address := s.cfg.Server.Address()

	s.httpServer = &http.Server{
		Addr:           address,
		Handler:        s.router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	// Канал для получения сигналов ОС
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Канал для ошибок запуска сервера
	serverErr := make(chan error, 1)

	// Запускаем сервер в отдельной горутине
	go func() {
		log.Printf("HTTP сервер запущен на %s", address)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("ошибка запуска HTTP сервера: %w", err)
		}
	}()

	// Ожидаем либо сигнал для graceful shutdown, либо ошибку запуска
	select {
	case err := <-serverErr:
		// Если сервер не смог запуститься, пытаемся корректно остановить
		log.Printf("Ошибка запуска сервера: %v", err)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpServer.Shutdown(ctx)
		return err
	case sig := <-quit:
		log.Printf("Получен сигнал %v для остановки сервера...", sig)
	}

	// Создаем контекст с таймаутом для graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Останавливаем сервер
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("ошибка при остановке сервера: %w", err)
	}

	log.Println("HTTP сервер успешно остановлен")
	return nil
}

// GetRouter возвращает роутер (для тестирования)
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}
