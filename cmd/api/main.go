package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"homewidget/internal/config"
	"homewidget/internal/database"
	"homewidget/internal/domain"
	"homewidget/internal/middleware"
	"homewidget/internal/modules/auth"
	"homewidget/internal/modules/home"
	"homewidget/internal/modules/widget"
	"homewidget/internal/pkg/cache"
	"homewidget/internal/pkg/ratelimit"
	"homewidget/internal/pkg/token"
	"homewidget/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := db.AutoMigrate(&domain.User{}, &domain.RefreshToken{}, &domain.Widget{}); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewRefreshTokenRepository(db)
	widgetRepo := repository.NewWidgetRepository(db)

	codec := token.NewCodec(cfg.JWTSecret)

	var store cache.Store = cache.NewMemoryStore()
	if cfg.RedisAddr != "" {
		store = cache.NewRedisStore(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
	}
	blacklist := auth.NewBlacklist(store)

	authService := auth.NewService(userRepo, tokenRepo, codec, blacklist, cfg.AccessTTL, cfg.RefreshTTL)
	widgetService := widget.NewService(widgetRepo)
	homeService := home.NewService(widgetRepo, home.DefaultProviders())

	limiter := ratelimit.NewLimiter()
	enforce := cfg.IsProdLike()

	authHandler := auth.NewHandler(authService, limiter, cfg.LoginRate, cfg.RefreshRate, enforce)
	widgetHandler := widget.NewHandler(widgetService)
	homeHandler := home.NewHandler(homeService, limiter, cfg.FeedRate, enforce)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sweeper := auth.NewSweeper(tokenRepo, cfg.SweepInterval)
	go sweeper.Run(ctx)

	if enforce {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(), middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(codec, blacklist, userRepo))
		{
			authHandler.RegisterProtectedRoutes(protected)
			widgetHandler.RegisterRoutes(protected)
			homeHandler.RegisterRoutes(protected)
		}
	}

	srv := &http.Server{Addr: cfg.ListenAddr, Handler: r}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}
