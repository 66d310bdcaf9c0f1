package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tasktracker/docs"
	"tasktracker/internal/auth"
	"tasktracker/internal/config"
	"tasktracker/internal/database"
	"tasktracker/internal/handler"
	"tasktracker/internal/middleware"
	"tasktracker/internal/render"
	"tasktracker/internal/repository"
	"tasktracker/internal/session"
	"tasktracker/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Redis  redis.UniversalClient
	Media  storage.Media
	Config *config.Config
	Log    *zap.Logger
}

// Deps are the collaborators the router is built from.
type Deps struct {
	Users    repository.UserRepositoryInterface
	Profiles repository.ProfileRepositoryInterface
	Tasks    repository.TaskRepositoryInterface
	Sessions session.Store
	Tokens   *auth.TokenManager
	Media    storage.Media
	Renderer render.Renderer
	Clock    handler.Clock
	Health   func(ctx context.Context) error
}

func Init(cfg *config.Config, log *zap.Logger) (*Server, error) {
	return initWithClock(cfg, log, time.Now)
}

func initWithClock(cfg *config.Config, log *zap.Logger, clock handler.Clock) (*Server, error) {
	db, err := database.Open(cfg, log)
	if err != nil {
		return nil, err
	}
	log.Info("connected to database", zap.String("driver", cfg.DBDriver))

	if err := database.Migrate(cfg, log); err != nil {
		return nil, err
	}

	var rdb redis.UniversalClient
	var sessions session.Store = session.NoopStore{}
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPass})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		sessions = session.NewRedisStore(rdb)
		log.Info("connected to redis", zap.String("addr", cfg.RedisAddr))
	} else {
		log.Warn("REDIS_ADDR not set, sessions cannot be revoked server-side")
	}

	var media storage.Media
	if cfg.NATSURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		objects, err := storage.NewJetStreamObjectStore(ctx, cfg.NATSURL, cfg.MediaBucket, cfg.MaxUploadBytes())
		if err != nil {
			return nil, err
		}
		media = objects
		log.Info("media stored in jetstream", zap.String("bucket", cfg.MediaBucket))
	} else {
		media = storage.NewDiskStore(cfg.MediaRoot, cfg.MaxUploadBytes())
		log.Warn("NATS_URL not set, media stored on local disk", zap.String("root", cfg.MediaRoot))
	}

	health := func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			return err
		}
		if rdb != nil {
			return rdb.Ping(ctx).Err()
		}
		return nil
	}

	engine := NewRouter(cfg, Deps{
		Users:    repository.NewUserRepository(db),
		Profiles: repository.NewProfileRepository(db),
		Tasks:    repository.NewTaskRepository(db),
		Sessions: sessions,
		Tokens:   auth.NewTokenManager(cfg.JWTSecret, cfg.SessionTTL),
		Media:    media,
		Renderer: render.JSON{},
		Clock:    clock,
		Health:   health,
	}, log)

	return &Server{
		Engine: engine,
		DB:     db,
		Redis:  rdb,
		Media:  media,
		Config: cfg,
		Log:    log,
	}, nil
}

// NewRouter registers every route on a fresh engine.
func NewRouter(cfg *config.Config, d Deps, log *zap.Logger) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(middleware.Recovery(log), middleware.RequestLogger(log))
	r.MaxMultipartMemory = cfg.MaxUploadBytes()

	cookie := middleware.NewSessionCookie(cfg.CookieSecure)

	authHandler := handler.NewAuthHandler(d.Users, d.Tokens, d.Sessions, cookie, d.Renderer, log)
	dashboardHandler := handler.NewDashboardHandler(d.Tasks, d.Renderer, d.Clock, log)
	taskHandler := handler.NewTaskHandler(d.Tasks, d.Renderer, d.Clock, log)
	profileHandler := handler.NewProfileHandler(d.Users, d.Profiles, d.Tasks, d.Media, d.Renderer, d.Clock, log)

	docs.SwaggerInfo.BasePath = "/"
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/healthz", func(c *gin.Context) {
		if d.Health != nil {
			if err := d.Health(c.Request.Context()); err != nil {
				log.Error("health check failed", zap.Error(err))
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if d.Media != nil {
		r.GET("/media/*filepath", d.Media.Serve)
		r.HEAD("/media/*filepath", d.Media.Serve)
	}

	site := r.Group("/")
	site.Use(middleware.SessionAuth(d.Tokens, d.Sessions, d.Users, cookie, log))
	{
		anonymous := site.Group("/")
		anonymous.Use(middleware.AnonymousOnly())
		anonymous.GET("/register/", authHandler.RegisterForm)
		anonymous.POST("/register/", authHandler.Register)
		anonymous.GET("/login/", authHandler.LoginForm)
		anonymous.POST("/login/", authHandler.Login)

		authorized := site.Group("/")
		authorized.Use(middleware.LoginRequired())
		authorized.GET("/", dashboardHandler.Home)
		authorized.GET("/logout/", authHandler.Logout)
		authorized.POST("/logout/", authHandler.Logout)

		authorized.GET("/task/add/", taskHandler.AddForm)
		authorized.POST("/task/add/", taskHandler.Add)
		authorized.GET("/task/:id/edit/", taskHandler.EditForm)
		authorized.POST("/task/:id/edit/", taskHandler.Edit)
		authorized.GET("/task/:id/delete/", taskHandler.DeleteConfirm)
		authorized.POST("/task/:id/delete/", taskHandler.Delete)
		authorized.POST("/task/:id/toggle/", taskHandler.Toggle)
		authorized.GET("/task/:id/toggle/", taskHandler.ToggleNotAllowed)

		authorized.GET("/profile/", profileHandler.Show)
		authorized.POST("/profile/", profileHandler.Update)
	}

	return r
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		s.Log.Info("server running", zap.String("port", s.Config.ServerPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Log.Fatal("failed to listen", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	s.Log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		s.Log.Fatal("server forced to shutdown", zap.Error(err))
	}

	s.close()
	s.Log.Info("server exited properly")
}

func (s *Server) close() {
	if closer, ok := s.Media.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			s.Log.Warn("closing media store", zap.Error(err))
		}
	}
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			s.Log.Warn("closing redis", zap.Error(err))
		}
	}
	if sqlDB, err := s.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			s.Log.Warn("closing database", zap.Error(err))
		}
	}
}
