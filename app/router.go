// Package app wires the catalog into an HTTP server
package app

import (
	"bitwise74/catalog-api/app/creator"
	"bitwise74/catalog-api/app/root"
	"bitwise74/catalog-api/app/user"
	"bitwise74/catalog-api/app/video"
	"bitwise74/catalog-api/aws"
	"bitwise74/catalog-api/db"
	"bitwise74/catalog-api/internal"
	"bitwise74/catalog-api/internal/search"
	"bitwise74/catalog-api/internal/service"
	"bitwise74/catalog-api/pkg/middleware"
	"context"
	"fmt"
	"strings"
	"time"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Only immutable responses are cached, anything touching engagement state
// is always served fresh
var store = persist.NewMemoryStore(time.Minute)

const maxBodySize = 1 << 20

type App struct {
	Router *gin.Engine
	Deps   *internal.Deps
	cron   *cron.Cron
}

// New opens every dependency named in the config and builds the router
func New(ctx context.Context) (*App, error) {
	if err := makeLogger(viper.GetString("app.log_level")); err != nil {
		return nil, fmt.Errorf("failed to build logger, %w", err)
	}

	d := &internal.Deps{}

	conn, err := db.New(viper.GetString("db.driver"), viper.GetString("db.dsn"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}
	d.DB = conn

	idx, err := search.Open(viper.GetString("search.index_path"))
	if err != nil {
		return nil, fmt.Errorf("failed to open search index, %w", err)
	}
	d.Index = idx

	var media service.MediaStore = service.NopMedia{}
	if viper.GetString("media.type") == "s3" {
		s3, err := aws.NewS3(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 client, %w", err)
		}

		d.S3 = s3
		media = s3
	}

	d.Catalog = service.New(conn, idx, media, service.Options{
		MaxLimit:   viper.GetInt("pagination.max_limit"),
		MaxResults: viper.GetInt("search.max_results"),
	})

	if err := d.Catalog.Reindex(ctx); err != nil {
		return nil, fmt.Errorf("failed to build search index, %w", err)
	}

	a := &App{Deps: d, Router: NewRouter(ctx, d)}

	if spec := viper.GetString("search.reindex_schedule"); spec != "" {
		a.cron, err = d.Catalog.ScheduleReindex(spec)
		if err != nil {
			return nil, err
		}
	}

	return a, nil
}

// Close stops the reindex schedule and flushes the index
func (a *App) Close() {
	if a.cron != nil {
		<-a.cron.Stop().Done()
	}

	if err := a.Deps.Index.Close(); err != nil {
		zap.L().Error("Failed to close search index", zap.Error(err))
	}

	_ = zap.L().Sync()
}

// NewRouter registers every route on a new engine. Background work started
// by the middleware stops when ctx is done.
func NewRouter(ctx context.Context, d *internal.Deps) *gin.Engine {
	router := gin.New()

	origins := strings.Split(viper.GetString("host.cors_origins"), ",")

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
		ginzap.RecoveryWithZap(zap.L(), true),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true

	rateLimit := viper.GetInt("security.rate_limit")

	jwt := middleware.NewJWTMiddleware()
	identity := middleware.NewOptionalJWTMiddleware()
	rateLimiter := middleware.RateLimiterMiddleware(ctx, middleware.RateLimiterConfig{
		RequestsPerSecond: rateLimit,
		Burst:             rateLimit * 2,
	})
	body := middleware.BodySizeLimiter(maxBodySize)

	m := router.Group("/api", rateLimiter)
	{
		// HEAD /api/heartbeat 			-> Used to check if the server is alive
		m.HEAD("/heartbeat", func(c *gin.Context) { root.Heartbeat(c, d) })
	}

	v := m.Group("/videos")
	{
		// GET /api/videos			-> Lists videos, paginated
		v.GET("", identity, func(c *gin.Context) { video.VideoList(c, d) })

		// POST /api/videos			-> Registers an uploaded video
		v.POST("", jwt, body, func(c *gin.Context) { video.VideoPublish(c, d) })

		// GET /api/videos/categories		-> Returns every category a video can have
		v.GET("/categories", cacheFor(60*60), video.VideoCategories)

		// GET /api/videos/search		-> Full text search
		v.GET("/search", identity, func(c *gin.Context) { video.VideoSearch(c, d) })

		// GET /api/videos/suggestions		-> Newest videos, excluding the one being watched
		v.GET("/suggestions", identity, func(c *gin.Context) { video.VideoSuggestions(c, d) })

		// GET /api/videos/:id			-> Returns a single video
		v.GET("/:id", identity, func(c *gin.Context) { video.VideoGet(c, d) })

		// PATCH /api/videos/:id		-> Edits the title or description of a video
		v.PATCH("/:id", jwt, body, func(c *gin.Context) { video.VideoEdit(c, d) })

		// DELETE /api/videos/:id		-> Deletes a video with its comments and media
		v.DELETE("/:id", jwt, func(c *gin.Context) { video.VideoDelete(c, d) })

		// POST /api/videos/:id/like		-> Toggles the caller's like
		v.POST("/:id/like", jwt, func(c *gin.Context) { video.VideoLike(c, d) })

		// POST /api/videos/:id/view		-> Counts a view
		v.POST("/:id/view", func(c *gin.Context) { video.VideoView(c, d) })
	}

	u := m.Group("/users")
	{
		// GET /api/users/:username		-> Public profile with the user's videos
		u.GET("/:username", identity, func(c *gin.Context) { user.UserProfile(c, d) })
	}

	cr := m.Group("/creator", jwt)
	{
		// GET /api/creator/dashboard		-> The caller's own videos
		cr.GET("/dashboard", func(c *gin.Context) { creator.CreatorDashboard(c, d) })
	}

	return router
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
}
