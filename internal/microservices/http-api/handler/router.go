package handler

import (
	"net/http"
	"time"

	"mangafandb/internal/microservices/http-api/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// maxRateLimitClients bounds the per-IP limiter cache.
const maxRateLimitClients = 10000

type RouterConfig struct {
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
}

// Handlers groups everything mounted under /api.
type Handlers struct {
	Auth            *AuthHandler
	Users           *UserHandler
	Badges          *BadgeHandler
	Notifications   *NotificationHandler
	Series          *SeriesHandler
	Volumes         *VolumeHandler
	Arcs            *ArcHandler
	Chapters        *ChapterHandler
	Characters      *CharacterHandler
	Organizations   *OrganizationHandler
	Tags            *TagHandler
	Gambles         *GambleHandler
	Events          *EventHandler
	ChapterSpoilers *ChapterSpoilerHandler
	Guides          *GuideHandler
	Annotations     *AnnotationHandler
	Media           *MediaHandler
	Moderation      *ModerationHandler
	Search          *SearchHandler
	Health          *HealthHandler
}

// NewRouter builds the engine: recovery, request logging and CORS on every
// route, then rate limiting and optional authentication on /api.
func NewRouter(cfg RouterConfig, tokens middleware.TokenValidator, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", h.Health.Health)
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})

	limited := r.Group("/api", middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, maxRateLimitClients))
	// token endpoints ignore a stale Authorization header
	h.Auth.RegisterRoutes(limited.Group("/auth"))

	api := limited.Group("", middleware.OptionalAuth(tokens))
	h.Users.RegisterRoutes(api.Group("/users"))
	h.Badges.RegisterRoutes(api.Group("/badges"))
	h.Notifications.RegisterRoutes(api.Group("/notifications"))
	h.Series.RegisterRoutes(api.Group("/series"))
	h.Volumes.RegisterRoutes(api.Group("/volumes"))
	h.Arcs.RegisterRoutes(api.Group("/arcs"))
	h.Chapters.RegisterRoutes(api.Group("/chapters"))
	h.Characters.RegisterRoutes(api.Group("/characters"))
	h.Organizations.RegisterRoutes(api.Group("/organizations"))
	h.Tags.RegisterRoutes(api.Group("/tags"))
	h.Gambles.RegisterRoutes(api.Group("/gambles"))
	h.Events.RegisterRoutes(api.Group("/events"))
	h.ChapterSpoilers.RegisterRoutes(api.Group("/chapter-spoilers"))
	h.Guides.RegisterRoutes(api.Group("/guides"))
	h.Annotations.RegisterRoutes(api.Group("/annotations"))
	h.Media.RegisterRoutes(api.Group("/media"))
	h.Moderation.RegisterRoutes(api.Group("/moderation"))
	h.Search.RegisterRoutes(api.Group("/search"))

	return r
}
