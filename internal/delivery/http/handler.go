package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dreamscribe/internal/delivery/http/middleware"
	"dreamscribe/internal/service"
)

// Handler обслуживает REST API поверх сервисного слоя.
type Handler struct {
	services *service.Services
	logger   *zap.Logger
}

func NewHandler(services *service.Services, logger *zap.Logger) *Handler {
	useJSONFieldNames()
	return &Handler{services: services, logger: logger.Named("HTTPHandler")}
}

// RouterConfig - параметры HTTP-роутера.
type RouterConfig struct {
	// ActingUserID - пользователь, от имени которого выполняются все запросы к /api.
	ActingUserID   int64
	AllowedOrigins []string
}

// NewRouter собирает gin.Engine: middleware, /health и маршруты /api.
// Метрики Prometheus подключаются отдельно, см. cmd/server.
func NewRouter(h *Handler, cfg RouterConfig, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ZapLogger(logger))
	router.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api", middleware.ActingUser(cfg.ActingUserID))
	h.RegisterRoutes(api)
	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}

// RegisterRoutes регистрирует маршруты API в группе.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.getDashboard)

	worlds := rg.Group("/worlds")
	{
		worlds.GET("", h.listWorlds)
		worlds.POST("", h.createWorld)
		worlds.GET("/:id", h.getWorld)
		worlds.PATCH("/:id", h.updateWorld)
		worlds.DELETE("/:id", h.deleteWorld)
		worlds.GET("/:id/characters", h.listWorldCharacters)
		worlds.GET("/:id/scenes", h.listWorldScenes)
		worlds.GET("/:id/activity", h.listWorldActivity)
	}

	characters := rg.Group("/characters")
	{
		characters.GET("", h.listCharacters)
		characters.POST("", h.createCharacter)
		characters.GET("/:id", h.getCharacter)
		characters.PATCH("/:id", h.updateCharacter)
		characters.DELETE("/:id", h.deleteCharacter)
		characters.PATCH("/:id/memory", h.updateCharacterMemory)
		characters.POST("/:id/facts", h.addCharacterFact)
		characters.GET("/:id/messages", h.listCharacterMessages)
		characters.GET("/:id/mood", h.getCharacterMood)
		characters.POST("/:id/analyze-mood", h.analyzeCharacterMood)
	}

	rg.POST("/chat-messages", h.createChatMessage)
	rg.POST("/generate-character-response", h.generateCharacterResponse)

	scenes := rg.Group("/scenes")
	{
		scenes.POST("", h.createScene)
		scenes.POST("/generate", h.generateScene)
		scenes.GET("/:id", h.getScene)
		scenes.PATCH("/:id", h.updateScene)
		scenes.DELETE("/:id", h.deleteScene)
	}

	rg.POST("/users", h.register)
	rg.POST("/login", h.login)
}
