package router

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cardapio-inteligente/backend/config"
	"github.com/cardapio-inteligente/backend/internal/api"
	"github.com/cardapio-inteligente/backend/internal/middleware"
)

// SetupRouter configures the application routes. The rate limiter is optional
// and only attached to the generation endpoint when Redis is available.
func SetupRouter(
	cfg *config.Config,
	menuHandler *api.MenuHandler,
	healthHandler *api.HealthHandler,
	limiter *middleware.RateLimiter,
) *gin.Engine {
	router := gin.Default()

	// CORS middleware
	router.Use(middleware.CORS(cfg))

	menu := router.Group("/api/menu")
	{
		if limiter != nil {
			menu.POST("/gerar", limiter.Middleware(), menuHandler.Generate)
		} else {
			menu.POST("/gerar", menuHandler.Generate)
		}
		menu.GET("/historico/:usuarioId", menuHandler.History)
		menu.POST("/favoritos", menuHandler.AddFavorite)
		menu.GET("/favoritos/:usuarioId", menuHandler.ListFavorites)
		menu.GET("/test", menuHandler.Ping)
	}

	router.GET("/api/health", healthHandler.Check)

	if cfg.StaticDir != "" {
		registerFrontend(router, cfg.StaticDir)
	}

	return router
}

// registerFrontend serves the static front end with an SPA fallback for
// non-API paths.
func registerFrontend(router *gin.Engine, staticDir string) {
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"sucesso": false, "erro": "rota não encontrada"})
			return
		}

		path := filepath.Join(staticDir, filepath.Clean(c.Request.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			c.File(path)
			return
		}
		c.File(filepath.Join(staticDir, "index.html"))
	})
}
