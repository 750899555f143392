package routes

import (
	"net/http"

	"restaurant_backend/internal/handlers"
	"restaurant_backend/internal/logger"
	"restaurant_backend/ws"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Options for the routes that sit outside /api.
type Options struct {
	// UploadsDir is served at UploadsURL when files are stored locally. Empty disables it.
	UploadsDir string
	UploadsURL string
}

// RegisterRoutes mounts the HTTP API, the websocket endpoint and the static routes.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	guards *handlers.Guards,
	wsHandler *ws.Handler,
	opts Options,
) {
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if opts.UploadsDir != "" {
		ginRouter.Static(opts.UploadsURL, opts.UploadsDir)
	}

	api := ginRouter.Group("/api")
	appHandlers.RegisterRoutes(api, guards)

	ginRouter.GET("/ws", guards.Auth, wsHandler.ServeWS)
	logger.Info("WebSocket route /ws registered")
}
