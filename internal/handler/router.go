package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"qomo-drops/internal/handler/api"
	"qomo-drops/internal/handler/middleware"
	"qomo-drops/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(engine *gin.Engine, cfg config.Config, dropHandler *api.DropHandler, viewerMiddleware *middleware.ViewerMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, dropHandler, viewerMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, dropHandler *api.DropHandler, viewerMiddleware *middleware.ViewerMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		drops := apiGroup.Group("/drops")
		drops.Use(viewerMiddleware.ResolveViewer())
		{
			addRoutes(drops, []route{
				{Method: http.MethodGet, Path: "", Handler: dropHandler.List},
				{Method: http.MethodGet, Path: "/:id", Handler: dropHandler.Get},
				{Method: http.MethodGet, Path: "/:id/comparison", Handler: dropHandler.Compare},
				{Method: http.MethodPost, Path: "/:id/view", Handler: dropHandler.View},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: dropHandler.Cancel},
				{Method: http.MethodPost, Path: "/:id/buy", Handler: dropHandler.Buy},
			})
		}

		admin := apiGroup.Group("/admin")
		{
			addRoutes(admin, []route{
				{Method: http.MethodPost, Path: "/reset", Handler: dropHandler.Reset},
			})
		}
	}
}

func addRoutes(group *gin.RouterGroup, routes []route) {
	for _, r := range routes {
		handlers := append(r.Mw, r.Handler)
		group.Handle(r.Method, r.Path, handlers...)
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
