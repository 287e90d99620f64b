package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/astrocat-app/astrocat/internal/container"
	handlers "github.com/astrocat-app/astrocat/internal/interface/http"
	"github.com/astrocat-app/astrocat/internal/interface/middleware"
	"github.com/astrocat-app/astrocat/pkg/helpers"
)

// NewsModule registers the news feed routes. Reads resolve the viewer
// optionally so private posts stay owner-only; writes require a session.

type NewsModule struct {
	Handler *handlers.NewsHandler
	JWT     *helpers.JWTManager
}

func NewNewsModule(h *handlers.NewsHandler, jwt *helpers.JWTManager) *NewsModule {
	return &NewsModule{Handler: h, JWT: jwt}
}

func (m *NewsModule) Register(rg *gin.RouterGroup) {
	read := rg.Group("/")
	read.Use(middleware.OptionalAuth(container.GetRedis(), m.JWT))
	{
		read.GET("/news", m.Handler.List)
		read.GET("/news/feed", m.Handler.Feed)
		read.GET("/news/:id", m.Handler.Get)
	}

	write := rg.Group("/")
	write.Use(middleware.Auth(container.GetRedis(), m.JWT))
	write.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID()))
	{
		write.POST("/news", m.Handler.Create)
		write.PUT("/news/:id", m.Handler.Update)
		write.DELETE("/news/:id", m.Handler.Delete)
		write.POST("/news/:id/photo", m.Handler.UploadPhoto)
	}
}
