package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/astrocat-app/astrocat/internal/container"
	handlers "github.com/astrocat-app/astrocat/internal/interface/http"
	"github.com/astrocat-app/astrocat/internal/interface/middleware"
	"github.com/astrocat-app/astrocat/pkg/helpers"
)

// CatalogModule registers star system and celestial body routes.
// The home system has a dedicated endpoint because generic listings skip it.

type CatalogModule struct {
	Handler *handlers.CatalogHandler
	JWT     *helpers.JWTManager
}

func NewCatalogModule(h *handlers.CatalogHandler, jwt *helpers.JWTManager) *CatalogModule {
	return &CatalogModule{Handler: h, JWT: jwt}
}

func (m *CatalogModule) Register(rg *gin.RouterGroup) {
	read := rg.Group("/")
	read.Use(middleware.OptionalAuth(container.GetRedis(), m.JWT))
	{
		read.GET("/systems", m.Handler.ListSystems)
		read.GET("/systems/browse", m.Handler.BrowseSystems)
		read.GET("/systems/solar", m.Handler.SolarSystem)
		read.GET("/systems/:id", m.Handler.GetSystem)
		read.GET("/systems/:id/objects", m.Handler.SystemObjects)

		read.GET("/objects", m.Handler.ListObjects)
		read.GET("/objects/search", m.Handler.SearchObjects)
		read.GET("/objects/:id", m.Handler.GetObject)
	}

	write := rg.Group("/")
	write.Use(middleware.Auth(container.GetRedis(), m.JWT))
	write.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID()))
	{
		write.POST("/systems", m.Handler.CreateSystem)
		write.PUT("/systems/:id", m.Handler.UpdateSystem)
		write.DELETE("/systems/:id", m.Handler.DeleteSystem)

		write.POST("/objects", m.Handler.CreateObject)
		write.PUT("/objects/:id", m.Handler.UpdateObject)
		write.DELETE("/objects/:id", m.Handler.DeleteObject)
		write.POST("/objects/:id/image", m.Handler.UploadObjectImage)
	}
}
