package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/astrocat-app/astrocat/internal/application"
	"github.com/astrocat-app/astrocat/internal/interface/middleware"
	"github.com/astrocat-app/astrocat/pkg/response"
	"github.com/astrocat-app/astrocat/pkg/validation"
)

type CatalogHandler struct {
	Svc    *application.CatalogService
	Logger *logrus.Logger
}

func NewCatalogHandler(svc *application.CatalogService, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{Svc: svc, Logger: logger}
}

type systemRequest struct {
	Name   string `json:"name" binding:"required,max=120"`
	Galaxy string `json:"galaxy" binding:"required,max=120"`
	About  string `json:"about"`
}

type objectRequest struct {
	Name         string  `json:"name" binding:"required,max=120"`
	SpaceType    string  `json:"space_type" binding:"required"`
	Radius       float64 `json:"radius" binding:"gte=0"`
	Period       float64 `json:"period" binding:"gte=0"`
	Eccentricity float64 `json:"eccentricity" binding:"gte=0,lte=1"`
	Velocity     float64 `json:"velocity" binding:"gte=0"`
	Density      float64 `json:"density" binding:"gte=0"`
	Gravity      float64 `json:"gravity" binding:"gte=0"`
	Mass         float64 `json:"mass" binding:"gte=0"`
	Satellites   int     `json:"satellites" binding:"gte=0"`
	Atmosphere   string  `json:"atmosphere"`
	About        string  `json:"about"`
	SystemID     string  `json:"system_id" binding:"required,uuid"`
}

func (r objectRequest) toInput() application.ObjectInput {
	return application.ObjectInput{
		Name:         r.Name,
		SpaceType:    r.SpaceType,
		Radius:       r.Radius,
		Period:       r.Period,
		Eccentricity: r.Eccentricity,
		Velocity:     r.Velocity,
		Density:      r.Density,
		Gravity:      r.Gravity,
		Mass:         r.Mass,
		Satellites:   r.Satellites,
		Atmosphere:   r.Atmosphere,
		About:        r.About,
		SystemID:     r.SystemID,
	}
}

// ListSystems serves the machine surface. The home system is excluded here
// and served by its own endpoint.
func (h *CatalogHandler) ListSystems(c *gin.Context) {
	systems, err := h.Svc.ListSystems()
	if err != nil {
		respondErr(c, err)
		return
	}
	out := make([]gin.H, 0, len(systems))
	for _, s := range systems {
		out = append(out, systemAPIView(s, h.Svc.CreatorName(s.CreatorID)))
	}
	response.Success(c, http.StatusOK, gin.H{"systems": out}, "space systems", nil)
}

// BrowseSystems serves the page surface of the same listing.
func (h *CatalogHandler) BrowseSystems(c *gin.Context) {
	viewerID := c.GetString(middleware.CtxUserIDKey)
	systems, err := h.Svc.ListSystems()
	if err != nil {
		respondErr(c, err)
		return
	}
	out := make([]gin.H, 0, len(systems))
	for _, s := range systems {
		out = append(out, systemPageView(s, h.Svc.CreatorName(s.CreatorID), viewerID))
	}
	response.Success(c, http.StatusOK, gin.H{"systems": out}, "space systems", nil)
}

func (h *CatalogHandler) SolarSystem(c *gin.Context) {
	viewerID := c.GetString(middleware.CtxUserIDKey)
	s, err := h.Svc.SolarSystem()
	if err != nil {
		respondErr(c, err)
		return
	}
	objects, err := h.Svc.SystemObjects(s.ID)
	if err != nil {
		respondErr(c, err)
		return
	}
	objs := make([]gin.H, 0, len(objects))
	for _, o := range objects {
		objs = append(objs, objectPageView(o, h.Svc.CreatorName(o.CreatorID), viewerID))
	}
	view := systemPageView(s, h.Svc.CreatorName(s.CreatorID), viewerID)
	view["objects"] = objs
	response.Success(c, http.StatusOK, view, "solar system", nil)
}

func (h *CatalogHandler) GetSystem(c *gin.Context) {
	viewerID := c.GetString(middleware.CtxUserIDKey)
	s, err := h.Svc.GetSystem(c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, systemPageView(s, h.Svc.CreatorName(s.CreatorID), viewerID), "space system", nil)
}

func (h *CatalogHandler) SystemObjects(c *gin.Context) {
	viewerID := c.GetString(middleware.CtxUserIDKey)
	s, err := h.Svc.GetSystem(c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	objects, err := h.Svc.SystemObjects(s.ID)
	if err != nil {
		respondErr(c, err)
		return
	}
	out := make([]gin.H, 0, len(objects))
	for _, o := range objects {
		out = append(out, objectPageView(o, h.Svc.CreatorName(o.CreatorID), viewerID))
	}
	response.Success(c, http.StatusOK, gin.H{"system": systemPageView(s, h.Svc.CreatorName(s.CreatorID), viewerID), "objects": out}, "system objects", nil)
}

func (h *CatalogHandler) CreateSystem(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req systemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	s, err := h.Svc.CreateSystem(c.Request.Context(), uid, application.SystemInput{
		Name:   req.Name,
		Galaxy: req.Galaxy,
		About:  req.About,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, systemPageView(s, h.Svc.CreatorName(uid), uid), "space system created", nil)
}

// UpdateSystem applies the edit, then relocates the name-derived image paths
// when the rename changed them. The relocation is an explicit second step so
// the write path stays free of storage I/O.
func (h *CatalogHandler) UpdateSystem(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req systemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	s, oldName, err := h.Svc.UpdateSystem(c.Request.Context(), uid, c.Param("id"), application.SystemInput{
		Name:   req.Name,
		Galaxy: req.Galaxy,
		About:  req.About,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	if oldName != s.Name {
		if err := h.Svc.RelocateSystemImages(c.Request.Context(), s.ID, oldName, s.Name); err != nil {
			h.Logger.WithError(err).WithField("system_id", s.ID).Warn("image relocation incomplete")
		}
	}
	response.Success(c, http.StatusOK, systemPageView(s, h.Svc.CreatorName(s.CreatorID), uid), "space system updated", nil)
}

func (h *CatalogHandler) DeleteSystem(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.DeleteSystem(c.Request.Context(), uid, c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "space system deleted", nil)
}

func (h *CatalogHandler) ListObjects(c *gin.Context) {
	objects, err := h.Svc.ListObjects()
	if err != nil {
		respondErr(c, err)
		return
	}
	out := make([]gin.H, 0, len(objects))
	for _, o := range objects {
		out = append(out, objectAPIView(o))
	}
	response.Success(c, http.StatusOK, gin.H{"objects": out}, "space objects", nil)
}

func (h *CatalogHandler) GetObject(c *gin.Context) {
	viewerID := c.GetString(middleware.CtxUserIDKey)
	o, err := h.Svc.GetObject(c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, objectPageView(o, h.Svc.CreatorName(o.CreatorID), viewerID), "space object", nil)
}

func (h *CatalogHandler) CreateObject(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req objectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	o, err := h.Svc.CreateObject(c.Request.Context(), uid, req.toInput())
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, objectPageView(o, h.Svc.CreatorName(uid), uid), "space object created", nil)
}

func (h *CatalogHandler) UpdateObject(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req objectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	o, err := h.Svc.UpdateObject(c.Request.Context(), uid, c.Param("id"), req.toInput())
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, objectPageView(o, h.Svc.CreatorName(o.CreatorID), uid), "space object updated", nil)
}

func (h *CatalogHandler) DeleteObject(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.DeleteObject(c.Request.Context(), uid, c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "space object deleted", nil)
}

func (h *CatalogHandler) UploadObjectImage(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	file, err := c.FormFile("image")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"image": "is required"})
		return
	}
	src, err := file.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "unreadable file", nil)
		return
	}
	defer func() { _ = src.Close() }()

	o, err := h.Svc.AttachObjectImage(c.Request.Context(), uid, c.Param("id"), src, file.Filename, file.Header.Get("Content-Type"))
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, objectPageView(o, h.Svc.CreatorName(o.CreatorID), uid), "image uploaded", nil)
}

func (h *CatalogHandler) SearchObjects(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"q": "is required"})
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.SearchObjects(c.Request.Context(), q, size)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"hits": hits}, "search results", nil)
}
