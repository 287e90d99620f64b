package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/astrocat-app/astrocat/internal/application"
	"github.com/astrocat-app/astrocat/internal/interface/middleware"
	"github.com/astrocat-app/astrocat/pkg/response"
	"github.com/astrocat-app/astrocat/pkg/validation"
)

type NewsHandler struct {
	Svc    *application.NewsService
	Logger *logrus.Logger
}

func NewNewsHandler(svc *application.NewsService, logger *logrus.Logger) *NewsHandler {
	return &NewsHandler{Svc: svc, Logger: logger}
}

type newsRequest struct {
	Title     string `json:"title" binding:"required,max=200"`
	Content   string `json:"content" binding:"required"`
	IsPrivate bool   `json:"is_private"`
}

// List serves the machine surface: visible posts with the fixed field list.
func (h *NewsHandler) List(c *gin.Context) {
	viewerID := c.GetString(middleware.CtxUserIDKey)
	posts, err := h.Svc.List(c.Request.Context(), viewerID)
	if err != nil {
		respondErr(c, err)
		return
	}
	out := make([]gin.H, 0, len(posts))
	for _, n := range posts {
		out = append(out, newsAPIView(n, h.Svc.AuthorName(n.UserID)))
	}
	response.Success(c, http.StatusOK, gin.H{"news": out}, "news", nil)
}

// Feed serves the page surface of the same listing.
func (h *NewsHandler) Feed(c *gin.Context) {
	viewerID := c.GetString(middleware.CtxUserIDKey)
	posts, err := h.Svc.List(c.Request.Context(), viewerID)
	if err != nil {
		respondErr(c, err)
		return
	}
	out := make([]gin.H, 0, len(posts))
	for _, n := range posts {
		out = append(out, newsPageView(n, h.Svc.AuthorName(n.UserID), viewerID))
	}
	response.Success(c, http.StatusOK, gin.H{"news": out}, "news feed", nil)
}

func (h *NewsHandler) Get(c *gin.Context) {
	viewerID := c.GetString(middleware.CtxUserIDKey)
	n, err := h.Svc.Get(c.Request.Context(), c.Param("id"), viewerID)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, newsPageView(n, h.Svc.AuthorName(n.UserID), viewerID), "news post", nil)
}

func (h *NewsHandler) Create(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req newsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	n, err := h.Svc.Create(c.Request.Context(), uid, application.NewsInput{
		Title:     req.Title,
		Content:   req.Content,
		IsPrivate: req.IsPrivate,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, newsPageView(n, h.Svc.AuthorName(uid), uid), "news created", nil)
}

func (h *NewsHandler) Update(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req newsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	n, err := h.Svc.Update(c.Request.Context(), c.Param("id"), uid, application.NewsInput{
		Title:     req.Title,
		Content:   req.Content,
		IsPrivate: req.IsPrivate,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, newsPageView(n, h.Svc.AuthorName(uid), uid), "news updated", nil)
}

func (h *NewsHandler) Delete(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id"), uid); err != nil {
		respondErr(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "news deleted", nil)
}

func (h *NewsHandler) UploadPhoto(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	file, err := c.FormFile("photo")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"photo": "is required"})
		return
	}
	src, err := file.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "unreadable file", nil)
		return
	}
	defer func() { _ = src.Close() }()

	n, err := h.Svc.AttachPhoto(c.Request.Context(), c.Param("id"), uid, src, file.Filename, file.Header.Get("Content-Type"))
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, newsPageView(n, h.Svc.AuthorName(uid), uid), "photo uploaded", nil)
}
