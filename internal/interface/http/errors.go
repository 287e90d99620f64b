package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/astrocat-app/astrocat/internal/application"
	repo "github.com/astrocat-app/astrocat/internal/domain/repository"
	"github.com/astrocat-app/astrocat/pkg/response"
)

// respondErr maps the domain error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is a 500 with a neutral message.
func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		response.Error[any](c, http.StatusNotFound, "not found", nil)
	case errors.Is(err, repo.ErrConflict):
		response.Error[any](c, http.StatusConflict, "already exists", nil)
	case errors.Is(err, application.ErrForbidden):
		response.Error[any](c, http.StatusForbidden, "forbidden", nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, "incorrect login or password", nil)
	default:
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}
