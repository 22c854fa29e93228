package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	apierrors "github.com/yukikurage/team-work-tracker/internal/errors"
	"github.com/yukikurage/team-work-tracker/internal/services"
	"github.com/yukikurage/team-work-tracker/internal/teamserver"
)

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrAccountLocked):
		apierrors.InvalidCredentials(c, err.Error())
	default:
		respondServiceError(c, err)
	}
}

func respondServerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, teamserver.ErrUnauthorized):
		apierrors.BadRequest(c, teamserver.ErrUnauthorized.Error())
	case errors.Is(err, services.ErrAuthenticationFailed):
		apierrors.BadGateway(c, err.Error())
	default:
		respondServiceError(c, err)
	}
}

// respondServiceError maps the error kinds of the services package to HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrConflict):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrFailure):
		apierrors.InternalError(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
