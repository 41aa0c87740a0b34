package handler

import (
	"errors"
	"net/http"

	"backend/internal/service"
	"backend/internal/timefilter"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// abortWithServiceError maps service sentinels onto the HTTP surface.
// Unexpected failures are logged and returned as a generic internal error.
func abortWithServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidForm),
		errors.Is(err, service.ErrInvalidState),
		errors.Is(err, timefilter.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))

	case errors.Is(err, service.ErrNoRights), errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, response.Error(http.StatusForbidden, err.Error()))

	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))

	default:
		logrus.WithError(err).WithField("path", c.FullPath()).Error("unhandled service error")
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "internal error"))
	}
}
