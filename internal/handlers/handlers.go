package handlers

import (
	"net/http"

	"hallbook/internal/apperr"
	"hallbook/internal/logger"
	"hallbook/internal/models"
	"hallbook/internal/service"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	services *service.Services
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{services: services}
}

// writeError maps the error taxonomy onto HTTP responses. Conflicts
// carry the occupying booking plus a debug block; anything untyped is
// an internal error.
func writeError(c *gin.Context, err error) {
	appErr, ok := apperr.As(err)
	if !ok {
		logger.WithContext(c.Request.Context()).Error("Request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	switch appErr.Kind {
	case apperr.KindValidation:
		c.JSON(http.StatusBadRequest, gin.H{"message": appErr.Message})
	case apperr.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"message": appErr.Message})
	case apperr.KindForbidden:
		c.JSON(http.StatusForbidden, gin.H{"message": appErr.Message})
	case apperr.KindConflict:
		c.JSON(http.StatusConflict, conflictBody(appErr))
	default:
		logger.WithContext(c.Request.Context()).Error("Request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": appErr.Message})
	}
}

func conflictBody(appErr *apperr.Error) models.ConflictResponse {
	resp := models.ConflictResponse{Message: appErr.Message}
	if info := appErr.Conflict; info != nil {
		resp.ConflictingBooking = models.ConflictingBooking{
			BookingID:    info.BookingID,
			StartTime:    info.StartTime,
			EndTime:      info.EndTime,
			CustomerName: info.CustomerName,
			Status:       info.Status,
		}
		resp.Debug = models.ConflictDebug{
			RequestedTime: info.RequestedTime,
			BookedTime:    info.BookedTime,
			Date:          info.Date,
			Resource:      "one or more selected resources",
		}
	}
	return resp
}
