package handlers

import (
	"errors"
	"net/http"

	"cargomatch/services"
	"cargomatch/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondServiceError maps the service error taxonomy onto HTTP statuses:
// NotFoundError -> 404, InvalidStateError -> 409 (with the actual current
// state so the UI can explain why), ValidationError -> 400, anything else
// -> 500.
func respondServiceError(c *gin.Context, logger *zap.Logger, err error) {
	var notFound *services.NotFoundError
	if errors.As(err, &notFound) {
		utils.JSONError(c, http.StatusNotFound, "not found", err.Error())
		return
	}

	var invalidState *services.InvalidStateError
	if errors.As(err, &invalidState) {
		c.JSON(http.StatusConflict, gin.H{
			"message":      "invalid state",
			"details":      err.Error(),
			"currentState": invalidState.CurrentState,
		})
		return
	}

	var validation *services.ValidationError
	if errors.As(err, &validation) {
		utils.JSONError(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	logger.Error("unexpected service error", zap.Error(err))
	utils.JSONError(c, http.StatusInternalServerError, "internal error", "An unexpected error occurred.")
}
