package controllers

import (
	"errors"

	"github.com/shanmdahanayaka/vehicle-rental-backend/pkg/resp"
	"github.com/shanmdahanayaka/vehicle-rental-backend/services"

	"github.com/gin-gonic/gin"
)

// fail maps service errors onto the JSON envelope.
func fail(c *gin.Context, err error) {
	switch {
	case services.IsValidation(err):
		resp.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotFound):
		resp.NotFound(c, "not found")
	case errors.Is(err, services.ErrIllegalTransition):
		resp.Conflict(c, err.Error())
	case errors.Is(err, services.ErrConflict):
		resp.Conflict(c, err.Error())
	case errors.Is(err, services.ErrForbidden):
		resp.Forbidden(c, "forbidden")
	default:
		resp.ServerError(c, err)
	}
}
