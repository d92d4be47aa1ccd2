package handler

import (
	"net/http"

	"hospital-backoffice/internal/repository"
	"hospital-backoffice/internal/service"
	"hospital-backoffice/pkg/pagination"
	"hospital-backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps a service error onto its HTTP status.
// Unexpected errors are attached to the context for the request logger and hidden from the client.
func respondError(c *gin.Context, err error) {
	switch service.KindOf(err) {
	case service.KindInvalid:
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
	case service.KindNotFound:
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
	case service.KindConflict:
		utils.ErrorResponse(c, http.StatusConflict, err.Error())
	case service.KindForbidden:
		utils.ErrorResponse(c, http.StatusForbidden, err.Error())
	case service.KindUnauthorized:
		utils.ErrorResponse(c, http.StatusUnauthorized, err.Error())
	default:
		_ = c.Error(err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}

func respondBindError(c *gin.Context, err error) {
	utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
}

// page reads limit/offset query parameters
func page(c *gin.Context) (pagination.Params, repository.Page) {
	params := pagination.FromContext(c)
	return params, repository.Page{Limit: params.Limit, Offset: params.Offset}
}
