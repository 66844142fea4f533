package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vetclinic/internal/domain"
)

// @Summary List services
// @Tags Services
// @Produce json
// @Success 200 {array} domain.ClinicService
// @Security ApiKeyAuth
// @Router /services [get]
func (h *Handler) getServices(c *gin.Context) {
	services, err := h.services.Catalog.List(c.Request.Context())
	if err != nil {
		h.serviceErrorResponse(c, err, "failed to list services")
		return
	}

	successResponse(c, http.StatusOK, services)
}

// @Summary Get service
// @Tags Services
// @Produce json
// @Param id path int true "Service ID"
// @Success 200 {object} domain.ClinicService
// @Failure 404 {object} errorResponseBody "Service not found"
// @Security ApiKeyAuth
// @Router /services/{id} [get]
func (h *Handler) getServiceByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	service, err := h.services.Catalog.GetByID(c.Request.Context(), id)
	if err != nil {
		h.serviceErrorResponse(c, err, "failed to get service")
		return
	}

	successResponse(c, http.StatusOK, service)
}

// @Summary Create service
// @Tags Services
// @Accept json
// @Produce json
// @Param input body domain.CreateClinicServiceDTO true "Service data"
// @Success 201 {object} domain.ClinicService
// @Failure 400 {object} errorResponseBody "Validation error"
// @Failure 403 {object} errorResponseBody "Admin role required"
// @Security ApiKeyAuth
// @Router /services [post]
func (h *Handler) createService(c *gin.Context) {
	var req domain.CreateClinicServiceDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid service payload", zap.Error(err))
		badRequestResponse(c, "invalid request body")
		return
	}

	service, err := h.services.Catalog.Create(c.Request.Context(), req)
	if err != nil {
		h.serviceErrorResponse(c, err, "failed to create service")
		return
	}

	createdResponse(c, service)
}

// @Summary Update service
// @Tags Services
// @Accept json
// @Produce json
// @Param id path int true "Service ID"
// @Param input body domain.UpdateClinicServiceDTO true "Fields to change"
// @Success 200 {object} domain.ClinicService
// @Failure 400 {object} errorResponseBody "Validation error"
// @Failure 404 {object} errorResponseBody "Service not found"
// @Security ApiKeyAuth
// @Router /services/{id} [put]
func (h *Handler) updateService(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req domain.UpdateClinicServiceDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid service payload", zap.Error(err))
		badRequestResponse(c, "invalid request body")
		return
	}

	service, err := h.services.Catalog.Update(c.Request.Context(), id, req)
	if err != nil {
		h.serviceErrorResponse(c, err, "failed to update service")
		return
	}

	successResponse(c, http.StatusOK, service)
}

// @Summary Delete service
// @Tags Services
// @Param id path int true "Service ID"
// @Success 204 "No Content"
// @Failure 404 {object} errorResponseBody "Service not found"
// @Security ApiKeyAuth
// @Router /services/{id} [delete]
func (h *Handler) deleteService(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.services.Catalog.Delete(c.Request.Context(), id); err != nil {
		h.serviceErrorResponse(c, err, "failed to delete service")
		return
	}

	noContentResponse(c)
}
