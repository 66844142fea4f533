package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"vetclinic/config"
	"vetclinic/internal/service"
	"vetclinic/pkg/auth"
	"vetclinic/pkg/metrics"
)

type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

type Handler struct {
	services *service.Services
	tokens   TokenParser
	metrics  *metrics.Collector
	limiter  *rate.Limiter
	logger   *zap.Logger
	config   *config.Config
}

func NewHandler(services *service.Services, tokens TokenParser, collector *metrics.Collector, logger *zap.Logger, cfg *config.Config) *Handler {
	h := &Handler{
		services: services,
		tokens:   tokens,
		metrics:  collector,
		logger:   logger,
		config:   cfg,
	}
	if cfg != nil && cfg.RateLimit.RequestsPerSecond > 0 {
		h.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
	}
	return h
}

func (h *Handler) InitRoutes(router *gin.Engine) {
	router.Use(h.requestIDMiddleware())

	router.Use(h.loggerMiddleware())

	router.Use(h.metricsMiddleware())

	router.Use(h.errorMiddleware())

	router.Use(h.corsMiddleware())

	router.GET("/health", h.health)
	if h.metrics != nil {
		router.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	}
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api/v1", h.authMiddleware())
	{
		appointments := api.Group("/appointments", h.roleMiddleware(auth.RolePatient, auth.RoleVeterinarian, auth.RoleAdmin))
		{
			appointments.GET("", h.getAppointments)
			appointments.GET("/:id", h.getAppointmentByID)

			writes := appointments.Group("", h.rateLimitMiddleware())
			{
				writes.POST("", h.createAppointment)
				writes.PUT("/:id", h.updateAppointment)
				writes.PATCH("/:id/status", h.changeAppointmentStatus)
			}
		}

		services := api.Group("/services")
		{
			services.GET("", h.getServices)
			services.GET("/:id", h.getServiceByID)

			admin := services.Group("", h.roleMiddleware(auth.RoleAdmin), h.rateLimitMiddleware())
			{
				admin.POST("", h.createService)
				admin.PUT("/:id", h.updateService)
				admin.DELETE("/:id", h.deleteService)
			}
		}

		records := api.Group("/clinical-records", h.roleMiddleware(auth.RoleVeterinarian, auth.RoleAdmin))
		{
			records.GET("", h.getClinicalRecords)
			records.GET("/:id", h.getClinicalRecordByID)
			records.GET("/:id/report", h.downloadClinicalRecordReport)
			records.GET("/:id/report-url", h.getClinicalRecordReportURL)

			writes := records.Group("", h.rateLimitMiddleware())
			{
				writes.POST("", h.createClinicalRecord)
				writes.PUT("/:id", h.updateClinicalRecord)
				writes.DELETE("/:id", h.deleteClinicalRecord)
			}
		}
	}
}

// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} messageResponseType
// @Router /health [get]
func (h *Handler) health(c *gin.Context) {
	messageResponse(c, http.StatusOK, "ok")
}
