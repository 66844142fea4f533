package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vetclinic/internal/domain"
)

// @Summary Create appointment
// @Description Books an appointment after checking the service, both agendas and the veterinarian's availability
// @Tags Appointments
// @Accept json
// @Produce json
// @Param input body domain.CreateAppointmentDTO true "Appointment data"
// @Success 201 {object} domain.Appointment
// @Failure 400 {object} errorResponseBody "Validation error"
// @Failure 401 {object} errorResponseBody "Not authenticated"
// @Failure 404 {object} errorResponseBody "Service not found"
// @Failure 409 {object} errorResponseBody "Slot occupied or veterinarian unavailable"
// @Failure 500 {object} errorResponseBody "Internal server error"
// @Security ApiKeyAuth
// @Router /appointments [post]
func (h *Handler) createAppointment(c *gin.Context) {
	var req domain.CreateAppointmentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid appointment payload", zap.Error(err))
		badRequestResponse(c, "invalid request body")
		return
	}

	appointment, err := h.services.Appointment.Create(c.Request.Context(), req)
	if err != nil {
		h.serviceErrorResponse(c, err, "failed to create appointment")
		return
	}

	createdResponse(c, appointment)
}

// @Summary Get appointment
// @Tags Appointments
// @Produce json
// @Param id path int true "Appointment ID"
// @Success 200 {object} domain.Appointment
// @Failure 400 {object} errorResponseBody "Invalid id"
// @Failure 404 {object} errorResponseBody "Appointment not found"
// @Security ApiKeyAuth
// @Router /appointments/{id} [get]
func (h *Handler) getAppointmentByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	appointment, err := h.services.Appointment.GetByID(c.Request.Context(), id)
	if err != nil {
		h.serviceErrorResponse(c, err, "failed to get appointment")
		return
	}

	successResponse(c, http.StatusOK, appointment)
}

// @Summary Update appointment
// @Description Overwrites date, time, status, urgency and patient. Moving into a new slot is checked again.
// @Tags Appointments
// @Accept json
// @Produce json
// @Param id path int true "Appointment ID"
// @Param input body domain.UpdateAppointmentDTO true "New values"
// @Success 200 {object} domain.Appointment
// @Failure 400 {object} errorResponseBody "Validation error"
// @Failure 404 {object} errorResponseBody "Appointment not found"
// @Failure 409 {object} errorResponseBody "Slot occupied or veterinarian unavailable"
// @Security ApiKeyAuth
// @Router /appointments/{id} [put]
func (h *Handler) updateAppointment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req domain.UpdateAppointmentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid appointment payload", zap.Error(err))
		badRequestResponse(c, "invalid request body")
		return
	}

	appointment, err := h.services.Appointment.Update(c.Request.Context(), id, req)
	if err != nil {
		h.serviceErrorResponse(c, err, "failed to update appointment")
		return
	}

	successResponse(c, http.StatusOK, appointment)
}

// @Summary Change appointment status
// @Description Cancelling frees the slot. Rescheduled and cancelled appointments notify the owner.
// @Tags Appointments
// @Produce json
// @Param id path int true "Appointment ID"
// @Param status query string true "New status" Enums(SCHEDULED, ATTENDED, IN_PROGRESS, RESCHEDULED, CANCELLED, COMPLETED, NO_SHOW)
// @Success 200 {object} domain.Appointment
// @Failure 400 {object} errorResponseBody "Unknown status"
// @Failure 404 {object} errorResponseBody "Appointment not found"
// @Failure 409 {object} errorResponseBody "Slot taken while the appointment was inactive"
// @Security ApiKeyAuth
// @Router /appointments/{id}/status [patch]
func (h *Handler) changeAppointmentStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	status := c.Query("status")
	if status == "" {
		badRequestResponse(c, "status query parameter is required")
		return
	}

	appointment, err := h.services.Appointment.ChangeStatus(c.Request.Context(), id, domain.AppointmentStatus(status))
	if err != nil {
		h.serviceErrorResponse(c, err, "failed to change appointment status")
		return
	}

	successResponse(c, http.StatusOK, appointment)
}

// @Summary List appointments
// @Description Lists every appointment, or filters by exactly one of status, date, time, date+time, vet_id or patient_id
// @Tags Appointments
// @Produce json
// @Param status query string false "Status"
// @Param date query string false "Date (YYYY-MM-DD)"
// @Param time query string false "Time (HH:MM)"
// @Param vet_id query string false "Veterinarian ID"
// @Param patient_id query string false "Patient ID"
// @Param limit query int false "Page size when unfiltered"
// @Param offset query int false "Offset when unfiltered"
// @Success 200 {array} domain.Appointment
// @Failure 400 {object} errorResponseBody "Invalid filter combination"
// @Security ApiKeyAuth
// @Router /appointments [get]
func (h *Handler) getAppointments(c *gin.Context) {
	ctx := c.Request.Context()
	status, date, clock := c.Query("status"), c.Query("date"), c.Query("time")
	vetID, patientID := c.Query("vet_id"), c.Query("patient_id")

	given := 0
	for _, v := range []string{status, vetID, patientID} {
		if v != "" {
			given++
		}
	}
	if date != "" || clock != "" {
		given++
	}
	if given > 1 {
		badRequestResponse(c, "use only one filter: status, date, time, date+time, vet_id or patient_id")
		return
	}

	var (
		appointments []domain.Appointment
		err          error
	)

	switch {
	case status != "":
		appointments, err = h.services.Appointment.ListByStatus(ctx, domain.AppointmentStatus(status))
	case vetID != "":
		appointments, err = h.services.Appointment.ListByVeterinarian(ctx, vetID)
	case patientID != "":
		appointments, err = h.services.Appointment.ListByPatient(ctx, patientID)
	case date != "":
		parsed, perr := domain.ParseDate(date)
		if perr != nil {
			badRequestResponse(c, perr.Error())
			return
		}
		if clock != "" {
			appointments, err = h.services.Appointment.ListByDateTime(ctx, parsed, clock)
		} else {
			appointments, err = h.services.Appointment.ListByDate(ctx, parsed)
		}
	case clock != "":
		appointments, err = h.services.Appointment.ListByTime(ctx, clock)
	default:
		filter := domain.AppointmentFilter{}
		if filter.Limit, err = queryInt(c, "limit"); err != nil {
			badRequestResponse(c, "invalid limit")
			return
		}
		if filter.Offset, err = queryInt(c, "offset"); err != nil {
			badRequestResponse(c, "invalid offset")
			return
		}
		appointments, err = h.services.Appointment.List(ctx, filter)
	}

	if err != nil {
		h.serviceErrorResponse(c, err, "failed to list appointments")
		return
	}

	successResponse(c, http.StatusOK, appointments)
}

func queryInt(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, strconv.ErrSyntax
	}
	return v, nil
}
