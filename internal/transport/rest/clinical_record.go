package rest

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vetclinic/internal/domain"
)

const reportURLExpiry = 15 * time.Minute

// @Summary Create clinical record
// @Description Stores the record of an attended appointment. The PDF summary is archived and mailed to the owner in the background.
// @Tags Clinical records
// @Accept json
// @Produce json
// @Param input body domain.CreateClinicalRecordDTO true "Clinical record"
// @Success 201 {object} domain.ClinicalRecord
// @Failure 400 {object} errorResponseBody "Validation error"
// @Failure 404 {object} errorResponseBody "Appointment not found"
// @Security ApiKeyAuth
// @Router /clinical-records [post]
func (h *Handler) createClinicalRecord(c *gin.Context) {
	var req domain.CreateClinicalRecordDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid clinical record payload", zap.Error(err))
		badRequestResponse(c, "invalid request body")
		return
	}

	record, err := h.services.ClinicalRecord.Create(c.Request.Context(), req)
	if err != nil {
		h.serviceErrorResponse(c, err, "failed to create clinical record")
		return
	}

	createdResponse(c, record)
}

// @Summary List clinical records
// @Tags Clinical records
// @Produce json
// @Param patient_id query string false "Patient ID"
// @Param vet_id query string false "Veterinarian ID"
// @Param appointment_id query int false "Appointment ID"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {array} domain.ClinicalRecord
// @Security ApiKeyAuth
// @Router /clinical-records [get]
func (h *Handler) getClinicalRecords(c *gin.Context) {
	ctx := c.Request.Context()

	if raw := c.Query("appointment_id"); raw != "" {
		appointmentID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			badRequestResponse(c, "invalid appointment_id")
			return
		}
		record, err := h.services.ClinicalRecord.GetByAppointment(ctx, appointmentID)
		if err != nil {
			h.serviceErrorResponse(c, err, "failed to get clinical record by appointment")
			return
		}
		successResponse(c, http.StatusOK, []domain.ClinicalRecord{*record})
		return
	}

	var (
		records []domain.ClinicalRecord
		err     error
	)

	switch patientID, vetID := c.Query("patient_id"), c.Query("vet_id"); {
	case patientID != "" && vetID != "":
		badRequestResponse(c, "use only one of patient_id or vet_id")
		return
	case patientID != "":
		records, err = h.services.ClinicalRecord.ListByPatient(ctx, patientID)
	case vetID != "":
		records, err = h.services.ClinicalRecord.ListByVeterinarian(ctx, vetID)
	default:
		limit, lerr := queryInt(c, "limit")
		offset, oerr := queryInt(c, "offset")
		if lerr != nil || oerr != nil {
			badRequestResponse(c, "invalid limit or offset")
			return
		}
		records, err = h.services.ClinicalRecord.List(ctx, limit, offset)
	}

	if err != nil {
		h.serviceErrorResponse(c, err, "failed to list clinical records")
		return
	}

	successResponse(c, http.StatusOK, records)
}

// @Summary Get clinical record
// @Tags Clinical records
// @Produce json
// @Param id path int true "Clinical record ID"
// @Success 200 {object} domain.ClinicalRecord
// @Failure 404 {object} errorResponseBody "Clinical record not found"
// @Security ApiKeyAuth
// @Router /clinical-records/{id} [get]
func (h *Handler) getClinicalRecordByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	record, err := h.services.ClinicalRecord.GetByID(c.Request.Context(), id)
	if err != nil {
		h.serviceErrorResponse(c, err, "failed to get clinical record")
		return
	}

	successResponse(c, http.StatusOK, record)
}

// @Summary Update clinical record
// @Tags Clinical records
// @Accept json
// @Produce json
// @Param id path int true "Clinical record ID"
// @Param input body domain.UpdateClinicalRecordDTO true "New values"
// @Success 200 {object} domain.ClinicalRecord
// @Failure 404 {object} errorResponseBody "Clinical record not found"
// @Security ApiKeyAuth
// @Router /clinical-records/{id} [put]
func (h *Handler) updateClinicalRecord(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req domain.UpdateClinicalRecordDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid clinical record payload", zap.Error(err))
		badRequestResponse(c, "invalid request body")
		return
	}

	record, err := h.services.ClinicalRecord.Update(c.Request.Context(), id, req)
	if err != nil {
		h.serviceErrorResponse(c, err, "failed to update clinical record")
		return
	}

	successResponse(c, http.StatusOK, record)
}

// @Summary Delete clinical record
// @Tags Clinical records
// @Param id path int true "Clinical record ID"
// @Success 204 "No Content"
// @Failure 404 {object} errorResponseBody "Clinical record not found"
// @Security ApiKeyAuth
// @Router /clinical-records/{id} [delete]
func (h *Handler) deleteClinicalRecord(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.services.ClinicalRecord.Delete(c.Request.Context(), id); err != nil {
		h.serviceErrorResponse(c, err, "failed to delete clinical record")
		return
	}

	noContentResponse(c)
}

// @Summary Download clinical record PDF
// @Tags Clinical records
// @Produce application/pdf
// @Param id path int true "Clinical record ID"
// @Success 200 {file} file
// @Failure 404 {object} errorResponseBody "Clinical record not found"
// @Security ApiKeyAuth
// @Router /clinical-records/{id}/report [get]
func (h *Handler) downloadClinicalRecordReport(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	pdf, err := h.services.ClinicalRecord.Report(c.Request.Context(), id)
	if err != nil {
		h.serviceErrorResponse(c, err, "failed to build clinical record report")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="historia-clinica-%d.pdf"`, id))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// @Summary Presigned link to the archived PDF
// @Tags Clinical records
// @Produce json
// @Param id path int true "Clinical record ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errorResponseBody "Report not archived"
// @Security ApiKeyAuth
// @Router /clinical-records/{id}/report-url [get]
func (h *Handler) getClinicalRecordReportURL(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	url, err := h.services.ClinicalRecord.ReportURL(c.Request.Context(), id, reportURLExpiry)
	if err != nil {
		h.serviceErrorResponse(c, err, "failed to presign clinical record report")
		return
	}

	successResponse(c, http.StatusOK, gin.H{
		"url":        url,
		"expires_at": time.Now().Add(reportURLExpiry).UTC(),
	})
}
