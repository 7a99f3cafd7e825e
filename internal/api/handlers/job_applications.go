package handlers

import (
	"log/slog"
	"net/http"

	"gig-coordinator/internal/services"
	"gig-coordinator/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type JobApplicationHandler struct {
	base
	service services.JobApplicationService
}

func NewJobApplicationHandler(service services.JobApplicationService, validate *validator.Validate, logger *slog.Logger) *JobApplicationHandler {
	return &JobApplicationHandler{base: newBase(validate, logger, "applications-handler"), service: service}
}

// ApplyToJob godoc
// @Summary      Apply to a job
// @Description  Records the caller's application and adds them to the job's applicants. The body is optional.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id          path      string                 true   "Job ID"
// @Param        application body      dto.ApplyToJobRequest  false  "Optional profile reference"
// @Success      201 {object}  models.Application
// @Failure      400 {object}  map[string]string "Bad Request - Invalid input"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Employer cannot apply to their own job"
// @Failure      404 {object}  map[string]string "Job not found"
// @Failure      409 {object}  map[string]string "Already applied or job not open"
// @Router       /jobs/{id}/apply [post]
// @Security     BearerAuth
func (h *JobApplicationHandler) ApplyToJob(c *gin.Context) {
	applicantID, ok := h.caller(c)
	if !ok {
		return
	}
	var req dto.ApplyToJobRequest
	// The body is optional.
	if c.Request.ContentLength > 0 && !h.bindJSON(c, &req) {
		return
	}
	req.JobID = c.Param("id")
	req.ApplicantUID = applicantID

	app, err := h.service.ApplyToJob(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err, "apply to job")
		return
	}
	c.JSON(http.StatusCreated, app)
}
