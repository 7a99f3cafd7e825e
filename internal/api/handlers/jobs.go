package handlers

import (
	"log/slog"
	"net/http"

	"gig-coordinator/internal/services"
	"gig-coordinator/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// JobHandler holds dependencies for job operations.
type JobHandler struct {
	base
	service services.JobService
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(service services.JobService, validate *validator.Validate, logger *slog.Logger) *JobHandler {
	return &JobHandler{base: newBase(validate, logger, "jobs-handler"), service: service}
}

// CreateJob godoc
// @Summary      Create a new job posting
// @Description  Posts a job owned by the caller. The job starts with hireStatus "open".
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job body      dto.CreateJobRequest true  "Job details"
// @Success      201 {object}  models.Job
// @Failure      400 {object}  map[string]string "Bad Request - Invalid input"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) CreateJob(c *gin.Context) {
	employerID, ok := h.caller(c)
	if !ok {
		return
	}
	var req dto.CreateJobRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.EmployerID = employerID

	job, err := h.service.CreateJob(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err, "create job")
		return
	}
	c.JSON(http.StatusCreated, job)
}

// GetJobByID godoc
// @Summary      Get a job by ID
// @Tags         jobs
// @Produce      json
// @Param        id  path      string  true  "Job ID"
// @Success      200 {object}  models.Job
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      404 {object}  map[string]string "Job not found"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /jobs/{id} [get]
// @Security     BearerAuth
func (h *JobHandler) GetJobByID(c *gin.Context) {
	if _, ok := h.caller(c); !ok {
		return
	}
	job, err := h.service.GetJobByID(c.Request.Context(), &dto.GetJobByIDRequest{ID: c.Param("id")})
	if err != nil {
		respondError(c, h.logger, err, "retrieve job")
		return
	}
	c.JSON(http.StatusOK, job)
}
