package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"gig-coordinator/internal/models"
	"gig-coordinator/internal/services"
	"gig-coordinator/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// HireHandler exposes the hire coordinator.
type HireHandler struct {
	base
	service services.HireService
}

func NewHireHandler(service services.HireService, validate *validator.Validate, logger *slog.Logger) *HireHandler {
	return &HireHandler{base: newBase(validate, logger, "hires-handler"), service: service}
}

// ProposeHire godoc
// @Summary      Propose a hire
// @Description  Offers the job to a worker in one transaction. Only the job owner may propose, and only while the job is open.
// @Tags         hires
// @Accept       json
// @Produce      json
// @Param        id    path      string                  true  "Job ID"
// @Param        hire  body      dto.ProposeHireRequest  true  "Worker and optional application"
// @Success      201 {object}  models.Hire
// @Failure      400 {object}  map[string]string "Bad Request - Invalid input"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Caller does not own the job"
// @Failure      404 {object}  map[string]string "Job or application not found"
// @Failure      409 {object}  map[string]string "Job is not open"
// @Router       /jobs/{id}/hires [post]
// @Security     BearerAuth
func (h *HireHandler) ProposeHire(c *gin.Context) {
	employerID, ok := h.caller(c)
	if !ok {
		return
	}
	var req dto.ProposeHireRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.JobID = c.Param("id")
	req.EmployerID = employerID

	hire, err := h.service.ProposeHire(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err, "propose hire")
		return
	}
	c.JSON(http.StatusCreated, hire)
}

// AcceptHire godoc
// @Summary      Accept a hire offer
// @Description  Confirms a proposed hire. Only the offered worker may accept.
// @Tags         hires
// @Produce      json
// @Param        id  path      string  true  "Hire ID"
// @Success      200 {object}  models.Hire
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Caller is not the hire's worker"
// @Failure      404 {object}  map[string]string "Hire not found"
// @Failure      409 {object}  map[string]string "Hire is not in the required state"
// @Router       /hires/{id}/accept [patch]
// @Security     BearerAuth
func (h *HireHandler) AcceptHire(c *gin.Context) {
	h.act(c, "accept hire", h.service.AcceptHire)
}

// RejectHire godoc
// @Summary      Reject a hire offer
// @Description  Rejects a proposed hire and reopens the job if it still points at this hire. Only the offered worker may reject.
// @Tags         hires
// @Produce      json
// @Param        id  path      string  true  "Hire ID"
// @Success      200 {object}  models.Hire
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Caller is not the hire's worker"
// @Failure      404 {object}  map[string]string "Hire not found"
// @Failure      409 {object}  map[string]string "Hire is not in the required state"
// @Router       /hires/{id}/reject [patch]
// @Security     BearerAuth
func (h *HireHandler) RejectHire(c *gin.Context) {
	h.act(c, "reject hire", h.service.RejectHire)
}

// CompleteHire godoc
// @Summary      Complete a hire
// @Description  Marks a confirmed hire and its job completed. Only the employer may complete.
// @Tags         hires
// @Produce      json
// @Param        id  path      string  true  "Hire ID"
// @Success      200 {object}  models.Hire
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Caller is not the hire's employer"
// @Failure      404 {object}  map[string]string "Hire not found"
// @Failure      409 {object}  map[string]string "Hire is not in the required state"
// @Router       /hires/{id}/complete [patch]
// @Security     BearerAuth
func (h *HireHandler) CompleteHire(c *gin.Context) {
	h.act(c, "complete hire", h.service.CompleteHire)
}

func (h *HireHandler) act(c *gin.Context, operation string, fn func(context.Context, *dto.HireActionRequest) (*models.Hire, error)) {
	uid, ok := h.caller(c)
	if !ok {
		return
	}
	hire, err := fn(c.Request.Context(), &dto.HireActionRequest{HireID: c.Param("id"), UserID: uid})
	if err != nil {
		respondError(c, h.logger, err, operation)
		return
	}
	c.JSON(http.StatusOK, hire)
}

// GetHire godoc
// @Summary      Get a hire by ID
// @Description  Visible to the hire's employer and worker only.
// @Tags         hires
// @Produce      json
// @Param        id  path      string  true  "Hire ID"
// @Success      200 {object}  models.Hire
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Not a party to the hire"
// @Failure      404 {object}  map[string]string "Hire not found"
// @Router       /hires/{id} [get]
// @Security     BearerAuth
func (h *HireHandler) GetHire(c *gin.Context) {
	uid, ok := h.caller(c)
	if !ok {
		return
	}
	hire, err := h.service.GetHire(c.Request.Context(), &dto.GetHireRequest{HireID: c.Param("id"), UserID: uid})
	if err != nil {
		respondError(c, h.logger, err, "retrieve hire")
		return
	}
	c.JSON(http.StatusOK, hire)
}

// ListProposals godoc
// @Summary      List pending hire offers
// @Description  Returns hires proposed to the caller, newest first.
// @Tags         hires
// @Produce      json
// @Success      200 {array}   models.Hire
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /hires/proposals [get]
// @Security     BearerAuth
func (h *HireHandler) ListProposals(c *gin.Context) {
	uid, ok := h.caller(c)
	if !ok {
		return
	}
	hires, err := h.service.ListProposalsForWorker(c.Request.Context(), uid)
	if err != nil {
		respondError(c, h.logger, err, "list proposals")
		return
	}
	c.JSON(http.StatusOK, hires)
}
