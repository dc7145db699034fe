package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/eskalate/jobboard/internal/auth"
	apperrors "github.com/eskalate/jobboard/internal/errors"
	"github.com/eskalate/jobboard/internal/model"
	"github.com/eskalate/jobboard/internal/service"
)

// JobHandler handles job posting endpoints.
type JobHandler struct {
	jobService service.JobService
}

// NewJobHandler creates a new job handler.
func NewJobHandler(jobService service.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// CreateJobRequest represents a job creation request.
type CreateJobRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Status      string `json:"status"`
}

// UpdateJobRequest represents a partial job update; omitted fields are left
// alone.
type UpdateJobRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	Status      *string `json:"status"`
}

// Create godoc
// @Summary Create a job posting
// @Tags jobs
// @Accept json
// @Produce json
// @Param request body CreateJobRequest true "Job data"
// @Success 201 {object} Envelope
// @Failure 400 {object} Envelope
// @Security BearerAuth
// @Router /jobs [post]
func (h *JobHandler) Create(c echo.Context) error {
	user := auth.CurrentUser(c)
	if user == nil {
		return apperrors.ErrNotAuthorized
	}

	var req CreateJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	job, err := h.jobService.Create(c.Request().Context(), user.ID, req.Title, req.Description, req.Location, model.JobStatus(req.Status))
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Job created", job)
}

// List godoc
// @Summary Browse all job postings
// @Tags jobs
// @Produce json
// @Success 200 {object} Envelope
// @Security BearerAuth
// @Router /jobs [get]
func (h *JobHandler) List(c echo.Context) error {
	jobs, err := h.jobService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Jobs fetched", jobs)
}

// ListMine godoc
// @Summary List the company's own job postings
// @Tags jobs
// @Produce json
// @Success 200 {object} Envelope
// @Security BearerAuth
// @Router /jobs/my [get]
func (h *JobHandler) ListMine(c echo.Context) error {
	user := auth.CurrentUser(c)
	if user == nil {
		return apperrors.ErrNotAuthorized
	}
	jobs, err := h.jobService.ListMine(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "My jobs fetched", jobs)
}

// Get godoc
// @Summary Get a job posting by ID
// @Tags jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Security BearerAuth
// @Router /jobs/{id} [get]
func (h *JobHandler) Get(c echo.Context) error {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.ErrJobNotFound
	}
	job, err := h.jobService.Get(c.Request().Context(), jobID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Job fetched", job)
}

// Update godoc
// @Summary Update an owned job posting
// @Tags jobs
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Param request body UpdateJobRequest true "Fields to update"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 403 {object} Envelope
// @Failure 404 {object} Envelope
// @Security BearerAuth
// @Router /jobs/{id} [put]
func (h *JobHandler) Update(c echo.Context) error {
	user := auth.CurrentUser(c)
	if user == nil {
		return apperrors.ErrNotAuthorized
	}
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.ErrJobNotFound
	}

	var req UpdateJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	patch := service.JobPatch{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
	}
	if req.Status != nil {
		status := model.JobStatus(*req.Status)
		patch.Status = &status
	}

	job, err := h.jobService.Update(c.Request().Context(), jobID, user.ID, patch)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Job updated", job)
}

// Delete godoc
// @Summary Delete an owned job posting
// @Tags jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} Envelope
// @Failure 403 {object} Envelope
// @Failure 404 {object} Envelope
// @Security BearerAuth
// @Router /jobs/{id} [delete]
func (h *JobHandler) Delete(c echo.Context) error {
	user := auth.CurrentUser(c)
	if user == nil {
		return apperrors.ErrNotAuthorized
	}
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.ErrJobNotFound
	}
	if err := h.jobService.Delete(c.Request().Context(), jobID, user.ID); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Successfully deleted", nil)
}
