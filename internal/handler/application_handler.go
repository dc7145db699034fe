package handler

import (
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/eskalate/jobboard/internal/auth"
	apperrors "github.com/eskalate/jobboard/internal/errors"
	"github.com/eskalate/jobboard/internal/model"
	"github.com/eskalate/jobboard/internal/repository"
	"github.com/eskalate/jobboard/internal/service"
	"github.com/eskalate/jobboard/internal/storage"
)

// ApplicationHandler handles application endpoints.
type ApplicationHandler struct {
	applicationService service.ApplicationService
}

// NewApplicationHandler creates a new application handler.
func NewApplicationHandler(applicationService service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applicationService: applicationService}
}

// UpdateStatusRequest carries the new review state for an application.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Apply godoc
// @Summary Apply to a job with a resume upload
// @Tags applications
// @Accept mpfd
// @Produce json
// @Param id path string true "Job ID"
// @Param resume formData file true "Resume (pdf or docx)"
// @Param coverLetter formData string false "Cover letter (max 200 chars)"
// @Success 201 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 404 {object} Envelope
// @Security BearerAuth
// @Router /applications/{id}/apply [post]
func (h *ApplicationHandler) Apply(c echo.Context) error {
	user := auth.CurrentUser(c)
	if user == nil {
		return apperrors.ErrNotAuthorized
	}
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.ErrJobNotFound
	}

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		return apperrors.ErrResumeRequired
	}
	switch strings.ToLower(filepath.Ext(fileHeader.Filename)) {
	case ".pdf", ".docx":
	default:
		return apperrors.ErrResumeType
	}

	src, err := fileHeader.Open()
	if err != nil {
		return apperrors.ErrResumeRequired
	}
	defer src.Close()

	application, err := h.applicationService.Apply(
		c.Request().Context(),
		user.ID,
		jobID,
		&storage.File{Name: fileHeader.Filename, Reader: src},
		c.FormValue("coverLetter"),
	)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Application submitted successfully", application)
}

// ListMine godoc
// @Summary List the applicant's own applications
// @Tags applications
// @Produce json
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Param companyName query string false "Company name filter (partial)"
// @Param jobStatus query string false "Parent job status filter"
// @Param applicationStatus query string false "Application status filter"
// @Param sortBy query string false "Sort field"
// @Param sortOrder query string false "ASC or DESC"
// @Success 200 {object} PagedEnvelope
// @Security BearerAuth
// @Router /applications/my [get]
func (h *ApplicationHandler) ListMine(c echo.Context) error {
	user := auth.CurrentUser(c)
	if user == nil {
		return apperrors.ErrNotAuthorized
	}

	page := queryInt(c, "page", 1)
	size := queryInt(c, "pageSize", 10)
	filter := repository.ApplicationFilter{
		Status:      model.ApplicationStatus(c.QueryParam("applicationStatus")),
		JobStatus:   model.JobStatus(c.QueryParam("jobStatus")),
		CompanyName: c.QueryParam("companyName"),
		Page:        page,
		PageSize:    size,
		SortBy:      c.QueryParam("sortBy"),
		SortOrder:   c.QueryParam("sortOrder"),
	}

	applications, total, err := h.applicationService.ListMine(c.Request().Context(), user.ID, filter)
	if err != nil {
		return err
	}
	return respondPage(c, "Applications fetched", applications, page, size, total)
}

// ListForJob godoc
// @Summary List applications for an owned job
// @Tags applications
// @Produce json
// @Param jobId path string true "Job ID"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Param status query string false "Application status filter"
// @Param sortBy query string false "Sort field"
// @Param sortOrder query string false "ASC or DESC"
// @Success 200 {object} PagedEnvelope
// @Failure 403 {object} Envelope
// @Failure 404 {object} Envelope
// @Security BearerAuth
// @Router /applications/job/{jobId} [get]
func (h *ApplicationHandler) ListForJob(c echo.Context) error {
	user := auth.CurrentUser(c)
	if user == nil {
		return apperrors.ErrNotAuthorized
	}
	jobID, err := uuid.Parse(c.Param("jobId"))
	if err != nil {
		return apperrors.ErrJobNotFound
	}

	page := queryInt(c, "page", 1)
	size := queryInt(c, "pageSize", 10)
	filter := repository.ApplicationFilter{
		Status:    model.ApplicationStatus(c.QueryParam("status")),
		Page:      page,
		PageSize:  size,
		SortBy:    c.QueryParam("sortBy"),
		SortOrder: c.QueryParam("sortOrder"),
	}

	applications, total, err := h.applicationService.ListForJob(c.Request().Context(), user.ID, jobID, filter)
	if err != nil {
		return err
	}
	return respondPage(c, "Applications fetched", applications, page, size, total)
}

// UpdateStatus godoc
// @Summary Set the review status of an application
// @Tags applications
// @Accept json
// @Produce json
// @Param id path string true "Application ID"
// @Param request body UpdateStatusRequest true "New status"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 403 {object} Envelope
// @Failure 404 {object} Envelope
// @Security BearerAuth
// @Router /applications/{id}/status [put]
func (h *ApplicationHandler) UpdateStatus(c echo.Context) error {
	user := auth.CurrentUser(c)
	if user == nil {
		return apperrors.ErrNotAuthorized
	}
	applicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.ErrApplicationNotFound
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	application, err := h.applicationService.UpdateStatus(c.Request().Context(), applicationID, user.ID, model.ApplicationStatus(req.Status))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Application status updated", application)
}

func queryInt(c echo.Context, name string, def int) int {
	if v := c.QueryParam(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
