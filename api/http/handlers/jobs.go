package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jobscout/agent/api/http/presenter"
	"github.com/jobscout/agent/pkg/job"
)

// JobsHandler exposes ingest, search and retention over stored postings.
type JobsHandler struct {
	uc job.UseCase
}

func NewJobsHandler(uc job.UseCase) *JobsHandler { return &JobsHandler{uc: uc} }

// @Summary Ingest one job posting
// @Description Normalizes, fingerprints and stores a posting; duplicates return the existing id.
// @Tags        jobs
// @Accept      json
// @Produce     json
// @Param       input body job.Raw true "Posting payload"
// @Success     200 {object} map[string]string
// @Failure     400 {object} presenter.ErrorResponse
// @Failure     422 {object} presenter.ErrorResponse
// @Router      /jobs/ingest [post]
func (h *JobsHandler) Ingest(c *fiber.Ctx) error {
	var raw job.Raw
	if err := c.BodyParser(&raw); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON body")
	}
	res, err := h.uc.Ingest(c.Context(), raw)
	if err != nil {
		if errors.Is(err, job.ErrInvalid) {
			return presenter.Error(c, http.StatusUnprocessableEntity, err.Error())
		}
		return presenter.Error(c, http.StatusInternalServerError, err.Error())
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"id":     res.ID.String(),
		"status": string(res.Status),
	})
}

// parseDateParam accepts RFC 3339 or a bare YYYY-MM-DD date.
func parseDateParam(v string) (*time.Time, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, true
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, v); err == nil {
			t = t.UTC()
			return &t, true
		}
	}
	return nil, false
}

// searchFilter is the JSON body accepted by POST /jobs/search.
type searchFilter struct {
	Q                 string `json:"q"`
	Remote            string `json:"remote"`
	Level             string `json:"level"`
	Location          string `json:"location"`
	PostedWithinHours int    `json:"posted_within_hours"`
	Limit             int    `json:"limit"`
	Offset            int    `json:"offset"`
}

// Search accepts the filter as a JSON body (POST) or as query params
// (GET). Query params always win over body fields so curl and the FE can
// override date range and pagination without re-sending the filter.
//
// @Summary Search stored postings
// @Tags    jobs
// @Accept  json
// @Produce json
// @Param   input body searchFilter false "Filter body (POST)"
// @Param   q                   query string false "Substring match on title, company and description"
// @Param   remote              query string false "Remote filter"
// @Param   level               query string false "Level filter"
// @Param   location            query string false "Location substring"
// @Param   posted_within_hours query int    false "Freshness window, ignored when a date range is set"
// @Param   date_from           query string false "RFC 3339 or YYYY-MM-DD"
// @Param   date_to             query string false "RFC 3339 or YYYY-MM-DD (date-only covers the whole day)"
// @Param   q_limit             query int    false "Page size override, max 500, default 21"
// @Param   q_offset            query int    false "Page offset override"
// @Success 200 {array}  job.Job
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /jobs/search [post]
func (h *JobsHandler) Search(c *fiber.Ctx) error {
	var f searchFilter
	if c.Method() == fiber.MethodPost && len(c.Body()) > 0 {
		if err := c.BodyParser(&f); err != nil {
			return presenter.Error(c, http.StatusBadRequest, "invalid JSON body")
		}
	}

	// query-string overrides
	if v := strings.TrimSpace(c.Query("q")); v != "" {
		f.Q = v
	}
	if v := strings.TrimSpace(c.Query("remote")); v != "" {
		f.Remote = v
	}
	if v := strings.TrimSpace(c.Query("level")); v != "" {
		f.Level = v
	}
	if v := strings.TrimSpace(c.Query("location")); v != "" {
		f.Location = v
	}
	if n := queryInt(c, "posted_within_hours", 0); n > 0 {
		f.PostedWithinHours = n
	}
	if n := queryInt(c, "q_limit", queryInt(c, "limit", 0)); n > 0 {
		f.Limit = n
	}
	if n := queryInt(c, "q_offset", queryInt(c, "offset", -1)); n >= 0 {
		f.Offset = n
	}

	from, ok := parseDateParam(c.Query("date_from"))
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "date_from must be RFC 3339 or YYYY-MM-DD")
	}
	to, ok := parseDateParam(c.Query("date_to"))
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "date_to must be RFC 3339 or YYYY-MM-DD")
	}

	jobs, err := h.uc.Search(c.Context(), job.Query{
		Q:                 strings.TrimSpace(f.Q),
		Remote:            strings.TrimSpace(f.Remote),
		Level:             strings.TrimSpace(f.Level),
		Location:          strings.TrimSpace(f.Location),
		PostedWithinHours: f.PostedWithinHours,
		From:              from,
		To:                to,
		Limit:             f.Limit,
		Offset:            f.Offset,
	})
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, err.Error())
	}
	if jobs == nil {
		jobs = []job.Job{}
	}
	return presenter.JSON(c, http.StatusOK, jobs)
}

// @Summary Most recently posted jobs
// @Tags    jobs
// @Produce json
// @Param   limit query int false "Max items, default 21, cap 200"
// @Success 200 {array} job.Job
// @Router  /jobs/recent [get]
func (h *JobsHandler) Recent(c *fiber.Ctx) error {
	jobs, err := h.uc.Recent(c.Context(), queryInt(c, "limit", 0))
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, err.Error())
	}
	if jobs == nil {
		jobs = []job.Job{}
	}
	return presenter.JSON(c, http.StatusOK, jobs)
}

// @Summary List all stored jobs
// @Tags    jobs
// @Produce json
// @Param   limit  query int false "Page size, default 100"
// @Param   offset query int false "Page offset"
// @Success 200 {array} job.Job
// @Router  /jobs/all [get]
func (h *JobsHandler) All(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, 100, 500)
	jobs, err := h.uc.List(c.Context(), limit, offset)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, err.Error())
	}
	if jobs == nil {
		jobs = []job.Job{}
	}
	return presenter.JSON(c, http.StatusOK, jobs)
}

// @Summary Get one job by id
// @Tags    jobs
// @Produce json
// @Param   id path string true "Job id (UUID)"
// @Success 200 {object} job.Job
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /jobs/{id} [get]
func (h *JobsHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid job id")
	}
	j, err := h.uc.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "job not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, err.Error())
	}
	return presenter.JSON(c, http.StatusOK, j)
}

// @Summary Delete postings older than the TTL
// @Tags    jobs
// @Produce json
// @Param   ttl_hours query int false "Retention in hours, default 48"
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Router  /jobs/cleanup [delete]
func (h *JobsHandler) Cleanup(c *fiber.Ctx) error {
	res, err := h.uc.Cleanup(c.Context(), queryInt(c, "ttl_hours", 0))
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, err.Error())
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"deleted": res.Deleted,
		"cutoff":  res.Cutoff.Format(time.RFC3339),
	})
}
