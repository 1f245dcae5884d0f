package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jobscout/agent/api/http/presenter"
	"github.com/jobscout/agent/pkg/analysis"
	"github.com/jobscout/agent/pkg/job"
)

// AnalyzeHandler serves resume-vs-job fit reports and job QA.
type AnalyzeHandler struct {
	uc analysis.UseCase
}

func NewAnalyzeHandler(uc analysis.UseCase) *AnalyzeHandler { return &AnalyzeHandler{uc: uc} }

// @Summary Score a resume against a job description
// @Tags    analyze
// @Accept  json
// @Produce json
// @Param   input body analysis.Request true "Job and resume text"
// @Success 200 {object} analysis.Result
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 502 {object} presenter.ErrorResponse
// @Router  /analyze [post]
func (h *AnalyzeHandler) Analyze(c *fiber.Ctx) error {
	var req analysis.Request
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON body")
	}
	res, err := h.uc.Analyze(c.Context(), req)
	if err != nil {
		if errors.Is(err, analysis.ErrMissingInput) {
			return presenter.Error(c, http.StatusBadRequest, err.Error())
		}
		return presenter.Error(c, http.StatusBadGateway, err.Error())
	}
	return presenter.JSON(c, http.StatusOK, res)
}

type qaRequest struct {
	JobID      string `json:"job_id"`
	Question   string `json:"question"`
	ResumeText string `json:"resume_text"`
}

// @Summary Answer a question about a stored job
// @Tags    analyze
// @Accept  json
// @Produce json
// @Param   input body qaRequest true "Job id and question, resume optional"
// @Success 200 {object} analysis.Answer
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 502 {object} presenter.ErrorResponse
// @Router  /qa [post]
func (h *AnalyzeHandler) QA(c *fiber.Ctx) error {
	var req qaRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON body")
	}
	id, err := uuid.Parse(req.JobID)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid job_id")
	}
	ans, err := h.uc.AnswerQuestion(c.Context(), id, req.Question, req.ResumeText)
	if err != nil {
		switch {
		case errors.Is(err, analysis.ErrMissingInput):
			return presenter.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, job.ErrNotFound):
			return presenter.Error(c, http.StatusNotFound, "job not found")
		default:
			return presenter.Error(c, http.StatusBadGateway, err.Error())
		}
	}
	return presenter.JSON(c, http.StatusOK, ans)
}
