package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/jobscout/agent/api/http/presenter"
	"github.com/jobscout/agent/pkg/letter"
)

// LetterHandler drafts cover letters.
type LetterHandler struct {
	uc letter.UseCase
}

func NewLetterHandler(uc letter.UseCase) *LetterHandler { return &LetterHandler{uc: uc} }

// @Summary Draft a cover letter
// @Tags    cover-letter
// @Accept  json
// @Produce json
// @Param   input body letter.Request true "Role, resume and job description; variant short/standard/long"
// @Success 200 {object} letter.Letter
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 502 {object} presenter.ErrorResponse
// @Router  /cover-letter [post]
func (h *LetterHandler) Draft(c *fiber.Ctx) error {
	var req letter.Request
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON body")
	}
	out, err := h.uc.Draft(c.Context(), req)
	if err != nil {
		if errors.Is(err, letter.ErrMissingInput) {
			return presenter.Error(c, http.StatusBadRequest, err.Error())
		}
		return presenter.Error(c, http.StatusBadGateway, err.Error())
	}
	return presenter.JSON(c, http.StatusOK, out)
}
