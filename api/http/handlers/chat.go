package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/jobscout/agent/api/http/presenter"
	"github.com/jobscout/agent/pkg/chat"
)

// ChatHandler serves the career copilot.
type ChatHandler struct {
	uc chat.UseCase
}

func NewChatHandler(uc chat.UseCase) *ChatHandler { return &ChatHandler{uc: uc} }

// @Summary Ask the copilot about a job and resume pair
// @Tags    chat
// @Accept  json
// @Produce json
// @Param   input body chat.Question true "Job description, resume and question"
// @Success 200 {object} chat.Reply
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 502 {object} presenter.ErrorResponse
// @Router  /chat/ask [post]
func (h *ChatHandler) Ask(c *fiber.Ctx) error {
	var q chat.Question
	if err := c.BodyParser(&q); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON body")
	}
	out, err := h.uc.Ask(c.Context(), q)
	if err != nil {
		if errors.Is(err, chat.ErrMissingInput) {
			return presenter.Error(c, http.StatusBadRequest, err.Error())
		}
		return presenter.Error(c, http.StatusBadGateway, err.Error())
	}
	return presenter.JSON(c, http.StatusOK, out)
}
