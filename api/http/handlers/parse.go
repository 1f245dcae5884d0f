package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/jobscout/agent/api/http/presenter"
	"github.com/jobscout/agent/pkg/resume"
)

// maxUploadBytes caps resume uploads at 15 MB.
const maxUploadBytes = 15 << 20

// ParseHandler turns uploaded resume files into clean text.
type ParseHandler struct {
	svc resume.Service
}

func NewParseHandler(svc resume.Service) *ParseHandler { return &ParseHandler{svc: svc} }

// @Summary Parse a resume file into plain text
// @Description Accepts PDF, DOCX or TXT, returns reconstructed text and its length.
// @Tags        parse
// @Accept      multipart/form-data
// @Produce     json
// @Param       file formData file true "Resume file"
// @Success     200 {object} resume.ParseResult
// @Failure     400 {object} presenter.ErrorResponse
// @Failure     413 {object} presenter.ErrorResponse
// @Failure     415 {object} presenter.ErrorResponse
// @Failure     422 {object} presenter.ErrorResponse
// @Router      /parse/resume [post]
func (h *ParseHandler) Parse(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "multipart field 'file' is required")
	}
	if fh.Size > maxUploadBytes {
		return presenter.Error(c, http.StatusRequestEntityTooLarge, "file exceeds 15 MB")
	}
	f, err := fh.Open()
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "cannot open uploaded file")
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "cannot read uploaded file")
	}
	if len(data) > maxUploadBytes {
		return presenter.Error(c, http.StatusRequestEntityTooLarge, "file exceeds 15 MB")
	}

	res, err := h.svc.Parse(fh.Filename, data)
	switch {
	case errors.Is(err, resume.ErrUnsupportedFormat):
		return presenter.Error(c, http.StatusUnsupportedMediaType, "unsupported file type: use pdf, docx or txt")
	case errors.Is(err, resume.ErrEmptyDocument):
		return presenter.Error(c, http.StatusUnprocessableEntity, "no text could be extracted")
	case err != nil:
		return presenter.Error(c, http.StatusUnprocessableEntity, err.Error())
	}
	return presenter.JSON(c, http.StatusOK, res)
}
