package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/jobscout/agent/api/http/presenter"
	"github.com/jobscout/agent/pkg/harvest"
)

// HarvestHandler triggers on-demand harvest runs. Requests may override the
// configured org lists, in which case scrapers are rebuilt for that run.
type HarvestHandler struct {
	runner  *harvest.Runner
	rebuild func(req harvestRequest) *harvest.Runner
}

// RunnerBuilder constructs a runner for ad hoc org lists. A nil builder
// disables per-request org overrides.
type RunnerBuilder func(greenhouse, lever, ashby []string) *harvest.Runner

func NewHarvestHandler(runner *harvest.Runner, build RunnerBuilder) *HarvestHandler {
	h := &HarvestHandler{runner: runner}
	if build != nil {
		h.rebuild = func(req harvestRequest) *harvest.Runner {
			gh := firstNonEmpty(req.GreenhouseOrgs, req.Orgs)
			lv := firstNonEmpty(req.LeverOrgs, req.Orgs)
			as := firstNonEmpty(req.AshbyOrgs, req.Orgs)
			return build(gh, lv, as)
		}
	}
	return h
}

type harvestRequest struct {
	Sources        []string `json:"sources"`
	Orgs           []string `json:"orgs"`
	GreenhouseOrgs []string `json:"greenhouse_orgs"`
	LeverOrgs      []string `json:"lever_orgs"`
	AshbyOrgs      []string `json:"ashby_orgs"`
	Query          string   `json:"query"`
	WindowHours    int      `json:"window_hours"`
	DryRun         bool     `json:"dry_run"`
}

func (r harvestRequest) overridesOrgs() bool {
	return len(r.Orgs) > 0 || len(r.GreenhouseOrgs) > 0 || len(r.LeverOrgs) > 0 || len(r.AshbyOrgs) > 0
}

func firstNonEmpty(a, b []string) []string {
	if len(a) > 0 {
		return a
	}
	return b
}

// @Summary Trigger a harvest run
// @Description Runs the enabled scrapers now. Org lists and sources may be overridden per request.
// @Tags        harvest
// @Accept      json
// @Produce     json
// @Param       input   body  harvestRequest false "Run overrides"
// @Param       dry_run query bool           false "Scrape and count without ingesting"
// @Security    BearerAuth
// @Success     200 {object} harvest.RunResult
// @Failure     400 {object} presenter.ErrorResponse
// @Router      /harvest/run [post]
func (h *HarvestHandler) Run(c *fiber.Ctx) error {
	var req harvestRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return presenter.Error(c, http.StatusBadRequest, "invalid JSON body")
		}
	}
	if queryBool(c, "dry_run") {
		req.DryRun = true
	}
	runner := h.runner
	if req.overridesOrgs() && h.rebuild != nil {
		runner = h.rebuild(req)
	}
	res, err := runner.Run(c.Context(), harvest.Options{
		Sources:     req.Sources,
		Query:       req.Query,
		WindowHours: req.WindowHours,
		DryRun:      req.DryRun,
	})
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, err.Error())
	}
	return presenter.JSON(c, http.StatusOK, res)
}
