// @title         job-scout-agent API
// @version       1.0
// @description   Job listing aggregator with resume parsing, LLM fit analysis, cover letters and a chat copilot.
// @BasePath      /api/v1
// @schemes       http
// @host          localhost:8080
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Admin token for operator routes. Formats: "Bearer <JWT>" or "<JWT>".
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlog "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/rs/zerolog"

	_ "github.com/jobscout/agent/docs"

	apihttp "github.com/jobscout/agent/api/http"
	"github.com/jobscout/agent/api/http/handlers"
	"github.com/jobscout/agent/pkg/analysis"
	"github.com/jobscout/agent/pkg/chat"
	"github.com/jobscout/agent/pkg/config"
	"github.com/jobscout/agent/pkg/harvest"
	"github.com/jobscout/agent/pkg/health"
	"github.com/jobscout/agent/pkg/health/checkers"
	"github.com/jobscout/agent/pkg/job"
	"github.com/jobscout/agent/pkg/letter"
	"github.com/jobscout/agent/pkg/llm/groq"
	pgrepo "github.com/jobscout/agent/pkg/repository/postgres"
	"github.com/jobscout/agent/pkg/resume"
	"github.com/jobscout/agent/pkg/scheduler"
	"github.com/jobscout/agent/pkg/security/jwt"
	"github.com/jobscout/agent/pkg/storage/postgres"
)

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuration incomplete")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.Connect(ctx, cfg.DatabaseURL, cfg.MaxDBConns)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connect")
	}
	defer pool.Close()

	jobRepo, err := pgrepo.NewJobRepository(pool)
	if err != nil {
		log.Fatal().Err(err).Msg("init job repo")
	}
	jobUC := job.NewService(jobRepo)

	llmClient := groq.New(cfg.GroqAPIKey, "", cfg.GroqModel)

	parseSvc := resume.NewService()
	analysisUC := analysis.NewService(jobRepo, llmClient, cfg.GroqModel)
	letterUC := letter.NewService(llmClient)
	chatUC := chat.NewService(llmClient)

	fetcher := harvest.NewFetcher(cfg.HarvestTimeout, cfg.HarvestMaxConcurrency, log)
	buildScrapers := func(greenhouse, lever, ashby []string) []harvest.Scraper {
		return []harvest.Scraper{
			harvest.NewGreenhouseScraper(fetcher, greenhouse),
			harvest.NewLeverScraper(fetcher, lever),
			harvest.NewAshbyScraper(fetcher, ashby),
			harvest.NewWorkdayScraper(fetcher, nil),
		}
	}
	runner := harvest.NewRunner(
		buildScrapers(cfg.GreenhouseBoards, cfg.LeverCompanies, cfg.AshbyOrgs),
		jobUC, cfg.HarvestQuery, cfg.HarvestWindowHours, log,
	)

	readiness := health.NewService(
		checkers.NewPostgresChecker(pool),
		checkers.NewGroqChecker(cfg.GroqAPIKey),
	)

	sched := scheduler.New(runner, jobUC, scheduler.Config{
		HarvestEnabled: cfg.HarvestEnabled,
		HarvestSources: cfg.HarvestSources,
		HarvestCron:    cfg.HarvestCron,
		CleanupCron:    cfg.CleanupCron,
		JobTTLHours:    cfg.JobTTLHours,
	}, log)
	if err := sched.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("start scheduler")
	}
	defer sched.Stop()

	app := fiber.New()
	app.Use(recover.New())
	app.Use(fiberlog.New())
	app.Use(cors.New())

	adminMW := jwt.NewAdminMiddleware(cfg.AdminJWTSecret, cfg.AdminJWTIssuer)
	apihttp.Register(app, apihttp.Handlers{
		Health:  handlers.NewHealthHandler(readiness),
		Parse:   handlers.NewParseHandler(parseSvc),
		Jobs:    handlers.NewJobsHandler(jobUC),
		Analyze: handlers.NewAnalyzeHandler(analysisUC),
		Letter:  handlers.NewLetterHandler(letterUC),
		Chat:    handlers.NewChatHandler(chatUC),
		Harvest: handlers.NewHarvestHandler(runner, func(greenhouse, lever, ashby []string) *harvest.Runner {
			return harvest.NewRunner(buildScrapers(greenhouse, lever, ashby), jobUC, cfg.HarvestQuery, cfg.HarvestWindowHours, log)
		}),
	}, adminMW)

	app.Get("/swagger/*", swagger.HandlerDefault)

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		_ = app.Shutdown()
	}()

	log.Info().Str("port", cfg.Port).Msg("HTTP server listening")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
