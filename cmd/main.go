package main

import (
	"context"
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/skilltrek/backend/config"
	"github.com/skilltrek/backend/database"
	adminctrl "github.com/skilltrek/backend/internal/controller/admin"
	userctrl "github.com/skilltrek/backend/internal/controller/user"
	"github.com/skilltrek/backend/internal/logger"
	"github.com/skilltrek/backend/internal/model"
	"github.com/skilltrek/backend/internal/repository"
	"github.com/skilltrek/backend/internal/service"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title SkillTrek API
// @version 1.0
// @description Career learning backend: AI-generated skill assessments, conversational AI interviews, and a verified skill ledger.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
			NewRand,
		),

		fx.Provide(
			repository.NewQuestionRepository,
			repository.NewAssessmentSessionRepository,
			repository.NewInterviewSessionRepository,
			repository.NewInterviewMessageRepository,
			repository.NewUserSkillRepository,
			repository.NewUserResumeRepository,
		),

		fx.Provide(
			service.NewGeminiGeneratorService,
			service.NewGithubProfileService,
			service.NewLevelConverterService,
			service.NewSkillLedgerService,
			service.NewQuestionBankService,
			service.NewAssessmentService,
			service.NewInterviewService,
			service.NewAdminQuestionService,
		),

		fx.Provide(
			userctrl.NewAssessmentController,
			userctrl.NewInterviewController,
			userctrl.NewSkillController,
			adminctrl.NewQuestionController,
		),

		fx.Invoke(AutoMigrateDB),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

// NewRand seeds the source used to sample question snapshots.
func NewRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	assessmentCtrl *userctrl.AssessmentController,
	interviewCtrl *userctrl.InterviewController,
	skillCtrl *userctrl.SkillController,
	adminQuestionCtrl *adminctrl.QuestionController,
) {
	apiV1 := router.Group("/api/v1")
	{
		assessmentCtrl.RegisterRoutes(apiV1)
		interviewCtrl.RegisterRoutes(apiV1)
		skillCtrl.RegisterRoutes(apiV1)
		adminQuestionCtrl.RegisterRoutes(apiV1)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("SkillTrek API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Question{},
		&model.AssessmentSession{},
		&model.AssessmentAnswer{},
		&model.InterviewSession{},
		&model.InterviewMessage{},
		&model.UserSkill{},
		&model.UserResume{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
