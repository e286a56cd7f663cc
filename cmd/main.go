package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/learnora/backend/config"
	"github.com/learnora/backend/database"
	_ "github.com/learnora/backend/docs"
	"github.com/learnora/backend/internal/controller"
	"github.com/learnora/backend/internal/logger"
	"github.com/learnora/backend/internal/model"
	"github.com/learnora/backend/internal/notify"
	"github.com/learnora/backend/internal/repository"
	"github.com/learnora/backend/internal/service"
	"github.com/learnora/backend/internal/validate"
)

// @title Learnora e-learning API
// @version 1.0
// @description Course authoring, subscription-gated content, quiz grading and payments.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		// Core application components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		// Repositories layer
		fx.Provide(
			repository.NewUserRepository,
			repository.NewCourseRepository,
			repository.NewMaterialRepository,
			repository.NewTestRepository,
			repository.NewStudentAnswerRepository,
			repository.NewPaymentRepository,
			repository.NewSubscriptionRepository,
		),

		// Notification pipeline
		fx.Provide(
			NewNotificationSender,
			NewNotifier,
		),

		// Services layer
		fx.Provide(
			service.NewAuthService,
			service.NewCourseService,
			service.NewMaterialService,
			service.NewTestService,
			service.NewStudentAnswerService,
			service.NewStripeProvider,
			service.NewPaymentService,
			service.NewSubscriptionService,
		),

		// API controllers layer
		fx.Provide(
			controller.NewAuthController,
			controller.NewCourseController,
			controller.NewMaterialController,
			controller.NewTestController,
			controller.NewStudentAnswerController,
			controller.NewPaymentController,
		),

		fx.Invoke(AutoMigrateDB),
		fx.Invoke(SeedRoles),
		fx.Invoke(StartNotifier),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("noextlinks", validate.NoExternalLinks); err != nil {
			log.Fatal().Err(err).Msg("Failed to register noextlinks validator")
		}
	}

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// NewNotificationSender picks the delivery channel: SendGrid when a key
// is configured, the log otherwise.
func NewNotificationSender(cfg *config.Config) notify.Sender {
	if cfg.Email.SendgridApiKey != "" {
		log.Info().Str("from", cfg.Email.FromAddress).Msg("Using SendGrid notification sender")
		return notify.NewSendgridSender(cfg.Email.SendgridApiKey, cfg.Email.AppName, cfg.Email.FromAddress)
	}
	log.Info().Msg("No SendGrid key configured, notifications go to the log")
	return notify.ConsoleSender{}
}

func NewNotifier(sender notify.Sender) (*notify.QueueNotifier, notify.Notifier) {
	q := notify.NewQueueNotifier(sender, 256)
	return q, q
}

// StartNotifier ties the queue worker to the application lifecycle so
// pending notifications are drained on shutdown.
func StartNotifier(lc fx.Lifecycle, q *notify.QueueNotifier) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			q.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return q.Stop(ctx)
		},
	})
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	authService service.AuthService,
	authCtrl *controller.AuthController,
	courseCtrl *controller.CourseController,
	materialCtrl *controller.MaterialController,
	testCtrl *controller.TestController,
	answerCtrl *controller.StudentAnswerController,
	paymentCtrl *controller.PaymentController,
) {
	api := router.Group("/api/v1")
	api.Use(controller.PrincipalMiddleware(authService))
	{
		api.POST("/register", authCtrl.Register)
		api.POST("/login", authCtrl.Login)

		courses := api.Group("/courses")
		{
			courses.GET("", courseCtrl.List)
			courses.POST("", courseCtrl.Create)
			courses.GET("/:course_id", courseCtrl.Get)
			courses.PUT("/:course_id", courseCtrl.Update)
			courses.DELETE("/:course_id", courseCtrl.Delete)
		}

		materials := api.Group("/materials")
		{
			materials.GET("", materialCtrl.List)
			materials.POST("", materialCtrl.Create)
			materials.GET("/:material_id", materialCtrl.Get)
			materials.PUT("/:material_id", materialCtrl.Update)
			materials.DELETE("/:material_id", materialCtrl.Delete)
		}

		tests := api.Group("/tests")
		{
			tests.GET("", testCtrl.List)
			tests.POST("", testCtrl.Create)
			tests.GET("/:test_id", testCtrl.Get)
			tests.PUT("/:test_id", testCtrl.Update)
			tests.DELETE("/:test_id", testCtrl.Delete)
		}

		answers := api.Group("/student-answers")
		{
			answers.GET("", answerCtrl.List)
			answers.POST("", answerCtrl.Submit)
			answers.POST("/batch", answerCtrl.SubmitBatch)
			answers.PUT("/:answer_id", answerCtrl.Update)
			answers.DELETE("/:answer_id", answerCtrl.Delete)
		}

		payments := api.Group("/payments")
		{
			payments.GET("", paymentCtrl.List)
			payments.POST("", paymentCtrl.Create)
			payments.GET("/:payment_id/status", paymentCtrl.Status)
		}

		api.POST("/subscriptions/activate/:payment_id", paymentCtrl.ActivateSubscription)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Learnora API server starting on port %s", cfg.Server.Port)
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
		&model.User{},
		&model.Role{},
		&model.Course{},
		&model.Material{},
		&model.Test{},
		&model.AnswerOption{},
		&model.StudentAnswer{},
		&model.Payment{},
		&model.Subscription{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully")
	return nil
}

// SeedRoles makes sure the two built-in roles exist so registration can
// attach them by name.
func SeedRoles(db *gorm.DB) error {
	for _, name := range []string{model.RoleTeacher, model.RoleStudent} {
		role := model.Role{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&role).Error; err != nil {
			log.Error().Err(err).Str("role", name).Msg("Role seeding failed")
			return err
		}
	}
	log.Info().Msg("Roles seeded")
	return nil
}
