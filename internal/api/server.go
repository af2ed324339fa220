package api

import (
	"fmt"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"prizedraw-api/docs"
	v1 "prizedraw-api/internal/api/handler/v1"
	"prizedraw-api/internal/api/middleware"
	"prizedraw-api/internal/cache"
	"prizedraw-api/internal/config"
	"prizedraw-api/internal/payment"
	"prizedraw-api/internal/repository"
	"prizedraw-api/internal/repository/dao"
	"prizedraw-api/internal/service"
	"prizedraw-api/internal/storage"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	store *cache.Store
	gate  *service.AdminGate
	draw  *service.DrawService
}

func NewServer(conf *config.AppConfig, db *gorm.DB) (*Server, error) {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
		store:  cache.NewStore(),
	}

	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	competitionRepo := repository.NewCompetitionRepository(dao.NewCompetitionDAO(db))
	entryRepo := repository.NewEntryRepository(dao.NewEntryDAO(db))
	winRepo := repository.NewWinRepository(dao.NewWinDAO(db))
	paymentRepo := repository.NewPaymentRepository(dao.NewPaymentDAO(db))
	settingRepo := repository.NewSettingRepository(dao.NewSettingDAO(db))

	media, err := storage.NewMediaStore(conf.Storage)
	if err != nil {
		return nil, fmt.Errorf("storage.NewMediaStore -> %w", err)
	}

	s.gate = service.NewAdminGate(userRepo)

	authSvc := service.NewAuthService(userRepo)
	userSvc := service.NewUserService(userRepo)
	competitionSvc := service.NewCompetitionService(competitionRepo, s.store)
	entrySvc := service.NewEntryService(entryRepo, competitionRepo, winRepo)
	leaderboardSvc := service.NewLeaderboardService(userRepo, entryRepo, winRepo, s.store)
	settingsSvc := service.NewSettingsService(conf.Site, settingRepo, media, s.store)
	paymentSvc := service.NewPaymentService(
		paymentRepo, payment.NewStripeProvider(conf.Stripe), competitionRepo, entrySvc, userSvc, conf.Stripe)

	feedHandler := v1.NewFeedHandler()
	go feedHandler.Run()

	s.draw = service.NewDrawService(competitionRepo, entryRepo, winRepo, userRepo, s.store, feedHandler)

	s.MountMiddlewares()
	s.MountHandlers(
		v1.NewStatusHandler(),
		v1.NewAuthHandler(conf.API, authSvc),
		v1.NewUserHandler(userSvc, leaderboardSvc, s.gate),
		v1.NewCompetitionHandler(competitionSvc),
		v1.NewEntryHandler(entrySvc),
		v1.NewPaymentHandler(paymentSvc),
		v1.NewLeaderboardHandler(leaderboardSvc),
		v1.NewSettingsHandler(settingsSvc),
		v1.NewAdminHandler(userSvc, competitionSvc, settingsSvc, s.gate),
		feedHandler,
	)

	return s, nil
}

// StartDrawScheduler kicks off the periodic close-and-draw pass.
func (s *Server) StartDrawScheduler() {
	if err := s.draw.Start(); err != nil {
		zap.L().Error("starting draw scheduler failed", zap.Error(err))
	}
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	statusHandler *v1.StatusHandler,
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	competitionHandler *v1.CompetitionHandler,
	entryHandler *v1.EntryHandler,
	paymentHandler *v1.PaymentHandler,
	leaderboardHandler *v1.LeaderboardHandler,
	settingsHandler *v1.SettingsHandler,
	adminHandler *v1.AdminHandler,
	feedHandler *v1.FeedHandler,
) {
	const basePath = "/api"

	verifyJWT := middleware.NewAuthenticator([]byte(s.Config.API.JWTSigningKey)).VerifyJWT()

	public := s.Router.Group(basePath)
	{
		public.GET("/status", statusHandler.HandleGetStatus)
		public.POST("/register", authHandler.HandleRegister)
		public.POST("/login", authHandler.HandleLogin)
		public.POST("/logout", authHandler.HandleLogout)
		public.GET("/competitions", competitionHandler.HandleListCompetitions)
		public.GET("/competitions/:slug", competitionHandler.HandleGetCompetition)
		public.GET("/leaderboard", leaderboardHandler.HandleGetLeaderboard)
		public.GET("/settings", settingsHandler.HandleGetSettings)
		public.GET("/settings/logo", settingsHandler.HandleGetLogo)
		public.GET("/settings/banner", settingsHandler.HandleGetBanner)
		public.GET("/feed", feedHandler.HandleWebSocket)
	}

	authed := s.Router.Group(basePath, verifyJWT)
	{
		authed.GET("/user", userHandler.HandleGetSession)
		authed.PATCH("/user/profile", userHandler.HandleUpdateProfile)
		authed.GET("/user/stats", userHandler.HandleGetStats)

		authed.GET("/entries", entryHandler.HandleListEntries)
		authed.POST("/entries/:entryID/steps/:stepIdx/complete", entryHandler.HandleCompleteStep)
		authed.POST("/entries/:entryID/bookmark", entryHandler.HandleSetBookmark)
		authed.POST("/entries/:entryID/like", entryHandler.HandleSetLike)
		authed.GET("/wins", entryHandler.HandleListWins)

		authed.POST("/payments/create-payment-intent", paymentHandler.HandleCreatePaymentIntent)
		authed.POST("/payments/process", paymentHandler.HandleProcess)
		authed.POST("/payments/pay-for-entry", paymentHandler.HandlePayForEntry)
		authed.POST("/payments/upgrade-to-premium", paymentHandler.HandleUpgradeToPremium)
		authed.POST("/payments/fund-wallet", paymentHandler.HandleFundWallet)
		authed.GET("/payments/:attemptID", paymentHandler.HandleGetAttempt)

		authed.GET("/admin/check", adminHandler.HandleAdminCheck)
	}

	admin := s.Router.Group(basePath+"/admin", verifyJWT, middleware.RequireAdmin(s.gate))
	{
		admin.GET("/users", adminHandler.HandleListUsers)
		admin.PATCH("/users/:userID", adminHandler.HandleUpdateUserFlags)
		admin.POST("/competitions", adminHandler.HandleCreateCompetition)
		admin.PATCH("/competitions/:competitionID", adminHandler.HandleUpdateCompetition)
		admin.POST("/competitions/:competitionID/image", adminHandler.HandleUploadCompetitionImage)
		admin.POST("/settings/logo", adminHandler.HandleUploadLogo)
		admin.POST("/settings/banner", adminHandler.HandleUploadBanner)
	}

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "PrizeDraw API"
	docs.SwaggerInfo.Description = "API for the PrizeDraw competitions platform."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
