package main

import (
	"context"

	"github.com/gin-gonic/gin"

	appointmentapi "github.com/Adal612Git/miNegocioApp-backend/internal/appointment/api"
	appointmentrepo "github.com/Adal612Git/miNegocioApp-backend/internal/appointment/repository"
	appointmentservice "github.com/Adal612Git/miNegocioApp-backend/internal/appointment/service"
	authapi "github.com/Adal612Git/miNegocioApp-backend/internal/auth/api"
	authrepo "github.com/Adal612Git/miNegocioApp-backend/internal/auth/repository"
	authservice "github.com/Adal612Git/miNegocioApp-backend/internal/auth/service"
	notificationapi "github.com/Adal612Git/miNegocioApp-backend/internal/notification/api"
	notificationservice "github.com/Adal612Git/miNegocioApp-backend/internal/notification/service"
	"github.com/Adal612Git/miNegocioApp-backend/internal/platform/config"
	"github.com/Adal612Git/miNegocioApp-backend/internal/platform/database"
	"github.com/Adal612Git/miNegocioApp-backend/internal/platform/logger"
	"github.com/Adal612Git/miNegocioApp-backend/internal/platform/middleware"
	productapi "github.com/Adal612Git/miNegocioApp-backend/internal/product/api"
	productrepo "github.com/Adal612Git/miNegocioApp-backend/internal/product/repository"
	productservice "github.com/Adal612Git/miNegocioApp-backend/internal/product/service"
	reportapi "github.com/Adal612Git/miNegocioApp-backend/internal/report/api"
	reportrepo "github.com/Adal612Git/miNegocioApp-backend/internal/report/repository"
	reportservice "github.com/Adal612Git/miNegocioApp-backend/internal/report/service"
	saleapi "github.com/Adal612Git/miNegocioApp-backend/internal/sale/api"
	salerepo "github.com/Adal612Git/miNegocioApp-backend/internal/sale/repository"
	saleservice "github.com/Adal612Git/miNegocioApp-backend/internal/sale/service"
)

func main() {
	// Load Config
	mongoCfg := config.LoadMongoConfig()
	serverCfg := config.LoadServerConfig("8080")
	authCfg := config.LoadAuthConfig()
	smtpCfg := config.LoadSMTPConfig()

	logger.Info("Starting MiNegocio backend...")

	// Setup Database
	ctx := context.Background()
	client, err := database.Connect(ctx, mongoCfg.URI)
	if err != nil {
		logger.Error("Failed to connect to MongoDB", err)
		return
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	db := client.Database(mongoCfg.Database)

	var txRunner database.TxRunner
	if database.SupportsTransactions(ctx, client) {
		logger.Info("Replica set detected: sales and registrations run in transactions")
		txRunner = database.NewSessionTxRunner(client)
	} else {
		logger.Warn("Standalone MongoDB detected: running without transactions, stock writes are compensated on failure")
		txRunner = database.NewNoTxRunner()
	}

	var mailer authservice.Mailer
	if smtpCfg.Host != "" {
		mailer = authservice.NewSMTPMailer(smtpCfg)
	} else {
		mailer = authservice.NewLogMailer()
	}

	// Setup Dependencies
	authRepository := authrepo.NewMongoAuthRepository(db)
	productRepository := productrepo.NewMongoProductRepository(db)
	saleRepository := salerepo.NewMongoSaleRepository(db)
	appointmentRepository := appointmentrepo.NewMongoAppointmentRepository(db)
	reportRepository := reportrepo.NewMongoReportRepository(db)

	authSvc := authservice.NewAuthService(authRepository, txRunner, mailer, authCfg)
	productSvc := productservice.NewProductService(productRepository)
	saleSvc := saleservice.NewSaleService(saleRepository, productRepository, txRunner)
	appointmentSvc := appointmentservice.NewAppointmentService(appointmentRepository)
	reportSvc := reportservice.NewReportService(reportRepository)
	notificationSvc := notificationservice.NewNotificationService(saleRepository, appointmentRepository)

	resetPurge := authSvc.StartResetTokenPurge()
	defer resetPurge.Stop()

	authHandler := authapi.NewAuthHandler(authSvc)
	productHandler := productapi.NewProductHandler(productSvc)
	saleHandler := saleapi.NewSaleHandler(saleSvc)
	appointmentHandler := appointmentapi.NewAppointmentHandler(appointmentSvc)
	reportHandler := reportapi.NewReportHandler(reportSvc)
	notificationHandler := notificationapi.NewNotificationHandler(notificationSvc)

	// Setup Gin Router
	router := gin.Default()
	apiGroup := router.Group("/api")
	authHandler.RegisterPublicRoutes(apiGroup)

	protected := apiGroup.Group("")
	protected.Use(middleware.Auth(authCfg.JWTSecret))
	authHandler.RegisterProtectedRoutes(protected)
	productHandler.RegisterRoutes(protected)
	saleHandler.RegisterRoutes(protected)
	appointmentHandler.RegisterRoutes(protected)
	reportHandler.RegisterRoutes(protected)
	notificationHandler.RegisterRoutes(protected)

	logger.Info("MiNegocio backend running on port " + serverCfg.Port)
	if errSrv := router.Run(serverCfg.Port); errSrv != nil {
		logger.Error("Failed to run server", errSrv)
	}
}
