package main

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"maintenance-system/internal/controllers"
	"maintenance-system/internal/repositories"
	"maintenance-system/internal/routes"
	"maintenance-system/internal/services"
	"maintenance-system/migrations"
	"maintenance-system/pkg/config"
	"maintenance-system/pkg/customvalidator"
	"maintenance-system/pkg/database/postgresql"
	"maintenance-system/pkg/logger"
	"maintenance-system/pkg/middleware"
	"maintenance-system/pkg/service"
	"maintenance-system/pkg/utils"
)

func main() {
	log := logger.NewLogger()
	defer log.Sync()

	cfg := config.New()
	ctx := context.Background()

	if err := migrations.Up(cfg.Postgres.DSN); err != nil {
		log.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := postgresql.ConnectToDB(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("redis connection failed", zap.Error(err))
	}
	defer redisClient.Close()

	// Repositories
	txManager := repositories.NewTxManager(pool)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	equipmentRepo := repositories.NewEquipmentRepository(pool)
	userRepo := repositories.NewUserRepository(pool, log)
	interventionRepo := repositories.NewInterventionRepository(pool, log)
	traitementRepo := repositories.NewTraitementRepository(pool, log)
	dashboardRepo := repositories.NewDashboardRepository(pool)
	reportRepo := repositories.NewReportRepository(pool)

	// Services
	jwtService := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL, log)
	authService := services.NewAuthService(userRepo, cacheRepo, jwtService, cfg.Session.TTL, log)
	interventionService := services.NewInterventionService(interventionRepo, equipmentRepo, traitementRepo, log)
	traitementService := services.NewTraitementService(traitementRepo, interventionRepo, userRepo, txManager, log)
	equipmentService := services.NewEquipmentService(equipmentRepo)
	dashboardService := services.NewDashboardService(dashboardRepo, traitementRepo, log)
	reportService := services.NewReportService(reportRepo, log)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	v := validator.New()
	if err := customvalidator.RegisterCustomValidators(v); err != nil {
		log.Fatal("validator registration failed", zap.Error(err))
	}
	e.Validator = utils.NewValidator(v)

	authMW := middleware.NewAuthMiddleware(jwtService, authService, log)

	routes.InitRouter(e, routes.Controllers{
		Auth:         controllers.NewAuthController(authService),
		Intervention: controllers.NewInterventionController(interventionService),
		Technician:   controllers.NewTechnicianController(interventionService),
		Traitement:   controllers.NewTraitementController(traitementService),
		Equipment:    controllers.NewEquipmentController(equipmentService),
		Dashboard:    controllers.NewDashboardController(dashboardService),
		Report:       controllers.NewReportController(reportService),
	}, authMW)

	log.Info("server starting", zap.String("port", cfg.Server.Port))
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
