package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/wibisana/marketing-tracker/internal/application/dispatcher"
	"github.com/wibisana/marketing-tracker/internal/application/port"
	"github.com/wibisana/marketing-tracker/internal/application/service"
	"github.com/wibisana/marketing-tracker/internal/config"
	"github.com/wibisana/marketing-tracker/internal/infrastructure/persistence/repository"
	"github.com/wibisana/marketing-tracker/internal/infrastructure/persistence/sqlite"
	httpadapter "github.com/wibisana/marketing-tracker/internal/interfaces/http"
	"github.com/wibisana/marketing-tracker/pkg/database"
	"github.com/wibisana/marketing-tracker/pkg/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Marketing Task Tracker",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port))

	// Initialize database
	db, err := database.Open(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	migrator := database.NewMigrator(db, logger)
	if err := migrator.RunMigrations(cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Create report output directory
	if err := os.MkdirAll(cfg.Report.OutputDir, 0755); err != nil {
		logger.Fatal("Failed to create report output directory", zap.Error(err))
	}

	// Transaction manager and repositories
	txManager := sqlite.NewDB(db, logger)
	taskRepo := repository.NewTaskRepository(db, logger)
	activityRepo := repository.NewActivityRepository(db, logger)
	userRepo := repository.NewUserRepository(db, logger)
	approvalLogRepo := repository.NewApprovalLogRepository(db, logger)
	assignmentLogRepo := repository.NewAssignmentLogRepository(db, logger)

	// Application plumbing shared by the services
	sugar := &utils.SugarAdapter{Sugar: logger.Sugar()}
	clock := port.SystemClock{}
	disp := dispatcher.NewDispatcher(dispatcher.WithLogger(sugar))
	defer disp.Close()

	// Notification handlers react to task events after commit
	notifier := &service.LogNotifier{Logger: sugar}
	service.RegisterNotificationHandlers(disp, notifier, sugar)

	// Application services
	taskService := service.NewTaskService(taskRepo, activityRepo, userRepo, approvalLogRepo, txManager, clock, disp, sugar)
	activityService := service.NewActivityService(activityRepo, userRepo, clock, sugar)
	assignmentService := service.NewAssignmentService(taskRepo, activityRepo, userRepo, assignmentLogRepo, txManager, clock, disp, sugar)
	scheduleService := service.NewScheduleService(taskRepo, cfg.Tracker.ConflictThreshold, sugar)
	reportService := service.NewReportService(taskRepo, cfg.Tracker.ConflictThreshold, cfg.Report.OutputDir, sugar)

	// HTTP server
	server := httpadapter.NewServer(
		httpadapter.ServerConfig{
			Host:         cfg.Server.Host,
			Port:         cfg.Server.Port,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
		taskService,
		activityService,
		assignmentService,
		scheduleService,
		reportService,
		sugar,
	)

	// Run until interrupted
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.Error("Server exited with error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("Server exited successfully")
}
