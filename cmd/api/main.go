package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hfletcher/jobsite/internal/accounting"
	"github.com/hfletcher/jobsite/internal/api/handlers"
	"github.com/hfletcher/jobsite/internal/api/router"
	"github.com/hfletcher/jobsite/internal/config"
	"github.com/hfletcher/jobsite/internal/payments"
	"github.com/hfletcher/jobsite/internal/pkg/logger"
	"github.com/hfletcher/jobsite/internal/pkg/metrics"
	"github.com/hfletcher/jobsite/internal/pkg/validator"
	"github.com/hfletcher/jobsite/internal/repository/postgres"
	"github.com/hfletcher/jobsite/internal/services"
	"github.com/hfletcher/jobsite/internal/worker"
)

// @title Jobsite API
// @version 1.0
// @description Project management and client portal API for contractors.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	db, err := postgres.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	clientRepo := postgres.NewClientRepository(db)
	projectRepo := postgres.NewProjectRepository(db)
	taskRepo := postgres.NewTaskRepository(db)
	budgetRepo := postgres.NewBudgetRepository(db)
	updateRepo := postgres.NewUpdateRepository(db)
	requestRepo := postgres.NewUpdateRequestRepository(db)
	portalRepo := postgres.NewPortalUserRepository(db)
	acctRepo := postgres.NewAccountingRepository(db)

	// External clients
	processor := payments.NewClient(cfg.Processor.APIKey, cfg.Processor.APIURL)
	oauthCfg := accounting.OAuthConfig{
		ClientID:     cfg.Accounting.ClientID,
		ClientSecret: cfg.Accounting.ClientSecret,
		RedirectURL:  cfg.Accounting.RedirectURL,
		AuthURL:      cfg.Accounting.AuthURL,
		TokenURL:     cfg.Accounting.TokenURL,
	}

	// Services
	userService := services.NewUserService(userRepo, log)
	clientService := services.NewClientService(clientRepo, log)
	projectService := services.NewProjectService(projectRepo, clientRepo, log)
	taskService := services.NewTaskService(taskRepo, projectRepo, log)
	budgetService := services.NewBudgetService(budgetRepo, projectRepo, log)
	updateService := services.NewUpdateService(updateRepo, projectRepo, log)
	requestService := services.NewUpdateRequestService(requestRepo, projectRepo, log)
	billingService := services.NewBillingService(userRepo, processor, cfg.Processor, log)
	accountingService := services.NewAccountingService(
		acctRepo, clientRepo, projectRepo, budgetRepo,
		oauthCfg, cfg.Accounting.APIURL, log,
	)
	portalService := services.NewPortalService(portalRepo, clientRepo, projectRepo, updateRepo, log)
	dashboardService := services.NewDashboardService(projectRepo, taskRepo, requestRepo, budgetRepo, log)
	reportService := services.NewReportService(projectRepo, clientRepo, taskRepo, budgetRepo, updateRepo, log)

	val := validator.New()

	h := &router.Handlers{
		Health:        handlers.NewHealthHandler(db, log),
		Auth:          handlers.NewAuthHandler(userService, cfg, log, val),
		Client:        handlers.NewClientHandler(clientService, log, val),
		Project:       handlers.NewProjectHandler(projectService, reportService, log, val),
		Task:          handlers.NewTaskHandler(taskService, log, val),
		Budget:        handlers.NewBudgetHandler(budgetService, log, val),
		Update:        handlers.NewUpdateHandler(updateService, log, val),
		UpdateRequest: handlers.NewUpdateRequestHandler(requestService, log, val),
		Billing:       handlers.NewBillingHandler(billingService, userService, cfg, log, val),
		Accounting:    handlers.NewAccountingHandler(accountingService, cfg, log),
		Portal:        handlers.NewPortalHandler(portalService, requestService, cfg, log, val),
		Dashboard:     handlers.NewDashboardHandler(dashboardService, log),
		Users:         userService,
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.New(cfg, log, h),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sweeper := worker.NewTrialSweeper(userRepo, metrics.SetActiveTrials, metrics.SetTrialsExpiringSoon, log)
	if err := sweeper.Start(ctx, "0 6 * * *"); err != nil {
		log.Fatalf("Failed to start trial sweeper: %v", err)
	}

	go func() {
		log.Infof("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	sweeper.Stop()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Graceful shutdown failed: %v", err)
	}
}
