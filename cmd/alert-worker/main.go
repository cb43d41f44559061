// The alert-worker periodically re-evaluates every budget for the current
// month with notification enabled. It is the retry path for alerts whose
// dispatch failed at transaction time: the dedup claim was released, so the
// next sweep picks the tier up again.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"moneyminder/internal/config"
	"moneyminder/internal/database"
	"moneyminder/internal/logger"
	"moneyminder/internal/mailer"
	"moneyminder/internal/models"
	"moneyminder/internal/period"
	"moneyminder/internal/services"
)

// maxConcurrentEvaluations bounds simultaneous budget evaluations per sweep.
const maxConcurrentEvaluations = 8

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	dispatcher, err := mailer.NewSMTPDispatcher(
		appConfig.SMTPHost, appConfig.SMTPPort,
		appConfig.SMTPUsername, appConfig.SMTPPassword, appConfig.SMTPSender,
	)
	if err != nil {
		return fmt.Errorf("failed to create mail dispatcher: %w", err)
	}

	db := dbManager.DB()
	spendingService := services.NewSpendingService(db)
	alertService := services.NewAlertService(db)
	budgetService := services.NewBudgetService(db, spendingService, alertService, dispatcher)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ticker := time.NewTicker(appConfig.WorkerInterval)
	defer ticker.Stop()

	log.Infow("alert worker started", "interval", appConfig.WorkerInterval.String())

	// Sweep once on startup, then on every tick.
	sweep(ctx, db, budgetService)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sweep(ctx, db, budgetService)
			}
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	log.Infow("shutdown signal received", "signal", sig.String())
	cancel()
	return nil
}

// sweep re-evaluates every budget for the current month. Each (user, category)
// is evaluated independently; a failure on one does not stop the others.
func sweep(ctx context.Context, db *gorm.DB, budgets services.BudgetServicer) {
	log := logger.Get()
	month := period.Current()

	var rows []models.Budget
	if err := db.WithContext(ctx).Find(&rows).Error; err != nil {
		log.Errorw("failed to load budgets for sweep", "error", err)
		return
	}

	start := time.Now()
	var evaluated, alertsFired int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentEvaluations)

	results := make(chan int, len(rows))
	for _, budget := range rows {
		budget := budget
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			_, fired, err := budgets.EvaluateAndNotify(budget.UserID, budget.Category, month)
			if err != nil {
				log.Warnw("budget evaluation failed during sweep",
					"user_id", budget.UserID, "category", budget.Category, "error", err)
				return nil
			}
			results <- len(fired)
			return nil
		})
	}

	if err := g.Wait(); err != nil && err != context.Canceled {
		log.Errorw("sweep aborted", "error", err)
	}
	close(results)

	for n := range results {
		evaluated++
		alertsFired += int64(n)
	}

	log.Infow("sweep complete",
		"period", month.String(),
		"budgets", len(rows),
		"evaluated", evaluated,
		"alerts_fired", alertsFired,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
}
