package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/GushALKDev/solana-pulsar-dao/internal/handler"
	"github.com/GushALKDev/solana-pulsar-dao/internal/leaderboard"
	"github.com/GushALKDev/solana-pulsar-dao/internal/repository"
	"github.com/GushALKDev/solana-pulsar-dao/internal/scheduler"
	"github.com/GushALKDev/solana-pulsar-dao/internal/service"
	"github.com/GushALKDev/solana-pulsar-dao/pkg/logger"
)

const leaderboardRebuildLimit = 1000

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the tally audit scheduler",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	db, err := openDatabase()
	if err != nil {
		return err
	}
	defer closeDatabase(db)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := repository.NewStore(db)

	board, closeBoard, err := openLeaderboard(ctx, store)
	if err != nil {
		return err
	}
	defer closeBoard()

	svc := service.New(store, service.SystemClock{}, board, cfg.Governance)

	if cfg.Audit.Enabled {
		auditScheduler := scheduler.NewAuditScheduler(svc.Audit, cfg.Audit.Cron)
		if err := auditScheduler.Start(); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
		defer auditScheduler.Stop()
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler.NewRouter(svc),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting on port ", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	}

	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error:", err)
	}

	logger.Info("Server stopped")
	return nil
}

// openLeaderboard returns the configured board. The redis board is rebuilt
// from user_stats on startup so it never serves stale rankings.
func openLeaderboard(ctx context.Context, store *repository.Store) (leaderboard.Board, func(), error) {
	if cfg.Leaderboard.Backend != "redis" {
		return leaderboard.NewDBBoard(store.Stats), func() {}, nil
	}

	rdb, err := leaderboard.Connect(ctx, cfg.Leaderboard.RedisAddress, cfg.Leaderboard.RedisPassword, cfg.Leaderboard.RedisDB)
	if err != nil {
		return nil, nil, err
	}
	board := leaderboard.NewRedisBoard(rdb)

	n, err := board.Rebuild(ctx, store.Stats, leaderboardRebuildLimit)
	if err != nil {
		rdb.Close()
		return nil, nil, fmt.Errorf("failed to rebuild leaderboard: %w", err)
	}
	logger.WithFields(map[string]interface{}{
		"entries": n,
	}).Info("Leaderboard rebuilt")

	return board, func() { rdb.Close() }, nil
}
