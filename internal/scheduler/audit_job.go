package scheduler

import (
	"context"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/GushALKDev/solana-pulsar-dao/internal/models"
	"github.com/GushALKDev/solana-pulsar-dao/internal/service"
	"github.com/GushALKDev/solana-pulsar-dao/pkg/logger"
)

// AuditScheduler periodically recomputes the tallies of every active
// proposal. Runs never overlap; a tick that fires while one is in progress is
// skipped.
type AuditScheduler struct {
	cron     *cron.Cron
	auditSvc *service.AuditService
	cronExpr string

	mu      sync.Mutex
	running bool
}

func NewAuditScheduler(auditSvc *service.AuditService, cronExpr string) *AuditScheduler {
	return &AuditScheduler{
		cron:     cron.New(cron.WithSeconds()),
		auditSvc: auditSvc,
		cronExpr: cronExpr,
	}
}

func (s *AuditScheduler) Start() error {
	_, err := s.cron.AddFunc(s.cronExpr, s.runAudit)
	if err != nil {
		return err
	}

	s.cron.Start()
	logger.WithFields(map[string]interface{}{
		"cron": s.cronExpr,
	}).Info("Tally audit scheduler started")
	return nil
}

func (s *AuditScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Tally audit scheduler stopped")
}

func (s *AuditScheduler) runAudit() {
	if _, err := s.TriggerAudit(context.Background()); err != nil {
		logger.WithFields(map[string]interface{}{
			"error": err,
		}).Error("Scheduled tally audit failed")
	}
}

// TriggerAudit runs one audit pass now. It returns nil, nil when a pass is
// already in progress.
func (s *AuditScheduler) TriggerAudit(ctx context.Context) ([]models.TallyAudit, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		logger.Debug("Tally audit already running, skipping")
		return nil, nil
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	return s.auditSvc.AuditAll(ctx)
}
