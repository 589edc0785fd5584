package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GushALKDev/solana-pulsar-dao/internal/config"
	"github.com/GushALKDev/solana-pulsar-dao/internal/database"
	"github.com/GushALKDev/solana-pulsar-dao/internal/models"
	"github.com/GushALKDev/solana-pulsar-dao/internal/repository"
	"github.com/GushALKDev/solana-pulsar-dao/internal/service"
	"github.com/GushALKDev/solana-pulsar-dao/pkg/logger"
)

const admin = "0x00000000000000000000000000000000000000a0"

func newAuditScheduler(t *testing.T, cronExpr string) (*AuditScheduler, *repository.Store, *service.Services) {
	t.Helper()
	logger.Discard()

	db, err := database.OpenMemory(t.Name())
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })

	store := repository.NewStore(db)
	svc := service.New(store, service.NewManualClock(1000), nil, config.GovernanceConfig{LockUnitSeconds: 1})
	_, err = svc.Admin.Initialize(context.Background(), admin, "PLSR")
	require.NoError(t, err)

	return NewAuditScheduler(svc.Audit, cronExpr), store, svc
}

func TestTriggerAudit(t *testing.T) {
	s, store, svc := newAuditScheduler(t, "0 */10 * * * *")
	ctx := context.Background()

	p, err := svc.Proposal.CreateProposal(ctx, admin, "Audit me", "", 2000)
	require.NoError(t, err)

	audits, err := s.TriggerAudit(ctx)
	require.NoError(t, err)
	require.Len(t, audits, 1)
	assert.True(t, audits[0].Consistent)

	require.NoError(t, store.DB().Model(&models.Proposal{}).Where("number = ?", p.Number).Update("no", 5).Error)

	audits, err = s.TriggerAudit(ctx)
	require.NoError(t, err)
	require.Len(t, audits, 1)
	assert.False(t, audits[0].Consistent)
	assert.Equal(t, uint64(5), audits[0].StoredNo)
}

func TestTriggerAuditSkipsWhileRunning(t *testing.T) {
	s, _, _ := newAuditScheduler(t, "0 */10 * * * *")

	s.running = true
	audits, err := s.TriggerAudit(context.Background())
	require.NoError(t, err)
	assert.Nil(t, audits)
}

func TestStart(t *testing.T) {
	t.Run("valid expression", func(t *testing.T) {
		s, _, _ := newAuditScheduler(t, "*/30 * * * * *")
		require.NoError(t, s.Start())
		s.Stop()
	})

	t.Run("invalid expression", func(t *testing.T) {
		s, _, _ := newAuditScheduler(t, "not a cron")
		assert.Error(t, s.Start())
	})
}
