package service

import (
	"context"

	"github.com/samber/lo"

	"github.com/GushALKDev/solana-pulsar-dao/internal/models"
	"github.com/GushALKDev/solana-pulsar-dao/internal/repository"
	"github.com/GushALKDev/solana-pulsar-dao/pkg/logger"
)

// AuditService recomputes proposal tallies from voter records. Inconsistent
// results are persisted as TallyAudit rows.
type AuditService struct {
	store *repository.Store
}

func NewAuditService(store *repository.Store) *AuditService {
	return &AuditService{store: store}
}

func (s *AuditService) AuditProposal(ctx context.Context, number uint64) (*models.TallyAudit, error) {
	var audit *models.TallyAudit
	err := run(ctx, s.store, func(tx *repository.Store) error {
		p, err := loadProposal(ctx, tx, number)
		if err != nil {
			return err
		}
		audit, err = s.audit(ctx, tx, p)
		return err
	})
	if err != nil {
		return nil, err
	}
	return audit, nil
}

// AuditAll audits every active proposal. A failure on one proposal is logged
// and does not stop the others.
func (s *AuditService) AuditAll(ctx context.Context) ([]models.TallyAudit, error) {
	proposals, err := s.store.Proposals.ListActive(ctx)
	if err != nil {
		return nil, storeErr(err)
	}

	audits := make([]models.TallyAudit, 0, len(proposals))
	for _, p := range proposals {
		audit, err := s.AuditProposal(ctx, p.Number)
		if err != nil {
			logger.WithFields(map[string]interface{}{
				"proposal": p.Number,
				"error":    err,
			}).Error("Failed to audit proposal")
			continue
		}
		audits = append(audits, *audit)
	}

	inconsistent := lo.CountBy(audits, func(a models.TallyAudit) bool { return !a.Consistent })
	logger.WithFields(map[string]interface{}{
		"proposals":    len(audits),
		"inconsistent": inconsistent,
	}).Info("Tally audit completed")

	return audits, nil
}

func (s *AuditService) audit(ctx context.Context, tx *repository.Store, p *models.Proposal) (*models.TallyAudit, error) {
	records, err := tx.Votes.ListVoted(ctx, p.Number)
	if err != nil {
		return nil, err
	}

	yes, no := lo.FilterReject(records, func(r models.VoterRecord, _ int) bool { return r.Vote })
	power := func(r models.VoterRecord) uint64 { return r.VotingPower }

	audit := &models.TallyAudit{
		ProposalNumber: p.Number,
		StoredYes:      p.Yes,
		StoredNo:       p.No,
		ComputedYes:    lo.SumBy(yes, power),
		ComputedNo:     lo.SumBy(no, power),
		Details: models.JSONB{
			"yes_voters":   len(yes),
			"no_voters":    len(no),
			"proxy_voters": lo.CountBy(records, func(r models.VoterRecord) bool { return r.VotedByProxy }),
		},
	}
	audit.Consistent = audit.StoredYes == audit.ComputedYes && audit.StoredNo == audit.ComputedNo

	if audit.Consistent {
		return audit, nil
	}

	logger.WithFields(map[string]interface{}{
		"proposal":     p.Number,
		"stored_yes":   audit.StoredYes,
		"stored_no":    audit.StoredNo,
		"computed_yes": audit.ComputedYes,
		"computed_no":  audit.ComputedNo,
	}).Warn("Tally mismatch detected")

	if err := tx.Audits.Create(ctx, audit); err != nil {
		return nil, err
	}
	return audit, nil
}

// Recent returns the latest recorded mismatches.
func (s *AuditService) Recent(ctx context.Context, limit int) ([]models.TallyAudit, error) {
	audits, err := s.store.Audits.GetRecent(ctx, limit)
	return audits, storeErr(err)
}
