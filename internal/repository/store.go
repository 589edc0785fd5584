package repository

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/GushALKDev/solana-pulsar-dao/pkg/errors"
)

// Store bundles one repository per record type over a shared handle. Inside
// Transaction every repository is bound to the transaction and reads take row
// locks where the dialect supports them.
type Store struct {
	db *gorm.DB

	Config      *ConfigRepository
	Proposals   *ProposalRepository
	Votes       *VoteRepository
	Stakes      *StakeRepository
	Delegations *DelegationRepository
	Stats       *StatsRepository
	Escrows     *EscrowRepository
	Ledger      *LedgerRepository
	History     *HistoryRepository
	Audits      *AuditRepository
}

func NewStore(db *gorm.DB) *Store {
	return newStore(db, false)
}

func newStore(db *gorm.DB, lock bool) *Store {
	history := &HistoryRepository{db: db}
	return &Store{
		db:          db,
		Config:      &ConfigRepository{db: db, lock: lock},
		Proposals:   &ProposalRepository{db: db, lock: lock},
		Votes:       &VoteRepository{db: db, lock: lock},
		Stakes:      &StakeRepository{db: db, lock: lock},
		Delegations: &DelegationRepository{db: db, lock: lock},
		Stats:       &StatsRepository{db: db, lock: lock},
		Escrows:     &EscrowRepository{db: db, lock: lock},
		Ledger:      &LedgerRepository{db: db, lock: lock, history: history},
		History:     history,
		Audits:      &AuditRepository{db: db},
	}
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

// Transaction runs fn against a transaction-bound Store. Any error or panic
// from fn rolls back every write made through tx.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newStore(tx, true))
	})
}

func reader(db *gorm.DB, ctx context.Context, lock bool) *gorm.DB {
	q := db.WithContext(ctx)
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return q
}

// updateVersioned writes every column of model if its stored version still
// equals *version, then bumps *version. A lost race surfaces as
// ErrConcurrentUpdate.
func updateVersioned(db *gorm.DB, model interface{}, version *uint64) error {
	prev := *version
	*version = prev + 1

	result := db.Model(model).
		Where("version = ?", prev).
		Select("*").
		Omit("created_at").
		Updates(model)
	if result.Error != nil {
		*version = prev
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		*version = prev
		return errors.ErrConcurrentUpdate
	}
	return nil
}

// translate maps a uniqueness violation to ErrConcurrentUpdate: two writers
// raced to create the same keyed record.
func translate(err error) error {
	if stderrors.Is(err, gorm.ErrDuplicatedKey) {
		return errors.Wrap(errors.ErrConcurrentUpdate, err)
	}
	return err
}
