package ident

import (
	"errors"

	"github.com/codeedex/hr-office/internal/apperr"
	"github.com/codeedex/hr-office/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gormStore runs allocator reads and writes against the caller's open
// transaction.
type gormStore struct {
	tx *gorm.DB
}

// NewTxStore wraps an open gorm transaction as an allocator Store.
func NewTxStore(tx *gorm.DB) Store {
	return &gormStore{tx: tx}
}

func (s *gormStore) LockSequence(key string) (*db.IdentifierSequence, bool, error) {
	var seq db.IdentifierSequence
	err := s.tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("scope = ?", key).
		First(&seq).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &seq, true, nil
}

func (s *gormStore) InsertSequence(seq *db.IdentifierSequence) error {
	// The insert runs under a savepoint (gorm nests transactions that way).
	// Postgres aborts the whole transaction on a failed statement, so a
	// lost create race must roll back to the savepoint or the retry's
	// re-lock would fail with "current transaction is aborted".
	err := s.tx.Transaction(func(tx *gorm.DB) error {
		return tx.Create(seq).Error
	})
	if err != nil {
		if db.IsDuplicateKey(err) {
			return apperr.Duplicatef("identifier sequence %s already created", seq.Scope)
		}
		return err
	}
	return nil
}

func (s *gormStore) SaveSequence(seq *db.IdentifierSequence) error {
	return s.tx.Save(seq).Error
}

func (s *gormStore) ExistingIdentifiers(scope Scope) ([]string, error) {
	var ids []string
	err := s.tx.Table(scope.Table).
		Where(scope.Column+" LIKE ?", scope.Prefix+"%").
		Pluck(scope.Column, &ids).Error
	return ids, err
}
