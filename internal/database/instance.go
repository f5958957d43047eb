package database

import (
	"context"
	"fmt"

	"github.com/diegoclair/availability-bot/internal/domain/contract"
)

// instance implements DataManager interface
type instance struct {
	db       *DB
	pollRepo contract.PollRepo
}

// NewInstance creates a new database instance with all repositories
func NewInstance(db *DB) contract.DataManager {
	instance := &instance{
		db: db,
	}
	instance.repoInstances()
	return instance
}

// repoInstances initializes all repositories
func (i *instance) repoInstances() {
	i.pollRepo = newPollRepository(i.db.conn, queriesFor(i.db.dialect))
}

// repoInstancesWithConn creates repository instances with custom dbConn
func repoInstancesWithConn(db dbConn, dialect Dialect) *instance {
	return &instance{
		pollRepo: newPollRepository(db, queriesFor(dialect)),
	}
}

// Poll returns the poll message repository
func (i *instance) Poll() contract.PollRepo {
	return i.pollRepo
}

// WithTransaction executes a function within a database transaction
func (i *instance) WithTransaction(ctx context.Context, fn func(dm contract.DataManager) error) error {
	tx, err := i.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	txInstance := repoInstancesWithConn(tx, i.db.dialect)
	err = fn(txInstance)
	if err != nil {
		rbErr := tx.Rollback()
		if rbErr != nil {
			return fmt.Errorf("error rolling back transaction: %v, original error: %w", rbErr, err)
		}
		return err
	}

	return tx.Commit()
}
