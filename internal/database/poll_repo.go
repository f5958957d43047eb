package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/diegoclair/availability-bot/internal/domain"
	"github.com/diegoclair/availability-bot/internal/domain/contract"
	"github.com/diegoclair/availability-bot/internal/domain/entity"
)

type pollRepository struct {
	db dbConn
	q  *pollQueries
}

func newPollRepository(db dbConn, q *pollQueries) contract.PollRepo {
	return &pollRepository{db: db, q: q}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPoll(row rowScanner) (*entity.PollMessage, error) {
	poll := &entity.PollMessage{}
	var days [6]memberSet
	err := row.Scan(
		&poll.MessageID,
		&days[0],
		&days[1],
		&days[2],
		&days[3],
		&days[4],
		&days[5],
	)
	if err != nil {
		return nil, err
	}

	for i := range days {
		poll.Days[i] = []int64(days[i])
	}
	return poll, nil
}

func (r *pollRepository) Create(ctx context.Context, messageID int64) error {
	_, err := r.db.ExecContext(ctx, r.q.create, messageID)
	if err != nil {
		return fmt.Errorf("failed to create poll message: %w", err)
	}
	return nil
}

func (r *pollRepository) GetByMessageID(ctx context.Context, messageID int64) (*entity.PollMessage, error) {
	poll, err := scanPoll(r.db.QueryRowContext(ctx, r.q.getByMessageID, messageID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get poll message: %w", err)
	}
	return poll, nil
}

func (r *pollRepository) ListMessageIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, r.q.listIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list poll message ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan poll message id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate poll message ids: %w", err)
	}
	return ids, nil
}

func (r *pollRepository) List(ctx context.Context) ([]*entity.PollMessage, error) {
	rows, err := r.db.QueryContext(ctx, r.q.list)
	if err != nil {
		return nil, fmt.Errorf("failed to list poll messages: %w", err)
	}
	defer rows.Close()

	var polls []*entity.PollMessage
	for rows.Next() {
		poll, err := scanPoll(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan poll message: %w", err)
		}
		polls = append(polls, poll)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate poll messages: %w", err)
	}
	return polls, nil
}

func (r *pollRepository) Delete(ctx context.Context, messageID int64) error {
	_, err := r.db.ExecContext(ctx, r.q.delete, messageID)
	if err != nil {
		return fmt.Errorf("failed to delete poll message: %w", err)
	}
	return nil
}

// AddMember unions memberID into the day's set in a single statement, creating
// the row if the message is not tracked yet.
func (r *pollRepository) AddMember(ctx context.Context, messageID int64, day domain.Day, memberID int64) error {
	query, ok := r.q.addMember[day]
	if !ok {
		return fmt.Errorf("failed to add member for day %d: %w", day, domain.ErrInvalidWeekday)
	}

	_, err := r.db.ExecContext(ctx, query, messageID, memberID)
	if err != nil {
		return fmt.Errorf("failed to add member to %s: %w", day, err)
	}
	return nil
}

// RemoveMember drops memberID from the day's set. Removing an absent member
// or touching an untracked message changes nothing.
func (r *pollRepository) RemoveMember(ctx context.Context, messageID int64, day domain.Day, memberID int64) error {
	query, ok := r.q.removeMember[day]
	if !ok {
		return fmt.Errorf("failed to remove member for day %d: %w", day, domain.ErrInvalidWeekday)
	}

	_, err := r.db.ExecContext(ctx, query, messageID, memberID)
	if err != nil {
		return fmt.Errorf("failed to remove member from %s: %w", day, err)
	}
	return nil
}
