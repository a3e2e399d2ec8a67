package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/pollhub/api/internal/core/domain"
	"github.com/pollhub/api/internal/core/ports"
)

type pollRepository struct {
	db *sql.DB
}

func NewPollRepository(db *sql.DB) ports.PollRepository {
	return &pollRepository{
		db: db,
	}
}

// Save inserts the poll and its options as one transaction, so a failed
// option insert never leaves an option-less poll behind.
func (r *pollRepository) Save(ctx context.Context, poll *domain.Poll) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	queryPoll := `
		INSERT INTO polls (id, title, description, author_id, is_active, allow_multiple, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = tx.ExecContext(ctx, queryPoll,
		poll.ID, poll.Title, poll.Description, poll.AuthorID,
		poll.IsActive, poll.AllowMultiple, poll.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert poll: %w", err)
	}

	if err := insertOptions(ctx, tx, poll.Options); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// insertOptions persists the slice order in the position column; created_at
// cannot order options inserted in the same transaction.
func insertOptions(ctx context.Context, tx *sql.Tx, options []domain.PollOption) error {
	queryOption := `
		INSERT INTO poll_options (id, poll_id, text, position)
		VALUES ($1, $2, $3, $4)
	`
	stmt, err := tx.PrepareContext(ctx, queryOption)
	if err != nil {
		return fmt.Errorf("failed to prepare option statement: %w", err)
	}
	defer stmt.Close()

	for i, opt := range options {
		if _, err := stmt.ExecContext(ctx, opt.ID, opt.PollID, opt.Text, i); err != nil {
			return fmt.Errorf("failed to insert option: %w", err)
		}
	}
	return nil
}

func (r *pollRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error) {
	queryPoll := `
		SELECT id, title, description, author_id, is_active, allow_multiple,
		       expires_at, created_at, updated_at, total_votes,
		       author_email, author_name
		FROM polls_with_author
		WHERE id = $1
	`

	var poll domain.Poll
	var authorEmail, authorName string
	err := r.db.QueryRowContext(ctx, queryPoll, id).Scan(
		&poll.ID, &poll.Title, &poll.Description, &poll.AuthorID,
		&poll.IsActive, &poll.AllowMultiple, &poll.ExpiresAt,
		&poll.CreatedAt, &poll.UpdatedAt, &poll.TotalVotes,
		&authorEmail, &authorName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPollNotFound
		}
		return nil, fmt.Errorf("failed to get poll: %w", err)
	}
	poll.Author = &domain.User{ID: poll.AuthorID, Email: authorEmail, Name: authorName}

	options, err := r.fetchOptions(ctx, poll.ID)
	if err != nil {
		return nil, err
	}
	poll.Options = options

	return &poll, nil
}

func (r *pollRepository) GetAll(ctx context.Context) ([]*domain.Poll, error) {
	query := `
		SELECT id, title, description, author_id, is_active, allow_multiple,
		       expires_at, created_at, updated_at, total_votes,
		       author_email, author_name
		FROM polls_with_author
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all polls: %w", err)
	}
	defer rows.Close()

	return r.scanPolls(ctx, rows)
}

// List builds the filtered query from the tagged filter struct; the sort
// column is taken from a whitelist, never from caller input directly.
func (r *pollRepository) List(ctx context.Context, filter ports.PollFilter) ([]*domain.Poll, error) {
	var (
		conds []string
		args  []any
	)

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", n, n))
	}
	if filter.AuthorID != nil {
		args = append(args, *filter.AuthorID)
		conds = append(conds, fmt.Sprintf("author_id = $%d", len(args)))
	}
	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		conds = append(conds, fmt.Sprintf("is_active = $%d", len(args)))
	}

	query := `
		SELECT id, title, description, author_id, is_active, allow_multiple,
		       expires_at, created_at, updated_at, total_votes,
		       author_email, author_name
		FROM polls_with_author
	`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY " + orderClause(filter.SortBy, filter.SortOrder)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list polls: %w", err)
	}
	defer rows.Close()

	return r.scanPolls(ctx, rows)
}

func orderClause(sortBy ports.PollSortField, order ports.SortOrder) string {
	column := "created_at"
	switch sortBy {
	case ports.SortByTotalVotes:
		column = "total_votes"
	case ports.SortByTitle:
		column = "title"
	}
	direction := "DESC"
	if order == ports.SortAsc {
		direction = "ASC"
	}
	return column + " " + direction
}

func (r *pollRepository) UpdateFields(ctx context.Context, id uuid.UUID, update ports.PollUpdate) error {
	var (
		sets []string
		args []any
	)

	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Title != nil {
		set("title", *update.Title)
	}
	if update.Description != nil {
		set("description", *update.Description)
	}
	if update.AllowMultiple != nil {
		set("allow_multiple", *update.AllowMultiple)
	}
	if update.ExpiresAt != nil {
		set("expires_at", *update.ExpiresAt)
	} else if update.ClearExpiry {
		sets = append(sets, "expires_at = NULL")
	}

	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at = NOW()")

	args = append(args, id)
	query := fmt.Sprintf("UPDATE polls SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update poll: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrPollNotFound
	}
	return nil
}

// ReplaceOptions swaps the poll's option set wholesale. The votes foreign key
// cascades, so votes for the discarded options disappear with them.
func (r *pollRepository) ReplaceOptions(ctx context.Context, pollID uuid.UUID, options []domain.PollOption) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM poll_options WHERE poll_id = $1`, pollID); err != nil {
		return fmt.Errorf("failed to delete existing options: %w", err)
	}

	if err := insertOptions(ctx, tx, options); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `UPDATE polls SET updated_at = NOW() WHERE id = $1`, pollID); err != nil {
		return fmt.Errorf("failed to touch poll: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *pollRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM polls WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete poll: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrPollNotFound
	}
	return nil
}

func (r *pollRepository) scanPolls(ctx context.Context, rows *sql.Rows) ([]*domain.Poll, error) {
	polls := []*domain.Poll{}
	for rows.Next() {
		var poll domain.Poll
		var authorEmail, authorName string
		if err := rows.Scan(
			&poll.ID, &poll.Title, &poll.Description, &poll.AuthorID,
			&poll.IsActive, &poll.AllowMultiple, &poll.ExpiresAt,
			&poll.CreatedAt, &poll.UpdatedAt, &poll.TotalVotes,
			&authorEmail, &authorName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}
		poll.Author = &domain.User{ID: poll.AuthorID, Email: authorEmail, Name: authorName}

		options, err := r.fetchOptions(ctx, poll.ID)
		if err != nil {
			// A listing should not fail because one poll's options did;
			// degrade that poll to an empty option set.
			log.Printf("failed to fetch options for poll %s: %v", poll.ID, err)
			options = []domain.PollOption{}
		}
		poll.Options = options

		polls = append(polls, &poll)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating polls: %w", err)
	}
	return polls, nil
}

// fetchOptions returns the poll's options in insertion order with their
// derived vote counts.
func (r *pollRepository) fetchOptions(ctx context.Context, pollID uuid.UUID) ([]domain.PollOption, error) {
	queryOptions := `
		SELECT o.id, o.poll_id, o.text, o.created_at, o.updated_at,
		       (SELECT COUNT(*) FROM votes v WHERE v.option_id = o.id) AS votes
		FROM poll_options o
		WHERE o.poll_id = $1
		ORDER BY o.position, o.id
	`
	rows, err := r.db.QueryContext(ctx, queryOptions, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to get poll options: %w", err)
	}
	defer rows.Close()

	options := []domain.PollOption{}
	for rows.Next() {
		var opt domain.PollOption
		if err := rows.Scan(&opt.ID, &opt.PollID, &opt.Text, &opt.CreatedAt, &opt.UpdatedAt, &opt.Votes); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		options = append(options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating options: %w", err)
	}
	return options, nil
}
