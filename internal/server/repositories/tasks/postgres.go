// Package tasks provides the PostgreSQL-backed task store.
package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// PostgresRepository implements task storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(s rowScanner) (*models.Task, error) {
	var t models.Task
	if err := s.Scan(&t.ID, &t.UserID, &t.Title, &t.IsCompleted, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts a new task and returns it with the stored timestamp.
func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	query := `
		INSERT INTO tasks (id, user_id, title, is_completed, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, title, is_completed, created_at
	`
	t, err := scanTask(r.db.QueryRowContext(ctx, query,
		task.ID, task.UserID, task.Title, task.IsCompleted, task.CreatedAt))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

// GetByID loads a task regardless of its owner.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	query := `
		SELECT id, user_id, title, is_completed, created_at FROM tasks
		WHERE id = $1
	`
	t, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

// ListByOwner returns all tasks of userID, newest first.
func (r *PostgresRepository) ListByOwner(ctx context.Context, userID string) ([]*models.Task, error) {
	query := `
		SELECT id, user_id, title, is_completed, created_at FROM tasks
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select tasks: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update applies the non-nil fields of upd in a single statement and returns
// the resulting row.
func (r *PostgresRepository) Update(ctx context.Context, id string, userID string, upd models.TaskUpdate) (*models.Task, error) {
	query := `
		UPDATE tasks SET
			title = COALESCE($3, title),
			is_completed = COALESCE($4, is_completed)
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, title, is_completed, created_at
	`
	t, err := scanTask(r.db.QueryRowContext(ctx, query, id, userID, upd.Title, upd.IsCompleted))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

// Delete removes the task if userID owns it.
func (r *PostgresRepository) Delete(ctx context.Context, id string, userID string) error {
	query := `DELETE FROM tasks WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
