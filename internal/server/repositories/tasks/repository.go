package tasks

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// Repository is the task store. Update and Delete are scoped to the owner
// and return common.ErrorNotFound when no row matches.
type Repository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	GetByID(ctx context.Context, id string) (*models.Task, error)
	ListByOwner(ctx context.Context, userID string) ([]*models.Task, error)
	Update(ctx context.Context, id string, userID string, upd models.TaskUpdate) (*models.Task, error)
	Delete(ctx context.Context, id string, userID string) error
}
