package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// TaskService implements per-owner task CRUD. Every operation takes the
// identity resolved by UserService.ResolveIdentity.
type TaskService struct {
	db          dbx.DBTX
	repomanager repomanager.RepositoryManager
	logger      logging.Logger

	now   func() time.Time
	newID func() string
}

// NewTaskService constructs a TaskService.
func NewTaskService(db dbx.DBTX, m repomanager.RepositoryManager, logger logging.Logger) *TaskService {
	return &TaskService{
		db:          db,
		repomanager: m,
		logger:      logger.With("module", "task_service"),
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// List returns the owner's tasks, newest first.
func (s *TaskService) List(ctx context.Context, ownerID string) ([]*models.Task, error) {
	repo := s.repomanager.Tasks(s.db)
	list, err := repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}
	return list, nil
}

// Create stores a new, not completed task owned by ownerID. The title is
// kept as given.
func (s *TaskService) Create(ctx context.Context, ownerID, title string) (*models.Task, error) {
	if title == "" {
		return nil, common.NewValidationError(common.FieldError{
			Field: "title", Message: common.MsgTitleRequired, Location: common.LocationBody,
		})
	}

	repo := s.repomanager.Tasks(s.db)
	task, err := repo.Create(ctx, &models.Task{
		ID:        s.newID(),
		UserID:    ownerID,
		Title:     title,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}
	return task, nil
}

// Update applies the fields present in upd. A missing task yields
// common.ErrorNotFound, a task owned by someone else common.ErrorForbidden.
// An update without fields returns the task unchanged.
func (s *TaskService) Update(ctx context.Context, taskID, requesterID string, upd models.TaskUpdate) (*models.Task, error) {
	task, err := s.loadOwned(ctx, taskID, requesterID)
	if err != nil {
		return nil, err
	}
	if upd.Title != nil && *upd.Title == "" {
		return nil, common.NewValidationError(common.FieldError{
			Field: "title", Message: common.MsgTitleRequired, Location: common.LocationBody,
		})
	}
	if upd.Empty() {
		return task, nil
	}

	repo := s.repomanager.Tasks(s.db)
	updated, err := repo.Update(ctx, task.ID, requesterID, upd)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error updating task: %w", err)
	}
	return updated, nil
}

// Delete removes the task after the same checks as Update.
func (s *TaskService) Delete(ctx context.Context, taskID, requesterID string) error {
	task, err := s.loadOwned(ctx, taskID, requesterID)
	if err != nil {
		return err
	}

	repo := s.repomanager.Tasks(s.db)
	if err := repo.Delete(ctx, task.ID, requesterID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return err
		}
		return fmt.Errorf("error deleting task: %w", err)
	}

	s.logger.Info(ctx, "task deleted", "task_id", task.ID, "user_id", requesterID)
	return nil
}

// loadOwned checks existence before ownership, so non-owners can tell an
// existing task from a missing one.
func (s *TaskService) loadOwned(ctx context.Context, taskID, requesterID string) (*models.Task, error) {
	if _, err := uuid.Parse(taskID); err != nil {
		return nil, common.ErrorNotFound
	}

	repo := s.repomanager.Tasks(s.db)
	task, err := repo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error loading task: %w", err)
	}
	if task.UserID != requesterID {
		return nil, common.ErrorForbidden
	}
	return task, nil
}
