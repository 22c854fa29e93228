package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/yukikurage/team-work-tracker/internal/database"
	"github.com/yukikurage/team-work-tracker/internal/logger"
	"github.com/yukikurage/team-work-tracker/internal/models"
	"github.com/yukikurage/team-work-tracker/internal/repository"
	"github.com/yukikurage/team-work-tracker/internal/utils"
)

// WorkItemService handles work item business logic
type WorkItemService struct {
	store  *repository.Store
	logger *zap.Logger
}

// NewWorkItemService creates a new WorkItemService
func NewWorkItemService(store *repository.Store, log *zap.Logger) *WorkItemService {
	return &WorkItemService{
		store:  store,
		logger: log.With(logger.Module("work_item")),
	}
}

// CreateWorkItemInput represents input for creating a work item
type CreateWorkItemInput struct {
	TaskID         string
	ServerID       uint64
	WeekID         int
	Title          string
	Description    string
	AssignedTo     string
	Sprint         string
	Project        string
	StartDate      time.Time
	EndDate        time.Time
	ETA            time.Time
	EstimatedHours int
	WeekHours      int
	TotalHours     int
	Status         models.WorkItemStatus
	Comments       string
}

// ListWorkItemsInput represents filters for listing work items
type ListWorkItemsInput struct {
	ServerID   *uint64
	WeekID     *int
	AssignedTo string
	Pagination utils.PaginationParams
}

// CreateWorkItem validates and stores a work item
func (s *WorkItemService) CreateWorkItem(ctx context.Context, input CreateWorkItemInput) (*models.WorkItem, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}
	if !input.StartDate.IsZero() && !input.EndDate.IsZero() && input.EndDate.Before(input.StartDate) {
		return nil, ErrInvalidDateRange
	}

	err := s.store.TeamServers(ctx, func(repo repository.Repository[models.TeamServer]) error {
		server, err := repo.GetByID(input.ServerID)
		if err != nil {
			return fmt.Errorf("failed to find team server: %w", err)
		}
		if server == nil {
			return ErrServerNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if input.Status == "" {
		input.Status = models.WorkItemStatusNew
	}

	item := &models.WorkItem{
		TaskID:         input.TaskID,
		ServerID:       input.ServerID,
		WeekID:         input.WeekID,
		Title:          input.Title,
		Description:    input.Description,
		AssignedTo:     input.AssignedTo,
		Sprint:         input.Sprint,
		Project:        input.Project,
		StartDate:      optionalTime(input.StartDate),
		EndDate:        optionalTime(input.EndDate),
		ETA:            optionalTime(input.ETA),
		EstimatedHours: input.EstimatedHours,
		WeekHours:      input.WeekHours,
		TotalHours:     input.TotalHours,
		Status:         input.Status,
		Comments:       input.Comments,
	}

	err = s.store.WorkItems(ctx, func(repo repository.Repository[models.WorkItem]) error {
		_, err := repo.Insert(item)
		return err
	})
	if err != nil {
		s.logger.Error("Failed to create work item", logger.ServerID(input.ServerID), zap.Error(err))
		return nil, fmt.Errorf("failed to create work item: %w", err)
	}

	return item, nil
}

// ListWorkItems returns one page of matching work items ordered by start date, and the total match count
func (s *WorkItemService) ListWorkItems(ctx context.Context, input ListWorkItemsInput) ([]models.WorkItem, int64, error) {
	conditions := []string{"1 = 1"}
	args := []interface{}{}
	if input.ServerID != nil {
		conditions = append(conditions, "server_id = ?")
		args = append(args, *input.ServerID)
	}
	if input.WeekID != nil {
		conditions = append(conditions, "week_id = ?")
		args = append(args, *input.WeekID)
	}
	if input.AssignedTo != "" {
		conditions = append(conditions, "assigned_to = ?")
		args = append(args, input.AssignedTo)
	}
	query := strings.Join(conditions, " AND ")
	pagination := utils.NewPaginationParams(input.Pagination.Page, input.Pagination.Limit)

	var (
		items []models.WorkItem
		total int64
	)
	err := s.store.WorkItems(ctx, func(repo repository.Repository[models.WorkItem]) error {
		var err error
		total, err = repo.Count(query, args...)
		if err != nil {
			return err
		}

		items, err = repo.
			Scoped(database.OrderBy("start_date"), database.Paginate(pagination)).
			Filter(query, args...)
		return err
	})
	if err != nil {
		s.logger.Error("Failed to list work items", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to list work items: %w", err)
	}

	return items, total, nil
}

// GetWorkItem returns a work item by ID
func (s *WorkItemService) GetWorkItem(ctx context.Context, id uint64) (*models.WorkItem, error) {
	var item *models.WorkItem
	err := s.store.WorkItems(ctx, func(repo repository.Repository[models.WorkItem]) error {
		var err error
		item, err = repo.GetByID(id)
		if err != nil {
			return fmt.Errorf("failed to find work item: %w", err)
		}
		if item == nil {
			return ErrWorkItemNotFound
		}
		return nil
	})
	if err != nil {
		s.logger.Debug("Work item lookup failed", logger.WorkItemID(id), zap.Error(err))
		return nil, err
	}
	return item, nil
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
