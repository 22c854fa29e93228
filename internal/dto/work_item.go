package dto

import (
	"time"

	"github.com/yukikurage/team-work-tracker/internal/models"
	"github.com/yukikurage/team-work-tracker/internal/services"
	"github.com/yukikurage/team-work-tracker/internal/utils"
)

// TeamServerDTO represents a team server in API responses
type TeamServerDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// CreateWorkItemDTO represents a request to create a work item
type CreateWorkItemDTO struct {
	TaskID         string                `json:"task_id"`
	ServerID       uint64                `json:"server_id" binding:"required"`
	WeekID         int                   `json:"week_id"`
	Title          string                `json:"title" binding:"required,max=512"`
	Description    string                `json:"description"`
	AssignedTo     string                `json:"assigned_to"`
	Sprint         string                `json:"sprint"`
	Project        string                `json:"project"`
	StartDate      time.Time             `json:"start_date"`
	EndDate        time.Time             `json:"end_date"`
	ETA            time.Time             `json:"eta"`
	EstimatedHours int                   `json:"estimated_hours" binding:"min=0"`
	WeekHours      int                   `json:"week_hours" binding:"min=0"`
	TotalHours     int                   `json:"total_hours" binding:"min=0"`
	Status         models.WorkItemStatus `json:"status"`
	Comments       string                `json:"comments"`
}

// WorkItemDTO represents a work item in API responses
type WorkItemDTO struct {
	ID             uint64                `json:"id"`
	TaskID         string                `json:"task_id"`
	ServerID       uint64                `json:"server_id"`
	WeekID         int                   `json:"week_id"`
	Title          string                `json:"title"`
	Description    string                `json:"description"`
	AssignedTo     string                `json:"assigned_to"`
	Sprint         string                `json:"sprint"`
	Project        string                `json:"project"`
	StartDate      *time.Time            `json:"start_date,omitempty"`
	EndDate        *time.Time            `json:"end_date,omitempty"`
	ETA            *time.Time            `json:"eta,omitempty"`
	EstimatedHours int                   `json:"estimated_hours"`
	WeekHours      int                   `json:"week_hours"`
	TotalHours     int                   `json:"total_hours"`
	Status         models.WorkItemStatus `json:"status"`
	Comments       string                `json:"comments"`
}

// WorkItemListResponse represents a paginated list of work items
type WorkItemListResponse struct {
	WorkItems  []WorkItemDTO            `json:"work_items"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToTeamServerDTO converts a TeamServer model to TeamServerDTO
func ToTeamServerDTO(server models.TeamServer) TeamServerDTO {
	return TeamServerDTO{
		ID:   server.ID,
		Name: server.Name,
		URL:  server.URL,
	}
}

// ToCreateWorkItemInput converts a create request to service input
func ToCreateWorkItemInput(req CreateWorkItemDTO) services.CreateWorkItemInput {
	return services.CreateWorkItemInput{
		TaskID:         req.TaskID,
		ServerID:       req.ServerID,
		WeekID:         req.WeekID,
		Title:          req.Title,
		Description:    req.Description,
		AssignedTo:     req.AssignedTo,
		Sprint:         req.Sprint,
		Project:        req.Project,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		ETA:            req.ETA,
		EstimatedHours: req.EstimatedHours,
		WeekHours:      req.WeekHours,
		TotalHours:     req.TotalHours,
		Status:         req.Status,
		Comments:       req.Comments,
	}
}

// ToWorkItemDTO converts a WorkItem model to WorkItemDTO
func ToWorkItemDTO(item models.WorkItem) WorkItemDTO {
	return WorkItemDTO{
		ID:             item.ID,
		TaskID:         item.TaskID,
		ServerID:       item.ServerID,
		WeekID:         item.WeekID,
		Title:          item.Title,
		Description:    item.Description,
		AssignedTo:     item.AssignedTo,
		Sprint:         item.Sprint,
		Project:        item.Project,
		StartDate:      item.StartDate,
		EndDate:        item.EndDate,
		ETA:            item.ETA,
		EstimatedHours: item.EstimatedHours,
		WeekHours:      item.WeekHours,
		TotalHours:     item.TotalHours,
		Status:         item.Status,
		Comments:       item.Comments,
	}
}

// ToWorkItemListResponse converts a page of work items to WorkItemListResponse
func ToWorkItemListResponse(items []models.WorkItem, params utils.PaginationParams, total int64) WorkItemListResponse {
	dtos := make([]WorkItemDTO, len(items))
	for i, item := range items {
		dtos[i] = ToWorkItemDTO(item)
	}

	return WorkItemListResponse{
		WorkItems: dtos,
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	}
}
