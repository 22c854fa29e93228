package models

import "time"

type WorkItemStatus string

const (
	WorkItemStatusNew      WorkItemStatus = "New"
	WorkItemStatusActive   WorkItemStatus = "Active"
	WorkItemStatusResolved WorkItemStatus = "Resolved"
	WorkItemStatusClosed   WorkItemStatus = "Closed"
)

// WorkItem is a weekly time-tracking record for a task on a TeamServer.
// Unset dates are stored as NULL.
type WorkItem struct {
	Base
	TaskID         string         `gorm:"type:varchar(100)" json:"task_id"`
	ServerID       uint64         `gorm:"index:idx_work_item_week;not null" json:"server_id"`
	WeekID         int            `gorm:"index:idx_work_item_week" json:"week_id"`
	Title          string         `gorm:"type:varchar(512);not null" json:"title"`
	Description    string         `gorm:"type:text" json:"description"`
	AssignedTo     string         `gorm:"type:varchar(255)" json:"assigned_to"`
	Sprint         string         `gorm:"type:varchar(255)" json:"sprint"`
	Project        string         `gorm:"type:varchar(255)" json:"project"`
	StartDate      *time.Time     `json:"start_date"`
	EndDate        *time.Time     `json:"end_date"`
	ETA            *time.Time     `gorm:"column:eta" json:"eta"`
	EstimatedHours int            `json:"estimated_hours"`
	WeekHours      int            `json:"week_hours"`
	TotalHours     int            `json:"total_hours"`
	Status         WorkItemStatus `gorm:"type:varchar(50)" json:"status"`
	Comments       string         `gorm:"type:text" json:"comments"`
}

func (WorkItem) TableName() string {
	return "work_items"
}
