package models

import "time"

// StatCard is one summary tile on the admin dashboard.
type StatCard struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Value string `json:"value"`
	Trend string `json:"trend,omitempty"`
	Icon  string `json:"icon,omitempty"`
}

// DashboardSummary is the admin dashboard payload.
type DashboardSummary struct {
	Stats []StatCard `json:"stats"`
}

// Project is an annotation project managed by admins.
type Project struct {
	ID                        int    `json:"id"`
	Name                      string `json:"name"`
	Status                    string `json:"status"`
	DefaultAvgTaskTimeMinutes *int   `json:"default_avg_task_time_minutes,omitempty"`
}

// User is a platform account with an optional profile.
type User struct {
	ID     int    `json:"id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Name   string `json:"name,omitempty"`
	Phone  string `json:"phone,omitempty"`
	Status string `json:"status,omitempty"`
}

// AssignedProject is one project assignment on the worker task panel.
type AssignedProject struct {
	AssignmentID       int      `json:"assignment_id"`
	ProjectID          int      `json:"project_id"`
	ProjectName        string   `json:"project_name"`
	AvgTaskTimeMinutes *int     `json:"avg_task_time_minutes,omitempty"`
	AvgTaskTimeLabel   string   `json:"avg_task_time_label,omitempty"`
	Rating             *float64 `json:"rating,omitempty"`
	CompletedTasks     int      `json:"completed_tasks"`
	PendingTasks       int      `json:"pending_tasks"`
	Status             string   `json:"status"`
}

// TaskReview is a recent rating left on a worker's submissions.
type TaskReview struct {
	ID          int       `json:"id"`
	ProjectID   int       `json:"project_id"`
	ProjectName string    `json:"project_name"`
	Rating      float64   `json:"rating"`
	Comment     string    `json:"comment,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// TasksStats aggregates the worker's workload.
type TasksStats struct {
	AssignedProjects int      `json:"assigned_projects"`
	TasksCompleted   int      `json:"tasks_completed"`
	TasksPending     int      `json:"tasks_pending"`
	AvgRating        *float64 `json:"avg_rating,omitempty"`
}

// TasksDashboard is the worker task panel payload.
type TasksDashboard struct {
	Stats         TasksStats        `json:"stats"`
	Assignments   []AssignedProject `json:"assignments"`
	RecentReviews []TaskReview      `json:"recent_reviews"`
}

// CreateProjectRequest creates a new annotation project.
type CreateProjectRequest struct {
	Name                      string `json:"name" validate:"required"`
	Status                    string `json:"status" validate:"omitempty,oneof=Active Paused Completed"`
	DefaultAvgTaskTimeMinutes *int   `json:"default_avg_task_time_minutes" validate:"omitempty,gte=0"`
}

// CreateUserRequest creates a platform account.
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     Role   `json:"role" validate:"required,oneof=admin user expert vendor"`
	Name     string `json:"name" validate:"omitempty"`
	Phone    string `json:"phone" validate:"omitempty"`
	Status   string `json:"status" validate:"omitempty"`
}

// UpdateUserRequest partially updates a platform account.
type UpdateUserRequest struct {
	Password *string `json:"password,omitempty" validate:"omitempty,min=6"`
	Role     *Role   `json:"role,omitempty" validate:"omitempty,oneof=admin user expert vendor"`
	Name     *string `json:"name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Status   *string `json:"status,omitempty"`
}

// CreateAssignmentRequest assigns a project to a worker.
type CreateAssignmentRequest struct {
	UserID             int    `json:"user_id" validate:"required,gt=0"`
	ProjectID          int    `json:"project_id" validate:"required,gt=0"`
	CompletedTasks     int    `json:"completed_tasks" validate:"gte=0"`
	PendingTasks       int    `json:"pending_tasks" validate:"gte=0"`
	AvgTaskTimeMinutes *int   `json:"avg_task_time_minutes" validate:"omitempty,gte=0"`
	Status             string `json:"status" validate:"omitempty"`
}

// Assignment is the upstream's record of a project assignment.
type Assignment struct {
	ID                 int    `json:"id"`
	UserID             int    `json:"user_id"`
	ProjectID          int    `json:"project_id"`
	CompletedTasks     int    `json:"completed_tasks"`
	PendingTasks       int    `json:"pending_tasks"`
	AvgTaskTimeMinutes *int   `json:"avg_task_time_minutes,omitempty"`
	Status             string `json:"status"`
}
