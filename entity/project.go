package entity

import (
	"time"

	crm "github.com/smdydx/bidua-crm"
)

// Project is a body of work for a company, run by a manager.
type Project struct {
	ID          int64         `db:"id" json:"id"`
	Name        string        `db:"name" json:"name"`
	Description *string       `db:"description" json:"description"`
	CompanyID   *int64        `db:"company_id" json:"company_id"`
	ManagerID   *int64        `db:"manager_id" json:"manager_id"`
	StartDate   *time.Time    `db:"start_date" json:"start_date"`
	EndDate     *time.Time    `db:"end_date" json:"end_date"`
	Budget      *float64      `db:"budget" json:"budget"`
	Status      ProjectStatus `db:"status" json:"status"`
	Priority    string        `db:"priority" json:"priority"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt   *time.Time    `db:"updated_at" json:"updated_at"`
}

func (p Project) EntityID() int64 { return p.ID }

// ProjectSchema describes the projects table.
var ProjectSchema = crm.MustSchema("projects", crm.Fields{
	"id":          crm.FieldBigInt,
	"name":        crm.FieldText,
	"description": crm.FieldText,
	"company_id":  crm.FieldBigInt,
	"manager_id":  crm.FieldBigInt,
	"start_date":  crm.FieldDate,
	"end_date":    crm.FieldDate,
	"budget":      crm.FieldFloat,
	"status":      crm.FieldText,
	"priority":    crm.FieldText,
	"created_at":  crm.FieldTimestamp,
	"updated_at":  crm.FieldTimestamp,
})

// Task is a unit of project work, optionally nested under a parent task.
type Task struct {
	ID                   int64      `db:"id" json:"id"`
	Title                string     `db:"title" json:"title"`
	Description          *string    `db:"description" json:"description"`
	ProjectID            *int64     `db:"project_id" json:"project_id"`
	AssignedToID         *int64     `db:"assigned_to_id" json:"assigned_to_id"`
	CreatedByID          *int64     `db:"created_by_id" json:"created_by_id"`
	StartDate            *time.Time `db:"start_date" json:"start_date"`
	DueDate              *time.Time `db:"due_date" json:"due_date"`
	EstimatedHours       *float64   `db:"estimated_hours" json:"estimated_hours"`
	ActualHours          *float64   `db:"actual_hours" json:"actual_hours"`
	Status               TaskStatus `db:"status" json:"status"`
	Priority             string     `db:"priority" json:"priority"`
	CompletionPercentage int        `db:"completion_percentage" json:"completion_percentage"`
	ParentTaskID         *int64     `db:"parent_task_id" json:"parent_task_id"`
	CreatedAt            time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt            *time.Time `db:"updated_at" json:"updated_at"`
}

func (t Task) EntityID() int64 { return t.ID }

// TaskSchema describes the tasks table.
var TaskSchema = crm.MustSchema("tasks", crm.Fields{
	"id":                    crm.FieldBigInt,
	"title":                 crm.FieldText,
	"description":           crm.FieldText,
	"project_id":            crm.FieldBigInt,
	"assigned_to_id":        crm.FieldBigInt,
	"created_by_id":         crm.FieldBigInt,
	"start_date":            crm.FieldDate,
	"due_date":              crm.FieldDate,
	"estimated_hours":       crm.FieldFloat,
	"actual_hours":          crm.FieldFloat,
	"status":                crm.FieldText,
	"priority":              crm.FieldText,
	"completion_percentage": crm.FieldInt,
	"parent_task_id":        crm.FieldBigInt,
	"created_at":            crm.FieldTimestamp,
	"updated_at":            crm.FieldTimestamp,
})
