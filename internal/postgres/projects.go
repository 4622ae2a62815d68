package postgres

import (
	"context"
	"fmt"
	"strings"

	crm "github.com/smdydx/bidua-crm"
	"github.com/smdydx/bidua-crm/entity"
)

// ProjectStore handles bodies of work.
type ProjectStore struct {
	*Repository[entity.Project]
}

func NewProjectStore(db DB) *ProjectStore {
	return &ProjectStore{NewRepository[entity.Project](db, entity.NameProject, entity.ProjectSchema)}
}

func (s *ProjectStore) GetByManager(ctx context.Context, managerID int64) ([]entity.Project, error) {
	return s.List(ctx, crm.ListQuery{Filters: crm.Filters{"manager_id": managerID}})
}

func (s *ProjectStore) GetByStatus(ctx context.Context, status entity.ProjectStatus) ([]entity.Project, error) {
	return s.List(ctx, crm.ListQuery{Filters: crm.Filters{"status": string(status)}})
}

// TaskStore handles project work items.
type TaskStore struct {
	*Repository[entity.Task]
}

func NewTaskStore(db DB) *TaskStore {
	return &TaskStore{NewRepository[entity.Task](db, entity.NameTask, entity.TaskSchema)}
}

func (s *TaskStore) GetByProject(ctx context.Context, projectID int64) ([]entity.Task, error) {
	return s.List(ctx, crm.ListQuery{Filters: crm.Filters{"project_id": projectID}})
}

func (s *TaskStore) GetByAssignee(ctx context.Context, userID int64) ([]entity.Task, error) {
	return s.List(ctx, crm.ListQuery{Filters: crm.Filters{"assigned_to_id": userID}})
}

// Overdue lists open tasks whose due date has passed. Review, completed,
// and cancelled tasks are not overdue.
func (s *TaskStore) Overdue(ctx context.Context) ([]entity.Task, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE due_date < now() AND status = ANY($1)",
		strings.Join(s.schema.Columns(), ", "), s.schema.Table(),
	)
	open := []string{string(entity.TaskTodo), string(entity.TaskInProgress)}
	return s.queryRows(ctx, "overdue", query, open)
}
