package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	crm "github.com/smdydx/bidua-crm"
	"github.com/smdydx/bidua-crm/entity"
	"github.com/smdydx/bidua-crm/internal/postgres"
)

type projectHandlers struct {
	projects *postgres.ProjectStore
}

func mountProjects(rg *gin.RouterGroup, projects *postgres.ProjectStore) {
	h := &projectHandlers{projects: projects}
	g := rg.Group("/projects")
	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)
}

type projectCreateRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description *string    `json:"description"`
	CompanyID   *int64     `json:"company_id"`
	ManagerID   *int64     `json:"manager_id"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Budget      *float64   `json:"budget"`
	Status      string     `json:"status" binding:"omitempty,oneof=planning active on_hold completed cancelled"`
	Priority    *string    `json:"priority"`
}

func (r projectCreateRequest) fields() map[string]any {
	status := r.Status
	if status == "" {
		status = string(entity.ProjectPlanning)
	}
	f := map[string]any{
		"name":   r.Name,
		"status": status,
	}
	putString(f, "description", r.Description)
	putInt64(f, "company_id", r.CompanyID)
	putInt64(f, "manager_id", r.ManagerID)
	putTime(f, "start_date", r.StartDate)
	putTime(f, "end_date", r.EndDate)
	putFloat(f, "budget", r.Budget)
	putString(f, "priority", r.Priority)
	return f
}

type projectUpdateRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	CompanyID   *int64     `json:"company_id"`
	ManagerID   *int64     `json:"manager_id"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Budget      *float64   `json:"budget"`
	Status      *string    `json:"status" binding:"omitempty,oneof=planning active on_hold completed cancelled"`
	Priority    *string    `json:"priority"`
}

func (r projectUpdateRequest) changes() map[string]any {
	f := map[string]any{}
	putString(f, "name", r.Name)
	putString(f, "description", r.Description)
	putInt64(f, "company_id", r.CompanyID)
	putInt64(f, "manager_id", r.ManagerID)
	putTime(f, "start_date", r.StartDate)
	putTime(f, "end_date", r.EndDate)
	putFloat(f, "budget", r.Budget)
	putString(f, "status", r.Status)
	putString(f, "priority", r.Priority)
	return f
}

func (h *projectHandlers) create(c *gin.Context) {
	var req projectCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	project, err := h.projects.Create(c.Request.Context(), req.fields(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

func (h *projectHandlers) list(c *gin.Context) {
	page := pageRequest(c)
	filters := crm.Filters{}
	stringFilter(c, filters, "status")
	intFilter(c, filters, "manager_id")

	query := crm.ListQuery{Filters: filters, Skip: page.Skip(), Limit: page.Limit()}
	ctx := c.Request.Context()
	items, err := h.projects.List(ctx, query)
	if err != nil {
		respondError(c, err)
		return
	}
	total, err := h.projects.Count(ctx, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, crm.NewPagedResult(items, total, page))
}

func (h *projectHandlers) get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	project, err := h.projects.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if project == nil {
		respondNotFound(c, "Project not found")
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *projectHandlers) update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req projectUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	ctx := c.Request.Context()

	current, err := h.projects.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if current == nil {
		respondNotFound(c, "Project not found")
		return
	}

	project, err := h.projects.Update(ctx, current, req.changes())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *projectHandlers) remove(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	project, err := h.projects.SoftDelete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if project == nil {
		respondNotFound(c, "Project not found")
		return
	}
	respondDeleted(c, "Project deleted successfully")
}

type taskHandlers struct {
	tasks *postgres.TaskStore
}

func mountTasks(rg *gin.RouterGroup, tasks *postgres.TaskStore) {
	h := &taskHandlers{tasks: tasks}
	g := rg.Group("/tasks")
	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/overdue", h.overdue)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)
}

type taskCreateRequest struct {
	Title                string     `json:"title" binding:"required"`
	Description          *string    `json:"description"`
	ProjectID            *int64     `json:"project_id"`
	AssignedToID         *int64     `json:"assigned_to_id"`
	StartDate            *time.Time `json:"start_date"`
	DueDate              *time.Time `json:"due_date"`
	EstimatedHours       *float64   `json:"estimated_hours"`
	Status               string     `json:"status" binding:"omitempty,oneof=todo in_progress review completed cancelled"`
	Priority             *string    `json:"priority"`
	CompletionPercentage *int       `json:"completion_percentage" binding:"omitempty,min=0,max=100"`
	ParentTaskID         *int64     `json:"parent_task_id"`
}

func (r taskCreateRequest) fields() map[string]any {
	status := r.Status
	if status == "" {
		status = string(entity.TaskTodo)
	}
	f := map[string]any{
		"title":  r.Title,
		"status": status,
	}
	putString(f, "description", r.Description)
	putInt64(f, "project_id", r.ProjectID)
	putInt64(f, "assigned_to_id", r.AssignedToID)
	putTime(f, "start_date", r.StartDate)
	putTime(f, "due_date", r.DueDate)
	putFloat(f, "estimated_hours", r.EstimatedHours)
	putString(f, "priority", r.Priority)
	putInt(f, "completion_percentage", r.CompletionPercentage)
	putInt64(f, "parent_task_id", r.ParentTaskID)
	return f
}

type taskUpdateRequest struct {
	Title                *string    `json:"title"`
	Description          *string    `json:"description"`
	ProjectID            *int64     `json:"project_id"`
	AssignedToID         *int64     `json:"assigned_to_id"`
	StartDate            *time.Time `json:"start_date"`
	DueDate              *time.Time `json:"due_date"`
	EstimatedHours       *float64   `json:"estimated_hours"`
	ActualHours          *float64   `json:"actual_hours"`
	Status               *string    `json:"status" binding:"omitempty,oneof=todo in_progress review completed cancelled"`
	Priority             *string    `json:"priority"`
	CompletionPercentage *int       `json:"completion_percentage" binding:"omitempty,min=0,max=100"`
	ParentTaskID         *int64     `json:"parent_task_id"`
}

func (r taskUpdateRequest) changes() map[string]any {
	f := map[string]any{}
	putString(f, "title", r.Title)
	putString(f, "description", r.Description)
	putInt64(f, "project_id", r.ProjectID)
	putInt64(f, "assigned_to_id", r.AssignedToID)
	putTime(f, "start_date", r.StartDate)
	putTime(f, "due_date", r.DueDate)
	putFloat(f, "estimated_hours", r.EstimatedHours)
	putFloat(f, "actual_hours", r.ActualHours)
	putString(f, "status", r.Status)
	putString(f, "priority", r.Priority)
	putInt(f, "completion_percentage", r.CompletionPercentage)
	putInt64(f, "parent_task_id", r.ParentTaskID)
	return f
}

func (h *taskHandlers) create(c *gin.Context) {
	var req taskCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	task, err := h.tasks.Create(c.Request.Context(), req.fields(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (h *taskHandlers) list(c *gin.Context) {
	page := pageRequest(c)
	filters := crm.Filters{}
	intFilter(c, filters, "project_id")
	intFilter(c, filters, "assigned_to_id")
	stringFilter(c, filters, "status")
	stringFilter(c, filters, "priority")

	query := crm.ListQuery{Filters: filters, Skip: page.Skip(), Limit: page.Limit()}
	ctx := c.Request.Context()
	items, err := h.tasks.List(ctx, query)
	if err != nil {
		respondError(c, err)
		return
	}
	total, err := h.tasks.Count(ctx, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, crm.NewPagedResult(items, total, page))
}

func (h *taskHandlers) overdue(c *gin.Context) {
	items, err := h.tasks.Overdue(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if items == nil {
		items = []entity.Task{}
	}
	c.JSON(http.StatusOK, items)
}

func (h *taskHandlers) update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req taskUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	ctx := c.Request.Context()

	current, err := h.tasks.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if current == nil {
		respondNotFound(c, "Task not found")
		return
	}

	task, err := h.tasks.Update(ctx, current, req.changes())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *taskHandlers) remove(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	task, err := h.tasks.SoftDelete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if task == nil {
		respondNotFound(c, "Task not found")
		return
	}
	respondDeleted(c, "Task deleted successfully")
}
