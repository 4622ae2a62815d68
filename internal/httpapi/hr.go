package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	crm "github.com/smdydx/bidua-crm"
	"github.com/smdydx/bidua-crm/entity"
	"github.com/smdydx/bidua-crm/internal/postgres"
)

type departmentHandlers struct {
	departments *postgres.DepartmentStore
}

func mountDepartments(rg *gin.RouterGroup, departments *postgres.DepartmentStore) {
	h := &departmentHandlers{departments: departments}
	g := rg.Group("/departments")
	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)
}

type departmentCreateRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	ManagerID   *int64  `json:"manager_id"`
	IsActive    *bool   `json:"is_active"`
}

func (r departmentCreateRequest) fields() map[string]any {
	f := map[string]any{"name": r.Name}
	putString(f, "description", r.Description)
	putInt64(f, "manager_id", r.ManagerID)
	putBool(f, "is_active", r.IsActive)
	return f
}

type departmentUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ManagerID   *int64  `json:"manager_id"`
	IsActive    *bool   `json:"is_active"`
}

func (r departmentUpdateRequest) changes() map[string]any {
	f := map[string]any{}
	putString(f, "name", r.Name)
	putString(f, "description", r.Description)
	putInt64(f, "manager_id", r.ManagerID)
	putBool(f, "is_active", r.IsActive)
	return f
}

func (h *departmentHandlers) create(c *gin.Context) {
	var req departmentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	ctx := c.Request.Context()

	existing, err := h.departments.GetByName(ctx, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	if existing != nil {
		respondConflict(c, "Department name already exists")
		return
	}

	department, err := h.departments.Create(ctx, req.fields(), nil)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, department)
}

func (h *departmentHandlers) list(c *gin.Context) {
	page := pageRequest(c)
	filters := crm.Filters{}
	boolFilter(c, filters, "is_active")

	query := crm.ListQuery{Filters: filters, Skip: page.Skip(), Limit: page.Limit()}
	ctx := c.Request.Context()
	items, err := h.departments.List(ctx, query)
	if err != nil {
		respondError(c, err)
		return
	}
	total, err := h.departments.Count(ctx, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, crm.NewPagedResult(items, total, page))
}

func (h *departmentHandlers) get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	department, err := h.departments.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if department == nil {
		respondNotFound(c, "Department not found")
		return
	}
	c.JSON(http.StatusOK, department)
}

func (h *departmentHandlers) update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req departmentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	ctx := c.Request.Context()

	current, err := h.departments.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if current == nil {
		respondNotFound(c, "Department not found")
		return
	}

	department, err := h.departments.Update(ctx, current, req.changes())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, department)
}

func (h *departmentHandlers) remove(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	department, err := h.departments.SoftDelete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if department == nil {
		respondNotFound(c, "Department not found")
		return
	}
	respondDeleted(c, "Department deleted successfully")
}

type designationHandlers struct {
	designations *postgres.DesignationStore
}

func mountDesignations(rg *gin.RouterGroup, designations *postgres.DesignationStore) {
	h := &designationHandlers{designations: designations}
	g := rg.Group("/designations")
	g.POST("", h.create)
	g.GET("", h.list)
}

type designationCreateRequest struct {
	Title        string  `json:"title" binding:"required"`
	DepartmentID *int64  `json:"department_id"`
	Level        *int    `json:"level"`
	Description  *string `json:"description"`
	IsActive     *bool   `json:"is_active"`
}

func (r designationCreateRequest) fields() map[string]any {
	f := map[string]any{"title": r.Title}
	putInt64(f, "department_id", r.DepartmentID)
	putInt(f, "level", r.Level)
	putString(f, "description", r.Description)
	putBool(f, "is_active", r.IsActive)
	return f
}

func (h *designationHandlers) create(c *gin.Context) {
	var req designationCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	designation, err := h.designations.Create(c.Request.Context(), req.fields(), nil)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, designation)
}

func (h *designationHandlers) list(c *gin.Context) {
	page := pageRequest(c)
	filters := crm.Filters{}
	intFilter(c, filters, "department_id")
	boolFilter(c, filters, "is_active")

	query := crm.ListQuery{Filters: filters, Skip: page.Skip(), Limit: page.Limit()}
	ctx := c.Request.Context()
	items, err := h.designations.List(ctx, query)
	if err != nil {
		respondError(c, err)
		return
	}
	total, err := h.designations.Count(ctx, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, crm.NewPagedResult(items, total, page))
}

type employeeHandlers struct {
	employees *postgres.EmployeeStore
}

func mountEmployees(rg *gin.RouterGroup, employees *postgres.EmployeeStore) {
	h := &employeeHandlers{employees: employees}
	g := rg.Group("/employees")
	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)
}

type employeeCreateRequest struct {
	EmployeeID       string     `json:"employee_id" binding:"required"`
	UserID           *int64     `json:"user_id"`
	DepartmentID     *int64     `json:"department_id"`
	DesignationID    *int64     `json:"designation_id"`
	ManagerID        *int64     `json:"manager_id"`
	DateOfBirth      *time.Time `json:"date_of_birth"`
	Gender           *string    `json:"gender"`
	Address          *string    `json:"address"`
	City             *string    `json:"city"`
	State            *string    `json:"state"`
	Country          *string    `json:"country"`
	PostalCode       *string    `json:"postal_code"`
	EmergencyContact *string    `json:"emergency_contact"`
	EmergencyPhone   *string    `json:"emergency_phone"`
	HireDate         time.Time  `json:"hire_date" binding:"required"`
	ConfirmationDate *time.Time `json:"confirmation_date"`
	EmploymentType   *string    `json:"employment_type"`
	WorkLocation     *string    `json:"work_location"`
	Status           string     `json:"status" binding:"omitempty,oneof=active inactive terminated on_leave"`
	Salary           *float64   `json:"salary"`
	TerminationDate  *time.Time `json:"termination_date"`
	Skills           *string    `json:"skills"`
	ExperienceYears  *int       `json:"experience_years"`
}

func (r employeeCreateRequest) fields() map[string]any {
	status := r.Status
	if status == "" {
		status = string(entity.EmployeeActive)
	}
	f := map[string]any{
		"employee_id": r.EmployeeID,
		"hire_date":   r.HireDate,
		"status":      status,
	}
	putInt64(f, "user_id", r.UserID)
	putInt64(f, "department_id", r.DepartmentID)
	putInt64(f, "designation_id", r.DesignationID)
	putInt64(f, "manager_id", r.ManagerID)
	putTime(f, "date_of_birth", r.DateOfBirth)
	putString(f, "gender", r.Gender)
	putString(f, "address", r.Address)
	putString(f, "city", r.City)
	putString(f, "state", r.State)
	putString(f, "country", r.Country)
	putString(f, "postal_code", r.PostalCode)
	putString(f, "emergency_contact", r.EmergencyContact)
	putString(f, "emergency_phone", r.EmergencyPhone)
	putTime(f, "confirmation_date", r.ConfirmationDate)
	putString(f, "employment_type", r.EmploymentType)
	putString(f, "work_location", r.WorkLocation)
	putFloat(f, "salary", r.Salary)
	putTime(f, "termination_date", r.TerminationDate)
	putString(f, "skills", r.Skills)
	putInt(f, "experience_years", r.ExperienceYears)
	return f
}

type employeeUpdateRequest struct {
	UserID           *int64     `json:"user_id"`
	DepartmentID     *int64     `json:"department_id"`
	DesignationID    *int64     `json:"designation_id"`
	ManagerID        *int64     `json:"manager_id"`
	DateOfBirth      *time.Time `json:"date_of_birth"`
	Gender           *string    `json:"gender"`
	Address          *string    `json:"address"`
	City             *string    `json:"city"`
	State            *string    `json:"state"`
	Country          *string    `json:"country"`
	PostalCode       *string    `json:"postal_code"`
	EmergencyContact *string    `json:"emergency_contact"`
	EmergencyPhone   *string    `json:"emergency_phone"`
	HireDate         *time.Time `json:"hire_date"`
	ConfirmationDate *time.Time `json:"confirmation_date"`
	EmploymentType   *string    `json:"employment_type"`
	WorkLocation     *string    `json:"work_location"`
	Status           *string    `json:"status" binding:"omitempty,oneof=active inactive terminated on_leave"`
	Salary           *float64   `json:"salary"`
	TerminationDate  *time.Time `json:"termination_date"`
	Skills           *string    `json:"skills"`
	ExperienceYears  *int       `json:"experience_years"`
}

func (r employeeUpdateRequest) changes() map[string]any {
	f := map[string]any{}
	putInt64(f, "user_id", r.UserID)
	putInt64(f, "department_id", r.DepartmentID)
	putInt64(f, "designation_id", r.DesignationID)
	putInt64(f, "manager_id", r.ManagerID)
	putTime(f, "date_of_birth", r.DateOfBirth)
	putString(f, "gender", r.Gender)
	putString(f, "address", r.Address)
	putString(f, "city", r.City)
	putString(f, "state", r.State)
	putString(f, "country", r.Country)
	putString(f, "postal_code", r.PostalCode)
	putString(f, "emergency_contact", r.EmergencyContact)
	putString(f, "emergency_phone", r.EmergencyPhone)
	putTime(f, "hire_date", r.HireDate)
	putTime(f, "confirmation_date", r.ConfirmationDate)
	putString(f, "employment_type", r.EmploymentType)
	putString(f, "work_location", r.WorkLocation)
	putString(f, "status", r.Status)
	putFloat(f, "salary", r.Salary)
	putTime(f, "termination_date", r.TerminationDate)
	putString(f, "skills", r.Skills)
	putInt(f, "experience_years", r.ExperienceYears)
	return f
}

func (h *employeeHandlers) create(c *gin.Context) {
	var req employeeCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	ctx := c.Request.Context()

	existing, err := h.employees.GetByEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		respondError(c, err)
		return
	}
	if existing != nil {
		respondConflict(c, "Employee ID already exists")
		return
	}

	employee, err := h.employees.Create(ctx, req.fields(), nil)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, employee)
}

func (h *employeeHandlers) list(c *gin.Context) {
	page := pageRequest(c)
	filters := crm.Filters{}
	intFilter(c, filters, "department_id")
	intFilter(c, filters, "manager_id")
	stringFilter(c, filters, "status")

	query := crm.ListQuery{Filters: filters, Skip: page.Skip(), Limit: page.Limit()}
	ctx := c.Request.Context()
	items, err := h.employees.List(ctx, query)
	if err != nil {
		respondError(c, err)
		return
	}
	total, err := h.employees.Count(ctx, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, crm.NewPagedResult(items, total, page))
}

func (h *employeeHandlers) get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	employee, err := h.employees.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if employee == nil {
		respondNotFound(c, "Employee not found")
		return
	}
	c.JSON(http.StatusOK, employee)
}

func (h *employeeHandlers) update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req employeeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	ctx := c.Request.Context()

	current, err := h.employees.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if current == nil {
		respondNotFound(c, "Employee not found")
		return
	}

	employee, err := h.employees.Update(ctx, current, req.changes())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, employee)
}

func (h *employeeHandlers) remove(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	employee, err := h.employees.SoftDelete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if employee == nil {
		respondNotFound(c, "Employee not found")
		return
	}
	respondDeleted(c, "Employee deleted successfully")
}

type leaveTypeHandlers struct {
	leaveTypes *postgres.LeaveTypeStore
}

func mountLeaveTypes(rg *gin.RouterGroup, leaveTypes *postgres.LeaveTypeStore) {
	h := &leaveTypeHandlers{leaveTypes: leaveTypes}
	g := rg.Group("/leave-types")
	g.POST("", h.create)
	g.GET("", h.list)
}

type leaveTypeCreateRequest struct {
	Name             string  `json:"name" binding:"required"`
	Description      *string `json:"description"`
	MaxDaysPerYear   *int    `json:"max_days_per_year"`
	IsPaid           *bool   `json:"is_paid"`
	RequiresApproval *bool   `json:"requires_approval"`
	IsActive         *bool   `json:"is_active"`
}

func (r leaveTypeCreateRequest) fields() map[string]any {
	f := map[string]any{"name": r.Name}
	putString(f, "description", r.Description)
	putInt(f, "max_days_per_year", r.MaxDaysPerYear)
	putBool(f, "is_paid", r.IsPaid)
	putBool(f, "requires_approval", r.RequiresApproval)
	putBool(f, "is_active", r.IsActive)
	return f
}

func (h *leaveTypeHandlers) create(c *gin.Context) {
	var req leaveTypeCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	leaveType, err := h.leaveTypes.Create(c.Request.Context(), req.fields(), nil)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, leaveType)
}

func (h *leaveTypeHandlers) list(c *gin.Context) {
	page := pageRequest(c)
	filters := crm.Filters{}
	boolFilter(c, filters, "is_active")

	query := crm.ListQuery{Filters: filters, Skip: page.Skip(), Limit: page.Limit()}
	ctx := c.Request.Context()
	items, err := h.leaveTypes.List(ctx, query)
	if err != nil {
		respondError(c, err)
		return
	}
	total, err := h.leaveTypes.Count(ctx, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, crm.NewPagedResult(items, total, page))
}

type leaveRequestHandlers struct {
	requests *postgres.LeaveRequestStore
}

func mountLeaveRequests(rg *gin.RouterGroup, requests *postgres.LeaveRequestStore) {
	h := &leaveRequestHandlers{requests: requests}
	g := rg.Group("/leave-requests")
	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/pending", h.pending)
	g.PUT("/:id/approve", h.approve)
}

type leaveRequestCreateRequest struct {
	EmployeeID    int64     `json:"employee_id" binding:"required"`
	LeaveTypeID   int64     `json:"leave_type_id" binding:"required"`
	StartDate     time.Time `json:"start_date" binding:"required"`
	EndDate       time.Time `json:"end_date" binding:"required"`
	DaysRequested int       `json:"days_requested" binding:"required,min=1"`
	Reason        *string   `json:"reason"`
	Status        string    `json:"status" binding:"omitempty,oneof=pending approved rejected cancelled"`
}

func (r leaveRequestCreateRequest) fields() map[string]any {
	status := r.Status
	if status == "" {
		status = string(entity.LeavePending)
	}
	f := map[string]any{
		"employee_id":    r.EmployeeID,
		"leave_type_id":  r.LeaveTypeID,
		"start_date":     r.StartDate,
		"end_date":       r.EndDate,
		"days_requested": r.DaysRequested,
		"status":         status,
	}
	putString(f, "reason", r.Reason)
	return f
}

func (h *leaveRequestHandlers) create(c *gin.Context) {
	var req leaveRequestCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	if req.EndDate.Before(req.StartDate) {
		respondBadRequest(c, "end_date must not be before start_date")
		return
	}
	request, err := h.requests.Create(c.Request.Context(), req.fields(), nil)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, request)
}

func (h *leaveRequestHandlers) list(c *gin.Context) {
	page := pageRequest(c)
	filters := crm.Filters{}
	intFilter(c, filters, "employee_id")
	stringFilter(c, filters, "status")

	query := crm.ListQuery{Filters: filters, Skip: page.Skip(), Limit: page.Limit()}
	ctx := c.Request.Context()
	items, err := h.requests.List(ctx, query)
	if err != nil {
		respondError(c, err)
		return
	}
	total, err := h.requests.Count(ctx, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, crm.NewPagedResult(items, total, page))
}

func (h *leaveRequestHandlers) pending(c *gin.Context) {
	items, err := h.requests.Pending(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if items == nil {
		items = []entity.LeaveRequest{}
	}
	c.JSON(http.StatusOK, items)
}

func (h *leaveRequestHandlers) approve(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	uid := currentUserID(c)
	if uid == nil {
		respondBadRequest(c, "X-User-ID header required")
		return
	}
	request, err := h.requests.Approve(c.Request.Context(), id, *uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}
