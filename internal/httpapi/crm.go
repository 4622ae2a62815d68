package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	crm "github.com/smdydx/bidua-crm"
	"github.com/smdydx/bidua-crm/entity"
	"github.com/smdydx/bidua-crm/internal/postgres"
)

type companyHandlers struct {
	companies *postgres.CompanyStore
}

func mountCompanies(rg *gin.RouterGroup, companies *postgres.CompanyStore) {
	h := &companyHandlers{companies: companies}
	g := rg.Group("/companies")
	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)
}

type companyCreateRequest struct {
	Name          string   `json:"name" binding:"required"`
	Industry      *string  `json:"industry"`
	Size          *string  `json:"size"`
	Website       *string  `json:"website"`
	Phone         *string  `json:"phone"`
	Email         *string  `json:"email" binding:"omitempty,email"`
	Address       *string  `json:"address"`
	City          *string  `json:"city"`
	State         *string  `json:"state"`
	Country       *string  `json:"country"`
	PostalCode    *string  `json:"postal_code"`
	AnnualRevenue *float64 `json:"annual_revenue"`
	EmployeeCount *int     `json:"employee_count"`
	Description   *string  `json:"description"`
	IsActive      *bool    `json:"is_active"`
	Tags          *string  `json:"tags"`
}

func (r companyCreateRequest) fields() map[string]any {
	f := map[string]any{"name": r.Name}
	putString(f, "industry", r.Industry)
	putString(f, "size", r.Size)
	putString(f, "website", r.Website)
	putString(f, "phone", r.Phone)
	putString(f, "email", r.Email)
	putString(f, "address", r.Address)
	putString(f, "city", r.City)
	putString(f, "state", r.State)
	putString(f, "country", r.Country)
	putString(f, "postal_code", r.PostalCode)
	putFloat(f, "annual_revenue", r.AnnualRevenue)
	putInt(f, "employee_count", r.EmployeeCount)
	putString(f, "description", r.Description)
	putBool(f, "is_active", r.IsActive)
	putString(f, "tags", r.Tags)
	return f
}

type companyUpdateRequest struct {
	Name          *string  `json:"name"`
	Industry      *string  `json:"industry"`
	Size          *string  `json:"size"`
	Website       *string  `json:"website"`
	Phone         *string  `json:"phone"`
	Email         *string  `json:"email" binding:"omitempty,email"`
	Address       *string  `json:"address"`
	City          *string  `json:"city"`
	State         *string  `json:"state"`
	Country       *string  `json:"country"`
	PostalCode    *string  `json:"postal_code"`
	AnnualRevenue *float64 `json:"annual_revenue"`
	EmployeeCount *int     `json:"employee_count"`
	Description   *string  `json:"description"`
	IsActive      *bool    `json:"is_active"`
	Tags          *string  `json:"tags"`
}

func (r companyUpdateRequest) changes() map[string]any {
	f := map[string]any{}
	putString(f, "name", r.Name)
	putString(f, "industry", r.Industry)
	putString(f, "size", r.Size)
	putString(f, "website", r.Website)
	putString(f, "phone", r.Phone)
	putString(f, "email", r.Email)
	putString(f, "address", r.Address)
	putString(f, "city", r.City)
	putString(f, "state", r.State)
	putString(f, "country", r.Country)
	putString(f, "postal_code", r.PostalCode)
	putFloat(f, "annual_revenue", r.AnnualRevenue)
	putInt(f, "employee_count", r.EmployeeCount)
	putString(f, "description", r.Description)
	putBool(f, "is_active", r.IsActive)
	putString(f, "tags", r.Tags)
	return f
}

func (h *companyHandlers) create(c *gin.Context) {
	var req companyCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	ctx := c.Request.Context()

	existing, err := h.companies.GetByName(ctx, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	if existing != nil {
		respondConflict(c, "Company name already exists")
		return
	}

	company, err := h.companies.Create(ctx, req.fields(), nil)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, company)
}

func (h *companyHandlers) list(c *gin.Context) {
	page := pageRequest(c)
	filters := crm.Filters{}
	stringFilter(c, filters, "industry")
	stringFilter(c, filters, "size")

	query := crm.ListQuery{
		Filters: filters,
		Search:  c.Query("search"),
		Skip:    page.Skip(),
		Limit:   page.Limit(),
	}
	ctx := c.Request.Context()
	items, err := h.companies.List(ctx, query)
	if err != nil {
		respondError(c, err)
		return
	}
	total, err := h.companies.Count(ctx, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, crm.NewPagedResult(items, total, page))
}

func (h *companyHandlers) get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	company, err := h.companies.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if company == nil {
		respondNotFound(c, "Company not found")
		return
	}
	c.JSON(http.StatusOK, company)
}

func (h *companyHandlers) update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req companyUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	ctx := c.Request.Context()

	current, err := h.companies.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if current == nil {
		respondNotFound(c, "Company not found")
		return
	}

	company, err := h.companies.Update(ctx, current, req.changes())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

func (h *companyHandlers) remove(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	company, err := h.companies.SoftDelete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if company == nil {
		respondNotFound(c, "Company not found")
		return
	}
	respondDeleted(c, "Company deleted successfully")
}

type contactHandlers struct {
	contacts *postgres.ContactStore
}

func mountContacts(rg *gin.RouterGroup, contacts *postgres.ContactStore) {
	h := &contactHandlers{contacts: contacts}
	g := rg.Group("/contacts")
	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)
}

type contactCreateRequest struct {
	CompanyID  *int64  `json:"company_id"`
	FirstName  string  `json:"first_name" binding:"required"`
	LastName   string  `json:"last_name" binding:"required"`
	Email      *string `json:"email" binding:"omitempty,email"`
	Phone      *string `json:"phone"`
	Mobile     *string `json:"mobile"`
	JobTitle   *string `json:"job_title"`
	Department *string `json:"department"`
	IsPrimary  *bool   `json:"is_primary"`
	IsActive   *bool   `json:"is_active"`
}

func (r contactCreateRequest) fields() map[string]any {
	f := map[string]any{
		"first_name": r.FirstName,
		"last_name":  r.LastName,
	}
	putInt64(f, "company_id", r.CompanyID)
	putString(f, "email", r.Email)
	putString(f, "phone", r.Phone)
	putString(f, "mobile", r.Mobile)
	putString(f, "job_title", r.JobTitle)
	putString(f, "department", r.Department)
	putBool(f, "is_primary", r.IsPrimary)
	putBool(f, "is_active", r.IsActive)
	return f
}

type contactUpdateRequest struct {
	CompanyID  *int64  `json:"company_id"`
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
	Email      *string `json:"email" binding:"omitempty,email"`
	Phone      *string `json:"phone"`
	Mobile     *string `json:"mobile"`
	JobTitle   *string `json:"job_title"`
	Department *string `json:"department"`
	IsPrimary  *bool   `json:"is_primary"`
	IsActive   *bool   `json:"is_active"`
}

func (r contactUpdateRequest) changes() map[string]any {
	f := map[string]any{}
	putInt64(f, "company_id", r.CompanyID)
	putString(f, "first_name", r.FirstName)
	putString(f, "last_name", r.LastName)
	putString(f, "email", r.Email)
	putString(f, "phone", r.Phone)
	putString(f, "mobile", r.Mobile)
	putString(f, "job_title", r.JobTitle)
	putString(f, "department", r.Department)
	putBool(f, "is_primary", r.IsPrimary)
	putBool(f, "is_active", r.IsActive)
	return f
}

func (h *contactHandlers) create(c *gin.Context) {
	var req contactCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	contact, err := h.contacts.Create(c.Request.Context(), req.fields(), nil)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, contact)
}

func (h *contactHandlers) list(c *gin.Context) {
	page := pageRequest(c)
	filters := crm.Filters{}
	intFilter(c, filters, "company_id")
	boolFilter(c, filters, "is_primary")

	query := crm.ListQuery{Filters: filters, Skip: page.Skip(), Limit: page.Limit()}
	ctx := c.Request.Context()
	items, err := h.contacts.List(ctx, query)
	if err != nil {
		respondError(c, err)
		return
	}
	total, err := h.contacts.Count(ctx, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, crm.NewPagedResult(items, total, page))
}

func (h *contactHandlers) get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	contact, err := h.contacts.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if contact == nil {
		respondNotFound(c, "Contact not found")
		return
	}
	c.JSON(http.StatusOK, contact)
}

func (h *contactHandlers) update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req contactUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	ctx := c.Request.Context()

	current, err := h.contacts.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if current == nil {
		respondNotFound(c, "Contact not found")
		return
	}

	contact, err := h.contacts.Update(ctx, current, req.changes())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

func (h *contactHandlers) remove(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	contact, err := h.contacts.SoftDelete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if contact == nil {
		respondNotFound(c, "Contact not found")
		return
	}
	respondDeleted(c, "Contact deleted successfully")
}

type leadHandlers struct {
	leads *postgres.LeadStore
}

func mountLeads(rg *gin.RouterGroup, leads *postgres.LeadStore) {
	h := &leadHandlers{leads: leads}
	g := rg.Group("/leads")
	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)
}

type leadCreateRequest struct {
	Title             string     `json:"title" binding:"required"`
	CompanyID         *int64     `json:"company_id"`
	ContactID         *int64     `json:"contact_id"`
	Source            *string    `json:"source"`
	Status            string     `json:"status" binding:"omitempty,oneof=new contacted qualified proposal negotiation closed_won closed_lost"`
	EstimatedValue    *float64   `json:"estimated_value"`
	Probability       *int       `json:"probability" binding:"omitempty,min=0,max=100"`
	ExpectedCloseDate *time.Time `json:"expected_close_date"`
	AssignedToID      *int64     `json:"assigned_to_id"`
	Description       *string    `json:"description"`
	Notes             *string    `json:"notes"`
}

func (r leadCreateRequest) fields() map[string]any {
	status := r.Status
	if status == "" {
		status = string(entity.LeadNew)
	}
	f := map[string]any{
		"title":  r.Title,
		"status": status,
	}
	putInt64(f, "company_id", r.CompanyID)
	putInt64(f, "contact_id", r.ContactID)
	putString(f, "source", r.Source)
	putFloat(f, "estimated_value", r.EstimatedValue)
	putInt(f, "probability", r.Probability)
	putTime(f, "expected_close_date", r.ExpectedCloseDate)
	putInt64(f, "assigned_to_id", r.AssignedToID)
	putString(f, "description", r.Description)
	putString(f, "notes", r.Notes)
	return f
}

type leadUpdateRequest struct {
	Title             *string    `json:"title"`
	CompanyID         *int64     `json:"company_id"`
	ContactID         *int64     `json:"contact_id"`
	Source            *string    `json:"source"`
	Status            *string    `json:"status" binding:"omitempty,oneof=new contacted qualified proposal negotiation closed_won closed_lost"`
	EstimatedValue    *float64   `json:"estimated_value"`
	Probability       *int       `json:"probability" binding:"omitempty,min=0,max=100"`
	ExpectedCloseDate *time.Time `json:"expected_close_date"`
	AssignedToID      *int64     `json:"assigned_to_id"`
	Description       *string    `json:"description"`
	Notes             *string    `json:"notes"`
}

func (r leadUpdateRequest) changes() map[string]any {
	f := map[string]any{}
	putString(f, "title", r.Title)
	putInt64(f, "company_id", r.CompanyID)
	putInt64(f, "contact_id", r.ContactID)
	putString(f, "source", r.Source)
	putString(f, "status", r.Status)
	putFloat(f, "estimated_value", r.EstimatedValue)
	putInt(f, "probability", r.Probability)
	putTime(f, "expected_close_date", r.ExpectedCloseDate)
	putInt64(f, "assigned_to_id", r.AssignedToID)
	putString(f, "description", r.Description)
	putString(f, "notes", r.Notes)
	return f
}

func (h *leadHandlers) create(c *gin.Context) {
	var req leadCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	lead, err := h.leads.Create(c.Request.Context(), req.fields(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, lead)
}

func (h *leadHandlers) list(c *gin.Context) {
	page := pageRequest(c)
	filters := crm.Filters{}
	stringFilter(c, filters, "status")
	intFilter(c, filters, "assigned_to_id")

	query := crm.ListQuery{Filters: filters, Skip: page.Skip(), Limit: page.Limit()}
	ctx := c.Request.Context()
	items, err := h.leads.List(ctx, query)
	if err != nil {
		respondError(c, err)
		return
	}
	total, err := h.leads.Count(ctx, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, crm.NewPagedResult(items, total, page))
}

func (h *leadHandlers) get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	lead, err := h.leads.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if lead == nil {
		respondNotFound(c, "Lead not found")
		return
	}
	c.JSON(http.StatusOK, lead)
}

func (h *leadHandlers) update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req leadUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	ctx := c.Request.Context()

	current, err := h.leads.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if current == nil {
		respondNotFound(c, "Lead not found")
		return
	}

	lead, err := h.leads.Update(ctx, current, req.changes())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

func (h *leadHandlers) remove(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	lead, err := h.leads.SoftDelete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if lead == nil {
		respondNotFound(c, "Lead not found")
		return
	}
	respondDeleted(c, "Lead deleted successfully")
}

type dealHandlers struct {
	deals *postgres.DealStore
}

func mountDeals(rg *gin.RouterGroup, deals *postgres.DealStore) {
	h := &dealHandlers{deals: deals}
	g := rg.Group("/deals")
	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/revenue/by-stage", h.revenueByStage)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)
}

type dealCreateRequest struct {
	Title             string     `json:"title" binding:"required"`
	CompanyID         *int64     `json:"company_id"`
	ContactID         *int64     `json:"contact_id"`
	LeadID            *int64     `json:"lead_id"`
	Stage             string     `json:"stage" binding:"omitempty,oneof=prospecting discovery proposal negotiation closed_won closed_lost"`
	Value             *float64   `json:"value" binding:"required"`
	Probability       *int       `json:"probability" binding:"omitempty,min=0,max=100"`
	ExpectedCloseDate *time.Time `json:"expected_close_date"`
	OwnerID           *int64     `json:"owner_id"`
	Description       *string    `json:"description"`
	Notes             *string    `json:"notes"`
}

func (r dealCreateRequest) fields() map[string]any {
	stage := r.Stage
	if stage == "" {
		stage = string(entity.DealProspecting)
	}
	f := map[string]any{
		"title": r.Title,
		"stage": stage,
		"value": *r.Value,
	}
	putInt64(f, "company_id", r.CompanyID)
	putInt64(f, "contact_id", r.ContactID)
	putInt64(f, "lead_id", r.LeadID)
	putInt(f, "probability", r.Probability)
	putTime(f, "expected_close_date", r.ExpectedCloseDate)
	putInt64(f, "owner_id", r.OwnerID)
	putString(f, "description", r.Description)
	putString(f, "notes", r.Notes)
	return f
}

type dealUpdateRequest struct {
	Title             *string    `json:"title"`
	CompanyID         *int64     `json:"company_id"`
	ContactID         *int64     `json:"contact_id"`
	LeadID            *int64     `json:"lead_id"`
	Stage             *string    `json:"stage" binding:"omitempty,oneof=prospecting discovery proposal negotiation closed_won closed_lost"`
	Value             *float64   `json:"value"`
	Probability       *int       `json:"probability" binding:"omitempty,min=0,max=100"`
	ExpectedCloseDate *time.Time `json:"expected_close_date"`
	ActualCloseDate   *time.Time `json:"actual_close_date"`
	OwnerID           *int64     `json:"owner_id"`
	Description       *string    `json:"description"`
	Notes             *string    `json:"notes"`
}

func (r dealUpdateRequest) changes() map[string]any {
	f := map[string]any{}
	putString(f, "title", r.Title)
	putInt64(f, "company_id", r.CompanyID)
	putInt64(f, "contact_id", r.ContactID)
	putInt64(f, "lead_id", r.LeadID)
	putString(f, "stage", r.Stage)
	putFloat(f, "value", r.Value)
	putInt(f, "probability", r.Probability)
	putTime(f, "expected_close_date", r.ExpectedCloseDate)
	putTime(f, "actual_close_date", r.ActualCloseDate)
	putInt64(f, "owner_id", r.OwnerID)
	putString(f, "description", r.Description)
	putString(f, "notes", r.Notes)
	return f
}

func (h *dealHandlers) create(c *gin.Context) {
	var req dealCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	deal, err := h.deals.Create(c.Request.Context(), req.fields(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, deal)
}

func (h *dealHandlers) list(c *gin.Context) {
	page := pageRequest(c)
	filters := crm.Filters{}
	stringFilter(c, filters, "stage")
	intFilter(c, filters, "owner_id")

	query := crm.ListQuery{Filters: filters, Skip: page.Skip(), Limit: page.Limit()}
	ctx := c.Request.Context()
	items, err := h.deals.List(ctx, query)
	if err != nil {
		respondError(c, err)
		return
	}
	total, err := h.deals.Count(ctx, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, crm.NewPagedResult(items, total, page))
}

func (h *dealHandlers) revenueByStage(c *gin.Context) {
	revenue, err := h.deals.RevenueByStage(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, revenue)
}

func (h *dealHandlers) get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	deal, err := h.deals.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if deal == nil {
		respondNotFound(c, "Deal not found")
		return
	}
	c.JSON(http.StatusOK, deal)
}

func (h *dealHandlers) update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req dealUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	ctx := c.Request.Context()

	current, err := h.deals.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if current == nil {
		respondNotFound(c, "Deal not found")
		return
	}

	deal, err := h.deals.Update(ctx, current, req.changes())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, deal)
}

func (h *dealHandlers) remove(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	deal, err := h.deals.SoftDelete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if deal == nil {
		respondNotFound(c, "Deal not found")
		return
	}
	respondDeleted(c, "Deal deleted successfully")
}

type activityHandlers struct {
	activities *postgres.ActivityStore
}

func mountActivities(rg *gin.RouterGroup, activities *postgres.ActivityStore) {
	h := &activityHandlers{activities: activities}
	g := rg.Group("/activities")
	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/upcoming", h.upcoming)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)
}

type activityCreateRequest struct {
	Type            string     `json:"type" binding:"required"`
	Subject         string     `json:"subject" binding:"required"`
	Description     *string    `json:"description"`
	LeadID          *int64     `json:"lead_id"`
	DealID          *int64     `json:"deal_id"`
	ContactID       *int64     `json:"contact_id"`
	ScheduledAt     *time.Time `json:"scheduled_at"`
	DurationMinutes *int       `json:"duration_minutes"`
	IsCompleted     *bool      `json:"is_completed"`
	AssignedToID    *int64     `json:"assigned_to_id"`
}

func (r activityCreateRequest) fields() map[string]any {
	f := map[string]any{
		"type":    r.Type,
		"subject": r.Subject,
	}
	putString(f, "description", r.Description)
	putInt64(f, "lead_id", r.LeadID)
	putInt64(f, "deal_id", r.DealID)
	putInt64(f, "contact_id", r.ContactID)
	putTime(f, "scheduled_at", r.ScheduledAt)
	putInt(f, "duration_minutes", r.DurationMinutes)
	putBool(f, "is_completed", r.IsCompleted)
	putInt64(f, "assigned_to_id", r.AssignedToID)
	return f
}

type activityUpdateRequest struct {
	Type            *string    `json:"type"`
	Subject         *string    `json:"subject"`
	Description     *string    `json:"description"`
	LeadID          *int64     `json:"lead_id"`
	DealID          *int64     `json:"deal_id"`
	ContactID       *int64     `json:"contact_id"`
	ScheduledAt     *time.Time `json:"scheduled_at"`
	DurationMinutes *int       `json:"duration_minutes"`
	IsCompleted     *bool      `json:"is_completed"`
	AssignedToID    *int64     `json:"assigned_to_id"`
}

func (r activityUpdateRequest) changes() map[string]any {
	f := map[string]any{}
	putString(f, "type", r.Type)
	putString(f, "subject", r.Subject)
	putString(f, "description", r.Description)
	putInt64(f, "lead_id", r.LeadID)
	putInt64(f, "deal_id", r.DealID)
	putInt64(f, "contact_id", r.ContactID)
	putTime(f, "scheduled_at", r.ScheduledAt)
	putInt(f, "duration_minutes", r.DurationMinutes)
	putBool(f, "is_completed", r.IsCompleted)
	putInt64(f, "assigned_to_id", r.AssignedToID)
	return f
}

func (h *activityHandlers) create(c *gin.Context) {
	var req activityCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	activity, err := h.activities.Create(c.Request.Context(), req.fields(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, activity)
}

func (h *activityHandlers) list(c *gin.Context) {
	page := pageRequest(c)
	filters := crm.Filters{}
	intFilter(c, filters, "lead_id")
	intFilter(c, filters, "deal_id")
	boolFilter(c, filters, "is_completed")

	query := crm.ListQuery{Filters: filters, Skip: page.Skip(), Limit: page.Limit()}
	ctx := c.Request.Context()
	items, err := h.activities.List(ctx, query)
	if err != nil {
		respondError(c, err)
		return
	}
	total, err := h.activities.Count(ctx, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, crm.NewPagedResult(items, total, page))
}

func (h *activityHandlers) upcoming(c *gin.Context) {
	uid := currentUserID(c)
	if uid == nil {
		respondBadRequest(c, "X-User-ID header required")
		return
	}
	items, err := h.activities.Upcoming(c.Request.Context(), *uid)
	if err != nil {
		respondError(c, err)
		return
	}
	if items == nil {
		items = []entity.Activity{}
	}
	c.JSON(http.StatusOK, items)
}

func (h *activityHandlers) get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	activity, err := h.activities.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if activity == nil {
		respondNotFound(c, "Activity not found")
		return
	}
	c.JSON(http.StatusOK, activity)
}

func (h *activityHandlers) update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req activityUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	ctx := c.Request.Context()

	current, err := h.activities.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if current == nil {
		respondNotFound(c, "Activity not found")
		return
	}

	activity, err := h.activities.Update(ctx, current, req.changes())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, activity)
}

func (h *activityHandlers) remove(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	activity, err := h.activities.SoftDelete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if activity == nil {
		respondNotFound(c, "Activity not found")
		return
	}
	respondDeleted(c, "Activity deleted successfully")
}
