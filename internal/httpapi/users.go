package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	crm "github.com/smdydx/bidua-crm"
	"github.com/smdydx/bidua-crm/entity"
	"github.com/smdydx/bidua-crm/internal/postgres"
)

type userHandlers struct {
	users *postgres.UserStore
}

func mountUsers(rg *gin.RouterGroup, users *postgres.UserStore) {
	h := &userHandlers{users: users}
	g := rg.Group("/users")
	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)
}

type userCreateRequest struct {
	Username  string  `json:"username" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required"`
	FirstName string  `json:"first_name" binding:"required"`
	LastName  string  `json:"last_name" binding:"required"`
	Phone     *string `json:"phone"`
	Role      string  `json:"role" binding:"omitempty,oneof=admin manager employee hr sales support"`
	IsActive  *bool   `json:"is_active"`
}

func (r userCreateRequest) fields() map[string]any {
	role := r.Role
	if role == "" {
		role = string(entity.RoleEmployee)
	}
	f := map[string]any{
		"username":   r.Username,
		"email":      r.Email,
		"first_name": r.FirstName,
		"last_name":  r.LastName,
		"role":       role,
	}
	if r.Phone != nil {
		f["phone"] = *r.Phone
	}
	if r.IsActive != nil {
		f["is_active"] = *r.IsActive
	}
	return f
}

type userUpdateRequest struct {
	Email     *string `json:"email" binding:"omitempty,email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	Role      *string `json:"role" binding:"omitempty,oneof=admin manager employee hr sales support"`
	IsActive  *bool   `json:"is_active"`
}

func (r userUpdateRequest) changes() map[string]any {
	f := map[string]any{}
	if r.Email != nil {
		f["email"] = *r.Email
	}
	if r.FirstName != nil {
		f["first_name"] = *r.FirstName
	}
	if r.LastName != nil {
		f["last_name"] = *r.LastName
	}
	if r.Phone != nil {
		f["phone"] = *r.Phone
	}
	if r.Role != nil {
		f["role"] = *r.Role
	}
	if r.IsActive != nil {
		f["is_active"] = *r.IsActive
	}
	return f
}

func (h *userHandlers) create(c *gin.Context) {
	var req userCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	ctx := c.Request.Context()

	existing, err := h.users.GetByEmail(ctx, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	if existing != nil {
		respondConflict(c, "Email already registered")
		return
	}
	existing, err = h.users.GetByUsername(ctx, req.Username)
	if err != nil {
		respondError(c, err)
		return
	}
	if existing != nil {
		respondConflict(c, "Username already taken")
		return
	}

	user, err := h.users.CreateWithPassword(ctx, req.fields(), req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *userHandlers) list(c *gin.Context) {
	page := pageRequest(c)
	filters := crm.Filters{}
	stringFilter(c, filters, "role")
	boolFilter(c, filters, "is_active")

	query := crm.ListQuery{Filters: filters, Skip: page.Skip(), Limit: page.Limit()}
	ctx := c.Request.Context()
	items, err := h.users.List(ctx, query)
	if err != nil {
		respondError(c, err)
		return
	}
	total, err := h.users.Count(ctx, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, crm.NewPagedResult(items, total, page))
}

func (h *userHandlers) get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil {
		respondNotFound(c, "User not found")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *userHandlers) update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req userUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	ctx := c.Request.Context()

	current, err := h.users.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if current == nil {
		respondNotFound(c, "User not found")
		return
	}
	if req.Email != nil && *req.Email != current.Email {
		existing, err := h.users.GetByEmail(ctx, *req.Email)
		if err != nil {
			respondError(c, err)
			return
		}
		if existing != nil {
			respondConflict(c, "Email already registered")
			return
		}
	}

	user, err := h.users.Update(ctx, current, req.changes())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *userHandlers) remove(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	user, err := h.users.SoftDelete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil {
		respondNotFound(c, "User not found")
		return
	}
	respondDeleted(c, "User deleted successfully")
}
