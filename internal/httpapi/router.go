// Package httpapi exposes the CRM and HR stores over a versioned REST
// surface. Handlers stay thin: bind, run the store operation, translate
// the result. Cross-cutting behavior lives in middleware.
package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	crm "github.com/smdydx/bidua-crm"
	"github.com/smdydx/bidua-crm/internal/cache"
	"github.com/smdydx/bidua-crm/internal/postgres"
	"github.com/smdydx/bidua-crm/internal/ratelimit"
)

// Pinger reports database liveness for the health endpoint. Both
// *pgxpool.Pool and the mock pools used in tests satisfy it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Backend bundles everything the router serves: one store per entity,
// plus the optional cache and rate limiter. Nil Cache or Limiter simply
// leaves the corresponding middleware out of the chain.
type Backend struct {
	DB Pinger

	Users         *postgres.UserStore
	Companies     *postgres.CompanyStore
	Contacts      *postgres.ContactStore
	Leads         *postgres.LeadStore
	Deals         *postgres.DealStore
	Activities    *postgres.ActivityStore
	Departments   *postgres.DepartmentStore
	Designations  *postgres.DesignationStore
	Employees     *postgres.EmployeeStore
	LeaveTypes    *postgres.LeaveTypeStore
	LeaveRequests *postgres.LeaveRequestStore
	Projects      *postgres.ProjectStore
	Tasks         *postgres.TaskStore

	Cache   cache.Cache
	Limiter ratelimit.Limiter
}

// NewRouter builds the full handler chain and mounts every resource
// under /api/v1.
func NewRouter(cfg *crm.Config, b *Backend) *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(nil); err != nil {
		zap.S().Warnw("failed to clear trusted proxies", "error", err)
	}

	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger())
	r.Use(SecurityHeaders())
	r.Use(corsMiddleware(cfg.Server.AllowedOrigins))
	r.Use(Identity())
	if cfg.RateLimit.Enabled && b.Limiter != nil {
		r.Use(RateLimit(b.Limiter))
	}
	if cfg.Cache.Enabled && b.Cache != nil {
		r.Use(ResponseCache(b.Cache, cfg.Cache.KeyPrefix, cfg.Cache.TTL))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Route not found",
			"detail":  c.Request.URL.Path,
			"success": false,
		})
	})

	r.GET("/health", healthHandler(b.DB))

	api := r.Group("/api/v1")
	mountUsers(api, b.Users)
	mountCompanies(api, b.Companies)
	mountContacts(api, b.Contacts)
	mountLeads(api, b.Leads)
	mountDeals(api, b.Deals)
	mountActivities(api, b.Activities)
	mountDepartments(api, b.Departments)
	mountDesignations(api, b.Designations)
	mountEmployees(api, b.Employees)
	mountLeaveTypes(api, b.LeaveTypes)
	mountLeaveRequests(api, b.LeaveRequests)
	mountProjects(api, b.Projects)
	mountTasks(api, b.Tasks)

	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", requestIDHeader, identityHeader)
	return cors.New(cfg)
}

func healthHandler(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "disconnected",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"database": "connected",
		})
	}
}
