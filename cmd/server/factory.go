package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	crm "github.com/smdydx/bidua-crm"
	"github.com/smdydx/bidua-crm/entity"
	"github.com/smdydx/bidua-crm/internal/cache"
	"github.com/smdydx/bidua-crm/internal/httpapi"
	"github.com/smdydx/bidua-crm/internal/postgres"
	"github.com/smdydx/bidua-crm/internal/ratelimit"
)

// database is everything the backend needs from the connection pool.
type database interface {
	postgres.DB
	Ping(ctx context.Context) error
}

// newBackend wires one store per entity against the pool, plus the
// optional cache and rate limiter. The database schema is verified
// first so a misconfigured deployment fails at startup instead of on
// the first request.
func newBackend(ctx context.Context, cfg *crm.Config, db database) (*httpapi.Backend, error) {
	if err := verifyTables(ctx, db); err != nil {
		return nil, err
	}

	b := &httpapi.Backend{
		DB:            db,
		Users:         postgres.NewUserStore(db),
		Companies:     postgres.NewCompanyStore(db),
		Contacts:      postgres.NewContactStore(db),
		Leads:         postgres.NewLeadStore(db),
		Deals:         postgres.NewDealStore(db),
		Activities:    postgres.NewActivityStore(db),
		Departments:   postgres.NewDepartmentStore(db),
		Designations:  postgres.NewDesignationStore(db),
		Employees:     postgres.NewEmployeeStore(db),
		LeaveTypes:    postgres.NewLeaveTypeStore(db),
		LeaveRequests: postgres.NewLeaveRequestStore(db),
		Projects:      postgres.NewProjectStore(db),
		Tasks:         postgres.NewTaskStore(db),
	}

	if cfg.Cache.Enabled {
		b.Cache = cache.New(cfg.Cache)
	}
	if cfg.RateLimit.Enabled {
		b.Limiter = ratelimit.New(cfg.RateLimit, cfg.Cache.RedisURL)
	}
	return b, nil
}

// verifyTables checks that every registered entity table exists in the
// public schema.
func verifyTables(ctx context.Context, db database) error {
	reg := crm.NewSchemaRegistry()
	if err := entity.RegisterAll(reg); err != nil {
		return fmt.Errorf("register schemas: %w", err)
	}

	rows, err := db.Query(ctx, `SELECT table_name
FROM information_schema.tables
WHERE table_schema = 'public'
AND table_type = 'BASE TABLE';`)
	if err != nil {
		return fmt.Errorf("failed to list database tables: %w", err)
	}
	defer rows.Close()

	present := map[string]bool{}
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			return fmt.Errorf("failed to scan table name: %w", err)
		}
		present[tableName] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating rows: %w", err)
	}

	var missing []string
	for _, name := range reg.Names() {
		schema, ok := reg.Get(name)
		if !ok {
			continue
		}
		if !present[schema.Table()] {
			missing = append(missing, schema.Table())
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("required tables are missing in the database: %s", strings.Join(missing, ", "))
	}

	zap.S().Infow("database schema verified", "tables", len(reg.Names()))
	return nil
}
