package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	crm "github.com/smdydx/bidua-crm"
	"github.com/smdydx/bidua-crm/entity"
)

// CompanyStore handles organizations.
type CompanyStore struct {
	*Repository[entity.Company]
}

func NewCompanyStore(db DB) *CompanyStore {
	return &CompanyStore{NewRepository[entity.Company](db, entity.NameCompany, entity.CompanySchema)}
}

func (s *CompanyStore) GetByName(ctx context.Context, name string) (*entity.Company, error) {
	return s.FindOne(ctx, crm.Filters{"name": name})
}

// SearchCompanies matches term against name, industry, and description.
// industry is not a generic search candidate, so the statement carries its
// own column list.
func (s *CompanyStore) SearchCompanies(ctx context.Context, term string, skip, limit int) ([]entity.Company, error) {
	q := crm.ListQuery{Skip: skip, Limit: limit}.Normalize()
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE (name ILIKE '%%' || $1 || '%%' OR industry ILIKE '%%' || $1 || '%%' OR description ILIKE '%%' || $1 || '%%') ORDER BY id DESC LIMIT $2 OFFSET $3",
		strings.Join(s.schema.Columns(), ", "), s.schema.Table(),
	)
	return s.queryRows(ctx, "search", query, term, q.Limit, q.Skip)
}

// ContactStore handles people attached to companies.
type ContactStore struct {
	*Repository[entity.Contact]
}

func NewContactStore(db DB) *ContactStore {
	return &ContactStore{NewRepository[entity.Contact](db, entity.NameContact, entity.ContactSchema)}
}

func (s *ContactStore) GetByCompany(ctx context.Context, companyID int64) ([]entity.Contact, error) {
	return s.List(ctx, crm.ListQuery{Filters: crm.Filters{"company_id": companyID}})
}

// GetPrimaryContact returns the contact flagged primary for the company,
// or nil when none is flagged.
func (s *ContactStore) GetPrimaryContact(ctx context.Context, companyID int64) (*entity.Contact, error) {
	return s.FindOne(ctx, crm.Filters{"company_id": companyID, "is_primary": true})
}

// LeadStore handles unqualified pipeline entries.
type LeadStore struct {
	*Repository[entity.Lead]
}

func NewLeadStore(db DB) *LeadStore {
	return &LeadStore{NewRepository[entity.Lead](db, entity.NameLead, entity.LeadSchema)}
}

func (s *LeadStore) GetByStatus(ctx context.Context, status entity.LeadStatus) ([]entity.Lead, error) {
	return s.List(ctx, crm.ListQuery{Filters: crm.Filters{"status": string(status)}})
}

func (s *LeadStore) GetByAssignedUser(ctx context.Context, userID int64) ([]entity.Lead, error) {
	return s.List(ctx, crm.ListQuery{Filters: crm.Filters{"assigned_to_id": userID}})
}

// DealStore handles qualified opportunities.
type DealStore struct {
	*Repository[entity.Deal]
}

func NewDealStore(db DB) *DealStore {
	return &DealStore{NewRepository[entity.Deal](db, entity.NameDeal, entity.DealSchema)}
}

func (s *DealStore) GetByStage(ctx context.Context, stage entity.DealStage) ([]entity.Deal, error) {
	return s.List(ctx, crm.ListQuery{Filters: crm.Filters{"stage": string(stage)}})
}

func (s *DealStore) GetByOwner(ctx context.Context, ownerID int64) ([]entity.Deal, error) {
	return s.List(ctx, crm.ListQuery{Filters: crm.Filters{"owner_id": ownerID}})
}

// RevenueByStage sums deal value per stage across the whole table. Stages
// with no deals are absent from the result.
func (s *DealStore) RevenueByStage(ctx context.Context) (map[entity.DealStage]float64, error) {
	query := fmt.Sprintf("SELECT stage, COALESCE(SUM(value), 0) FROM %s GROUP BY stage", s.schema.Table())

	start := time.Now()
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, crm.NewStorageError(s.entity, "aggregate revenue", err)
	}
	defer rows.Close()

	revenue := make(map[entity.DealStage]float64)
	for rows.Next() {
		var stage entity.DealStage
		var total float64
		if err := rows.Scan(&stage, &total); err != nil {
			return nil, crm.NewStorageError(s.entity, "aggregate revenue", err)
		}
		revenue[stage] = total
	}
	if err := rows.Err(); err != nil {
		return nil, crm.NewStorageError(s.entity, "aggregate revenue", err)
	}
	emitQuery(ctx, "revenue_by_stage", s.entity, time.Since(start), len(revenue))
	return revenue, nil
}

// ActivityStore handles calls, meetings, and follow-ups.
type ActivityStore struct {
	*Repository[entity.Activity]
}

func NewActivityStore(db DB) *ActivityStore {
	return &ActivityStore{NewRepository[entity.Activity](db, entity.NameActivity, entity.ActivitySchema)}
}

func (s *ActivityStore) GetByLead(ctx context.Context, leadID int64) ([]entity.Activity, error) {
	return s.List(ctx, crm.ListQuery{Filters: crm.Filters{"lead_id": leadID}})
}

func (s *ActivityStore) GetByDeal(ctx context.Context, dealID int64) ([]entity.Activity, error) {
	return s.List(ctx, crm.ListQuery{Filters: crm.Filters{"deal_id": dealID}})
}

// Upcoming lists the user's incomplete activities scheduled in the future,
// soonest first.
func (s *ActivityStore) Upcoming(ctx context.Context, userID int64) ([]entity.Activity, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE assigned_to_id = $1 AND scheduled_at > now() AND NOT is_completed ORDER BY scheduled_at",
		strings.Join(s.schema.Columns(), ", "), s.schema.Table(),
	)
	return s.queryRows(ctx, "upcoming", query, userID)
}
