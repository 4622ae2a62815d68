package entity

import (
	"time"

	crm "github.com/smdydx/bidua-crm"
)

// Company is an organization tracked in the CRM.
type Company struct {
	ID            int64      `db:"id" json:"id"`
	Name          string     `db:"name" json:"name"`
	Industry      *string    `db:"industry" json:"industry"`
	Size          *string    `db:"size" json:"size"`
	Website       *string    `db:"website" json:"website"`
	Phone         *string    `db:"phone" json:"phone"`
	Email         *string    `db:"email" json:"email"`
	Address       *string    `db:"address" json:"address"`
	City          *string    `db:"city" json:"city"`
	State         *string    `db:"state" json:"state"`
	Country       *string    `db:"country" json:"country"`
	PostalCode    *string    `db:"postal_code" json:"postal_code"`
	AnnualRevenue *float64   `db:"annual_revenue" json:"annual_revenue"`
	EmployeeCount *int       `db:"employee_count" json:"employee_count"`
	Description   *string    `db:"description" json:"description"`
	IsActive      bool       `db:"is_active" json:"is_active"`
	Tags          *string    `db:"tags" json:"tags"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     *time.Time `db:"updated_at" json:"updated_at"`
}

func (c Company) EntityID() int64 { return c.ID }

// CompanySchema describes the companies table.
var CompanySchema = crm.MustSchema("companies", crm.Fields{
	"id":             crm.FieldBigInt,
	"name":           crm.FieldText,
	"industry":       crm.FieldText,
	"size":           crm.FieldText,
	"website":        crm.FieldText,
	"phone":          crm.FieldText,
	"email":          crm.FieldText,
	"address":        crm.FieldText,
	"city":           crm.FieldText,
	"state":          crm.FieldText,
	"country":        crm.FieldText,
	"postal_code":    crm.FieldText,
	"annual_revenue": crm.FieldFloat,
	"employee_count": crm.FieldInt,
	"description":    crm.FieldText,
	"is_active":      crm.FieldBool,
	"tags":           crm.FieldText,
	"created_at":     crm.FieldTimestamp,
	"updated_at":     crm.FieldTimestamp,
})

// Contact is a person attached to a company.
type Contact struct {
	ID         int64      `db:"id" json:"id"`
	CompanyID  *int64     `db:"company_id" json:"company_id"`
	FirstName  string     `db:"first_name" json:"first_name"`
	LastName   string     `db:"last_name" json:"last_name"`
	Email      *string    `db:"email" json:"email"`
	Phone      *string    `db:"phone" json:"phone"`
	Mobile     *string    `db:"mobile" json:"mobile"`
	JobTitle   *string    `db:"job_title" json:"job_title"`
	Department *string    `db:"department" json:"department"`
	IsPrimary  bool       `db:"is_primary" json:"is_primary"`
	IsActive   bool       `db:"is_active" json:"is_active"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  *time.Time `db:"updated_at" json:"updated_at"`
}

func (c Contact) EntityID() int64 { return c.ID }

// ContactSchema describes the contacts table.
var ContactSchema = crm.MustSchema("contacts", crm.Fields{
	"id":         crm.FieldBigInt,
	"company_id": crm.FieldBigInt,
	"first_name": crm.FieldText,
	"last_name":  crm.FieldText,
	"email":      crm.FieldText,
	"phone":      crm.FieldText,
	"mobile":     crm.FieldText,
	"job_title":  crm.FieldText,
	"department": crm.FieldText,
	"is_primary": crm.FieldBool,
	"is_active":  crm.FieldBool,
	"created_at": crm.FieldTimestamp,
	"updated_at": crm.FieldTimestamp,
})

// Lead is a potential sale that has not become a deal yet.
type Lead struct {
	ID                int64      `db:"id" json:"id"`
	Title             string     `db:"title" json:"title"`
	CompanyID         *int64     `db:"company_id" json:"company_id"`
	ContactID         *int64     `db:"contact_id" json:"contact_id"`
	Source            *string    `db:"source" json:"source"`
	Status            LeadStatus `db:"status" json:"status"`
	EstimatedValue    *float64   `db:"estimated_value" json:"estimated_value"`
	Probability       int        `db:"probability" json:"probability"`
	ExpectedCloseDate *time.Time `db:"expected_close_date" json:"expected_close_date"`
	CreatedByID       *int64     `db:"created_by_id" json:"created_by_id"`
	AssignedToID      *int64     `db:"assigned_to_id" json:"assigned_to_id"`
	Description       *string    `db:"description" json:"description"`
	Notes             *string    `db:"notes" json:"notes"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt         *time.Time `db:"updated_at" json:"updated_at"`
}

func (l Lead) EntityID() int64 { return l.ID }

// LeadSchema describes the leads table.
var LeadSchema = crm.MustSchema("leads", crm.Fields{
	"id":                  crm.FieldBigInt,
	"title":               crm.FieldText,
	"company_id":          crm.FieldBigInt,
	"contact_id":          crm.FieldBigInt,
	"source":              crm.FieldText,
	"status":              crm.FieldText,
	"estimated_value":     crm.FieldFloat,
	"probability":         crm.FieldInt,
	"expected_close_date": crm.FieldDate,
	"created_by_id":       crm.FieldBigInt,
	"assigned_to_id":      crm.FieldBigInt,
	"description":         crm.FieldText,
	"notes":               crm.FieldText,
	"created_at":          crm.FieldTimestamp,
	"updated_at":          crm.FieldTimestamp,
})

// Deal is a qualified opportunity with a monetary value. Ownership lives in
// owner_id; deals carry no created_by_id.
type Deal struct {
	ID                int64      `db:"id" json:"id"`
	Title             string     `db:"title" json:"title"`
	CompanyID         *int64     `db:"company_id" json:"company_id"`
	ContactID         *int64     `db:"contact_id" json:"contact_id"`
	LeadID            *int64     `db:"lead_id" json:"lead_id"`
	Stage             DealStage  `db:"stage" json:"stage"`
	Value             float64    `db:"value" json:"value"`
	Probability       int        `db:"probability" json:"probability"`
	ExpectedCloseDate *time.Time `db:"expected_close_date" json:"expected_close_date"`
	ActualCloseDate   *time.Time `db:"actual_close_date" json:"actual_close_date"`
	OwnerID           *int64     `db:"owner_id" json:"owner_id"`
	Description       *string    `db:"description" json:"description"`
	Notes             *string    `db:"notes" json:"notes"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt         *time.Time `db:"updated_at" json:"updated_at"`
}

func (d Deal) EntityID() int64 { return d.ID }

// DealSchema describes the deals table.
var DealSchema = crm.MustSchema("deals", crm.Fields{
	"id":                  crm.FieldBigInt,
	"title":               crm.FieldText,
	"company_id":          crm.FieldBigInt,
	"contact_id":          crm.FieldBigInt,
	"lead_id":             crm.FieldBigInt,
	"stage":               crm.FieldText,
	"value":               crm.FieldFloat,
	"probability":         crm.FieldInt,
	"expected_close_date": crm.FieldDate,
	"actual_close_date":   crm.FieldDate,
	"owner_id":            crm.FieldBigInt,
	"description":         crm.FieldText,
	"notes":               crm.FieldText,
	"created_at":          crm.FieldTimestamp,
	"updated_at":          crm.FieldTimestamp,
})

// Activity is a call, meeting, email, or task logged against a lead or deal.
type Activity struct {
	ID              int64      `db:"id" json:"id"`
	Type            string     `db:"type" json:"type"`
	Subject         string     `db:"subject" json:"subject"`
	Description     *string    `db:"description" json:"description"`
	LeadID          *int64     `db:"lead_id" json:"lead_id"`
	DealID          *int64     `db:"deal_id" json:"deal_id"`
	ContactID       *int64     `db:"contact_id" json:"contact_id"`
	ScheduledAt     *time.Time `db:"scheduled_at" json:"scheduled_at"`
	DurationMinutes *int       `db:"duration_minutes" json:"duration_minutes"`
	IsCompleted     bool       `db:"is_completed" json:"is_completed"`
	AssignedToID    *int64     `db:"assigned_to_id" json:"assigned_to_id"`
	CreatedByID     *int64     `db:"created_by_id" json:"created_by_id"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       *time.Time `db:"updated_at" json:"updated_at"`
}

func (a Activity) EntityID() int64 { return a.ID }

// ActivitySchema describes the activities table.
var ActivitySchema = crm.MustSchema("activities", crm.Fields{
	"id":               crm.FieldBigInt,
	"type":             crm.FieldText,
	"subject":          crm.FieldText,
	"description":      crm.FieldText,
	"lead_id":          crm.FieldBigInt,
	"deal_id":          crm.FieldBigInt,
	"contact_id":       crm.FieldBigInt,
	"scheduled_at":     crm.FieldTimestamp,
	"duration_minutes": crm.FieldInt,
	"is_completed":     crm.FieldBool,
	"assigned_to_id":   crm.FieldBigInt,
	"created_by_id":    crm.FieldBigInt,
	"created_at":       crm.FieldTimestamp,
	"updated_at":       crm.FieldTimestamp,
})
