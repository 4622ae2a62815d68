package entity

import (
	"time"

	crm "github.com/smdydx/bidua-crm"
)

// Department groups employees under a manager.
type Department struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description"`
	ManagerID   *int64    `db:"manager_id" json:"manager_id"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

func (d Department) EntityID() int64 { return d.ID }

// DepartmentSchema describes the departments table.
var DepartmentSchema = crm.MustSchema("departments", crm.Fields{
	"id":          crm.FieldBigInt,
	"name":        crm.FieldText,
	"description": crm.FieldText,
	"manager_id":  crm.FieldBigInt,
	"is_active":   crm.FieldBool,
	"created_at":  crm.FieldTimestamp,
})

// Designation is a job title within a department.
type Designation struct {
	ID           int64     `db:"id" json:"id"`
	Title        string    `db:"title" json:"title"`
	DepartmentID *int64    `db:"department_id" json:"department_id"`
	Level        *int      `db:"level" json:"level"`
	Description  *string   `db:"description" json:"description"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

func (d Designation) EntityID() int64 { return d.ID }

// DesignationSchema describes the designations table.
var DesignationSchema = crm.MustSchema("designations", crm.Fields{
	"id":            crm.FieldBigInt,
	"title":         crm.FieldText,
	"department_id": crm.FieldBigInt,
	"level":         crm.FieldInt,
	"description":   crm.FieldText,
	"is_active":     crm.FieldBool,
	"created_at":    crm.FieldTimestamp,
})

// Employee is an HR record; EmployeeID is the human-assigned code, distinct
// from the row id.
type Employee struct {
	ID               int64          `db:"id" json:"id"`
	EmployeeID       string         `db:"employee_id" json:"employee_id"`
	UserID           *int64         `db:"user_id" json:"user_id"`
	DepartmentID     *int64         `db:"department_id" json:"department_id"`
	DesignationID    *int64         `db:"designation_id" json:"designation_id"`
	ManagerID        *int64         `db:"manager_id" json:"manager_id"`
	DateOfBirth      *time.Time     `db:"date_of_birth" json:"date_of_birth"`
	Gender           *string        `db:"gender" json:"gender"`
	Address          *string        `db:"address" json:"address"`
	City             *string        `db:"city" json:"city"`
	State            *string        `db:"state" json:"state"`
	Country          *string        `db:"country" json:"country"`
	PostalCode       *string        `db:"postal_code" json:"postal_code"`
	EmergencyContact *string        `db:"emergency_contact" json:"emergency_contact"`
	EmergencyPhone   *string        `db:"emergency_phone" json:"emergency_phone"`
	HireDate         time.Time      `db:"hire_date" json:"hire_date"`
	ConfirmationDate *time.Time     `db:"confirmation_date" json:"confirmation_date"`
	EmploymentType   *string        `db:"employment_type" json:"employment_type"`
	WorkLocation     *string        `db:"work_location" json:"work_location"`
	Status           EmployeeStatus `db:"status" json:"status"`
	Salary           *float64       `db:"salary" json:"salary"`
	TerminationDate  *time.Time     `db:"termination_date" json:"termination_date"`
	Skills           *string        `db:"skills" json:"skills"`
	ExperienceYears  *int           `db:"experience_years" json:"experience_years"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt        *time.Time     `db:"updated_at" json:"updated_at"`
}

func (e Employee) EntityID() int64 { return e.ID }

// EmployeeSchema describes the employees table.
var EmployeeSchema = crm.MustSchema("employees", crm.Fields{
	"id":                crm.FieldBigInt,
	"employee_id":       crm.FieldText,
	"user_id":           crm.FieldBigInt,
	"department_id":     crm.FieldBigInt,
	"designation_id":    crm.FieldBigInt,
	"manager_id":        crm.FieldBigInt,
	"date_of_birth":     crm.FieldDate,
	"gender":            crm.FieldText,
	"address":           crm.FieldText,
	"city":              crm.FieldText,
	"state":             crm.FieldText,
	"country":           crm.FieldText,
	"postal_code":       crm.FieldText,
	"emergency_contact": crm.FieldText,
	"emergency_phone":   crm.FieldText,
	"hire_date":         crm.FieldDate,
	"confirmation_date": crm.FieldDate,
	"employment_type":   crm.FieldText,
	"work_location":     crm.FieldText,
	"status":            crm.FieldText,
	"salary":            crm.FieldFloat,
	"termination_date":  crm.FieldDate,
	"skills":            crm.FieldText,
	"experience_years":  crm.FieldInt,
	"created_at":        crm.FieldTimestamp,
	"updated_at":        crm.FieldTimestamp,
})

// LeaveType is a leave category (casual, sick, earned).
type LeaveType struct {
	ID               int64   `db:"id" json:"id"`
	Name             string  `db:"name" json:"name"`
	Description      *string `db:"description" json:"description"`
	MaxDaysPerYear   *int    `db:"max_days_per_year" json:"max_days_per_year"`
	IsPaid           bool    `db:"is_paid" json:"is_paid"`
	RequiresApproval bool    `db:"requires_approval" json:"requires_approval"`
	IsActive         bool    `db:"is_active" json:"is_active"`
}

func (l LeaveType) EntityID() int64 { return l.ID }

// LeaveTypeSchema describes the leave_types table.
var LeaveTypeSchema = crm.MustSchema("leave_types", crm.Fields{
	"id":                crm.FieldBigInt,
	"name":              crm.FieldText,
	"description":       crm.FieldText,
	"max_days_per_year": crm.FieldInt,
	"is_paid":           crm.FieldBool,
	"requires_approval": crm.FieldBool,
	"is_active":         crm.FieldBool,
})

// LeaveRequest is an employee's request for time off.
type LeaveRequest struct {
	ID               int64       `db:"id" json:"id"`
	EmployeeID       int64       `db:"employee_id" json:"employee_id"`
	LeaveTypeID      int64       `db:"leave_type_id" json:"leave_type_id"`
	StartDate        time.Time   `db:"start_date" json:"start_date"`
	EndDate          time.Time   `db:"end_date" json:"end_date"`
	DaysRequested    int         `db:"days_requested" json:"days_requested"`
	Reason           *string     `db:"reason" json:"reason"`
	Status           LeaveStatus `db:"status" json:"status"`
	ApprovedByID     *int64      `db:"approved_by_id" json:"approved_by_id"`
	ApprovalDate     *time.Time  `db:"approval_date" json:"approval_date"`
	ApprovalComments *string     `db:"approval_comments" json:"approval_comments"`
	CreatedAt        time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt        *time.Time  `db:"updated_at" json:"updated_at"`
}

func (l LeaveRequest) EntityID() int64 { return l.ID }

// LeaveRequestSchema describes the leave_requests table.
var LeaveRequestSchema = crm.MustSchema("leave_requests", crm.Fields{
	"id":                crm.FieldBigInt,
	"employee_id":       crm.FieldBigInt,
	"leave_type_id":     crm.FieldBigInt,
	"start_date":        crm.FieldDate,
	"end_date":          crm.FieldDate,
	"days_requested":    crm.FieldInt,
	"reason":            crm.FieldText,
	"status":            crm.FieldText,
	"approved_by_id":    crm.FieldBigInt,
	"approval_date":     crm.FieldTimestamp,
	"approval_comments": crm.FieldText,
	"created_at":        crm.FieldTimestamp,
	"updated_at":        crm.FieldTimestamp,
})
