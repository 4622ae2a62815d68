// Package entity defines the CRM/HRMS catalog: one struct per table, string
// enums, and the field descriptor schemas the data-access layer consults.
package entity

// UserRole classifies account permissions.
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleManager  UserRole = "manager"
	RoleEmployee UserRole = "employee"
	RoleHR       UserRole = "hr"
	RoleSales    UserRole = "sales"
	RoleSupport  UserRole = "support"
)

// Valid reports whether the role is one of the known values.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee, RoleHR, RoleSales, RoleSupport:
		return true
	}
	return false
}

// LeadStatus tracks a lead through the pipeline.
type LeadStatus string

const (
	LeadNew         LeadStatus = "new"
	LeadContacted   LeadStatus = "contacted"
	LeadQualified   LeadStatus = "qualified"
	LeadProposal    LeadStatus = "proposal"
	LeadNegotiation LeadStatus = "negotiation"
	LeadClosedWon   LeadStatus = "closed_won"
	LeadClosedLost  LeadStatus = "closed_lost"
)

func (s LeadStatus) Valid() bool {
	switch s {
	case LeadNew, LeadContacted, LeadQualified, LeadProposal, LeadNegotiation, LeadClosedWon, LeadClosedLost:
		return true
	}
	return false
}

// DealStage tracks a deal through the pipeline.
type DealStage string

const (
	DealProspecting DealStage = "prospecting"
	DealDiscovery   DealStage = "discovery"
	DealProposal    DealStage = "proposal"
	DealNegotiation DealStage = "negotiation"
	DealClosedWon   DealStage = "closed_won"
	DealClosedLost  DealStage = "closed_lost"
)

func (s DealStage) Valid() bool {
	switch s {
	case DealProspecting, DealDiscovery, DealProposal, DealNegotiation, DealClosedWon, DealClosedLost:
		return true
	}
	return false
}

// EmployeeStatus tracks employment state.
type EmployeeStatus string

const (
	EmployeeActive     EmployeeStatus = "active"
	EmployeeInactive   EmployeeStatus = "inactive"
	EmployeeTerminated EmployeeStatus = "terminated"
	EmployeeOnLeave    EmployeeStatus = "on_leave"
)

func (s EmployeeStatus) Valid() bool {
	switch s {
	case EmployeeActive, EmployeeInactive, EmployeeTerminated, EmployeeOnLeave:
		return true
	}
	return false
}

// LeaveStatus tracks a leave request through approval.
type LeaveStatus string

const (
	LeavePending   LeaveStatus = "pending"
	LeaveApproved  LeaveStatus = "approved"
	LeaveRejected  LeaveStatus = "rejected"
	LeaveCancelled LeaveStatus = "cancelled"
)

func (s LeaveStatus) Valid() bool {
	switch s {
	case LeavePending, LeaveApproved, LeaveRejected, LeaveCancelled:
		return true
	}
	return false
}

// ProjectStatus tracks project lifecycle.
type ProjectStatus string

const (
	ProjectPlanning  ProjectStatus = "planning"
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on_hold"
	ProjectCompleted ProjectStatus = "completed"
	ProjectCancelled ProjectStatus = "cancelled"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectPlanning, ProjectActive, ProjectOnHold, ProjectCompleted, ProjectCancelled:
		return true
	}
	return false
}

// TaskStatus tracks task lifecycle.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskReview     TaskStatus = "review"
	TaskCompleted  TaskStatus = "completed"
	TaskCancelled  TaskStatus = "cancelled"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskTodo, TaskInProgress, TaskReview, TaskCompleted, TaskCancelled:
		return true
	}
	return false
}
