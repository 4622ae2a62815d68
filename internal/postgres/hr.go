package postgres

import (
	"context"
	"time"

	crm "github.com/smdydx/bidua-crm"
	"github.com/smdydx/bidua-crm/entity"
)

// DepartmentStore handles org units.
type DepartmentStore struct {
	*Repository[entity.Department]
}

func NewDepartmentStore(db DB) *DepartmentStore {
	return &DepartmentStore{NewRepository[entity.Department](db, entity.NameDepartment, entity.DepartmentSchema)}
}

func (s *DepartmentStore) GetByName(ctx context.Context, name string) (*entity.Department, error) {
	return s.FindOne(ctx, crm.Filters{"name": name})
}

// DesignationStore handles job titles.
type DesignationStore struct {
	*Repository[entity.Designation]
}

func NewDesignationStore(db DB) *DesignationStore {
	return &DesignationStore{NewRepository[entity.Designation](db, entity.NameDesignation, entity.DesignationSchema)}
}

func (s *DesignationStore) GetByDepartment(ctx context.Context, departmentID int64) ([]entity.Designation, error) {
	return s.List(ctx, crm.ListQuery{Filters: crm.Filters{"department_id": departmentID}})
}

// EmployeeStore handles HR records.
type EmployeeStore struct {
	*Repository[entity.Employee]
}

func NewEmployeeStore(db DB) *EmployeeStore {
	return &EmployeeStore{NewRepository[entity.Employee](db, entity.NameEmployee, entity.EmployeeSchema)}
}

// GetByEmployeeID looks up by the human-assigned code, not the row id.
func (s *EmployeeStore) GetByEmployeeID(ctx context.Context, code string) (*entity.Employee, error) {
	return s.FindOne(ctx, crm.Filters{"employee_id": code})
}

func (s *EmployeeStore) GetByDepartment(ctx context.Context, departmentID int64) ([]entity.Employee, error) {
	return s.List(ctx, crm.ListQuery{Filters: crm.Filters{"department_id": departmentID}})
}

func (s *EmployeeStore) GetByManager(ctx context.Context, managerID int64) ([]entity.Employee, error) {
	return s.List(ctx, crm.ListQuery{Filters: crm.Filters{"manager_id": managerID}})
}

// LeaveTypeStore handles leave categories; the generic operations cover it.
type LeaveTypeStore struct {
	*Repository[entity.LeaveType]
}

func NewLeaveTypeStore(db DB) *LeaveTypeStore {
	return &LeaveTypeStore{NewRepository[entity.LeaveType](db, entity.NameLeaveType, entity.LeaveTypeSchema)}
}

// LeaveRequestStore handles time-off requests and their approval.
type LeaveRequestStore struct {
	*Repository[entity.LeaveRequest]
}

func NewLeaveRequestStore(db DB) *LeaveRequestStore {
	return &LeaveRequestStore{NewRepository[entity.LeaveRequest](db, entity.NameLeaveRequest, entity.LeaveRequestSchema)}
}

func (s *LeaveRequestStore) GetByEmployee(ctx context.Context, employeeID int64) ([]entity.LeaveRequest, error) {
	return s.List(ctx, crm.ListQuery{Filters: crm.Filters{"employee_id": employeeID}})
}

func (s *LeaveRequestStore) Pending(ctx context.Context) ([]entity.LeaveRequest, error) {
	return s.List(ctx, crm.ListQuery{Filters: crm.Filters{"status": string(entity.LeavePending)}})
}

// Approve stamps the reviewer and approval time on the request. A missing
// request is a not-found error.
func (s *LeaveRequestStore) Approve(ctx context.Context, id, approverID int64) (*entity.LeaveRequest, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, crm.NewNotFoundError(entity.NameLeaveRequest, id)
	}
	return s.Update(ctx, current, map[string]any{
		"status":         string(entity.LeaveApproved),
		"approved_by_id": approverID,
		"approval_date":  time.Now().UTC(),
	})
}
