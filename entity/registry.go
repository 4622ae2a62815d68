package entity

import (
	crm "github.com/smdydx/bidua-crm"
)

// Entity names used as registry keys and in error context.
const (
	NameUser         = "user"
	NameDepartment   = "department"
	NameDesignation  = "designation"
	NameEmployee     = "employee"
	NameCompany      = "company"
	NameContact      = "contact"
	NameLead         = "lead"
	NameDeal         = "deal"
	NameActivity     = "activity"
	NameLeaveType    = "leave_type"
	NameLeaveRequest = "leave_request"
	NameProject      = "project"
	NameTask         = "task"
)

// RegisterAll installs every catalog schema into reg. Called once at
// startup; a duplicate registration means the registry was reused.
func RegisterAll(reg *crm.SchemaRegistry) error {
	schemas := map[string]*crm.Schema{
		NameUser:         UserSchema,
		NameDepartment:   DepartmentSchema,
		NameDesignation:  DesignationSchema,
		NameEmployee:     EmployeeSchema,
		NameCompany:      CompanySchema,
		NameContact:      ContactSchema,
		NameLead:         LeadSchema,
		NameDeal:         DealSchema,
		NameActivity:     ActivitySchema,
		NameLeaveType:    LeaveTypeSchema,
		NameLeaveRequest: LeaveRequestSchema,
		NameProject:      ProjectSchema,
		NameTask:         TaskSchema,
	}
	for name, s := range schemas {
		if err := reg.Register(name, s); err != nil {
			return err
		}
	}
	return nil
}
