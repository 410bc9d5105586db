package main

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleAdmin        Role = "admin"
	RoleEventPlanner Role = "event_planner"
	RoleUser         Role = "user"
)

type EventStatus string

const (
	EventDraft     EventStatus = "draft"
	EventPlanned   EventStatus = "planned"
	EventActive    EventStatus = "active"
	EventCompleted EventStatus = "completed"
	EventCancelled EventStatus = "cancelled"
)

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in-progress"
	TaskCompleted  TaskStatus = "completed"
	TaskCancelled  TaskStatus = "cancelled"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

type BudgetStatus string

const (
	BudgetPlanned  BudgetStatus = "planned"
	BudgetApproved BudgetStatus = "approved"
	BudgetSpent    BudgetStatus = "spent"
)

type ContractStatus string

const (
	ContractPending   ContractStatus = "pending"
	ContractSigned    ContractStatus = "signed"
	ContractCompleted ContractStatus = "completed"
	ContractCancelled ContractStatus = "cancelled"
)

var (
	roles            = []string{string(RoleAdmin), string(RoleEventPlanner), string(RoleUser)}
	eventStatuses    = []string{string(EventDraft), string(EventPlanned), string(EventActive), string(EventCompleted), string(EventCancelled)}
	taskStatuses     = []string{string(TaskPending), string(TaskInProgress), string(TaskCompleted), string(TaskCancelled)}
	taskPriorities   = []string{string(PriorityLow), string(PriorityMedium), string(PriorityHigh)}
	budgetStatuses   = []string{string(BudgetPlanned), string(BudgetApproved), string(BudgetSpent)}
	contractStatuses = []string{string(ContractPending), string(ContractSigned), string(ContractCompleted), string(ContractCancelled)}
)

// EnumError reports a value outside a closed set. It matches ErrBadRequest.
type EnumError struct {
	Field   string
	Value   string
	Allowed []string
}

func (e *EnumError) Error() string {
	return fmt.Sprintf("%s must be one of: %s (got %q)", e.Field, strings.Join(e.Allowed, ", "), e.Value)
}

func (e *EnumError) Unwrap() error { return ErrBadRequest }

func checkEnum(field, value string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return &EnumError{Field: field, Value: value, Allowed: allowed}
}

func (r Role) Validate() error { return checkEnum("role", string(r), roles) }
func (s EventStatus) Validate() error { return checkEnum("status", string(s), eventStatuses) }
func (s TaskStatus) Validate() error { return checkEnum("status", string(s), taskStatuses) }
func (p TaskPriority) Validate() error { return checkEnum("priority", string(p), taskPriorities) }
func (s BudgetStatus) Validate() error { return checkEnum("status", string(s), budgetStatuses) }
func (s ContractStatus) Validate() error { return checkEnum("contract_status", string(s), contractStatuses) }

type validator interface {
	Validate() error
	empty() bool
}

func (r Role) empty() bool { return r == "" }
func (s EventStatus) empty() bool { return s == "" }
func (s TaskStatus) empty() bool { return s == "" }
func (p TaskPriority) empty() bool { return p == "" }
func (s BudgetStatus) empty() bool { return s == "" }
func (s ContractStatus) empty() bool { return s == "" }

// validateEnums checks every supplied value; an empty one was not supplied.
func validateEnums(values ...validator) error {
	for _, v := range values {
		if v.empty() {
			continue
		}
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}
