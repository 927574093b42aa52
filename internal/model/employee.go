package model

// Employee represents an employee in the system.
//
// A zero ID marks a transient record that has not been persisted yet.
type Employee struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// NewEmployee builds a transient employee whose identity will be assigned by the repository.
func NewEmployee(name, role string) Employee {
	return Employee{Name: name, Role: role}
}

// NewEmployeeWithID builds an employee addressed by a caller-supplied id.
func NewEmployeeWithID(id int64, name, role string) Employee {
	return Employee{ID: id, Name: name, Role: role}
}

// IsTransient reports whether the employee has no identity yet.
func (e Employee) IsTransient() bool {
	return e.ID == 0
}

// EmployeePayload is the request body accepted by POST and PUT.
// ID is decoded for compatibility but never authoritative.
type EmployeePayload struct {
	ID   *int64 `json:"id,omitempty"`
	Name string `json:"name"`
	Role string `json:"role"`
}
