package employee

import "go-empedge/internal/validation"

type CreateEmployeeRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Position string `json:"position" binding:"required"`
	Contact  string `json:"contact" binding:"required"`
}

type UpdateEmployeeRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Position string `json:"position" binding:"required"`
	Contact  string `json:"contact" binding:"required"`
}

type EmployeeResponse struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Position string `json:"position"`
	Contact  string `json:"contact"`
}

func (r CreateEmployeeRequest) draft() validation.Draft {
	return validation.Draft{Name: r.Name, Email: r.Email, Position: r.Position, Contact: r.Contact}
}

func (r UpdateEmployeeRequest) draft() validation.Draft {
	return validation.Draft{Name: r.Name, Email: r.Email, Position: r.Position, Contact: r.Contact}
}
