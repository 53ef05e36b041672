package model

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
)

// Identity is the acting user of a request, taken from the verified session token.
// Rows that reference a user store a snapshot of ID and Name, never a live reference.
type Identity struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}

func (i Identity) IsTeacher() bool {
	return i.Role == Teacher
}
