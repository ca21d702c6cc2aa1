package models

// RoleAdmin grants access to project/user management and the full timesheet grid.
const RoleAdmin = "admin"

// RoleEmployee is the default role; employees submit and view their own entries.
const RoleEmployee = "employee"

// User is one record of the users collection. The password is stored verbatim
// for compatibility with existing users.json files; it is never serialized in
// API responses.
type User struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	Email    string   `json:"email"`
	Projects []string `json:"projects"`
	Role     string   `json:"role,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Public returns a copy safe to serialize in API responses (password blanked).
func (u User) Public() User {
	u.Password = ""
	return u
}
