package models

// Role is the kind of account a system user holds
type Role string

const (
	RoleStudent Role = "Student"
	RoleTeacher Role = "Teacher"
	RoleAdmin   Role = "Admin"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

// Permission is a capability an administrator can grant or revoke
type Permission string

const (
	PermViewDashboard  Permission = "view_dashboard"
	PermMarkAttendance Permission = "mark_attendance"
	PermManageExams    Permission = "manage_exams"
	PermManageFees     Permission = "manage_fees"
	PermManageUsers    Permission = "manage_users"
	PermViewReports    Permission = "view_reports"
	PermMessageParents Permission = "message_parents"
)

// AllPermissions lists every permission the admin screen offers
var AllPermissions = []Permission{
	PermViewDashboard,
	PermMarkAttendance,
	PermManageExams,
	PermManageFees,
	PermManageUsers,
	PermViewReports,
	PermMessageParents,
}

// Valid reports whether p is a known permission
func (p Permission) Valid() bool {
	for _, known := range AllPermissions {
		if p == known {
			return true
		}
	}
	return false
}

// SystemUser is an account managed from the admin dashboard
type SystemUser struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Role        Role         `json:"role"`
	Permissions []Permission `json:"permissions"`
}

// HasPermission checks whether the user currently holds p
func (u *SystemUser) HasPermission(p Permission) bool {
	for _, held := range u.Permissions {
		if held == p {
			return true
		}
	}
	return false
}

// TogglePermission grants p if missing, revokes it otherwise
func (u *SystemUser) TogglePermission(p Permission) {
	for i, held := range u.Permissions {
		if held == p {
			u.Permissions = append(u.Permissions[:i:i], u.Permissions[i+1:]...)
			return
		}
	}
	u.Permissions = append(u.Permissions, p)
}

// Clone returns a copy with its own permission slice
func (u SystemUser) Clone() SystemUser {
	u.Permissions = append([]Permission(nil), u.Permissions...)
	return u
}
