package domain

// UserRole determines what a user may do at the API boundary. The ledger core
// itself does not enforce role policy; handlers do.
type UserRole string

const (
	RoleOwner           UserRole = "owner"
	RoleAdminAccounting UserRole = "admin_accounting"
	RoleStaff           UserRole = "staff"
	RoleViewer          UserRole = "viewer"
)

// User is an operator of the bookkeeping system.
type User struct {
	UserID       string   `json:"userID"` // Primary key (UUID)
	Username     string   `json:"username"`
	FullName     string   `json:"fullName"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	IsActive     bool     `json:"isActive"`
	AuditFields
}
