package models

// User is an operator of the bookkeeping system.
type User struct {
	UserID       string `db:"user_id"`
	Username     string `db:"username"`
	FullName     string `db:"full_name"`
	PasswordHash string `db:"password_hash"`
	Role         string `db:"role"`
	IsActive     bool   `db:"is_active"`
	AuditFields
}
