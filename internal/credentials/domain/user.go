package domain

import "time"

type User struct {
	ID           int64 // Assigned by the store
	Username     string
	PasswordHash string // argon2id PHC string, or legacy bcrypt
	RoleName     string // Foreign key to roles.role_name
	CreatedAt    time.Time
}
