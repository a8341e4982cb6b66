package domain

import "time"

// Role is one entry of the registration allow-list. Nothing is enforced on
// behalf of a role beyond storing its name on the user.
type Role struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}
