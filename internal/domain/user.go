package domain

import "time"

// User is a registered account. PasswordHash never holds a plaintext password.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

func (u User) String() string {
	return u.Username
}
