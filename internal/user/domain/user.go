package domain

import "time"

type ID int64

type User struct {
	ID           ID
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
