package dto

import "time"

// User is the public form of a user. The password hash has no field here.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

type AuthResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
