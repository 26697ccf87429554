package repository

import "time"

type Subscription struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
}
