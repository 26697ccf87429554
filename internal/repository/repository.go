package repository

import "context"

type SaveSubscriptionInput struct {
	SessionID string
	Email     string
	Phone     string
}

type SubscriptionRepository interface {
	// SaveSubscription stores the subscription once per (session, email,
	// phone). created is false when an identical row already existed.
	SaveSubscription(ctx context.Context, input SaveSubscriptionInput) (sub *Subscription, created bool, err error)
	ListSubscriptionsBySessionID(ctx context.Context, sessionID string) ([]Subscription, error)
}

type Repository interface {
	SubscriptionRepository
	Close()
}
