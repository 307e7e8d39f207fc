package usecase

import (
	"context"

	"campusfind/internal/infrastructure/firebase"
)

type FirebaseAuthClient interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	VerifyToken(ctx context.Context, token string) (string, error)
	DeleteUser(ctx context.Context, uid string) error
	SignInWithEmailPassword(ctx context.Context, email, password string) (*firebase.SignInResult, error)
}

type AssistantClient interface {
	Chat(ctx context.Context, prompt string) (string, error)
}
