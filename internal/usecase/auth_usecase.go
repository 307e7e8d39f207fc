package usecase

import (
	"context"
	"log"
	"time"

	"campusfind/internal/domain/entity"
	"campusfind/internal/domain/repository"
	"campusfind/pkg/errors"
)

type AuthUseCase struct {
	userRepo     repository.UserRepository
	firebaseAuth FirebaseAuthClient
}

func NewAuthUseCase(userRepo repository.UserRepository, firebaseAuth FirebaseAuthClient) *AuthUseCase {
	return &AuthUseCase{
		userRepo:     userRepo,
		firebaseAuth: firebaseAuth,
	}
}

type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
	Phone       string
}

type AuthResult struct {
	User         *entity.User
	Token        string
	RefreshToken string
}

func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	existingUser, err := uc.userRepo.GetByEmail(ctx, input.Email)
	if err == nil && existingUser != nil {
		return nil, errors.Conflict("Email already in use")
	}

	uid, err := uc.firebaseAuth.CreateUser(ctx, input.Email, input.Password, input.DisplayName)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:                  uid,
		Email:               input.Email,
		DisplayName:         input.DisplayName,
		Phone:               input.Phone,
		Role:                entity.RoleUser,
		UnreadNotifications: []string{},
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		// Roll the auth account back so a retry with the same email works.
		if delErr := uc.firebaseAuth.DeleteUser(ctx, uid); delErr != nil {
			log.Printf("Register: failed to clean up auth user %s: %v", uid, delErr)
		}
		return nil, errors.Internal("Failed to create user record", err)
	}

	signIn, err := uc.firebaseAuth.SignInWithEmailPassword(ctx, input.Email, input.Password)
	if err != nil {
		return nil, errors.Internal("Failed to generate authentication token", err)
	}

	return &AuthResult{
		User:         user,
		Token:        signIn.IDToken,
		RefreshToken: signIn.RefreshToken,
	}, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	signIn, err := uc.firebaseAuth.SignInWithEmailPassword(ctx, email, password)
	if err != nil {
		log.Printf("Login failed for %s: %v", email, err)
		return nil, err
	}

	user, err := uc.userRepo.GetByID(ctx, signIn.UID)
	if err != nil {
		log.Printf("Login: user document missing for uid %s: %v", signIn.UID, err)
		return nil, errors.NotFound("User", err)
	}

	return &AuthResult{
		User:         user,
		Token:        signIn.IDToken,
		RefreshToken: signIn.RefreshToken,
	}, nil
}

func (uc *AuthUseCase) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user, nil
}

type UpdateProfileInput struct {
	DisplayName string
	Phone       string
}

func (uc *AuthUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != "" {
		user.DisplayName = input.DisplayName
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
