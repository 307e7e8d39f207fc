package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"

	"campusfind/pkg/errors"
)

const signInEndpoint = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"

type FirebaseAuthClient struct {
	client     *auth.Client
	apiKey     string
	httpClient *http.Client
}

func NewFirebaseAuthClient(client *auth.Client, apiKey string) *FirebaseAuthClient {
	return &FirebaseAuthClient{
		client: client,
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (f *FirebaseAuthClient) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)

	user, err := f.client.CreateUser(ctx, params)
	if err != nil {
		return "", mapAuthError(err)
	}

	return user.UID, nil
}

func (f *FirebaseAuthClient) VerifyToken(ctx context.Context, token string) (string, error) {
	result, err := f.client.VerifyIDToken(ctx, token)
	if err != nil {
		return "", errors.Unauthorized("Invalid or expired token", err)
	}

	return result.UID, nil
}

func (f *FirebaseAuthClient) DeleteUser(ctx context.Context, uid string) error {
	if err := f.client.DeleteUser(ctx, uid); err != nil {
		return mapAuthError(err)
	}
	return nil
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	LocalID      string `json:"localId"`
	ExpiresIn    string `json:"expiresIn"`
}

type signInErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// SignInResult holds the tokens from a password sign-in.
type SignInResult struct {
	UID          string
	IDToken      string
	RefreshToken string
	ExpiresIn    string
}

// SignInWithEmailPassword exchanges credentials for tokens via the Identity
// Toolkit REST API; the Admin SDK has no password verification.
func (f *FirebaseAuthClient) SignInWithEmailPassword(ctx context.Context, email, password string) (*SignInResult, error) {
	body, err := json.Marshal(signInRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	})
	if err != nil {
		return nil, errors.Internal("Failed to build sign-in request", err)
	}

	url := fmt.Sprintf("%s?key=%s", signInEndpoint, f.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Internal("Failed to build sign-in request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, errors.Internal("Failed to reach authentication service", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp signInErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
			return nil, errors.Unauthorized("Sign-in failed", nil)
		}
		return nil, errors.Unauthorized(friendlyAuthMessage(errResp.Error.Message), nil)
	}

	var result signInResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errors.Internal("Failed to parse sign-in response", err)
	}

	return &SignInResult{
		UID:          result.LocalID,
		IDToken:      result.IDToken,
		RefreshToken: result.RefreshToken,
		ExpiresIn:    result.ExpiresIn,
	}, nil
}

func mapAuthError(err error) error {
	switch {
	case auth.IsEmailAlreadyExists(err):
		return errors.Conflict("Email already in use")
	case auth.IsUserNotFound(err):
		return errors.NotFound("User", err)
	default:
		return errors.Internal("Authentication service error", err)
	}
}

// friendlyAuthMessage translates Identity Toolkit error codes into messages
// safe to show end users.
func friendlyAuthMessage(code string) string {
	// Codes may carry a trailing explanation, e.g. "TOO_MANY_ATTEMPTS_TRY_LATER : ...".
	if idx := strings.IndexAny(code, " :"); idx > 0 {
		code = code[:idx]
	}

	switch code {
	case "EMAIL_NOT_FOUND":
		return "No account found with this email"
	case "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS":
		return "Incorrect password"
	case "USER_DISABLED":
		return "This account has been disabled"
	case "EMAIL_EXISTS":
		return "Email already in use"
	case "WEAK_PASSWORD":
		return "Password should be at least 6 characters"
	case "TOO_MANY_ATTEMPTS_TRY_LATER":
		return "Too many attempts, please try again later"
	default:
		return "Sign-in failed"
	}
}
