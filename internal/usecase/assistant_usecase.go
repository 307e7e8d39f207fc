package usecase

import (
	"context"
	"strings"

	"campusfind/internal/infrastructure/ratelimit"
	"campusfind/pkg/errors"
)

// AssistantUseCase fronts the campus help assistant backed by a local LLM.
type AssistantUseCase struct {
	client      AssistantClient
	rateLimiter *ratelimit.RateLimiter
}

func NewAssistantUseCase(client AssistantClient, rateLimiter *ratelimit.RateLimiter) *AssistantUseCase {
	return &AssistantUseCase{
		client:      client,
		rateLimiter: rateLimiter,
	}
}

func (uc *AssistantUseCase) Ask(ctx context.Context, userID, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", errors.BadRequest("Message is required", nil)
	}

	allowed, waitTime := uc.rateLimiter.Allow(userID, "assistant")
	if !allowed {
		return "", errors.TooManyRequests("Too many assistant requests. Please wait", waitTime)
	}

	return uc.client.Chat(ctx, message)
}
