package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bhrigu136/shopify-ai-analytics/internal/aiservice"
	"github.com/bhrigu136/shopify-ai-analytics/internal/model"
	"github.com/bhrigu136/shopify-ai-analytics/internal/repository"
)

var (
	ErrQuestionRequired   = errors.New("store_id and question are required")
	ErrUnauthorized       = errors.New("shop not found or app not installed")
	ErrServiceUnavailable = errors.New("ai service unavailable")
)

// Forwarder sends a question to the AI service on behalf of a store.
type Forwarder interface {
	Ask(ctx context.Context, token string, q model.Question) (*model.Relay, error)
}

var _ Forwarder = (*aiservice.Client)(nil)

// QuestionService defines the question forwarding use case.
type QuestionService interface {
	// Ask validates q, resolves the store's token and forwards q to the AI service.
	// Exactly one downstream call is made per valid question; none otherwise.
	Ask(ctx context.Context, q model.Question) (*model.Relay, error)
}

type questionService struct {
	creds     repository.CredentialResolver
	forwarder Forwarder
}

// NewQuestionService constructs a new QuestionService.
func NewQuestionService(creds repository.CredentialResolver, forwarder Forwarder) QuestionService {
	return &questionService{creds: creds, forwarder: forwarder}
}

func (s *questionService) Ask(ctx context.Context, q model.Question) (*model.Relay, error) {
	if !q.Complete() {
		return nil, ErrQuestionRequired
	}

	token, err := s.creds.ResolveToken(ctx, q.StoreID)
	if err != nil {
		if errors.Is(err, repository.ErrCredentialNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("resolve credential: %w", err)
	}

	relay, err := s.forwarder.Ask(ctx, token, q)
	if err != nil {
		if errors.Is(err, aiservice.ErrUnavailable) {
			return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
		}
		return nil, err
	}
	return relay, nil
}
