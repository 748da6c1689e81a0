package service

import (
	"context"
	"time"

	"github.com/medicare-vn/medicare-be/types"
	"github.com/sirupsen/logrus"
)

// maxHistoryTurns bounds the conversation window passed to providers.
// Older turns are dropped, never summarized.
const maxHistoryTurns = 10

// ChatService drives the provider fallback chain. Providers are attempted
// in order; any error falls through to the next one, with no retries
// inside a step. The last provider is the deterministic fallback, so a
// well-formed response is always produced.
type ChatService struct {
	providers []Provider
	timeout   time.Duration
	log       *logrus.Logger
}

func NewChatService(providers []Provider, timeout time.Duration, log *logrus.Logger) *ChatService {
	return &ChatService{
		providers: providers,
		timeout:   timeout,
		log:       log,
	}
}

// Respond produces the answer for one chat turn. The returned provider
// name identifies which step of the chain succeeded.
func (s *ChatService) Respond(ctx context.Context, message string, history []types.Message, productContext *types.CatalogItem) (*types.ProviderResponse, string) {
	input := &types.ProviderInput{
		Message:        message,
		History:        boundHistory(history),
		ProductContext: productContext,
	}

	for _, provider := range s.providers {
		pctx, cancel := context.WithTimeout(ctx, s.timeout)
		resp, err := provider.Respond(pctx, input)
		cancel()
		if err != nil {
			s.log.WithError(err).WithField("provider", provider.Name()).Warn("provider failed, falling through")
			continue
		}
		return resp, provider.Name()
	}

	// Unreachable when the fallback provider is wired in, kept so the
	// endpoint always receives a well-formed response.
	return &types.ProviderResponse{Text: fallbackCatchAll}, "fallback"
}

func boundHistory(history []types.Message) []types.Message {
	if len(history) > maxHistoryTurns {
		return history[len(history)-maxHistoryTurns:]
	}
	return history
}
