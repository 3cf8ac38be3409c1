// Package recommend turns a prompt into user-facing text. It never fails:
// every backend problem resolves to displayable text.
package recommend

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"shop-consultant/internal/llm"
	"shop-consultant/internal/metrics"
)

// Apology is returned when the backend could not be reached or produced no answer.
const Apology = "Извините, произошла ошибка при обработке запроса."

var thinkRe = regexp.MustCompile(`(?s)<think>.*?</think>`)

// StripReasoning removes <think>...</think> spans and trims the rest.
func StripReasoning(s string) string {
	return strings.TrimSpace(thinkRe.ReplaceAllString(s, ""))
}

type Client struct {
	backend llm.Client
	timeout time.Duration
	log     *zap.Logger
}

// New wraps backend. timeout bounds a single completion; zero means no bound
// beyond the caller's context.
func New(backend llm.Client, timeout time.Duration, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{backend: backend, timeout: timeout, log: log}
}

// Complete asks the backend for a recommendation.
func (c *Client) Complete(ctx context.Context, system, user string) string {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := c.backend.Generate(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: user},
	})
	metrics.CompletionDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		var mErr *llm.MalformedResponseError
		if errors.As(err, &mErr) && strings.TrimSpace(mErr.Body) != "" {
			metrics.CompletionsTotal.WithLabelValues(metrics.OutcomeMalformed).Inc()
			c.log.Info("completion response has unexpected shape, returning raw body",
				zap.Int("status", mErr.StatusCode), zap.String("body", mErr.Body), zap.Error(mErr.Err))
			return mErr.Body
		}
		metrics.CompletionsTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
		c.log.Error("completion request failed", zap.Error(err))
		return Apology
	}

	answer := StripReasoning(resp.Content)
	if answer == "" {
		// nothing left to show once the reasoning is gone
		metrics.CompletionsTotal.WithLabelValues(metrics.OutcomeMalformed).Inc()
		c.log.Info("completion has no answer outside reasoning blocks",
			zap.String("model", resp.Model), zap.Int("content_len", len(resp.Content)))
		return Apology
	}

	metrics.CompletionsTotal.WithLabelValues(metrics.OutcomeOK).Inc()
	c.log.Info("completion received",
		zap.String("model", resp.Model),
		zap.Int("prompt_tokens", resp.PromptTokens),
		zap.Int("completion_tokens", resp.CompletionTokens),
		zap.Int("total_tokens", resp.TotalTokens))
	return answer
}
