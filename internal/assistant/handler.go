// Package assistant runs one user message through the recommendation pipeline:
// intent extraction, catalog search, prompt, completion, record, truncation.
package assistant

import (
	"context"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shop-consultant/internal/catalog"
	"shop-consultant/internal/intent"
	"shop-consultant/internal/metrics"
	"shop-consultant/internal/prompt"
	"shop-consultant/internal/storage"
)

const (
	DefaultMaxResults     = 5
	DefaultMaxAnswerRunes = 4000

	// TruncationNotice is appended to answers cut to the deliverable length.
	TruncationNotice = "\n\n(ответ укорочен)"
)

// Completer returns displayable text for a prompt and never fails.
type Completer interface {
	Complete(ctx context.Context, system, user string) string
}

type Options struct {
	MaxResults     int
	MaxAnswerRunes int
}

// Handler holds only shared, concurrency-safe collaborators; every call is an
// independent transaction.
type Handler struct {
	catalog   catalog.Searcher
	prompts   *prompt.Builder
	completer Completer
	recorder  storage.Recorder
	opts      Options
	log       *zap.Logger
}

func New(searcher catalog.Searcher, prompts *prompt.Builder, completer Completer, recorder storage.Recorder, opts Options, log *zap.Logger) *Handler {
	if opts.MaxResults <= 0 {
		opts.MaxResults = DefaultMaxResults
	}
	if opts.MaxAnswerRunes <= 0 {
		opts.MaxAnswerRunes = DefaultMaxAnswerRunes
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		catalog:   searcher,
		prompts:   prompts,
		completer: completer,
		recorder:  recorder,
		opts:      opts,
		log:       log,
	}
}

// Handle answers one message. It always returns text.
func (h *Handler) Handle(ctx context.Context, userID int64, text string) string {
	log := h.log.With(zap.String("request_id", uuid.NewString()), zap.Int64("user_id", userID))
	log.Info("user asked", zap.String("text", text))
	metrics.MessagesHandled.Inc()

	q := intent.Parse(text)
	if q.MaxPrice != nil {
		log.Debug("price ceiling extracted", zap.Int64("max_price", *q.MaxPrice))
	}

	products, err := h.catalog.Search(ctx, catalog.Filter{Terms: q.Terms, Limit: h.opts.MaxResults, MaxPrice: q.MaxPrice})
	if err != nil {
		metrics.SearchFailures.Inc()
		log.Error("catalog search failed, answering without products", zap.Error(err))
		products = nil
	}
	metrics.SearchResults.Observe(float64(len(products)))
	log.Debug("catalog search done", zap.Strings("terms", q.Terms), zap.Int("found", len(products)))

	p := h.prompts.Build(text, products)
	answer := h.completer.Complete(ctx, p.System, p.User)

	if h.recorder != nil {
		rec := storage.Record{UserID: userID, UserMessage: text, BotResponse: answer}
		if err := h.recorder.Append(ctx, rec); err != nil {
			log.Error("failed to record conversation", zap.Error(err))
		}
	}

	out, cut := Truncate(answer, h.opts.MaxAnswerRunes)
	if cut {
		metrics.AnswersTruncated.Inc()
	}
	return out
}

// Truncate cuts s to max runes and appends TruncationNotice when it had to cut.
func Truncate(s string, max int) (string, bool) {
	if utf8.RuneCountInString(s) <= max {
		return s, false
	}
	runes := []rune(s)
	return string(runes[:max]) + TruncationNotice, true
}
