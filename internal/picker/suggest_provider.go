package picker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/runger/fitcue/internal/suggestions/suggest"
)

// suggestFetchTimeout bounds a single Fetch so the picker stays responsive.
const suggestFetchTimeout = 400 * time.Millisecond

// SuggestProvider ranks suggestions for the typed query with the engine.
type SuggestProvider struct {
	engine *suggest.Engine
	source suggest.HistorySource
	now    func() time.Time
}

var _ Provider = (*SuggestProvider)(nil)

// NewSuggestProvider creates a provider reading history from source. A nil
// clock uses time.Now.
func NewSuggestProvider(engine *suggest.Engine, source suggest.HistorySource, now func() time.Time) *SuggestProvider {
	if now == nil {
		now = time.Now
	}
	return &SuggestProvider{engine: engine, source: source, now: now}
}

// Fetch ranks suggestions for req.Query at the current time.
func (p *SuggestProvider) Fetch(ctx context.Context, req Request) (Response, error) {
	ctx, cancel := context.WithTimeout(ctx, suggestFetchTimeout)
	defer cancel()

	suggestions, err := p.engine.SuggestFrom(ctx, p.source, req.Query, p.now(), req.Limit)
	if err != nil {
		return Response{}, fmt.Errorf("suggest provider: %w", err)
	}

	items := make([]Item, 0, len(suggestions))
	for _, s := range suggestions {
		items = append(items, Item{
			Value:  ValidateUTF8(StripANSI(s.Exercise.Name)),
			Detail: suggestionDetail(s),
		})
	}
	return Response{RequestID: req.RequestID, Items: items}, nil
}

// suggestionDetail renders "reason 95% · ~30 min".
func suggestionDetail(s suggest.Suggestion) string {
	parts := []string{
		fmt.Sprintf("%s %d%%", reasonLabel(s.Reason), int(s.Confidence*100+0.5)),
	}
	if s.TypicalDurationMinutes != nil {
		parts = append(parts, fmt.Sprintf("~%d min", *s.TypicalDurationMinutes))
	}
	return strings.Join(parts, " · ")
}

func reasonLabel(r suggest.Reason) string {
	switch r {
	case suggest.ReasonTextMatch:
		return "match"
	case suggest.ReasonTimeOfDay:
		return "usual time"
	case suggest.ReasonDayOfWeek:
		return "usual day"
	case suggest.ReasonRecentlyUsed:
		return "recent"
	case suggest.ReasonFrequentlyUsed:
		return "frequent"
	default:
		return string(r)
	}
}
