package api

import (
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/runger/fitcue/internal/suggestions/event"
	"github.com/runger/fitcue/internal/suggestions/suggest"
)

// Validation limits.
const (
	MaxInputLen = 256
	MaxNameLen  = 128

	MaxDurationMinutes = event.MaxDurationMinutes
	MaxCalories        = event.MaxCalories

	// MaxTimeFuture is how far ahead of the server clock an entry may be logged.
	MaxTimeFuture = 5 * time.Minute

	errExceedsMaxLengthFmt = "exceeds max length %d"
	errRequiredNonEmpty    = "is required and must be non-empty"
)

// ValidationError is a rejected request field.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationResult holds the result of validating a request.
// It collects hard errors (which block processing) and warnings
// (where values were clamped to valid ranges).
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationWarning
}

// ValidationWarning is logged but does not reject the request.
// The offending value is clamped to a valid range instead.
type ValidationWarning struct {
	Field   string
	Message string
}

// HasErrors returns true if there are any validation errors.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// FirstError returns the first validation error, or nil.
func (r *ValidationResult) FirstError() *ValidationError {
	if len(r.Errors) == 0 {
		return nil
	}
	return &r.Errors[0]
}

func (r *ValidationResult) addError(field, message string) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: message})
}

func (r *ValidationResult) addWarning(field, message string) {
	r.Warnings = append(r.Warnings, ValidationWarning{Field: field, Message: message})
}

// LogWarnings logs all warnings to the given logger.
func (r *ValidationResult) LogWarnings(logger *slog.Logger) {
	for _, w := range r.Warnings {
		logger.Warn("input validation clamped value",
			"field", w.Field,
			"detail", w.Message,
		)
	}
}

// SuggestQuery is the parsed query of GET /v1/suggestions.
type SuggestQuery struct {
	Input string
	At    time.Time
	Limit int // 0 means the engine default
}

// ParseSuggestQuery validates q, at and limit. A missing at uses now.
func ParseSuggestQuery(v url.Values, now time.Time) (SuggestQuery, *ValidationResult) {
	result := &ValidationResult{}
	q := SuggestQuery{Input: v.Get("q"), At: now}

	if utf8.RuneCountInString(q.Input) > MaxInputLen {
		result.addError("q", fmt.Sprintf(errExceedsMaxLengthFmt, MaxInputLen))
	}

	if raw := strings.TrimSpace(v.Get("at")); raw != "" {
		at, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			result.addError("at", "must be an RFC 3339 timestamp")
		} else {
			q.At = at
		}
	}

	q.Limit = parseLimit(result, v.Get("limit"), suggest.MaxMaxResults)
	return q, result
}

// parseLimit returns 0 for an empty value and clamps to [1, max].
func parseLimit(result *ValidationResult, raw string, max int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		result.addError("limit", "must be an integer")
		return 0
	}
	switch {
	case n < 1:
		result.addWarning("limit", fmt.Sprintf("below minimum 1, got %d; clamping to 1", n))
		return 1
	case n > max:
		result.addWarning("limit", fmt.Sprintf("exceeds maximum %d, got %d; clamping to %d", max, n, max))
		return max
	}
	return n
}

// CreateEntryRequest is the body of POST /v1/entries.
type CreateEntryRequest struct {
	Name            string     `json:"name"`
	Timestamp       *time.Time `json:"timestamp,omitempty"`
	DurationMinutes int        `json:"duration_minutes"`
	CaloriesBurned  *float64   `json:"calories_burned,omitempty"`
}

// Validate checks the request. A missing timestamp is set to now. The
// duration is clamped to a day.
func (req *CreateEntryRequest) Validate(now time.Time) *ValidationResult {
	result := &ValidationResult{}

	req.Name = strings.TrimSpace(req.Name)
	switch {
	case req.Name == "":
		result.addError("name", errRequiredNonEmpty)
	case utf8.RuneCountInString(req.Name) > MaxNameLen:
		result.addError("name", fmt.Sprintf(errExceedsMaxLengthFmt, MaxNameLen))
	}

	if req.Timestamp == nil || req.Timestamp.IsZero() {
		ts := now
		req.Timestamp = &ts
	} else if req.Timestamp.After(now.Add(MaxTimeFuture)) {
		result.addError("timestamp", "must not be in the future")
	}

	switch {
	case req.DurationMinutes < 0:
		result.addError("duration_minutes", "must be non-negative")
	case req.DurationMinutes > MaxDurationMinutes:
		result.addWarning("duration_minutes", fmt.Sprintf("exceeds max %d, got %d; clamping", MaxDurationMinutes, req.DurationMinutes))
		req.DurationMinutes = MaxDurationMinutes
	}

	if req.CaloriesBurned != nil {
		switch c := *req.CaloriesBurned; {
		case c < 0:
			result.addError("calories_burned", "must be non-negative")
		case !event.ValidCalories(c):
			result.addError("calories_burned", fmt.Sprintf("must be a finite number no greater than %d", MaxCalories))
		}
	}

	return result
}
