package adapthttp

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/jellydator/validation"

	"exercisetracker/internal/app"
	"exercisetracker/internal/domain"
)

// CreateUserRequest is the body of POST /api/users.
type CreateUserRequest struct {
	Username string `json:"username"`
}

// Validate requires a username.
func (c CreateUserRequest) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Username, validation.Required),
	)
}

// AddExerciseRequest is the body of POST /api/users/{id}/exercises. Date is
// optional; an unusable date is replaced by the current one later on.
type AddExerciseRequest struct {
	Description string `json:"description"`
	Duration    string `json:"duration"`
	Date        string `json:"date"`
}

// Validate requires a description and a numeric duration.
func (a AddExerciseRequest) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Description, validation.Required),
		validation.Field(&a.Duration, validation.Required, validation.By(isNumber)),
	)
}

// ToNewExercise converts a validated request.
func (a AddExerciseRequest) ToNewExercise() app.NewExercise {
	d, _ := parseNumber(a.Duration)
	return app.NewExercise{Description: a.Description, Duration: d, Date: a.Date}
}

// LogsQuery is the query string of GET /api/users/{id}/logs.
type LogsQuery struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Limit string `json:"limit"`
}

// Validate checks the range dates. A lone from or to is ignored, so it is not
// checked either.
func (l LogsQuery) Validate() error {
	hasRange := l.From != "" && l.To != ""
	return validation.ValidateStruct(&l,
		validation.Field(&l.From, validation.When(hasRange, validation.By(isDate))),
		validation.Field(&l.To, validation.When(hasRange, validation.By(isDate))),
	)
}

// maxLimit caps the limit; no log holds more entries than this.
const maxLimit = math.MaxInt32

// ToLogQuery converts a validated query. The range is only set when both ends
// are given, a limit that is not a positive integer is dropped and a larger
// limit is capped at maxLimit.
func (l LogsQuery) ToLogQuery() app.LogQuery {
	var q app.LogQuery
	if l.From != "" && l.To != "" {
		from, _ := domain.ParseDate(l.From)
		to, _ := domain.ParseDate(l.To)
		q.From, q.To = &from, &to
	}
	if n, err := strconv.ParseInt(strings.TrimSpace(l.Limit), 10, 64); err == nil && n > 0 {
		q.Limit = int(min(n, maxLimit))
	} else if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(strings.TrimSpace(l.Limit), "-") {
		q.Limit = maxLimit
	}
	return q
}

func parseNumber(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.New("not a finite number")
	}
	return f, nil
}

func isNumber(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := parseNumber(s); err != nil {
		return errors.New("must be a number")
	}
	return nil
}

func isDate(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := domain.ParseDate(s); err != nil {
		return errors.New("must be a date in YYYY-MM-DD format")
	}
	return nil
}
