package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"exercisetracker/internal/app"
	"exercisetracker/internal/apperror"
	"exercisetracker/internal/domain"
)

func day(s string) *time.Time {
	t, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return &t
}

func threeEntryLog() *domain.ExerciseLog {
	return &domain.ExerciseLog{
		ID:       "u1",
		Username: "bob",
		Count:    3,
		Log: []domain.LogEntry{
			{Description: "jan", Duration: 10, Date: "Wed Jan 01 2020"},
			{Description: "jun", Duration: 20, Date: "Mon Jun 01 2020"},
			{Description: "dec", Duration: 30, Date: "Tue Dec 01 2020"},
		},
	}
}

func descriptions(entries []domain.LogEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Description)
	}
	return out
}

func TestGetLog_Filters(t *testing.T) {
	tests := []struct {
		name      string
		query     app.LogQuery
		wantLimit int
		want      []string
	}{
		{
			name:  "no filters",
			query: app.LogQuery{},
			want:  []string{"jan", "jun", "dec"},
		},
		{
			name:  "from and to",
			query: app.LogQuery{From: day("2020-02-01"), To: day("2020-12-31")},
			want:  []string{"jun", "dec"},
		},
		{
			name:  "from, to and limit",
			query: app.LogQuery{From: day("2020-02-01"), To: day("2020-12-31"), Limit: 1},
			want:  []string{"jun"},
		},
		{
			name:  "bounds are inclusive",
			query: app.LogQuery{From: day("2020-06-01"), To: day("2020-12-01")},
			want:  []string{"jun", "dec"},
		},
		{
			name:  "from alone is ignored",
			query: app.LogQuery{From: day("2020-02-01")},
			want:  []string{"jan", "jun", "dec"},
		},
		{
			name:      "limit alone is pushed to the store",
			query:     app.LogQuery{Limit: 2},
			wantLimit: 2,
			want:      []string{"jan", "jun"},
		},
		{
			name:  "empty range",
			query: app.LogQuery{From: day("2021-01-01"), To: day("2021-12-31")},
			want:  []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var gotLimit int
			svc := app.NewLogService(&mockUserRepo{}, &mockLogRepo{
				getFn: func(_ context.Context, id string, limit int) (*domain.ExerciseLog, error) {
					gotLimit = limit
					agg := threeEntryLog()
					if limit > 0 && limit < len(agg.Log) {
						agg.Log = agg.Log[:limit]
					}
					return agg, nil
				},
			})

			agg, err := svc.GetLog(context.Background(), "u1", tc.query)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if gotLimit != tc.wantLimit {
				t.Fatalf("expected store limit %d, got %d", tc.wantLimit, gotLimit)
			}
			got := descriptions(agg.Log)
			if len(got) != len(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("expected %v, got %v", tc.want, got)
				}
			}
			if agg.Count != 3 {
				t.Fatalf("count must stay 3, got %d", agg.Count)
			}
			if agg.Log == nil {
				t.Fatal("log must never be nil")
			}
		})
	}
}

func TestGetLog_UserWithoutExercises(t *testing.T) {
	svc := app.NewLogService(
		&mockUserRepo{getFn: func(_ context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id, Username: "erin"}, nil
		}},
		&mockLogRepo{},
	)
	agg, err := svc.GetLog(context.Background(), "u9", app.LogQuery{Limit: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if agg.ID != "u9" || agg.Username != "erin" || agg.Count != 0 {
		t.Fatalf("unexpected empty aggregate: %+v", agg)
	}
	if agg.Log == nil || len(agg.Log) != 0 {
		t.Fatalf("expected empty log, got %#v", agg.Log)
	}
}

func TestGetLog_UserNotFound(t *testing.T) {
	svc := app.NewLogService(
		&mockUserRepo{getFn: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, domain.ErrNotFound
		}},
		&mockLogRepo{},
	)
	_, err := svc.GetLog(context.Background(), "ghost", app.LogQuery{})
	if !apperror.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGetLog_StoreFailure(t *testing.T) {
	svc := app.NewLogService(&mockUserRepo{}, &mockLogRepo{
		getFn: func(_ context.Context, _ string, _ int) (*domain.ExerciseLog, error) {
			return nil, errors.New("db down")
		},
	})
	_, err := svc.GetLog(context.Background(), "u1", app.LogQuery{})
	if !apperror.IsDatabaseError(err) {
		t.Fatalf("expected database error, got %v", err)
	}
}

func TestFilterByDate_DropsUnparseable(t *testing.T) {
	entries := []domain.LogEntry{
		{Description: "ok", Date: "Mon Jun 01 2020"},
		{Description: "bad", Date: "Invalid Date"},
	}
	got := app.FilterByDate(entries, *day("2020-01-01"), *day("2020-12-31"))
	if len(got) != 1 || got[0].Description != "ok" {
		t.Fatalf("unexpected result %v", got)
	}
}
