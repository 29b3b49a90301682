package mongodb

import (
	"time"

	"exercisetracker/internal/domain"
)

type userDoc struct {
	ID        string    `bson:"_id"`
	Username  string    `bson:"username"`
	CreatedAt time.Time `bson:"createdAt"`
}

type exerciseDoc struct {
	ID          string    `bson:"_id"`
	UserID      string    `bson:"userId"`
	Username    string    `bson:"username"`
	Description string    `bson:"description"`
	Duration    float64   `bson:"duration"`
	Date        string    `bson:"date"`
	CreatedAt   time.Time `bson:"createdAt"`
}

type logEntryDoc struct {
	Description string  `bson:"description"`
	Duration    float64 `bson:"duration"`
	Date        string  `bson:"date"`
}

type logDoc struct {
	ID       string        `bson:"_id"`
	Username string        `bson:"username"`
	Count    int           `bson:"count"`
	Log      []logEntryDoc `bson:"log"`
}

func (l logDoc) toDomain() *domain.ExerciseLog {
	out := &domain.ExerciseLog{
		ID:       l.ID,
		Username: l.Username,
		Count:    l.Count,
		Log:      make([]domain.LogEntry, 0, len(l.Log)),
	}
	for _, e := range l.Log {
		out.Log = append(out.Log, domain.LogEntry{Description: e.Description, Duration: e.Duration, Date: e.Date})
	}
	return out
}
