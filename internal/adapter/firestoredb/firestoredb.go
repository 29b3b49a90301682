// Package firestoredb implements the domain repositories using Cloud Firestore.
package firestoredb

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"exercisetracker/internal/domain"
)

const (
	usersCollection     = "users"
	exercisesCollection = "exercises"
	logsCollection      = "logs"
	// logOwnersCollection maps a hashed username to the ID of its log document.
	logOwnersCollection = "log_owners"
)

// DB implements the domain repositories on top of a Firestore client.
type DB struct {
	client *firestore.Client
}

var _ domain.UserRepository = (*DB)(nil)
var _ domain.ExerciseRepository = (*DB)(nil)
var _ domain.LogRepository = (*DB)(nil)

// Open creates a client for projectID. With FIRESTORE_EMULATOR_HOST set the
// client talks to the emulator and opts may be empty.
func Open(ctx context.Context, projectID string, opts ...option.ClientOption) (*DB, error) {
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}
	return &DB{client: client}, nil
}

// Close closes the client.
func (d *DB) Close() error {
	return d.client.Close()
}

type userDoc struct {
	Username  string    `firestore:"username"`
	CreatedAt time.Time `firestore:"createdAt"`
}

type exerciseDoc struct {
	UserID      string    `firestore:"userId"`
	Username    string    `firestore:"username"`
	Description string    `firestore:"description"`
	Duration    float64   `firestore:"duration"`
	Date        string    `firestore:"date"`
	CreatedAt   time.Time `firestore:"createdAt"`
}

type logEntryDoc struct {
	Description string  `firestore:"description"`
	Duration    float64 `firestore:"duration"`
	Date        string  `firestore:"date"`
}

type logDoc struct {
	Username string        `firestore:"username"`
	Count    int           `firestore:"count"`
	Log      []logEntryDoc `firestore:"log"`
}

type ownerDoc struct {
	Username string `firestore:"username"`
	LogID    string `firestore:"logId"`
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// ownerKey turns a username into a valid document ID.
func ownerKey(username string) string {
	sum := sha256.Sum256([]byte(username))
	return hex.EncodeToString(sum[:])
}

// --- UserRepository ---

// CreateUser creates a user document; it fails if the ID is taken.
func (d *DB) CreateUser(ctx context.Context, user domain.User) error {
	doc := userDoc{Username: user.Username, CreatedAt: time.Now().UTC()}
	if _, err := d.client.Collection(usersCollection).Doc(user.ID).Create(ctx, doc); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetUser retrieves a user by ID.
func (d *DB) GetUser(ctx context.Context, id string) (*domain.User, error) {
	snap, err := d.client.Collection(usersCollection).Doc(id).Get(ctx)
	if isNotFound(err) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	var doc userDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &domain.User{ID: snap.Ref.ID, Username: doc.Username}, nil
}

// ListUsers returns all users in registration order.
func (d *DB) ListUsers(ctx context.Context) ([]domain.User, error) {
	iter := d.client.Collection(usersCollection).OrderBy("createdAt", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	out := []domain.User{}
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		var doc userDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		out = append(out, domain.User{ID: snap.Ref.ID, Username: doc.Username})
	}
	return out, nil
}

// --- ExerciseRepository ---

// AddExercise writes an exercise document.
func (d *DB) AddExercise(ctx context.Context, e domain.Exercise) error {
	doc := exerciseDoc{
		UserID:      e.UserID,
		Username:    e.Username,
		Description: e.Description,
		Duration:    e.Duration,
		Date:        e.Date,
		CreatedAt:   e.CreatedAt.UTC(),
	}
	if _, err := d.client.Collection(exercisesCollection).Doc(e.ID).Set(ctx, doc); err != nil {
		return fmt.Errorf("add exercise: %w", err)
	}
	return nil
}

// DeleteExercise removes an exercise document.
func (d *DB) DeleteExercise(ctx context.Context, id string) error {
	if _, err := d.client.Collection(exercisesCollection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}
	return nil
}

// --- LogRepository ---

// AppendLogEntry resolves the log document owned by username and appends entry
// inside a transaction, creating both documents on first use.
func (d *DB) AppendLogEntry(ctx context.Context, userID, username string, entry domain.LogEntry) error {
	ownerRef := d.client.Collection(logOwnersCollection).Doc(ownerKey(username))

	err := d.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		logID := userID
		newOwner := false
		snap, err := tx.Get(ownerRef)
		switch {
		case isNotFound(err):
			newOwner = true
		case err != nil:
			return err
		default:
			var owner ownerDoc
			if err := snap.DataTo(&owner); err != nil {
				return err
			}
			logID = owner.LogID
		}

		logRef := d.client.Collection(logsCollection).Doc(logID)
		agg := logDoc{Username: username}
		snap, err = tx.Get(logRef)
		switch {
		case isNotFound(err):
		case err != nil:
			return err
		default:
			if err := snap.DataTo(&agg); err != nil {
				return err
			}
		}

		// Full rewrite: ArrayUnion would drop identical entries.
		agg.Log = append(agg.Log, logEntryDoc{Description: entry.Description, Duration: entry.Duration, Date: entry.Date})
		agg.Count++

		if newOwner {
			if err := tx.Set(ownerRef, ownerDoc{Username: username, LogID: logID}); err != nil {
				return err
			}
		}
		return tx.Set(logRef, agg)
	})
	if err != nil {
		return fmt.Errorf("append log entry: %w", err)
	}
	return nil
}

// GetLog returns the aggregate with the given ID. A positive limit truncates
// the returned log after it is read.
func (d *DB) GetLog(ctx context.Context, id string, limit int) (*domain.ExerciseLog, error) {
	snap, err := d.client.Collection(logsCollection).Doc(id).Get(ctx)
	if isNotFound(err) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get log: %w", err)
	}
	var doc logDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("decode log: %w", err)
	}

	entries := doc.Log
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	out := &domain.ExerciseLog{
		ID:       snap.Ref.ID,
		Username: doc.Username,
		Count:    doc.Count,
		Log:      make([]domain.LogEntry, 0, len(entries)),
	}
	for _, e := range entries {
		out.Log = append(out.Log, domain.LogEntry{Description: e.Description, Duration: e.Duration, Date: e.Date})
	}
	return out, nil
}
