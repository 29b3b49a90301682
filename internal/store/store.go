// Package store opens the persistence adapter named by a database URL.
package store

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/api/option"

	"exercisetracker/internal/adapter/firestoredb"
	"exercisetracker/internal/adapter/memory"
	"exercisetracker/internal/adapter/mongodb"
	"exercisetracker/internal/adapter/postgres"
	"exercisetracker/internal/domain"
)

// Store bundles the repository ports of one adapter.
type Store struct {
	Users     domain.UserRepository
	Exercises domain.ExerciseRepository
	Logs      domain.LogRepository

	closer func() error
}

// Close releases the adapter's resources.
func (s *Store) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}

// Options carries adapter settings that do not fit in the URL.
type Options struct {
	Logger *zap.SugaredLogger
	// FirestoreCredentials is a service account JSON key. When empty the
	// Firestore client falls back to application default credentials.
	FirestoreCredentials []byte
}

type repositories interface {
	domain.UserRepository
	domain.ExerciseRepository
	domain.LogRepository
	Close() error
}

func newStore(r repositories) *Store {
	return &Store{Users: r, Exercises: r, Logs: r, closer: r.Close}
}

// Open selects an adapter from the scheme of rawURL:
//
//	memory:// (or empty)         in-process store
//	mongodb://, mongodb+srv://   MongoDB
//	postgres://, postgresql://   PostgreSQL
//	firestore://<project-id>     Cloud Firestore
func Open(ctx context.Context, rawURL string, opts Options) (*Store, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if rawURL == "" {
		rawURL = "memory://"
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	var r repositories
	switch scheme := strings.ToLower(u.Scheme); scheme {
	case "memory":
		r = memory.New()
	case "mongodb", "mongodb+srv":
		r, err = mongodb.Open(ctx, rawURL)
	case "postgres", "postgresql":
		r, err = postgres.Open(ctx, rawURL)
	case "firestore":
		if u.Host == "" {
			return nil, fmt.Errorf("firestore url needs a project id: %q", rawURL)
		}
		var clientOpts []option.ClientOption
		if len(opts.FirestoreCredentials) > 0 {
			clientOpts = append(clientOpts, option.WithCredentialsJSON(opts.FirestoreCredentials))
		}
		r, err = firestoredb.Open(ctx, u.Host, clientOpts...)
	default:
		return nil, fmt.Errorf("unsupported database scheme %q", scheme)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", u.Scheme, err)
	}

	log.Infow("store opened", "backend", strings.ToLower(u.Scheme), "host", u.Host)
	return newStore(r), nil
}
