package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"exercisetracker/internal/domain"
)

// CreateUser inserts a new user document.
func (d *DB) CreateUser(ctx context.Context, user domain.User) error {
	doc := userDoc{ID: user.ID, Username: user.Username, CreatedAt: time.Now().UTC()}
	if _, err := d.db.Collection(usersCollection).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetUser retrieves a user by ID.
func (d *DB) GetUser(ctx context.Context, id string) (*domain.User, error) {
	var doc userDoc
	if err := d.db.Collection(usersCollection).FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc); err != nil {
		return nil, notFound(err)
	}
	return &domain.User{ID: doc.ID, Username: doc.Username}, nil
}

// ListUsers returns all users in registration order.
func (d *DB) ListUsers(ctx context.Context) ([]domain.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := d.db.Collection(usersCollection).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	out := make([]domain.User, 0, len(docs))
	for _, doc := range docs {
		out = append(out, domain.User{ID: doc.ID, Username: doc.Username})
	}
	return out, nil
}
