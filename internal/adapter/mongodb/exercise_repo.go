package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"exercisetracker/internal/domain"
)

// AddExercise inserts an exercise document.
func (d *DB) AddExercise(ctx context.Context, e domain.Exercise) error {
	doc := exerciseDoc{
		ID:          e.ID,
		UserID:      e.UserID,
		Username:    e.Username,
		Description: e.Description,
		Duration:    e.Duration,
		Date:        e.Date,
		CreatedAt:   e.CreatedAt.UTC(),
	}
	if _, err := d.db.Collection(exercisesCollection).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert exercise: %w", err)
	}
	return nil
}

// DeleteExercise removes an exercise document.
func (d *DB) DeleteExercise(ctx context.Context, id string) error {
	if _, err := d.db.Collection(exercisesCollection).DeleteOne(ctx, bson.D{{Key: "_id", Value: id}}); err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}
	return nil
}

// AppendLogEntry pushes entry onto the aggregate of username with a single
// upsert. Two first appends for the same username may race on the insert; the
// loser hits the unique index and is retried as an update.
func (d *DB) AppendLogEntry(ctx context.Context, userID, username string, entry domain.LogEntry) error {
	filter := bson.D{{Key: "username", Value: username}}
	update := bson.D{
		{Key: "$setOnInsert", Value: bson.D{{Key: "_id", Value: userID}}},
		{Key: "$inc", Value: bson.D{{Key: "count", Value: 1}}},
		{Key: "$push", Value: bson.D{{Key: "log", Value: logEntryDoc{
			Description: entry.Description,
			Duration:    entry.Duration,
			Date:        entry.Date,
		}}}},
	}
	opts := options.Update().SetUpsert(true)

	logs := d.db.Collection(logsCollection)
	_, err := logs.UpdateOne(ctx, filter, update, opts)
	if mongo.IsDuplicateKeyError(err) {
		_, err = logs.UpdateOne(ctx, filter, update, opts)
	}
	if err != nil {
		return fmt.Errorf("append log entry: %w", err)
	}
	return nil
}

// GetLog returns the aggregate with the given ID. A positive limit is applied
// with a $slice projection.
func (d *DB) GetLog(ctx context.Context, id string, limit int) (*domain.ExerciseLog, error) {
	opts := options.FindOne()
	if limit > 0 {
		opts.SetProjection(bson.D{
			{Key: "_id", Value: 1},
			{Key: "username", Value: 1},
			{Key: "count", Value: 1},
			{Key: "log", Value: bson.D{{Key: "$slice", Value: limit}}},
		})
	}

	var doc logDoc
	if err := d.db.Collection(logsCollection).FindOne(ctx, bson.D{{Key: "_id", Value: id}}, opts).Decode(&doc); err != nil {
		return nil, notFound(err)
	}
	return doc.toDomain(), nil
}
