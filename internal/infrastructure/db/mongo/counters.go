package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	collectionCounters = "counters"

	sequenceUsers = "user_id"
	sequenceRoles = "role_id"
)

// Counters hands out monotonically increasing numeric ids per sequence name
// via an atomic findOneAndUpdate $inc on the counters collection.
type Counters struct {
	col *mongo.Collection
}

func NewCounters(db *mongo.Database) *Counters {
	return &Counters{col: db.Collection(collectionCounters)}
}

// Next returns the next id for the named sequence, starting at 1.
func (c *Counters) Next(ctx context.Context, name string) (int64, error) {
	upsert := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := c.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		upsert,
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("next sequence %s: %w", name, err)
	}
	return doc.Seq, nil
}
