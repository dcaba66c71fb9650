package discretequeue

import (
	"context"
	"time"

	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/contracts"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/models"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/constvars"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type QueueMongoRepository struct {
	Collection *mongo.Collection
}

func NewQueueMongoRepository(db *mongo.Client, dbName string) contracts.QueueRepository {
	return &QueueMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionQueueItems),
	}
}

func (r *QueueMongoRepository) Enqueue(ctx context.Context, item *models.QueueItem) error {
	item.Status = models.QueueItemStatusQueued
	item.DateAdded = time.Now().UTC()

	_, err := r.Collection.InsertOne(ctx, item)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

// DequeueOldest claims the oldest QUEUED item in a single findAndModify so
// concurrent workers never claim the same item.
func (r *QueueMongoRepository) DequeueOldest(ctx context.Context) (*models.QueueItem, error) {
	filter := bson.M{"status": models.QueueItemStatusQueued}
	update := bson.M{"$set": bson.M{
		"status":       models.QueueItemStatusProcessing,
		"date_updated": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().
		SetSort(bson.D{{Key: "date_added", Value: 1}}).
		SetReturnDocument(options.After)

	var item models.QueueItem
	err := r.Collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&item)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &item, nil
}

func (r *QueueMongoRepository) Complete(ctx context.Context, itemID string, successful bool) error {
	objectID, err := primitive.ObjectIDFromHex(itemID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}

	status := models.QueueItemStatusSuccessful
	if !successful {
		status = models.QueueItemStatusFailed
	}

	filter := bson.M{"_id": objectID, "status": models.QueueItemStatusProcessing}
	update := bson.M{"$set": bson.M{
		"status":       status,
		"date_updated": time.Now().UTC(),
	}}

	_, err = r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *QueueMongoRepository) FindByStatus(ctx context.Context, status models.QueueItemStatus, limit int64) ([]models.QueueItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date_added", Value: 1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	cursor, err := r.Collection.Find(ctx, bson.M{"status": status}, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var items []models.QueueItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return items, nil
}
