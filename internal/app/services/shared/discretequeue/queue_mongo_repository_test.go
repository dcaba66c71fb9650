package discretequeue

import (
	"context"
	"testing"
	"time"

	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestQueueMongoRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("Enqueue stamps queued status and insertion time", func(mt *mtest.T) {
		repo := &QueueMongoRepository{Collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		item := &models.QueueItem{DocUniqueID: "2.25.1", Status: models.QueueItemStatusFailed}
		err := repo.Enqueue(context.Background(), item)
		assert.NoError(mt.T, err)
		assert.Equal(mt.T, models.QueueItemStatusQueued, item.Status)
		assert.False(mt.T, item.DateAdded.IsZero())
	})

	mt.Run("DequeueOldest claims the oldest queued item atomically", func(mt *mtest.T) {
		repo := &QueueMongoRepository{Collection: mt.Coll}
		claimedID := primitive.NewObjectID()
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: bson.D{
				{Key: "_id", Value: claimedID},
				{Key: "doc_unique_id", Value: "2.25.1"},
				{Key: "status", Value: models.QueueItemStatusProcessing},
				{Key: "date_added", Value: primitive.NewDateTimeFromTime(time.Now().UTC())},
			}},
		})

		item, err := repo.DequeueOldest(context.Background())
		assert.NoError(mt.T, err)
		assert.Equal(mt.T, claimedID, item.ID)
		assert.Equal(mt.T, models.QueueItemStatusProcessing, item.Status)

		// The claim is one findAndModify: oldest first, queued only, moved to
		// processing in the same command.
		started := mt.GetStartedEvent()
		assert.Equal(mt.T, "findAndModify", started.CommandName)
		assert.Equal(mt.T, string(models.QueueItemStatusQueued), started.Command.Lookup("query", "status").StringValue())
		sortOrder, ok := started.Command.Lookup("sort", "date_added").Int32OK()
		assert.True(mt.T, ok)
		assert.Equal(mt.T, int32(1), sortOrder)
		assert.Equal(mt.T, string(models.QueueItemStatusProcessing), started.Command.Lookup("update", "$set", "status").StringValue())
	})

	mt.Run("DequeueOldest on an empty queue yields no item", func(mt *mtest.T) {
		repo := &QueueMongoRepository{Collection: mt.Coll}
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: nil},
		})

		item, err := repo.DequeueOldest(context.Background())
		assert.NoError(mt.T, err)
		assert.Nil(mt.T, item)
	})

	mt.Run("Complete marks a processing item failed", func(mt *mtest.T) {
		repo := &QueueMongoRepository{Collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		itemID := primitive.NewObjectID()
		err := repo.Complete(context.Background(), itemID.Hex(), false)
		assert.NoError(mt.T, err)

		// The filter pins the processing status, so items already terminal
		// never transition again.
		started := mt.GetStartedEvent()
		assert.Equal(mt.T, "update", started.CommandName)
		firstUpdate := started.Command.Lookup("updates").Array().Index(0).Value().Document()
		assert.Equal(mt.T, itemID, firstUpdate.Lookup("q", "_id").ObjectID())
		assert.Equal(mt.T, string(models.QueueItemStatusProcessing), firstUpdate.Lookup("q", "status").StringValue())
		assert.Equal(mt.T, string(models.QueueItemStatusFailed), firstUpdate.Lookup("u", "$set", "status").StringValue())
	})

	mt.Run("Complete marks a processing item successful", func(mt *mtest.T) {
		repo := &QueueMongoRepository{Collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		itemID := primitive.NewObjectID()
		err := repo.Complete(context.Background(), itemID.Hex(), true)
		assert.NoError(mt.T, err)

		started := mt.GetStartedEvent()
		firstUpdate := started.Command.Lookup("updates").Array().Index(0).Value().Document()
		assert.Equal(mt.T, string(models.QueueItemStatusSuccessful), firstUpdate.Lookup("u", "$set", "status").StringValue())
	})

	mt.Run("Complete rejects a malformed item id", func(mt *mtest.T) {
		repo := &QueueMongoRepository{Collection: mt.Coll}

		err := repo.Complete(context.Background(), "not-an-object-id", true)
		assert.Error(mt.T, err)
	})

	mt.Run("FindByStatus lists oldest first with a cap", func(mt *mtest.T) {
		repo := &QueueMongoRepository{Collection: mt.Coll}
		namespace := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace, mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "doc_unique_id", Value: "2.25.1"},
				{Key: "status", Value: models.QueueItemStatusFailed},
			},
		))

		items, err := repo.FindByStatus(context.Background(), models.QueueItemStatusFailed, 10)
		assert.NoError(mt.T, err)
		assert.Len(mt.T, items, 1)
		assert.Equal(mt.T, "2.25.1", items[0].DocUniqueID)

		started := mt.GetStartedEvent()
		assert.Equal(mt.T, "find", started.CommandName)
		assert.Equal(mt.T, string(models.QueueItemStatusFailed), started.Command.Lookup("filter", "status").StringValue())
		sortOrder, ok := started.Command.Lookup("sort", "date_added").Int32OK()
		assert.True(mt.T, ok)
		assert.Equal(mt.T, int32(1), sortOrder)
		limit, ok := started.Command.Lookup("limit").Int64OK()
		assert.True(mt.T, ok)
		assert.Equal(mt.T, int64(10), limit)
	})
}
