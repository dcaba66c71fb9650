package repository

import (
	"context"
	"time"

	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/contracts"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/models"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/constvars"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type RegisteredDocumentMongoRepository struct {
	Collection *mongo.Collection
}

func NewRegisteredDocumentMongoRepository(db *mongo.Client, dbName string) contracts.RegisteredDocumentRepository {
	return &RegisteredDocumentMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionRegisteredDocuments),
	}
}

func (r *RegisteredDocumentMongoRepository) Register(ctx context.Context, doc *models.RegisteredDocument) error {
	doc.DateRegistered = time.Now().UTC()

	_, err := r.Collection.InsertOne(ctx, doc)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (r *RegisteredDocumentMongoRepository) FindByUniqueID(ctx context.Context, docUniqueID string) (*models.RegisteredDocument, error) {
	var doc models.RegisteredDocument
	err := r.Collection.FindOne(ctx, bson.M{"doc_unique_id": docUniqueID}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &doc, nil
}
