package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RegisteredDocument records a document unique id the registry has accepted,
// together with the handler class that stored its content. Used for duplicate
// detection and for retrieving content later.
type RegisteredDocument struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DocUniqueID    string             `bson:"doc_unique_id" json:"doc_unique_id"`
	HandlerName    string             `bson:"handler_name" json:"handler_name"`
	StorageKey     string             `bson:"storage_key,omitempty" json:"storage_key,omitempty"`
	DateRegistered time.Time          `bson:"date_registered" json:"date_registered"`
}
