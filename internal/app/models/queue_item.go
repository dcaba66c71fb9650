package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type QueueItemStatus string

const (
	QueueItemStatusQueued     QueueItemStatus = "QUEUED"
	QueueItemStatusProcessing QueueItemStatus = "PROCESSING"
	QueueItemStatusSuccessful QueueItemStatus = "SUCCESSFUL"
	QueueItemStatusFailed     QueueItemStatus = "FAILED"
)

// QueueItem is a deferred discrete-data import job. Providers is stored as a
// structured list; the legacy compact string form survives only in
// RoleProviderMap.Stringify for systems that still expect it.
type QueueItem struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DocUniqueID       string             `bson:"doc_unique_id" json:"doc_unique_id"`
	PatientUUID       string             `bson:"patient_uuid" json:"patient_uuid"`
	EncounterTypeUUID string             `bson:"encounter_type_uuid" json:"encounter_type_uuid"`
	Providers         RoleProviderMap    `bson:"providers,omitempty" json:"providers,omitempty"`
	Status            QueueItemStatus    `bson:"status" json:"status"`
	DateAdded         time.Time          `bson:"date_added" json:"date_added"`
	DateUpdated       time.Time          `bson:"date_updated,omitempty" json:"date_updated,omitempty"`
}
