package constvars

const (
	MongoCollectionRegisteredDocuments = "registered_documents"
	MongoCollectionQueueItems          = "discrete_queue_items"
)
