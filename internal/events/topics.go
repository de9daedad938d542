package events

// Topic constants for domain events emitted by the catalog and stock services.
const (
	TopicCategoryCreated = "catalog.category.created"
	TopicCategoryUpdated = "catalog.category.updated"
	TopicCategoryDeleted = "catalog.category.deleted"
	TopicProductCreated  = "catalog.product.created"
	TopicProductUpdated  = "catalog.product.updated"
	TopicProductDeleted  = "catalog.product.deleted"
	TopicStockImported   = "stock.imported"
)
