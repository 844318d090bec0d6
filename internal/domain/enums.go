package domain

// OrderStatus represents the lifecycle status carried on export rows.
// Only completed orders count toward revenue; everything else is excluded
// from qualification.
type OrderStatus string

const (
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusRefunded  OrderStatus = "refunded"
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// AllowedUploadExtensions lists the file extensions accepted for sales
// export uploads.
var AllowedUploadExtensions = map[string]bool{
	"csv": true,
	"txt": true,
}
