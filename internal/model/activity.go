package model

import "github.com/google/uuid"

type ActivityAction string

const (
	ActivityLogin          ActivityAction = "login"
	ActivityLogout         ActivityAction = "logout"
	ActivitySaleProcessed  ActivityAction = "sale_processed"
	ActivityProductSaved   ActivityAction = "product_saved"
	ActivityProductDeleted ActivityAction = "product_deleted"
	ActivityCustomerSaved  ActivityAction = "customer_saved"
)

// ActivityEntry is one line of the console journal
type ActivityEntry struct {
	BaseModel
	SessionID uuid.UUID      `gorm:"type:uuid;index" json:"session_id"`
	Actor     string         `gorm:"type:varchar(100)" json:"actor"`
	Action    ActivityAction `gorm:"type:varchar(30);index;not null" json:"action"`
	Detail    string         `gorm:"type:text" json:"detail"`
	Amount    float64        `gorm:"default:0" json:"amount"`
}

// TableName specifies the table name for GORM
func (ActivityEntry) TableName() string {
	return "console_activity"
}
