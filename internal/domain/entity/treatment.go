package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Treatment is a single billable line item on a patient's ledger. ToothIDs
// optionally cross-references the odontogram entries the procedure touched.
type Treatment struct {
	ID          int64           `gorm:"primaryKey" json:"id"`
	PatientID   int64           `gorm:"not null;index" json:"patient_id"`
	Date        string          `gorm:"type:date;not null" json:"date"`
	Description string          `gorm:"type:varchar(255);not null" json:"description"`
	Cost        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"cost"`
	Paid        bool            `gorm:"not null;default:false" json:"paid"`
	ToothIDs    []int           `gorm:"serializer:json" json:"tooth_ids,omitempty"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Treatment) TableName() string {
	return "treatments"
}

// TogglePaid flips the paid flag; applying it twice restores the original state
func (t *Treatment) TogglePaid() {
	t.Paid = !t.Paid
}

// ValidToothIDs reports whether every referenced tooth id is within 1..32
func ValidToothIDs(ids []int) bool {
	for _, id := range ids {
		if id < 1 || id > ToothCount {
			return false
		}
	}
	return true
}
