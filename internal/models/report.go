package models

import (
	"encoding/json"
	"time"
)

// Report is a persisted revenue report. Immutable once created, except for
// deletion by its owner.
type Report struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	UserID     uint     `gorm:"not null;index" json:"-"`
	ReportType string   `gorm:"size:50;not null" json:"report_type"` // monthly, quarterly, yearly, custom
	StartDate  Date     `gorm:"not null" json:"start_date"`
	EndDate    Date     `gorm:"not null" json:"end_date"`
	Data       JSONText `json:"data"`

	CreatedAt time.Time `json:"created_at"`
}

// GetUserID implements policy.Ownable.
func (r *Report) GetUserID() uint { return r.UserID }

// SetData marshals the computed payload into the opaque Data column.
func (r *Report) SetData(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	r.Data = JSONText(b)
	return nil
}
