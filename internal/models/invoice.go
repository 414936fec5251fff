package models

import "time"

// Invoice statuses. The status field is a free enum: any status may be set to
// any other, there is no transition machine.
const (
	StatusDraft   = "draft"
	StatusSent    = "sent"
	StatusPaid    = "paid"
	StatusOverdue = "overdue"
)

// Statuses lists the accepted invoice statuses in display order.
var Statuses = []string{StatusDraft, StatusSent, StatusPaid, StatusOverdue}

// Invoicing models
type Invoice struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	InvoiceNumber string `gorm:"size:50;uniqueIndex;not null" json:"invoice_number"`
	UserID        uint   `gorm:"not null;index" json:"-"`

	// Customer information
	CustomerName    string `gorm:"size:200;not null" json:"customer_name"`
	CustomerEmail   string `gorm:"size:120" json:"customer_email"`
	CustomerAddress string `json:"customer_address"`

	// Invoice details
	IssueDate Date   `gorm:"not null" json:"issue_date"`
	DueDate   Date   `gorm:"not null" json:"due_date"`
	Status    string `gorm:"size:20;default:'draft'" json:"status"`

	// Financial information. Stored at full float precision; rounding to two
	// decimals happens only in report summaries.
	Subtotal    float64 `json:"subtotal"`
	TaxRate     float64 `json:"tax_rate"` // percent, 0..100
	TaxAmount   float64 `json:"tax_amount"`
	TotalAmount float64 `json:"total_amount"`

	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items"`
}

// GetUserID implements policy.Ownable.
func (i *Invoice) GetUserID() uint { return i.UserID }

// ComputeTotals derives subtotal, tax amount and total from the current item
// set and tax rate. Must be called whenever items or tax_rate change.
func (i *Invoice) ComputeTotals() {
	var subtotal float64
	for _, it := range i.Items {
		subtotal += it.Total
	}
	i.Subtotal = subtotal
	i.TaxAmount = subtotal * (i.TaxRate / 100)
	i.TotalAmount = i.Subtotal + i.TaxAmount
}

type InvoiceItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	InvoiceID   uint    `gorm:"not null;index" json:"-"`
	Description string  `gorm:"size:500;not null" json:"description"`
	Quantity    float64 `gorm:"not null;default:1" json:"quantity"`
	UnitPrice   float64 `gorm:"not null" json:"unit_price"`
	Total       float64 `gorm:"not null" json:"total"`
}

// ComputeTotal derives the stored line total.
func (it *InvoiceItem) ComputeTotal() {
	it.Total = it.Quantity * it.UnitPrice
}
