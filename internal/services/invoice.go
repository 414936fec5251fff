package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"invoiceapp/internal/models"
	"invoiceapp/internal/policy"
	"invoiceapp/internal/validation"
)

// InvoiceService encapsulates invoice CRUD and the totals invariant. All
// operations are scoped to the authenticated owner; an invoice belonging to
// someone else is reported as ErrNotFound.
type InvoiceService struct {
	DB *gorm.DB
}

func NewInvoiceService(db *gorm.DB) *InvoiceService { return &InvoiceService{DB: db} }

// NewInvoiceNumber returns a number like INV-20260115-3FA85F64: date prefix
// plus a uuid-derived suffix, so collisions are negligible without
// coordination. The unique DB constraint is the backstop.
func NewInvoiceNumber(now time.Time) string {
	suffix := strings.ToUpper(uuid.NewString()[:8])
	return fmt.Sprintf("INV-%s-%s", now.Format("20060102"), suffix)
}

// List returns all invoices owned by the caller, newest-created first.
func (s *InvoiceService) List(ownerID uint) ([]models.Invoice, error) {
	invoices := []models.Invoice{}
	err := s.DB.Scopes(policy.OwnedBy(ownerID)).
		Preload("Items").
		Order("created_at DESC, id DESC").
		Find(&invoices).Error
	return invoices, err
}

// Get returns the invoice with its items if the caller owns it.
func (s *InvoiceService) Get(ownerID, id uint) (*models.Invoice, error) {
	return getInvoice(s.DB, ownerID, id)
}

func getInvoice(db *gorm.DB, ownerID, id uint) (*models.Invoice, error) {
	var inv models.Invoice
	err := db.Scopes(policy.OwnedBy(ownerID)).Preload("Items").First(&inv, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// Create validates the payload, persists the invoice, its items and the
// derived totals in one transaction, and returns the stored invoice. Any
// invalid item aborts the whole create with no partial writes.
func (s *InvoiceService) Create(ownerID uint, data map[string]any) (*models.Invoice, error) {
	if msg := validation.InvoiceData(data); msg != "" {
		return nil, validationErr(msg)
	}

	dueDate, err := models.ParseDate(stringField(data, "due_date"))
	if err != nil {
		// unreachable after validation, but keep the row out of the DB on principle
		return nil, validationErr("Due date must be in YYYY-MM-DD format")
	}
	status := models.StatusDraft
	if v, ok := data["status"]; ok {
		status, _ = v.(string)
	}
	taxRate := 0.0
	if v, ok := data["tax_rate"]; ok {
		taxRate, _ = validation.Number(v)
	}

	inv := models.Invoice{
		InvoiceNumber:   NewInvoiceNumber(time.Now()),
		UserID:          ownerID,
		CustomerName:    stringField(data, "customer_name"),
		CustomerEmail:   stringField(data, "customer_email"),
		CustomerAddress: stringField(data, "customer_address"),
		IssueDate:       models.Today(),
		DueDate:         dueDate,
		Status:          status,
		TaxRate:         taxRate,
		Notes:           stringField(data, "notes"),
	}
	items := buildItems(data["items"])

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&inv).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].InvoiceID = inv.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		inv.Items = items
		inv.ComputeTotals()
		return tx.Model(&inv).Updates(map[string]any{
			"subtotal":     inv.Subtotal,
			"tax_amount":   inv.TaxAmount,
			"total_amount": inv.TotalAmount,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// Update applies only the fields present in the payload. A present "items"
// key replaces the entire item set. Totals are recomputed and updated_at
// bumped, all inside one transaction.
func (s *InvoiceService) Update(ownerID, id uint, data map[string]any) (*models.Invoice, error) {
	if msg := validation.InvoiceUpdateData(data); msg != "" {
		return nil, validationErr(msg)
	}

	var inv *models.Invoice
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		inv, err = getInvoice(tx, ownerID, id)
		if err != nil {
			return err
		}
		if v, ok := data["customer_name"]; ok {
			inv.CustomerName, _ = v.(string)
		}
		if v, ok := data["customer_email"]; ok {
			inv.CustomerEmail, _ = v.(string)
		}
		if v, ok := data["customer_address"]; ok {
			inv.CustomerAddress, _ = v.(string)
		}
		if v, ok := data["due_date"]; ok {
			raw, _ := v.(string)
			d, err := models.ParseDate(raw)
			if err != nil {
				return validationErr("Due date must be in YYYY-MM-DD format")
			}
			inv.DueDate = d
		}
		if v, ok := data["tax_rate"]; ok {
			inv.TaxRate, _ = validation.Number(v)
		}
		if v, ok := data["notes"]; ok {
			inv.Notes, _ = v.(string)
		}
		if v, ok := data["status"]; ok {
			inv.Status, _ = v.(string)
		}
		if raw, ok := data["items"]; ok {
			if err := tx.Where("invoice_id = ?", inv.ID).Delete(&models.InvoiceItem{}).Error; err != nil {
				return err
			}
			items := buildItems(raw)
			for i := range items {
				items[i].InvoiceID = inv.ID
			}
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
			inv.Items = items
		}
		inv.ComputeTotals()
		inv.UpdatedAt = time.Now()
		return tx.Omit(clause.Associations).Save(inv).Error
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// Delete removes the invoice and its items atomically.
func (s *InvoiceService) Delete(ownerID, id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		inv, err := getInvoice(tx, ownerID, id)
		if err != nil {
			return err
		}
		if err := tx.Where("invoice_id = ?", inv.ID).Delete(&models.InvoiceItem{}).Error; err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Delete(inv).Error
	})
}

func stringField(data map[string]any, key string) string {
	s, _ := data[key].(string)
	return s
}

// buildItems assumes the raw value already passed item validation.
func buildItems(raw any) []models.InvoiceItem {
	list, _ := raw.([]any)
	items := make([]models.InvoiceItem, 0, len(list))
	for _, el := range list {
		m, _ := el.(map[string]any)
		qty, _ := validation.Number(m["quantity"])
		price, _ := validation.Number(m["unit_price"])
		it := models.InvoiceItem{
			Description: stringField(m, "description"),
			Quantity:    qty,
			UnitPrice:   price,
		}
		it.ComputeTotal()
		items = append(items, it)
	}
	return items
}
