package policy

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"invoiceapp/internal/models"
)

func TestOwns(t *testing.T) {
	inv := &models.Invoice{UserID: 7}
	if !Owns(inv, 7) {
		t.Error("owner should own their invoice")
	}
	if Owns(inv, 8) {
		t.Error("non-owner must not own the invoice")
	}
	if Owns(nil, 7) {
		t.Error("nil resource must not be owned")
	}
}

func TestOwnedByScope(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Invoice{}, &models.InvoiceItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	for i, uid := range []uint{1, 1, 2} {
		inv := models.Invoice{
			InvoiceNumber: fmt.Sprintf("INV-TEST-%d", i),
			UserID:        uid,
			CustomerName:  "C",
			IssueDate:     models.Today(),
			DueDate:       models.Today(),
		}
		if err := db.Create(&inv).Error; err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	var mine []models.Invoice
	if err := db.Scopes(OwnedBy(1)).Find(&mine).Error; err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("user 1 should see 2 invoices, got %d", len(mine))
	}
	for _, inv := range mine {
		if inv.UserID != 1 {
			t.Errorf("leaked invoice owned by user %d", inv.UserID)
		}
	}
}
