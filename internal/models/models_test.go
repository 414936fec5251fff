package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestInvoice_GetUserID(t *testing.T) {
	inv := &Invoice{UserID: 42}
	if got := inv.GetUserID(); got != 42 {
		t.Errorf("GetUserID() = %d, want 42", got)
	}
}

func TestInvoiceItem_ComputeTotal(t *testing.T) {
	tests := []struct {
		name      string
		quantity  float64
		unitPrice float64
		want      float64
	}{
		{"2 x 50", 2, 50, 100},
		{"1 x 100", 1, 100, 100},
		{"fractional quantity", 2.5, 10, 25},
		{"zero price", 3, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := &InvoiceItem{Quantity: tt.quantity, UnitPrice: tt.unitPrice}
			it.ComputeTotal()
			if it.Total != tt.want {
				t.Errorf("Total = %f, want %f", it.Total, tt.want)
			}
		})
	}
}

func TestInvoice_ComputeTotals(t *testing.T) {
	inv := &Invoice{
		TaxRate: 10,
		Items: []InvoiceItem{
			{Total: 100},
			{Total: 100},
		},
	}
	inv.ComputeTotals()
	if inv.Subtotal != 200 {
		t.Errorf("Subtotal = %f, want 200", inv.Subtotal)
	}
	if inv.TaxAmount != 20 {
		t.Errorf("TaxAmount = %f, want 20", inv.TaxAmount)
	}
	if inv.TotalAmount != 220 {
		t.Errorf("TotalAmount = %f, want 220", inv.TotalAmount)
	}
}

func TestInvoice_ComputeTotalsNoItems(t *testing.T) {
	inv := &Invoice{TaxRate: 20, Subtotal: 99, TaxAmount: 9, TotalAmount: 108}
	inv.ComputeTotals()
	if inv.Subtotal != 0 || inv.TaxAmount != 0 || inv.TotalAmount != 0 {
		t.Errorf("empty item set should zero totals, got %f/%f/%f", inv.Subtotal, inv.TaxAmount, inv.TotalAmount)
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d, err := ParseDate("2026-01-15")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2026-01-15"` {
		t.Errorf("marshal = %s", b)
	}
	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Errorf("round trip mismatch: %v != %v", back, d)
	}
}

func TestDate_Scan(t *testing.T) {
	var d Date
	if err := d.Scan("2026-03-01"); err != nil {
		t.Fatalf("scan string: %v", err)
	}
	if d.String() != "2026-03-01" {
		t.Errorf("scan string = %s", d)
	}
	if err := d.Scan(time.Date(2026, 3, 1, 15, 4, 5, 0, time.UTC)); err != nil {
		t.Fatalf("scan time: %v", err)
	}
	if d.String() != "2026-03-01" {
		t.Errorf("scan time should truncate to date, got %s", d)
	}
}

func TestReport_SetData(t *testing.T) {
	r := &Report{}
	if err := r.SetData(map[string]any{"total": 3}); err != nil {
		t.Fatalf("set data: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(r.Data), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded["total"] != float64(3) {
		t.Errorf("payload = %#v", decoded)
	}
}

func TestUser_PasswordHashing(t *testing.T) {
	u := &User{}
	if err := u.SetPassword("testpassword123"); err != nil {
		t.Fatalf("set password: %v", err)
	}
	if u.PasswordHash == "testpassword123" {
		t.Fatal("password stored in plaintext")
	}
	if !u.CheckPassword("testpassword123") {
		t.Error("correct password rejected")
	}
	if u.CheckPassword("wrongpassword") {
		t.Error("wrong password accepted")
	}
}
