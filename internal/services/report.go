package services

import (
	"errors"
	"math"
	"sort"
	"time"

	"gorm.io/gorm"

	"invoiceapp/internal/models"
	"invoiceapp/internal/policy"
	"invoiceapp/internal/validation"
)

// ReportService aggregates a user's invoices into persisted reports and the
// live dashboard view.
type ReportService struct {
	DB *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService { return &ReportService{DB: db} }

// ReportSummary holds the headline figures, rounded to 2 decimals.
type ReportSummary struct {
	TotalInvoices       int     `json:"total_invoices"`
	TotalRevenue        float64 `json:"total_revenue"`
	PaidRevenue         float64 `json:"paid_revenue"`
	PendingRevenue      float64 `json:"pending_revenue"`
	OverdueRevenue      float64 `json:"overdue_revenue"`
	AverageInvoiceValue float64 `json:"average_invoice_value"`
}

type StatusBreakdown struct {
	Draft   int `json:"draft"`
	Sent    int `json:"sent"`
	Paid    int `json:"paid"`
	Overdue int `json:"overdue"`
}

type MonthlyBucket struct {
	Month   string  `json:"month"` // e.g. "January 2026"
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

type CustomerTotal struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

type DateRange struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// ReportData is the payload persisted in a report row.
type ReportData struct {
	Summary         ReportSummary   `json:"summary"`
	StatusBreakdown StatusBreakdown `json:"status_breakdown"`
	MonthlyData     []MonthlyBucket `json:"monthly_data"`
	TopCustomers    []CustomerTotal `json:"top_customers"`
	DateRange       DateRange       `json:"date_range"`
}

type DashboardOverview struct {
	TotalInvoices  int     `json:"total_invoices"`
	TotalRevenue   float64 `json:"total_revenue"`
	MonthlyRevenue float64 `json:"monthly_revenue"`
	PaidCount      int     `json:"paid_count"`
	PendingCount   int     `json:"pending_count"`
	OverdueCount   int     `json:"overdue_count"`
}

// Dashboard is computed fresh on every call, never persisted.
type Dashboard struct {
	Overview       DashboardOverview `json:"overview"`
	RecentInvoices []models.Invoice  `json:"recent_invoices"`
}

// List returns all reports owned by the caller, newest first.
func (s *ReportService) List(ownerID uint) ([]models.Report, error) {
	reports := []models.Report{}
	err := s.DB.Scopes(policy.OwnedBy(ownerID)).
		Order("created_at DESC, id DESC").
		Find(&reports).Error
	return reports, err
}

// Generate aggregates the caller's invoices with issue_date in
// [startDate, endDate] inclusive and persists the result as a report row.
func (s *ReportService) Generate(ownerID uint, reportType, startDate, endDate string) (*models.Report, error) {
	if reportType == "" || startDate == "" || endDate == "" {
		return nil, validationErr("report_type, start_date, and end_date are required")
	}
	if msg := validation.DateString(startDate, "start_date"); msg != "" {
		return nil, validationErr(msg)
	}
	if msg := validation.DateString(endDate, "end_date"); msg != "" {
		return nil, validationErr(msg)
	}
	start, _ := models.ParseDate(startDate)
	end, _ := models.ParseDate(endDate)

	var invoices []models.Invoice
	err := s.DB.Scopes(policy.OwnedBy(ownerID)).
		Where("issue_date >= ? AND issue_date <= ?", start, end).
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}

	data := buildReportData(invoices, start, end)
	report := models.Report{
		UserID:     ownerID,
		ReportType: reportType,
		StartDate:  start,
		EndDate:    end,
	}
	if err := report.SetData(data); err != nil {
		return nil, err
	}
	if err := s.DB.Create(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func buildReportData(invoices []models.Invoice, start, end models.Date) ReportData {
	var totalRevenue, paidRevenue, pendingRevenue, overdueRevenue float64
	var breakdown StatusBreakdown
	for _, inv := range invoices {
		totalRevenue += inv.TotalAmount
		switch inv.Status {
		case models.StatusPaid:
			paidRevenue += inv.TotalAmount
			breakdown.Paid++
		case models.StatusOverdue:
			overdueRevenue += inv.TotalAmount
			breakdown.Overdue++
		case models.StatusSent:
			pendingRevenue += inv.TotalAmount
			breakdown.Sent++
		default:
			pendingRevenue += inv.TotalAmount
			breakdown.Draft++
		}
	}

	// Monthly buckets keyed YYYY-MM, in first-encounter order.
	bucketIndex := map[string]int{}
	monthly := []MonthlyBucket{}
	for _, inv := range invoices {
		key := inv.IssueDate.Format("2006-01")
		idx, ok := bucketIndex[key]
		if !ok {
			idx = len(monthly)
			bucketIndex[key] = idx
			monthly = append(monthly, MonthlyBucket{Month: inv.IssueDate.Format("January 2006")})
		}
		monthly[idx].Count++
		monthly[idx].Revenue += inv.TotalAmount
	}

	// Top 5 customers by revenue; stable sort keeps encounter order on ties.
	customerIndex := map[string]int{}
	customers := []CustomerTotal{}
	for _, inv := range invoices {
		idx, ok := customerIndex[inv.CustomerName]
		if !ok {
			idx = len(customers)
			customerIndex[inv.CustomerName] = idx
			customers = append(customers, CustomerTotal{Name: inv.CustomerName})
		}
		customers[idx].Count++
		customers[idx].Revenue += inv.TotalAmount
	}
	sort.SliceStable(customers, func(i, j int) bool {
		return customers[i].Revenue > customers[j].Revenue
	})
	if len(customers) > 5 {
		customers = customers[:5]
	}

	average := 0.0
	if len(invoices) > 0 {
		average = round2(totalRevenue / float64(len(invoices)))
	}
	return ReportData{
		Summary: ReportSummary{
			TotalInvoices:       len(invoices),
			TotalRevenue:        round2(totalRevenue),
			PaidRevenue:         round2(paidRevenue),
			PendingRevenue:      round2(pendingRevenue),
			OverdueRevenue:      round2(overdueRevenue),
			AverageInvoiceValue: average,
		},
		StatusBreakdown: breakdown,
		MonthlyData:     monthly,
		TopCustomers:    customers,
		DateRange:       DateRange{StartDate: start.String(), EndDate: end.String()},
	}
}

// Dashboard computes totals over all of the caller's invoices plus
// current-calendar-month revenue and the 5 most recent invoices.
func (s *ReportService) Dashboard(ownerID uint) (*Dashboard, error) {
	var invoices []models.Invoice
	err := s.DB.Scopes(policy.OwnedBy(ownerID)).Find(&invoices).Error
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	startOfMonth := models.NewDate(time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC))

	var overview DashboardOverview
	var totalRevenue, monthlyRevenue float64
	for _, inv := range invoices {
		totalRevenue += inv.TotalAmount
		if !inv.IssueDate.Before(startOfMonth.Time) {
			monthlyRevenue += inv.TotalAmount
		}
		switch inv.Status {
		case models.StatusPaid:
			overview.PaidCount++
		case models.StatusOverdue:
			overview.OverdueCount++
		default: // draft and sent are both pending
			overview.PendingCount++
		}
	}
	overview.TotalInvoices = len(invoices)
	overview.TotalRevenue = round2(totalRevenue)
	overview.MonthlyRevenue = round2(monthlyRevenue)

	recent := []models.Invoice{}
	err = s.DB.Scopes(policy.OwnedBy(ownerID)).
		Preload("Items").
		Order("created_at DESC, id DESC").
		Limit(5).
		Find(&recent).Error
	if err != nil {
		return nil, err
	}
	return &Dashboard{Overview: overview, RecentInvoices: recent}, nil
}

// Delete removes a report owned by the caller.
func (s *ReportService) Delete(ownerID, id uint) error {
	var report models.Report
	err := s.DB.Scopes(policy.OwnedBy(ownerID)).First(&report, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return s.DB.Delete(&report).Error
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
