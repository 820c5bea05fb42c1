package service

import (
	"context"
	"time"

	"umkm-kembar-barokah/internal/repository"
	"umkm-kembar-barokah/internal/report"
)

// DashboardService serves the weekly figures. Each method accepts an optional
// reference date (YYYY-MM-DD); empty means the date of the latest entry.
type DashboardService interface {
	Stats(ctx context.Context) (*repository.DashboardStats, error)
	Summary(ctx context.Context, ref string) (*report.Summary, error)
	CashFlow(ctx context.Context, ref string) ([]report.CashFlowWeek, error)
	WeeklySales(ctx context.Context, ref string) (*report.WeeklySalesChart, error)
	ProductShare(ctx context.Context, ref string) (*report.Share, error)
	SalesTrend(ctx context.Context, search string) ([]report.TrendRow, error)
}

type dashboardService struct {
	productRepo repository.ProductRepository
	auditRepo   repository.AuditRepository
	now         func() time.Time
}

func NewDashboardService(pRepo repository.ProductRepository, aRepo repository.AuditRepository) DashboardService {
	return &dashboardService{productRepo: pRepo, auditRepo: aRepo, now: time.Now}
}

func (s *dashboardService) Stats(ctx context.Context) (*repository.DashboardStats, error) {
	stats, err := s.productRepo.Stats(ctx)
	if err != nil {
		return nil, storeErr("mengambil statistik", err)
	}
	return stats, nil
}

func (s *dashboardService) Summary(ctx context.Context, ref string) (*report.Summary, error) {
	entries, anchor, err := s.load(ctx, ref)
	if err != nil {
		return nil, err
	}
	sum := report.Summarize(entries, anchor)
	return &sum, nil
}

func (s *dashboardService) CashFlow(ctx context.Context, ref string) ([]report.CashFlowWeek, error) {
	entries, anchor, err := s.load(ctx, ref)
	if err != nil {
		return nil, err
	}
	return report.CashFlow(entries, anchor), nil
}

func (s *dashboardService) WeeklySales(ctx context.Context, ref string) (*report.WeeklySalesChart, error) {
	entries, anchor, err := s.load(ctx, ref)
	if err != nil {
		return nil, err
	}
	chart := report.WeeklySales(entries, anchor)
	return &chart, nil
}

func (s *dashboardService) ProductShare(ctx context.Context, ref string) (*report.Share, error) {
	entries, anchor, err := s.load(ctx, ref)
	if err != nil {
		return nil, err
	}
	share := report.ProductShare(entries, anchor)
	return &share, nil
}

func (s *dashboardService) SalesTrend(ctx context.Context, search string) ([]report.TrendRow, error) {
	entries, err := s.entries(ctx)
	if err != nil {
		return nil, err
	}
	return report.SalesTrend(entries, search), nil
}

func (s *dashboardService) entries(ctx context.Context) ([]report.Entry, error) {
	rows, err := s.auditRepo.FindAll(ctx, repository.AuditFilter{})
	if err != nil {
		return nil, storeErr("mengambil data audit", err)
	}
	entries := make([]report.Entry, len(rows))
	for i := range rows {
		entries[i] = report.FromAudit(&rows[i])
	}
	return entries, nil
}

// load returns the whole ledger and the anchor date. An empty ledger without
// an explicit anchor falls back to today.
func (s *dashboardService) load(ctx context.Context, ref string) ([]report.Entry, time.Time, error) {
	var anchor time.Time
	if ref != "" {
		t, err := time.ParseInLocation(dateLayout, ref, jakartaLoc)
		if err != nil {
			return nil, time.Time{}, newValidationError("reference_date harus berformat YYYY-MM-DD")
		}
		anchor = t
	}

	entries, err := s.entries(ctx)
	if err != nil {
		return nil, time.Time{}, err
	}

	if anchor.IsZero() {
		latest, ok := report.ReferenceDate(entries)
		if !ok {
			latest = s.now().In(jakartaLoc)
		}
		anchor = latest
	}
	return entries, anchor, nil
}
