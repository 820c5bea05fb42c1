package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"umkm-kembar-barokah/internal/model"
	"umkm-kembar-barokah/internal/report"
	"umkm-kembar-barokah/internal/service"
)

func TestDashboardService_FromLedger(t *testing.T) {
	ctx := context.Background()
	f := newLedger(t, true)
	dash := service.NewDashboardService(f.products, f.entries)

	kerupuk := f.product(t, "Kerupuk Kulit", 100, 1000)
	_, err := f.svc.RecordSale(ctx, &service.SaleRequest{ProductID: kerupuk, Date: "2024-03-15", Quantity: 10}, actor)
	require.NoError(t, err)
	_, err = f.svc.RecordExpense(ctx, &service.ExpenseRequest{
		Source: "Listrik", Date: "2024-03-13", Quantity: 5, UnitPrice: price(2000),
	}, actor)
	require.NoError(t, err)

	t.Run("ExplicitAnchor", func(t *testing.T) {
		sum, err := dash.Summary(ctx, "2024-03-18")
		require.NoError(t, err)
		assert.Equal(t, report.Totals{Income: 10000, Expense: 10000, Profit: 0}, sum.Current)
		assert.Equal(t, "11 Maret 2024 - 17 Maret 2024", sum.Title)

		share, err := dash.ProductShare(ctx, "2024-03-18")
		require.NoError(t, err)
		require.Len(t, share.Slices, 1)
		assert.Equal(t, "Kerupuk Kulit", share.Slices[0].Name)
		assert.Equal(t, 10, share.Slices[0].Quantity)

		flow, err := dash.CashFlow(ctx, "2024-03-18")
		require.NoError(t, err)
		assert.Equal(t, int64(10000), flow[3].Expense)

		sales, err := dash.WeeklySales(ctx, "2024-03-18")
		require.NoError(t, err)
		require.Len(t, sales.Products, 1)
		assert.Equal(t, []int{0, 0, 0, 10}, sales.Products[0].Quantities)
	})

	t.Run("AnchorFromLatestEntry", func(t *testing.T) {
		// Latest entry is in the week of 11 March, so the audit week is the one before.
		sum, err := dash.Summary(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, "4 Maret 2024 - 10 Maret 2024", sum.Title)
		assert.Equal(t, report.Totals{}, sum.Current)
		assert.Equal(t, report.Totals{}, sum.Delta)
	})

	t.Run("InvalidAnchor", func(t *testing.T) {
		_, err := dash.Summary(ctx, "18-03-2024")
		var vErr *service.ValidationError
		assert.True(t, errors.As(err, &vErr))
	})

	t.Run("Trend", func(t *testing.T) {
		rows, err := dash.SalesTrend(ctx, "kerupuk")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Rp 10.000", rows[0].Revenue)
		assert.Equal(t, "Pcs", rows[0].Unit)
	})

	t.Run("Stats", func(t *testing.T) {
		stats, err := dash.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), stats.TotalProducts)
		assert.Zero(t, stats.LowStockCount)
		assert.Equal(t, int64(90*1000), stats.TotalValuation)
	})
}

func TestDashboardService_LegacyKindRows(t *testing.T) {
	ctx := context.Background()
	f := newLedger(t, true)
	dash := service.NewDashboardService(f.products, f.entries)
	id := f.product(t, "Stik Bawang", 10, 500)

	entry, err := f.svc.RecordSale(ctx, &service.SaleRequest{ProductID: id, Date: "2024-03-12", Quantity: 2}, actor)
	require.NoError(t, err)
	// Rows imported from the old system bypass hooks.
	require.NoError(t, f.db.Exec("UPDATE audit_data SET jenis_transaksi = ? WHERE id = ?", "pemasukan", entry.ID).Error)

	sum, err := dash.Summary(ctx, "2024-03-18")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), sum.Current.Income)

	stored, err := f.svc.GetEntry(ctx, entry.ID)
	require.NoError(t, err)
	_, isSale := stored.Ledger().(model.Sale)
	assert.True(t, isSale)
}

func TestDashboardService_ProductReferences(t *testing.T) {
	ctx := context.Background()
	f := newLedger(t, true)
	dash := service.NewDashboardService(f.products, f.entries)

	gone := f.product(t, "Dodol Lama", 10, 1000)
	kept := f.product(t, "Wajik", 10, 500)
	_, err := f.svc.RecordSale(ctx, &service.SaleRequest{ProductID: gone, Date: "2024-03-12", Quantity: 2}, actor)
	require.NoError(t, err)
	orphan, err := f.svc.RecordSale(ctx, &service.SaleRequest{ProductID: kept, Date: "2024-03-13", Quantity: 4}, actor)
	require.NoError(t, err)

	// A deleted product leaves its id on the ledger row: still a sale.
	_, err = f.products.Delete(ctx, gone)
	require.NoError(t, err)
	// Only a row without any product reference is treated as an expense.
	require.NoError(t, f.db.Exec("UPDATE audit_data SET produk_id = NULL WHERE id = ?", orphan.ID).Error)

	sum, err := dash.Summary(ctx, "2024-03-18")
	require.NoError(t, err)
	assert.Equal(t, report.Totals{Income: 2000, Expense: 2000, Profit: 0}, sum.Current)

	flow, err := dash.CashFlow(ctx, "2024-03-18")
	require.NoError(t, err)
	assert.Equal(t, int64(2000), flow[3].Income)
	assert.Equal(t, int64(2000), flow[3].Expense)

	share, err := dash.ProductShare(ctx, "2024-03-18")
	require.NoError(t, err)
	require.Len(t, share.Slices, 1)
	assert.Equal(t, report.FallbackShareLabel, share.Slices[0].Name)
	assert.Equal(t, 6, share.Slices[0].Quantity)
}
