package report_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"umkm-kembar-barokah/internal/model"
	"umkm-kembar-barokah/internal/report"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func sale(d, name string, qty int, price int64) report.Entry {
	return report.Entry{
		ID:          uuid.New(),
		Date:        date(d),
		Kind:        model.KindSale,
		HasProduct:  true,
		ProductName: name,
		Quantity:    qty,
		UnitPrice:   price,
		Total:       int64(qty) * price,
	}
}

func expense(d string, total int64) report.Entry {
	return report.Entry{ID: uuid.New(), Date: date(d), Kind: model.KindExpense, Quantity: 1, UnitPrice: total, Total: total}
}

func TestMondayOf(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-03-11", "2024-03-11"}, // Monday
		{"2024-03-15", "2024-03-11"}, // Friday
		{"2024-03-17", "2024-03-11"}, // Sunday belongs to the week before it
		{"2024-03-18", "2024-03-18"},
		{"2024-01-02", "2024-01-01"},
		{"2023-01-01", "2022-12-26"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, date(tt.want), report.MondayOf(date(tt.in)))
		})
	}
}

func TestMondayOf_UsesCalendarDayOfLocation(t *testing.T) {
	wib := time.FixedZone("WIB", 7*60*60)
	// Monday 00:30 in Jakarta is still Sunday in UTC.
	ts := time.Date(2024, 3, 18, 0, 30, 0, 0, wib)
	assert.Equal(t, date("2024-03-18"), report.MondayOf(ts))
}

func TestReferenceDate(t *testing.T) {
	_, ok := report.ReferenceDate(nil)
	assert.False(t, ok)

	ref, ok := report.ReferenceDate([]report.Entry{
		sale("2024-03-02", "A", 1, 1),
		sale("2024-03-15", "A", 1, 1),
		expense("2024-03-09", 5),
	})
	require.True(t, ok)
	assert.Equal(t, date("2024-03-15"), ref)
}

func TestAuditPeriod_WeekBeforeLatest(t *testing.T) {
	p := report.AuditPeriod(date("2024-03-15"))
	assert.Equal(t, date("2024-03-04"), p.Start)
	assert.Equal(t, date("2024-03-10"), p.Last())
	assert.Equal(t, 7, p.Days())
	assert.Equal(t, "4 Maret 2024 - 10 Maret 2024", p.Title())

	prev := report.PreviousPeriod(date("2024-03-15"))
	assert.Equal(t, date("2024-02-26"), prev.Start)
	assert.Equal(t, p.Start, prev.End)
}

func TestPeriod_Contains(t *testing.T) {
	p := report.AuditPeriod(date("2024-03-18"))
	assert.True(t, p.Contains(date("2024-03-11")))
	assert.True(t, p.Contains(time.Date(2024, 3, 17, 23, 59, 59, 0, time.UTC)))
	assert.False(t, p.Contains(date("2024-03-18")))
	assert.False(t, p.Contains(date("2024-03-10")))
}

func TestWeeks_Contiguous(t *testing.T) {
	for ref := date("2024-01-01"); ref.Before(date("2024-03-01")); ref = ref.AddDate(0, 0, 1) {
		weeks := report.Weeks(ref)
		require.Len(t, weeks, 4)

		for i, w := range weeks {
			assert.Equal(t, 7, w.Days())
			assert.Equal(t, time.Monday, w.Start.Weekday())
			if i > 0 {
				assert.Equal(t, weeks[i-1].End, w.Start)
			}
		}
		assert.Equal(t, report.AuditPeriod(ref), weeks[3].Period)
		assert.Equal(t, report.AuditPeriod(ref).End, report.ShareWindow(ref).End)
		assert.Equal(t, weeks[0].Start, report.ShareWindow(ref).Start)
	}
}

func TestWeeks_Labels(t *testing.T) {
	weeks := report.Weeks(date("2024-03-18"))
	assert.Equal(t, "Week 1", weeks[0].Label)
	assert.Equal(t, "(19/02/24 - 25/02/24)", weeks[0].Range)
	assert.Equal(t, "Week 4", weeks[3].Label)
	assert.Equal(t, "(11/03/24 - 17/03/24)", weeks[3].Range)
}

// A single sale on Friday 2024-03-15, reported on the Monday after.
func TestSingleSaleExample(t *testing.T) {
	entries := []report.Entry{sale("2024-03-15", "Kerupuk Kulit", 10, 1000)}
	ref := date("2024-03-18")

	audit := report.AuditPeriod(ref)
	assert.Equal(t, date("2024-03-11"), audit.Start)
	assert.Equal(t, date("2024-03-17"), audit.Last())

	sum := report.Summarize(entries, ref)
	assert.Equal(t, report.Totals{Income: 10000, Profit: 10000}, sum.Current)
	assert.Equal(t, report.Totals{Income: 10000, Profit: 10000}, sum.Delta)
	assert.Equal(t, "11 Maret 2024 - 17 Maret 2024", sum.Title)

	flow := report.CashFlow(entries, ref)
	assert.Equal(t, audit, flow[3].Period)
	assert.Equal(t, int64(10000), flow[3].Income)
	assert.Zero(t, flow[0].Income+flow[1].Income+flow[2].Income)

	share := report.ProductShare(entries, ref)
	require.Len(t, share.Slices, 1)
	assert.Equal(t, report.ShareSlice{Name: "Kerupuk Kulit", Quantity: 10, Percent: 100}, share.Slices[0])
}

func TestSummarize(t *testing.T) {
	orphan := sale("2024-03-12", "", 2, 500)
	orphan.HasProduct = false

	entries := []report.Entry{
		sale("2024-03-11", "A", 10, 1000), // audit week
		sale("2024-03-17", "B", 1, 5000),  // audit week, Sunday
		expense("2024-03-13", 4000),       // audit week
		orphan,                            // sale without product counts as expense
		sale("2024-03-05", "A", 3, 1000),  // previous week
		expense("2024-03-04", 1000),       // previous week
		sale("2024-03-18", "A", 50, 1000), // outside: current week
	}

	sum := report.Summarize(entries, date("2024-03-18"))

	assert.Equal(t, report.Totals{Income: 15000, Expense: 5000, Profit: 10000}, sum.Current)
	assert.Equal(t, report.Totals{Income: 3000, Expense: 1000, Profit: 2000}, sum.Previous)
	assert.Equal(t, report.Totals{Income: 12000, Expense: 4000, Profit: 8000}, sum.Delta)
}

func TestWeeklySales(t *testing.T) {
	entries := []report.Entry{
		sale("2024-02-20", "Stik Bawang", 4, 1000),
		sale("2024-03-12", "Stik Bawang", 2, 1000),
		sale("2024-03-13", "Kerupuk Kulit", 5, 1000),
		sale("2024-03-14", "", 1, 1000),
		expense("2024-03-12", 9000),
		sale("2024-01-01", "Kerupuk Kulit", 99, 1000), // before the first week
	}

	chart := report.WeeklySales(entries, date("2024-03-18"))

	require.Len(t, chart.Weeks, 4)
	assert.Equal(t, []report.ProductSeries{
		{Name: "Kerupuk Kulit", Quantities: []int{0, 0, 0, 5}},
		{Name: "Lainnya", Quantities: []int{0, 0, 0, 1}},
		{Name: "Stik Bawang", Quantities: []int{4, 0, 0, 2}},
	}, chart.Products)
}

func TestProductShare(t *testing.T) {
	entries := []report.Entry{
		sale("2024-02-19", "Stik Bawang", 1, 1000),
		sale("2024-03-17", "Kerupuk Kulit", 2, 1000),
		sale("2024-02-18", "Stik Bawang", 40, 1000), // one day too early
		sale("2024-03-18", "Stik Bawang", 40, 1000), // one day too late
	}

	share := report.ProductShare(entries, date("2024-03-18"))

	assert.Equal(t, 3, share.Total)
	assert.Equal(t, []report.ShareSlice{
		{Name: "Kerupuk Kulit", Quantity: 2, Percent: 67},
		{Name: "Stik Bawang", Quantity: 1, Percent: 33},
	}, share.Slices)
}

func TestSalesTrend(t *testing.T) {
	first := sale("2024-03-10", "Kerupuk Kulit", 2, 10000)
	sameDay := sale("2024-03-10", "Kerupuk Kulit", 9, 10000)
	up := sale("2024-03-11", "Kerupuk Kulit", 3, 10000)
	flat := sale("2024-03-12", "Kerupuk Kulit", 3, 10000)
	down := sale("2024-03-13", "Kerupuk Kulit", 1, 10000)
	orphan := sale("2024-03-12", "", 1, 2500)
	orphan.HasProduct = false

	entries := []report.Entry{down, flat, up, first, sameDay, orphan, expense("2024-03-13", 5000)}

	rows := report.SalesTrend(entries, "")
	require.Len(t, rows, 5)

	assert.Equal(t, down.ID.String(), rows[0].ID)
	assert.Equal(t, report.TrendDown, rows[0].Trend)
	assert.Equal(t, "-Rp 20.000", rows[0].Change)
	assert.Equal(t, "Rp 10.000", rows[0].Revenue)

	// Rows of the same day are ordered by product name.
	assert.Equal(t, "2024-03-12", rows[1].Date)
	assert.Equal(t, "Kerupuk Kulit", rows[1].Product)
	assert.Equal(t, "Stabil", rows[1].Change)
	assert.Equal(t, "N/A", rows[2].Product)
	assert.True(t, rows[2].FirstData)

	assert.Equal(t, report.TrendUp, rows[3].Trend)
	assert.Equal(t, "+Rp 10.000", rows[3].Change)

	assert.Equal(t, first.ID.String(), rows[4].ID)
	assert.Equal(t, "Data Awal", rows[4].Change)
	assert.Equal(t, report.TrendNeutral, rows[4].Trend)
	assert.Equal(t, "Pcs", rows[4].Unit)

	filtered := report.SalesTrend(entries, "  KERUPUK ")
	assert.Len(t, filtered, 4)
	for _, r := range filtered {
		assert.Equal(t, "Kerupuk Kulit", r.Product)
	}
}
