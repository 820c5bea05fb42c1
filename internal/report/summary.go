package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Totals are the money figures of one period.
type Totals struct {
	Income  int64 `json:"pendapatan"`
	Expense int64 `json:"pengeluaran"`
	Profit  int64 `json:"profit"`
}

func (t Totals) minus(o Totals) Totals {
	return Totals{
		Income:  t.Income - o.Income,
		Expense: t.Expense - o.Expense,
		Profit:  t.Profit - o.Profit,
	}
}

// Summary backs the dashboard scorecards.
type Summary struct {
	ReferenceDate  time.Time `json:"reference_date"`
	Period         Period    `json:"periode"`
	PreviousPeriod Period    `json:"periode_sebelumnya"`
	Title          string    `json:"minggu_data"`
	Current        Totals    `json:"current"`
	Previous       Totals    `json:"previous"`
	Delta          Totals    `json:"delta"`
}

func totalsIn(entries []Entry, p Period) Totals {
	var t Totals
	for _, e := range entries {
		if !p.Contains(e.Date) {
			continue
		}
		if e.IsExpense() {
			t.Expense += abs(e.Total)
		} else {
			t.Income += abs(e.Total)
		}
	}
	t.Profit = t.Income - t.Expense
	return t
}

// Summarize compares the audit period with the week before it.
func Summarize(entries []Entry, ref time.Time) Summary {
	audit := AuditPeriod(ref)
	prev := PreviousPeriod(ref)

	cur := totalsIn(entries, audit)
	old := totalsIn(entries, prev)

	return Summary{
		ReferenceDate:  day(ref),
		Period:         audit,
		PreviousPeriod: prev,
		Title:          audit.Title(),
		Current:        cur,
		Previous:       old,
		Delta:          cur.minus(old),
	}
}

// CashFlowWeek is one bar pair of the cash flow chart.
type CashFlowWeek struct {
	Week
	Income  int64 `json:"pendapatan"`
	Expense int64 `json:"pengeluaran"`
}

// CashFlow sums income and expense into the four chart weeks.
func CashFlow(entries []Entry, ref time.Time) []CashFlowWeek {
	weeks := Weeks(ref)
	out := make([]CashFlowWeek, len(weeks))
	for i, w := range weeks {
		// Same classification as the scorecards, including the null-product rule.
		t := totalsIn(entries, w.Period)
		out[i] = CashFlowWeek{Week: w, Income: t.Income, Expense: t.Expense}
	}
	return out
}

// ProductSeries is the sold quantity of one product per chart week.
type ProductSeries struct {
	Name       string `json:"nama_produk"`
	Quantities []int  `json:"jumlah"`
}

type WeeklySalesChart struct {
	Weeks    []Week          `json:"weeks"`
	Products []ProductSeries `json:"products"`
}

// WeeklySales sums sold quantity per product name into the four chart weeks.
func WeeklySales(entries []Entry, ref time.Time) WeeklySalesChart {
	weeks := Weeks(ref)
	byName := map[string][]int{}

	for _, e := range entries {
		if !e.IsSale() {
			continue
		}
		for i, w := range weeks {
			if !w.Contains(e.Date) {
				continue
			}
			name := nameOr(e.ProductName, FallbackShareLabel)
			if byName[name] == nil {
				byName[name] = make([]int, len(weeks))
			}
			byName[name][i] += e.Quantity
			break
		}
	}

	products := make([]ProductSeries, 0, len(byName))
	for name, qty := range byName {
		products = append(products, ProductSeries{Name: name, Quantities: qty})
	}
	sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })

	return WeeklySalesChart{Weeks: weeks, Products: products}
}

type ShareSlice struct {
	Name     string `json:"nama_produk"`
	Quantity int    `json:"jumlah"`
	Percent  int    `json:"persen"`
}

type Share struct {
	Period Period       `json:"periode"`
	Total  int          `json:"total"`
	Slices []ShareSlice `json:"slices"`
}

// ProductShare groups sold quantity by product over the 28 days ending with
// the audit period. Largest slice first.
func ProductShare(entries []Entry, ref time.Time) Share {
	window := ShareWindow(ref)
	byName := map[string]int{}
	total := 0

	for _, e := range entries {
		if !e.IsSale() || !window.Contains(e.Date) {
			continue
		}
		byName[nameOr(e.ProductName, FallbackShareLabel)] += e.Quantity
		total += e.Quantity
	}

	slices := make([]ShareSlice, 0, len(byName))
	for name, qty := range byName {
		s := ShareSlice{Name: name, Quantity: qty}
		if total > 0 {
			s.Percent = percentOf(qty, total)
		}
		slices = append(slices, s)
	}
	sort.Slice(slices, func(i, j int) bool {
		if slices[i].Quantity != slices[j].Quantity {
			return slices[i].Quantity > slices[j].Quantity
		}
		return slices[i].Name < slices[j].Name
	})

	return Share{Period: window, Total: total, Slices: slices}
}

func nameOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}

// percentOf is part/whole as a whole percentage, rounded half up.
func percentOf(part, whole int) int {
	p := decimal.NewFromInt(int64(part)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(whole)))
	return int(p.Round(0).IntPart())
}
