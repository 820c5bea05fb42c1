package report

import (
	"sort"
	"strings"

	"umkm-kembar-barokah/internal/model"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Trend string

const (
	TrendUp      Trend = "up"
	TrendDown    Trend = "down"
	TrendNeutral Trend = "neutral"

	changeFirst  = "Data Awal"
	changeStable = "Stabil"
)

// TrendRow is one day of one product in the sales trend table.
type TrendRow struct {
	ID        string `json:"id"`
	Product   string `json:"produk"`
	Price     string `json:"harga"`
	Unit      string `json:"satuan"`
	Quantity  int    `json:"jumlah"`
	Date      string `json:"tanggal"`
	Revenue   string `json:"pendapatan"`
	Change    string `json:"perubahan"`
	Trend     Trend  `json:"trend"`
	FirstData bool   `json:"is_first_data"`

	RevenueValue int64 `json:"pendapatan_nilai"`
}

// SalesTrend lists each product's sales day by day, comparing every day's
// revenue with the product's previous recorded day. Only the first entry of a
// day (in input order) is kept. Rows come newest first and are filtered by a
// case-insensitive product name search when search is not empty.
func SalesTrend(entries []Entry, search string) []TrendRow {
	p := message.NewPrinter(language.Indonesian)
	rupiah := func(v int64) string { return p.Sprintf("Rp %d", v) }

	groups := map[string][]Entry{}
	for _, e := range entries {
		if !e.IsSale() {
			continue
		}
		name := nameOr(e.ProductName, FallbackTrendLabel)
		groups[name] = append(groups[name], e)
	}

	type dated struct {
		row  TrendRow
		date int64
	}
	var all []dated

	for name, items := range groups {
		sort.SliceStable(items, func(i, j int) bool { return day(items[i].Date).Before(day(items[j].Date)) })

		var prev *Entry
		for i := range items {
			e := items[i]
			if prev != nil && day(prev.Date).Equal(day(e.Date)) {
				continue
			}

			row := TrendRow{
				ID:           e.ID.String(),
				Product:      name,
				Price:        rupiah(e.UnitPrice),
				Unit:         nameOr(e.Unit, model.DefaultUnit),
				Quantity:     e.Quantity,
				Date:         day(e.Date).Format("2006-01-02"),
				Revenue:      rupiah(e.Total),
				RevenueValue: e.Total,
				Trend:        TrendNeutral,
				Change:       changeFirst,
				FirstData:    prev == nil,
			}
			if prev != nil {
				switch diff := e.Total - prev.Total; {
				case diff > 0:
					row.Trend, row.Change = TrendUp, "+"+rupiah(diff)
				case diff < 0:
					row.Trend, row.Change = TrendDown, "-"+rupiah(-diff)
				default:
					row.Change = changeStable
				}
			}

			all = append(all, dated{row: row, date: day(e.Date).Unix()})
			prev = &items[i]
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].date != all[j].date {
			return all[i].date > all[j].date
		}
		return all[i].row.Product < all[j].row.Product
	})

	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(search))

	rows := make([]TrendRow, 0, len(all))
	for _, d := range all {
		if needle != "" && !strings.Contains(fold.String(d.row.Product), needle) {
			continue
		}
		rows = append(rows, d.row)
	}
	return rows
}
