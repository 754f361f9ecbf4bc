package catalog

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// SaleItemIDs are the product item kinds currently on sale.
var SaleItemIDs = []int{1, 15, 106, 9, 96, 28, 5, 95, 146, 3, 13, 151, 109}

// Filter returns the items whose name contains query and, if saleOnly is
// set, whose ItemID is on sale. Matching is case-insensitive and
// width-insensitive: names and query are NFKC-normalized and case-folded,
// so "ＳＴＡＲ" matches "star".
func Filter(items []Item, query string, saleOnly bool) []Item {
	q := fold(strings.TrimSpace(query))
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if q != "" && !strings.Contains(fold(it.Name), q) {
			continue
		}
		if saleOnly && !slices.Contains(SaleItemIDs, it.ItemID) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func fold(s string) string {
	return cases.Fold().String(norm.NFKC.String(s))
}
