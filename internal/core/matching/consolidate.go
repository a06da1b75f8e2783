package matching

import (
	"chef-virtual/internal/pkg/common"

	"github.com/shopspring/decimal"
)

// Consolidate merges duplicate product lines within a retailer order: pack
// counts are summed and the line total recomputed from the unit price, never
// from the stale per-line totals. First-seen order of distinct product names
// is preserved. Consolidating an already consolidated order is a no-op.
func Consolidate(lines []common.OrderLine) []common.OrderLine {
	if len(lines) < 2 {
		return lines
	}

	index := make(map[string]int, len(lines))
	out := make([]common.OrderLine, 0, len(lines))
	for _, line := range lines {
		if i, ok := index[line.ProductName]; ok {
			out[i].PackCount += line.PackCount
			out[i].LineTotal = out[i].UnitPrice.Mul(decimal.NewFromInt(int64(out[i].PackCount)))
			continue
		}
		index[line.ProductName] = len(out)
		out = append(out, line)
	}
	return out
}
