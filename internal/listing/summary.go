package listing

import (
	"github.com/shopspring/decimal"

	"swapnstay/internal/domain"
)

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Summary holds the admin dashboard figures for a product snapshot.
type Summary struct {
	Products   int             `json:"products"`
	Quantity   int             `json:"quantity"`
	Value      decimal.Decimal `json:"value"` // sum of price * quantity
	Categories []CategoryCount `json:"categories"`
}

func Summarize(products []domain.Product) Summary {
	s := Summary{Products: len(products), Value: decimal.Zero, Categories: []CategoryCount{}}
	idx := map[string]int{}
	for _, p := range products {
		s.Quantity += p.Quantity
		s.Value = s.Value.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Quantity))))
		cat := orNA(p.Category)
		i, ok := idx[cat]
		if !ok {
			i = len(s.Categories)
			idx[cat] = i
			s.Categories = append(s.Categories, CategoryCount{Category: cat})
		}
		s.Categories[i].Count++
	}
	return s
}
