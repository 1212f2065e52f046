// Package adapter holds the thin, pre-core translation from bulk menu
// entries (as they arrive over the API) into the per-serving Items the
// solvers operate on. Per spec §1, this is data shaping only and
// contains no design choices beyond the splitting arithmetic itself.
package adapter

import (
	"fmt"

	"github.com/h-rajagopal/cart-bundler-v0/internal/bundle/domain"
)

// Rating is the optional vote-count input on a menu entry.
type Rating struct {
	UpvoteCount   int
	DownvoteCount int
	ReviewCount   int
}

// MenuItemInput is a bulk menu entry as received from the external menu
// service (spec §6), before serving-unit splitting.
type MenuItemInput struct {
	ID         string
	Name       string
	PriceCents int
	Serves     int
	Diet       domain.Diet
	Stock      int
	Load       int
	Rating     *Rating
}

// Split expands a single bulk menu entry into its per-serving Items, per
// spec §6: id "{id}#{1..serves}", per-serving price = ceil(priceCents /
// serves), per-serving stock = floor(stock / serves), same diet and load.
// If serves <= 0, the resulting per-serving stock is 0, or serving count
// is non-positive, the entry contributes no items.
func Split(in MenuItemInput) []domain.Item {
	if in.Serves <= 0 {
		return nil
	}

	perServingStock := in.Stock / in.Serves
	if perServingStock <= 0 {
		return nil
	}

	perServingPrice := ceilDiv(in.PriceCents, in.Serves)

	rating := Rating{}
	if in.Rating != nil {
		rating = *in.Rating
	}

	items := make([]domain.Item, 0, in.Serves)
	for n := 1; n <= in.Serves; n++ {
		items = append(items, domain.Item{
			ID:            fmt.Sprintf("%s#%d", in.ID, n),
			Name:          in.Name,
			PriceCents:    perServingPrice,
			Diet:          in.Diet,
			AvailableQty:  perServingStock,
			PrepLoad:      in.Load,
			UpvoteCount:   rating.UpvoteCount,
			DownvoteCount: rating.DownvoteCount,
			ReviewCount:   rating.ReviewCount,
		})
	}
	return items
}

// SplitAll expands a full menu into its per-serving items.
func SplitAll(menu []MenuItemInput) []domain.Item {
	var items []domain.Item
	for _, in := range menu {
		items = append(items, Split(in)...)
	}
	return items
}

func ceilDiv(a, b int) int {
	if b == 0 {
		return 0
	}
	return (a + b - 1) / b
}
