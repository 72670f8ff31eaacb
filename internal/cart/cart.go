package cart

import (
	"context"

	"github.com/mkravtsov/fishshop/internal/models"
)

// Line is one cart entry. The session owns the slice; the functions here are
// pure logic over it. A product id appears in at most one line.
type Line struct {
	ProductID uint `json:"product_id"`
	Quantity  uint `json:"quantity"`
}

// View is a hydrated line: current catalog fields joined with the quantity.
type View struct {
	models.Fish
	Quantity uint `json:"quantity"`
}

// CatalogLookup is the batch product lookup hydration joins against.
type CatalogLookup interface {
	FishByIDs(ctx context.Context, ids []uint) ([]models.Fish, error)
}

// Add increments the existing line for productID or appends a quantity-1
// line. No check that the product exists happens here; stale ids fall out at
// hydration.
func Add(lines []Line, productID uint) []Line {
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity++
			return lines
		}
	}
	return append(lines, Line{ProductID: productID, Quantity: 1})
}

// Remove drops the line for productID. Removing an absent id is a no-op.
func Remove(lines []Line, productID uint) []Line {
	for i := range lines {
		if lines[i].ProductID == productID {
			return append(lines[:i], lines[i+1:]...)
		}
	}
	return lines
}

// Quantity reports the quantity for productID, zero when absent.
func Quantity(lines []Line, productID uint) uint {
	for i := range lines {
		if lines[i].ProductID == productID {
			return lines[i].Quantity
		}
	}
	return 0
}

// Size is the total number of units across all lines.
func Size(lines []Line) uint {
	var n uint
	for i := range lines {
		n += lines[i].Quantity
	}
	return n
}

// Hydrate joins the lines against the current catalog, preserving line
// order. Lines whose product no longer resolves are silently dropped from
// the view; the underlying session sequence is left untouched. An empty cart
// hydrates to an empty view without hitting the lookup.
func Hydrate(ctx context.Context, lines []Line, lookup CatalogLookup) ([]View, error) {
	if len(lines) == 0 {
		return []View{}, nil
	}

	ids := make([]uint, len(lines))
	for i, line := range lines {
		ids[i] = line.ProductID
	}

	fishes, err := lookup.FishByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]models.Fish, len(fishes))
	for _, f := range fishes {
		byID[f.ID] = f
	}

	views := make([]View, 0, len(lines))
	for _, line := range lines {
		f, ok := byID[line.ProductID]
		if !ok {
			continue
		}
		views = append(views, View{Fish: f, Quantity: line.Quantity})
	}
	return views, nil
}
