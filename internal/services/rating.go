package services

import (
	"context"

	"catalog/internal/models"
	"catalog/internal/repositories"

	"github.com/shopspring/decimal"
)

// AggregateRating is the mean of grades rounded half-to-even to two decimals,
// or models.DefaultRating when there are none.
func AggregateRating(grades []int) float64 {
	if len(grades) == 0 {
		return models.DefaultRating
	}
	sum := decimal.Zero
	for _, g := range grades {
		sum = sum.Add(decimal.NewFromInt(int64(g)))
	}
	mean := sum.Div(decimal.NewFromInt(int64(len(grades)))).RoundBank(2)
	f, _ := mean.Float64()
	return f
}

// recomputeRating rewrites the product's aggregate from its active ratings. The caller must
// hold the product row lock inside tx.
func recomputeRating(ctx context.Context, tx repositories.Store, productID int64) (float64, error) {
	grades, err := tx.Ratings().ListActiveGrades(ctx, productID)
	if err != nil {
		return 0, err
	}
	rating := AggregateRating(grades)
	if err := tx.Products().UpdateRating(ctx, productID, rating); err != nil {
		return 0, err
	}
	return rating, nil
}
