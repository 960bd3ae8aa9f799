package production

import (
	"math"

	"bakery-production/internal/apperr"
)

// exactTolerance absorbs float noise so that 90/30 is treated as exactly 3 batches.
const exactTolerance = 1e-9

const maxBatches = math.MaxInt32

type Capacity struct {
	BatchNumber       int     `json:"batch_number"`
	QuantityToProduce float64 `json:"quantity_to_produce"`
}

// CalculateCapacity derives how many batches an order needs and how much they yield.
func CalculateCapacity(orderVolume int, batchSize float64) (Capacity, error) {
	if orderVolume <= 0 {
		return Capacity{}, apperr.Validation("order volume must be a positive whole number")
	}
	if math.IsNaN(batchSize) || math.IsInf(batchSize, 0) || batchSize <= 0 {
		return Capacity{}, apperr.Validation("batch size must be a positive number")
	}

	q := float64(orderVolume) / batchSize
	n := math.Ceil(q)
	if r := math.Round(q); math.Abs(q-r) < exactTolerance {
		n = r
	}
	if n > maxBatches {
		return Capacity{}, apperr.Validation("order volume of %d needs too many batches of size %g", orderVolume, batchSize)
	}

	return Capacity{
		BatchNumber:       int(n),
		QuantityToProduce: roundQuantity(n * batchSize),
	}, nil
}

func roundQuantity(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
