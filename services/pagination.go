package services

import (
	"math"

	"github.com/yashrajoria/storefront-service/models"
)

// productPage leaves Previous unfloored; a first page reports a negative
// offset.
func productPage(offset, limit, returned int) models.Page {
	return models.Page{
		Next:     nextOffset(offset, limit),
		Limit:    returned,
		Previous: offset - limit,
	}
}

func orderPage(offset, limit, returned int) models.Page {
	return models.Page{
		Next:     nextOffset(offset, limit),
		Limit:    returned,
		Previous: max(0, offset-limit),
	}
}

// nextOffset clamps at math.MaxInt instead of wrapping negative.
func nextOffset(offset, limit int) int {
	if offset > math.MaxInt-limit {
		return math.MaxInt
	}
	return offset + limit
}
