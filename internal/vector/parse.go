// Package vector parses the compact test-vector order format used to
// build fixtures: "side:price:size" for a limit order, "side:size" for a
// market order.
package vector

import (
	"errors"
	"strconv"
	"strings"

	"agora/internal/core"
	"agora/internal/money"
)

// ErrMalformed is returned when a vector string does not split into
// exactly two or three colon-separated fields, carries an unrecognized
// side, or a non-numeric price/size.
var ErrMalformed = errors.New("malformed order vector")

// Parse turns "A:10:2" (ask, price 10, size 2) or "B:3" (bid, market
// order of size 3) into an OrderIntent. Price and size must be
// non-negative integers; side must be "A" (ask) or "B" (bid).
func Parse(vector string) (core.OrderIntent, error) {
	parts := strings.Split(strings.TrimSpace(vector), ":")

	var sideStr, priceStr, sizeStr string
	switch len(parts) {
	case 3:
		sideStr, priceStr, sizeStr = parts[0], parts[1], parts[2]
	case 2:
		sideStr, sizeStr = parts[0], parts[1]
	default:
		return core.OrderIntent{}, ErrMalformed
	}

	var side core.OrderSide
	switch sideStr {
	case "A":
		side = core.Ask
	case "B":
		side = core.Bid
	default:
		return core.OrderIntent{}, ErrMalformed
	}

	size, err := strconv.ParseUint(sizeStr, 10, 63)
	if err != nil {
		return core.OrderIntent{}, ErrMalformed
	}

	intent := core.OrderIntent{Side: side, Size: int64(size)}

	if len(parts) == 3 {
		priceVal, err := strconv.ParseUint(priceStr, 10, 63)
		if err != nil {
			return core.OrderIntent{}, ErrMalformed
		}
		price := money.Amount(priceVal)
		intent.Price = &price
	}

	return intent, nil
}
