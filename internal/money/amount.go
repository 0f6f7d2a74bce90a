// Package money defines the integer currency unit used for order prices
// and account balances throughout the exchange.
package money

// Amount is a count of the smallest currency unit ("cents"). Valid prices
// and balances are zero or positive; negative values only ever appear as
// transient deltas during arithmetic.
type Amount int64

// Add returns a + b.
func (a Amount) Add(b Amount) Amount {
	return a + b
}

// Sub returns a - b.
func (a Amount) Sub(b Amount) Amount {
	return a - b
}

// Mul scales a by an order size. A non-negative Amount multiplied by a
// non-negative size yields a non-negative Amount.
func (a Amount) Mul(size int64) Amount {
	return Amount(int64(a) * size)
}
