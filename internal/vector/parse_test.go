package vector_test

import (
	"testing"

	"agora/internal/core"
	"agora/internal/money"
	"agora/internal/vector"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLimitAsk(t *testing.T) {
	intent, err := vector.Parse("A:10:2")
	require.NoError(t, err)
	assert.Equal(t, core.Ask, intent.Side)
	require.NotNil(t, intent.Price)
	assert.Equal(t, money.Amount(10), *intent.Price)
	assert.Equal(t, int64(2), intent.Size)
}

func TestParseLimitBid(t *testing.T) {
	intent, err := vector.Parse("B:5:1")
	require.NoError(t, err)
	assert.Equal(t, core.Bid, intent.Side)
	require.NotNil(t, intent.Price)
	assert.Equal(t, money.Amount(5), *intent.Price)
}

func TestParseMarketOrder(t *testing.T) {
	intent, err := vector.Parse("A:3")
	require.NoError(t, err)
	assert.Equal(t, core.Ask, intent.Side)
	assert.Nil(t, intent.Price)
	assert.Equal(t, int64(3), intent.Size)
}

func TestParseRejectsUnknownSide(t *testing.T) {
	_, err := vector.Parse("X:1:1")
	assert.ErrorIs(t, err, vector.ErrMalformed)
}

func TestParseRejectsWrongFieldCount(t *testing.T) {
	_, err := vector.Parse("A:1:1:1")
	assert.ErrorIs(t, err, vector.ErrMalformed)

	_, err = vector.Parse("A")
	assert.ErrorIs(t, err, vector.ErrMalformed)
}

func TestParseRejectsNonNumericFields(t *testing.T) {
	_, err := vector.Parse("A:x:1")
	assert.ErrorIs(t, err, vector.ErrMalformed)

	_, err = vector.Parse("A:y")
	assert.ErrorIs(t, err, vector.ErrMalformed)
}

func TestParseTrimsWhitespace(t *testing.T) {
	intent, err := vector.Parse("  B:2:1  ")
	require.NoError(t, err)
	assert.Equal(t, core.Bid, intent.Side)
}
