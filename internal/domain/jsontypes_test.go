package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListScanValue(t *testing.T) {
	list := StringList{"a.jpg", "b.jpg"}
	v, err := list.Value()
	require.NoError(t, err)

	var out StringList
	require.NoError(t, out.Scan(v))
	assert.Equal(t, list, out)

	var empty StringList
	require.NoError(t, empty.Scan(nil))
	assert.Nil(t, empty)

	// Drivers may hand back either bytes or string.
	var fromString StringList
	require.NoError(t, fromString.Scan(`["x.png"]`))
	assert.Equal(t, StringList{"x.png"}, fromString)
}

func TestOrderItemsScanValue(t *testing.T) {
	items := OrderItems{{ProductID: "p1", ProductName: "Silk Saree", Quantity: 2, Price: 100}}
	v, err := items.Value()
	require.NoError(t, err)

	var out OrderItems
	require.NoError(t, out.Scan(v))
	require.Len(t, out, 1)
	assert.Equal(t, "p1", out[0].ProductID)
	assert.Equal(t, 2, out[0].Quantity)
}

func TestOptionalUnmarshal(t *testing.T) {
	type payload struct {
		Price Optional[float64] `json:"price"`
	}

	var absent payload
	require.NoError(t, json.Unmarshal([]byte(`{}`), &absent))
	assert.False(t, absent.Price.Set)

	var null payload
	require.NoError(t, json.Unmarshal([]byte(`{"price": null}`), &null))
	assert.True(t, null.Price.Set)
	assert.Nil(t, null.Price.Value)

	var set payload
	require.NoError(t, json.Unmarshal([]byte(`{"price": 99.5}`), &set))
	assert.True(t, set.Price.Set)
	require.NotNil(t, set.Price.Value)
	assert.Equal(t, 99.5, *set.Price.Value)
}

func TestValidOrderStatus(t *testing.T) {
	for _, s := range OrderStatuses {
		assert.True(t, ValidOrderStatus(s))
	}
	assert.False(t, ValidOrderStatus("vaporized"))
	assert.False(t, ValidOrderStatus(""))
	assert.False(t, ValidOrderStatus("Pending"), "statuses are case sensitive")
}

func TestValidCategory(t *testing.T) {
	for _, c := range ProductCategories {
		assert.True(t, ValidCategory(c))
	}
	assert.False(t, ValidCategory("lehenga"))
}
