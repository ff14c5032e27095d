package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storekeeper/internal/domain"
)

func TestFormatPrice(t *testing.T) {
	cases := map[float64]string{
		9.99:  "9.99",
		12.5:  "12.50",
		0:     "0.00",
		2.675: "2.68",
		1.005: "1.01",
		0.125: "0.13",
		100:   "100.00",
	}
	for in, want := range cases {
		assert.Equal(t, want, domain.FormatPrice(in), "price %v", in)
	}
}

func TestUpdateProductInput_JSON(t *testing.T) {
	var omitted domain.UpdateProductInput
	require.NoError(t, json.Unmarshal([]byte(`{"quantity": 3}`), &omitted))
	q, ok := omitted.Quantity.Get()
	assert.True(t, ok)
	assert.Equal(t, 3, q)
	assert.False(t, omitted.ImageURI.IsSet(), "missing image_uri must stay unset")
	assert.False(t, omitted.Name.IsSet())

	var cleared domain.UpdateProductInput
	require.NoError(t, json.Unmarshal([]byte(`{"image_uri": null}`), &cleared))
	uri, ok := cleared.ImageURI.Get()
	assert.True(t, ok, "null image_uri is a provided value")
	assert.True(t, cleared.ImageURI.IsNull())
	assert.Nil(t, uri)

	var set domain.UpdateProductInput
	require.NoError(t, json.Unmarshal([]byte(`{"image_uri": "photos/x.jpg", "quantity": 0}`), &set))
	uri, ok = set.ImageURI.Get()
	require.True(t, ok)
	require.NotNil(t, uri)
	assert.Equal(t, "photos/x.jpg", *uri)
	q, ok = set.Quantity.Get()
	assert.True(t, ok, "zero is a provided value")
	assert.Zero(t, q)
	assert.False(t, set.Quantity.IsNull())
}

func TestImageHelpers(t *testing.T) {
	v, ok := domain.SetImage("a.jpg").Get()
	require.True(t, ok)
	require.NotNil(t, v)
	assert.Equal(t, "a.jpg", *v)

	v, ok = domain.ClearImage().Get()
	assert.True(t, ok)
	assert.Nil(t, v)

	var none domain.Optional[*string]
	_, ok = none.Get()
	assert.False(t, ok)
}

func TestProduct_StockValue(t *testing.T) {
	p := domain.Product{Quantity: 3, Price: 0.1}
	assert.Equal(t, "0.30", p.StockValue().StringFixed(2))
	assert.Equal(t, "0.10", p.DisplayPrice())
	assert.False(t, p.HasImage())
}

func TestProduct_JSONImageNull(t *testing.T) {
	b, err := json.Marshal(domain.Product{ID: "x", Name: "n"})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"image_uri":null`)
}
