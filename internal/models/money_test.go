package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney_JSONIsNumber(t *testing.T) {
	out, err := json.Marshal(OrderItem{ProductID: "p1", Quantity: 1, Price: NewMoney(1500000)})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"price":1500000`)

	var item OrderItem
	require.NoError(t, json.Unmarshal([]byte(`{"price":"2500000.5"}`), &item))
	assert.Equal(t, "2500000.5", item.Price.String())
}
