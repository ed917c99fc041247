package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type washOrder struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Internal string  `json:"-"`
	Plain    string
}

func TestFields(t *testing.T) {
	order := &washOrder{Name: "Polish", Price: 45.5, Internal: "hidden", Plain: "visible"}

	fields := Fields(order, []string{"name", "plain"})
	assert.Equal(t, map[string]interface{}{
		"name":  "Polish",
		"plain": "visible",
	}, fields)

	assert.Empty(t, Fields(order, nil))
	assert.Empty(t, Fields(nil, []string{"name"}))

	var nilOrder *washOrder
	assert.Empty(t, Fields(nilOrder, []string{"name"}))

	assert.Empty(t, Fields("not a struct", []string{"name"}))
}

func TestChanges(t *testing.T) {
	before := &washOrder{Name: "Polish", Price: 45.5}
	after := &washOrder{Name: "Polish", Price: 50}

	changes := Changes(before, after, []string{"name", "price"})
	assert.Equal(t, map[string]interface{}{
		"price": map[string]interface{}{
			"old": 45.5,
			"new": 50.0,
		},
	}, changes)

	assert.Empty(t, Changes(before, before, []string{"name", "price"}))
	assert.Empty(t, Changes(nil, after, []string{"price"}))
}
