package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPurchasesRecordedInOrder(t *testing.T) {
	p := NewPurchases(newTestKV(t), nil)

	p.Add("coffee")
	p.Add("badge-explorer")

	assert.Equal(t, []string{"coffee", "badge-explorer"}, p.All())
	assert.True(t, p.Contains("coffee"))
	assert.False(t, p.Contains("premium"))
}

func TestDuplicatePurchaseIgnored(t *testing.T) {
	p := NewPurchases(newTestKV(t), nil)

	p.Add("coffee")
	p.Add("coffee")
	assert.Equal(t, []string{"coffee"}, p.All())
}

func TestPurchasesSurviveReload(t *testing.T) {
	kv := newTestKV(t)

	p := NewPurchases(kv, nil)
	p.Add("theme-dark")

	reloaded := NewPurchases(kv, nil)
	assert.Equal(t, p.All(), reloaded.All())
}
