package store

import (
	"sync"

	"go.uber.org/zap"
)

// Purchases persists the list of purchased shop-item ids under
// KeyPurchasedItems, in purchase order.
type Purchases struct {
	mu    sync.Mutex
	kv    KV
	log   *zap.Logger
	state []string
}

// NewPurchases loads the purchased-item list from kv.
func NewPurchases(kv KV, log *zap.Logger) *Purchases {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Purchases{kv: kv, log: log}
	kv.Load(KeyPurchasedItems, &p.state)
	return p
}

// Contains reports whether the item has been purchased.
func (p *Purchases) Contains(itemID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, id := range p.state {
		if id == itemID {
			return true
		}
	}
	return false
}

// Add records a purchase. Duplicate ids are ignored; ownership is
// binary.
func (p *Purchases) Add(itemID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, id := range p.state {
		if id == itemID {
			return
		}
	}
	p.state = append(p.state, itemID)
	p.persistLocked()
}

// All returns a copy of the purchased item ids in purchase order.
func (p *Purchases) All() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]string, len(p.state))
	copy(out, p.state)
	return out
}

func (p *Purchases) persistLocked() {
	if err := p.kv.Save(KeyPurchasedItems, p.state); err != nil {
		p.log.Error("persisting purchases", zap.Error(err))
	}
}
