package services

import (
	"sync"

	"github.com/shopspring/decimal"
)

const feedBuffer = 16

// BalanceFeed is an in-process observer registry for live balance updates.
// Services publish the post-commit balance after every mutation; subscribers
// receive at least one value per change they are fast enough to drain. A slow
// subscriber's channel drops updates rather than blocking the publisher, so
// consumers re-read the current balance when they fall behind, the same way a
// reconnecting client would.
type BalanceFeed struct {
	mu     sync.Mutex
	nextID int
	subs   map[uint]map[int]chan decimal.Decimal
}

func NewBalanceFeed() *BalanceFeed {
	return &BalanceFeed{
		subs: make(map[uint]map[int]chan decimal.Decimal),
	}
}

// Subscribe returns a channel of balance updates for an account and an
// unsubscribe function. The channel is closed on unsubscribe.
func (f *BalanceFeed) Subscribe(accountID uint) (<-chan decimal.Decimal, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.nextID
	f.nextID++

	ch := make(chan decimal.Decimal, feedBuffer)
	if f.subs[accountID] == nil {
		f.subs[accountID] = make(map[int]chan decimal.Decimal)
	}
	f.subs[accountID][id] = ch

	unsubscribe := func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if subs, ok := f.subs[accountID]; ok {
			if ch, ok := subs[id]; ok {
				delete(subs, id)
				close(ch)
			}
			if len(subs) == 0 {
				delete(f.subs, accountID)
			}
		}
	}
	return ch, unsubscribe
}

// Publish fans a new balance out to the account's subscribers without
// blocking.
func (f *BalanceFeed) Publish(accountID uint, balance decimal.Decimal) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, ch := range f.subs[accountID] {
		select {
		case ch <- balance:
		default:
		}
	}
}
