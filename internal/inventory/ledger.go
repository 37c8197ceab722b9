// Package inventory is the ledger of food on hand. Items are unique by name.
package inventory

import (
	"beast-hub/internal/apperr"
)

// Source records how an item entered the ledger.
type Source string

const (
	SourceShopping Source = "shopping"
	SourceManual   Source = "manual"
)

// Item is one ledger entry.
type Item struct {
	Item         string  `json:"item"`
	Amount       string  `json:"amount"`
	Category     string  `json:"category"`
	PurchaseDate string  `json:"purchase_date"`
	ExpiryDate   *string `json:"expiry_date"`
	Source       Source  `json:"source"`
}

// Ledger is the stored inventory document.
type Ledger struct {
	Items []Item `json:"items"`
}

func (l *Ledger) index(name string) int {
	for i, it := range l.Items {
		if it.Item == name {
			return i
		}
	}
	return -1
}

// Get returns the entry named name.
func (l *Ledger) Get(name string) (Item, bool) {
	if i := l.index(name); i >= 0 {
		return l.Items[i], true
	}
	return Item{}, false
}

// Upsert inserts item, or replaces the entry with the same name in place.
// The replaced entry is returned.
func (l *Ledger) Upsert(item Item) *Item {
	if i := l.index(item.Item); i >= 0 {
		prev := l.Items[i]
		l.Items[i] = item
		return &prev
	}
	l.Items = append(l.Items, item)
	return nil
}

// Remove deletes the entry named name.
func (l *Ledger) Remove(name string) (Item, bool) {
	i := l.index(name)
	if i < 0 {
		return Item{}, false
	}
	removed := l.Items[i]
	l.Items = append(l.Items[:i], l.Items[i+1:]...)
	return removed, true
}

// UpdateAmount changes the amount of an existing entry.
func (l *Ledger) UpdateAmount(name, amount string) error {
	i := l.index(name)
	if i < 0 {
		return apperr.NotFound("Item '%s' not found in inventory", name)
	}
	l.Items[i].Amount = amount
	return nil
}

// Deduct consumes the named ingredients. An ingredient present in the ledger
// is removed entirely, whatever its amount; absent ones are ignored. The
// names actually removed are returned in argument order.
func (l *Ledger) Deduct(names []string) []string {
	deducted := []string{}
	for _, name := range names {
		if _, ok := l.Remove(name); ok {
			deducted = append(deducted, name)
		}
	}
	return deducted
}

// Count returns how many entries carry name.
func (l *Ledger) Count(name string) int {
	n := 0
	for _, it := range l.Items {
		if it.Item == name {
			n++
		}
	}
	return n
}
