// Package store is the document persistence layer. Every document belongs to
// one user and is addressed by (user, collection, key); values are JSON.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Collections.
const (
	Habits       = "habits"
	Metrics      = "metrics"
	Settings     = "settings"
	Supplements  = "supplements"
	Planner      = "planner"
	MealPlan     = "meal_plan"
	ShoppingList = "shopping_list"
	Inventory    = "inventory"
	Workouts     = "workouts"
)

// CurrentKey addresses the single document kept per user in collections that
// hold one aggregate (settings, habits, the current meal plan, ...).
const CurrentKey = "current"

// Ref addresses a document.
type Ref struct {
	UserID     string
	Collection string
	Key        string
}

// Current returns the Ref of a user's single document in collection.
func Current(userID, collection string) Ref {
	return Ref{UserID: userID, Collection: collection, Key: CurrentKey}
}

// Document is a raw stored document.
type Document struct {
	Key  string
	Body []byte
}

// Store persists JSON documents. Writes are last-write-wins per document;
// callers that read-modify-write hold the user's lock.
type Store interface {
	// Get decodes the document into dest and reports whether it existed.
	Get(ctx context.Context, ref Ref, dest any) (bool, error)
	// Put encodes value and replaces the document.
	Put(ctx context.Context, ref Ref, value any) error
	// Delete removes the document and reports whether it existed.
	Delete(ctx context.Context, ref Ref) (bool, error)
	// List returns every document of a collection ordered by key.
	List(ctx context.Context, userID, collection string) ([]Document, error)
	// Lock serializes writers for one user until the returned func is called.
	Lock(ctx context.Context, userID string) (func(), error)
}

// userLocks is an in-process lock per user.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *userLocks) lock(userID string) func() {
	l.mu.Lock()
	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// DecodeAll unmarshals every document body into a T, preserving order.
func DecodeAll[T any](docs []Document) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, d := range docs {
		var v T
		if err := json.Unmarshal(d.Body, &v); err != nil {
			return nil, fmt.Errorf("failed to unmarshal document %s: %w", d.Key, err)
		}
		out = append(out, v)
	}
	return out, nil
}
