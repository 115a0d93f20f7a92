package cart

import (
	"sync"

	"github.com/google/uuid"

	"github.com/joao-fontenele/storefront/internal/domain"
)

// Store holds one Cart per browser session. Each cart is only ever
// touched by its own session, but sessions arrive on concurrent HTTP
// requests, so access goes through the store lock.
type Store struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

func NewStore() *Store {
	return &Store{carts: make(map[string]*Cart)}
}

// NewSession allocates a fresh session id with an empty cart.
func (s *Store) NewSession() string {
	id := uuid.New().String()
	s.mu.Lock()
	s.carts[id] = &Cart{}
	s.mu.Unlock()
	return id
}

// Add applies Cart.Add to the session's cart, creating the session
// lazily if needed.
func (s *Store) Add(sessionID string, product domain.Product) Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(sessionID)
	c.Add(product)
	return c.Snapshot()
}

func (s *Store) Remove(sessionID, productID string) Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(sessionID)
	c.Remove(productID)
	return c.Snapshot()
}

func (s *Store) SetQuantity(sessionID, productID string, quantity int) Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(sessionID)
	c.SetQuantity(productID, quantity)
	return c.Snapshot()
}

func (s *Store) Clear(sessionID string) Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(sessionID)
	c.Clear()
	return c.Snapshot()
}

// Snapshot returns a copy of the session's cart.
func (s *Store) Snapshot(sessionID string) Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart(sessionID).Snapshot()
}

// cart returns the session's cart, creating it if absent. Callers must
// hold the lock.
func (s *Store) cart(sessionID string) *Cart {
	c, ok := s.carts[sessionID]
	if !ok {
		c = &Cart{}
		s.carts[sessionID] = c
	}
	return c
}
