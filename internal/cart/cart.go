package cart

import "sync"

// Item is one line in a customer's cart. Carts are transient, session-scoped
// state: they live in process memory only and are never persisted. A restart
// loses them, matching browser-session semantics.
type Item struct {
	ID          string  `json:"id"` // package identifier, e.g. "yt-sub-500"
	Name        string  `json:"name"`
	UnitPrice   float64 `json:"unitPrice"`
	Quantity    int     `json:"quantity"`
	ServiceType string  `json:"serviceType"`
	ServiceURL  string  `json:"serviceUrl,omitempty"` // target profile/post link, optional
}

// Cart is an ordered collection of lines for one user.
type Cart struct {
	Items []Item `json:"items"`
}

// TotalItems is the sum of all line quantities.
func (c *Cart) TotalItems() int {
	var n int
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// TotalAmount is the sum of unit price x quantity over all lines.
func (c *Cart) TotalAmount() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}

// ClampQuantity floors a requested quantity at 1. Handlers apply it before
// calling UpdateQuantity; the store itself sets what it is given.
func ClampQuantity(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// Store holds one cart per authenticated user. Safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	carts map[int64]*Cart
}

func NewStore() *Store {
	return &Store{carts: make(map[int64]*Cart)}
}

// Get returns a copy of the user's cart (an empty cart if none exists).
func (s *Store) Get(userID int64) Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[userID]
	if !ok {
		return Cart{Items: []Item{}}
	}
	out := Cart{Items: make([]Item, len(c.Items))}
	copy(out.Items, c.Items)
	return out
}

// Add inserts a new line. If a line with the same id already exists, the
// added quantity merges into it instead.
func (s *Store) Add(userID int64, item Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[userID]
	if !ok {
		c = &Cart{}
		s.carts[userID] = c
	}

	for i := range c.Items {
		if c.Items[i].ID == item.ID {
			c.Items[i].Quantity += item.Quantity
			return
		}
	}
	c.Items = append(c.Items, item)
}

// UpdateQuantity sets a line's quantity directly. Returns false if the line
// does not exist.
func (s *Store) UpdateQuantity(userID int64, id string, qty int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[userID]
	if !ok {
		return false
	}
	for i := range c.Items {
		if c.Items[i].ID == id {
			c.Items[i].Quantity = qty
			return true
		}
	}
	return false
}

// Remove deletes the line entirely regardless of quantity. Returns false if
// the line does not exist.
func (s *Store) Remove(userID int64, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[userID]
	if !ok {
		return false
	}
	for i := range c.Items {
		if c.Items[i].ID == id {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the user's cart. Idempotent; called after a successful
// checkout.
func (s *Store) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
}
