package session

import (
	"github.com/mkravtsov/fishshop/internal/auth"
	"github.com/mkravtsov/fishshop/internal/cart"
)

// State is everything a browser session carries server-side: the identity
// installed at login (nil for anonymous sessions), the cart lines, and the
// one-shot flash queue. It replaces the ambient globals of the reviewed
// design with a per-request object.
type State struct {
	Identity *auth.Identity `json:"identity,omitempty"`
	Cart     []cart.Line    `json:"cart,omitempty"`
	Flashes  []string       `json:"flashes,omitempty"`

	token string
	dirty bool
}

func (s *State) Token() string { return s.token }

func (s *State) SetIdentity(id *auth.Identity) {
	s.Identity = id
	s.dirty = true
}

// ClearIdentity logs the session out. The cart survives.
func (s *State) ClearIdentity() {
	s.Identity = nil
	s.dirty = true
}

func (s *State) AddToCart(productID uint) {
	s.Cart = cart.Add(s.Cart, productID)
	s.dirty = true
}

func (s *State) RemoveFromCart(productID uint) {
	s.Cart = cart.Remove(s.Cart, productID)
	s.dirty = true
}

func (s *State) CartSize() uint {
	return cart.Size(s.Cart)
}

// Flash queues a one-shot message shown on the next rendered page.
func (s *State) Flash(msg string) {
	s.Flashes = append(s.Flashes, msg)
	s.dirty = true
}

// TakeFlashes drains the flash queue.
func (s *State) TakeFlashes() []string {
	if len(s.Flashes) == 0 {
		return nil
	}
	out := s.Flashes
	s.Flashes = nil
	s.dirty = true
	return out
}
