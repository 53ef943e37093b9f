// Header metadata returned by codecs.
//
// A Header is an ordered mapping of keys to scalar values. The package does
// not interpret it beyond passing it between callers and codecs, but keeps
// insertion order so that a header read from a file can be written back in
// the same card order.
package scifile

import (
	json "github.com/goccy/go-json"
)

// Card is a single key/value entry of a Header.
type Card struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// Header is an ordered key/value mapping.
type Header struct {
	cards []Card
	index map[string]int
}

// Pair is one data unit and its header as returned by Codec.Read.
type Pair struct {
	Data   any
	Header *Header
}

// NewHeader returns a header populated with cards in order.
func NewHeader(cards ...Card) *Header {
	h := &Header{index: make(map[string]int, len(cards))}
	for _, c := range cards {
		h.Set(c.Key, c.Value)
	}
	return h
}

// Set assigns value to key. Existing keys keep their position.
func (h *Header) Set(key string, value any) {
	if h.index == nil {
		h.index = make(map[string]int)
	}
	if i, ok := h.index[key]; ok {
		h.cards[i].Value = value
		return
	}
	h.index[key] = len(h.cards)
	h.cards = append(h.cards, Card{Key: key, Value: value})
}

// Get returns the value stored under key.
func (h *Header) Get(key string) (any, bool) {
	if h == nil {
		return nil, false
	}
	i, ok := h.index[key]
	if !ok {
		return nil, false
	}
	return h.cards[i].Value, true
}

// Delete removes key, preserving the order of the remaining cards.
func (h *Header) Delete(key string) {
	i, ok := h.index[key]
	if !ok {
		return
	}
	h.cards = append(h.cards[:i], h.cards[i+1:]...)
	delete(h.index, key)
	for j := i; j < len(h.cards); j++ {
		h.index[h.cards[j].Key] = j
	}
}

// Keys returns the keys in insertion order.
func (h *Header) Keys() []string {
	if h == nil {
		return nil
	}
	keys := make([]string, len(h.cards))
	for i, c := range h.cards {
		keys[i] = c.Key
	}
	return keys
}

// Len returns the number of cards.
func (h *Header) Len() int {
	if h == nil {
		return 0
	}
	return len(h.cards)
}

// Cards returns a copy of the cards in order.
func (h *Header) Cards() []Card {
	if h == nil {
		return nil
	}
	out := make([]Card, len(h.cards))
	copy(out, h.cards)
	return out
}

// MarshalJSON encodes the header as an array of cards so order survives.
func (h *Header) MarshalJSON() ([]byte, error) {
	if h == nil || h.cards == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(h.cards)
}

// UnmarshalJSON decodes an array of cards. Numbers decode as float64.
func (h *Header) UnmarshalJSON(data []byte) error {
	var cards []Card
	if err := json.Unmarshal(data, &cards); err != nil {
		return err
	}
	*h = Header{}
	for _, c := range cards {
		h.Set(c.Key, c.Value)
	}
	return nil
}
