package roster

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
)

// Option configures a Store.
type Option func(*store)

// WithChangeHook registers fn to be called after every persisted change
// with the operation name ("add", "update" or "remove").
func WithChangeHook(fn func(op string)) Option {
	return func(s *store) { s.onChange = fn }
}

// New loads the roster from p. When nothing is stored yet the Seed roster
// is used. A stored payload that cannot be decoded is an error.
func New(p Persister, opts ...Option) (Store, error) {
	s := &store{persister: p}
	for _, opt := range opts {
		opt(s)
	}

	data, err := p.Get(StorageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster: %w", err)
	}
	if data == nil {
		log.Info("No stored roster found, using seed", "count", len(Seed))
		s.opponents = append([]Opponent(nil), Seed...)
		return s, nil
	}

	var opponents []Opponent
	if err := json.Unmarshal(data, &opponents); err != nil {
		return nil, fmt.Errorf("failed to decode roster: %w", err)
	}
	log.Info("Loaded roster", "count", len(opponents))
	s.opponents = opponents
	return s, nil
}

// Merge overlays the non-nil fields of patch onto base. The id is never
// changed.
func Merge(base Opponent, patch OpponentPatch) Opponent {
	if patch.Name != nil {
		base.Name = *patch.Name
	}
	if patch.Phone != nil {
		base.Phone = *patch.Phone
	}
	if patch.Club != nil {
		base.Club = *patch.Club
	}
	if patch.Observation != nil {
		base.Observation = *patch.Observation
	}
	return base
}

// NextID returns the id the next added opponent receives.
func NextID(opponents []Opponent) int {
	highest := 0
	for _, o := range opponents {
		if o.ID > highest {
			highest = o.ID
		}
	}
	return highest + 1
}

func (s *store) Lookup(id int) (Opponent, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.opponents {
		if o.ID == id {
			return o, true
		}
	}
	return Opponent{}, false
}

func (s *store) List() []Opponent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Opponent(nil), s.opponents...)
}

func (s *store) Add(patch OpponentPatch) (Opponent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o := Merge(Opponent{ID: NextID(s.opponents)}, patch)
	if o.Name == "" || o.Phone == "" {
		return Opponent{}, ErrMissingRequired
	}

	next := make([]Opponent, 0, len(s.opponents)+1)
	next = append(next, s.opponents...)
	next = append(next, o)
	if err := s.commitLocked(next, "add"); err != nil {
		return Opponent{}, err
	}
	log.Info("Added opponent", "id", o.ID, "name", o.Name)
	return o, nil
}

func (s *store) Update(id int, patch OpponentPatch) (Opponent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, o := range s.opponents {
		if o.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Opponent{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}

	o := Merge(s.opponents[idx], patch)
	if o.Name == "" || o.Phone == "" {
		return Opponent{}, ErrMissingRequired
	}

	next := append([]Opponent(nil), s.opponents...)
	next[idx] = o
	if err := s.commitLocked(next, "update"); err != nil {
		return Opponent{}, err
	}
	log.Info("Updated opponent", "id", o.ID)
	return o, nil
}

func (s *store) Remove(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]Opponent, 0, len(s.opponents))
	for _, o := range s.opponents {
		if o.ID != id {
			next = append(next, o)
		}
	}
	if len(next) == len(s.opponents) {
		log.Debug("Remove ignored, opponent not in roster", "id", id)
		return nil
	}
	if err := s.commitLocked(next, "remove"); err != nil {
		return err
	}
	log.Info("Removed opponent", "id", id)
	return nil
}

// commitLocked persists next in full and only then swaps it in.
func (s *store) commitLocked(next []Opponent, op string) error {
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("failed to encode roster: %w", err)
	}
	if err := s.persister.Put(StorageKey, data); err != nil {
		return fmt.Errorf("failed to persist roster: %w", err)
	}
	s.opponents = next
	if s.onChange != nil {
		s.onChange(op)
	}
	return nil
}
