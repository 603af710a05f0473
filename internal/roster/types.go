package roster

import (
	"errors"
	"sync"
)

var (
	ErrNotFound        = errors.New("opponent not found")
	ErrMissingRequired = errors.New("opponent name and phone are required")
)

// StorageKey is the key the roster is persisted under.
const StorageKey = "opponents"

// Opponent is a roster entry a match can be scheduled against.
type Opponent struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Club        string `json:"club"`
	Observation string `json:"observation,omitempty"`
}

// OpponentPatch carries the fields of an add or update. Nil fields are
// left as they are.
type OpponentPatch struct {
	Name        *string `json:"name,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Club        *string `json:"club,omitempty"`
	Observation *string `json:"observation,omitempty"`
}

// Persister reads and writes the serialized roster. Get returns nil data
// and no error when the key has never been written.
type Persister interface {
	Get(key string) ([]byte, error)
	Put(key string, data []byte) error
}

// store keeps the roster as an immutable snapshot that is swapped on
// every change.
type store struct {
	mu        sync.RWMutex
	opponents []Opponent
	persister Persister
	onChange  func(op string)
}

// Seed is the roster used when nothing has been persisted yet.
var Seed = []Opponent{
	{ID: 1, Name: "João Silva", Phone: "85999990001", Club: "Galatasaray"},
	{ID: 2, Name: "Marcos Ferreira", Phone: "85991887722", Club: "Fenerbahçe"},
	{ID: 3, Name: "Cláudio Santos", Phone: "85992221100", Club: "Trabzonspor"},
	{ID: 4, Name: "Roberto Martins", Phone: "85988112233", Club: "Antalyaspor"},
}
