package roster

// Store defines the operations on the opponent roster.
type Store interface {
	// Lookup finds an opponent by exact id.
	Lookup(id int) (Opponent, bool)
	// List returns the roster in insertion order.
	List() []Opponent
	// Add creates an opponent with the next free id.
	Add(patch OpponentPatch) (Opponent, error)
	// Update merges patch onto the opponent with the given id.
	Update(id int, patch OpponentPatch) (Opponent, error)
	// Remove deletes the opponent with the given id. Absent ids are ignored.
	Remove(id int) error
}
