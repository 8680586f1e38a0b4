package model

// Favorite is one entry in the Quick Access list. ID is stable across
// reorders so a move never has to touch Name or Path.
type Favorite struct {
	ID    string // opaque, stable (uuid)
	Name  string
	Path  string
	Order int
	Icon  string // optional, empty when unset
}
