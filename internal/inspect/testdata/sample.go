package sample

// Version returns the app version.
func Version() string {
	return "1.0.0"
}

type Store struct{}

// Close shuts the store down.
// Idempotent.
func (s *Store) Close() error {
	return nil
}
