package settings

// Store manages persisted settings entries.
type Store interface {
	// Create an empty settings file at path if none exists.
	// An existing file is left untouched.
	EnsureFileExists(path string) error

	// Read the file at path, replacing all in-memory entries and
	// binding the store to path.
	Load(path string) error

	// Re-read the file the store is currently bound to.
	Reload() error

	// Get the raw string value for key.
	Get(key string) (string, error)

	// Insert or overwrite the entry for key.
	Set(key string, value string)

	// A copy of all current entries.
	Settings() map[string]string

	// Persist all entries to the file the store is bound to.
	Save() error

	// Persist all entries to path.
	SaveAs(path string) error
}
