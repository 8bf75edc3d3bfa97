package env

// Loader merges a .env file into the process environment. Implementations
// never override variables that are already set.
type Loader interface {
	// Available reports whether the loader can read .env files at all.
	Available() bool
	Load(path string) error
}

// NoopLoader is used when dotenv support is not built in.
type NoopLoader struct{}

// Available always returns false.
func (NoopLoader) Available() bool { return false }

// Load does nothing.
func (NoopLoader) Load(string) error { return nil }
