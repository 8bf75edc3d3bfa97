//go:build nodotenv

package env

// DefaultLoader returns the loader selected at build time.
func DefaultLoader() Loader {
	return NoopLoader{}
}
