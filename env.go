package bruteforce

import "os"

// EnvThreads names the environment variable consulted for the thread count
// when no explicit value is configured.
const EnvThreads = "BRUTE_FORCE_THREADS"

// Env provides read access to process-wide configuration such as environment variables.
type Env interface {
	Lookup(key string) (string, bool)
}

// EnvFunc adapts a lookup function to Env.
type EnvFunc func(key string) (string, bool)

func (f EnvFunc) Lookup(key string) (string, bool) { return f(key) }

// OSEnv reads the process environment.
func OSEnv() Env { return EnvFunc(os.LookupEnv) }

// MapEnv serves lookups from a fixed map. Useful in tests.
type MapEnv map[string]string

func (m MapEnv) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}
