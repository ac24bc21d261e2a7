package osx

import (
	"os"
)

// Getenv retrieves the value of the environment variable named by the key.
// It returns the default, which will be empty if the variable is not present.
// To distinguish between an empty value and an unset value, use LookupEnv.
func Getenv(key string, def ...string) string {
	e, ok := os.LookupEnv(key)
	if !ok && len(def) != 0 {
		return def[0]
	}

	return e
}
