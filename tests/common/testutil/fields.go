//go:build unit || e2e

package testutil

// Field mutates one key of a DtoMap; a nil value removes the key entirely,
// which is how "missing required field" cases are built.
func Field(key string, value any) func(m map[string]any) {
	return func(m map[string]any) {
		if value == nil {
			delete(m, key)
			return
		}
		m[key] = value
	}
}
