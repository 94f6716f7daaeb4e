package ds

import (
	"encoding/json"
	"fmt"
)

// DumpJSON renders t as compact JSON for log lines. A marshalling failure is
// rendered in place of the value.
func DumpJSON[T any](t T) string {
	tBytes, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("DumpJSON error %w", err).Error()
	}

	return string(tBytes)
}
