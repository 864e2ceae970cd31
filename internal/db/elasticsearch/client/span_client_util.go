package client

import (
	"encoding/json"
	"fmt"
)

type DocumentMap map[string]interface{}

// ToDocumentMaps converts typed documents into the generic form BulkIndex takes.
func ToDocumentMaps[T any](values []T) ([]DocumentMap, error) {
	documents := make([]DocumentMap, len(values))
	for i, v := range values {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal value to JSON: %w", err)
		}
		var document DocumentMap
		if err := json.Unmarshal(data, &document); err != nil {
			return nil, fmt.Errorf("failed to unmarshal JSON to map: %w", err)
		}
		documents[i] = document
	}
	return documents, nil
}
