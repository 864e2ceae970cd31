package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

type bulkResponse struct {
	Errors bool                                `json:"errors"`
	Items  []map[string]bulkResponseItemResult `json:"items"`
}

type bulkResponseItemResult struct {
	ID     string         `json:"_id"`
	Status int            `json:"status"`
	Error  *bulkItemError `json:"error,omitempty"`
}

type bulkItemError struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

func (a *SpanClientImpl) BulkIndex(
	ctx context.Context,
	documents []DocumentMap,
	index string,
) error {
	if len(documents) == 0 {
		return nil
	}
	var buf bytes.Buffer
	for _, doc := range documents {
		meta := map[string]interface{}{"index": map[string]interface{}{}}
		if id, ok := doc["_id"]; ok {
			meta["index"] = map[string]interface{}{"_id": id}
		}
		metaJSON, err := json.Marshal(meta)
		if err != nil {
			return fmt.Errorf("error marshaling meta to bulk index: %w", err)
		}
		buf.Write(metaJSON)
		buf.WriteByte('\n')

		source := make(map[string]interface{}, len(doc))
		for key, value := range doc {
			if key != "_id" {
				source[key] = value
			}
		}
		dataJSON, err := json.Marshal(source)
		if err != nil {
			return fmt.Errorf("error marshaling data to bulk index: %w", err)
		}
		buf.Write(dataJSON)
		buf.WriteByte('\n')
	}

	res, err := a.es.Bulk(
		bytes.NewReader(buf.Bytes()),
		a.es.Bulk.WithIndex(index),
		a.es.Bulk.WithContext(ctx),
		a.es.Bulk.WithRefresh(a.refreshRate),
	)
	if err != nil {
		return fmt.Errorf("error bulk indexing: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("bulk index error: %s", res.String())
	}

	var bulkRes bulkResponse
	if err := json.NewDecoder(res.Body).Decode(&bulkRes); err != nil {
		return fmt.Errorf("failed to decode bulk response: %w", err)
	}
	if bulkRes.Errors {
		return firstBulkItemError(bulkRes)
	}
	return nil
}

func firstBulkItemError(res bulkResponse) error {
	for _, item := range res.Items {
		for action, result := range item {
			if result.Error != nil {
				return fmt.Errorf(
					"bulk %s of document %s failed with status %d: %s: %s",
					action, result.ID, result.Status, result.Error.Type, result.Error.Reason,
				)
			}
		}
	}
	return fmt.Errorf("bulk index reported errors without item details")
}
