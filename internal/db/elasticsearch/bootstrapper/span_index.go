package bootstrapper

var keyValueMapping = map[string]interface{}{
	"type": "nested",
	"properties": map[string]interface{}{
		"key": map[string]interface{}{
			"type": "keyword",
		},
		"type": map[string]interface{}{
			"type": "keyword",
		},
		"value": map[string]interface{}{
			"type": "keyword",
			// longer response bodies stay in _source but are not indexed
			"ignore_above": 8191,
		},
	},
}

// spanIndex mirrors the mapping Jaeger's Elasticsearch storage uses for spans.
var spanIndex = map[string]interface{}{
	"settings": map[string]interface{}{
		"number_of_shards":   1,
		"number_of_replicas": 0,
	},
	"mappings": map[string]interface{}{
		"properties": map[string]interface{}{
			"traceID": map[string]interface{}{
				"type": "keyword",
			},
			"spanID": map[string]interface{}{
				"type": "keyword",
			},
			"operationName": map[string]interface{}{
				"type": "keyword",
			},
			"startTime": map[string]interface{}{
				"type": "long",
			},
			"startTimeMillis": map[string]interface{}{
				"type":   "date",
				"format": "epoch_millis",
			},
			"duration": map[string]interface{}{
				"type": "long",
			},
			"tags": keyValueMapping,
			"process": map[string]interface{}{
				"properties": map[string]interface{}{
					"serviceName": map[string]interface{}{
						"type": "keyword",
					},
					"tags": keyValueMapping,
				},
			},
		},
	},
}
