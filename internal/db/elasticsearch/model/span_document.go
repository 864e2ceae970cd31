package model

// SpanDocument is a span as the Jaeger Elasticsearch storage writes it.
type SpanDocument struct {
	TraceID         string     `json:"traceID"`
	SpanID          string     `json:"spanID"`
	OperationName   string     `json:"operationName"`
	StartTime       int64      `json:"startTime"` // microseconds since epoch
	StartTimeMillis int64      `json:"startTimeMillis"`
	Duration        int64      `json:"duration"` // microseconds
	Tags            []KeyValue `json:"tags"`
	Process         Process    `json:"process"`
}

type KeyValue struct {
	Key   string `json:"key"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

type Process struct {
	ServiceName string     `json:"serviceName"`
	Tags        []KeyValue `json:"tags"`
}
