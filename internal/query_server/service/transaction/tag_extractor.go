package transaction

import "encoding/json"

const (
	ResponseBodyTagKey = "http.response.body"
	UnknownValue       = "Unknown"
)

// ExtractResponseBody returns the value of the first response body tag of a span
// source together with the span duration in microseconds. found is false when the
// span carries no such tag, which means the span yields no event.
func ExtractResponseBody(source map[string]interface{}) (body string, durationUs float64, found bool) {
	durationUs = durationOf(source)
	tags, ok := source["tags"].([]interface{})
	if !ok {
		return "", durationUs, false
	}
	for _, tag := range tags {
		fields, ok := tag.(map[string]interface{})
		if !ok {
			continue
		}
		if key, _ := fields["key"].(string); key != ResponseBodyTagKey {
			continue
		}
		value, ok := fields["value"].(string)
		if !ok {
			return "", durationUs, false
		}
		return value, durationUs, true
	}
	return "", durationUs, false
}

// durationOf reads the span duration, 0 when absent or not a number.
func durationOf(source map[string]interface{}) float64 {
	switch duration := source["duration"].(type) {
	case float64:
		return duration
	case int64:
		return float64(duration)
	case int:
		return float64(duration)
	case json.Number:
		value, err := duration.Float64()
		if err != nil {
			return 0
		}
		return value
	default:
		return 0
	}
}

func operationNameOf(source map[string]interface{}) string {
	name, ok := source["operationName"].(string)
	if !ok {
		return UnknownValue
	}
	return name
}
