package transaction

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"github.com/Avi18971911/TransferLens/internal/query_server/service/transaction/model"
	"github.com/shopspring/decimal"
)

// microsecondsDivisor turns backend durations into the values reported as
// milliseconds. Jaeger stores microseconds, so the label is kept as is.
const microsecondsDivisor = 1000.0

// ParseOutcome is either a parsed Event or the reason the span was skipped.
type ParseOutcome struct {
	Event      *model.TransactionEvent
	SkipReason string
}

func (o ParseOutcome) Skipped() bool {
	return o.Event == nil
}

func skipped(reason string) ParseOutcome {
	return ParseOutcome{SkipReason: reason}
}

// ParsePayload decodes a response body tag value. Anything other than a JSON
// object is a recoverable failure reported through the outcome, never an error.
func ParsePayload(operationName string, raw string, durationUs float64) ParseOutcome {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return skipped(err.Error())
	}
	if fields == nil {
		return skipped("response body is null")
	}

	var payload bytes.Buffer
	if err := json.Compact(&payload, []byte(raw)); err != nil {
		return skipped(err.Error())
	}

	return ParseOutcome{
		Event: &model.TransactionEvent{
			OperationName:      operationName,
			SenderCustomerId:   textField(fields, "SenderCustomerId"),
			SenderAccountId:    textField(fields, "SenderAccountId"),
			ReceiverCustomerId: textField(fields, "ReceiverCustomerId"),
			ReceiverAccountId:  textField(fields, "ReceiverAccountId"),
			Amount:             amountField(fields, "Amount"),
			Time:               textField(fields, "Time"),
			DurationMs:         durationUs / microsecondsDivisor,
			ErrorNo:            integerField(fields, "error_no"),
			Message:            optionalTextField(fields, "message"),
			SenderBankId:       integerField(fields, "SenderBankId"),
			ReceiverBankId:     integerField(fields, "ReceiverBankId"),
			Payload:            payload.Bytes(),
		},
	}
}

func textField(fields map[string]json.RawMessage, key string) string {
	text := optionalTextField(fields, key)
	if text == nil {
		return UnknownValue
	}
	return *text
}

// optionalTextField renders strings unquoted and any other JSON value as its text.
func optionalTextField(fields map[string]json.RawMessage, key string) *string {
	raw, ok := fields[key]
	if !ok || isNull(raw) {
		return nil
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return &text
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		text = string(raw)
	} else {
		text = compact.String()
	}
	return &text
}

// maxAmountExponent bounds the decimal exponent of an amount. Rendering expands
// the exponent into digits, so 1e20000000 would print twenty million of them.
const maxAmountExponent = 64

// amountField accepts numbers and numeric strings; anything else, including an
// exponent beyond maxAmountExponent either way, counts as 0.
func amountField(fields map[string]json.RawMessage, key string) decimal.Decimal {
	raw, ok := fields[key]
	if !ok || isNull(raw) {
		return decimal.Zero
	}
	var amount decimal.Decimal
	if err := amount.UnmarshalJSON(raw); err != nil {
		return decimal.Zero
	}
	if exponent := amount.Exponent(); exponent > maxAmountExponent || exponent < -maxAmountExponent {
		return decimal.Zero
	}
	return amount
}

// integerField only accepts integral JSON numbers, so "201" as a string is not 201.
func integerField(fields map[string]json.RawMessage, key string) *int64 {
	raw, ok := fields[key]
	if !ok || isNull(raw) {
		return nil
	}
	var number json.Number
	if err := json.Unmarshal(raw, &number); err != nil || bytes.HasPrefix(bytes.TrimSpace(raw), []byte(`"`)) {
		return nil
	}
	if value, err := strconv.ParseInt(number.String(), 10, 64); err == nil {
		return &value
	}
	value, err := number.Float64()
	if err != nil || value != math.Trunc(value) || math.Abs(value) >= math.MaxInt64 {
		return nil
	}
	integer := int64(value)
	return &integer
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}
