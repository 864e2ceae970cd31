package transaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePayload(t *testing.T) {
	t.Run("should parse a transfer response", func(t *testing.T) {
		raw := `{
			"SenderCustomerId": "c-1",
			"SenderAccountId": "a-1",
			"ReceiverCustomerId": "c-2",
			"ReceiverAccountId": "a-2",
			"Amount": 150.25,
			"Time": "2024-07-22T10:00:00Z",
			"SenderBankId": 42,
			"ReceiverBankId": 7
		}`

		outcome := ParsePayload("POST Transactions/Transfer", raw, 12345)

		require.False(t, outcome.Skipped())
		event := outcome.Event
		assert.Equal(t, "POST Transactions/Transfer", event.OperationName)
		assert.Equal(t, "c-1", event.SenderCustomerId)
		assert.Equal(t, "a-1", event.SenderAccountId)
		assert.Equal(t, "c-2", event.ReceiverCustomerId)
		assert.Equal(t, "a-2", event.ReceiverAccountId)
		assert.Equal(t, "150.25", event.Amount.String())
		assert.Equal(t, "2024-07-22T10:00:00Z", event.Time)
		assert.Equal(t, 12.345, event.DurationMs)
		assert.Nil(t, event.ErrorNo)
		assert.Nil(t, event.Message)
		assert.Equal(t, int64(42), *event.SenderBankId)
		assert.Equal(t, int64(7), *event.ReceiverBankId)
		assert.JSONEq(t, raw, string(event.Payload))
	})

	t.Run("should default missing fields", func(t *testing.T) {
		outcome := ParsePayload("op", `{}`, 0)

		require.False(t, outcome.Skipped())
		event := outcome.Event
		assert.Equal(t, "Unknown", event.SenderCustomerId)
		assert.Equal(t, "Unknown", event.SenderAccountId)
		assert.Equal(t, "Unknown", event.ReceiverCustomerId)
		assert.Equal(t, "Unknown", event.ReceiverAccountId)
		assert.Equal(t, "Unknown", event.Time)
		assert.True(t, event.Amount.IsZero())
		assert.Nil(t, event.SenderBankId)
		assert.Nil(t, event.ReceiverBankId)
	})

	t.Run("should parse domain errors", func(t *testing.T) {
		outcome := ParsePayload("op", `{"error_no": 201, "message": "insufficient funds"}`, 1000)

		require.False(t, outcome.Skipped())
		assert.Equal(t, int64(201), *outcome.Event.ErrorNo)
		assert.Equal(t, "insufficient funds", *outcome.Event.Message)
		assert.Equal(t, 1.0, outcome.Event.DurationMs)
	})

	t.Run("should accept an integral float as an integer", func(t *testing.T) {
		outcome := ParsePayload("op", `{"error_no": 201.0, "SenderBankId": 4.5}`, 0)

		require.False(t, outcome.Skipped())
		assert.Equal(t, int64(201), *outcome.Event.ErrorNo)
		assert.Nil(t, outcome.Event.SenderBankId)
	})

	t.Run("should not treat a numeric string as an integer", func(t *testing.T) {
		outcome := ParsePayload("op", `{"error_no": "201"}`, 0)

		require.False(t, outcome.Skipped())
		assert.Nil(t, outcome.Event.ErrorNo)
	})

	t.Run("should render non string identifiers as text", func(t *testing.T) {
		outcome := ParsePayload("op", `{"SenderCustomerId": 1001, "ReceiverCustomerId": null, "Amount": "99.90"}`, 0)

		require.False(t, outcome.Skipped())
		assert.Equal(t, "1001", outcome.Event.SenderCustomerId)
		assert.Equal(t, "Unknown", outcome.Event.ReceiverCustomerId)
		assert.Equal(t, "99.9", outcome.Event.Amount.String())
	})

	t.Run("should count a non numeric amount as zero", func(t *testing.T) {
		outcome := ParsePayload("op", `{"Amount": "lots"}`, 0)

		require.False(t, outcome.Skipped())
		assert.True(t, outcome.Event.Amount.IsZero())
	})

	t.Run("should count an amount with an out of range exponent as zero", func(t *testing.T) {
		for _, raw := range []string{
			`{"SenderCustomerId": "c", "Amount": 1e20000000}`,
			`{"SenderCustomerId": "c", "Amount": 1e999999999}`,
			`{"SenderCustomerId": "c", "Amount": 1e-20000000}`,
			`{"SenderCustomerId": "c", "Amount": "1e65"}`,
		} {
			outcome := ParsePayload("op", raw, 1000)

			require.False(t, outcome.Skipped(), raw)
			assert.True(t, outcome.Event.Amount.IsZero(), raw)
			assert.Equal(t, "0", outcome.Event.Amount.String(), raw)
			assert.Equal(t, "c", outcome.Event.SenderCustomerId, raw)
		}
	})

	t.Run("should keep an amount written with a small exponent", func(t *testing.T) {
		outcome := ParsePayload("op", `{"Amount": 1.5e3}`, 0)

		require.False(t, outcome.Skipped())
		assert.Equal(t, "1500", outcome.Event.Amount.String())
	})

	t.Run("should skip malformed json", func(t *testing.T) {
		outcome := ParsePayload("op", `{not json`, 0)

		assert.True(t, outcome.Skipped())
		assert.Nil(t, outcome.Event)
		assert.NotEmpty(t, outcome.SkipReason)
	})

	t.Run("should skip json that is not an object", func(t *testing.T) {
		for _, raw := range []string{`[1, 2]`, `"text"`, `42`, `null`, ``} {
			outcome := ParsePayload("op", raw, 0)
			assert.True(t, outcome.Skipped(), "expected %q to be skipped", raw)
		}
	})
}
