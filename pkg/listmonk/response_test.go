package listmonk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePayload(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Payload
	}{
		{name: "object", body: `{"data":{"id":1}}`, want: Payload{"data": map[string]any{"id": float64(1)}}},
		{name: "invalid json", body: `not json`, want: Payload{FallbackTextKey: "not json"}},
		{name: "empty", body: ``, want: Payload{FallbackTextKey: ""}},
		{name: "null", body: `null`, want: Payload{FallbackTextKey: "null"}},
		{name: "array", body: `[1,2]`, want: Payload{FallbackTextKey: "[1,2]"}},
		{name: "scalar", body: `true`, want: Payload{FallbackTextKey: "true"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decodePayload([]byte(tt.body)))
		})
	}
}

func TestNormalize(t *testing.T) {
	payload, err := normalize(201, []byte(`{"data":{"id":3}}`))
	require.NoError(t, err)
	assert.Equal(t, float64(3), payload.DataMap()["id"])

	_, err = normalize(422, []byte(`{"message":42}`))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "42", apiErr.Message)
	assert.Equal(t, 422, apiErr.StatusCode)
	assert.Equal(t, Payload{"message": float64(42)}, apiErr.Response)

	_, err = normalize(500, []byte(`{"message":null}`))
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "HTTP 500", apiErr.Message)
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "remote", KindRemote.String())
	assert.Equal(t, "transport", KindTransport.String())
	assert.Equal(t, "not_found", KindNotFound.String())
	assert.Equal(t, "invalid_request", KindInvalidRequest.String())
	assert.Equal(t, "unknown", ErrorKind(99).String())
}
