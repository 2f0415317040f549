package listmonk

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// FallbackTextKey holds the raw body when a response is not a JSON object.
const FallbackTextKey = "text"

// Payload is a decoded JSON object as returned by the server. Successful
// responses keep the server's envelope (usually {"data": ...}) untouched.
type Payload map[string]any

// Data returns the "data" member of the envelope.
func (p Payload) Data() any {
	return p["data"]
}

// DataMap returns the "data" member when it is an object.
func (p Payload) DataMap() map[string]any {
	m, _ := p["data"].(map[string]any)
	return m
}

// readResponse drains and closes the body. A read failure means the exchange
// did not complete and is reported as a transport error.
func readResponse(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return body, nil
}

// normalize classifies a completed exchange into a success payload or an
// *APIError. Every response goes through here exactly once.
func normalize(statusCode int, body []byte) (Payload, error) {
	payload := decodePayload(body)

	if statusCode >= 200 && statusCode < 300 {
		return payload, nil
	}

	message := fmt.Sprintf("HTTP %d", statusCode)
	if m, ok := payload["message"]; ok && m != nil {
		if s, ok := m.(string); ok {
			message = s
		} else {
			message = fmt.Sprint(m)
		}
	}
	return nil, &APIError{
		Message:    message,
		StatusCode: statusCode,
		Response:   payload,
		Kind:       KindRemote,
	}
}

// decodePayload decodes a JSON object, falling back to {"text": raw} for
// anything else (invalid JSON, empty bodies, arrays, scalars).
func decodePayload(body []byte) Payload {
	var payload Payload
	if err := json.Unmarshal(body, &payload); err != nil || payload == nil {
		return Payload{FallbackTextKey: string(body)}
	}
	return payload
}
