package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotJSON is returned when an ajax endpoint answers with something
// that is not JSON, typically an HTML login or CAPTCHA page.
//
// This is how a session/auth failure manifests: pixiv serves the
// regular web page where structured data was expected. The usual fix is
// refreshing the PHPSESSID cookie.
var ErrNotJSON = errors.New("response is not JSON (session cookie may be missing or expired)")

// Envelope is the common wrapper of every pixiv ajax response:
//
//	{"error": false, "message": "", "body": {...}}
//
// The body is kept raw so callers can decode it into the shape that
// their endpoint returns.
type Envelope struct {
	Error   bool            `json:"error"`
	Message string          `json:"message"`
	Body    json.RawMessage `json:"body"`
}

// DecodeEnvelope parses raw ajax response bytes and unwraps the body
// into v.
//
// Returns ErrNotJSON (wrapped) when the payload does not look like
// JSON, and an error carrying the server's message when the envelope's
// error flag is set.
func DecodeEnvelope(raw []byte, v any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || (trimmed[0] != '{' && trimmed[0] != '[') {
		return fmt.Errorf("%w: got %q", ErrNotJSON, preview(trimmed))
	}

	var env Envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return fmt.Errorf("%w: %v", ErrNotJSON, err)
	}
	if env.Error {
		msg := env.Message
		if msg == "" {
			msg = "unknown error"
		}
		return fmt.Errorf("api error: %s", msg)
	}
	if len(env.Body) == 0 {
		return nil
	}

	return json.Unmarshal(env.Body, v)
}

// preview truncates raw bytes for error messages.
func preview(b []byte) string {
	const max = 60
	if len(b) > max {
		b = b[:max]
	}
	return string(b)
}
