package formimport

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// formPage renders formData the way Google embeds it in a viewform page.
func formPage(t *testing.T, formData []any) string {
	t.Helper()

	raw, err := json.Marshal([]any{nil, formData, "/forms", 0})
	require.NoError(t, err)

	return fmt.Sprintf(`<!DOCTYPE html><html><head><script nonce="x">var FB_PUBLIC_LOAD_DATA_ = %s;</script></head><body></body></html>`, raw)
}

func formData(title, description string, questions ...any) []any {
	data := make([]any, 9)
	data[0] = description
	data[1] = questions
	data[8] = title
	return data
}

func question(text string, code int, options []string, required int) []any {
	opts := make([]any, 0, len(options))
	for _, option := range options {
		opts = append(opts, []any{option, nil, nil, nil, 0})
	}
	return []any{
		int64(1000001),
		text,
		nil,
		code,
		[]any{[]any{int64(2000002), opts, required}},
	}
}

func mustPayload(t *testing.T, data []any) *RawFormPayload {
	t.Helper()

	payload, err := ExtractPayload(formPage(t, data))
	require.NoError(t, err)
	return payload
}
