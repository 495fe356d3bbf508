package testutil

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/mppimport/internal/publish"
)

// DecodeEnvelopes parses the stream of JSON envelopes the import wrote.
func DecodeEnvelopes(t *testing.T, output string) []publish.Envelope {
	t.Helper()

	var envelopes []publish.Envelope
	dec := json.NewDecoder(strings.NewReader(output))
	for dec.More() {
		var env publish.Envelope
		require.NoError(t, dec.Decode(&env))
		envelopes = append(envelopes, env)
	}
	return envelopes
}

// AssertOmitted checks that a unit was skipped and that the omission was
// logged with its reason.
func AssertOmitted(t *testing.T, result *HarnessResult, logMessage string) {
	t.Helper()
	require.Contains(t, result.LogOutput, logMessage,
		"expected omission %q was not found in logs", logMessage)
}
