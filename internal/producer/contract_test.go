package producer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/testforge/internal/models"
)

func TestDecodeFileSet_Valid(t *testing.T) {
	raw := json.RawMessage(`{"tests/login.spec.ts": "content", "fixtures/pomFixtures.ts": ""}`)

	files, err := DecodeFileSet(raw)
	require.NoError(t, err)
	assert.Equal(t, models.FileSet{
		"tests/login.spec.ts":     "content",
		"fixtures/pomFixtures.ts": "",
	}, files)
}

func TestDecodeFileSet_ContractViolations(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		reason string
	}{
		{"null", `null`, "null"},
		{"absent", ``, "null"},
		{"array", `["tests/login.spec.ts"]`, "not a path to content mapping"},
		{"string", `"tests/login.spec.ts"`, "not a path to content mapping"},
		{"number", `42`, "not a path to content mapping"},
		{"non-string value", `{"tests/login.spec.ts": {"nested": true}}`, "non-string content"},
		{"empty object", `{}`, "empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeFileSet(json.RawMessage(tt.raw))
			require.Error(t, err)

			var contractErr *ContractError
			require.ErrorAs(t, err, &contractErr)
			assert.Contains(t, contractErr.Error(), "producer contract violation")
			assert.Contains(t, contractErr.Reason, tt.reason)
		})
	}
}

func TestDecodePayload(t *testing.T) {
	files, err := DecodePayload([]byte(`{"files": {"tests/a.spec.ts": "x"}}`))
	require.NoError(t, err)
	assert.Equal(t, "x", files["tests/a.spec.ts"])

	_, err = DecodePayload([]byte(`not json`))
	var contractErr *ContractError
	require.ErrorAs(t, err, &contractErr)

	_, err = DecodePayload([]byte(`{"files": []}`))
	require.ErrorAs(t, err, &contractErr)
}
