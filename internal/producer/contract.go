package producer

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/harrison/testforge/internal/models"
)

// ContractError is the fatal failure class for a producer response that is
// not a path→content mapping, or is empty. No files are written when it is
// raised.
type ContractError struct {
	Reason string
}

// Error implements the error interface.
func (e *ContractError) Error() string {
	return "producer contract violation: " + e.Reason
}

// DecodePayload parses the schema-constrained payload the producer emitted
// and validates the file-set contract: "files" must be a JSON object with
// at least one entry, every value a string.
func DecodePayload(content []byte) (models.FileSet, error) {
	var p payload
	if err := json.Unmarshal(content, &p); err != nil {
		return nil, &ContractError{Reason: fmt.Sprintf("response is not a JSON object: %v", err)}
	}
	return DecodeFileSet(p.Files)
}

// DecodeFileSet validates and decodes the raw "files" value.
func DecodeFileSet(raw json.RawMessage) (models.FileSet, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, &ContractError{Reason: "generated file set is null"}
	}
	if trimmed[0] != '{' {
		return nil, &ContractError{Reason: "generated file set is not a path to content mapping"}
	}

	var files models.FileSet
	if err := json.Unmarshal(trimmed, &files); err != nil {
		return nil, &ContractError{Reason: fmt.Sprintf("generated file set has non-string content: %v", err)}
	}
	if len(files) == 0 {
		return nil, &ContractError{Reason: "generated file set is empty"}
	}
	return files, nil
}
