// Copyright (c) 2026 Kiji. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package transport

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/taibuivan/kiji/internal/platform/apperr"
)

// # Error Payload Decoding

// The server reports failures as {"detail": ...} with "detail" being either a
// plain string or a structured value (a list of field errors on validation
// failures), falling back to {"message": "..."} on older endpoints. The shape
// is decoded explicitly into a tagged result here; nothing downstream ever
// performs runtime type inspection.

// errorPayload is the decoded, tagged form of a server error body.
type errorPayload struct {
	// detail is the display-ready message derived from the body, empty if none.
	detail string
	// message is the generic fallback message field, empty if none.
	message string
	// fields holds decoded field-level validation errors, nil if none.
	fields []apperr.FieldError
}

// rawErrorEnvelope matches the wire shape before the detail variant is resolved.
type rawErrorEnvelope struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}

// fieldDetail matches one entry of a structured validation detail list.
type fieldDetail struct {
	Loc []json.RawMessage `json:"loc"`
	Msg string            `json:"msg"`
}

// decodeErrorPayload reads and classifies a server error body. It never fails:
// an unreadable or non-JSON body simply yields an empty payload so the
// notification falls through to the transport-level text.
func decodeErrorPayload(body io.Reader) errorPayload {

	raw, err := io.ReadAll(io.LimitReader(body, 1<<16))
	if err != nil || len(raw) == 0 {
		return errorPayload{}
	}

	envelope := rawErrorEnvelope{}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return errorPayload{}
	}

	payload := errorPayload{message: envelope.Message}
	if len(envelope.Detail) == 0 {
		return payload
	}

	// Variant 1: plain string detail.
	var plain string
	if err := json.Unmarshal(envelope.Detail, &plain); err == nil {
		payload.detail = plain
		return payload
	}

	// Variant 2: structured field-error list.
	var details []fieldDetail
	if err := json.Unmarshal(envelope.Detail, &details); err == nil && len(details) > 0 {
		for _, d := range details {
			payload.fields = append(payload.fields, apperr.FieldError{
				Field:   fieldName(d.Loc),
				Message: d.Msg,
			})
		}
		payload.detail = formatFields(payload.fields)
		return payload
	}

	// Variant 3: any other JSON value. Serialize it readably rather than
	// displaying nothing.
	payload.detail = string(envelope.Detail)
	return payload
}

// fieldName extracts the field identifier from a structured detail location
// path, skipping positional segments like "body" or array indices.
func fieldName(loc []json.RawMessage) string {
	name := ""
	for _, segment := range loc {
		var s string
		if err := json.Unmarshal(segment, &s); err == nil && s != "body" && s != "query" && s != "path" {
			name = s
		}
	}
	return name
}

// formatFields renders field errors as a single readable line.
func formatFields(fields []apperr.FieldError) string {
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		if field.Field == "" {
			parts = append(parts, field.Message)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", field.Field, field.Message))
	}
	return strings.Join(parts, "; ")
}
