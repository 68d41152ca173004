// Package dto defines data transfer objects for API requests and responses.
package dto

import "github.com/google/uuid"

// uuidToStringPtr converts an optional UUID to an optional string.
func uuidToStringPtr(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

// parseUUIDPtr parses an optional string into an optional UUID. Invalid
// values surface as nil together with ok=false.
func parseUUIDPtr(s *string) (*uuid.UUID, bool) {
	if s == nil {
		return nil, true
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, false
	}
	return &id, true
}
