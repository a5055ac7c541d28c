// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It hides chi's parameter extraction and the common body/query decoding
patterns behind helpers that return [apperr.AppError] values.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/shelfmark/internal/platform/apperr"
	"github.com/taibuivan/shelfmark/internal/platform/ctxutil"
	"github.com/taibuivan/shelfmark/internal/platform/validate"
)

// DateLayout is the calendar-date format accepted in query strings.
const DateLayout = "2006-01-02"

/*
DecodeJSON reads the request body and decodes it into target.

Returns:
  - error: validate.ErrInvalidJSON if decoding fails
*/
func DecodeJSON(request *http.Request, target any) error {
	decoder := json.NewDecoder(request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// ID retrieves a named URL parameter from the request.
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
RequiredUserID returns the ID of the authenticated user.

Returns:
  - error: apperr.Unauthorized if the request is anonymous
*/
func RequiredUserID(request *http.Request) (string, error) {
	userID := ctxutil.UserID(request.Context())
	if userID == "" {
		return "", apperr.Unauthorized("Authentication required")
	}
	return userID, nil
}

/*
OptionalDate parses a YYYY-MM-DD query parameter in location.

Returns:
  - *time.Time: nil when the parameter is absent
  - error: a VALIDATION_ERROR naming the parameter when it is malformed
*/
func OptionalDate(request *http.Request, name string, location *time.Location) (*time.Time, error) {
	raw := request.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}

	parsed, err := time.ParseInLocation(DateLayout, raw, location)
	if err != nil {
		return nil, apperr.InvalidField(name, "Must be a date formatted as YYYY-MM-DD")
	}
	return &parsed, nil
}
