// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination turns ?page=&limit= into LIMIT/OFFSET values and
// describes the result in the response envelope.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params is a 1-based page of Limit items.
type Params struct {
	Page  int
	Limit int
}

// Offset is the number of items before the page.
func (p Params) Offset() int {
	return (max(p.Page, 1) - 1) * p.Limit
}

// Meta is the "meta" object of a paginated response.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta describes page out of total items.
func NewMeta(page Params, total int) Meta {
	meta := Meta{Page: page.Page, Limit: page.Limit, Total: total}
	if page.Limit > 0 {
		meta.TotalPages = (total + page.Limit - 1) / page.Limit
	}
	return meta
}

// FromRequest reads page and limit from the query string. Missing, malformed
// or out-of-range values fall back to page 1 and [DefaultLimit].
func FromRequest(request *http.Request) Params {
	query := request.URL.Query()

	page, err := strconv.Atoi(query.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(query.Get("limit"))
	if err != nil || limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
	}

	return Params{Page: page, Limit: limit}
}
