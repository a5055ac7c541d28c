// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package uuid generates the primary keys of every Shelfmark record.
//
// Keys are UUIDv7, so they sort by creation time and keep the PostgreSQL
// primary key indexes append-only.
package uuid

import "github.com/google/uuid"

// New returns a new UUIDv7 string.
//
// It panics only when the OS random source fails.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuid: failed to generate v7: " + err.Error())
	}
	return id.String()
}
