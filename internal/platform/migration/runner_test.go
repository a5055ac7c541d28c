// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/shelfmark/internal/platform/migration"
)

/*
TestToPgx5DSN checks the scheme rewrite for golang-migrate.
*/
func TestToPgx5DSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://u:p@db:5432/shelfmark", "pgx5://u:p@db:5432/shelfmark"},
		{"postgresql://db/shelfmark?sslmode=disable", "pgx5://db/shelfmark?sslmode=disable"},
		{"pgx5://db/shelfmark", "pgx5://db/shelfmark"},
		{"host=db dbname=shelfmark", "host=db dbname=shelfmark"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, migration.ToPgx5DSN(tt.in))
		})
	}
}
