package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMigrationsOrdered(t *testing.T) {
	seen := map[int]bool{}
	for i, m := range migrations {
		assert.Equal(t, i+1, m.version, "versions must be sequential")
		assert.False(t, seen[m.version])
		assert.NotEmpty(t, m.sql, m.name)
		seen[m.version] = true
	}
}
