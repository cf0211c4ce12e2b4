package migrations

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

func noop(context.Context, pgx.Tx) error { return nil }

func TestAddMigration_SortsByVersion(t *testing.T) {
	t.Parallel()

	m := NewMigrator(nil,
		Migration{Version: 3, Name: "c", Up: noop},
		Migration{Version: 1, Name: "a", Up: noop},
	)
	m.AddMigration(Migration{Version: 2, Name: "b", Up: noop})

	got := m.Migrations()
	require.Len(t, got, 3)
	require.Equal(t, []int64{1, 2, 3}, []int64{got[0].Version, got[1].Version, got[2].Version})
}

func TestAll(t *testing.T) {
	t.Parallel()

	require.Equal(t, []int64{1}, versions(All(false)))
	require.Equal(t, []int64{1, 2}, versions(All(true)))
}

func versions(ms []Migration) []int64 {
	out := make([]int64, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Version)
	}
	return out
}
