package migrations_test

import (
	"strings"
	"testing"

	"parking-core/migrations"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	names, err := migrations.Names()
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "001_initial_schema.sql", names[0])
}

func TestInitialSchema(t *testing.T) {
	sql, err := migrations.Read("001_initial_schema.sql")
	require.NoError(t, err)

	for _, fragment := range []string{
		"CREATE TABLE IF NOT EXISTS facilities",
		"CREATE TABLE IF NOT EXISTS spots",
		"CREATE TABLE IF NOT EXISTS tariff_plans",
		"CREATE TABLE IF NOT EXISTS reservations",
		"CREATE TABLE IF NOT EXISTS payments",
		"CREATE TABLE IF NOT EXISTS outbox_events",
		"CREATE TABLE IF NOT EXISTS reconciliation_flags",
		"reservations_active_spot_key",
		"payments_reservation_key",
	} {
		assert.True(t, strings.Contains(sql, fragment), fragment)
	}
}
