package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	files, err := fs.Glob(FS, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, name := range files {
		data, err := FS.ReadFile(name)
		require.NoError(t, err)
		body := string(data)
		assert.Contains(t, body, "-- +goose Up", name)
		assert.Contains(t, body, "-- +goose Down", name)
	}
}

func TestBookingSlotIsUnique(t *testing.T) {
	data, err := FS.ReadFile("00002_events.sql")
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "UNIQUE KEY idx_speaker_bookings_confirmed_slot (confirmed_slot)"))
}
