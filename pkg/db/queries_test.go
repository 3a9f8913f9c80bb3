package db

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"url-admin/pkg/models"
	"url-admin/pkg/services"
)

func TestBuildUpdate(t *testing.T) {
	url := " https://a.test "
	active := false

	query, args := buildUpdate("id-1", models.URLUpdate{URL: &url, Active: &active})
	assert.Equal(t, "UPDATE urls SET updated_at = NOW(), url = $2, active = $3 WHERE id = $1 RETURNING id::text, url, active", query)
	assert.Equal(t, []interface{}{"id-1", "https://a.test", false}, args)

	query, args = buildUpdate("id-1", models.URLUpdate{Active: &active})
	assert.Equal(t, "UPDATE urls SET updated_at = NOW(), active = $2 WHERE id = $1 RETURNING id::text, url, active", query)
	assert.Equal(t, []interface{}{"id-1", false}, args)
}

// openTestDB connects to TEST_DATABASE_URL or skips
func openTestDB(t *testing.T) *DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	db, err := New(ctx, dsn)
	require.NoError(t, err)
	_, err = db.Pool.Exec(ctx, `TRUNCATE urls`)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db
}

func TestDB_URLLifecycle(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := db.PickActive(ctx)
	assert.ErrorIs(t, err, services.ErrNoActiveURLs)

	a, err := db.CreateURL(ctx, models.URLCreate{URL: "https://a.test", Active: true})
	require.NoError(t, err)
	b, err := db.CreateURL(ctx, models.URLCreate{URL: "https://b.test", Active: false})
	require.NoError(t, err)

	list, err := db.ListURLs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.URLRecord{*a, *b}, list)

	pick, err := db.PickActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, a.ID, pick.ID)

	active := true
	updated, err := db.UpdateURL(ctx, b.ID, models.URLUpdate{Active: &active})
	require.NoError(t, err)
	assert.True(t, updated.Active)
	assert.Equal(t, "https://b.test", updated.URL)

	require.NoError(t, db.DeleteURL(ctx, a.ID))
	assert.ErrorIs(t, db.DeleteURL(ctx, a.ID), services.ErrURLNotFound)
	assert.ErrorIs(t, db.DeleteURL(ctx, "not-a-uuid"), services.ErrURLNotFound)

	_, err = db.CreateURL(ctx, models.URLCreate{URL: "ftp://x"})
	assert.ErrorIs(t, err, services.ErrInvalidURL)
}
