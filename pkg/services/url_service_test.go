package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"url-admin/pkg/models"
)

func TestURLService_CRUD(t *testing.T) {
	s := NewURLService()
	ctx := context.Background()

	a, err := s.CreateURL(ctx, models.URLCreate{URL: " https://a.test ", Active: true})
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, "https://a.test", a.URL)

	b, err := s.CreateURL(ctx, models.URLCreate{URL: "http://b.test"})
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)

	list, err := s.ListURLs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.URLRecord{*a, *b}, list, "insertion order")

	active := true
	updated, err := s.UpdateURL(ctx, b.ID, models.URLUpdate{Active: &active})
	require.NoError(t, err)
	assert.Equal(t, "http://b.test", updated.URL)
	assert.True(t, updated.Active)

	require.NoError(t, s.DeleteURL(ctx, a.ID))
	list, err = s.ListURLs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.URLRecord{*updated}, list)
}

func TestURLService_Errors(t *testing.T) {
	s := NewURLService()
	ctx := context.Background()

	_, err := s.CreateURL(ctx, models.URLCreate{URL: "ftp://bad"})
	assert.ErrorIs(t, err, ErrInvalidURL)

	rec, err := s.CreateURL(ctx, models.URLCreate{URL: "https://a.test"})
	require.NoError(t, err)

	bad := "nope"
	_, err = s.UpdateURL(ctx, rec.ID, models.URLUpdate{URL: &bad})
	assert.ErrorIs(t, err, ErrInvalidURL)

	_, err = s.UpdateURL(ctx, "missing", models.URLUpdate{})
	assert.ErrorIs(t, err, ErrURLNotFound)

	assert.ErrorIs(t, s.DeleteURL(ctx, "missing"), ErrURLNotFound)
}

func TestURLService_PickActive(t *testing.T) {
	s := NewURLService()
	ctx := context.Background()

	_, err := s.PickActive(ctx)
	assert.ErrorIs(t, err, ErrNoActiveURLs)

	_, err = s.CreateURL(ctx, models.URLCreate{URL: "https://inactive.test", Active: false})
	require.NoError(t, err)
	_, err = s.PickActive(ctx)
	assert.ErrorIs(t, err, ErrNoActiveURLs)

	_, err = s.CreateURL(ctx, models.URLCreate{URL: "https://one.test", Active: true})
	require.NoError(t, err)
	_, err = s.CreateURL(ctx, models.URLCreate{URL: "https://two.test", Active: true})
	require.NoError(t, err)

	s.pick = func(n int) int { return n - 1 }
	rec, err := s.PickActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://two.test", rec.URL)

	s.pick = func(int) int { return 0 }
	rec, err = s.PickActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://one.test", rec.URL)
}
