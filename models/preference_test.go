package models

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pandamasta/menuguide/db"
	"github.com/pandamasta/menuguide/localize"
)

func TestPreferenceStoreRoundTrip(t *testing.T) {
	conn, err := db.Open(":memory:")
	require.NoError(t, err)
	defer conn.Close()

	store := PreferenceStore{DB: conn, UserID: 7}
	v, err := store.Load(localize.StorageKey)
	require.NoError(t, err)
	assert.Empty(t, v)

	require.NoError(t, store.Save(localize.StorageKey, "ja"))
	require.NoError(t, store.Save(localize.StorageKey, "zh"))

	v, err = store.Load(localize.StorageKey)
	require.NoError(t, err)
	assert.Equal(t, "zh", v)

	other := PreferenceStore{DB: conn, UserID: 8}
	v, err = other.Load(localize.StorageKey)
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestPreferenceStoreDrivesPreference(t *testing.T) {
	conn, err := db.Open(":memory:")
	require.NoError(t, err)
	defer conn.Close()

	pref := localize.NewPreference(PreferenceStore{DB: conn, UserID: 1, Ctx: context.Background()})
	assert.Equal(t, localize.English, pref.Language())
	assert.True(t, pref.SetLanguage(localize.Japanese))
	assert.Equal(t, localize.Japanese, pref.Language())
	assert.False(t, pref.SetLanguage(localize.Language("fr")))
	assert.Equal(t, localize.Japanese, pref.Language())
}

func TestPreferenceStoreErrors(t *testing.T) {
	conn, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM preferences`)).
		WithArgs(int64(3), localize.StorageKey).
		WillReturnError(errors.New("boom"))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO preferences`)).
		WithArgs(int64(3), localize.StorageKey, "ko").
		WillReturnError(errors.New("boom"))

	store := PreferenceStore{DB: conn, UserID: 3}
	_, err := store.Load(localize.StorageKey)
	assert.ErrorContains(t, err, "load preference")
	assert.ErrorContains(t, store.Save(localize.StorageKey, "ko"), "save preference")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPreferenceStoreLoadsStoredValue(t *testing.T) {
	conn, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM preferences`)).
		WithArgs(int64(5), localize.StorageKey).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("zh"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM preferences`)).
		WithArgs(int64(5), "other").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	store := PreferenceStore{DB: conn, UserID: 5}
	got, err := store.Load(localize.StorageKey)
	require.NoError(t, err)
	assert.Equal(t, "zh", got)

	got, err = store.Load("other")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
