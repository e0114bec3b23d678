package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefsRoundTrip(t *testing.T) {
	st, err := Open(filepath.Join(t.TempDir(), "nested", "prefs.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	_, ok, err := st.GetPref(ctx, PrefTheme)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, st.SetPref(ctx, PrefTheme, "dark"))
	require.NoError(t, st.SetPref(ctx, PrefTheme, "light"))

	value, ok, err := st.GetPref(ctx, PrefTheme)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "light", value)
}

func TestPrefsSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")
	ctx := context.Background()

	st, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, st.SetPref(ctx, PrefDuration, "60"))
	require.NoError(t, st.Close())

	st, err = Open(path)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})
	value, ok, err := st.GetPref(ctx, PrefDuration)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "60", value)
}

func TestGetPrefQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT value FROM prefs WHERE key = \\?").
		WithArgs(PrefTheme).
		WillReturnError(errors.New("disk I/O error"))

	_, ok, err := New(db).GetPref(context.Background(), PrefTheme)
	assert.Error(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetPrefExecError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO prefs").
		WithArgs(PrefTheme, "dark", sqlmock.AnyArg()).
		WillReturnError(errors.New("database is locked"))

	err = New(db).SetPref(context.Background(), PrefTheme, "dark")
	assert.ErrorContains(t, err, "theme")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPrefFromMock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT value FROM prefs WHERE key = \\?").
		WithArgs(PrefDuration).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("120"))

	value, ok, err := New(db).GetPref(context.Background(), PrefDuration)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "120", value)
	assert.NoError(t, mock.ExpectationsWereMet())
}
