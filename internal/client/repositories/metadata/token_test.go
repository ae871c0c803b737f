package metadata

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/sweetshop/internal/common"
)

func TestTokenStore_RoundTrip(t *testing.T) {
	r, _ := newRepo(t)
	s := NewTokenStore(r)
	ctx := context.Background()

	tok, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)

	require.NoError(t, s.SaveSession(ctx, "h.p.s", "dana"))
	tok, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "h.p.s", tok)

	raw, err := r.Get(ctx, common.TokenKey)
	require.NoError(t, err)
	assert.Equal(t, []byte("h.p.s"), raw)

	require.NoError(t, s.Clear(ctx))
	tok, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestTokenStore_SaveEmptyClears(t *testing.T) {
	r, _ := newRepo(t)
	s := NewTokenStore(r)
	ctx := context.Background()

	require.NoError(t, s.SaveSession(ctx, "h.p.s", "dana"))
	require.NoError(t, s.SaveSession(ctx, "", "dana"))

	_, err := r.Get(ctx, common.TokenKey)
	assert.ErrorIs(t, err, common.ErrNotFound)
	last, err := s.LastUsername(ctx)
	require.NoError(t, err)
	assert.Equal(t, "dana", last)
}

func TestTokenStore_DriverErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewTokenStore(NewSQLiteRepository(db))
	ctx := context.Background()
	boom := errors.New("disk I/O error")

	mock.ExpectQuery(regexp.QuoteMeta(selectValueSQL)).
		WithArgs(common.TokenKey).
		WillReturnError(boom)
	_, err = s.Load(ctx)
	require.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "load token")

	mock.ExpectQuery(regexp.QuoteMeta(selectValueSQL)).
		WithArgs(common.LastUserKey).
		WillReturnError(boom)
	_, err = s.LastUsername(ctx)
	require.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "load last username")

	mock.ExpectBegin().WillReturnError(boom)
	err = s.SaveSession(ctx, "t.o.k", "dana")
	require.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "save session")

	mock.ExpectExec(regexp.QuoteMeta(deleteValueSQL)).
		WithArgs(common.TokenKey).
		WillReturnError(boom)
	err = s.Clear(ctx)
	require.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "clear token")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenStore_LoadFromMockRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(selectValueSQL)).
		WithArgs(common.TokenKey).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte("x.y.z")))

	tok, err := NewTokenStore(NewSQLiteRepository(db)).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "x.y.z", tok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenStore_SaveSessionKeepsUsernameAfterClear(t *testing.T) {
	r, _ := newRepo(t)
	s := NewTokenStore(r)
	ctx := context.Background()

	last, err := s.LastUsername(ctx)
	require.NoError(t, err)
	assert.Empty(t, last)

	require.NoError(t, s.SaveSession(ctx, "h.p.s", "dana"))

	tok, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "h.p.s", tok)

	require.NoError(t, s.Clear(ctx))

	tok, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)
	last, err = s.LastUsername(ctx)
	require.NoError(t, err)
	assert.Equal(t, "dana", last)
}

func TestTokenStore_SaveSessionIsAtomic(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewTokenStore(NewSQLiteRepository(db))
	boom := errors.New("disk full")

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO metadata`)).
		WithArgs(common.TokenKey, []byte("t.o.k")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO metadata`)).
		WithArgs(common.LastUserKey, []byte("dana")).
		WillReturnError(boom)
	mock.ExpectRollback()

	err = s.SaveSession(context.Background(), "t.o.k", "dana")
	require.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "save session")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenStore_SaveSessionCommits(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO metadata`)).
		WithArgs(common.TokenKey, []byte("t.o.k")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO metadata`)).
		WithArgs(common.LastUserKey, []byte("dana")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, NewTokenStore(NewSQLiteRepository(db)).SaveSession(context.Background(), "t.o.k", "dana"))
	require.NoError(t, mock.ExpectationsWereMet())
}
