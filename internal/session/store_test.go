package session_test

import (
	"context"
	"testing"
	"time"

	"tasktracker/internal/session"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRedisStore_Lifecycle(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := session.NewRedisStore(db)
	ctx := context.Background()
	userID := uuid.New()

	mock.ExpectSet("session:abc", userID.String(), time.Hour).SetVal("OK")
	mock.ExpectExists("session:abc").SetVal(1)
	mock.ExpectDel("session:abc").SetVal(1)
	mock.ExpectExists("session:abc").SetVal(0)

	assert.NoError(t, store.Save(ctx, "abc", userID, time.Hour))

	active, err := store.Active(ctx, "abc")
	assert.NoError(t, err)
	assert.True(t, active)

	assert.NoError(t, store.Revoke(ctx, "abc"))

	active, err = store.Active(ctx, "abc")
	assert.NoError(t, err)
	assert.False(t, active)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_ActiveError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := session.NewRedisStore(db)

	mock.ExpectExists("session:abc").SetErr(assert.AnError)

	active, err := store.Active(context.Background(), "abc")

	assert.ErrorIs(t, err, assert.AnError)
	assert.False(t, active)
}

func TestNoopStore(t *testing.T) {
	var store session.Store = session.NoopStore{}
	ctx := context.Background()

	assert.NoError(t, store.Save(ctx, "abc", uuid.New(), time.Hour))
	active, err := store.Active(ctx, "abc")
	assert.NoError(t, err)
	assert.True(t, active)
	assert.NoError(t, store.Revoke(ctx, "abc"))
}
