package cache_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/NeuralTrust/AppVerdict/pkg/domain/verdict"
	"github.com/NeuralTrust/AppVerdict/pkg/infra/cache"
	"github.com/go-redis/redismock/v8"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

var genuine = verdict.Verdict{Type: verdict.Genuine, Reason: "Established publisher"}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemoryCache(time.Hour)

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", genuine))
	v, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, genuine, v)

	err = c.Set(ctx, "bad", verdict.Verdict{Type: "unknown", Reason: "x"})
	assert.Error(t, err)
}

func TestRedisCache_Hit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := cache.NewRedisCache(db, time.Hour, testLogger())

	mock.ExpectGet("verdict:abc").SetVal(`{"type":"genuine","reason":"Established publisher"}`)

	v, ok, err := c.Get(context.Background(), "verdict:abc")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, genuine, v)

	// served from the local copy, no second redis call expected
	v, ok, err = c.Get(context.Background(), "verdict:abc")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, genuine, v)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_Miss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := cache.NewRedisCache(db, time.Hour, testLogger())

	mock.ExpectGet("verdict:missing").RedisNil()

	_, ok, err := c.Get(context.Background(), "verdict:missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_MalformedEntryIsMiss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := cache.NewRedisCache(db, time.Hour, testLogger())

	mock.ExpectGet("verdict:junk").SetVal(`{"type":"maybe","reason":"?"}`)

	_, ok, err := c.Get(context.Background(), "verdict:junk")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCache_GetError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := cache.NewRedisCache(db, time.Hour, testLogger())

	mock.ExpectGet("verdict:down").SetErr(errors.New("connection refused"))

	_, ok, err := c.Get(context.Background(), "verdict:down")
	assert.False(t, ok)
	assert.ErrorContains(t, err, "connection refused")
}

func TestRedisCache_Set(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := cache.NewRedisCache(db, time.Hour, testLogger())

	mock.ExpectSet("verdict:abc", `{"type":"genuine","reason":"Established publisher"}`, time.Hour).SetVal("OK")

	require.NoError(t, c.Set(context.Background(), "verdict:abc", genuine))
	assert.NoError(t, mock.ExpectationsWereMet())

	v, ok, err := c.Get(context.Background(), "verdict:abc")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, genuine, v)
}

func TestRedisCache_SetRejectsInvalid(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := cache.NewRedisCache(db, time.Hour, testLogger())

	err := c.Set(context.Background(), "verdict:abc", verdict.Verdict{
		Type:   verdict.Fraud,
		Reason: strings.Repeat("x", verdict.MaxReasonLength+1),
	})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
