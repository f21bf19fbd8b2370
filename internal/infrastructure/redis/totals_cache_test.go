package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProductTotal_HitYMiss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := NewTotalsCache(db, "wms", time.Minute)
	ctx := context.Background()

	mock.ExpectGet("wms:total:7").SetVal("12")
	mock.ExpectGet("wms:total:8").RedisNil()

	total, found, err := cache.GetProductTotal(ctx, 7)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(12), total)

	_, found, err = cache.GetProductTotal(ctx, 8)
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProductTotal_ErrorDeRedis(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := NewTotalsCache(db, "wms", time.Minute)

	mock.ExpectGet("wms:total:7").SetErr(errors.New("conexión rechazada"))

	_, found, err := cache.GetProductTotal(context.Background(), 7)
	assert.Error(t, err)
	assert.False(t, found)
}

func TestSetProductTotal_ConTTL(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := NewTotalsCache(db, "wms", 30*time.Second)

	mock.ExpectSet("wms:total:7", int64(5), 30*time.Second).SetVal("OK")

	require.NoError(t, cache.SetProductTotal(context.Background(), 7, 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvalidate_BorraTodasLasClaves(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := NewTotalsCache(db, "wms", time.Minute)

	mock.ExpectDel("wms:total:1", "wms:total:2").SetVal(2)

	require.NoError(t, cache.Invalidate(context.Background(), 1, 2))
	require.NoError(t, cache.Invalidate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
