package service

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	testRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func setup(t *testing.T, c context.Context) (WishlistService, func()) {
	redisContainer, err := testRedis.Run(c, "redis:7.4.2-alpine3.21")
	if err != nil {
		t.Fatalf("failed running redis container with error: %s", err)
	}

	redisConnStr, err := redisContainer.ConnectionString(c)
	if err != nil {
		t.Fatalf("failed getting redis connection string with error: %s", err)
	}

	redisOpt, err := redis.ParseURL(redisConnStr)
	if err != nil {
		t.Fatalf("failed parsing redis connection string with error: %s", err)
	}

	redisClient := redis.NewClient(redisOpt)
	if err = redisClient.Ping(c).Err(); err != nil {
		t.Fatalf("failed ping redis client with error: %s", err)
	}

	teardown := func() {
		redisClient.Close()
		if err := testcontainers.TerminateContainer(redisContainer); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}
	return NewWishlistService(redisClient), teardown
}

func TestWishlistListEmptyByDefault(t *testing.T) {
	c := context.Background()
	svc, teardown := setup(t, c)
	defer teardown()

	ids, err := svc.List(c, "session-1", ListWishlist)

	assert.NoError(t, err)
	assert.Equal(t, []string{}, ids)
}

func TestWishlistReplaceThenList(t *testing.T) {
	c := context.Background()
	svc, teardown := setup(t, c)
	defer teardown()

	written, err := svc.Replace(c, "session-1", ListWishlist, []string{"product-1", "product-2"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"product-1", "product-2"}, written)

	ids, err := svc.List(c, "session-1", ListWishlist)
	assert.NoError(t, err)
	assert.Equal(t, []string{"product-1", "product-2"}, ids)

	cleared, err := svc.Replace(c, "session-1", ListWishlist, nil)
	assert.NoError(t, err)
	assert.Equal(t, []string{}, cleared)
}

func TestWishlistToggleAddsThenRemoves(t *testing.T) {
	c := context.Background()
	svc, teardown := setup(t, c)
	defer teardown()

	ids, err := svc.Toggle(c, "session-1", ListCompare, "product-1")
	assert.NoError(t, err)
	assert.Equal(t, []string{"product-1"}, ids)

	ids, err = svc.Toggle(c, "session-1", ListCompare, "product-2")
	assert.NoError(t, err)
	assert.Equal(t, []string{"product-1", "product-2"}, ids)

	ids, err = svc.Toggle(c, "session-1", ListCompare, "product-1")
	assert.NoError(t, err)
	assert.Equal(t, []string{"product-2"}, ids)
}

func TestWishlistListsAreIndependentPerNameAndSession(t *testing.T) {
	c := context.Background()
	svc, teardown := setup(t, c)
	defer teardown()

	_, err := svc.Replace(c, "session-1", ListWishlist, []string{"product-1"})
	assert.NoError(t, err)
	_, err = svc.Replace(c, "session-1", ListCompare, []string{"product-2"})
	assert.NoError(t, err)

	wishlist, err := svc.List(c, "session-1", ListWishlist)
	assert.NoError(t, err)
	assert.Equal(t, []string{"product-1"}, wishlist)

	compare, err := svc.List(c, "session-1", ListCompare)
	assert.NoError(t, err)
	assert.Equal(t, []string{"product-2"}, compare)

	other, err := svc.List(c, "session-2", ListWishlist)
	assert.NoError(t, err)
	assert.Equal(t, []string{}, other)
}

func TestWishlistRejectsUnknownListName(t *testing.T) {
	c := context.Background()
	svc, teardown := setup(t, c)
	defer teardown()

	_, err := svc.List(c, "session-1", "recently-viewed")
	assert.ErrorIs(t, err, ErrUnknownList)

	_, err = svc.Replace(c, "session-1", "recently-viewed", []string{"product-1"})
	assert.ErrorIs(t, err, ErrUnknownList)
}
