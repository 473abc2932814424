package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/calyptra/storefront/internal/log"
	inOtel "github.com/calyptra/storefront/internal/otel"
	"github.com/calyptra/storefront/internal/wishlist/otel"
)

const (
	ListWishlist = "wishlist"
	ListCompare  = "compare"
)

var ErrUnknownList = errors.New("unknown list name")

// WishlistService keeps per-session wishlist and compare lists in the
// injected key-value store. Lists are read and written whole,
// mirroring the browser-storage behavior this replaces.
type WishlistService struct {
	store *redis.Client
}

func NewWishlistService(store *redis.Client) WishlistService {
	return WishlistService{store: store}
}

func listKey(listName string, sessionID string) (string, error) {
	if listName != ListWishlist && listName != ListCompare {
		return "", fmt.Errorf("listName=%s with error=%w", listName, ErrUnknownList)
	}
	return listName + ":" + sessionID, nil
}

func (svc WishlistService) List(
	c context.Context,
	sessionID string,
	listName string,
) ([]string, error) {
	c, span := otel.Tracer.Start(c, "WishlistService List")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "WishlistService List").
		Str(log.KeySessionID, sessionID).
		Str(log.KeyListName, listName).
		Logger()

	key, err := listKey(listName, sessionID)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}

	logger = logger.With().Str(log.KeyProcess, "reading list").Logger()
	logger.Trace().Msg("reading list")
	raw, err := svc.store.Get(c, key).Result()
	if errors.Is(err, redis.Nil) {
		return []string{}, nil
	}
	if err != nil {
		err = fmt.Errorf("failed reading list with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}

	ids := []string{}
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		err = fmt.Errorf("failed decoding list with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Trace().Msgf("read %d ids", len(ids))
	return ids, nil
}

func (svc WishlistService) Replace(
	c context.Context,
	sessionID string,
	listName string,
	ids []string,
) ([]string, error) {
	c, span := otel.Tracer.Start(c, "WishlistService Replace")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "WishlistService Replace").
		Str(log.KeySessionID, sessionID).
		Str(log.KeyListName, listName).
		Logger()

	key, err := listKey(listName, sessionID)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}

	logger = logger.With().Str(log.KeyProcess, "writing list").Logger()
	logger.Trace().Msg("writing list")
	encoded, err := json.Marshal(ids)
	if err != nil {
		err = fmt.Errorf("failed encoding list with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	if err := svc.store.Set(c, key, encoded, 0).Err(); err != nil {
		err = fmt.Errorf("failed writing list with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Trace().Msgf("wrote %d ids", len(ids))
	return ids, nil
}

// Toggle adds the id when absent and removes it when present, then
// writes the whole list back.
func (svc WishlistService) Toggle(
	c context.Context,
	sessionID string,
	listName string,
	id string,
) ([]string, error) {
	c, span := otel.Tracer.Start(c, "WishlistService Toggle")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "WishlistService Toggle").
		Str(log.KeySessionID, sessionID).
		Str(log.KeyListName, listName).
		Str(log.KeyProductID, id).
		Logger()

	c = logger.WithContext(c)
	ids, err := svc.List(c, sessionID, listName)
	if err != nil {
		return nil, err
	}

	if i := slices.Index(ids, id); i >= 0 {
		ids = slices.Delete(ids, i, i+1)
		logger.Info().Msgf("removed id=%s from %s", id, listName)
	} else {
		ids = append(ids, id)
		logger.Info().Msgf("added id=%s to %s", id, listName)
	}

	return svc.Replace(c, sessionID, listName, ids)
}
