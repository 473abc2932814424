package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/calyptra/storefront/internal/cart/otel"
	"github.com/calyptra/storefront/cart/pkg/request"
	"github.com/calyptra/storefront/cart/pkg/response"
	inErrors "github.com/calyptra/storefront/internal/common/errors"
	"github.com/calyptra/storefront/internal/log"
	inOtel "github.com/calyptra/storefront/internal/otel"
)

// UpstreamClient is the commerce cart API the controller mediates.
type UpstreamClient interface {
	FetchCart(c context.Context, sessionID string) (response.CartSnapshot, error)
	AddLine(c context.Context, sessionID string, param request.AddLine) (response.CartSnapshot, error)
	ChangeLine(c context.Context, sessionID string, lineKey string, quantity int64) (response.CartSnapshot, error)
	BulkUpdate(c context.Context, sessionID string, updates map[string]int64) (response.CartSnapshot, error)
}

// cartState is the reconciliation state for one session cart. Every
// issued request is tagged with a send-time sequence number; a
// completed response replaces the snapshot only while its sequence is
// the highest applied so far. Arrival order is irrelevant: a slow
// response from an older mutation can never revert a newer state.
type cartState struct {
	mu         sync.Mutex
	snapshot   response.CartSnapshot
	issuedSeq  uint64
	appliedSeq uint64
}

func (st *cartState) issue() uint64 {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.issuedSeq++
	return st.issuedSeq
}

// apply replaces the snapshot when seq is newer than every previously
// applied response. It reports whether the snapshot was replaced and
// returns the current snapshot either way.
func (st *cartState) apply(seq uint64, snapshot response.CartSnapshot) (bool, response.CartSnapshot) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if seq <= st.appliedSeq {
		return false, st.snapshot
	}
	st.appliedSeq = seq
	st.snapshot = snapshot
	return true, st.snapshot
}

func (st *cartState) current() response.CartSnapshot {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.snapshot
}

type CartService struct {
	client UpstreamClient

	mu     sync.Mutex
	states map[string]*cartState
}

func NewCartService(client UpstreamClient) *CartService {
	return &CartService{client: client, states: map[string]*cartState{}}
}

func (svc *CartService) state(sessionID string) *cartState {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	st, ok := svc.states[sessionID]
	if !ok {
		st = &cartState{}
		svc.states[sessionID] = st
	}
	return st
}

// Snapshot returns the last known good snapshot without touching the
// upstream.
func (svc *CartService) Snapshot(sessionID string) response.CartSnapshot {
	return svc.state(sessionID).current()
}

func (svc *CartService) AddLine(
	c context.Context,
	sessionID string,
	param request.AddLine,
) (response.CartSnapshot, error) {
	c, span := otel.Tracer.Start(c, "CartService AddLine")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService AddLine").
		Str(log.KeySessionID, sessionID).
		Str(log.KeyVariantID, param.VariantID).
		Int64(log.KeyQuantity, param.Quantity).
		Logger()

	if param.Quantity < 1 {
		err := fmt.Errorf(
			"quantity=%d must be at least 1 with error=%w",
			param.Quantity,
			inErrors.ErrInvalidQuantity,
		)
		inOtel.RecordError(err, span)
		logger.Info().Err(err).Msg(err.Error())
		return svc.Snapshot(sessionID), err
	}

	logger = logger.With().Str(log.KeyProcess, "adding line").Logger()
	logger.Info().Msg("adding line")
	c = logger.WithContext(c)
	return svc.mutate(c, sessionID, func(c context.Context) (response.CartSnapshot, error) {
		return svc.client.AddLine(c, sessionID, param)
	})
}

func (svc *CartService) ChangeQuantity(
	c context.Context,
	sessionID string,
	lineKey string,
	quantity int64,
) (response.CartSnapshot, error) {
	c, span := otel.Tracer.Start(c, "CartService ChangeQuantity")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService ChangeQuantity").
		Str(log.KeySessionID, sessionID).
		Str(log.KeyLineKey, lineKey).
		Int64(log.KeyQuantity, quantity).
		Logger()

	if quantity < 0 {
		err := fmt.Errorf(
			"quantity=%d must not be negative with error=%w",
			quantity,
			inErrors.ErrInvalidQuantity,
		)
		inOtel.RecordError(err, span)
		logger.Info().Err(err).Msg(err.Error())
		return svc.Snapshot(sessionID), err
	}

	logger = logger.With().Str(log.KeyProcess, "changing quantity").Logger()
	logger.Info().Msg("changing quantity")
	c = logger.WithContext(c)
	return svc.mutate(c, sessionID, func(c context.Context) (response.CartSnapshot, error) {
		return svc.client.ChangeLine(c, sessionID, lineKey, quantity)
	})
}

func (svc *CartService) RemoveLine(
	c context.Context,
	sessionID string,
	lineKey string,
) (response.CartSnapshot, error) {
	return svc.ChangeQuantity(c, sessionID, lineKey, 0)
}

func (svc *CartService) BulkUpdate(
	c context.Context,
	sessionID string,
	param request.BulkUpdate,
) (response.CartSnapshot, error) {
	c, span := otel.Tracer.Start(c, "CartService BulkUpdate")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService BulkUpdate").
		Str(log.KeySessionID, sessionID).
		Int("updates", len(param.Updates)).
		Logger()

	for lineKey, quantity := range param.Updates {
		if quantity < 0 {
			err := fmt.Errorf(
				"lineKey=%s quantity=%d must not be negative with error=%w",
				lineKey,
				quantity,
				inErrors.ErrInvalidQuantity,
			)
			inOtel.RecordError(err, span)
			logger.Info().Err(err).Msg(err.Error())
			return svc.Snapshot(sessionID), err
		}
	}

	logger = logger.With().Str(log.KeyProcess, "bulk updating").Logger()
	logger.Info().Msg("bulk updating")
	c = logger.WithContext(c)
	return svc.mutate(c, sessionID, func(c context.Context) (response.CartSnapshot, error) {
		return svc.client.BulkUpdate(c, sessionID, param.Updates)
	})
}

// Refresh unconditionally fetches the upstream cart. It participates in
// the same ordering discipline as mutations so a slow fetch cannot
// clobber the result of a newer mutation.
func (svc *CartService) Refresh(
	c context.Context,
	sessionID string,
) (response.CartSnapshot, error) {
	c, span := otel.Tracer.Start(c, "CartService Refresh")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService Refresh").
		Str(log.KeySessionID, sessionID).
		Str(log.KeyProcess, "refreshing cart").
		Logger()

	logger.Info().Msg("refreshing cart")
	c = logger.WithContext(c)
	return svc.mutate(c, sessionID, func(c context.Context) (response.CartSnapshot, error) {
		return svc.client.FetchCart(c, sessionID)
	})
}

// mutate runs one upstream call under the last-writer-wins ordering
// policy. The sequence number is assigned at send time; no lock is
// held during the network call, so overlapping requests from the same
// session proceed concurrently and are reconciled on completion.
func (svc *CartService) mutate(
	c context.Context,
	sessionID string,
	call func(context.Context) (response.CartSnapshot, error),
) (response.CartSnapshot, error) {
	c, span := otel.Tracer.Start(c, "CartService mutate")
	defer span.End()

	st := svc.state(sessionID)
	seq := st.issue()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService mutate").
		Uint64(log.KeySequence, seq).
		Logger()

	c = logger.WithContext(c)
	snapshot, err := call(c)
	if err != nil {
		err = fmt.Errorf("mutation seq=%d failed with error=%w", seq, err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return st.current(), err
	}

	applied, latest := st.apply(seq, snapshot)
	if !applied {
		span.AddEvent(inErrors.ErrStaleResponse.Error())
		logger.Trace().
			Err(inErrors.ErrStaleResponse).
			Msgf("discarding stale response seq=%d", seq)
		return latest, nil
	}
	logger.Info().
		Int64(log.KeyItemCount, latest.ItemCount).
		Msgf("applied snapshot seq=%d", seq)
	return latest, nil
}
