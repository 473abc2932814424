package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/calyptra/storefront/cart/pkg/request"
	"github.com/calyptra/storefront/cart/pkg/response"
	inErrors "github.com/calyptra/storefront/internal/common/errors"
)

type fakeUpstream struct {
	fetchCart  func(c context.Context, sessionID string) (response.CartSnapshot, error)
	addLine    func(c context.Context, sessionID string, param request.AddLine) (response.CartSnapshot, error)
	changeLine func(c context.Context, sessionID string, lineKey string, quantity int64) (response.CartSnapshot, error)
	bulkUpdate func(c context.Context, sessionID string, updates map[string]int64) (response.CartSnapshot, error)
}

func (f *fakeUpstream) FetchCart(
	c context.Context,
	sessionID string,
) (response.CartSnapshot, error) {
	return f.fetchCart(c, sessionID)
}

func (f *fakeUpstream) AddLine(
	c context.Context,
	sessionID string,
	param request.AddLine,
) (response.CartSnapshot, error) {
	return f.addLine(c, sessionID, param)
}

func (f *fakeUpstream) ChangeLine(
	c context.Context,
	sessionID string,
	lineKey string,
	quantity int64,
) (response.CartSnapshot, error) {
	return f.changeLine(c, sessionID, lineKey, quantity)
}

func (f *fakeUpstream) BulkUpdate(
	c context.Context,
	sessionID string,
	updates map[string]int64,
) (response.CartSnapshot, error) {
	return f.bulkUpdate(c, sessionID, updates)
}

func snapshotWithCount(itemCount int64) response.CartSnapshot {
	lines := []response.CartLine{}
	if itemCount > 0 {
		lines = append(lines, response.CartLine{
			Key:       "line-1",
			VariantID: "variant-1",
			Quantity:  itemCount,
			UnitPrice: 1000,
			LineTotal: 1000 * itemCount,
		})
	}
	return response.CartSnapshot{
		Lines:             lines,
		ItemCount:         itemCount,
		Subtotal:          1000 * itemCount,
		CurrencyCode:      "USD",
		FormattedSubtotal: fmt.Sprintf("%d.00", 10*itemCount),
	}
}

func TestCartSlowResponseDoesNotRevertNewerSnapshot(t *testing.T) {
	c := context.Background()
	slowEntered := make(chan struct{})
	slowRelease := make(chan struct{})
	upstream := &fakeUpstream{
		addLine: func(context.Context, string, request.AddLine) (response.CartSnapshot, error) {
			close(slowEntered)
			<-slowRelease
			return snapshotWithCount(1), nil
		},
		changeLine: func(context.Context, string, string, int64) (response.CartSnapshot, error) {
			return snapshotWithCount(5), nil
		},
	}
	svc := NewCartService(upstream)

	slowDone := make(chan response.CartSnapshot, 1)
	go func() {
		snapshot, err := svc.AddLine(c, "session-1", request.AddLine{VariantID: "variant-1", Quantity: 1})
		assert.NoError(t, err)
		slowDone <- snapshot
	}()

	select {
	case <-slowEntered:
	case <-time.After(5 * time.Second):
		t.Fatal("slow request never reached the upstream")
	}

	fast, err := svc.ChangeQuantity(c, "session-1", "line-1", 5)
	assert.NoError(t, err)
	assert.EqualValues(t, 5, fast.ItemCount)

	close(slowRelease)
	select {
	case fromSlow := <-slowDone:
		assert.EqualValues(t, 5, fromSlow.ItemCount)
	case <-time.After(5 * time.Second):
		t.Fatal("slow request never completed")
	}
	assert.EqualValues(t, 5, svc.Snapshot("session-1").ItemCount)
}

func TestCartSlowRefreshDoesNotRevertNewerSnapshot(t *testing.T) {
	c := context.Background()
	fetchEntered := make(chan struct{})
	fetchRelease := make(chan struct{})
	upstream := &fakeUpstream{
		fetchCart: func(context.Context, string) (response.CartSnapshot, error) {
			close(fetchEntered)
			<-fetchRelease
			return snapshotWithCount(0), nil
		},
		addLine: func(context.Context, string, request.AddLine) (response.CartSnapshot, error) {
			return snapshotWithCount(2), nil
		},
	}
	svc := NewCartService(upstream)

	refreshDone := make(chan response.CartSnapshot, 1)
	go func() {
		snapshot, err := svc.Refresh(c, "session-1")
		assert.NoError(t, err)
		refreshDone <- snapshot
	}()

	select {
	case <-fetchEntered:
	case <-time.After(5 * time.Second):
		t.Fatal("refresh never reached the upstream")
	}

	added, err := svc.AddLine(c, "session-1", request.AddLine{VariantID: "variant-1", Quantity: 2})
	assert.NoError(t, err)
	assert.EqualValues(t, 2, added.ItemCount)

	close(fetchRelease)
	select {
	case fromRefresh := <-refreshDone:
		assert.EqualValues(t, 2, fromRefresh.ItemCount)
	case <-time.After(5 * time.Second):
		t.Fatal("refresh never completed")
	}
}

func TestCartFailedMutationKeepsSnapshot(t *testing.T) {
	c := context.Background()
	upstream := &fakeUpstream{
		addLine: func(context.Context, string, request.AddLine) (response.CartSnapshot, error) {
			return snapshotWithCount(3), nil
		},
		changeLine: func(context.Context, string, string, int64) (response.CartSnapshot, error) {
			return response.CartSnapshot{}, fmt.Errorf(
				"upstream rejected change with error=%w",
				inErrors.ErrCartMutationFailed,
			)
		},
	}
	svc := NewCartService(upstream)

	before, err := svc.AddLine(c, "session-1", request.AddLine{VariantID: "variant-1", Quantity: 3})
	assert.NoError(t, err)

	after, err := svc.ChangeQuantity(c, "session-1", "line-1", 7)
	assert.ErrorIs(t, err, inErrors.ErrCartMutationFailed)
	assert.Equal(t, before, after)
	assert.Equal(t, before, svc.Snapshot("session-1"))
}

func TestCartRejectsInvalidQuantityWithoutUpstreamCall(t *testing.T) {
	c := context.Background()
	calls := 0
	upstream := &fakeUpstream{
		addLine: func(context.Context, string, request.AddLine) (response.CartSnapshot, error) {
			calls++
			return snapshotWithCount(1), nil
		},
		changeLine: func(context.Context, string, string, int64) (response.CartSnapshot, error) {
			calls++
			return snapshotWithCount(1), nil
		},
		bulkUpdate: func(context.Context, string, map[string]int64) (response.CartSnapshot, error) {
			calls++
			return snapshotWithCount(1), nil
		},
	}
	svc := NewCartService(upstream)

	_, err := svc.AddLine(c, "session-1", request.AddLine{VariantID: "variant-1", Quantity: 0})
	assert.ErrorIs(t, err, inErrors.ErrInvalidQuantity)

	_, err = svc.ChangeQuantity(c, "session-1", "line-1", -1)
	assert.ErrorIs(t, err, inErrors.ErrInvalidQuantity)

	_, err = svc.BulkUpdate(c, "session-1", request.BulkUpdate{
		Updates: map[string]int64{"line-1": 2, "line-2": -4},
	})
	assert.ErrorIs(t, err, inErrors.ErrInvalidQuantity)

	assert.Equal(t, 0, calls)
}

func TestCartRemoveLastLineYieldsEmptySnapshot(t *testing.T) {
	c := context.Background()
	upstream := &fakeUpstream{
		addLine: func(context.Context, string, request.AddLine) (response.CartSnapshot, error) {
			return snapshotWithCount(1), nil
		},
		changeLine: func(_ context.Context, _ string, lineKey string, quantity int64) (response.CartSnapshot, error) {
			assert.Equal(t, "line-1", lineKey)
			assert.EqualValues(t, 0, quantity)
			return snapshotWithCount(0), nil
		},
	}
	svc := NewCartService(upstream)

	_, err := svc.AddLine(c, "session-1", request.AddLine{VariantID: "variant-1", Quantity: 1})
	assert.NoError(t, err)

	snapshot, err := svc.RemoveLine(c, "session-1", "line-1")
	assert.NoError(t, err)
	assert.EqualValues(t, 0, snapshot.ItemCount)
	assert.Empty(t, snapshot.Lines)
}

func TestCartSessionsAreIsolated(t *testing.T) {
	c := context.Background()
	upstream := &fakeUpstream{
		addLine: func(_ context.Context, sessionID string, param request.AddLine) (response.CartSnapshot, error) {
			return snapshotWithCount(param.Quantity), nil
		},
	}
	svc := NewCartService(upstream)

	_, err := svc.AddLine(c, "session-1", request.AddLine{VariantID: "variant-1", Quantity: 2})
	assert.NoError(t, err)
	_, err = svc.AddLine(c, "session-2", request.AddLine{VariantID: "variant-1", Quantity: 9})
	assert.NoError(t, err)

	assert.EqualValues(t, 2, svc.Snapshot("session-1").ItemCount)
	assert.EqualValues(t, 9, svc.Snapshot("session-2").ItemCount)
}
