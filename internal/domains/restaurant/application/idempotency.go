package application

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/application/types"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/ports"
	apierrors "github.com/Apurer/go-gin-restaurant-api/internal/shared/errors"
)

type normalizedPlaceOrder struct {
	CustomerID    int64            `json:"customer_id"`
	PaymentMethod string           `json:"payment_method"`
	Type          string           `json:"type"`
	Items         []normalizedItem `json:"items"`
}

type normalizedItem struct {
	FoodID   int64   `json:"food_id"`
	AddonIDs []int64 `json:"addon_ids"`
}

// FingerprintPlaceOrder builds a deterministic hash of the order request, excluding the idempotency key.
// Item and addon order do not change the fingerprint.
func FingerprintPlaceOrder(input types.PlaceOrderInput) (string, error) {
	normalized := normalizedPlaceOrder{
		CustomerID:    input.CustomerID,
		PaymentMethod: input.PaymentMethod,
		Type:          input.Type,
		Items:         make([]normalizedItem, 0, len(input.Items)),
	}
	for _, item := range input.Items {
		addons := append([]int64{}, item.AddonIDs...)
		sort.Slice(addons, func(i, j int) bool { return addons[i] < addons[j] })
		normalized.Items = append(normalized.Items, normalizedItem{FoodID: item.FoodID, AddonIDs: addons})
	}
	sort.SliceStable(normalized.Items, func(i, j int) bool {
		return normalized.Items[i].FoodID < normalized.Items[j].FoodID
	})
	payload, err := json.Marshal(normalized)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}

var errIdempotencyMismatch = apierrors.ErrImproperEntryData.
	WithMessage("The idempotency key was already used for a different order")

// replayOrder returns the order previously placed under the key, if any.
func (s *Service) replayOrder(ctx context.Context, key, hash string) (*types.OrderView, error) {
	record, err := s.idempotency.Get(ctx, key)
	if err != nil || record == nil {
		return nil, err
	}
	if record.RequestHash != hash {
		return nil, errIdempotencyMismatch.WithData("order_id", record.OrderID)
	}
	view, found, err := s.FindOrder(ctx, record.OrderID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apierrors.ErrEntityNotFound.
			WithMessagef("Order %d placed with this idempotency key no longer exists", record.OrderID).
			WithData("order_id", record.OrderID)
	}
	return view, nil
}

// placeIdempotent places the order once per idempotency key. A concurrent request that
// stored the key first wins; its order is returned instead.
func (s *Service) placeIdempotent(ctx context.Context, input types.PlaceOrderInput) (*types.OrderView, error) {
	key := strings.TrimSpace(input.IdempotencyKey)
	hash, err := FingerprintPlaceOrder(input)
	if err != nil {
		return nil, err
	}
	if view, err := s.replayOrder(ctx, key, hash); err != nil || view != nil {
		return view, err
	}
	view, err := s.placeOrder(ctx, input)
	if err != nil {
		return nil, err
	}
	_, err = s.idempotency.Save(ctx, ports.IdempotencyRecord{Key: key, RequestHash: hash, OrderID: view.ID})
	switch {
	case err == nil:
		return view, nil
	case errors.Is(err, ports.ErrIdempotencyConflict):
		s.logger.LogAttrs(ctx, slog.LevelWarn, "idempotency key raced, returning the first order",
			slog.Int64("order.id", view.ID),
		)
		replayed, replayErr := s.replayOrder(ctx, key, hash)
		if replayErr != nil || replayed == nil {
			return nil, errors.Join(err, replayErr)
		}
		return replayed, nil
	default:
		s.logger.LogAttrs(ctx, slog.LevelWarn, "idempotency key not stored",
			slog.Int64("order.id", view.ID),
			slog.String("error", err.Error()),
		)
		return view, nil
	}
}
