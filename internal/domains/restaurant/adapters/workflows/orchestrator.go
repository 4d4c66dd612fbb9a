package workflows

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/application/types"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/ports"
	orderworkflows "github.com/Apurer/go-gin-restaurant-api/internal/platform/temporal/workflows/orders"
	apperrors "github.com/Apurer/go-gin-restaurant-api/internal/shared/errors"
)

var (
	_ ports.OrderWorkflows = (*TemporalOrderWorkflows)(nil)
	_ ports.OrderWorkflows = (*InlineOrderWorkflows)(nil)
)

// TemporalOrderWorkflows places orders through a Temporal workflow.
type TemporalOrderWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalOrderWorkflows wires a Temporal client into the orchestrator.
func NewTemporalOrderWorkflows(c client.Client) *TemporalOrderWorkflows {
	return &TemporalOrderWorkflows{client: c, taskQueue: orderworkflows.OrderPlacementTaskQueue}
}

// PlaceOrder starts the placement workflow and waits for its result. A repeated
// idempotency key returns the result of the first run.
func (o *TemporalOrderWorkflows) PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (*types.OrderView, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal order workflows not configured")
	}
	traceID := workflowTraceID(ctx)
	workflowID := buildOrderPlacementWorkflowID(input, traceID)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		orderworkflows.OrderPlacementWorkflow,
		orderworkflows.OrderPlacementWorkflowInput{Command: input, TraceID: traceID},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) && strings.TrimSpace(input.IdempotencyKey) != "" {
			run = o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
		} else {
			return nil, err
		}
	}
	var view types.OrderView
	if err := run.Get(ctx, &view); err != nil {
		return nil, failureFromWorkflow(err)
	}
	return &view, nil
}

// failureFromWorkflow restores a typed failure carried as an application error type.
func failureFromWorkflow(err error) error {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) || appErr.Type() == "" {
		return err
	}
	f := apperrors.FromKind(apperrors.Kind(appErr.Type()), appErr.Message())
	if f.Kind == apperrors.KindInternal {
		return err
	}
	var data map[string]any
	if appErr.HasDetails() && appErr.Details(&data) == nil {
		for k, v := range data {
			f = f.WithData(k, v)
		}
	}
	return f.Wrap(err)
}

// InlineOrderWorkflows places orders directly, for tests or when Temporal is disabled.
type InlineOrderWorkflows struct {
	creator ports.Creator
}

// NewInlineOrderWorkflows wraps the restaurant service for synchronous execution.
func NewInlineOrderWorkflows(creator ports.Creator) *InlineOrderWorkflows {
	return &InlineOrderWorkflows{creator: creator}
}

func (o *InlineOrderWorkflows) PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (*types.OrderView, error) {
	if o == nil || o.creator == nil {
		return nil, errors.New("inline order workflows not configured")
	}
	return o.creator.CreateOrder(ctx, input)
}

func buildOrderPlacementWorkflowID(input types.PlaceOrderInput, traceID string) string {
	if key := strings.TrimSpace(input.IdempotencyKey); key != "" {
		return fmt.Sprintf("order-placement-idem-%s", hashIdempotencyKey(key))
	}
	// Unkeyed placements are distinct orders even when they share a trace.
	if traceID == "" {
		return fmt.Sprintf("order-placement-%d-%s", input.CustomerID, uuid.NewString())
	}
	return fmt.Sprintf("order-placement-%d-%s-%s", input.CustomerID, traceID, uuid.NewString())
}

func hashIdempotencyKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:8])
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
