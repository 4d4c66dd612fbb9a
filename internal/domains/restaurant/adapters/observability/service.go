package observability

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/application/types"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/domain"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/ports"
	apperrors "github.com/Apurer/go-gin-restaurant-api/internal/shared/errors"
)

const tracerName = "github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/adapters/observability/service"

var _ ports.Service = (*Service)(nil)

// Service decorates the restaurant service with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core restaurant service.
func New(inner ports.Service, opts ...Option) *Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func foodID(id int64) attribute.KeyValue     { return attribute.Int64("food.id", id) }
func addonID(id int64) attribute.KeyValue    { return attribute.Int64("addon.id", id) }
func customerID(id int64) attribute.KeyValue { return attribute.Int64("customer.id", id) }
func orderID(id int64) attribute.KeyValue    { return attribute.Int64("order.id", id) }

func (s *Service) CreateFood(ctx context.Context, input types.CreateFoodInput) (food *domain.Food, ok bool, err error) {
	err = s.observe(ctx, "CreateFood", func(ctx context.Context, span trace.Span) error {
		food, ok, err = s.inner.CreateFood(ctx, input)
		if food != nil {
			span.SetAttributes(foodID(food.ID))
		}
		span.SetAttributes(attribute.Bool("food.created", ok))
		return err
	}, attribute.String("food.category", input.Category))
	return food, ok, err
}

func (s *Service) CreateAddon(ctx context.Context, input types.CreateAddonInput) (addon *domain.Addon, err error) {
	err = s.observe(ctx, "CreateAddon", func(ctx context.Context, span trace.Span) error {
		addon, err = s.inner.CreateAddon(ctx, input)
		if addon != nil {
			span.SetAttributes(addonID(addon.ID))
		}
		return err
	}, attribute.String("addon.type", input.Type))
	return addon, err
}

func (s *Service) CreateCustomer(ctx context.Context, input types.CreateCustomerInput) (customer *domain.Customer, err error) {
	err = s.observe(ctx, "CreateCustomer", func(ctx context.Context, span trace.Span) error {
		customer, err = s.inner.CreateCustomer(ctx, input)
		if customer != nil {
			span.SetAttributes(customerID(customer.ID))
		}
		return err
	})
	return customer, err
}

func (s *Service) CreateOrder(ctx context.Context, input types.PlaceOrderInput) (view *types.OrderView, err error) {
	err = s.observe(ctx, "CreateOrder", func(ctx context.Context, span trace.Span) error {
		view, err = s.inner.CreateOrder(ctx, input)
		if view != nil {
			span.SetAttributes(orderID(view.ID), attribute.String("order.total", view.Total.StringFixed(2)))
			s.metrics.recordPlaced(ctx, input.Type)
		}
		return err
	}, customerID(input.CustomerID), attribute.Int("order.items", len(input.Items)))
	return view, err
}

func (s *Service) FindFood(ctx context.Context, id int64) (food *domain.Food, ok bool, err error) {
	err = s.observe(ctx, "FindFood", func(ctx context.Context, span trace.Span) error {
		food, ok, err = s.inner.FindFood(ctx, id)
		span.SetAttributes(attribute.Bool("found", ok))
		return err
	}, foodID(id))
	return food, ok, err
}

func (s *Service) FindAddon(ctx context.Context, id int64) (addon *domain.Addon, ok bool, err error) {
	err = s.observe(ctx, "FindAddon", func(ctx context.Context, span trace.Span) error {
		addon, ok, err = s.inner.FindAddon(ctx, id)
		span.SetAttributes(attribute.Bool("found", ok))
		return err
	}, addonID(id))
	return addon, ok, err
}

func (s *Service) FindCustomer(ctx context.Context, id int64) (customer *domain.Customer, ok bool, err error) {
	err = s.observe(ctx, "FindCustomer", func(ctx context.Context, span trace.Span) error {
		customer, ok, err = s.inner.FindCustomer(ctx, id)
		span.SetAttributes(attribute.Bool("found", ok))
		return err
	}, customerID(id))
	return customer, ok, err
}

func (s *Service) FindOrder(ctx context.Context, id int64) (view *types.OrderView, ok bool, err error) {
	err = s.observe(ctx, "FindOrder", func(ctx context.Context, span trace.Span) error {
		view, ok, err = s.inner.FindOrder(ctx, id)
		span.SetAttributes(attribute.Bool("found", ok))
		return err
	}, orderID(id))
	return view, ok, err
}

func (s *Service) UpdateFoodName(ctx context.Context, id int64, name string) (bool, error) {
	return s.updateField(ctx, "UpdateFoodName", "name", foodID(id), func(ctx context.Context) (bool, error) {
		return s.inner.UpdateFoodName(ctx, id, name)
	})
}

func (s *Service) UpdateFoodPrice(ctx context.Context, id int64, price decimal.Decimal) (bool, error) {
	return s.updateField(ctx, "UpdateFoodPrice", "price", foodID(id), func(ctx context.Context) (bool, error) {
		return s.inner.UpdateFoodPrice(ctx, id, price)
	})
}

func (s *Service) UpdateFoodCategory(ctx context.Context, id int64, category string) (bool, error) {
	return s.updateField(ctx, "UpdateFoodCategory", "category", foodID(id), func(ctx context.Context) (bool, error) {
		return s.inner.UpdateFoodCategory(ctx, id, category)
	})
}

func (s *Service) UpdateFoodSize(ctx context.Context, id int64, size string) (bool, error) {
	return s.updateField(ctx, "UpdateFoodSize", "size", foodID(id), func(ctx context.Context) (bool, error) {
		return s.inner.UpdateFoodSize(ctx, id, size)
	})
}

func (s *Service) UpdateFood(ctx context.Context, id int64, patch domain.FoodPatch) (food *domain.Food, results types.FieldResults, err error) {
	err = s.observe(ctx, "UpdateFood", func(ctx context.Context, span trace.Span) error {
		food, results, err = s.inner.UpdateFood(ctx, id, patch)
		s.recordResults(ctx, span, "food", results)
		return err
	}, foodID(id))
	return food, results, err
}

func (s *Service) UpdateAddonName(ctx context.Context, id int64, name string) (bool, error) {
	return s.updateField(ctx, "UpdateAddonName", "name", addonID(id), func(ctx context.Context) (bool, error) {
		return s.inner.UpdateAddonName(ctx, id, name)
	})
}

func (s *Service) UpdateAddonPrice(ctx context.Context, id int64, price decimal.Decimal) (bool, error) {
	return s.updateField(ctx, "UpdateAddonPrice", "price", addonID(id), func(ctx context.Context) (bool, error) {
		return s.inner.UpdateAddonPrice(ctx, id, price)
	})
}

func (s *Service) UpdateAddonType(ctx context.Context, id int64, addonType string) (bool, error) {
	return s.updateField(ctx, "UpdateAddonType", "type", addonID(id), func(ctx context.Context) (bool, error) {
		return s.inner.UpdateAddonType(ctx, id, addonType)
	})
}

func (s *Service) UpdateAddonSize(ctx context.Context, id int64, size string) (bool, error) {
	return s.updateField(ctx, "UpdateAddonSize", "size", addonID(id), func(ctx context.Context) (bool, error) {
		return s.inner.UpdateAddonSize(ctx, id, size)
	})
}

func (s *Service) UpdateAddon(ctx context.Context, id int64, patch domain.AddonPatch) (addon *domain.Addon, results types.FieldResults, err error) {
	err = s.observe(ctx, "UpdateAddon", func(ctx context.Context, span trace.Span) error {
		addon, results, err = s.inner.UpdateAddon(ctx, id, patch)
		s.recordResults(ctx, span, "addon", results)
		return err
	}, addonID(id))
	return addon, results, err
}

func (s *Service) UpdateCustomerName(ctx context.Context, id int64, name string) (bool, error) {
	return s.updateField(ctx, "UpdateCustomerName", "name", customerID(id), func(ctx context.Context) (bool, error) {
		return s.inner.UpdateCustomerName(ctx, id, name)
	})
}

func (s *Service) UpdateCustomerPhone(ctx context.Context, id int64, phone string) (bool, error) {
	return s.updateField(ctx, "UpdateCustomerPhone", "phone", customerID(id), func(ctx context.Context) (bool, error) {
		return s.inner.UpdateCustomerPhone(ctx, id, phone)
	})
}

func (s *Service) UpdateCustomerAddress(ctx context.Context, id int64, address domain.AddressPatch) (bool, error) {
	return s.updateField(ctx, "UpdateCustomerAddress", "address", customerID(id), func(ctx context.Context) (bool, error) {
		return s.inner.UpdateCustomerAddress(ctx, id, address)
	})
}

func (s *Service) UpdateCustomerStreet(ctx context.Context, id int64, street string) (bool, error) {
	return s.updateField(ctx, "UpdateCustomerStreet", "street", customerID(id), func(ctx context.Context) (bool, error) {
		return s.inner.UpdateCustomerStreet(ctx, id, street)
	})
}

func (s *Service) UpdateCustomerCity(ctx context.Context, id int64, city string) (bool, error) {
	return s.updateField(ctx, "UpdateCustomerCity", "city", customerID(id), func(ctx context.Context) (bool, error) {
		return s.inner.UpdateCustomerCity(ctx, id, city)
	})
}

func (s *Service) UpdateCustomerProvince(ctx context.Context, id int64, province string) (bool, error) {
	return s.updateField(ctx, "UpdateCustomerProvince", "province", customerID(id), func(ctx context.Context) (bool, error) {
		return s.inner.UpdateCustomerProvince(ctx, id, province)
	})
}

func (s *Service) UpdateCustomerPostalCode(ctx context.Context, id int64, postalCode string) (bool, error) {
	return s.updateField(ctx, "UpdateCustomerPostalCode", "postal_code", customerID(id), func(ctx context.Context) (bool, error) {
		return s.inner.UpdateCustomerPostalCode(ctx, id, postalCode)
	})
}

func (s *Service) UpdateCustomer(ctx context.Context, id int64, patch domain.CustomerPatch) (customer *domain.Customer, results types.FieldResults, err error) {
	err = s.observe(ctx, "UpdateCustomer", func(ctx context.Context, span trace.Span) error {
		customer, results, err = s.inner.UpdateCustomer(ctx, id, patch)
		s.recordResults(ctx, span, "customer", results)
		return err
	}, customerID(id))
	return customer, results, err
}

func (s *Service) UpdateOrderPaymentMethod(ctx context.Context, id int64, method string) (bool, error) {
	return s.updateField(ctx, "UpdateOrderPaymentMethod", "payment_method", orderID(id), func(ctx context.Context) (bool, error) {
		return s.inner.UpdateOrderPaymentMethod(ctx, id, method)
	})
}

func (s *Service) UpdateOrderType(ctx context.Context, id int64, orderType string) (bool, error) {
	return s.updateField(ctx, "UpdateOrderType", "type", orderID(id), func(ctx context.Context) (bool, error) {
		return s.inner.UpdateOrderType(ctx, id, orderType)
	})
}

func (s *Service) UpdateOrderCustomer(ctx context.Context, id, newCustomerID int64) (bool, error) {
	return s.updateField(ctx, "UpdateOrderCustomer", "customer_id", orderID(id), func(ctx context.Context) (bool, error) {
		return s.inner.UpdateOrderCustomer(ctx, id, newCustomerID)
	})
}

func (s *Service) UpdateOrderItems(ctx context.Context, id int64, items []domain.ItemRequest) (bool, error) {
	return s.updateField(ctx, "UpdateOrderItems", "items", orderID(id), func(ctx context.Context) (bool, error) {
		return s.inner.UpdateOrderItems(ctx, id, items)
	})
}

func (s *Service) UpdateOrder(ctx context.Context, id int64, changes types.OrderChanges) (view *types.OrderView, results types.FieldResults, err error) {
	err = s.observe(ctx, "UpdateOrder", func(ctx context.Context, span trace.Span) error {
		view, results, err = s.inner.UpdateOrder(ctx, id, changes)
		s.recordResults(ctx, span, "order", results)
		return err
	}, orderID(id))
	return view, results, err
}

func (s *Service) DeleteFood(ctx context.Context, id int64) (ok bool, err error) {
	err = s.observe(ctx, "DeleteFood", func(ctx context.Context, span trace.Span) error {
		ok, err = s.inner.DeleteFood(ctx, id)
		span.SetAttributes(attribute.Bool("deleted", ok))
		return err
	}, foodID(id))
	return ok, err
}

func (s *Service) DeleteAddon(ctx context.Context, id int64) (ok bool, err error) {
	err = s.observe(ctx, "DeleteAddon", func(ctx context.Context, span trace.Span) error {
		ok, err = s.inner.DeleteAddon(ctx, id)
		span.SetAttributes(attribute.Bool("deleted", ok))
		return err
	}, addonID(id))
	return ok, err
}

func (s *Service) DeleteCustomer(ctx context.Context, id int64, cascade bool) (ok bool, err error) {
	err = s.observe(ctx, "DeleteCustomer", func(ctx context.Context, span trace.Span) error {
		ok, err = s.inner.DeleteCustomer(ctx, id, cascade)
		span.SetAttributes(attribute.Bool("deleted", ok))
		if ok {
			s.metrics.recordCustomerDeleted(ctx, cascade)
		}
		return err
	}, customerID(id), attribute.Bool("cascade", cascade))
	return ok, err
}

func (s *Service) DeleteOrder(ctx context.Context, id int64) error {
	return s.observe(ctx, "DeleteOrder", func(ctx context.Context, _ trace.Span) error {
		if err := s.inner.DeleteOrder(ctx, id); err != nil {
			return err
		}
		s.metrics.recordOrderDeleted(ctx)
		return nil
	}, orderID(id))
}

func (s *Service) DeleteOrderItem(ctx context.Context, order, item int64) (total decimal.Decimal, ok bool, err error) {
	err = s.observe(ctx, "DeleteOrderItem", func(ctx context.Context, span trace.Span) error {
		total, ok, err = s.inner.DeleteOrderItem(ctx, order, item)
		span.SetAttributes(attribute.Bool("deleted", ok), attribute.String("order.total", total.StringFixed(2)))
		return err
	}, orderID(order), attribute.Int64("order_item.id", item))
	return total, ok, err
}

// observe runs fn inside a span named after the operation and logs its outcome.
func (s *Service) observe(ctx context.Context, op string, fn func(context.Context, trace.Span) error, attrs ...attribute.KeyValue) error {
	ctx, span := s.tracer.Start(ctx, "RestaurantService."+op, trace.WithAttributes(attrs...))
	defer span.End()

	started := time.Now()
	err := fn(ctx, span)
	logAttrs := append(toSlog(attrs), slog.String("operation", op), slog.Duration("duration", time.Since(started)))
	if err != nil {
		return s.handleError(ctx, span, err, "restaurant operation failed", logAttrs...)
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "restaurant operation completed", logAttrs...)
	return nil
}

func (s *Service) updateField(ctx context.Context, op, field string, id attribute.KeyValue, fn func(context.Context) (bool, error)) (ok bool, err error) {
	err = s.observe(ctx, op, func(ctx context.Context, span trace.Span) error {
		ok, err = fn(ctx)
		span.SetAttributes(attribute.Bool("updated", ok))
		if !ok {
			s.metrics.recordUpdateFailure(ctx, field)
		}
		return err
	}, id, attribute.String("field", field))
	return ok, err
}

func (s *Service) recordResults(ctx context.Context, span trace.Span, entity string, results types.FieldResults) {
	failed := 0
	for field, ok := range results {
		if !ok {
			failed++
			s.metrics.recordUpdateFailure(ctx, entity+"."+field)
		}
	}
	span.SetAttributes(attribute.Int("update.fields", len(results)), attribute.Int("update.failed", failed))
}

// handleError records err on the span. Failures the caller caused are logged at warn.
func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	level := slog.LevelError
	if f, ok := apperrors.AsFailure(err); ok && f.Status < http.StatusInternalServerError {
		level = slog.LevelWarn
		attrs = append(attrs, slog.Int("code", f.Code))
	}
	attrs = append(attrs, slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, level, msg, attrs...)
	return err
}

func toSlog(attrs []attribute.KeyValue) []slog.Attr {
	out := make([]slog.Attr, 0, len(attrs)+2)
	for _, kv := range attrs {
		out = append(out, slog.Any(string(kv.Key), kv.Value.AsInterface()))
	}
	return out
}

type serviceMetrics struct {
	ordersPlaced     metric.Int64Counter
	ordersDeleted    metric.Int64Counter
	customersDeleted metric.Int64Counter
	updateFailures   metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersPlaced, _ := m.Int64Counter("restaurant.service.orders_placed", metric.WithDescription("Number of orders placed"))
	ordersDeleted, _ := m.Int64Counter("restaurant.service.orders_deleted", metric.WithDescription("Number of orders deleted"))
	customersDeleted, _ := m.Int64Counter("restaurant.service.customers_deleted", metric.WithDescription("Number of customers deleted"))
	updateFailures, _ := m.Int64Counter("restaurant.service.update_failures", metric.WithDescription("Number of field updates that did not apply"))
	return serviceMetrics{
		ordersPlaced:     ordersPlaced,
		ordersDeleted:    ordersDeleted,
		customersDeleted: customersDeleted,
		updateFailures:   updateFailures,
	}
}

func (m serviceMetrics) recordPlaced(ctx context.Context, orderType string) {
	if m.ordersPlaced != nil {
		m.ordersPlaced.Add(ctx, 1, metric.WithAttributes(attribute.String("order.type", orderType)))
	}
}

func (m serviceMetrics) recordOrderDeleted(ctx context.Context) {
	if m.ordersDeleted != nil {
		m.ordersDeleted.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordCustomerDeleted(ctx context.Context, cascade bool) {
	if m.customersDeleted != nil {
		m.customersDeleted.Add(ctx, 1, metric.WithAttributes(attribute.Bool("cascade", cascade)))
	}
}

func (m serviceMetrics) recordUpdateFailure(ctx context.Context, field string) {
	if m.updateFailures != nil {
		m.updateFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("field", field)))
	}
}
