package checkout

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sneaker-storefront/cart"
	"sneaker-storefront/catalog"
	"sneaker-storefront/database"
	apperrors "sneaker-storefront/errors"
	"sneaker-storefront/models"
	awspkg "sneaker-storefront/pkg/aws"
)

// SavedFormKey holds the contact details a customer asked to remember.
const SavedFormKey = "checkoutInfo"

const orderPlacedEvent = "order.placed"

// MetricsRecorder is the subset of the CloudWatch client checkout uses.
type MetricsRecorder interface {
	RecordCount(ctx context.Context, metricName string, dimensions map[string]string) error
	RecordValue(ctx context.Context, metricName string, value float64, dimensions map[string]string) error
}

// Service turns a session's cart into an order.
type Service struct {
	catalog   *catalog.Catalog
	pricing   cart.Pricing
	publisher EventPublisher
	metrics   MetricsRecorder
	log       *zap.Logger

	now    func() time.Time
	number func() int
}

func NewService(cat *catalog.Catalog, pricing cart.Pricing, publisher EventPublisher, metrics MetricsRecorder, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if publisher == nil {
		publisher = LogPublisher{Log: log}
	}
	return &Service{
		catalog:   cat,
		pricing:   pricing,
		publisher: publisher,
		metrics:   metrics,
		log:       log,
		now:       time.Now,
		number:    func() int { return 10000 + rand.IntN(90000) },
	}
}

// ApplyDefaults fills in card payment and courier delivery when unset and
// trims the text fields.
func ApplyDefaults(form *models.CheckoutForm) {
	for _, s := range []*string{&form.FirstName, &form.LastName, &form.Email, &form.Phone, &form.Address, &form.City, &form.PostalCode} {
		*s = strings.TrimSpace(*s)
	}
	if form.PaymentMethod == "" {
		form.PaymentMethod = models.PaymentCard
	}
	if form.DeliveryMethod == "" {
		form.DeliveryMethod = models.DeliveryCourier
	}
}

// PlaceOrder validates form, prices the cart held in store and records the
// order. Nothing changes when validation fails or the cart is empty. The
// order event is published best-effort: a broker failure is logged and the
// order still goes through. The ordered units are then taken out of the cart;
// anything added to it meanwhile stays.
func (s *Service) PlaceOrder(ctx context.Context, store database.Store, form models.CheckoutForm) (models.Order, error) {
	ApplyDefaults(&form)
	if err := models.Validate(form); err != nil {
		return models.Order{}, apperrors.Wrap(apperrors.ErrValidation, err)
	}

	ledger := cart.NewLedger(store, s.catalog, s.pricing, s.log)
	totals, err := ledger.Totals(ctx)
	if err != nil {
		return models.Order{}, err
	}
	if len(totals.Lines) == 0 {
		return models.Order{}, apperrors.ErrEmptyCart
	}

	order := models.Order{
		ID:             uuid.NewString(),
		Number:         fmt.Sprintf("#%05d", s.number()),
		Customer:       strings.TrimSpace(form.FirstName + " " + form.LastName),
		Email:          form.Email,
		PaymentMethod:  form.PaymentMethod,
		DeliveryMethod: form.DeliveryMethod,
		Items:          make([]models.CartLine, 0, len(totals.Lines)),
		Subtotal:       totals.Subtotal,
		Discount:       totals.Discount,
		Shipping:       totals.Shipping,
		Total:          totals.Total,
		PlacedAt:       s.now().UTC(),
	}
	for _, l := range totals.Lines {
		order.Items = append(order.Items, models.CartLine{ProductID: l.Product.ID, Quantity: l.Quantity, Size: l.Size})
	}
	// pickup points deliver for free
	if form.DeliveryMethod == models.DeliveryPickup {
		order.Shipping = 0
		order.Total = max(order.Subtotal-order.Discount, 0)
	}

	log := s.log.With(zap.String("order_id", order.ID), zap.String("number", order.Number))
	event := models.OrderPlacedEvent{
		Event:     orderPlacedEvent,
		OrderID:   order.ID,
		Number:    order.Number,
		Email:     order.Email,
		Items:     order.Items,
		Total:     order.Total,
		Timestamp: order.PlacedAt,
	}
	if err := s.publisher.PublishOrder(ctx, event); err != nil {
		log.Error("Failed to publish order event", zap.Error(err))
	}

	if err := ledger.Settle(ctx, order.Items); err != nil {
		log.Error("Failed to settle cart after checkout", zap.Error(err))
	}
	if form.SaveInfo {
		if err := s.saveForm(ctx, store, form); err != nil {
			log.Warn("Failed to save checkout details", zap.Error(err))
		}
	}
	s.record(ctx, order)

	log.Info("Order placed", zap.Int64("total", order.Total), zap.Int("lines", len(order.Items)))
	return order, nil
}

// SavedForm returns the details remembered by an earlier checkout.
func (s *Service) SavedForm(ctx context.Context, store database.Store) (models.CheckoutForm, bool, error) {
	var form models.CheckoutForm
	ok, err := database.LoadJSON(ctx, store, SavedFormKey, &form, s.log)
	if err != nil {
		return models.CheckoutForm{}, false, apperrors.Wrap(apperrors.ErrStore, err)
	}
	if !ok {
		return models.CheckoutForm{}, false, nil
	}
	return form, true, nil
}

func (s *Service) saveForm(ctx context.Context, store database.Store, form models.CheckoutForm) error {
	// payment choice is asked again every time
	form.PaymentMethod = ""
	return database.SaveJSON(ctx, store, SavedFormKey, form)
}

func (s *Service) record(ctx context.Context, order models.Order) {
	if s.metrics == nil {
		return
	}
	dims := map[string]string{
		"Payment":  string(order.PaymentMethod),
		"Delivery": string(order.DeliveryMethod),
	}
	if err := s.metrics.RecordCount(ctx, awspkg.MetricOrdersCreated, dims); err != nil {
		s.log.Warn("Failed to record metric", zap.String("metric", awspkg.MetricOrdersCreated), zap.Error(err))
	}
	if err := s.metrics.RecordValue(ctx, awspkg.MetricOrderValue, float64(order.Total), dims); err != nil {
		s.log.Warn("Failed to record metric", zap.String("metric", awspkg.MetricOrderValue), zap.Error(err))
	}
}
