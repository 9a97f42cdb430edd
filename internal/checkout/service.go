package checkout

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"velora-be/internal/cart"
	"velora-be/internal/coupon"
	"velora-be/internal/db"
	"velora-be/internal/logger"
	"velora-be/internal/metrics"
	"velora-be/internal/order"
	"velora-be/internal/payment"
	"velora-be/internal/product"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const providerName = "razorpay"

// errAlreadySettled aborts the finalization transaction when the claim
// is lost to a concurrent verification.
var errAlreadySettled = errors.New("payment already settled")

type Settings struct {
	Pricing                PricingConfig
	MaxOnlinePaymentAmount decimal.Decimal
	Currency               string
}

type Service interface {
	// Initiate re-validates the cart against live stock and prices,
	// applies the coupon, creates the gateway order and persists the
	// pending payment record. Fail-fast: nothing is written until every
	// validation passes.
	Initiate(ctx context.Context, params InitiateParams) (*InitiateResult, error)
	// Verify checks the gateway signature and finalizes the order:
	// atomic claim of the payment record, conditional stock decrement,
	// order creation and cart clear, all in one transaction. Duplicate
	// callbacks replay the existing order.
	Verify(ctx context.Context, params VerifyParams) (*VerifyResult, error)
}

type service struct {
	db       *sql.DB
	carts    cart.Repository
	products product.Repository
	coupons  coupon.Repository
	payments payment.Repository
	orders   order.Repository
	gateway  payment.Gateway
	settings Settings
}

func NewService(
	database *sql.DB,
	carts cart.Repository,
	products product.Repository,
	coupons coupon.Repository,
	payments payment.Repository,
	orders order.Repository,
	gateway payment.Gateway,
	settings Settings,
) Service {
	return &service{
		db:       database,
		carts:    carts,
		products: products,
		coupons:  coupons,
		payments: payments,
		orders:   orders,
		gateway:  gateway,
		settings: settings,
	}
}

func (s *service) Initiate(ctx context.Context, params InitiateParams) (*InitiateResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Initiate"),
		zap.String("user_id", params.UserID),
	)

	if params.Shipping.Name == "" || params.Shipping.Email == "" || params.Shipping.Phone == "" {
		return nil, errors.New("shipping name, email and phone are required")
	}

	items, err := s.carts.GetItems(ctx, params.UserID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}

	subtotal, shortErr, err := s.priceCart(ctx, items)
	if err != nil {
		return nil, err
	}
	if shortErr != nil {
		log.Warn("initiation rejected, stock shortfall", zap.Int("lines", len(shortErr.Lines)))
		return nil, shortErr
	}

	var c *coupon.Coupon
	if params.CouponCode != "" {
		c, err = s.coupons.FindByCode(ctx, params.CouponCode)
		if err != nil {
			return nil, err
		}
		if !c.IsActive {
			return nil, coupon.ErrCouponInactive
		}
	}

	quote, err := ComputeQuote(subtotal, c, s.settings.Pricing)
	if err != nil {
		return nil, err
	}

	ceiling := s.settings.MaxOnlinePaymentAmount
	if hard := payment.GatewayHardCeiling(); hard.LessThan(ceiling) {
		ceiling = hard
	}
	if quote.Total.GreaterThan(ceiling) {
		log.Warn("initiation rejected, over payment ceiling",
			zap.String("total", quote.Total.StringFixed(2)),
		)
		return nil, ErrPaymentLimitExceeded
	}

	receipt := uuid.NewString()
	gatewayOrder, err := s.gateway.CreateOrder(ctx, quote.Total, s.settings.Currency, receipt)
	if err != nil {
		return nil, fmt.Errorf("create gateway order: %w", err)
	}

	shippingJSON, err := json.Marshal(params.Shipping)
	if err != nil {
		return nil, err
	}

	quoteJSON, err := json.Marshal(quote)
	if err != nil {
		return nil, err
	}

	var couponCode *string
	if c != nil {
		couponCode = &c.Code
	}

	rec, err := s.payments.Create(ctx, payment.CreateParams{
		UserID:         params.UserID,
		Provider:       providerName,
		Amount:         quote.Total,
		Currency:       s.settings.Currency,
		GatewayOrderID: gatewayOrder.ID,
		CouponCode:     couponCode,
		ShippingJSON:   shippingJSON,
		QuoteJSON:      quoteJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("persist payment record: %w", err)
	}

	metrics.CheckoutsInitiated.Inc()
	log.Info("payment initiated",
		zap.String("payment_id", rec.ID),
		zap.String("gateway_order_id", gatewayOrder.ID),
		zap.String("total", quote.Total.StringFixed(2)),
	)

	return &InitiateResult{
		PaymentID:      rec.ID,
		GatewayOrderID: gatewayOrder.ID,
		Amount:         quote.Total,
		AmountMinor:    gatewayOrder.Amount,
		Currency:       s.settings.Currency,
		KeyID:          s.gateway.KeyID(),
		Quote:          quote,
	}, nil
}

func (s *service) Verify(ctx context.Context, params VerifyParams) (*VerifyResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Verify"),
		zap.String("gateway_order_id", params.GatewayOrderID),
	)

	if err := s.gateway.VerifySignature(params.GatewayOrderID, params.GatewayPaymentID, params.Signature); err != nil {
		log.Warn("signature mismatch, marking payment failed")
		if mfErr := s.payments.MarkFailed(ctx, params.GatewayOrderID, "signature mismatch"); mfErr != nil {
			log.Error("failed to mark payment failed", zap.Error(mfErr))
		}
		metrics.PaymentsFailed.Inc()
		return nil, payment.ErrSignatureInvalid
	}

	rec, err := s.payments.GetByGatewayOrderID(ctx, params.GatewayOrderID)
	if err != nil {
		return nil, err
	}
	if rec.UserID != params.UserID {
		return nil, order.ErrForbidden
	}

	switch rec.Status {
	case payment.StatusPaid:
		return s.replay(ctx, rec)
	case payment.StatusFailed:
		return nil, ErrPaymentFailed
	}

	items, err := s.carts.GetItems(ctx, rec.UserID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}

	// Final pre-check so the client gets the full shortfall list. The
	// conditional decrement below still guards the race.
	_, shortErr, err := s.priceCart(ctx, items)
	if err != nil {
		return nil, err
	}
	if shortErr != nil {
		// Money has been captured by the gateway at this point; the
		// failed record is surfaced for manual reconciliation.
		log.Warn("post-capture stock shortfall", zap.Int("lines", len(shortErr.Lines)))
		if mfErr := s.payments.MarkFailed(ctx, params.GatewayOrderID, shortErr.Error()); mfErr != nil {
			log.Error("failed to mark payment failed", zap.Error(mfErr))
		}
		metrics.PaymentsFailed.Inc()
		return nil, shortErr
	}

	newOrder, err := s.buildOrder(ctx, rec, params.GatewayPaymentID, items)
	if err != nil {
		return nil, err
	}

	err = db.WithTransaction(ctx, s.db, func(tx *sql.Tx) error {
		claimed, err := s.payments.ClaimPaidTx(ctx, tx,
			params.GatewayOrderID, params.GatewayPaymentID, params.Signature, newOrder.ID)
		if err != nil {
			return err
		}
		if !claimed {
			return errAlreadySettled
		}

		for _, item := range items {
			err := s.products.DecrementStockTx(ctx, tx, item.ProductID, item.Variant, item.Quantity)
			if err != nil {
				return err
			}
		}

		if err := s.orders.CreateTx(ctx, tx, newOrder); err != nil {
			return err
		}

		return s.carts.ClearCartTx(ctx, tx, rec.UserID)
	})

	if err != nil {
		if errors.Is(err, errAlreadySettled) {
			// Lost the claim to a concurrent verification; hand back
			// whatever it produced.
			rec, getErr := s.payments.GetByGatewayOrderID(ctx, params.GatewayOrderID)
			if getErr != nil {
				return nil, getErr
			}
			if rec.Status == payment.StatusPaid {
				return s.replay(ctx, rec)
			}
			return nil, ErrPaymentFailed
		}
		if errors.Is(err, product.ErrInsufficientStock) {
			log.Warn("stock decrement lost race", zap.Error(err))
			if mfErr := s.payments.MarkFailed(ctx, params.GatewayOrderID, err.Error()); mfErr != nil {
				log.Error("failed to mark payment failed", zap.Error(mfErr))
			}
			metrics.PaymentsFailed.Inc()
			return nil, fmt.Errorf("%w: %v", ErrInsufficientStock, err)
		}
		return nil, err
	}

	metrics.OrdersFinalized.Inc()
	log.Info("order finalized",
		zap.String("order_id", newOrder.ID),
		zap.String("tracking_number", newOrder.TrackingNumber),
	)

	return &VerifyResult{
		OrderID:        newOrder.ID,
		TrackingNumber: newOrder.TrackingNumber,
	}, nil
}

// priceCart re-fetches live stock and price for every line. It returns
// the live subtotal and, when any line exceeds current stock, the full
// shortfall list.
func (s *service) priceCart(ctx context.Context, items []cart.CartItem) (decimal.Decimal, *StockShortfallError, error) {
	subtotal := decimal.Zero
	var short []StockShortfall

	for _, item := range items {
		stock, err := s.products.GetVariantStock(ctx, item.ProductID, item.Variant)
		if err != nil {
			if errors.Is(err, product.ErrVariantNotFound) {
				short = append(short, StockShortfall{
					Name:      item.Name,
					Requested: item.Quantity,
					Available: 0,
				})
				continue
			}
			return decimal.Zero, nil, err
		}

		if item.Quantity > stock {
			short = append(short, StockShortfall{
				Name:      item.Name,
				Requested: item.Quantity,
				Available: stock,
			})
			continue
		}

		// The charge amount is never taken from the cart snapshot.
		price, err := s.products.GetPrice(ctx, item.ProductID)
		if err != nil {
			return decimal.Zero, nil, err
		}
		subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	if len(short) > 0 {
		return decimal.Zero, &StockShortfallError{Lines: short}, nil
	}
	return subtotal, nil, nil
}

func (s *service) buildOrder(ctx context.Context, rec *payment.Record, gatewayPaymentID string, items []cart.CartItem) (*order.Order, error) {
	var shipping order.ShippingAddress
	if len(rec.ShippingJSON) > 0 {
		if err := json.Unmarshal(rec.ShippingJSON, &shipping); err != nil {
			return nil, fmt.Errorf("decode shipping snapshot: %w", err)
		}
	}

	// The quote was priced and validated at initiation; the gateway has
	// already captured quote.Total, so the snapshot is replayed verbatim
	// instead of repricing against coupon rows that may have changed.
	var quote Quote
	if len(rec.QuoteJSON) == 0 {
		return nil, fmt.Errorf("payment record %s has no quote snapshot", rec.ID)
	}
	if err := json.Unmarshal(rec.QuoteJSON, &quote); err != nil {
		return nil, fmt.Errorf("decode quote snapshot: %w", err)
	}

	orderItems := make([]order.Item, 0, len(items))
	for _, item := range items {
		price, err := s.products.GetPrice(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		orderItems = append(orderItems, order.Item{
			ProductID: item.ProductID,
			Name:      item.Name,
			Color:     item.Variant.Color,
			Size:      item.Variant.Size,
			Quantity:  item.Quantity,
			Price:     price,
			ImageURL:  item.ImageURL,
		})
	}

	return &order.Order{
		ID:             uuid.NewString(),
		UserID:         rec.UserID,
		Status:         order.StatusPlaced,
		TrackingNumber: newTrackingNumber(),
		Items:          orderItems,
		Payment: order.PaymentInfo{
			Status:           string(payment.StatusPaid),
			Amount:           rec.Amount,
			Currency:         rec.Currency,
			GatewayOrderID:   rec.GatewayOrderID,
			GatewayPaymentID: gatewayPaymentID,
		},
		Shipping:    shipping,
		CouponCode:  rec.CouponCode,
		Subtotal:    quote.Subtotal,
		Discount:    quote.Discount,
		ShippingFee: quote.Shipping,
		Total:       rec.Amount,
	}, nil
}

func (s *service) replay(ctx context.Context, rec *payment.Record) (*VerifyResult, error) {
	if rec.OrderID == nil {
		return nil, order.ErrOrderNotFound
	}
	existing, err := s.orders.GetByID(ctx, *rec.OrderID)
	if err != nil {
		return nil, err
	}
	metrics.VerifiesReplayed.Inc()
	return &VerifyResult{
		OrderID:        existing.ID,
		TrackingNumber: existing.TrackingNumber,
		Replayed:       true,
	}, nil
}

func newTrackingNumber() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "TRK-" + raw[:12]
}
