package whatsapp

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/guonaihong/gout"
	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/manthrakodi/bridalstore/config"
	"github.com/manthrakodi/bridalstore/internal/domain"
)

// defaultPaymentMethod labels event-driven confirmations; the explicit
// send-order endpoint carries the real payment method from the caller.
const defaultPaymentMethod = "Pay on Delivery"

// Service submits order notifications to a Twilio-style WhatsApp provider
// and answers inbound messages with canned replies. Delivery is at-most-once:
// no retries, no delivery tracking, and a failed send never propagates to the
// operation that triggered it.
type Service struct {
	cfg  config.WhatsAppConfig
	pool *ants.Pool
}

// New creates the dispatcher and, when a bus is supplied, subscribes it to
// order-created events.
func New(cfg config.WhatsAppConfig, bus EventBus.Bus) (*Service, error) {
	pool, err := ants.NewPool(4, ants.WithNonblocking(true))
	if err != nil {
		return nil, errors.Wrap(err, "init whatsapp send pool")
	}
	s := &Service{cfg: cfg, pool: pool}
	if bus != nil {
		if err := bus.SubscribeAsync(domain.EventOrderCreated, s.onOrderCreated, false); err != nil {
			pool.Release()
			return nil, errors.Wrap(err, "subscribe order events")
		}
	}
	return s, nil
}

// Enabled reports whether a provider endpoint is configured.
func (s *Service) Enabled() bool {
	return s.cfg.Enabled && s.cfg.ApiURL != ""
}

func (s *Service) Release() {
	s.pool.Release()
}

// onOrderCreated fires a confirmation for a freshly committed order. Errors
// are logged and dropped.
func (s *Service) onOrderCreated(order *domain.Order) {
	if !s.Enabled() || order == nil {
		return
	}
	o := *order
	err := s.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.SendOrderConfirmation(ctx, o.OrderNo, o.CustomerPhone, o.TotalAmount, defaultPaymentMethod); err != nil {
			zap.L().Warn("whatsapp: order confirmation failed",
				zap.String("order_no", o.OrderNo), zap.Error(err))
		}
	})
	if err != nil {
		zap.L().Warn("whatsapp: send pool rejected confirmation",
			zap.String("order_no", o.OrderNo), zap.Error(err))
	}
}

// SendOrderConfirmation composes the fixed confirmation template and submits
// it to the provider.
func (s *Service) SendOrderConfirmation(ctx context.Context, orderNo, phone string, total float64, paymentMethod string) error {
	body := fmt.Sprintf(
		"✅ Order Confirmed: #%s\n\n"+
			"Thank you for your order! We'll process it within 24 hours.\n\n"+
			"Order Total: ₹%.2f\n"+
			"Payment: %s\n\n"+
			"You can track your order at:\n%s/orders\n\n"+
			"Need help? Call %s",
		orderNo, total, paymentMethod, s.cfg.StoreURL, s.cfg.ContactPhone)
	return s.send(ctx, waNumber(phone), body)
}

// AutoReply returns the canned reply for an inbound free-text message.
func (s *Service) AutoReply(body string) string {
	msg := strings.ToLower(body)
	switch {
	case strings.Contains(msg, "order") || strings.Contains(msg, "track"):
		return "To check your order status, please visit our website: " + s.cfg.StoreURL + "/orders"
	case strings.Contains(msg, "price") || strings.Contains(msg, "cost"):
		return "You can view all our products with prices at: " + s.cfg.StoreURL + "/products"
	case strings.Contains(msg, "contact") || strings.Contains(msg, "help"):
		return "📞 Call us: " + s.cfg.ContactPhone + "\n📍 Visit: 123 Bridal Street, Chennai\n🌐 Website: " + s.cfg.StoreURL
	default:
		return "Thanks for contacting Manthrakodi Bridals! How can I help you today? You can:\n" +
			"1. Place an order on our website\n" +
			"2. Check order status\n" +
			"3. View products\n" +
			"4. Contact support"
	}
}

// HandleInbound answers a webhook message. The reply text is returned to the
// caller; the provider send happens in the background.
func (s *Service) HandleInbound(from, body string) string {
	reply := s.AutoReply(body)
	if !s.Enabled() || from == "" {
		return reply
	}
	err := s.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.send(ctx, waNumber(from), reply); err != nil {
			zap.L().Warn("whatsapp: auto reply failed", zap.Error(err))
		}
	})
	if err != nil {
		zap.L().Warn("whatsapp: send pool rejected auto reply", zap.Error(err))
	}
	return reply
}

func (s *Service) send(ctx context.Context, to, body string) error {
	if !s.Enabled() {
		return errors.New("whatsapp dispatcher is not configured")
	}
	var code int
	err := gout.POST(s.cfg.ApiURL).
		WithContext(ctx).
		SetHeader(gout.H{"Authorization": s.basicAuth()}).
		SetWWWForm(gout.H{
			"From": s.cfg.From,
			"To":   to,
			"Body": body,
		}).
		Code(&code).
		Do()
	if err != nil {
		return errors.Wrap(err, "submit message")
	}
	if code >= 300 {
		return errors.Errorf("provider returned status %d", code)
	}
	zap.L().Info("whatsapp: message submitted", zap.String("to", to))
	return nil
}

func (s *Service) basicAuth() string {
	token := s.cfg.AccountSid + ":" + s.cfg.AuthToken
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(token))
}

// waNumber normalizes a phone number to the provider's whatsapp: form. Bare
// national numbers get the +91 country prefix the shop serves.
func waNumber(phone string) string {
	phone = strings.TrimSpace(phone)
	if strings.HasPrefix(phone, "whatsapp:") {
		return phone
	}
	if strings.HasPrefix(phone, "+") {
		return "whatsapp:" + phone
	}
	return "whatsapp:+91" + phone
}
