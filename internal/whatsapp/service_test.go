package whatsapp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manthrakodi/bridalstore/config"
)

func newTestService(t *testing.T, cfg config.WhatsAppConfig) *Service {
	t.Helper()
	svc, err := New(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(svc.Release)
	return svc
}

func TestEnabled(t *testing.T) {
	svc := newTestService(t, config.WhatsAppConfig{Enabled: true})
	assert.False(t, svc.Enabled(), "enabled flag without endpoint stays off")

	svc = newTestService(t, config.WhatsAppConfig{Enabled: true, ApiURL: "https://api.example.com"})
	assert.True(t, svc.Enabled())

	svc = newTestService(t, config.WhatsAppConfig{ApiURL: "https://api.example.com"})
	assert.False(t, svc.Enabled())
}

func TestAutoReply(t *testing.T) {
	svc := newTestService(t, config.WhatsAppConfig{
		StoreURL:     "https://shop.example.com",
		ContactPhone: "+91 98765 43210",
	})

	tests := []struct {
		name string
		body string
		want string
	}{
		{"order status", "Where is my ORDER?", "https://shop.example.com/orders"},
		{"tracking", "track please", "https://shop.example.com/orders"},
		{"pricing", "what is the price of the silk saree", "https://shop.example.com/products"},
		{"support", "I need help", "+91 98765 43210"},
		{"fallback", "hello there", "How can I help you today"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Contains(t, svc.AutoReply(tc.body), tc.want)
		})
	}
}

func TestSendOrderConfirmation(t *testing.T) {
	var gotAuth string
	var gotForm map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, r.ParseForm())
		gotForm = map[string]string{
			"From": r.PostFormValue("From"),
			"To":   r.PostFormValue("To"),
			"Body": r.PostFormValue("Body"),
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	svc := newTestService(t, config.WhatsAppConfig{
		Enabled:      true,
		ApiURL:       srv.URL,
		AccountSid:   "sid",
		AuthToken:    "token",
		From:         "whatsapp:+14155238886",
		StoreURL:     "https://shop.example.com",
		ContactPhone: "+91 98765 43210",
	})

	err := svc.SendOrderConfirmation(context.Background(), "1001", "9876543210", 12999, "Pay on Delivery")
	require.NoError(t, err)

	// Basic base64("sid:token")
	assert.Equal(t, "Basic c2lkOnRva2Vu", gotAuth)
	assert.Equal(t, "whatsapp:+14155238886", gotForm["From"])
	assert.Equal(t, "whatsapp:+919876543210", gotForm["To"])
	assert.Contains(t, gotForm["Body"], "Order Confirmed: #1001")
	assert.Contains(t, gotForm["Body"], "₹12999.00")
	assert.Contains(t, gotForm["Body"], "Pay on Delivery")
}

func TestSendProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	svc := newTestService(t, config.WhatsAppConfig{Enabled: true, ApiURL: srv.URL})
	err := svc.SendOrderConfirmation(context.Background(), "1001", "9876543210", 100, "Online")
	assert.Error(t, err)
}

func TestSendDisabled(t *testing.T) {
	svc := newTestService(t, config.WhatsAppConfig{})
	err := svc.SendOrderConfirmation(context.Background(), "1001", "9876543210", 100, "Online")
	assert.Error(t, err)
}

func TestHandleInboundReturnsReplyWhenDisabled(t *testing.T) {
	svc := newTestService(t, config.WhatsAppConfig{StoreURL: "https://shop.example.com"})
	reply := svc.HandleInbound("whatsapp:+919876543210", "track my order")
	assert.Contains(t, reply, "https://shop.example.com/orders")
}

func TestWaNumber(t *testing.T) {
	assert.Equal(t, "whatsapp:+919876543210", waNumber("9876543210"))
	assert.Equal(t, "whatsapp:+14155551234", waNumber("+14155551234"))
	assert.Equal(t, "whatsapp:+919876543210", waNumber("whatsapp:+919876543210"))
	assert.Equal(t, "whatsapp:+919876543210", waNumber("  9876543210 "))
}
