// internal/bot/bot_test.go
package bot

import (
	"bytes"
	"cardwise/internal/catalog"
	"cardwise/internal/recommend"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func newTestBot(t *testing.T) *Bot {
	t.Helper()
	c := catalog.New(catalog.NewSeedSource(), nil)
	_, err := c.Refresh(context.Background())
	require.NoError(t, err)
	return New(recommend.NewService(c, 5), c)
}

type fakeSender struct {
	sent []tgbotapi.Chattable
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func TestHandleText_Help(t *testing.T) {
	b := newTestBot(t)
	assert.Equal(t, helpText, b.HandleText("/start"))
	assert.Equal(t, helpText, b.HandleText(" /help "))
	assert.Equal(t, "Unknown command. Try /help", b.HandleText("hello"))
}

func TestHandleText_RecommendPositional(t *testing.T) {
	b := newTestBot(t)

	reply := b.HandleText("/recommend 120000 180000 600000 300000")

	assert.Contains(t, reply, "Best cards for your spend")
	assert.Contains(t, reply, "1. *Axis Bank Magnus Credit Card* (Axis Bank)")
	assert.Contains(t, reply, "Year 1: ₹72,000 · Year 2+: ₹59,500")
	assert.Contains(t, reply, "2. *SBI Cashback Card*")
}

func TestHandleText_RecommendKeyValue(t *testing.T) {
	b := newTestBot(t)

	reply := b.HandleText("/recommend@cardwise_bot dining=1,00,000 others=0")

	assert.Contains(t, reply, "Best cards for your spend")
	// SBI: 5000 rewards - 999 fee, renewal not reached at 1L
	assert.Contains(t, reply, "Year 1: ₹4,001")
}

func TestHandleText_RecommendFallback(t *testing.T) {
	b := newTestBot(t)

	reply := b.HandleText("/recommend")

	assert.Contains(t, reply, "Cards by fees and benefits")
	assert.Contains(t, reply, "Year 1: -₹999")
}

func TestHandleText_RecommendErrors(t *testing.T) {
	b := newTestBot(t)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"not a number", "/recommend lots", "not a number"},
		{"negative", "/recommend 100 -5", "spend must be >= 0"},
		{"too many", "/recommend 1 2 3 4 5", "at most 4 amounts"},
		{"unknown bucket", "/recommend fuel=100", "unknown bucket"},
		{"mixed form", "/recommend dining=5 100", "expected key=value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := b.HandleText(tt.in)
			assert.Contains(t, reply, "❌")
			assert.Contains(t, reply, tt.want)
		})
	}
}

func TestHandleText_Cards(t *testing.T) {
	b := newTestBot(t)

	reply := b.HandleText("/cards")
	assert.Contains(t, reply, "`AXIS_ATLAS` Axis Atlas Credit Card (fee ₹5,000)")
	assert.Contains(t, reply, "`SBI_CASHBACK` SBI Cashback Card (fee ₹999)")

	reply = b.HandleText("/card axis_atlas")
	assert.Contains(t, reply, "Renewal: Tiered milestone reward points")
	assert.Contains(t, reply, "spend ≥ ₹750,000 → ₹10,000")
	assert.Contains(t, reply, "otherwise → ₹2,500")

	assert.Contains(t, b.HandleText("/card"), "Usage")
	assert.Contains(t, b.HandleText("/card NOPE"), "No card `NOPE`")
}

func TestParseProfile(t *testing.T) {
	p, err := parseProfile("5000 0")
	require.NoError(t, err)
	require.NotNil(t, p.Groceries)
	require.NotNil(t, p.Dining)
	assert.Equal(t, 5000.0, *p.Groceries)
	assert.Equal(t, 0.0, *p.Dining)
	assert.Nil(t, p.Travel)
	assert.Nil(t, p.Other)

	p, err = parseProfile("")
	require.NoError(t, err)
	assert.True(t, p.IsEmpty())
}

func TestWebhook(t *testing.T) {
	gin.SetMode(gin.TestMode)
	b := newTestBot(t)
	sender := &fakeSender{}

	r := gin.New()
	r.POST("/telegram", b.Webhook(sender))

	body := `{"update_id":1,"message":{"message_id":7,"chat":{"id":42,"type":"private"},"text":"/help"}}`
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/telegram", bytes.NewBufferString(body)))

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, sender.sent, 1)
	msg, ok := sender.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, int64(42), msg.ChatID)
	assert.Equal(t, tgbotapi.ModeMarkdown, msg.ParseMode)
	assert.Equal(t, helpText, msg.Text)

	// без сообщения отвечать нечего
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/telegram", bytes.NewBufferString(`{"update_id":2}`)))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, sender.sent, 1)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/telegram", bytes.NewBufferString(`{`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFixEncoding(t *testing.T) {
	assert.Equal(t, "/card атлас", fixEncoding("/card атлас"))

	cp1251, err := charmap.Windows1251.NewEncoder().String("привет")
	require.NoError(t, err)
	require.NotEqual(t, "привет", cp1251)
	assert.Equal(t, "привет", fixEncoding(cp1251))
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "/card AXIS_ATLAS", sanitizeInput("/card \tAXIS_ATLAS "))
}
