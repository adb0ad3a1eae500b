// internal/bot/bot.go
package bot

import (
	"cardwise/internal/domain"
	"cardwise/internal/metrics"
	"cardwise/internal/recommend"
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const helpText = "💳 *Cardwise*\n\n" +
	"Commands:\n" +
	"`/recommend 120000 180000 600000 300000` — annual spend: groceries, dining, travel, other\n" +
	"`/recommend dining=50000 travel=200000` — only the buckets you know\n" +
	"`/cards` — list the catalog\n" +
	"`/card AXIS_ATLAS` — card details"

// Sender is the part of tgbotapi.BotAPI the bot needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Bot struct {
	service *recommend.Service
	catalog recommend.SnapshotSource
	printer *message.Printer
}

func New(service *recommend.Service, catalog recommend.SnapshotSource) *Bot {
	return &Bot{
		service: service,
		catalog: catalog,
		printer: message.NewPrinter(language.English),
	}
}

// HandleText returns the Markdown reply for one incoming message.
func (b *Bot) HandleText(text string) string {
	text = sanitizeInput(fixEncoding(text))
	cmd, args, _ := strings.Cut(text, " ")
	// /recommend@cardwise_bot в групповых чатах
	cmd, _, _ = strings.Cut(cmd, "@")

	switch cmd {
	case "/start", "/help":
		metrics.BotCommands.WithLabelValues("help").Inc()
		return helpText

	case "/recommend":
		metrics.BotCommands.WithLabelValues("recommend").Inc()
		profile, err := parseProfile(args)
		if err != nil {
			return "❌ " + err.Error()
		}
		return b.formatRecommendations(b.service.Recommend(profile, 0))

	case "/cards":
		metrics.BotCommands.WithLabelValues("cards").Inc()
		return b.formatCards()

	case "/card":
		metrics.BotCommands.WithLabelValues("card").Inc()
		id := strings.ToUpper(strings.TrimSpace(args))
		if id == "" {
			return "❌ Usage: /card CARD_ID"
		}
		return b.formatCard(id)

	default:
		metrics.BotCommands.WithLabelValues("unknown").Inc()
		return "Unknown command. Try /help"
	}
}

// Reply builds the answer to an update; false when there is nothing to answer.
func (b *Bot) Reply(update tgbotapi.Update) (tgbotapi.MessageConfig, bool) {
	if update.Message == nil || update.Message.Text == "" {
		return tgbotapi.MessageConfig{}, false
	}

	slog.Info("Message received", "chat_id", update.Message.Chat.ID, "text", update.Message.Text)
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, b.HandleText(update.Message.Text))
	msg.ParseMode = tgbotapi.ModeMarkdown
	return msg, true
}

// Webhook handles POST /telegram.
func (b *Bot) Webhook(sender Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		var update tgbotapi.Update
		if err := c.ShouldBindJSON(&update); err != nil {
			slog.Error("Failed to parse update", "error", err)
			c.Status(http.StatusBadRequest)
			return
		}

		if msg, ok := b.Reply(update); ok {
			if _, err := sender.Send(msg); err != nil {
				slog.Error("Failed to send reply", "error", err, "chat_id", msg.ChatID)
			}
		}
		c.Status(http.StatusOK)
	}
}

// Poll reads updates by long polling until ctx is done.
func (b *Bot) Poll(ctx context.Context, api *tgbotapi.BotAPI) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			msg, reply := b.Reply(update)
			if !reply {
				continue
			}
			if _, err := api.Send(msg); err != nil {
				slog.Error("Failed to send reply", "error", err, "chat_id", msg.ChatID)
			}
		}
	}
}

var bucketOrder = []domain.Bucket{
	domain.BucketGroceries, domain.BucketDining, domain.BucketTravel, domain.BucketOther,
}

// parseProfile понимает "120000 180000 600000 300000" и "dining=50000 travel=2e5"
func parseProfile(args string) (domain.SpendProfile, error) {
	var p domain.SpendProfile
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return p, nil
	}

	if strings.Contains(args, "=") {
		for _, f := range fields {
			key, raw, ok := strings.Cut(f, "=")
			if !ok {
				return p, fmt.Errorf("expected key=value, got %q", f)
			}
			key = strings.ToLower(key)
			if key == "others" {
				key = string(domain.BucketOther)
			}
			v, err := parseAmount(raw)
			if err != nil {
				return p, err
			}
			if !setBucket(&p, domain.Bucket(key), v) {
				return p, fmt.Errorf("unknown bucket %q (groceries, dining, travel, other)", key)
			}
		}
		return p, nil
	}

	if len(fields) > len(bucketOrder) {
		return p, fmt.Errorf("at most %d amounts: groceries dining travel other", len(bucketOrder))
	}
	for i, f := range fields {
		v, err := parseAmount(f)
		if err != nil {
			return p, err
		}
		setBucket(&p, bucketOrder[i], v)
	}
	return p, nil
}

func parseAmount(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a number: %q", raw)
	}
	if v < 0 {
		return 0, fmt.Errorf("spend must be >= 0: %q", raw)
	}
	return v, nil
}

func setBucket(p *domain.SpendProfile, b domain.Bucket, v float64) bool {
	switch b {
	case domain.BucketGroceries:
		p.Groceries = domain.Amount(v)
	case domain.BucketDining:
		p.Dining = domain.Amount(v)
	case domain.BucketTravel:
		p.Travel = domain.Amount(v)
	case domain.BucketOther:
		p.Other = domain.Amount(v)
	default:
		return false
	}
	return true
}

func (b *Bot) formatRecommendations(res recommend.Result) string {
	if len(res.Results) == 0 {
		return "📭 The catalog is empty"
	}

	var lines []string
	if res.FiltersApplied {
		lines = append(lines, "🏆 *Best cards for your spend*")
	} else {
		lines = append(lines, "🏆 *Cards by fees and benefits*\n_No spend given, rewards not counted_")
	}
	for i, v := range res.Results {
		lines = append(lines,
			fmt.Sprintf("\n%d. *%s* (%s)", i+1, v.Name, v.Issuer),
			fmt.Sprintf("   Year 1: %s · Year 2+: %s", b.inr(v.NetValueYear1), b.inr(v.NetValueSubsequent)),
			fmt.Sprintf("   Rewards %s, fee %s, renewal %s",
				b.inr(v.EstimatedRewards), b.inr(v.AnnualFee), b.inr(v.RenewalBenefit)),
		)
	}
	return strings.Join(lines, "\n")
}

func (b *Bot) formatCards() string {
	cards := b.catalog.Snapshot().Cards()
	if len(cards) == 0 {
		return "📭 The catalog is empty"
	}

	lines := []string{"💳 *Cards*"}
	for _, c := range cards {
		lines = append(lines, fmt.Sprintf("`%s` %s (fee %s)", c.ID, c.Name, b.inr(c.AnnualFee)))
	}
	return strings.Join(lines, "\n")
}

func (b *Bot) formatCard(id string) string {
	snap := b.catalog.Snapshot()
	card, ok := snap.Card(id)
	if !ok {
		return fmt.Sprintf("📭 No card `%s`", id)
	}

	lines := []string{
		fmt.Sprintf("💳 *%s*", card.Name),
		"Issuer: " + card.Issuer,
		"Annual fee: " + b.inr(card.AnnualFee),
		"Welcome benefit: " + b.inr(card.WelcomeBenefit),
		"Renewal: " + card.Renewal.Describe(),
	}
	if card.Renewal != nil && card.Renewal.MilestoneProgram != "" {
		if p, ok := snap.Program(card.Renewal.MilestoneProgram); ok {
			for _, t := range p.Tiers {
				lines = append(lines, fmt.Sprintf("   spend ≥ %s → %s", b.inr(t.Threshold), b.inr(t.Value)))
			}
			lines = append(lines, fmt.Sprintf("   otherwise → %s", b.inr(p.DefaultValue)))
		}
	}
	if card.FXMarkupPercent > 0 {
		lines = append(lines, fmt.Sprintf("FX markup: %.1f%%", card.FXMarkupPercent))
	}
	if card.Notes != "" {
		lines = append(lines, "", card.Notes)
	}
	return strings.Join(lines, "\n")
}

// inr: «₹1,234», отрицательные как «-₹500»
func (b *Bot) inr(v float64) string {
	n := int64(math.Round(v))
	if n < 0 {
		return b.printer.Sprintf("-₹%d", -n)
	}
	return b.printer.Sprintf("₹%d", n)
}

func sanitizeInput(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

func fixEncoding(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	// Пробуем перекодировать из windows-1251
	decoder := charmap.Windows1251.NewDecoder()
	fixed, err := decoder.String(s)
	if err == nil && utf8.ValidString(fixed) {
		return fixed
	}

	return strings.ToValidUTF8(s, "")
}
