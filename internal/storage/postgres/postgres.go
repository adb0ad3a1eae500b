// internal/storage/postgres/postgres.go
package postgres

import (
	"cardwise/internal/domain"
	"cardwise/internal/storage"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Storage struct {
	db *pgxpool.Pool
}

func NewStorage(db *pgxpool.Pool) *Storage {
	return &Storage{db: db}
}

// sanitizeString очищает строку от невидимых и проблемных символов
func sanitizeString(s string) string {
	result := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			result = append(result, ' ')
		} else if unicode.IsPrint(r) {
			result = append(result, r)
		}
	}
	return strings.Join(strings.Fields(string(result)), " ")
}

const cardColumns = `
	id, issuer, name, annual_fee, welcome_benefit, fx_markup_pct, flags,
	rates, caps, post_cap_rates, renewal, exclusions, notes, verified_at`

// cardRow: строка таблицы cards в «сыром» виде
type cardRow struct {
	ID             string
	Issuer         string
	Name           string
	AnnualFee      float64
	WelcomeBenefit float64
	FXMarkup       float64
	Flags          int
	Rates          []byte
	Caps           []byte
	PostCapRates   []byte
	Renewal        []byte
	Exclusions     []string
	Notes          string
	VerifiedAt     *time.Time
}

func (r *cardRow) dest() []any {
	return []any{
		&r.ID, &r.Issuer, &r.Name, &r.AnnualFee, &r.WelcomeBenefit, &r.FXMarkup, &r.Flags,
		&r.Rates, &r.Caps, &r.PostCapRates, &r.Renewal, &r.Exclusions, &r.Notes, &r.VerifiedAt,
	}
}

func (r cardRow) toDomain() (domain.CardDefinition, error) {
	card := domain.CardDefinition{
		ID:              r.ID,
		Issuer:          r.Issuer,
		Name:            r.Name,
		AnnualFee:       r.AnnualFee,
		WelcomeBenefit:  r.WelcomeBenefit,
		FXMarkupPercent: r.FXMarkup,
		Flags:           r.Flags,
		Exclusions:      r.Exclusions,
		Notes:           r.Notes,
	}
	if r.VerifiedAt != nil {
		card.VerifiedAt = r.VerifiedAt.Format("2006-01-02")
	}

	// отсутствующий ключ категории декодируется в 0
	if err := json.Unmarshal(r.Rates, &card.Rates); err != nil {
		return card, fmt.Errorf("decode rates for %q: %w", r.ID, err)
	}
	if err := json.Unmarshal(r.Caps, &card.Caps); err != nil {
		return card, fmt.Errorf("decode caps for %q: %w", r.ID, err)
	}
	if err := json.Unmarshal(r.PostCapRates, &card.PostCapRates); err != nil {
		return card, fmt.Errorf("decode post_cap_rates for %q: %w", r.ID, err)
	}
	if len(r.Renewal) > 0 && string(r.Renewal) != "null" {
		var renewal domain.RenewalBenefit
		if err := json.Unmarshal(r.Renewal, &renewal); err != nil {
			return card, fmt.Errorf("decode renewal for %q: %w", r.ID, err)
		}
		card.Renewal = &renewal
	}
	return card, nil
}

func fromDomain(card domain.CardDefinition) (cardRow, error) {
	row := cardRow{
		ID:             strings.TrimSpace(card.ID),
		Issuer:         sanitizeString(card.Issuer),
		Name:           sanitizeString(card.Name),
		AnnualFee:      card.AnnualFee,
		WelcomeBenefit: card.WelcomeBenefit,
		FXMarkup:       card.FXMarkupPercent,
		Flags:          card.Flags,
		Exclusions:     card.Exclusions,
		Notes:          card.Notes,
	}
	if row.Exclusions == nil {
		row.Exclusions = []string{}
	}

	if card.VerifiedAt != "" {
		t, err := time.Parse("2006-01-02", card.VerifiedAt)
		if err != nil {
			return row, fmt.Errorf("invalid verified_at, expected YYYY-MM-DD: %w", err)
		}
		row.VerifiedAt = &t
	}

	var err error
	if row.Rates, err = json.Marshal(card.Rates); err != nil {
		return row, fmt.Errorf("encode rates: %w", err)
	}
	if row.Caps, err = json.Marshal(card.Caps); err != nil {
		return row, fmt.Errorf("encode caps: %w", err)
	}
	if row.PostCapRates, err = json.Marshal(card.PostCapRates); err != nil {
		return row, fmt.Errorf("encode post_cap_rates: %w", err)
	}
	if card.Renewal != nil {
		if row.Renewal, err = json.Marshal(card.Renewal); err != nil {
			return row, fmt.Errorf("encode renewal: %w", err)
		}
	}
	return row, nil
}

// === CardStorage ===

func (s *Storage) ListCards(ctx context.Context) ([]domain.CardDefinition, error) {
	rows, err := s.db.Query(ctx, `SELECT `+cardColumns+` FROM cards ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}
	defer rows.Close()

	cards := make([]domain.CardDefinition, 0)
	for rows.Next() {
		var row cardRow
		if err := rows.Scan(row.dest()...); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		card, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return cards, nil
}

func (s *Storage) GetCard(ctx context.Context, id string) (*domain.CardDefinition, error) {
	var row cardRow
	err := s.db.QueryRow(ctx, `SELECT `+cardColumns+` FROM cards WHERE id = $1`, id).Scan(row.dest()...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find card: %w", err)
	}
	card, err := row.toDomain()
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// UpsertCard keeps the catalog position of an existing card.
func (s *Storage) UpsertCard(ctx context.Context, card domain.CardDefinition) error {
	row, err := fromDomain(card)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO cards (
			id, issuer, name, annual_fee, welcome_benefit, fx_markup_pct, flags,
			rates, caps, post_cap_rates, renewal, exclusions, notes, verified_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			issuer = EXCLUDED.issuer,
			name = EXCLUDED.name,
			annual_fee = EXCLUDED.annual_fee,
			welcome_benefit = EXCLUDED.welcome_benefit,
			fx_markup_pct = EXCLUDED.fx_markup_pct,
			flags = EXCLUDED.flags,
			rates = EXCLUDED.rates,
			caps = EXCLUDED.caps,
			post_cap_rates = EXCLUDED.post_cap_rates,
			renewal = EXCLUDED.renewal,
			exclusions = EXCLUDED.exclusions,
			notes = EXCLUDED.notes,
			verified_at = EXCLUDED.verified_at,
			updated_at = now()
	`, row.ID, row.Issuer, row.Name, row.AnnualFee, row.WelcomeBenefit, row.FXMarkup, row.Flags,
		string(row.Rates), string(row.Caps), string(row.PostCapRates), nullableJSON(row.Renewal),
		row.Exclusions, row.Notes, row.VerifiedAt)
	if err != nil {
		return fmt.Errorf("upsert card %q: %w", row.ID, err)
	}

	slog.Debug("UpsertCard completed", "card_id", row.ID)
	return nil
}

func (s *Storage) DeleteCard(ctx context.Context, id string) error {
	result, err := s.db.Exec(ctx, `DELETE FROM cards WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("card %q: %w", id, storage.ErrNotFound)
	}
	return nil
}

// === MilestoneStorage ===

func (s *Storage) ListPrograms(ctx context.Context) (domain.MilestonePrograms, error) {
	rows, err := s.db.Query(ctx, `
		SELECT p.id, p.default_value, t.threshold, t.value
		FROM milestone_programs p
		LEFT JOIN milestone_tiers t ON t.program_id = p.id
		ORDER BY p.id, t.threshold DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query milestone programs: %w", err)
	}
	defer rows.Close()

	programs := make(domain.MilestonePrograms)
	for rows.Next() {
		var id string
		var defaultValue float64
		var threshold, value *float64

		if err := rows.Scan(&id, &defaultValue, &threshold, &value); err != nil {
			return nil, fmt.Errorf("scan milestone tier: %w", err)
		}

		p, exists := programs[id]
		if !exists {
			p = domain.MilestoneProgram{ID: id, DefaultValue: defaultValue}
		}
		if threshold != nil && value != nil {
			p.Tiers = append(p.Tiers, domain.MilestoneTier{Threshold: *threshold, Value: *value})
		}
		programs[id] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return programs, nil
}

// UpsertProgram replaces all tiers of the program.
func (s *Storage) UpsertProgram(ctx context.Context, program domain.MilestoneProgram) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO milestone_programs (id, default_value) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET default_value = EXCLUDED.default_value
	`, program.ID, program.DefaultValue)
	if err != nil {
		return fmt.Errorf("upsert milestone program %q: %w", program.ID, err)
	}

	if _, err = tx.Exec(ctx, `DELETE FROM milestone_tiers WHERE program_id = $1`, program.ID); err != nil {
		return fmt.Errorf("clear old tiers: %w", err)
	}

	for _, tier := range program.Tiers {
		_, err = tx.Exec(ctx, `
			INSERT INTO milestone_tiers (program_id, threshold, value) VALUES ($1, $2, $3)
			ON CONFLICT (program_id, threshold) DO UPDATE SET value = EXCLUDED.value
		`, program.ID, tier.Threshold, tier.Value)
		if err != nil {
			return fmt.Errorf("insert tier: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// === CatalogSource ===

func (s *Storage) LoadCatalog(ctx context.Context) (*domain.Catalog, error) {
	cards, err := s.ListCards(ctx)
	if err != nil {
		return nil, err
	}
	programs, err := s.ListPrograms(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.Catalog{Cards: cards, Programs: programs}, nil
}

func nullableJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
