package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"grandstay-backend/failure"
	"grandstay-backend/models"
	"grandstay-backend/repository"
)

// PricingService reads the rate table for the booking path and applies
// administrative upserts. The nightly rate charged is the base price for the
// room type; the season and weekend multipliers are stored for rate-plan
// tooling and are not folded into the charge here.
type PricingService struct {
	pricing         repository.PricingRepository
	defaultRate     float64
	defaultCurrency string
	log             zerolog.Logger
}

func NewPricingService(pricing repository.PricingRepository, defaultRate float64, defaultCurrency string, log zerolog.Logger) *PricingService {
	return &PricingService{
		pricing:         pricing,
		defaultRate:     defaultRate,
		defaultCurrency: defaultCurrency,
		log:             log.With().Str("service", "pricing").Logger(),
	}
}

// NightlyRate returns the rate and currency for a room type. Unknown types
// fall back to the configured default rate, never to zero.
func (s *PricingService) NightlyRate(ctx context.Context, roomType string) (float64, string, error) {
	pricing, err := s.pricing.Get(ctx, roomType)
	if err != nil {
		if failure.IsNotFound(err) {
			s.log.Info().Str("room_type", roomType).Float64("rate", s.defaultRate).Msg("unknown room type, using default rate")
			return s.defaultRate, s.defaultCurrency, nil
		}
		return 0, "", err
	}
	if pricing.BasePrice <= 0 {
		return s.defaultRate, s.defaultCurrency, nil
	}
	return pricing.BasePrice, pricing.Currency, nil
}

func (s *PricingService) List(ctx context.Context) ([]models.RoomPricing, error) {
	return s.pricing.List(ctx)
}

// UpsertInput carries an administrative price update for one room type.
type UpsertPricingInput struct {
	BasePrice         float64 `json:"basePrice"`
	Currency          string  `json:"currency"`
	SeasonMultiplier  float64 `json:"seasonMultiplier"`
	WeekendMultiplier float64 `json:"weekendMultiplier"`
}

func (s *PricingService) Upsert(ctx context.Context, roomType string, input UpsertPricingInput) (*models.RoomPricing, error) {
	roomType = strings.TrimSpace(roomType)
	if roomType == "" {
		return nil, failure.BadRequest("room_type is required")
	}
	if input.BasePrice <= 0 {
		return nil, failure.BadRequest("base_price must be greater than zero")
	}
	if !validCurrency(input.Currency) {
		return nil, failure.BadRequest("currency must be PKR or USD")
	}
	if input.SeasonMultiplier <= 0 {
		input.SeasonMultiplier = 1
	}
	if input.WeekendMultiplier <= 0 {
		input.WeekendMultiplier = 1
	}

	pricing := &models.RoomPricing{
		RoomType:          roomType,
		BasePrice:         input.BasePrice,
		Currency:          input.Currency,
		SeasonMultiplier:  input.SeasonMultiplier,
		WeekendMultiplier: input.WeekendMultiplier,
	}
	if err := s.pricing.Upsert(ctx, pricing); err != nil {
		return nil, err
	}
	return pricing, nil
}

func validCurrency(currency string) bool {
	return currency == "PKR" || currency == "USD"
}
