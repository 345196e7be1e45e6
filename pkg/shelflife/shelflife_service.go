package shelflife

import (
	"context"
	"errors"
	"strings"
	"time"

	"Expiry-Reminder/domain"
	"Expiry-Reminder/internal/metrics"

	"github.com/rs/zerolog"
)

const (
	OutcomeMatched    = "matched"
	OutcomeCached     = "cached"
	OutcomeNoResults  = "no_results"
	OutcomeNoCategory = "no_category"
	OutcomeLookupErr  = "lookup_error"
)

var errNoResults = errors.New("lookup returned no products")

type (
	// Result is the outcome of a resolution. Degraded results carry the
	// fallback days and the reason the lookup could not classify the item.
	Result struct {
		Days     int
		Degraded bool
		Outcome  string
		Err      error
	}

	ShelfLifeService interface {
		Resolve(ctx context.Context, itemName string) Result
	}

	// Cache stores resolved shelf lives by normalized item name.
	Cache interface {
		Get(ctx context.Context, key string) (int, bool, error)
		Set(ctx context.Context, key string, days int, ttl time.Duration) error
	}

	shelfLifeService struct {
		lookup     LookupService
		cache      Cache
		cacheTTL   time.Duration
		categories []domain.ShelfLifeCategory
		timeout    time.Duration
		logger     zerolog.Logger
	}
)

// NewShelfLifeService builds a resolver over lookup. cache may be nil;
// a zero timeout leaves the caller's deadline in charge.
func NewShelfLifeService(
	lookup LookupService,
	cache Cache,
	cacheTTL time.Duration,
	categories []domain.ShelfLifeCategory,
	timeout time.Duration,
	logger zerolog.Logger,
) ShelfLifeService {
	if categories == nil {
		categories = domain.ShelfLifeCategories
	}
	return &shelfLifeService{
		lookup:     lookup,
		cache:      cache,
		cacheTTL:   cacheTTL,
		categories: categories,
		timeout:    timeout,
		logger:     logger,
	}
}

func (s *shelfLifeService) Resolve(ctx context.Context, itemName string) Result {
	key := strings.ToLower(strings.TrimSpace(itemName))

	if s.cache != nil {
		if days, ok, err := s.cachedDays(ctx, key); err == nil && ok && days > 0 {
			metrics.ShelfLifeLookups.WithLabelValues(OutcomeCached).Inc()
			return Result{Days: days, Outcome: OutcomeCached}
		}
	}

	res := s.lookupDays(ctx, key)
	metrics.ShelfLifeLookups.WithLabelValues(res.Outcome).Inc()

	if res.Degraded {
		s.logger.Debug().
			Str("item", key).
			Str("outcome", res.Outcome).
			AnErr("cause", res.Err).
			Int("days", res.Days).
			Msg("shelf life degraded to fallback")
		return res
	}

	if s.cache != nil {
		if err := s.storeDays(ctx, key, res.Days); err != nil {
			s.logger.Warn().Err(err).Str("item", key).Msg("shelf life cache write failed")
		}
	}
	return res
}

func (s *shelfLifeService) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(ctx, s.timeout)
	}
	return ctx, func() {}
}

func (s *shelfLifeService) cachedDays(ctx context.Context, key string) (int, bool, error) {
	ctx, cancel := s.bounded(ctx)
	defer cancel()
	return s.cache.Get(ctx, key)
}

func (s *shelfLifeService) storeDays(ctx context.Context, key string, days int) error {
	ctx, cancel := s.bounded(ctx)
	defer cancel()
	return s.cache.Set(ctx, key, days, s.cacheTTL)
}

func (s *shelfLifeService) lookupDays(ctx context.Context, query string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = degraded(OutcomeLookupErr, errors.New("lookup panicked"))
		}
	}()

	if s.lookup == nil {
		return degraded(OutcomeLookupErr, errors.New("no lookup service configured"))
	}

	ctx, cancel := s.bounded(ctx)
	defer cancel()

	products, err := s.lookup.Search(ctx, query)
	if err != nil {
		return degraded(OutcomeLookupErr, err)
	}
	if len(products) == 0 {
		return degraded(OutcomeNoResults, errNoResults)
	}

	if days, ok := MatchCategory(s.categories, products[0].DisplayName); ok && days > 0 {
		return Result{Days: days, Outcome: OutcomeMatched}
	}
	return degraded(OutcomeNoCategory, nil)
}

// MatchCategory returns the days of the first category whose keyword is
// contained in displayName, compared case-insensitively.
func MatchCategory(categories []domain.ShelfLifeCategory, displayName string) (int, bool) {
	name := strings.ToLower(displayName)
	for _, c := range categories {
		if c.Keyword != "" && strings.Contains(name, strings.ToLower(c.Keyword)) {
			return c.Days, true
		}
	}
	return 0, false
}

func degraded(outcome string, err error) Result {
	return Result{
		Days:     domain.FallbackShelfLifeDays,
		Degraded: true,
		Outcome:  outcome,
		Err:      err,
	}
}
