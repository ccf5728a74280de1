package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/hassansardar246/eclero-availability-api/internal/dto"
	"github.com/hassansardar246/eclero-availability-api/internal/models"
	appErrors "github.com/hassansardar246/eclero-availability-api/pkg/errors"
)

type availabilityRepository interface {
	ListActiveWeeklyRules(ctx context.Context, tutorID string) ([]models.WeeklyAvailabilityRule, error)
	ListExceptions(ctx context.Context, tutorID string) ([]models.AvailabilityException, error)
}

type profileReader interface {
	FindByEmail(ctx context.Context, email string) (*models.Profile, error)
}

// AvailabilityOptions tunes window resolution. Now is an injectable
// clock; tests pin it to exercise timezone-sensitive day mapping.
type AvailabilityOptions struct {
	DefaultWindowDays int
	MaxWindowDays     int
	IncrementMinutes  int
	ProfileCacheTTL   time.Duration
	Now               func() time.Time
}

// AvailabilityService resolves a tutor's recurring weekly rules plus
// date-specific exceptions into concrete bookable slot starts for a
// rolling date window. Each request reads a fresh snapshot and computes
// independently; resolved windows are never cached.
type AvailabilityService struct {
	repo      availabilityRepository
	profiles  profileReader
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger

	defaultWindowDays int
	maxWindowDays     int
	incrementMinutes  int
	profileCacheTTL   time.Duration
	now               func() time.Time
}

// NewAvailabilityService constructs the service. Cache and metrics may
// be nil; both degrade to no-ops.
func NewAvailabilityService(repo availabilityRepository, profiles profileReader, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, opts AvailabilityOptions) *AvailabilityService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.DefaultWindowDays <= 0 {
		opts.DefaultWindowDays = 30
	}
	if opts.MaxWindowDays <= 0 {
		opts.MaxWindowDays = 60
	}
	if opts.IncrementMinutes <= 0 {
		opts.IncrementMinutes = DefaultSlotIncrementMinutes
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &AvailabilityService{
		repo:              repo,
		profiles:          profiles,
		cache:             cache,
		metrics:           metrics,
		validator:         validate,
		logger:            logger,
		defaultWindowDays: opts.DefaultWindowDays,
		maxWindowDays:     opts.MaxWindowDays,
		incrementMinutes:  opts.IncrementMinutes,
		profileCacheTTL:   opts.ProfileCacheTTL,
		now:               opts.Now,
	}
}

// ResolveWindow produces one DaySlots entry per day, day 0 being today
// in the tutor's governing timezone. A tutor with no rules and no
// exceptions gets a full window of empty days, not an error.
func (s *AvailabilityService) ResolveWindow(ctx context.Context, req dto.CalendarRequest) (*dto.CalendarResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "tutorId or email is required")
	}

	tutorID := req.TutorID
	if tutorID == "" {
		resolved, err := s.resolveTutorID(ctx, req.Email)
		if err != nil {
			return nil, err
		}
		tutorID = resolved
	}

	started := time.Now()

	queryStart := time.Now()
	rules, err := s.repo.ListActiveWeeklyRules(ctx, tutorID)
	s.metrics.ObserveDBQuery("weekly_rules", time.Since(queryStart))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to load weekly availability rules")
	}

	queryStart = time.Now()
	exceptions, err := s.repo.ListExceptions(ctx, tutorID)
	s.metrics.ObserveDBQuery("availability_exceptions", time.Since(queryStart))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to load availability exceptions")
	}

	windowDays := s.clampWindowDays(req.Days)
	loc, tzName := governingTimezone(rules, exceptions)
	rulesByWeekday := groupRulesByWeekday(rules)
	adjustmentsByDate := buildAdjustments(exceptions, tzName)

	today := s.now().In(loc)
	days := make([]dto.DaySlots, 0, windowDays)
	for i := 0; i < windowDays; i++ {
		day := today.AddDate(0, 0, i)
		date := day.Format("2006-01-02")
		days = append(days, dto.DaySlots{
			Date:  date,
			Slots: resolveDaySlots(rulesByWeekday[int(day.Weekday())], adjustmentsByDate[date], s.incrementMinutes),
		})
	}

	s.metrics.ObserveWindowResolution(windowDays, time.Since(started))
	s.logger.Debug("availability window resolved",
		zap.String("tutor_id", tutorID),
		zap.Int("days", windowDays),
		zap.String("timezone", tzName),
	)

	return &dto.CalendarResponse{Timezone: tzName, Days: days}, nil
}

// resolveTutorID maps an email onto a tutor identifier, consulting the
// profile cache first. Cache failures degrade to a direct lookup.
func (s *AvailabilityService) resolveTutorID(ctx context.Context, email string) (string, error) {
	key := "profile:email:" + strings.ToLower(email)
	if s.cache.Enabled() {
		var cached string
		if hit, _ := s.cache.Get(ctx, key, &cached); hit && cached != "" {
			return cached, nil
		}
	}

	profile, err := s.profiles.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", appErrors.Clone(appErrors.ErrNotFound, "no profile matches the provided email")
		}
		return "", appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to resolve profile")
	}

	if s.cache.Enabled() {
		_ = s.cache.Set(ctx, key, profile.ID, s.profileCacheTTL)
	}
	return profile.ID, nil
}

// clampWindowDays bounds the requested window. Non-positive values are
// treated as unspecified and fall back to the default.
func (s *AvailabilityService) clampWindowDays(days int) int {
	if days <= 0 {
		return s.defaultWindowDays
	}
	if days > s.maxWindowDays {
		return s.maxWindowDays
	}
	return days
}

// governingTimezone picks the timezone every date computation runs in:
// the first weekly rule's timezone, else the first exception's, else
// UTC. An unloadable IANA name also falls back to UTC so one bad field
// cannot blank the calendar.
func governingTimezone(rules []models.WeeklyAvailabilityRule, exceptions []models.AvailabilityException) (*time.Location, string) {
	name := ""
	if len(rules) > 0 {
		name = rules[0].Timezone
	}
	if name == "" && len(exceptions) > 0 {
		if tz := exceptions[0].Timezone; tz != nil {
			name = *tz
		}
	}
	if name == "" {
		return time.UTC, "UTC"
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC, "UTC"
	}
	return loc, name
}

// timeRange is a pre-parsed start/end pair from a weekly rule.
type timeRange struct {
	start TimeOfDay
	end   TimeOfDay
}

// groupRulesByWeekday parses rule times up front so the per-day loop
// works on clean ranges. Rules with unparsable times contribute nothing.
func groupRulesByWeekday(rules []models.WeeklyAvailabilityRule) map[int][]timeRange {
	byWeekday := make(map[int][]timeRange)
	for _, rule := range rules {
		start, err := ParseTimeOfDay(rule.StartTime)
		if err != nil {
			continue
		}
		end, err := ParseTimeOfDay(rule.EndTime)
		if err != nil {
			continue
		}
		byWeekday[rule.DayOfWeek] = append(byWeekday[rule.DayOfWeek], timeRange{start: start, end: end})
	}
	return byWeekday
}

type adjustmentKind int

const (
	adjustmentAdd adjustmentKind = iota
	adjustmentRemove
)

// slotAdjustment is a date-specific availability override: an additive
// adjustment opens its range, a subtractive one closes it.
type slotAdjustment struct {
	kind  adjustmentKind
	start TimeOfDay
	end   TimeOfDay
}

// EffectiveTimezone resolves the timezone governing an exception: its
// own timezone when present and non-empty, otherwise the tutor default.
func EffectiveTimezone(exc models.AvailabilityException, tutorDefault string) string {
	if exc.Timezone != nil && *exc.Timezone != "" {
		return *exc.Timezone
	}
	return tutorDefault
}

// buildAdjustments indexes exceptions by the calendar date they apply
// to. Malformed records (bad date, bad times) are skipped; one bad row
// must not corrupt the rest of the window.
func buildAdjustments(exceptions []models.AvailabilityException, tutorTZ string) map[string][]slotAdjustment {
	byDate := make(map[string][]slotAdjustment)
	for _, exc := range exceptions {
		date, ok := exceptionDate(exc, tutorTZ)
		if !ok {
			continue
		}
		start, err := ParseTimeOfDay(exc.StartTime)
		if err != nil {
			continue
		}
		end, err := ParseTimeOfDay(exc.EndTime)
		if err != nil {
			continue
		}
		kind := adjustmentRemove
		if exc.IsActive {
			kind = adjustmentAdd
		}
		byDate[date] = append(byDate[date], slotAdjustment{kind: kind, start: start, end: end})
	}
	return byDate
}

// exceptionDate maps a stored exception date onto a calendar date in
// the exception's effective timezone. Plain dates pass through;
// timestamps are shifted into the effective zone before taking the
// date; anything else is treated as malformed.
func exceptionDate(exc models.AvailabilityException, tutorTZ string) (string, bool) {
	raw := strings.TrimSpace(exc.Date)
	if raw == "" {
		return "", false
	}
	if _, err := time.Parse("2006-01-02", raw); err == nil {
		return raw, true
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return "", false
	}
	loc, err := time.LoadLocation(EffectiveTimezone(exc, tutorTZ))
	if err != nil {
		loc = time.UTC
	}
	return ts.In(loc).Format("2006-01-02"), true
}

// resolveDaySlots unions the weekly ranges for the day, then folds the
// date's adjustments over the working set. Addition may introduce slots
// no rule produced; subtraction may likewise remove them.
func resolveDaySlots(ranges []timeRange, adjustments []slotAdjustment, incrementMinutes int) []string {
	working := make(map[string]struct{})
	for _, r := range ranges {
		for _, slot := range GenerateSlots(r.start, r.end, incrementMinutes) {
			working[slot] = struct{}{}
		}
	}
	for _, adj := range adjustments {
		slots := GenerateSlots(adj.start, adj.end, incrementMinutes)
		switch adj.kind {
		case adjustmentAdd:
			for _, slot := range slots {
				working[slot] = struct{}{}
			}
		case adjustmentRemove:
			for _, slot := range slots {
				delete(working, slot)
			}
		}
	}
	resolved := make([]string, 0, len(working))
	for slot := range working {
		resolved = append(resolved, slot)
	}
	sort.Strings(resolved)
	return resolved
}
