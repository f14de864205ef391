// README: Planner service: request dispatch and parallel plan assembly.
package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"

	"wayfarer/internal/ai"
	"wayfarer/internal/config"
	"wayfarer/internal/logger"
	"wayfarer/internal/maps"
	"wayfarer/internal/modules/plans"
	"wayfarer/internal/prompt"
)

// Per-section generation parameters. The itinerary runs on the primary model
// with a token budget scaled by trip length; the auxiliary sections run on
// the fast model.
const (
	insightsTemp          = 0.7
	insightsTokens        = 1500
	itineraryTemp         = 0.8
	itineraryTokensPerDay = 500
	budgetTemp            = 0.5
	budgetTokens          = 500
	packingTemp           = 0.6
	packingTokens         = 600
)

const (
	defaultCallTimeout = 60 * time.Second
	breakerCooldown    = 30 * time.Second
	breakerTripAfter   = 3
)

var errNotJSON = errors.New("response was not valid JSON")

// QuotaCharger charges one plan generation against a user's allowance.
// Satisfied by quota.Service.
type QuotaCharger interface {
	Use(ctx context.Context, uid string) error
}

// PlanStore persists finished plans. Satisfied by plans.Service.
type PlanStore interface {
	Save(ctx context.Context, p *plans.Plan) error
}

// DestinationResolver geocodes a destination. Satisfied by maps.Resolver.
type DestinationResolver interface {
	Resolve(ctx context.Context, destination string) (*maps.ResolvedPlace, error)
}

// Service turns trip requests into raw itineraries and full plans.
type Service struct {
	provider  ai.Provider
	model     string
	fastModel string
	timeout   time.Duration

	quota    QuotaCharger
	plans    PlanStore
	resolver DestinationResolver
	cache    *sectionCache
	breaker  *gobreaker.CircuitBreaker
}

// Options wires the optional collaborators. A nil field disables that
// feature: no quota charge, no persistence, no geocoding, no caching.
type Options struct {
	Quota    QuotaCharger
	Plans    PlanStore
	Resolver DestinationResolver
	Cache    *redis.Client
}

func NewService(provider ai.Provider, aiCfg config.AIConfig, cfg config.PlannerConfig, opts Options) *Service {
	timeout := time.Duration(cfg.CallTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}
	fast := aiCfg.FastModel
	if fast == "" {
		fast = aiCfg.Model
	}
	return &Service{
		provider:  provider,
		model:     aiCfg.Model,
		fastModel: fast,
		timeout:   timeout,
		quota:     opts.Quota,
		plans:     opts.Plans,
		resolver:  opts.Resolver,
		cache:     newSectionCache(opts.Cache, time.Duration(cfg.CacheTTLHours)*time.Hour),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "ai-provider",
			MaxRequests: 1,
			Timeout:     breakerCooldown,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= breakerTripAfter
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warnf("circuit breaker %s: %s -> %s", name, from, to)
			},
		}),
	}
}

// Itinerary validates the request, builds the day-by-day prompt, and issues
// exactly one completion call. The provider's text is returned unchanged;
// nothing is parsed, cached, or persisted on this path.
func (s *Service) Itinerary(ctx context.Context, req TripRequest) (string, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return "", err
	}
	return s.complete(ctx, s.itineraryRequest(req, deriveFacts(req)))
}

// Insights returns the destination insights section on its own, served from
// the cache when possible. The payload is the model's JSON, verbatim.
func (s *Service) Insights(ctx context.Context, destination string) (json.RawMessage, error) {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return nil, fmt.Errorf("%w: destination is required", ErrInvalidInput)
	}
	text, err := s.section(ctx, "insights", true, s.insightsRequest(TripRequest{Destination: destination}))
	if err != nil {
		if errors.Is(err, ErrServiceUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	return json.RawMessage(text), nil
}

// GeneratePlan produces the full four-section plan for uid. Quota is charged
// once per plan before any provider call. The itinerary section is mandatory;
// insights, budget, and packing degrade to plan warnings when they fail.
func (s *Service) GeneratePlan(ctx context.Context, uid string, req TripRequest) (*plans.Plan, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	f := deriveFacts(req)
	if f.Days > longTripDays {
		logger.Warnf("long trip requested: %d days in %s", f.Days, req.Destination)
	}

	if s.quota != nil {
		if err := s.quota.Use(ctx, uid); err != nil {
			return nil, err
		}
	}

	plan := &plans.Plan{
		UID:         uid,
		Origin:      req.Origin,
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Days:        f.Days,
		Season:      f.Season,
		BudgetLevel: f.Level,
		Travelers:   req.Travelers,
		Preferences: req.Preferences,
	}

	if s.resolver != nil {
		if place, err := s.resolver.Resolve(ctx, req.Destination); err == nil {
			plan.Resolved = place
		} else {
			logger.Warnf("destination lookup failed for %q: %v", req.Destination, err)
		}
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		itinText string
		itinErr  error
	)
	warn := func(section string, err error) {
		logger.Warnf("%s section failed: %v", section, err)
		mu.Lock()
		plan.Warnings = append(plan.Warnings, section+" section unavailable")
		mu.Unlock()
	}

	wg.Add(4)
	go func() {
		defer wg.Done()
		text, err := s.complete(ctx, s.itineraryRequest(req, f))
		if err != nil {
			itinErr = err
			return
		}
		itinText = ai.StripFences(text)
	}()
	go func() {
		defer wg.Done()
		text, err := s.section(ctx, "insights", true, s.insightsRequest(req))
		if err != nil {
			warn("insights", err)
			return
		}
		mu.Lock()
		plan.Insights = json.RawMessage(text)
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		text, err := s.section(ctx, "budget", false, s.budgetRequest(req, f))
		if err != nil {
			warn("budget", err)
			return
		}
		var b plans.BudgetBreakdown
		if err := json.Unmarshal([]byte(text), &b); err != nil {
			warn("budget", err)
			return
		}
		mu.Lock()
		plan.Budget = &b
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		text, err := s.section(ctx, "packing", true, s.packingRequest(req, f))
		if err != nil {
			warn("packing", err)
			return
		}
		var list plans.PackingList
		if err := json.Unmarshal([]byte(text), &list); err != nil {
			warn("packing", err)
			return
		}
		mu.Lock()
		plan.Packing = list
		mu.Unlock()
	}()
	wg.Wait()

	if itinErr != nil {
		return nil, fmt.Errorf("itinerary generation failed: %w", itinErr)
	}
	if days, err := decodeItinerary(itinText); err != nil {
		logger.Warnf("itinerary response not decodable: %v", err)
		plan.RawItinerary = itinText
		plan.Warnings = append(plan.Warnings, "itinerary kept as raw text")
	} else {
		normalizeDates(days, f.Start)
		plan.Itinerary = days
	}

	if s.plans != nil {
		if err := s.plans.Save(ctx, plan); err != nil {
			logger.Warnf("plan save failed: %v", err)
			plan.Warnings = append(plan.Warnings, "plan could not be saved")
		}
	}
	return plan, nil
}

// complete sends one request through the circuit breaker with the per-call
// timeout applied. Every failure mode, an open breaker included, surfaces as
// ErrServiceUnavailable.
func (s *Service) complete(ctx context.Context, req ai.Request) (string, error) {
	out, err := s.breaker.Execute(func() (interface{}, error) {
		callCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		return s.provider.Complete(callCtx, req)
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	return out.(string), nil
}

// section runs one auxiliary completion. Cacheable sections are served from
// and written back to Redis keyed by the exact model + prompt pair. The
// returned text is fence-stripped, valid JSON.
func (s *Service) section(ctx context.Context, name string, cacheable bool, req ai.Request) (string, error) {
	var key string
	if cacheable {
		key = sectionKey(name, req.Model, req.Prompt)
		if text, ok := s.cache.get(ctx, key); ok {
			logger.Debugf("%s section served from cache", name)
			return text, nil
		}
	}
	text, err := s.complete(ctx, req)
	if err != nil {
		return "", err
	}
	text = ai.StripFences(text)
	if !json.Valid([]byte(text)) {
		return "", errNotJSON
	}
	if cacheable {
		s.cache.put(ctx, key, text)
	}
	return text, nil
}

func (s *Service) itineraryRequest(req TripRequest, f facts) ai.Request {
	return ai.Request{
		System:      prompt.ItinerarySystem,
		Prompt:      prompt.Itinerary(req.Destination, req.Origin, f.Days, req.Preferences, f.Level, req.StartDate),
		Model:       s.model,
		Temperature: itineraryTemp,
		MaxTokens:   itineraryTokensPerDay * f.Days,
		JSON:        true,
	}
}

func (s *Service) insightsRequest(req TripRequest) ai.Request {
	return ai.Request{
		System:      prompt.InsightsSystem,
		Prompt:      prompt.Insights(req.Destination),
		Model:       s.fastModel,
		Temperature: insightsTemp,
		MaxTokens:   insightsTokens,
		JSON:        true,
	}
}

func (s *Service) budgetRequest(req TripRequest, f facts) ai.Request {
	return ai.Request{
		Prompt:      prompt.Budget(req.Destination, f.Days, req.Travelers, f.Level),
		Model:       s.fastModel,
		Temperature: budgetTemp,
		MaxTokens:   budgetTokens,
		JSON:        true,
	}
}

func (s *Service) packingRequest(req TripRequest, f facts) ai.Request {
	return ai.Request{
		Prompt:      prompt.Packing(req.Destination, f.Days, f.Season, req.Preferences),
		Model:       s.fastModel,
		Temperature: packingTemp,
		MaxTokens:   packingTokens,
		JSON:        true,
	}
}

// Preview returns the exact prompt text the named section would send for
// req, without calling any provider. The empty section name means itinerary.
func Preview(req TripRequest, section string) (string, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return "", err
	}
	f := deriveFacts(req)
	switch section {
	case "", "itinerary":
		return prompt.Itinerary(req.Destination, req.Origin, f.Days, req.Preferences, f.Level, req.StartDate), nil
	case "insights":
		return prompt.Insights(req.Destination), nil
	case "budget":
		return prompt.Budget(req.Destination, f.Days, req.Travelers, f.Level), nil
	case "packing":
		return prompt.Packing(req.Destination, f.Days, f.Season, req.Preferences), nil
	}
	return "", fmt.Errorf("%w: unknown section %q", ErrInvalidInput, section)
}

// decodeItinerary accepts the shapes models actually produce for the day
// list: a bare array, {"itinerary": [...]}, or {"days": [...]}.
func decodeItinerary(text string) ([]plans.ItineraryDay, error) {
	raw := []byte(text)
	var days []plans.ItineraryDay
	if err := json.Unmarshal(raw, &days); err == nil && len(days) > 0 {
		return days, nil
	}
	var wrapper struct {
		Itinerary []plans.ItineraryDay `json:"itinerary"`
		Days      []plans.ItineraryDay `json:"days"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, err
	}
	if len(wrapper.Itinerary) > 0 {
		return wrapper.Itinerary, nil
	}
	if len(wrapper.Days) > 0 {
		return wrapper.Days, nil
	}
	return nil, errors.New("no day entries found")
}

// normalizeDates forces day N onto start+(N-1) and recomputes the weekday,
// correcting the date drift models produce on longer trips.
func normalizeDates(days []plans.ItineraryDay, start time.Time) {
	for i := range days {
		d := start.AddDate(0, 0, i)
		days[i].Day = i + 1
		days[i].Date = d.Format(DateLayout)
		days[i].DayOfWeek = d.Weekday().String()
	}
}
