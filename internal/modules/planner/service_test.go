package planner

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"wayfarer/internal/ai"
	"wayfarer/internal/config"
	"wayfarer/internal/maps"
	"wayfarer/internal/modules/plans"
	"wayfarer/internal/modules/quota"
)

// fakeProvider records every request and scripts replies per section.
type fakeProvider struct {
	mu       sync.Mutex
	requests []ai.Request
	reply    func(req ai.Request) (string, error)
}

func (f *fakeProvider) Complete(_ context.Context, req ai.Request) (string, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	if f.reply == nil {
		return "{}", nil
	}
	return f.reply(req)
}

func (f *fakeProvider) Name() string { return "fake" }
func (f *fakeProvider) Close() error { return nil }

func (f *fakeProvider) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeProvider) request(i int) ai.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[i]
}

// sectionOf recognizes a request by its prompt opening so scripted replies
// can answer each section differently.
func sectionOf(req ai.Request) string {
	switch {
	case strings.HasPrefix(req.Prompt, "Create a detailed"):
		return "itinerary"
	case strings.HasPrefix(req.Prompt, "Provide detailed travel insights"):
		return "insights"
	case strings.HasPrefix(req.Prompt, "Create detailed budget"):
		return "budget"
	case strings.HasPrefix(req.Prompt, "Create comprehensive packing"):
		return "packing"
	}
	return "unknown"
}

type fakeQuota struct {
	mu   sync.Mutex
	used []string
	err  error
}

func (f *fakeQuota) Use(_ context.Context, uid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.used = append(f.used, uid)
	return nil
}

type fakePlanStore struct {
	mu    sync.Mutex
	saved []*plans.Plan
	err   error
}

func (f *fakePlanStore) Save(_ context.Context, p *plans.Plan) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	p.ID = "11111111-1111-1111-1111-111111111111"
	f.saved = append(f.saved, p)
	return nil
}

type fakeResolver struct {
	place *maps.ResolvedPlace
	err   error
}

func (f *fakeResolver) Resolve(context.Context, string) (*maps.ResolvedPlace, error) {
	return f.place, f.err
}

func newTestService(p ai.Provider, opts Options) *Service {
	aiCfg := config.AIConfig{Provider: "openai", Model: "primary", FastModel: "fast"}
	return NewService(p, aiCfg, config.PlannerConfig{CallTimeoutSeconds: 5, CacheTTLHours: 1}, opts)
}

func TestItineraryReturnsProviderTextUnchanged(t *testing.T) {
	const completion = "Day 1: Alfama at dawn.\n```json\n{\"kept\": true}\n```\n"
	fake := &fakeProvider{reply: func(ai.Request) (string, error) { return completion, nil }}
	svc := newTestService(fake, Options{})

	got, err := svc.Itinerary(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Itinerary: %v", err)
	}
	if got != completion {
		t.Fatalf("completion altered:\n got %q\nwant %q", got, completion)
	}
	if fake.calls() != 1 {
		t.Fatalf("want exactly one provider call, got %d", fake.calls())
	}
}

func TestItineraryInvalidInputBeforeDispatch(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*TripRequest)
	}{
		{"blank destination", func(r *TripRequest) { r.Destination = " " }},
		{"end before start", func(r *TripRequest) { r.StartDate, r.EndDate = r.EndDate, r.StartDate }},
		{"malformed date", func(r *TripRequest) { r.StartDate = "May 1st" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakeProvider{}
			svc := newTestService(fake, Options{})
			req := validRequest()
			tc.mutate(&req)

			_, err := svc.Itinerary(context.Background(), req)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("want ErrInvalidInput, got %v", err)
			}
			if fake.calls() != 0 {
				t.Fatalf("provider was called for invalid input")
			}
		})
	}
}

func TestItineraryProviderFailure(t *testing.T) {
	fake := &fakeProvider{reply: func(ai.Request) (string, error) {
		return "", errors.New("connection refused")
	}}
	svc := newTestService(fake, Options{})

	_, err := svc.Itinerary(context.Background(), validRequest())
	if !errors.Is(err, ErrServiceUnavailable) {
		t.Fatalf("want ErrServiceUnavailable, got %v", err)
	}
	if fake.calls() != 1 {
		t.Fatalf("want one attempt, got %d", fake.calls())
	}
}

func TestItineraryDeterministicRequests(t *testing.T) {
	fake := &fakeProvider{reply: func(ai.Request) (string, error) { return "ok", nil }}
	svc := newTestService(fake, Options{})

	if _, err := svc.Itinerary(context.Background(), validRequest()); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := svc.Itinerary(context.Background(), validRequest()); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if fake.request(0) != fake.request(1) {
		t.Fatalf("identical trip requests produced different provider requests:\n%+v\n%+v",
			fake.request(0), fake.request(1))
	}
}

func TestItineraryRequestShape(t *testing.T) {
	fake := &fakeProvider{reply: func(ai.Request) (string, error) { return "ok", nil }}
	svc := newTestService(fake, Options{})

	if _, err := svc.Itinerary(context.Background(), validRequest()); err != nil {
		t.Fatalf("Itinerary: %v", err)
	}
	req := fake.request(0)
	if req.Model != "primary" {
		t.Errorf("model = %q, want primary", req.Model)
	}
	if req.MaxTokens != 3*itineraryTokensPerDay {
		t.Errorf("max tokens = %d, want %d for a 3-day trip", req.MaxTokens, 3*itineraryTokensPerDay)
	}
	if req.Temperature != itineraryTemp {
		t.Errorf("temperature = %v", req.Temperature)
	}
	if !req.JSON {
		t.Errorf("JSON mode not requested")
	}
	if !strings.Contains(req.Prompt, "Lisbon, Portugal") {
		t.Errorf("prompt missing destination:\n%s", req.Prompt)
	}
	if req.System == "" {
		t.Errorf("itinerary request should carry a system prompt")
	}
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	fake := &fakeProvider{reply: func(ai.Request) (string, error) {
		return "", errors.New("upstream down")
	}}
	svc := newTestService(fake, Options{})
	ctx := context.Background()

	for i := 0; i < breakerTripAfter; i++ {
		if _, err := svc.Itinerary(ctx, validRequest()); !errors.Is(err, ErrServiceUnavailable) {
			t.Fatalf("call %d: want ErrServiceUnavailable, got %v", i+1, err)
		}
	}
	if fake.calls() != breakerTripAfter {
		t.Fatalf("want %d provider attempts, got %d", breakerTripAfter, fake.calls())
	}

	// Breaker is open now: the next call must fail fast without dispatching.
	if _, err := svc.Itinerary(ctx, validRequest()); !errors.Is(err, ErrServiceUnavailable) {
		t.Fatalf("open breaker: want ErrServiceUnavailable, got %v", err)
	}
	if fake.calls() != breakerTripAfter {
		t.Fatalf("provider reached through an open breaker: %d calls", fake.calls())
	}
}

func TestGeneratePlanFullPlan(t *testing.T) {
	fake := &fakeProvider{reply: func(req ai.Request) (string, error) {
		switch sectionOf(req) {
		case "itinerary":
			// Wrong day numbers and dates on purpose: generation drifts,
			// normalization must repair them.
			return `[
				{"day":9,"date":"2030-01-01","title":"Arrival","morning":[{"time":"9:00 AM","activity":"Castelo de São Jorge"}]},
				{"day":8,"date":"2030-01-01","title":"Museums"},
				{"day":7,"date":"2030-01-01","title":"Coast"}
			]`, nil
		case "insights":
			return "```json\n{\"description\":\"Hilly, sunlit, tiled.\"}\n```", nil
		case "budget":
			return `{"accommodation":{"per_night":120,"total_nights":3,"total":360},"total_per_person":900}`, nil
		case "packing":
			return `{"documents":["passport"],"clothing":["light jacket"]}`, nil
		}
		return "", errors.New("unrecognized request")
	}}
	store := &fakePlanStore{}
	charged := &fakeQuota{}
	resolver := &fakeResolver{place: &maps.ResolvedPlace{Name: "Lisbon, Portugal", Country: "Portugal", Lat: 38.72, Lng: -9.14}}
	svc := newTestService(fake, Options{Quota: charged, Plans: store, Resolver: resolver})

	plan, err := svc.GeneratePlan(context.Background(), "uid-1", validRequest())
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	if fake.calls() != 4 {
		t.Fatalf("want 4 section calls, got %d", fake.calls())
	}
	if len(charged.used) != 1 || charged.used[0] != "uid-1" {
		t.Fatalf("quota charges = %v, want one for uid-1", charged.used)
	}
	if len(plan.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", plan.Warnings)
	}

	if plan.Days != 3 || plan.Season != "spring" || plan.BudgetLevel != LevelMidRange || plan.Travelers != 2 {
		t.Errorf("derived facts wrong: days=%d season=%s level=%s travelers=%d",
			plan.Days, plan.Season, plan.BudgetLevel, plan.Travelers)
	}
	if plan.Resolved == nil || plan.Resolved.Country != "Portugal" {
		t.Errorf("resolved place not attached: %+v", plan.Resolved)
	}

	if len(plan.Itinerary) != 3 {
		t.Fatalf("want 3 itinerary days, got %d", len(plan.Itinerary))
	}
	wantDates := []string{"2026-05-01", "2026-05-02", "2026-05-03"}
	for i, day := range plan.Itinerary {
		if day.Day != i+1 {
			t.Errorf("day %d numbered %d", i+1, day.Day)
		}
		if day.Date != wantDates[i] {
			t.Errorf("day %d date = %s, want %s", i+1, day.Date, wantDates[i])
		}
	}
	if plan.Itinerary[0].DayOfWeek != "Friday" {
		t.Errorf("day 1 weekday = %s, want Friday", plan.Itinerary[0].DayOfWeek)
	}
	if plan.Itinerary[0].Title != "Arrival" || len(plan.Itinerary[0].Morning) != 1 {
		t.Errorf("day content lost in normalization: %+v", plan.Itinerary[0])
	}

	if string(plan.Insights) != `{"description":"Hilly, sunlit, tiled."}` {
		t.Errorf("insights not fence-stripped raw JSON: %s", plan.Insights)
	}
	if plan.Budget == nil || plan.Budget.Accommodation.PerNight != 120 {
		t.Errorf("budget not decoded: %+v", plan.Budget)
	}
	if got := plan.Packing["documents"]; len(got) != 1 || got[0] != "passport" {
		t.Errorf("packing not decoded: %+v", plan.Packing)
	}

	if len(store.saved) != 1 || plan.ID == "" {
		t.Errorf("plan not persisted: saved=%d id=%q", len(store.saved), plan.ID)
	}
}

func TestGeneratePlanQuotaExhausted(t *testing.T) {
	fake := &fakeProvider{}
	svc := newTestService(fake, Options{Quota: &fakeQuota{err: quota.ErrQuotaExhausted}})

	_, err := svc.GeneratePlan(context.Background(), "uid-1", validRequest())
	if !errors.Is(err, quota.ErrQuotaExhausted) {
		t.Fatalf("want ErrQuotaExhausted, got %v", err)
	}
	if fake.calls() != 0 {
		t.Fatalf("provider called after quota refusal")
	}
}

func TestGeneratePlanAuxiliarySectionsDegrade(t *testing.T) {
	fake := &fakeProvider{reply: func(req ai.Request) (string, error) {
		if sectionOf(req) == "itinerary" {
			return `[{"day":1,"title":"Arrival"}]`, nil
		}
		return "absolutely not json", nil
	}}
	svc := newTestService(fake, Options{})

	plan, err := svc.GeneratePlan(context.Background(), "uid-1", validRequest())
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	if fake.calls() != 4 {
		t.Fatalf("want 4 calls, got %d", fake.calls())
	}
	if len(plan.Itinerary) != 1 {
		t.Fatalf("itinerary lost: %+v", plan.Itinerary)
	}
	if plan.Insights != nil || plan.Budget != nil || plan.Packing != nil {
		t.Errorf("failed sections should be omitted: %+v", plan)
	}
	if len(plan.Warnings) != 3 {
		t.Fatalf("want 3 warnings, got %v", plan.Warnings)
	}
	for _, section := range []string{"insights", "budget", "packing"} {
		found := false
		for _, w := range plan.Warnings {
			if strings.HasPrefix(w, section) {
				found = true
			}
		}
		if !found {
			t.Errorf("missing warning for %s: %v", section, plan.Warnings)
		}
	}
}

func TestGeneratePlanItineraryFailureFails(t *testing.T) {
	fake := &fakeProvider{reply: func(req ai.Request) (string, error) {
		if sectionOf(req) == "itinerary" {
			return "", errors.New("rate limited")
		}
		return "{}", nil
	}}
	svc := newTestService(fake, Options{})

	_, err := svc.GeneratePlan(context.Background(), "uid-1", validRequest())
	if !errors.Is(err, ErrServiceUnavailable) {
		t.Fatalf("want ErrServiceUnavailable, got %v", err)
	}
}

func TestGeneratePlanUndecodableItineraryKeptRaw(t *testing.T) {
	const prose = "Day 1: wander freely and eat custard tarts."
	fake := &fakeProvider{reply: func(req ai.Request) (string, error) {
		if sectionOf(req) == "itinerary" {
			return prose, nil
		}
		return "{}", nil
	}}
	svc := newTestService(fake, Options{})

	plan, err := svc.GeneratePlan(context.Background(), "uid-1", validRequest())
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	if plan.RawItinerary != prose {
		t.Errorf("raw itinerary not preserved: %q", plan.RawItinerary)
	}
	if len(plan.Itinerary) != 0 {
		t.Errorf("no structured days expected: %+v", plan.Itinerary)
	}
	found := false
	for _, w := range plan.Warnings {
		if strings.Contains(w, "raw text") {
			found = true
		}
	}
	if !found {
		t.Errorf("missing raw-text warning: %v", plan.Warnings)
	}
}

func TestGeneratePlanSaveFailureWarns(t *testing.T) {
	fake := &fakeProvider{reply: func(req ai.Request) (string, error) {
		if sectionOf(req) == "itinerary" {
			return `[{"day":1}]`, nil
		}
		return "{}", nil
	}}
	svc := newTestService(fake, Options{Plans: &fakePlanStore{err: errors.New("db down")}})

	plan, err := svc.GeneratePlan(context.Background(), "uid-1", validRequest())
	if err != nil {
		t.Fatalf("a save failure must not fail the plan: %v", err)
	}
	if plan.ID != "" {
		t.Errorf("unsaved plan should have no id, got %q", plan.ID)
	}
	found := false
	for _, w := range plan.Warnings {
		if strings.Contains(w, "saved") {
			found = true
		}
	}
	if !found {
		t.Errorf("missing save warning: %v", plan.Warnings)
	}
}

func TestInsightsStandalone(t *testing.T) {
	fake := &fakeProvider{reply: func(ai.Request) (string, error) {
		return "```json\n{\"description\":\"Seven hills.\"}\n```", nil
	}}
	svc := newTestService(fake, Options{})

	raw, err := svc.Insights(context.Background(), "Lisbon")
	if err != nil {
		t.Fatalf("Insights: %v", err)
	}
	if string(raw) != `{"description":"Seven hills."}` {
		t.Fatalf("unexpected payload: %s", raw)
	}
	req := fake.request(0)
	if req.Model != "fast" || !req.JSON {
		t.Errorf("insights should use the fast model in JSON mode: %+v", req)
	}
}

func TestInsightsBlankDestination(t *testing.T) {
	fake := &fakeProvider{}
	svc := newTestService(fake, Options{})

	_, err := svc.Insights(context.Background(), "  ")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
	if fake.calls() != 0 {
		t.Fatalf("provider called for blank destination")
	}
}

func TestInsightsGarbageIsServiceUnavailable(t *testing.T) {
	fake := &fakeProvider{reply: func(ai.Request) (string, error) {
		return "not json at all", nil
	}}
	svc := newTestService(fake, Options{})

	_, err := svc.Insights(context.Background(), "Lisbon")
	if !errors.Is(err, ErrServiceUnavailable) {
		t.Fatalf("want ErrServiceUnavailable, got %v", err)
	}
}

func TestGeneratePlanResolverFailureIsSoft(t *testing.T) {
	fake := &fakeProvider{reply: func(req ai.Request) (string, error) {
		if sectionOf(req) == "itinerary" {
			return `[{"day":1}]`, nil
		}
		return "{}", nil
	}}
	svc := newTestService(fake, Options{Resolver: &fakeResolver{err: errors.New("quota exceeded")}})

	plan, err := svc.GeneratePlan(context.Background(), "uid-1", validRequest())
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	if plan.Resolved != nil {
		t.Errorf("resolved place should be empty on failure")
	}
	if len(plan.Warnings) != 0 {
		t.Errorf("geocoding failure should not warn on the plan: %v", plan.Warnings)
	}
}

func TestPreviewMatchesDispatchedPrompt(t *testing.T) {
	fake := &fakeProvider{}
	svc := newTestService(fake, Options{})

	req := validRequest()
	if _, err := svc.Itinerary(context.Background(), req); err != nil {
		t.Fatalf("Itinerary: %v", err)
	}
	preview, err := Preview(validRequest(), "itinerary")
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if got := fake.request(0).Prompt; got != preview {
		t.Errorf("preview diverges from dispatched prompt:\npreview: %q\nsent:    %q", preview, got)
	}
}

func TestPreviewSections(t *testing.T) {
	for _, section := range []string{"", "itinerary", "insights", "budget", "packing"} {
		text, err := Preview(validRequest(), section)
		if err != nil {
			t.Fatalf("Preview(%q): %v", section, err)
		}
		if !strings.Contains(text, "Lisbon, Portugal") {
			t.Errorf("Preview(%q) is missing the destination", section)
		}
	}
	if _, err := Preview(validRequest(), "weather"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("unknown section should be invalid input, got %v", err)
	}
}
