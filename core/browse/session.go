// ABOUTME: Browse session derives the paginated, detail-enriched view of a search state
// ABOUTME: Superseded fetches are canceled and tagged by generation so stale results never land

package browse

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"recipe-finder-api/core/domain"
	apperrors "recipe-finder-api/core/errors"
	"recipe-finder-api/core/interfaces"
	"recipe-finder-api/core/meals"
)

// Source provides working sets, details and reference lists.
// meals.Service serves it in-process and apiclient.Client over HTTP.
type Source interface {
	BaseMeals(ctx context.Context, state domain.SearchState) domain.Result[[]domain.MealSummary]
	Meal(ctx context.Context, id string) domain.Result[*domain.MealDetail]
	Categories(ctx context.Context) domain.Result[[]domain.Category]
	Areas(ctx context.Context) domain.Result[[]domain.Area]
}

// Defaults
const (
	DefaultDetailTTL        = 5 * time.Minute
	DefaultReferenceTTL     = 10 * time.Minute
	DefaultMaxDetailEntries = 1024
	detailCallTimeout       = 30 * time.Second
)

// Options tunes a Session. Zero values use the defaults.
type Options struct {
	PageSize         int
	DetailTTL        time.Duration
	ReferenceTTL     time.Duration
	MaxDetailEntries int
	MaxFanOut        int

	// SkipDetails disables per-page detail enrichment
	SkipDetails bool

	Logger interfaces.Logger

	// Clock is used for reference list freshness
	Clock func() time.Time
}

func (o Options) withDefaults() Options {
	if o.PageSize < 1 {
		o.PageSize = meals.DefaultPageSize
	}
	if o.DetailTTL <= 0 {
		o.DetailTTL = DefaultDetailTTL
	}
	if o.ReferenceTTL <= 0 {
		o.ReferenceTTL = DefaultReferenceTTL
	}
	if o.MaxDetailEntries < 1 {
		o.MaxDetailEntries = DefaultMaxDetailEntries
	}
	if o.MaxFanOut < 1 {
		o.MaxFanOut = meals.DefaultMaxFanOut
	}
	if o.Logger == nil {
		o.Logger = interfaces.NopLogger{}
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	return o
}

// View is a snapshot of everything a list screen renders
type View struct {
	State domain.SearchState

	// Meals is the current page of the working set
	Meals      []domain.MealSummary
	Page       int
	TotalPages int

	// Total is the size of the working set
	Total int

	// Details holds category/area tags for the current page's resolved meals
	Details map[string]domain.MealTags

	IsLoading      bool
	MealsLoading   bool
	DetailsLoading bool

	// Error is the working-set failure; detail failures are never reported
	Error *apperrors.UpstreamError

	Categories     []domain.Category
	Areas          []domain.Area
	FiltersLoading bool

	Generation uint64
}

// Session owns the data of one list screen. Methods are safe for concurrent use.
type Session struct {
	source  Source
	opts    Options
	details *expirable.LRU[string, domain.MealTags]
	group   singleflight.Group

	baseCtx    context.Context
	baseCancel context.CancelFunc
	wg         sync.WaitGroup
	pubMu      sync.Mutex

	mu             sync.Mutex
	closed         bool
	hasState       bool
	state          domain.SearchState
	generation     uint64
	cancel         context.CancelFunc
	working        []domain.MealSummary
	workingOK      bool
	err            *apperrors.UpstreamError
	mealsLoading   bool
	detailsLoading bool
	categories     []domain.Category
	areas          []domain.Area
	refFetchedAt   time.Time
	filtersLoading bool
	changed        chan struct{}
	nextSubID      int
	subscribers    map[int]func(View)
}

// NewSession creates a session reading from source
func NewSession(source Source, opts Options) *Session {
	opts = opts.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		source:      source,
		opts:        opts,
		details:     expirable.NewLRU[string, domain.MealTags](opts.MaxDetailEntries, nil, opts.DetailTTL),
		baseCtx:     ctx,
		baseCancel:  cancel,
		state:       domain.DefaultSearchState(),
		categories:  []domain.Category{},
		areas:       []domain.Area{},
		changed:     make(chan struct{}),
		subscribers: make(map[int]func(View)),
	}
}

// Apply makes state current. Work for the previous state is canceled; a
// page-only change reuses the loaded working set.
func (s *Session) Apply(state domain.SearchState) {
	s.mu.Lock()
	if s.closed || (s.hasState && state.Equal(s.state)) {
		s.mu.Unlock()
		return
	}

	reuse := s.hasState && s.workingOK && !s.mealsLoading && state.SameWorkingSet(s.state)
	s.hasState = true
	s.state = state.Clone()
	ctx, gen := s.restartLocked()

	if reuse {
		s.startDetailsLocked(ctx, gen)
	} else {
		s.startWorkingLocked(ctx, gen)
	}
	s.ensureReferenceLocked()
	s.signalLocked()
	s.mu.Unlock()

	s.publish()
}

// Retry re-issues the current fetch plan
func (s *Session) Retry() {
	s.mu.Lock()
	if s.closed || !s.hasState {
		s.mu.Unlock()
		return
	}

	ctx, gen := s.restartLocked()
	s.startWorkingLocked(ctx, gen)
	s.ensureReferenceLocked()
	s.signalLocked()
	s.mu.Unlock()

	s.publish()
}

// restartLocked cancels in-flight work and opens a new generation
func (s *Session) restartLocked() (context.Context, uint64) {
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(s.baseCtx)
	s.cancel = cancel
	s.generation++
	return ctx, s.generation
}

func (s *Session) startWorkingLocked(ctx context.Context, gen uint64) {
	s.working = nil
	s.workingOK = false
	s.err = nil
	s.mealsLoading = true
	s.detailsLoading = false
	state := s.state.Clone()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		result := s.source.BaseMeals(ctx, state)

		s.mu.Lock()
		if gen != s.generation || result.Aborted() {
			s.mu.Unlock()
			return
		}
		s.mealsLoading = false
		if result.OK {
			s.working = result.Data
			s.workingOK = true
			s.startDetailsLocked(ctx, gen)
		} else {
			s.err = result.Err
			if s.err == nil {
				s.err = apperrors.Network(nil)
			}
			s.opts.Logger.Warn("Working set fetch failed", map[string]interface{}{
				"code":  s.err.Code,
				"error": s.err.Message,
			})
		}
		s.signalLocked()
		s.mu.Unlock()

		s.publish()
	}()
}

// startDetailsLocked fetches details for the current page's unresolved ids
func (s *Session) startDetailsLocked(ctx context.Context, gen uint64) {
	s.detailsLoading = false
	if s.opts.SkipDetails {
		return
	}

	page := meals.Paginate(s.working, s.state.Page, s.opts.PageSize)
	missing := make([]string, 0, len(page.Items))
	for _, meal := range page.Items {
		if _, ok := s.details.Peek(meal.ID); !ok {
			missing = append(missing, meal.ID)
		}
	}
	if len(missing) == 0 {
		return
	}

	s.detailsLoading = true
	state := s.state.Clone()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		g := new(errgroup.Group)
		g.SetLimit(s.opts.MaxFanOut)
		for _, id := range missing {
			id := id
			// A superseded generation queues no further lookups
			if ctx.Err() != nil {
				break
			}
			g.Go(func() error {
				if _, ok := s.fetchDetail(ctx, id); ok {
					s.mu.Lock()
					current := gen == s.generation
					if current {
						s.signalLocked()
					}
					s.mu.Unlock()
					if current {
						s.publish()
					}
				}
				return nil
			})
		}
		_ = g.Wait()

		s.mu.Lock()
		if gen != s.generation {
			s.mu.Unlock()
			return
		}
		s.detailsLoading = false
		s.checkFiltersLocked(page.Items, state)
		s.signalLocked()
		s.mu.Unlock()

		s.publish()
	}()
}

// fetchDetail coalesces lookups of the same id across generations. The
// shared call lives until Close and stores its own result, so a lookup
// started by a superseded generation still fills the freshness window.
func (s *Session) fetchDetail(ctx context.Context, id string) (domain.MealTags, bool) {
	if ctx.Err() != nil {
		return domain.MealTags{}, false
	}

	ch := s.group.DoChan(id, func() (interface{}, error) {
		callCtx, cancel := context.WithTimeout(s.baseCtx, detailCallTimeout)
		defer cancel()
		result := s.source.Meal(callCtx, id)
		if result.OK && result.Data != nil {
			s.details.Add(id, result.Data.TagsView())
		}
		return result, nil
	})

	var result domain.Result[*domain.MealDetail]
	select {
	case <-ctx.Done():
		return domain.MealTags{}, false
	case res := <-ch:
		result = res.Val.(domain.Result[*domain.MealDetail])
	}

	if !result.OK {
		if !result.Aborted() {
			s.opts.Logger.Debug("Detail lookup failed", map[string]interface{}{
				"id":    id,
				"error": result.Error().Error(),
			})
		}
		return domain.MealTags{}, false
	}
	if result.Data == nil {
		return domain.MealTags{}, false
	}
	return result.Data.TagsView(), true
}

// checkFiltersLocked compares resolved details with the active filters.
// The upstream filter calls already narrowed the working set; a mismatch
// only means the catalog's filter and lookup data disagree.
func (s *Session) checkFiltersLocked(items []domain.MealSummary, state domain.SearchState) {
	if state.Search != "" || !state.HasFilters() {
		return
	}

	resolved := make(map[string]domain.MealTags, len(items))
	for _, meal := range items {
		if tags, ok := s.details.Peek(meal.ID); ok {
			resolved[meal.ID] = tags
		}
	}
	matching := meals.FilterMeals(items, resolved, state.Categories, state.Areas)
	if len(matching) != len(resolved) {
		s.opts.Logger.Warn("Resolved details disagree with active filters", map[string]interface{}{
			"resolved": len(resolved),
			"matching": len(matching),
		})
	}
}

// ensureReferenceLocked refreshes categories and areas once they are stale
func (s *Session) ensureReferenceLocked() {
	if s.filtersLoading {
		return
	}
	if !s.refFetchedAt.IsZero() && s.opts.Clock().Sub(s.refFetchedAt) < s.opts.ReferenceTTL {
		return
	}

	s.filtersLoading = true
	ctx := s.baseCtx

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		var categories domain.Result[[]domain.Category]
		var areas domain.Result[[]domain.Area]
		var g errgroup.Group
		g.Go(func() error {
			categories = s.source.Categories(ctx)
			return nil
		})
		g.Go(func() error {
			areas = s.source.Areas(ctx)
			return nil
		})
		_ = g.Wait()

		s.mu.Lock()
		s.filtersLoading = false
		if categories.OK {
			s.categories = categories.Data
		}
		if areas.OK {
			s.areas = areas.Data
		}
		if categories.OK && areas.OK {
			s.refFetchedAt = s.opts.Clock()
		} else if ctx.Err() == nil {
			s.opts.Logger.Warn("Reference list fetch failed", map[string]interface{}{
				"categories_ok": categories.OK,
				"areas_ok":      areas.OK,
			})
		}
		s.signalLocked()
		s.mu.Unlock()

		s.publish()
	}()
}

// View returns the current snapshot
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Session) viewLocked() View {
	page := meals.Paginate(s.working, s.state.Page, s.opts.PageSize)

	details := make(map[string]domain.MealTags, len(page.Items))
	for _, meal := range page.Items {
		if tags, ok := s.details.Peek(meal.ID); ok {
			details[meal.ID] = tags
		}
	}

	return View{
		State:          s.state.Clone(),
		Meals:          page.Items,
		Page:           page.Page,
		TotalPages:     page.TotalPages,
		Total:          len(s.working),
		Details:        details,
		IsLoading:      s.mealsLoading || s.detailsLoading,
		MealsLoading:   s.mealsLoading,
		DetailsLoading: s.detailsLoading,
		Error:          s.err,
		Categories:     append([]domain.Category{}, s.categories...),
		Areas:          append([]domain.Area{}, s.areas...),
		FiltersLoading: s.filtersLoading,
		Generation:     s.generation,
	}
}

// Subscribe registers fn to receive a View after every change. Deliveries
// are serialized and each one is at least as recent as the previous. fn must
// not call Apply, Retry or Close. The returned func unregisters fn.
func (s *Session) Subscribe(fn func(View)) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// Wait blocks until nothing is loading or ctx is done
func (s *Session) Wait(ctx context.Context) error {
	for {
		s.mu.Lock()
		idle := !s.mealsLoading && !s.detailsLoading && !s.filtersLoading
		changed := s.changed
		s.mu.Unlock()

		if idle {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-changed:
		}
	}
}

// Close cancels all work and waits for background goroutines to exit
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.cancel != nil {
		s.cancel()
	}
	s.baseCancel()
	s.mu.Unlock()

	s.wg.Wait()

	s.mu.Lock()
	s.mealsLoading = false
	s.detailsLoading = false
	s.filtersLoading = false
	s.signalLocked()
	s.mu.Unlock()
}

func (s *Session) signalLocked() {
	close(s.changed)
	s.changed = make(chan struct{})
}

// publish snapshots and delivers under pubMu so views reach subscribers in order
func (s *Session) publish() {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	s.mu.Lock()
	if len(s.subscribers) == 0 {
		s.mu.Unlock()
		return
	}
	view := s.viewLocked()
	subs := make([]func(View), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(view)
	}
}
