package app_test

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/project-caesar00/caesar-elo/internal/domain"
)

// ---- fakes ----

// fakeWebsiteRepo is an in-memory WebsiteRepository good enough for the
// service tests; the real SQL behavior lives in the integration suite.
type fakeWebsiteRepo struct {
	nextID      int64
	sites       map[int64]*domain.Website
	grades      map[int64]*domain.WebsiteGrade
	comparisons []domain.Comparison

	createErr error
}

func newFakeWebsiteRepo(seed ...domain.Website) *fakeWebsiteRepo {
	f := &fakeWebsiteRepo{
		sites:  map[int64]*domain.Website{},
		grades: map[int64]*domain.WebsiteGrade{},
	}
	for _, w := range seed {
		cp := w
		if cp.ID == 0 {
			f.nextID++
			cp.ID = f.nextID
		} else if cp.ID > f.nextID {
			f.nextID = cp.ID
		}
		f.sites[cp.ID] = &cp
	}
	return f
}

func (f *fakeWebsiteRepo) CreateWebsite(ctx context.Context, w domain.Website) (domain.Website, error) {
	if f.createErr != nil {
		return domain.Website{}, f.createErr
	}
	for _, s := range f.sites {
		if s.URL == w.URL {
			return domain.Website{}, fmt.Errorf("url %s: %w", w.URL, domain.ErrDuplicateURL)
		}
	}
	f.nextID++
	w.ID = f.nextID
	w.CreatedAt = time.Now()
	cp := w
	f.sites[w.ID] = &cp
	return w, nil
}

func (f *fakeWebsiteRepo) UpsertGrade(ctx context.Context, websiteID int64, in domain.GradeInput) (domain.WebsiteGrade, error) {
	w, ok := f.sites[websiteID]
	if !ok {
		return domain.WebsiteGrade{}, domain.ErrNotFound
	}
	g := f.grades[websiteID]
	if g == nil {
		g = &domain.WebsiteGrade{ID: websiteID, WebsiteID: websiteID}
		f.grades[websiteID] = g
	}
	// mirror the SQL COALESCE: nil input keeps the stored value
	coalesce(&g.OverallAesthetic, in.OverallAesthetic)
	coalesce(&g.ColorHarmony, in.ColorHarmony)
	coalesce(&g.Typography, in.Typography)
	coalesce(&g.LayoutSpacing, in.LayoutSpacing)
	coalesce(&g.Imagery, in.Imagery)
	coalesce(&g.VisualHierarchy, in.VisualHierarchy)
	coalesce(&g.MobileResponsive, in.MobileResponsive)
	if in.NotesJSON != nil {
		g.NotesJSON = in.NotesJSON
	}
	if in.GeneralComment != nil {
		g.GeneralComment = in.GeneralComment
	}
	now := time.Now()
	w.Graded = true
	w.DesignTemplate = in.DesignTemplate
	w.GoodLead = in.GoodLead
	w.GradedAt = &now
	return *g, nil
}

func (f *fakeWebsiteRepo) MarkGraded(ctx context.Context, websiteID int64) error {
	w, ok := f.sites[websiteID]
	if !ok {
		return domain.ErrNotFound
	}
	now := time.Now()
	w.Graded = true
	w.GradedAt = &now
	return nil
}

func (f *fakeWebsiteRepo) RecordComparison(ctx context.Context, a, b domain.Website, c domain.Comparison) (domain.Comparison, error) {
	if _, ok := f.sites[a.ID]; !ok {
		return domain.Comparison{}, domain.ErrNotFound
	}
	if _, ok := f.sites[b.ID]; !ok {
		return domain.Comparison{}, domain.ErrNotFound
	}
	ca, cb := a, b
	f.sites[a.ID] = &ca
	f.sites[b.ID] = &cb
	c.ID = int64(len(f.comparisons) + 1)
	c.CreatedAt = time.Now()
	f.comparisons = append(f.comparisons, c)
	return c, nil
}

func (f *fakeWebsiteRepo) GetWebsite(ctx context.Context, id int64) (domain.Website, error) {
	w, ok := f.sites[id]
	if !ok {
		return domain.Website{}, domain.ErrNotFound
	}
	return *w, nil
}

func (f *fakeWebsiteRepo) GetGrade(ctx context.Context, websiteID int64) (*domain.WebsiteGrade, error) {
	g, ok := f.grades[websiteID]
	if !ok {
		return nil, nil
	}
	cp := *g
	return &cp, nil
}

func (f *fakeWebsiteRepo) ListWebsites(ctx context.Context, q domain.WebsitesQuery) ([]domain.Website, error) {
	var out []domain.Website
	for _, w := range f.ordered() {
		if q.Graded != nil && w.Graded != *q.Graded {
			continue
		}
		if q.DesignTemplate != nil && w.DesignTemplate != *q.DesignTemplate {
			continue
		}
		if q.GoodLead != nil && w.GoodLead != *q.GoodLead {
			continue
		}
		out = append(out, w)
	}
	if q.Offset > 0 && q.Offset < len(out) {
		out = out[q.Offset:]
	} else if q.Offset >= len(out) {
		out = nil
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (f *fakeWebsiteRepo) AllWebsites(ctx context.Context) ([]domain.Website, error) {
	return f.ordered(), nil
}

func (f *fakeWebsiteRepo) NextUngraded(ctx context.Context) (domain.Website, error) {
	for _, w := range f.ordered() {
		if !w.Graded {
			return w, nil
		}
	}
	return domain.Website{}, domain.ErrNotFound
}

func (f *fakeWebsiteRepo) StackStats(ctx context.Context) (domain.StackStats, error) {
	var st domain.StackStats
	for _, w := range f.sites {
		if w.Graded {
			st.Graded++
		} else {
			st.Ungraded++
		}
		if w.DesignTemplate {
			st.DesignTemplates++
		}
		if w.GoodLead {
			st.GoodLeads++
		}
	}
	return st, nil
}

func (f *fakeWebsiteRepo) Leaderboard(ctx context.Context, limit int) ([]domain.Website, error) {
	out := f.ordered()
	sort.SliceStable(out, func(i, j int) bool { return out[i].EloRating > out[j].EloRating })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeWebsiteRepo) Stats(ctx context.Context) (domain.Stats, error) {
	st := domain.Stats{TotalComparisons: len(f.comparisons), AverageElo: domain.InitialRating}
	var sum float64
	for _, w := range f.sites {
		st.TotalWebsites++
		sum += w.EloRating
		if w.Graded {
			st.GradedWebsites++
		}
		if w.DesignTemplate {
			st.DesignTemplates++
		}
		if w.GoodLead {
			st.GoodLeads++
		}
	}
	if st.TotalWebsites > 0 {
		st.AverageElo = sum / float64(st.TotalWebsites)
	}
	return st, nil
}

func (f *fakeWebsiteRepo) ordered() []domain.Website {
	ids := make([]int64, 0, len(f.sites))
	for id := range f.sites {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]domain.Website, 0, len(ids))
	for _, id := range ids {
		out = append(out, *f.sites[id])
	}
	return out
}

type fakeJobRepo struct {
	jobs  map[string]*domain.ScrapeJob
	order []string
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: map[string]*domain.ScrapeJob{}}
}

func (f *fakeJobRepo) CreateJob(ctx context.Context, j domain.ScrapeJob) error {
	j.CreatedAt = time.Now()
	f.jobs[j.ID] = &j
	f.order = append(f.order, j.ID)
	return nil
}

func (f *fakeJobRepo) GetJob(ctx context.Context, id string) (domain.ScrapeJob, error) {
	j, ok := f.jobs[id]
	if !ok {
		return domain.ScrapeJob{}, domain.ErrNotFound
	}
	return *j, nil
}

func (f *fakeJobRepo) ListJobs(ctx context.Context, limit int) ([]domain.ScrapeJob, error) {
	var out []domain.ScrapeJob
	for i := len(f.order) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, *f.jobs[f.order[i]])
	}
	return out, nil
}

func (f *fakeJobRepo) MarkJobRunning(ctx context.Context, id string) error {
	j, ok := f.jobs[id]
	if !ok {
		return domain.ErrNotFound
	}
	j.Status = domain.JobRunning
	return nil
}

func (f *fakeJobRepo) MarkJobCompleted(ctx context.Context, id string, websitesFound int) error {
	j, ok := f.jobs[id]
	if !ok {
		return domain.ErrNotFound
	}
	now := time.Now()
	j.Status = domain.JobCompleted
	j.WebsitesFound = websitesFound
	j.CompletedAt = &now
	return nil
}

func (f *fakeJobRepo) MarkJobFailed(ctx context.Context, id string, msg string) error {
	j, ok := f.jobs[id]
	if !ok {
		return domain.ErrNotFound
	}
	now := time.Now()
	j.Status = domain.JobFailed
	j.Error = &msg
	j.CompletedAt = &now
	return nil
}

type fakeSearchRepo struct {
	saved    []domain.SearchQuery
	places   [][]domain.RankedPlace
	saveErr  error
	assignID int64
}

func (f *fakeSearchRepo) SaveSearch(ctx context.Context, q domain.SearchQuery, places []domain.RankedPlace) (domain.SearchQuery, error) {
	if f.saveErr != nil {
		return domain.SearchQuery{}, f.saveErr
	}
	f.assignID++
	q.ID = f.assignID
	q.CreatedAt = time.Now()
	f.saved = append(f.saved, q)
	f.places = append(f.places, places)
	return q, nil
}

// fakePlaces scripts the Maps surface: text pages are served by call index,
// nearby and geocode from canned values.
type fakePlaces struct {
	pages    []domain.TextSearchPage
	pageErrs map[int]error
	requests []domain.TextSearchRequest

	nearby    []domain.NearbyPlace
	nearbyErr error
	nearbyReq *domain.NearbySearchRequest

	coords     domain.Coords
	geocodeErr error
	geocoded   []string
}

func (f *fakePlaces) SearchTextPage(ctx context.Context, req domain.TextSearchRequest) (domain.TextSearchPage, error) {
	i := len(f.requests)
	f.requests = append(f.requests, req)
	if err := f.pageErrs[i]; err != nil {
		return domain.TextSearchPage{}, err
	}
	if i >= len(f.pages) {
		return domain.TextSearchPage{}, nil
	}
	return f.pages[i], nil
}

func (f *fakePlaces) SearchNearby(ctx context.Context, req domain.NearbySearchRequest) ([]domain.NearbyPlace, error) {
	f.nearbyReq = &req
	if f.nearbyErr != nil {
		return nil, f.nearbyErr
	}
	return f.nearby, nil
}

func (f *fakePlaces) Geocode(ctx context.Context, location string) (domain.Coords, error) {
	f.geocoded = append(f.geocoded, location)
	if f.geocodeErr != nil {
		return domain.Coords{}, f.geocodeErr
	}
	return f.coords, nil
}

type fakeCache struct {
	store map[string]any
	dels  []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.store == nil {
		return false, nil
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *[]domain.LeaderboardEntry:
		*d = v.([]domain.LeaderboardEntry)
	case *domain.Stats:
		*d = v.(domain.Stats)
	}
	return true, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.dels = append(c.dels, key)
	delete(c.store, key)
	return nil
}

// ---- helpers ----

func coalesce(dst **int, v *int) {
	if v != nil {
		*dst = v
	}
}

func ptr[T any](v T) *T { return &v }

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
