package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/project-caesar00/caesar-elo/internal/app"
	"github.com/project-caesar00/caesar-elo/internal/auth"
	"github.com/project-caesar00/caesar-elo/internal/domain"
)

type Handlers struct {
	Q      *app.QueryService
	Review *app.ReviewService
	Search *app.AggregationService
	Scrape *app.ScrapeService
	Auth   *auth.Manager
	Google *auth.GoogleVerifier
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "caesar-elo"})
	})
	s.mux.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	s.mux.Route("/api", func(api chi.Router) {
		api.Post("/auth/google", h.authGoogle)
		api.With(RequireAuth(h.Auth)).Get("/auth/me", h.authMe)

		api.Get("/websites", h.listWebsites)
		api.Post("/websites", h.createWebsite)
		api.Get("/websites/{id}", h.getWebsite)
		api.Post("/websites/{id}/grade", h.gradeWebsite)
		api.Post("/websites/{id}/skip", h.skipWebsite)

		api.Get("/compare", h.nextPair)
		api.Post("/compare", h.submitComparison)
		api.Get("/leaderboard", h.leaderboard)
		api.Get("/stats", h.stats)

		api.Get("/stack/next", h.stackNext)
		api.Get("/stack/stats", h.stackStats)

		api.Post("/aggregate", h.aggregate)

		api.Post("/scrape", h.startScrape)
		api.Get("/scrape/jobs", h.listScrapeJobs)
		api.Get("/scrape/jobs/{id}", h.getScrapeJob)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// writeError maps domain errors onto the problem responses; anything
// unrecognized is a 500 with the detail kept out of the body.
func writeError(w http.ResponseWriter, err error) {
	var svcErr *domain.ServiceError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrDuplicateURL):
		writeProblem(w, http.StatusBadRequest, "Duplicate URL", err.Error())
	case errors.Is(err, domain.ErrInvalidOutcome):
		writeProblem(w, http.StatusBadRequest, "Invalid Outcome", err.Error())
	case errors.Is(err, domain.ErrInsufficientWebsites):
		writeProblem(w, http.StatusBadRequest, "Not Enough Websites", err.Error())
	case errors.Is(err, domain.ErrQuotaExceeded):
		writeProblem(w, http.StatusTooManyRequests, "Quota Exceeded", err.Error())
	case errors.Is(err, domain.ErrNotConfigured):
		writeProblem(w, http.StatusServiceUnavailable, "Maps Not Configured", err.Error())
	case errors.As(err, &svcErr):
		writeProblem(w, http.StatusBadGateway, "Upstream Error", svcErr.Error())
	default:
		log.Error().Err(err).Msg("unhandled API error")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// ---- wire types ----

type websiteResponse struct {
	ID             int64      `json:"id"`
	URL            string     `json:"url"`
	Name           *string    `json:"name"`
	Description    *string    `json:"description,omitempty"`
	ScreenshotPath *string    `json:"screenshot_path"`
	Address        *string    `json:"address,omitempty"`
	Phone          *string    `json:"phone,omitempty"`
	BusinessType   *string    `json:"business_type,omitempty"`
	PlaceID        *string    `json:"google_place_id,omitempty"`
	Source         *string    `json:"source,omitempty"`
	EloRating      float64    `json:"elo_rating"`
	MatchesPlayed  int        `json:"matches_played"`
	Wins           int        `json:"wins"`
	Losses         int        `json:"losses"`
	Graded         bool       `json:"is_graded"`
	DesignTemplate bool       `json:"is_designvorlage"`
	GoodLead       bool       `json:"is_good_lead"`
	GradedAt       *time.Time `json:"graded_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func toWebsiteResponse(w domain.Website) websiteResponse {
	return websiteResponse{
		ID:             w.ID,
		URL:            w.URL,
		Name:           w.Name,
		Description:    w.Description,
		ScreenshotPath: w.ScreenshotPath,
		Address:        w.Address,
		Phone:          w.Phone,
		BusinessType:   w.BusinessType,
		PlaceID:        w.PlaceID,
		Source:         w.Source,
		EloRating:      w.EloRating,
		MatchesPlayed:  w.MatchesPlayed,
		Wins:           w.Wins,
		Losses:         w.Losses,
		Graded:         w.Graded,
		DesignTemplate: w.DesignTemplate,
		GoodLead:       w.GoodLead,
		GradedAt:       w.GradedAt,
		CreatedAt:      w.CreatedAt,
	}
}

type gradeResponse struct {
	ID               int64           `json:"id"`
	WebsiteID        int64           `json:"website_id"`
	OverallAesthetic *int            `json:"overall_aesthetic"`
	ColorHarmony     *int            `json:"color_harmony"`
	Typography       *int            `json:"typography_quality"`
	LayoutSpacing    *int            `json:"layout_spacing"`
	Imagery          *int            `json:"imagery_quality"`
	VisualHierarchy  *int            `json:"visual_hierarchy"`
	MobileResponsive *int            `json:"mobile_responsiveness"`
	Notes            json.RawMessage `json:"notes,omitempty"`
	GeneralComment   *string         `json:"general_comment,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func toGradeResponse(g domain.WebsiteGrade) gradeResponse {
	return gradeResponse{
		ID:               g.ID,
		WebsiteID:        g.WebsiteID,
		OverallAesthetic: g.OverallAesthetic,
		ColorHarmony:     g.ColorHarmony,
		Typography:       g.Typography,
		LayoutSpacing:    g.LayoutSpacing,
		Imagery:          g.Imagery,
		VisualHierarchy:  g.VisualHierarchy,
		MobileResponsive: g.MobileResponsive,
		Notes:            json.RawMessage(g.NotesJSON),
		GeneralComment:   g.GeneralComment,
		CreatedAt:        g.CreatedAt,
		UpdatedAt:        g.UpdatedAt,
	}
}

type jobResponse struct {
	ID            string     `json:"id"`
	Location      string     `json:"location"`
	RadiusKM      float64    `json:"radius_km"`
	BusinessTypes []string   `json:"business_types"`
	Status        string     `json:"status"`
	WebsitesFound int        `json:"websites_found"`
	Error         *string    `json:"error_message,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

func toJobResponse(j domain.ScrapeJob) jobResponse {
	return jobResponse{
		ID:            j.ID,
		Location:      j.Location,
		RadiusKM:      j.RadiusKM,
		BusinessTypes: j.BusinessTypes,
		Status:        string(j.Status),
		WebsitesFound: j.WebsitesFound,
		Error:         j.Error,
		CreatedAt:     j.CreatedAt,
		CompletedAt:   j.CompletedAt,
	}
}

type rankedPlaceResponse struct {
	PlaceID     string   `json:"google_place_id"`
	Name        string   `json:"name"`
	RatingCount int      `json:"rating_count"`
	RatingScore *float64 `json:"rating_score"`
	WebsiteURL  *string  `json:"website_url"`
	Rank        int      `json:"rank"`
}

// ---- auth ----

type userResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (h *Handlers) authGoogle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Credential string `json:"credential"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Credential == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid Request", "credential is required")
		return
	}

	info, err := h.Google.Verify(r.Context(), req.Credential)
	if err != nil {
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "google credential rejected")
		return
	}
	token, err := h.Auth.Issue(info.Email, info.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"access_token": token,
		"token_type":   "bearer",
		"user":         userResponse{Email: info.Email, Name: info.Name},
	})
}

func (h *Handlers) authMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFrom(r.Context())
	if !ok {
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "no session")
		return
	}
	writeJSON(w, http.StatusOK, userResponse{Email: claims.Email, Name: claims.Name})
}

// ---- websites ----

func (h *Handlers) listWebsites(w http.ResponseWriter, r *http.Request) {
	q := domain.WebsitesQuery{Limit: 100}

	var bad string
	boolParam := func(name string) *bool {
		v := r.URL.Query().Get(name)
		if v == "" {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			bad = name
			return nil
		}
		return &b
	}
	q.Graded = boolParam("is_graded")
	q.DesignTemplate = boolParam("is_designvorlage")
	q.GoodLead = boolParam("is_good_lead")
	if bad != "" {
		writeProblem(w, http.StatusBadRequest, "Invalid Filter", bad+" must be true or false")
		return
	}

	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 200 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 200")
			return
		}
		q.Limit = l
	}
	if ss := r.URL.Query().Get("skip"); ss != "" {
		o, err := strconv.Atoi(ss)
		if err != nil || o < 0 {
			writeProblem(w, http.StatusBadRequest, "Invalid skip", "skip must be a non-negative integer")
			return
		}
		q.Offset = o
	}

	ws, err := h.Q.ListWebsites(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]websiteResponse, 0, len(ws))
	for _, site := range ws {
		out = append(out, toWebsiteResponse(site))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) createWebsite(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL         string  `json:"url"`
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Request", "body must be JSON")
		return
	}
	if req.URL == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid Request", "url is required")
		return
	}

	site, err := h.Review.AddWebsite(r.Context(), domain.Website{
		URL:         req.URL,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toWebsiteResponse(site))
}

func (h *Handlers) getWebsite(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	view, err := h.Q.GetWebsite(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := struct {
		websiteResponse
		Grade *gradeResponse `json:"grade"`
	}{websiteResponse: toWebsiteResponse(view.Website)}
	if view.Grade != nil {
		g := toGradeResponse(*view.Grade)
		resp.Grade = &g
	}
	writeJSON(w, http.StatusOK, resp)
}

// ---- comparisons ----

func (h *Handlers) nextPair(w http.ResponseWriter, r *http.Request) {
	a, b, err := h.Review.NextPair(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"website_a": toWebsiteResponse(a),
		"website_b": toWebsiteResponse(b),
	})
}

func (h *Handlers) submitComparison(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WebsiteAID int64  `json:"website_a_id"`
		WebsiteBID int64  `json:"website_b_id"`
		WinnerID   *int64 `json:"winner_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Request", "body must be JSON")
		return
	}
	if req.WebsiteAID == 0 || req.WebsiteBID == 0 {
		writeProblem(w, http.StatusBadRequest, "Invalid Request", "website_a_id and website_b_id are required")
		return
	}

	out, err := h.Review.SubmitComparison(r.Context(), req.WebsiteAID, req.WebsiteBID, req.WinnerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":           out.Comparison.ID,
		"website_a_id": out.Comparison.WebsiteAID,
		"website_b_id": out.Comparison.WebsiteBID,
		"winner_id":    out.Comparison.WinnerID,
		"elo_change_a": out.Comparison.DeltaA,
		"elo_change_b": out.Comparison.DeltaB,
		"website_a":    toWebsiteResponse(out.WebsiteA),
		"website_b":    toWebsiteResponse(out.WebsiteB),
		"created_at":   out.Comparison.CreatedAt,
	})
}

func (h *Handlers) leaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 200 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 200")
			return
		}
		limit = l
	}

	entries, err := h.Q.Leaderboard(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	type entryResponse struct {
		websiteResponse
		Rank int `json:"rank"`
	}
	out := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryResponse{websiteResponse: toWebsiteResponse(e.Website), Rank: e.Rank})
	}

	etag, body := calcETagAndBody(out)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag) // include ETag on 304
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write leaderboard body")
	}
}

func (h *Handlers) stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.Q.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total_websites":      st.TotalWebsites,
		"total_comparisons":   st.TotalComparisons,
		"total_graded":        st.GradedWebsites,
		"total_designvorlage": st.DesignTemplates,
		"total_good_leads":    st.GoodLeads,
		"avg_elo":             st.AverageElo,
	})
}

// ---- grading stack ----

func (h *Handlers) stackNext(w http.ResponseWriter, r *http.Request) {
	site, err := h.Q.NextUngraded(r.Context())
	if errors.Is(err, domain.ErrNotFound) {
		w.WriteHeader(http.StatusNoContent) // stack drained
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toWebsiteResponse(site))
}

func (h *Handlers) stackStats(w http.ResponseWriter, r *http.Request) {
	st, err := h.Q.StackStats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{
		"ungraded_count":      st.Ungraded,
		"graded_count":        st.Graded,
		"designvorlage_count": st.DesignTemplates,
		"good_lead_count":     st.GoodLeads,
	})
}

type gradeRequest struct {
	OverallAesthetic *int            `json:"overall_aesthetic"`
	ColorHarmony     *int            `json:"color_harmony"`
	Typography       *int            `json:"typography_quality"`
	LayoutSpacing    *int            `json:"layout_spacing"`
	Imagery          *int            `json:"imagery_quality"`
	VisualHierarchy  *int            `json:"visual_hierarchy"`
	MobileResponsive *int            `json:"mobile_responsiveness"`
	Notes            json.RawMessage `json:"notes"`
	GeneralComment   *string         `json:"general_comment"`
	DesignTemplate   bool            `json:"is_designvorlage"`
	GoodLead         bool            `json:"is_good_lead"`
}

// badAxis returns the first axis outside 1..10, or "".
func (g *gradeRequest) badAxis() string {
	axes := map[string]*int{
		"overall_aesthetic":     g.OverallAesthetic,
		"color_harmony":         g.ColorHarmony,
		"typography_quality":    g.Typography,
		"layout_spacing":        g.LayoutSpacing,
		"imagery_quality":       g.Imagery,
		"visual_hierarchy":      g.VisualHierarchy,
		"mobile_responsiveness": g.MobileResponsive,
	}
	for name, v := range axes {
		if v != nil && (*v < 1 || *v > 10) {
			return name
		}
	}
	return ""
}

func (h *Handlers) gradeWebsite(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	var req gradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Request", "body must be JSON")
		return
	}
	if axis := req.badAxis(); axis != "" {
		writeProblem(w, http.StatusBadRequest, "Invalid Grade", axis+" must be between 1 and 10")
		return
	}

	g, err := h.Review.Grade(r.Context(), id, domain.GradeInput{
		OverallAesthetic: req.OverallAesthetic,
		ColorHarmony:     req.ColorHarmony,
		Typography:       req.Typography,
		LayoutSpacing:    req.LayoutSpacing,
		Imagery:          req.Imagery,
		VisualHierarchy:  req.VisualHierarchy,
		MobileResponsive: req.MobileResponsive,
		NotesJSON:        []byte(req.Notes),
		GeneralComment:   req.GeneralComment,
		DesignTemplate:   req.DesignTemplate,
		GoodLead:         req.GoodLead,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGradeResponse(g))
}

func (h *Handlers) skipWebsite(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	if err := h.Review.Skip(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "skipped", "website_id": id})
}

// ---- search aggregation ----

func (h *Handlers) aggregate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query     string   `json:"query"`
		MinRating *float64 `json:"min_rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Request", "body must be JSON")
		return
	}
	if n := utf8.RuneCountInString(req.Query); n < 2 || n > 200 {
		writeProblem(w, http.StatusBadRequest, "Invalid Query", "query must be between 2 and 200 characters")
		return
	}
	if req.MinRating != nil && (*req.MinRating < 1.0 || *req.MinRating > 5.0) {
		writeProblem(w, http.StatusBadRequest, "Invalid Rating", "min_rating must be between 1.0 and 5.0")
		return
	}

	res, err := h.Search.Aggregate(r.Context(), req.Query, req.MinRating)
	if err != nil {
		writeError(w, err)
		return
	}

	results := make([]rankedPlaceResponse, 0, len(res.Results))
	for _, p := range res.Results {
		results = append(results, rankedPlaceResponse{
			PlaceID:     p.PlaceID,
			Name:        p.Name,
			RatingCount: p.RatingCount,
			RatingScore: p.RatingScore,
			WebsiteURL:  p.WebsiteURL,
			Rank:        p.Rank,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"query":           res.Query,
		"search_query_id": res.SearchQueryID,
		"total_count":     res.TotalCount,
		"results":         results,
	})
}

// ---- scrape jobs ----

func (h *Handlers) startScrape(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Location      string   `json:"location"`
		RadiusKM      float64  `json:"radius_km"`
		BusinessTypes []string `json:"business_types"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Request", "body must be JSON")
		return
	}
	if req.Location == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid Request", "location is required")
		return
	}
	if req.RadiusKM < 0 || req.RadiusKM > 50 {
		writeProblem(w, http.StatusBadRequest, "Invalid Radius", "radius_km must be between 0 and 50")
		return
	}

	job, err := h.Scrape.StartJob(r.Context(), domain.ScrapeConfig{
		Location:      req.Location,
		RadiusKM:      req.RadiusKM,
		BusinessTypes: req.BusinessTypes,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	// run detached; the client polls the job endpoint
	go h.Scrape.Run(context.Background(), job.ID)

	writeJSON(w, http.StatusAccepted, toJobResponse(job))
}

func (h *Handlers) listScrapeJobs(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 200 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 200")
			return
		}
		limit = l
	}
	jobs, err := h.Scrape.Jobs(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]jobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, toJobResponse(j))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) getScrapeJob(w http.ResponseWriter, r *http.Request) {
	job, err := h.Scrape.Job(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toJobResponse(job))
}
