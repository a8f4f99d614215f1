package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"

	"github.com/project-caesar00/caesar-elo/internal/domain"
)

const erDupEntry = 1062

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
func valInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}
func valInt64(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}
func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}
func valJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) CreateWebsite(ctx context.Context, w domain.Website) (domain.Website, error) {
	if w.EloRating == 0 {
		w.EloRating = domain.InitialRating
	}
	res, err := r.db.ExecContext(ctx, insertWebsiteSQL,
		w.URL,
		valStr(w.Name),
		valStr(w.Description),
		valStr(w.ScreenshotPath),
		valStr(w.Address),
		valStr(w.Phone),
		valStr(w.BusinessType),
		valStr(w.PlaceID),
		valStr(w.Source),
		w.EloRating,
	)
	if err != nil {
		var me *mysqldriver.MySQLError
		if errors.As(err, &me) && me.Number == erDupEntry {
			return domain.Website{}, fmt.Errorf("url %s: %w", w.URL, domain.ErrDuplicateURL)
		}
		return domain.Website{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Website{}, err
	}
	// re-read so the caller sees DB-side defaults and timestamps
	return r.GetWebsite(ctx, id)
}

func (r *Repo) UpsertGrade(ctx context.Context, websiteID int64, in domain.GradeInput) (domain.WebsiteGrade, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.WebsiteGrade{}, err
	}
	defer tx.Rollback()

	var exists int64
	if err := tx.QueryRowContext(ctx, `SELECT id FROM websites WHERE id = ?`, websiteID).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.WebsiteGrade{}, domain.ErrNotFound
		}
		return domain.WebsiteGrade{}, err
	}

	if _, err := tx.ExecContext(ctx, upsertGradeSQL,
		websiteID,
		valInt(in.OverallAesthetic),
		valInt(in.ColorHarmony),
		valInt(in.Typography),
		valInt(in.LayoutSpacing),
		valInt(in.Imagery),
		valInt(in.VisualHierarchy),
		valInt(in.MobileResponsive),
		valJSON(in.NotesJSON),
		valStr(in.GeneralComment),
	); err != nil {
		return domain.WebsiteGrade{}, err
	}
	if _, err := tx.ExecContext(ctx, setGradeFlagsSQL, in.DesignTemplate, in.GoodLead, websiteID); err != nil {
		return domain.WebsiteGrade{}, err
	}

	g, err := scanGrade(tx.QueryRowContext(ctx, getGradeSQL, websiteID))
	if err != nil {
		return domain.WebsiteGrade{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.WebsiteGrade{}, err
	}
	return g, nil
}

func (r *Repo) MarkGraded(ctx context.Context, websiteID int64) error {
	res, err := r.db.ExecContext(ctx, markGradedSQL, websiteID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// either the row is missing or nothing changed; tell them apart
		var id int64
		err := r.db.QueryRowContext(ctx, `SELECT id FROM websites WHERE id = ?`, websiteID).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

// RecordComparison writes both rating rows and the audit row in one tx, so a
// duel either fully lands or not at all.
func (r *Repo) RecordComparison(ctx context.Context, a, b domain.Website, c domain.Comparison) (domain.Comparison, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Comparison{}, err
	}
	defer tx.Rollback()

	for _, w := range []domain.Website{a, b} {
		if _, err := tx.ExecContext(ctx, applyRatingSQL,
			w.EloRating, w.MatchesPlayed, w.Wins, w.Losses, w.ID,
		); err != nil {
			return domain.Comparison{}, err
		}
	}

	res, err := tx.ExecContext(ctx, insertComparisonSQL,
		c.WebsiteAID, c.WebsiteBID, valInt64(c.WinnerID), c.DeltaA, c.DeltaB,
	)
	if err != nil {
		return domain.Comparison{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Comparison{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Comparison{}, err
	}
	c.ID = id
	c.CreatedAt = time.Now().UTC()
	return c, nil
}

func (r *Repo) GetWebsite(ctx context.Context, id int64) (domain.Website, error) {
	w, err := scanWebsite(r.db.QueryRowContext(ctx, getWebsiteSQL, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Website{}, domain.ErrNotFound
	}
	return w, err
}

func (r *Repo) GetGrade(ctx context.Context, websiteID int64) (*domain.WebsiteGrade, error) {
	g, err := scanGrade(r.db.QueryRowContext(ctx, getGradeSQL, websiteID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // ungraded, not an error
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *Repo) ListWebsites(ctx context.Context, q domain.WebsitesQuery) ([]domain.Website, error) {
	var conds []string
	var args []any
	if q.Graded != nil {
		conds = append(conds, "graded = ?")
		args = append(args, *q.Graded)
	}
	if q.DesignTemplate != nil {
		conds = append(conds, "design_template = ?")
		args = append(args, *q.DesignTemplate)
	}
	if q.GoodLead != nil {
		conds = append(conds, "good_lead = ?")
		args = append(args, *q.GoodLead)
	}

	query := `SELECT` + websiteColumns + `FROM websites`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id LIMIT ? OFFSET ?"
	args = append(args, q.Limit, q.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectWebsites(rows)
}

func (r *Repo) AllWebsites(ctx context.Context) ([]domain.Website, error) {
	rows, err := r.db.QueryContext(ctx, allWebsitesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectWebsites(rows)
}

func (r *Repo) NextUngraded(ctx context.Context) (domain.Website, error) {
	w, err := scanWebsite(r.db.QueryRowContext(ctx, nextUngradedSQL))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Website{}, domain.ErrNotFound
	}
	return w, err
}

func (r *Repo) StackStats(ctx context.Context) (domain.StackStats, error) {
	var st domain.StackStats
	err := r.db.QueryRowContext(ctx, stackStatsSQL).Scan(
		&st.Ungraded, &st.Graded, &st.DesignTemplates, &st.GoodLeads,
	)
	return st, err
}

func (r *Repo) Leaderboard(ctx context.Context, limit int) ([]domain.Website, error) {
	rows, err := r.db.QueryContext(ctx, leaderboardSQL, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectWebsites(rows)
}

func (r *Repo) Stats(ctx context.Context) (domain.Stats, error) {
	var st domain.Stats
	if err := r.db.QueryRowContext(ctx, websiteStatsSQL, domain.InitialRating).Scan(
		&st.TotalWebsites, &st.GradedWebsites, &st.DesignTemplates, &st.GoodLeads, &st.AverageElo,
	); err != nil {
		return domain.Stats{}, err
	}
	if err := r.db.QueryRowContext(ctx, countComparisonsSQL).Scan(&st.TotalComparisons); err != nil {
		return domain.Stats{}, err
	}
	return st, nil
}

// ---- scrape jobs ----

func (r *Repo) CreateJob(ctx context.Context, j domain.ScrapeJob) error {
	types, _ := json.Marshal(j.BusinessTypes)
	_, err := r.db.ExecContext(ctx, insertJobSQL,
		j.ID, j.Location, j.RadiusKM, string(types), string(j.Status),
	)
	return err
}

func (r *Repo) GetJob(ctx context.Context, id string) (domain.ScrapeJob, error) {
	j, err := scanJob(r.db.QueryRowContext(ctx, getJobSQL, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ScrapeJob{}, domain.ErrNotFound
	}
	return j, err
}

func (r *Repo) ListJobs(ctx context.Context, limit int) ([]domain.ScrapeJob, error) {
	rows, err := r.db.QueryContext(ctx, listJobsSQL, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ScrapeJob
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func (r *Repo) MarkJobRunning(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, markJobRunningSQL, id)
	return err
}

func (r *Repo) MarkJobCompleted(ctx context.Context, id string, websitesFound int) error {
	_, err := r.db.ExecContext(ctx, markJobCompletedSQL, websitesFound, id)
	return err
}

func (r *Repo) MarkJobFailed(ctx context.Context, id string, msg string) error {
	_, err := r.db.ExecContext(ctx, markJobFailedSQL, msg, id)
	return err
}

// ---- search history ----

func (r *Repo) SaveSearch(ctx context.Context, q domain.SearchQuery, places []domain.RankedPlace) (domain.SearchQuery, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.SearchQuery{}, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, insertSearchSQL, q.Query, valF64(q.MinRating), q.ResultCount)
	if err != nil {
		return domain.SearchQuery{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.SearchQuery{}, err
	}

	if len(places) > 0 {
		values := make([]string, 0, len(places))
		args := make([]any, 0, len(places)*7) // 7 params per row
		for _, p := range places {
			values = append(values, "(?,?,?,?,?,?,?)")
			args = append(args,
				id,                    // search_query_id
				p.PlaceID,             // place_id
				p.Name,                // name
				p.RatingCount,         // rating_count
				valF64(p.RatingScore), // rating_score
				valStr(p.WebsiteURL),  // website_url
				p.Rank,                // rank
			)
		}
		sqlStr := insertPlacesPrefix + strings.Join(values, ",")
		if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
			return domain.SearchQuery{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.SearchQuery{}, err
	}
	q.ID = id
	q.CreatedAt = time.Now().UTC()
	return q, nil
}

// ---- row scanning ----

type rowScanner interface{ Scan(dest ...any) error }

func scanWebsite(sc rowScanner) (domain.Website, error) {
	var w domain.Website
	var (
		name, desc, shot, addr, phone, btype, placeID, source sql.NullString
		gradedAt                                              sql.NullTime
	)
	if err := sc.Scan(
		&w.ID, &w.URL, &name, &desc, &shot, &addr, &phone, &btype,
		&placeID, &source, &w.EloRating, &w.MatchesPlayed, &w.Wins, &w.Losses,
		&w.Graded, &w.DesignTemplate, &w.GoodLead, &gradedAt, &w.CreatedAt, &w.UpdatedAt,
	); err != nil {
		return domain.Website{}, err
	}
	if name.Valid {
		s := name.String
		w.Name = &s
	}
	if desc.Valid {
		s := desc.String
		w.Description = &s
	}
	if shot.Valid {
		s := shot.String
		w.ScreenshotPath = &s
	}
	if addr.Valid {
		s := addr.String
		w.Address = &s
	}
	if phone.Valid {
		s := phone.String
		w.Phone = &s
	}
	if btype.Valid {
		s := btype.String
		w.BusinessType = &s
	}
	if placeID.Valid {
		s := placeID.String
		w.PlaceID = &s
	}
	if source.Valid {
		s := source.String
		w.Source = &s
	}
	if gradedAt.Valid {
		t := gradedAt.Time
		w.GradedAt = &t
	}
	return w, nil
}

func collectWebsites(rows *sql.Rows) ([]domain.Website, error) {
	var out []domain.Website
	for rows.Next() {
		w, err := scanWebsite(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func scanGrade(sc rowScanner) (domain.WebsiteGrade, error) {
	var g domain.WebsiteGrade
	var (
		overall, color, typo, layout, imagery, hierarchy, mobile sql.NullInt64
		notes                                                    []byte // RawBytes is rows-only; these scanners also serve QueryRow
		comment                                                  sql.NullString
	)
	if err := sc.Scan(
		&g.ID, &g.WebsiteID,
		&overall, &color, &typo, &layout, &imagery, &hierarchy, &mobile,
		&notes, &comment,
		&g.CreatedAt, &g.UpdatedAt,
	); err != nil {
		return domain.WebsiteGrade{}, err
	}
	g.OverallAesthetic = nullableInt(overall)
	g.ColorHarmony = nullableInt(color)
	g.Typography = nullableInt(typo)
	g.LayoutSpacing = nullableInt(layout)
	g.Imagery = nullableInt(imagery)
	g.VisualHierarchy = nullableInt(hierarchy)
	g.MobileResponsive = nullableInt(mobile)
	if len(notes) > 0 {
		g.NotesJSON = notes
	}
	if comment.Valid {
		s := comment.String
		g.GeneralComment = &s
	}
	return g, nil
}

func nullableInt(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func scanJob(sc rowScanner) (domain.ScrapeJob, error) {
	var j domain.ScrapeJob
	var (
		types       []byte
		status      string
		errMsg      sql.NullString
		completedAt sql.NullTime
	)
	if err := sc.Scan(
		&j.ID, &j.Location, &j.RadiusKM, &types, &status,
		&j.WebsitesFound, &errMsg, &j.CreatedAt, &completedAt,
	); err != nil {
		return domain.ScrapeJob{}, err
	}
	j.Status = domain.JobStatus(status)
	if len(types) > 0 {
		_ = json.Unmarshal(types, &j.BusinessTypes)
	}
	if errMsg.Valid {
		s := errMsg.String
		j.Error = &s
	}
	if completedAt.Valid {
		t := completedAt.Time
		j.CompletedAt = &t
	}
	return j, nil
}
