package mysql

const insertWebsiteSQL = `
INSERT INTO websites
  (url, name, description, screenshot_path, address, phone, business_type, place_id, source, elo_rating)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// Use VALUES(col) for broad compatibility; COALESCE keeps the stored axis when
// a re-grade leaves it out.
const upsertGradeSQL = `
INSERT INTO website_grades
  (website_id, overall_aesthetic, color_harmony, typography, layout_spacing, imagery, visual_hierarchy, mobile_responsive, notes, general_comment)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  overall_aesthetic = COALESCE(VALUES(overall_aesthetic), website_grades.overall_aesthetic),
  color_harmony     = COALESCE(VALUES(color_harmony), website_grades.color_harmony),
  typography        = COALESCE(VALUES(typography), website_grades.typography),
  layout_spacing    = COALESCE(VALUES(layout_spacing), website_grades.layout_spacing),
  imagery           = COALESCE(VALUES(imagery), website_grades.imagery),
  visual_hierarchy  = COALESCE(VALUES(visual_hierarchy), website_grades.visual_hierarchy),
  mobile_responsive = COALESCE(VALUES(mobile_responsive), website_grades.mobile_responsive),
  notes             = COALESCE(VALUES(notes), website_grades.notes),
  general_comment   = COALESCE(VALUES(general_comment), website_grades.general_comment),
  updated_at        = CURRENT_TIMESTAMP
`

const setGradeFlagsSQL = `
UPDATE websites
SET graded = 1, design_template = ?, good_lead = ?, graded_at = CURRENT_TIMESTAMP
WHERE id = ?
`

const markGradedSQL = `
UPDATE websites
SET graded = 1, graded_at = CURRENT_TIMESTAMP
WHERE id = ?
`

// Absolute values, not deltas: the service already applied the rating math to
// both structs and this just writes them back inside the comparison tx.
const applyRatingSQL = `
UPDATE websites
SET elo_rating = ?, matches_played = ?, wins = ?, losses = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`

const insertComparisonSQL = `
INSERT INTO comparisons
  (website_a_id, website_b_id, winner_id, elo_change_a, elo_change_b)
VALUES
  (?, ?, ?, ?, ?)
`

const insertJobSQL = `
INSERT INTO scrape_jobs
  (id, location, radius_km, business_types, status)
VALUES
  (?, ?, ?, ?, ?)
`

const markJobRunningSQL = `UPDATE scrape_jobs SET status = 'running' WHERE id = ?`

const markJobCompletedSQL = `
UPDATE scrape_jobs
SET status = 'completed', websites_found = ?, completed_at = CURRENT_TIMESTAMP(6)
WHERE id = ?
`

const markJobFailedSQL = `
UPDATE scrape_jobs
SET status = 'failed', error_message = ?, completed_at = CURRENT_TIMESTAMP(6)
WHERE id = ?
`

const insertSearchSQL = `
INSERT INTO search_queries (query, min_rating, result_count)
VALUES (?, ?, ?)
`

// Note: `rank` is reserved since MySQL 8; keep it quoted everywhere.
const insertPlacesPrefix = "INSERT INTO places\n  (search_query_id, place_id, name, rating_count, rating_score, website_url, `rank`)\nVALUES "

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

// Shared column list so every website read scans the same way.
const websiteColumns = `
  id, url, name, description, screenshot_path, address, phone, business_type,
  place_id, source, elo_rating, matches_played, wins, losses,
  graded, design_template, good_lead, graded_at, created_at, updated_at
`

const getWebsiteSQL = `SELECT` + websiteColumns + `FROM websites WHERE id = ?`

const allWebsitesSQL = `SELECT` + websiteColumns + `FROM websites ORDER BY id`

const nextUngradedSQL = `
SELECT` + websiteColumns + `
FROM websites
WHERE graded = 0
ORDER BY created_at ASC, id ASC
LIMIT 1
`

const leaderboardSQL = `
SELECT` + websiteColumns + `
FROM websites
ORDER BY elo_rating DESC, id ASC
LIMIT ?
`

const getGradeSQL = `
SELECT
  id, website_id,
  overall_aesthetic, color_harmony, typography, layout_spacing, imagery,
  visual_hierarchy, mobile_responsive, notes, general_comment,
  created_at, updated_at
FROM website_grades
WHERE website_id = ?
`

// COUNT(CASE ...) instead of SUM so an empty table yields zeros, not NULLs.
const stackStatsSQL = `
SELECT
  COUNT(CASE WHEN graded = 0 THEN 1 END),
  COUNT(CASE WHEN graded = 1 THEN 1 END),
  COUNT(CASE WHEN design_template = 1 THEN 1 END),
  COUNT(CASE WHEN good_lead = 1 THEN 1 END)
FROM websites
`

const websiteStatsSQL = `
SELECT
  COUNT(*),
  COUNT(CASE WHEN graded = 1 THEN 1 END),
  COUNT(CASE WHEN design_template = 1 THEN 1 END),
  COUNT(CASE WHEN good_lead = 1 THEN 1 END),
  COALESCE(AVG(elo_rating), ?)
FROM websites
`

const countComparisonsSQL = `SELECT COUNT(*) FROM comparisons`

const getJobSQL = `
SELECT id, location, radius_km, business_types, status, websites_found, error_message, created_at, completed_at
FROM scrape_jobs
WHERE id = ?
`

const listJobsSQL = `
SELECT id, location, radius_km, business_types, status, websites_found, error_message, created_at, completed_at
FROM scrape_jobs
ORDER BY created_at DESC, id
LIMIT ?
`
