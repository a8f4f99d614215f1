package domain

import "time"

// InitialRating is the ELO every website starts at.
const InitialRating = 1000.0

type Website struct {
	ID             int64
	URL            string // unique
	Name           *string
	Description    *string
	ScreenshotPath *string
	Address        *string
	Phone          *string
	BusinessType   *string
	PlaceID        *string // Google Maps place id, when discovered via scrape
	Source         *string // e.g. "gmaps:Potsdam:restaurant,cafe"

	EloRating     float64
	MatchesPlayed int
	Wins          int
	Losses        int

	Graded         bool
	DesignTemplate bool
	GoodLead       bool
	GradedAt       *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// WebsiteGrade holds the manual aesthetic assessment, one row per website.
// Axes are 1..10; nil means "not judged on this axis yet".
type WebsiteGrade struct {
	ID        int64
	WebsiteID int64

	OverallAesthetic *int
	ColorHarmony     *int
	Typography       *int
	LayoutSpacing    *int
	Imagery          *int
	VisualHierarchy  *int
	MobileResponsive *int

	NotesJSON      []byte // free-form per-axis notes, kept opaque
	GeneralComment *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// GradeInput is what a grading submit carries. Axis fields left nil keep the
// previously stored value (grades are refined over several passes).
type GradeInput struct {
	OverallAesthetic *int
	ColorHarmony     *int
	Typography       *int
	LayoutSpacing    *int
	Imagery          *int
	VisualHierarchy  *int
	MobileResponsive *int
	NotesJSON        []byte
	GeneralComment   *string

	DesignTemplate bool
	GoodLead       bool
}

type WebsitesQuery struct {
	Graded         *bool
	DesignTemplate *bool
	GoodLead       *bool
	Limit          int
	Offset         int
}

// WebsiteWithGrade is the detail read model; Grade stays nil until the first
// grading pass.
type WebsiteWithGrade struct {
	Website
	Grade *WebsiteGrade
}

// StackStats summarizes grading progress.
type StackStats struct {
	Ungraded        int
	Graded          int
	DesignTemplates int
	GoodLeads       int
}

// Stats is the global dashboard payload.
type Stats struct {
	TotalWebsites    int
	TotalComparisons int
	GradedWebsites   int
	DesignTemplates  int
	GoodLeads        int
	AverageElo       float64 // InitialRating when there are no websites
}
