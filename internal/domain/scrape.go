package domain

import "time"

type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
)

// ScrapeJob tracks one background discovery run against Google Maps.
type ScrapeJob struct {
	ID            string // uuid
	Location      string
	RadiusKM      float64
	BusinessTypes []string
	Status        JobStatus
	WebsitesFound int
	Error         *string
	CreatedAt     time.Time
	CompletedAt   *time.Time
}

// ScrapeConfig is the request side of a job.
type ScrapeConfig struct {
	Location      string
	RadiusKM      float64
	BusinessTypes []string
}
