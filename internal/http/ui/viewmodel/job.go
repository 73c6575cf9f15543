package viewmodel

import "time"

// JobCard is a job listing as rendered by the home, jobs and details pages.
type JobCard struct {
	ID          int64
	Title       string
	Company     string
	Location    string
	JobType     string
	Salary      string
	Description string
	Featured    bool
	PostedAt    time.Time
}

// AdPlan is a paid promotion package shown on the ads-plan page.
type AdPlan struct {
	ID       string
	Name     string
	Price    string
	Period   string
	Features []string
	Popular  bool
}
