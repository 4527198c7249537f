package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"CompetitorScout/internal/domain"
	"CompetitorScout/internal/ports"
)

type fakeSearch struct {
	mu      sync.Mutex
	results []ports.SearchResult
	err     error
	queries []string
}

func (f *fakeSearch) Search(_ context.Context, query string) ([]ports.SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

// fakeReasoner scripts responses per prompt. When byPrompt is set it decides
// the response; otherwise responses are consumed in order.
type fakeReasoner struct {
	mu        sync.Mutex
	byPrompt  func(prompt string) (string, error)
	responses []string
	err       error
	calls     int
}

func (f *fakeReasoner) Complete(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.byPrompt != nil {
		return f.byPrompt(prompt)
	}
	if f.err != nil {
		return "", f.err
	}
	if len(f.responses) == 0 {
		return "", errors.New("no scripted response")
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

type fakeProfileFetcher struct {
	profile domain.SiteProfile
	err     error
	calls   int
}

func (f *fakeProfileFetcher) Fetch(context.Context, string) (domain.SiteProfile, error) {
	f.calls++
	if f.err != nil {
		return domain.SiteProfile{}, f.err
	}
	return f.profile, nil
}

type fakeSink struct {
	mu         sync.Mutex
	err        error
	deliveries []delivery
}

type delivery struct {
	Recipient string
	Subject   string
	Body      string
}

func (f *fakeSink) Deliver(_ context.Context, recipient, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.deliveries = append(f.deliveries, delivery{Recipient: recipient, Subject: subject, Body: body})
	return nil
}

type fakeScheduler struct {
	starts int
	stops  int
}

func (f *fakeScheduler) Start(context.Context, func(time.Time)) error {
	f.starts++
	return nil
}

func (f *fakeScheduler) Stop(context.Context) error {
	f.stops++
	return nil
}

// memStore is an in-memory implementation of all persistence ports.
type memStore struct {
	mu          sync.Mutex
	siteOrder   []string
	websites    map[string]domain.Website
	competitors map[string]map[string]domain.Competitor
	jobs        map[string]*domain.DiscoveryJob
	jobOrder    []string
	assessments map[string][]domain.ThreatAssessment
	upsertErr   error

	// missing makes GetByID fail for a site that ListActive still reports,
	// simulating a context-resolution failure mid-batch.
	missing map[string]bool
}

func newMemStore(sites ...domain.Website) *memStore {
	s := &memStore{
		websites:    map[string]domain.Website{},
		competitors: map[string]map[string]domain.Competitor{},
		jobs:        map[string]*domain.DiscoveryJob{},
		assessments: map[string][]domain.ThreatAssessment{},
		missing:     map[string]bool{},
	}
	for _, site := range sites {
		s.siteOrder = append(s.siteOrder, site.ID)
		s.websites[site.ID] = site
	}
	return s
}

func (s *memStore) GetByID(_ context.Context, id string) (domain.Website, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	site, ok := s.websites[id]
	if !ok || s.missing[id] {
		return domain.Website{}, domain.ErrNotFound
	}
	return site, nil
}

func (s *memStore) ListActive(context.Context) ([]domain.Website, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sites := make([]domain.Website, 0, len(s.siteOrder))
	for _, id := range s.siteOrder {
		if site, ok := s.websites[id]; ok {
			sites = append(sites, site)
		}
	}
	return sites, nil
}

func (s *memStore) Upsert(_ context.Context, c domain.Competitor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.upsertErr != nil {
		return s.upsertErr
	}
	rows, ok := s.competitors[c.WebsiteID]
	if !ok {
		rows = map[string]domain.Competitor{}
		s.competitors[c.WebsiteID] = rows
	}
	if existing, ok := rows[c.URL]; ok {
		c.ID = existing.ID
		c.CreatedAt = existing.CreatedAt
	}
	rows[c.URL] = c
	return nil
}

func (s *memStore) ListByWebsite(_ context.Context, websiteID string) ([]domain.Competitor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Competitor
	for _, c := range s.competitors[websiteID] {
		out = append(out, c)
	}
	return out, nil
}

func (s *memStore) Create(_ context.Context, job domain.DiscoveryJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := job
	s.jobs[job.ID] = &copied
	s.jobOrder = append(s.jobOrder, job.ID)
	return nil
}

func (s *memStore) MarkInProgress(_ context.Context, jobID string) error {
	return s.updateJob(jobID, func(job *domain.DiscoveryJob) {
		now := time.Now().UTC()
		job.Status = domain.JobInProgress
		job.StartedAt = &now
	})
}

func (s *memStore) MarkCompleted(_ context.Context, jobID string, found int) error {
	return s.updateJob(jobID, func(job *domain.DiscoveryJob) {
		now := time.Now().UTC()
		job.Status = domain.JobCompleted
		job.CompetitorsFound = found
		job.FinishedAt = &now
	})
}

func (s *memStore) MarkFailed(_ context.Context, jobID string, message string) error {
	return s.updateJob(jobID, func(job *domain.DiscoveryJob) {
		now := time.Now().UTC()
		job.Status = domain.JobFailed
		job.ErrorMessage = message
		job.FinishedAt = &now
	})
}

func (s *memStore) updateJob(jobID string, apply func(*domain.DiscoveryJob)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[jobID]
	if !ok {
		return domain.ErrNotFound
	}
	apply(job)
	return nil
}

func (s *memStore) LatestCompleted(_ context.Context, websiteID string) (domain.DiscoveryJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var latest *domain.DiscoveryJob
	for _, id := range s.jobOrder {
		job := s.jobs[id]
		if job.WebsiteID != websiteID || job.Status != domain.JobCompleted {
			continue
		}
		if latest == nil || (job.FinishedAt != nil && latest.FinishedAt != nil && job.FinishedAt.After(*latest.FinishedAt)) {
			latest = job
		}
	}
	if latest == nil {
		return domain.DiscoveryJob{}, domain.ErrNotFound
	}
	return *latest, nil
}

func (s *memStore) Insert(_ context.Context, a domain.ThreatAssessment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assessments[a.WebsiteID] = append(s.assessments[a.WebsiteID], a)
	return nil
}

func (s *memStore) Latest(_ context.Context, websiteID string) (domain.ThreatAssessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	history := s.assessments[websiteID]
	if len(history) == 0 {
		return domain.ThreatAssessment{}, domain.ErrNotFound
	}
	return history[len(history)-1], nil
}

func (s *memStore) lastJob() domain.DiscoveryJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.jobOrder) == 0 {
		return domain.DiscoveryJob{}
	}
	return *s.jobs[s.jobOrder[len(s.jobOrder)-1]]
}

func (s *memStore) competitorURLs(websiteID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var urls []string
	for url := range s.competitors[websiteID] {
		urls = append(urls, url)
	}
	return urls
}
