package services

import (
	"context"
	"log"

	"github.com/google/uuid"

	"lifemate-backend/internal/jobfeed"
	"lifemate-backend/internal/models"
	"lifemate-backend/internal/repository"
)

const jobListLimit = 50

// JobBoardService serves the job board: stored postings plus the periodic
// refresh from the aggregation feed. Search is a simple in-memory match over
// the active postings.
type JobBoardService struct {
	repo *repository.Repository
	feed *jobfeed.Client
}

func NewJobBoardService(repo *repository.Repository, feed *jobfeed.Client) *JobBoardService {
	return &JobBoardService{repo: repo, feed: feed}
}

// List returns active postings, optionally limited to one kind.
func (s *JobBoardService) List(ctx context.Context, kind models.JobKind) ([]models.JobPosting, error) {
	return s.repo.ListJobPostings(ctx, kind, jobListLimit)
}

// Get returns one posting.
func (s *JobBoardService) Get(ctx context.Context, postingID uuid.UUID) (*models.JobPosting, error) {
	return s.repo.GetJobPosting(ctx, postingID)
}

// Search filters active postings by a case-insensitive term, matching the
// kind-specific fields of each variant.
func (s *JobBoardService) Search(ctx context.Context, kind models.JobKind, query string) ([]models.JobPosting, error) {
	postings, err := s.repo.ListJobPostings(ctx, kind, jobListLimit)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return postings, nil
	}

	matched := make([]models.JobPosting, 0, len(postings))
	for _, posting := range postings {
		if posting.Matches(query) {
			matched = append(matched, posting)
		}
	}
	return matched, nil
}

// RefreshFromFeed pulls both posting kinds from the feed and upserts them.
// Returns how many postings were stored.
func (s *JobBoardService) RefreshFromFeed(ctx context.Context) (int, error) {
	stored := 0

	government, err := s.feed.FetchGovernmentJobs(ctx)
	if err != nil {
		return stored, err
	}
	stored += s.storeFeedPostings(ctx, models.JobKindGovernment, government)

	private, err := s.feed.FetchPrivateJobs(ctx)
	if err != nil {
		return stored, err
	}
	stored += s.storeFeedPostings(ctx, models.JobKindPrivate, private)

	return stored, nil
}

func (s *JobBoardService) storeFeedPostings(ctx context.Context, kind models.JobKind, feedPostings []jobfeed.FeedPosting) int {
	stored := 0
	for _, fp := range feedPostings {
		posting := postingFromFeed(kind, fp)
		if err := posting.Validate(); err != nil {
			log.Printf("Warning: skipping invalid %s posting %q: %v", kind, fp.ID, err)
			continue
		}
		if err := s.repo.UpsertJobPosting(ctx, posting); err != nil {
			log.Printf("Warning: failed to store posting %q: %v", fp.ID, err)
			continue
		}
		stored++
	}
	return stored
}

func postingFromFeed(kind models.JobKind, fp jobfeed.FeedPosting) *models.JobPosting {
	posting := &models.JobPosting{
		ExternalID:   fp.ID,
		Kind:         kind,
		Title:        fp.Title,
		Organization: fp.Organization,
		Location:     fp.Location,
		Salary:       fp.Salary,
		Description:  fp.Description,
		IsActive:     true,
		PostedAt:     fp.PostedAt(),
	}

	switch kind {
	case models.JobKindGovernment:
		posting.Department = fp.Department
		posting.ApplicationDeadline = fp.ApplicationDeadline
		posting.Qualifications = fp.Qualifications
		posting.AgeLimit = fp.AgeLimit
		posting.TotalVacancies = fp.TotalVacancies
		posting.ApplicationFee = fp.ApplicationFee
		posting.SelectionProcess = fp.SelectionProcess
		posting.OfficialWebsite = fp.OfficialWebsite
	case models.JobKindPrivate:
		posting.JobType = fp.JobType
		posting.ExperienceRequired = fp.ExperienceRequired
		posting.Requirements = fp.Requirements
		posting.Benefits = fp.Benefits
		posting.Skills = fp.Skills
		posting.Remote = fp.Remote
		posting.ApplicationEmail = fp.ApplicationEmail
	}
	return posting
}
