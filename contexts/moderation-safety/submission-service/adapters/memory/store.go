package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"perseval/contexts/moderation-safety/submission-service/domain/entities"
	domainerrors "perseval/contexts/moderation-safety/submission-service/domain/errors"
	"perseval/contexts/moderation-safety/submission-service/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu          sync.RWMutex
	submissions map[string]entities.Submission
}

func NewStore(seed []entities.Submission) *Store {
	submissions := make(map[string]entities.Submission, len(seed))
	for _, item := range seed {
		submissions[item.SubmissionID] = item
	}
	return &Store{submissions: submissions}
}

func (s *Store) CreateSubmission(_ context.Context, submission entities.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.submissions[submission.SubmissionID]; exists {
		return domainerrors.ErrDuplicateSubmission
	}
	s.submissions[submission.SubmissionID] = submission
	return nil
}

func (s *Store) UpdateSubmission(_ context.Context, submission entities.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.submissions[submission.SubmissionID]; !exists {
		return domainerrors.ErrSubmissionNotFound
	}
	s.submissions[submission.SubmissionID] = submission
	return nil
}

func (s *Store) GetSubmission(_ context.Context, submissionID string) (entities.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.submissions[strings.TrimSpace(submissionID)]
	if !exists {
		return entities.Submission{}, domainerrors.ErrSubmissionNotFound
	}
	return item, nil
}

func (s *Store) GetActiveSubmission(_ context.Context, handle, platform string) (entities.Submission, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	normalizedHandle := entities.NormalizeHandle(handle)
	normalizedPlatform := strings.ToLower(strings.TrimSpace(platform))

	var (
		newest entities.Submission
		found  bool
	)
	for _, item := range s.submissions {
		if item.Handle != normalizedHandle || item.Platform != normalizedPlatform {
			continue
		}
		if item.Status.IsTerminal() {
			continue
		}
		if !found || item.CreatedAt.After(newest.CreatedAt) {
			newest = item
			found = true
		}
	}
	return newest, found, nil
}

func (s *Store) CountBySubmitterSince(_ context.Context, submitterIdentity string, since time.Time) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, item := range s.submissions {
		if item.SubmitterIdentity == strings.TrimSpace(submitterIdentity) && !item.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (s *Store) ListSubmissions(
	_ context.Context,
	filter ports.SubmissionFilter,
) ([]entities.Submission, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Submission, 0, len(s.submissions))
	for _, item := range s.submissions {
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	total := int64(len(items))
	if filter.Offset > 0 {
		if filter.Offset >= len(items) {
			return nil, total, nil
		}
		items = items[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(items) {
		items = items[:filter.Limit]
	}
	return items, total, nil
}

func (s *Store) ListBySubmitter(_ context.Context, submitterIdentity string) ([]entities.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Submission, 0)
	for _, item := range s.submissions {
		if item.SubmitterIdentity == strings.TrimSpace(submitterIdentity) {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

var _ ports.Repository = (*Store)(nil)
