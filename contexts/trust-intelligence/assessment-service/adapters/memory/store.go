package memory

import (
	"context"
	"sync"
	"time"

	"perseval/contexts/trust-intelligence/assessment-service/domain/entities"
	"perseval/contexts/trust-intelligence/assessment-service/ports"
)

type influencerRecord struct {
	assessment entities.InfluencerAssessment
	updatedAt  time.Time
}

type reputationRecord struct {
	assessment entities.ReputationAssessment
	updatedAt  time.Time
}

// Store is the in-memory cache twin used for tests and DSN-less wiring.
type Store struct {
	mu          sync.RWMutex
	influencers map[string]influencerRecord
	reputations map[string]reputationRecord
}

func NewStore() *Store {
	return &Store{
		influencers: make(map[string]influencerRecord),
		reputations: make(map[string]reputationRecord),
	}
}

func (s *Store) GetInfluencer(
	_ context.Context,
	handle, platform string,
	now time.Time,
) (entities.InfluencerAssessment, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.influencers[influencerKey(handle, platform)]
	if !ok || now.Sub(record.updatedAt) > entities.CacheTTL {
		return entities.InfluencerAssessment{}, false, nil
	}
	return record.assessment, true, nil
}

func (s *Store) PutInfluencer(
	_ context.Context,
	handle, platform string,
	assessment entities.InfluencerAssessment,
	now time.Time,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.influencers[influencerKey(handle, platform)] = influencerRecord{
		assessment: assessment,
		updatedAt:  now,
	}
	return nil
}

func (s *Store) GetReputation(
	_ context.Context,
	kind entities.EntityKind,
	name string,
	now time.Time,
) (entities.ReputationAssessment, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.reputations[reputationKey(kind, name)]
	if !ok || now.Sub(record.updatedAt) > entities.CacheTTL {
		return entities.ReputationAssessment{}, false, nil
	}
	return record.assessment, true, nil
}

func (s *Store) PutReputation(_ context.Context, assessment entities.ReputationAssessment, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reputations[reputationKey(assessment.Kind, assessment.Name)] = reputationRecord{
		assessment: assessment,
		updatedAt:  now,
	}
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func influencerKey(handle, platform string) string {
	return string(entities.EntityKindInfluencer) + ":" + entities.NormalizeEntityKey(handle) + ":" + platform
}

func reputationKey(kind entities.EntityKind, name string) string {
	return string(kind) + ":" + entities.NormalizeEntityKey(name)
}

var _ ports.AssessmentCache = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
