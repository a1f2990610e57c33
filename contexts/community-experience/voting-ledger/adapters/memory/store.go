package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"perseval/contexts/community-experience/voting-ledger/domain/entities"
	"perseval/contexts/community-experience/voting-ledger/ports"
)

// Store is the in-memory ledger twin for tests and DSN-less wiring. Its
// trust aggregate is the trust-vote share, matching the database function's
// documented shape: neutral at zero votes, deterministic otherwise.
type Store struct {
	mu       sync.RWMutex
	votes    map[string]entities.Vote
	attempts map[string][]time.Time
}

func NewStore() *Store {
	return &Store{
		votes:    make(map[string]entities.Vote),
		attempts: make(map[string][]time.Time),
	}
}

func (s *Store) UpsertVote(_ context.Context, vote entities.Vote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.votes[voteKey(vote.Handle, vote.Platform, vote.VoterIdentity)] = vote
	return nil
}

func (s *Store) GetVote(_ context.Context, handle, platform, voterIdentity string) (entities.Vote, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	vote, ok := s.votes[voteKey(handle, platform, voterIdentity)]
	return vote, ok, nil
}

func (s *Store) CountVotes(_ context.Context, handle, platform string) (int64, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	trustVotes, distrustVotes := s.countLocked(handle, platform)
	return trustVotes, distrustVotes, nil
}

func (s *Store) DeleteVote(_ context.Context, handle, platform, voterIdentity string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := voteKey(handle, platform, voterIdentity)
	if _, ok := s.votes[key]; !ok {
		return false, nil
	}
	delete(s.votes, key)
	return true, nil
}

func (s *Store) ListVoteTotals(_ context.Context, limit, offset int) ([]ports.EntityVoteTotals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byEntity := make(map[string]*ports.EntityVoteTotals)
	for _, vote := range s.votes {
		key := vote.Handle + "|" + vote.Platform
		totals, ok := byEntity[key]
		if !ok {
			totals = &ports.EntityVoteTotals{Handle: vote.Handle, Platform: vote.Platform}
			byEntity[key] = totals
		}
		if vote.VoteType == entities.VoteTypeTrust {
			totals.TrustVotes++
		} else {
			totals.DistrustVotes++
		}
	}

	items := make([]ports.EntityVoteTotals, 0, len(byEntity))
	for _, totals := range byEntity {
		items = append(items, *totals)
	}
	sort.Slice(items, func(i, j int) bool {
		totalI := items[i].TrustVotes + items[i].DistrustVotes
		totalJ := items[j].TrustVotes + items[j].DistrustVotes
		if totalI != totalJ {
			return totalI > totalJ
		}
		return items[i].Handle < items[j].Handle
	})

	if offset > 0 {
		if offset >= len(items) {
			return nil, nil
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) RecordAttempt(_ context.Context, voterIdentity string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts[voterIdentity] = append(s.attempts[voterIdentity], at.UTC())
	return nil
}

func (s *Store) CountAttemptsSince(_ context.Context, voterIdentity string, since time.Time) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, at := range s.attempts[voterIdentity] {
		if !at.Before(since.UTC()) {
			count++
		}
	}
	return count, nil
}

func (s *Store) UserTrustScore(_ context.Context, handle, platform string) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	trustVotes, distrustVotes := s.countLocked(handle, platform)
	total := trustVotes + distrustVotes
	if total == 0 {
		return entities.NeutralUserTrustScore, nil
	}
	return float64(trustVotes) / float64(total), nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) countLocked(handle, platform string) (int64, int64) {
	var trustVotes, distrustVotes int64
	for _, vote := range s.votes {
		if vote.Handle != handle || vote.Platform != platform {
			continue
		}
		if vote.VoteType == entities.VoteTypeTrust {
			trustVotes++
		} else {
			distrustVotes++
		}
	}
	return trustVotes, distrustVotes
}

func voteKey(handle, platform, voterIdentity string) string {
	return handle + "|" + platform + "|" + voterIdentity
}

var _ ports.VoteRepository = (*Store)(nil)
var _ ports.VoteRateStore = (*Store)(nil)
var _ ports.VoteScoreAggregate = (*Store)(nil)
