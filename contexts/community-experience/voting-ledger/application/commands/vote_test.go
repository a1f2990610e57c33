package commands

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"perseval/contexts/community-experience/voting-ledger/adapters/memory"
	"perseval/contexts/community-experience/voting-ledger/domain/entities"
	domainerrors "perseval/contexts/community-experience/voting-ledger/domain/errors"
)

type movableClock struct {
	now time.Time
}

func (c *movableClock) Now() time.Time { return c.now }

type fakeMarketplaceSync struct {
	err   error
	calls int
}

func (f *fakeMarketplaceSync) SyncVoteStats(_ context.Context, _, _ string, _ float64, _ int64) error {
	f.calls++
	return f.err
}

func newVoteUseCase(store *memory.Store, clock *movableClock, sync *fakeMarketplaceSync) VoteUseCase {
	return VoteUseCase{
		Votes:       store,
		RateStore:   store,
		Aggregate:   store,
		Marketplace: sync,
		Clock:       clock,
	}
}

func TestSubmitVoteUpsertsInsteadOfDuplicating(t *testing.T) {
	store := memory.NewStore()
	clock := &movableClock{now: time.Date(2026, time.May, 1, 12, 0, 0, 0, time.UTC)}
	uc := newVoteUseCase(store, clock, &fakeMarketplaceSync{})

	first, err := uc.SubmitVote(context.Background(), SubmitVoteCommand{
		Handle:        "@Guru",
		VoterIdentity: "voter-1",
		VoteType:      entities.VoteTypeTrust,
	})
	if err != nil {
		t.Fatalf("first vote failed: %v", err)
	}
	if first.Stats.TrustVotes != 1 || first.Stats.TotalVotes != 1 {
		t.Fatalf("first stats: %+v", first.Stats)
	}

	second, err := uc.SubmitVote(context.Background(), SubmitVoteCommand{
		Handle:        "guru",
		VoterIdentity: "voter-1",
		VoteType:      entities.VoteTypeDistrust,
		Comment:       "changed my mind",
	})
	if err != nil {
		t.Fatalf("repeat vote failed: %v", err)
	}
	if second.Stats.TrustVotes != 0 || second.Stats.DistrustVotes != 1 || second.Stats.TotalVotes != 1 {
		t.Fatalf("repeat vote must overwrite, got %+v", second.Stats)
	}
	if !second.Vote.CreatedAt.Equal(first.Vote.CreatedAt) {
		t.Fatalf("overwrite must keep original created_at")
	}
}

func TestVoteStatsPartitionByType(t *testing.T) {
	store := memory.NewStore()
	clock := &movableClock{now: time.Date(2026, time.May, 1, 12, 0, 0, 0, time.UTC)}
	uc := newVoteUseCase(store, clock, &fakeMarketplaceSync{})

	var last SubmitVoteResult
	var err error
	for i := 0; i < 3; i++ {
		last, err = uc.SubmitVote(context.Background(), SubmitVoteCommand{
			Handle:        "guru",
			VoterIdentity: fmt.Sprintf("trusting-%d", i),
			VoteType:      entities.VoteTypeTrust,
		})
		if err != nil {
			t.Fatalf("trust vote %d failed: %v", i, err)
		}
	}
	last, err = uc.SubmitVote(context.Background(), SubmitVoteCommand{
		Handle:        "guru",
		VoterIdentity: "skeptic",
		VoteType:      entities.VoteTypeDistrust,
	})
	if err != nil {
		t.Fatalf("distrust vote failed: %v", err)
	}
	if last.Stats.TrustVotes != 3 || last.Stats.DistrustVotes != 1 || last.Stats.TotalVotes != 4 {
		t.Fatalf("stats: %+v", last.Stats)
	}
	if last.Stats.UserTrustScore != 0.75 {
		t.Fatalf("aggregate score: got %v", last.Stats.UserTrustScore)
	}
}

func TestSubmitVoteEnforcesHourlyQuota(t *testing.T) {
	store := memory.NewStore()
	clock := &movableClock{now: time.Date(2026, time.May, 1, 12, 0, 0, 0, time.UTC)}
	uc := newVoteUseCase(store, clock, &fakeMarketplaceSync{})

	for i := 0; i < 20; i++ {
		if _, err := uc.SubmitVote(context.Background(), SubmitVoteCommand{
			Handle:        fmt.Sprintf("entity-%d", i),
			VoterIdentity: "busy-voter",
			VoteType:      entities.VoteTypeTrust,
		}); err != nil {
			t.Fatalf("vote %d failed: %v", i+1, err)
		}
	}
	_, err := uc.SubmitVote(context.Background(), SubmitVoteCommand{
		Handle:        "entity-21",
		VoterIdentity: "busy-voter",
		VoteType:      entities.VoteTypeTrust,
	})
	if !errors.Is(err, domainerrors.ErrVoteRateLimited) {
		t.Fatalf("expected hourly quota, got %v", err)
	}

	clock.now = clock.now.Add(61 * time.Minute)
	if _, err := uc.SubmitVote(context.Background(), SubmitVoteCommand{
		Handle:        "entity-21",
		VoterIdentity: "busy-voter",
		VoteType:      entities.VoteTypeTrust,
	}); err != nil {
		t.Fatalf("quota must roll off after an hour: %v", err)
	}
}

func TestDeleteVoteIsIdempotent(t *testing.T) {
	store := memory.NewStore()
	clock := &movableClock{now: time.Date(2026, time.May, 1, 12, 0, 0, 0, time.UTC)}
	uc := newVoteUseCase(store, clock, &fakeMarketplaceSync{})

	if _, err := uc.SubmitVote(context.Background(), SubmitVoteCommand{
		Handle:        "guru",
		VoterIdentity: "voter-1",
		VoteType:      entities.VoteTypeTrust,
	}); err != nil {
		t.Fatalf("vote failed: %v", err)
	}

	stats, err := uc.DeleteVote(context.Background(), DeleteVoteCommand{
		Handle:        "guru",
		VoterIdentity: "voter-1",
	})
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if stats.TotalVotes != 0 || stats.UserTrustScore != entities.NeutralUserTrustScore {
		t.Fatalf("stats after delete: %+v", stats)
	}

	_, err = uc.DeleteVote(context.Background(), DeleteVoteCommand{
		Handle:        "guru",
		VoterIdentity: "voter-1",
	})
	if !errors.Is(err, domainerrors.ErrVoteNotFound) {
		t.Fatalf("second delete must report not found, got %v", err)
	}
}

func TestSubmitVoteSurvivesMarketplaceSyncFailure(t *testing.T) {
	store := memory.NewStore()
	clock := &movableClock{now: time.Date(2026, time.May, 1, 12, 0, 0, 0, time.UTC)}
	sync := &fakeMarketplaceSync{err: errors.New("marketplace down")}
	uc := newVoteUseCase(store, clock, sync)

	result, err := uc.SubmitVote(context.Background(), SubmitVoteCommand{
		Handle:        "guru",
		VoterIdentity: "voter-1",
		VoteType:      entities.VoteTypeTrust,
	})
	if err != nil {
		t.Fatalf("sync failure must not fail the vote: %v", err)
	}
	if result.Stats.TotalVotes != 1 {
		t.Fatalf("vote not recorded: %+v", result.Stats)
	}
	if sync.calls != 1 {
		t.Fatalf("sync attempts: got %d", sync.calls)
	}
}

func TestSubmitVoteRejectsUnknownType(t *testing.T) {
	store := memory.NewStore()
	clock := &movableClock{now: time.Now().UTC()}
	uc := newVoteUseCase(store, clock, &fakeMarketplaceSync{})

	_, err := uc.SubmitVote(context.Background(), SubmitVoteCommand{
		Handle:        "guru",
		VoterIdentity: "voter-1",
		VoteType:      "maybe",
	})
	if !errors.Is(err, domainerrors.ErrInvalidVoteType) {
		t.Fatalf("expected invalid vote type, got %v", err)
	}
}
