package leaderboard

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/victornm/eqgame/internal/domain"
	"github.com/victornm/eqgame/internal/store"
)

const (
	PageSize = 10
)

type Config struct {
	Store store.Store
}

// Service keeps the append-only list of finished games under the leaderboard key.
type Service struct {
	store store.Store

	// mu serializes read-modify-write of the stored list.
	mu sync.Mutex
}

func NewService(c Config) *Service {
	return &Service{
		store: c.Store,
	}
}

// Record ranks entry against the scores stored so far, then appends it. Rank 1 is the best.
func (s *Service) Record(ctx context.Context, entry domain.LeaderboardEntry) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load(ctx)
	if err != nil {
		return 0, err
	}

	rank := rankOf(entries, entry.Score)

	entries = append(entries, entry)
	if err := store.SaveJSON(ctx, s.store, store.KeyLeaderboard, entries); err != nil {
		return rank, fmt.Errorf("save leaderboard: %w", err)
	}

	return rank, nil
}

// Rank returns the rank score would get among the stored entries.
func (s *Service) Rank(ctx context.Context, score int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load(ctx)
	if err != nil {
		return 0, err
	}

	return rankOf(entries, score), nil
}

type ListRequest struct {
	// Query filters by a case-insensitive substring of the name or the difficulty.
	Query string
	// Page starts at 1.
	Page int
}

type ListResponse struct {
	Entries    []domain.LeaderboardEntry `json:"entries"`
	Page       int                       `json:"page"`
	TotalPages int                       `json:"totalPages"`
	Total      int                       `json:"total"`
}

// List returns one page of the matching entries sorted by score, best first.
func (s *Service) List(ctx context.Context, req ListRequest) (*ListResponse, error) {
	s.mu.Lock()
	entries, err := s.load(ctx)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(req.Query))
	if q != "" {
		entries = slices.DeleteFunc(entries, func(e domain.LeaderboardEntry) bool {
			return !strings.Contains(strings.ToLower(e.Name), q) &&
				!strings.Contains(strings.ToLower(string(e.Difficulty)), q)
		})
	}

	slices.SortStableFunc(entries, func(a, b domain.LeaderboardEntry) int {
		return cmp.Compare(b.Score, a.Score)
	})

	totalPages := max((len(entries)+PageSize-1)/PageSize, 1)
	page := min(max(req.Page, 1), totalPages)

	lo := min((page-1)*PageSize, len(entries))
	hi := min(lo+PageSize, len(entries))

	return &ListResponse{
		Entries:    slices.Clone(entries[lo:hi]),
		Page:       page,
		TotalPages: totalPages,
		Total:      len(entries),
	}, nil
}

// load treats a missing or corrupt list as empty.
func (s *Service) load(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	var entries []domain.LeaderboardEntry
	if _, err := store.LoadJSON(ctx, s.store, store.KeyLeaderboard, &entries); err != nil {
		if store.IsCorrupt(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("load leaderboard: %w", err)
	}

	return entries, nil
}

func rankOf(entries []domain.LeaderboardEntry, score int) int {
	rank := 1
	for _, e := range entries {
		if e.Score > score {
			rank++
		}
	}
	return rank
}
