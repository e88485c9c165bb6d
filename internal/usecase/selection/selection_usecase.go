package selection

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/goldwen/matching-backend/internal/config"
	"github.com/goldwen/matching-backend/internal/domain"
	"github.com/goldwen/matching-backend/internal/repository"
	"github.com/goldwen/matching-backend/pkg/keylock"
	"go.uber.org/zap"
)

// ageRange is the ±years window for candidate eligibility.
const ageRange = 10

// Scorer computes the symmetric compatibility score for a user pair.
type Scorer interface {
	Score(ctx context.Context, user1ID, user2ID int) (float64, error)
}

type SelectionUseCase struct {
	userRepo      repository.UserRepository
	selectionRepo repository.SelectionRepository
	choiceRepo    repository.ChoiceRepository
	scorer        Scorer
	cfg           config.MatchingConfig
	logger        *zap.Logger
	locks         *keylock.KeyLock
}

func NewSelectionUseCase(
	userRepo repository.UserRepository,
	selectionRepo repository.SelectionRepository,
	choiceRepo repository.ChoiceRepository,
	scorer Scorer,
	cfg config.MatchingConfig,
	logger *zap.Logger,
) *SelectionUseCase {
	return &SelectionUseCase{
		userRepo:      userRepo,
		selectionRepo: selectionRepo,
		choiceRepo:    choiceRepo,
		scorer:        scorer,
		cfg:           cfg,
		logger:        logger,
		locks:         keylock.New(),
	}
}

// DailySelectionResponse is the selection surfaced to the caller along with
// the user's choice quota.
type DailySelectionResponse struct {
	UserID            int                         `json:"user_id"`
	SelectionDate     time.Time                   `json:"selection_date"`
	Candidates        []domain.SelectionCandidate `json:"candidates"`
	MaxChoicesAllowed int                         `json:"max_choices_allowed"`
}

// RankedCandidatesResponse is the result of an ad hoc ranking request.
type RankedCandidatesResponse struct {
	UserID      int                         `json:"user_id"`
	Candidates  []domain.SelectionCandidate `json:"candidates"`
	GeneratedAt time.Time                   `json:"generated_at"`
}

// GetOrGenerate returns today's selection, generating and persisting one if
// none exists yet. Repeated calls within the same UTC day return the same
// list.
func (uc *SelectionUseCase) GetOrGenerate(ctx context.Context, userID int) (*DailySelectionResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	uc.locks.Lock(userID)
	defer uc.locks.Unlock(userID)

	now := time.Now().UTC()

	rows, err := uc.selectionRepo.GetForDate(ctx, userID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to read daily selection: %w", err)
	}

	var candidates []domain.SelectionCandidate
	if len(rows) > 0 {
		candidates, err = uc.candidatesFromRows(ctx, rows)
	} else {
		candidates, err = uc.generateLocked(ctx, user, now)
	}
	if err != nil {
		return nil, err
	}

	return uc.response(user, now, candidates), nil
}

// ForceRegenerate recomputes the selection unconditionally, replacing any
// existing rows for today.
func (uc *SelectionUseCase) ForceRegenerate(ctx context.Context, userID int) (*DailySelectionResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	uc.locks.Lock(userID)
	defer uc.locks.Unlock(userID)

	now := time.Now().UTC()
	candidates, err := uc.generateLocked(ctx, user, now)
	if err != nil {
		return nil, err
	}

	return uc.response(user, now, candidates), nil
}

// RankCandidates scores eligible candidates on demand, honoring extra
// exclusions, without touching the persisted daily selection.
func (uc *SelectionUseCase) RankCandidates(ctx context.Context, userID int, extraExcludeIDs []int, maxResults int) (*RankedCandidatesResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if maxResults <= 0 {
		maxResults = uc.cfg.MaxDailyProfiles
	}
	if maxResults > uc.cfg.AdHocMaxResults {
		maxResults = uc.cfg.AdHocMaxResults
	}

	now := time.Now().UTC()
	excluded, err := uc.excludedIDs(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	excluded = append(excluded, extraExcludeIDs...)

	scored, err := uc.scoreEligible(ctx, user, excluded)
	if err != nil {
		return nil, err
	}

	sortByScore(scored)
	qualifying := make([]scoredCandidate, 0, len(scored))
	for _, c := range scored {
		if c.score >= uc.cfg.CompatibilityThreshold {
			qualifying = append(qualifying, c)
		}
	}
	if len(qualifying) > maxResults {
		qualifying = qualifying[:maxResults]
	}

	return &RankedCandidatesResponse{
		UserID:      userID,
		Candidates:  toRanked(qualifying),
		GeneratedAt: now,
	}, nil
}

func (uc *SelectionUseCase) response(user *domain.User, now time.Time, candidates []domain.SelectionCandidate) *DailySelectionResponse {
	return &DailySelectionResponse{
		UserID:            user.ID,
		SelectionDate:     now,
		Candidates:        candidates,
		MaxChoicesAllowed: user.MaxDailyChoices(uc.cfg.StandardDailyChoices, uc.cfg.PremiumDailyChoices),
	}
}

// generateLocked runs the filter → score → threshold → rank pipeline and
// atomically replaces today's rows. Callers must hold the user's lock.
func (uc *SelectionUseCase) generateLocked(ctx context.Context, user *domain.User, now time.Time) ([]domain.SelectionCandidate, error) {
	excluded, err := uc.excludedIDs(ctx, user.ID, now)
	if err != nil {
		return nil, err
	}

	scored, err := uc.scoreEligible(ctx, user, excluded)
	if err != nil {
		return nil, err
	}

	sortByScore(scored)
	top := pickTop(scored, uc.cfg.CompatibilityThreshold, uc.cfg.MaxDailyProfiles, uc.cfg.MinDailyProfiles)
	candidates := toRanked(top)

	if err := uc.persistSelection(ctx, user.ID, now, candidates); err != nil {
		return nil, err
	}

	uc.logger.Info("daily selection generated",
		zap.Int("user_id", user.ID),
		zap.Int("scored", len(scored)),
		zap.Int("selected", len(candidates)))

	return candidates, nil
}

func (uc *SelectionUseCase) scoreEligible(ctx context.Context, user *domain.User, excludedIDs []int) ([]scoredCandidate, error) {
	criteria := repository.CandidateCriteria{
		SubjectGender:      user.Gender,
		SubjectAge:         user.Age,
		AgeRange:           ageRange,
		ExcludedIDs:        excludedIDs,
		RequireCoordinates: user.HasCoordinates(),
		Limit:              uc.cfg.CandidateLimit,
	}

	candidates, err := uc.userRepo.QueryActiveCandidates(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}

	scored := make([]scoredCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		score, err := uc.scorer.Score(ctx, user.ID, candidate.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to score candidate %d: %w", candidate.ID, err)
		}
		scored = append(scored, scoredCandidate{user: candidate, score: score})
	}
	return scored, nil
}

// excludedIDs unions self, users chosen in the choice window and candidates
// shown in the selection window. The windows are intentionally different
// lengths.
func (uc *SelectionUseCase) excludedIDs(ctx context.Context, userID int, now time.Time) ([]int, error) {
	seen := map[int]bool{userID: true}

	chosen, err := uc.choiceRepo.ChosenIDsSince(ctx, userID, now.AddDate(0, 0, -uc.cfg.ChoiceWindowDays))
	if err != nil {
		return nil, fmt.Errorf("failed to read recent choices: %w", err)
	}
	for _, id := range chosen {
		seen[id] = true
	}

	// The shown window covers previous days only, so regenerating today's
	// selection never excludes its own candidates.
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	shown, err := uc.selectionRepo.RecentCandidateIDs(ctx, userID, now.AddDate(0, 0, -uc.cfg.SelectionWindowDays), startOfDay)
	if err != nil {
		return nil, fmt.Errorf("failed to read recent selections: %w", err)
	}
	for _, id := range shown {
		seen[id] = true
	}

	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

func (uc *SelectionUseCase) persistSelection(ctx context.Context, userID int, now time.Time, candidates []domain.SelectionCandidate) error {
	// Stored at noon so the row sits unambiguously inside its UTC day.
	selectionDate := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, time.UTC)

	rows := make([]*domain.DailySelection, 0, len(candidates))
	for _, c := range candidates {
		rows = append(rows, &domain.DailySelection{
			UserID:             userID,
			CandidateUserID:    c.UserID,
			CompatibilityScore: c.CompatibilityScore,
			SelectionDate:      selectionDate,
			RankPosition:       c.RankPosition,
		})
	}

	if err := uc.selectionRepo.ReplaceForDate(ctx, userID, now, rows); err != nil {
		return fmt.Errorf("failed to persist daily selection: %w", err)
	}
	return nil
}

// candidatesFromRows rebuilds the response list from persisted rows,
// preserving stored scores and ranks.
func (uc *SelectionUseCase) candidatesFromRows(ctx context.Context, rows []*domain.DailySelection) ([]domain.SelectionCandidate, error) {
	candidates := make([]domain.SelectionCandidate, 0, len(rows))
	for _, row := range rows {
		candidate, err := uc.userRepo.GetByID(ctx, row.CandidateUserID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				// Candidate deleted since generation; keep the rest of the list.
				uc.logger.Warn("selection candidate no longer exists",
					zap.Int("user_id", row.UserID), zap.Int("candidate_id", row.CandidateUserID))
				continue
			}
			return nil, err
		}
		candidates = append(candidates, domain.SelectionCandidate{
			UserID:             candidate.ID,
			FirstName:          candidate.FirstName,
			Age:                candidate.Age,
			LocationCity:       candidate.LocationCity,
			CompatibilityScore: row.CompatibilityScore,
			RankPosition:       row.RankPosition,
		})
	}
	return candidates, nil
}
