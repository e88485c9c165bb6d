package choice

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/goldwen/matching-backend/internal/config"
	"github.com/goldwen/matching-backend/internal/domain"
	"github.com/goldwen/matching-backend/internal/repository"
)

type fakeUserRepo struct {
	users map[int]*domain.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) UpdatePremium(_ context.Context, id int, isPremium bool) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	user.IsPremium = isPremium
	return user, nil
}

func (f *fakeUserRepo) QueryActiveCandidates(_ context.Context, _ repository.CandidateCriteria) ([]*domain.User, error) {
	return nil, nil
}

type fakeChoiceRepo struct {
	choices []*domain.Choice
	nextID  int
}

func (f *fakeChoiceRepo) Create(_ context.Context, choice *domain.Choice) error {
	f.nextID++
	choice.ID = f.nextID
	f.choices = append(f.choices, choice)
	return nil
}

func (f *fakeChoiceRepo) CountByChooserSince(_ context.Context, userID int, since time.Time) (int, error) {
	count := 0
	for _, c := range f.choices {
		if c.UserID == userID && !c.ChoiceDate.Before(since) {
			count++
		}
	}
	return count, nil
}

func (f *fakeChoiceRepo) ChosenIDsSince(_ context.Context, userID int, since time.Time) ([]int, error) {
	var ids []int
	for _, c := range f.choices {
		if c.UserID == userID && !c.ChoiceDate.Before(since) {
			ids = append(ids, c.ChosenUserID)
		}
	}
	return ids, nil
}

func (f *fakeChoiceRepo) GetReverse(_ context.Context, chosenUserID, userID int) (*domain.Choice, error) {
	for _, c := range f.choices {
		if c.UserID == chosenUserID && c.ChosenUserID == userID {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeChoiceRepo) UpdateMatchFlag(_ context.Context, choiceID int, isMatch bool) error {
	for _, c := range f.choices {
		if c.ID == choiceID {
			c.IsMatch = isMatch
			return nil
		}
	}
	return errors.New("choice not found")
}

func (f *fakeChoiceRepo) ListByChooser(_ context.Context, userID int, limit int) ([]*domain.Choice, error) {
	var out []*domain.Choice
	for i := len(f.choices) - 1; i >= 0 && len(out) < limit; i-- {
		if f.choices[i].UserID == userID {
			out = append(out, f.choices[i])
		}
	}
	return out, nil
}

func (f *fakeChoiceRepo) byID(id int) *domain.Choice {
	for _, c := range f.choices {
		if c.ID == id {
			return c
		}
	}
	return nil
}

type fakeInsight struct {
	insight string
	err     error
	calls   int
}

func (f *fakeInsight) GenerateMatchInsight(_ context.Context, _, _ *domain.User) (string, error) {
	f.calls++
	return f.insight, f.err
}

func testConfig() config.MatchingConfig {
	return config.MatchingConfig{
		StandardDailyChoices: 1,
		PremiumDailyChoices:  3,
	}
}

func testUser(id int, premium bool) *domain.User {
	return &domain.User{
		ID:        id,
		Email:     fmt.Sprintf("user%d@example.com", id),
		FirstName: fmt.Sprintf("User%d", id),
		Age:       28,
		Gender:    domain.GenderFemale,
		IsPremium: premium,
		IsActive:  true,
	}
}

func newUseCase(insight InsightGenerator, users ...*domain.User) (*ChoiceUseCase, *fakeChoiceRepo) {
	userRepo := &fakeUserRepo{users: make(map[int]*domain.User)}
	for _, u := range users {
		userRepo.users[u.ID] = u
	}
	choiceRepo := &fakeChoiceRepo{}
	return NewChoiceUseCase(userRepo, choiceRepo, insight, testConfig(), zap.NewNop()), choiceRepo
}

func TestRecordChoiceStandardQuota(t *testing.T) {
	uc, _ := newUseCase(nil, testUser(1, false), testUser(2, false), testUser(3, false))

	resp, err := uc.RecordChoice(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.False(t, resp.IsMatch)

	_, err = uc.RecordChoice(context.Background(), 1, 3)
	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)
}

func TestRecordChoicePremiumQuota(t *testing.T) {
	uc, _ := newUseCase(nil,
		testUser(1, true), testUser(2, false), testUser(3, false),
		testUser(4, false), testUser(5, false))

	for _, chosen := range []int{2, 3, 4} {
		_, err := uc.RecordChoice(context.Background(), 1, chosen)
		require.NoError(t, err)
	}

	_, err := uc.RecordChoice(context.Background(), 1, 5)
	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)
}

func TestRecordChoiceMutualMatchFlagsBothRows(t *testing.T) {
	uc, repo := newUseCase(nil, testUser(1, false), testUser(2, false))

	// The reverse choice can be arbitrarily old; match detection is unbounded.
	reverse := &domain.Choice{
		UserID:       2,
		ChosenUserID: 1,
		ChoiceDate:   time.Now().UTC().AddDate(0, -6, 0),
	}
	require.NoError(t, repo.Create(context.Background(), reverse))

	resp, err := uc.RecordChoice(context.Background(), 1, 2)
	require.NoError(t, err)

	assert.True(t, resp.IsMatch)
	assert.True(t, resp.Choice.IsMatch)
	assert.True(t, repo.byID(resp.Choice.ID).IsMatch)
	assert.True(t, repo.byID(reverse.ID).IsMatch)
}

func TestRecordChoiceNoReverseNoMatch(t *testing.T) {
	uc, repo := newUseCase(nil, testUser(1, false), testUser(2, false))

	resp, err := uc.RecordChoice(context.Background(), 1, 2)
	require.NoError(t, err)

	assert.False(t, resp.IsMatch)
	assert.Nil(t, resp.MatchInsight)
	assert.False(t, repo.byID(resp.Choice.ID).IsMatch)
}

func TestRecordChoiceChosenUserNotFound(t *testing.T) {
	uc, _ := newUseCase(nil, testUser(1, false))

	_, err := uc.RecordChoice(context.Background(), 1, 99)
	assert.ErrorIs(t, err, domain.ErrChosenUserNotFound)
}

func TestRecordChoiceUnknownChooser(t *testing.T) {
	uc, _ := newUseCase(nil, testUser(2, false))

	_, err := uc.RecordChoice(context.Background(), 1, 2)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRecordChoiceAttachesInsightOnMatch(t *testing.T) {
	gen := &fakeInsight{insight: "You both value deep conversation."}
	uc, repo := newUseCase(gen, testUser(1, false), testUser(2, false))

	require.NoError(t, repo.Create(context.Background(), &domain.Choice{
		UserID: 2, ChosenUserID: 1, ChoiceDate: time.Now().UTC(),
	}))

	resp, err := uc.RecordChoice(context.Background(), 1, 2)
	require.NoError(t, err)

	require.NotNil(t, resp.MatchInsight)
	assert.Equal(t, gen.insight, *resp.MatchInsight)
	assert.Equal(t, 1, gen.calls)
}

func TestRecordChoiceInsightFailureDoesNotFailMatch(t *testing.T) {
	gen := &fakeInsight{err: errors.New("upstream unavailable")}
	uc, repo := newUseCase(gen, testUser(1, false), testUser(2, false))

	require.NoError(t, repo.Create(context.Background(), &domain.Choice{
		UserID: 2, ChosenUserID: 1, ChoiceDate: time.Now().UTC(),
	}))

	resp, err := uc.RecordChoice(context.Background(), 1, 2)
	require.NoError(t, err)

	assert.True(t, resp.IsMatch)
	assert.Nil(t, resp.MatchInsight)
}

func TestRecordChoiceNoInsightWithoutMatch(t *testing.T) {
	gen := &fakeInsight{insight: "unused"}
	uc, _ := newUseCase(gen, testUser(1, false), testUser(2, false))

	resp, err := uc.RecordChoice(context.Background(), 1, 2)
	require.NoError(t, err)

	assert.Nil(t, resp.MatchInsight)
	assert.Equal(t, 0, gen.calls)
}

func TestListChoicesUnknownUser(t *testing.T) {
	uc, _ := newUseCase(nil)

	_, err := uc.ListChoices(context.Background(), 1, 0)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestListChoicesMostRecentFirst(t *testing.T) {
	uc, repo := newUseCase(nil, testUser(1, false))

	now := time.Now().UTC()
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(context.Background(), &domain.Choice{
			UserID: 1, ChosenUserID: 10 + i, ChoiceDate: now.AddDate(0, 0, i-2),
		}))
	}

	choices, err := uc.ListChoices(context.Background(), 1, 2)
	require.NoError(t, err)

	require.Len(t, choices, 2)
	assert.Equal(t, 12, choices[0].ChosenUserID)
	assert.Equal(t, 11, choices[1].ChosenUserID)
}
