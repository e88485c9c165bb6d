package personality

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

func (f *fakeUserRepo) UpdatePremium(_ context.Context, id int, _ bool) (*domain.User, error) {
	return f.GetByID(context.Background(), id)
}

func (f *fakeUserRepo) QueryActiveCandidates(_ context.Context, _ repository.CandidateCriteria) ([]*domain.User, error) {
	return nil, nil
}

type fakePersonalityRepo struct {
	stored       map[int][]*domain.PersonalityResponse
	replaceCalls int
}

func (f *fakePersonalityRepo) GetResponses(_ context.Context, userID int) ([]*domain.PersonalityResponse, error) {
	return f.stored[userID], nil
}

func (f *fakePersonalityRepo) Replace(_ context.Context, userID int, responses []*domain.PersonalityResponse) error {
	f.replaceCalls++
	f.stored[userID] = responses
	return nil
}

func newUseCase() (*PersonalityUseCase, *fakePersonalityRepo) {
	userRepo := &fakeUserRepo{users: map[int]*domain.User{
		1: {ID: 1, Email: "user1@example.com", IsActive: true},
	}}
	personalityRepo := &fakePersonalityRepo{stored: make(map[int][]*domain.PersonalityResponse)}
	cfg := config.MatchingConfig{PersonalityQuestions: 10}
	return NewPersonalityUseCase(userRepo, personalityRepo, cfg), personalityRepo
}

func validInputs() []ResponseInput {
	inputs := make([]ResponseInput, 0, 10)
	for q := 1; q <= 10; q++ {
		inputs = append(inputs, ResponseInput{QuestionID: q, ResponseValue: (q % 5) + 1})
	}
	return inputs
}

func TestSubmitStoresFullQuestionnaire(t *testing.T) {
	uc, repo := newUseCase()

	responses, err := uc.Submit(context.Background(), 1, validInputs())
	require.NoError(t, err)

	assert.Len(t, responses, 10)
	assert.Len(t, repo.stored[1], 10)
	assert.Equal(t, 1, repo.stored[1][0].QuestionID)
}

func TestSubmitReplacesPreviousAnswers(t *testing.T) {
	uc, repo := newUseCase()

	_, err := uc.Submit(context.Background(), 1, validInputs())
	require.NoError(t, err)

	updated := validInputs()
	updated[0].ResponseValue = 5
	_, err = uc.Submit(context.Background(), 1, updated)
	require.NoError(t, err)

	assert.Equal(t, 2, repo.replaceCalls)
	assert.Len(t, repo.stored[1], 10)
	assert.Equal(t, 5, repo.stored[1][0].ResponseValue)
}

func TestSubmitRejectsWrongCount(t *testing.T) {
	uc, repo := newUseCase()

	_, err := uc.Submit(context.Background(), 1, validInputs()[:7])

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "responses", verr.Field)
	assert.Equal(t, 0, repo.replaceCalls)
}

func TestSubmitRejectsOutOfRangeValue(t *testing.T) {
	uc, _ := newUseCase()

	inputs := validInputs()
	inputs[3].ResponseValue = 6

	_, err := uc.Submit(context.Background(), 1, inputs)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "response_value", verr.Field)
}

func TestSubmitRejectsUnknownQuestionID(t *testing.T) {
	uc, _ := newUseCase()

	inputs := validInputs()
	inputs[9].QuestionID = 11

	_, err := uc.Submit(context.Background(), 1, inputs)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "question_id", verr.Field)
}

func TestSubmitRejectsDuplicateQuestionID(t *testing.T) {
	uc, _ := newUseCase()

	inputs := validInputs()
	inputs[9].QuestionID = 1

	_, err := uc.Submit(context.Background(), 1, inputs)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "question_id", verr.Field)
}

func TestSubmitUnknownUser(t *testing.T) {
	uc, _ := newUseCase()

	_, err := uc.Submit(context.Background(), 42, validInputs())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestGetResponsesUnknownUser(t *testing.T) {
	uc, _ := newUseCase()

	_, err := uc.GetResponses(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
