// internal/application/usecase/assessment_usecase_test.go
package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	assessdom "myfootfirst/internal/domain/assessment"
)

func fullAnswers() assessdom.Answers {
	return assessdom.Answers{
		AgeGroup:         "18-40",
		ActivityLevel:    "Active",
		PainLocation:     "Forefoot",
		PainFrequency:    "Never",
		FootPosture:      "Normal",
		ArchType:         "High Arch",
		ShoeSize:         "42",
		MedicalCondition: "None",
	}
}

func TestAssessmentEvaluateStoresAndRecommends(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewAssessmentUsecase(repo)

	res, err := uc.Evaluate(context.Background(), "u1", fullAnswers())
	require.NoError(t, err)
	assert.Equal(t, 100, res.Scores.Sport)
	assert.Equal(t, "Sport", res.Recommended)
	assert.Equal(t, "18-40", repo.answers["u1"]["ageGroup"])
	assert.Equal(t, "42", repo.answers["u1"]["shoeSize"])
}

func TestAssessmentEvaluateIncomplete(t *testing.T) {
	uc := NewAssessmentUsecase(newFakeUserRepo())

	a := fullAnswers()
	a.ArchType = ""
	_, err := uc.Evaluate(context.Background(), "u1", a)
	assert.ErrorIs(t, err, assessdom.ErrIncomplete)
}

func TestAssessmentEvaluateStorageFailureIsBestEffort(t *testing.T) {
	repo := newFakeUserRepo()
	repo.answerErr = assert.AnError
	uc := NewAssessmentUsecase(repo)

	res, err := uc.Evaluate(context.Background(), "u1", fullAnswers())
	require.NoError(t, err)
	assert.Equal(t, "Sport", res.Recommended)
}

func TestAssessmentEvaluateRequiresUID(t *testing.T) {
	uc := NewAssessmentUsecase(newFakeUserRepo())

	_, err := uc.Evaluate(context.Background(), "", fullAnswers())
	assert.ErrorIs(t, err, ErrAssessInvalidArgument)
}
