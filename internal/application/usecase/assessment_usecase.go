// internal/application/usecase/assessment_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	assessdom "myfootfirst/internal/domain/assessment"
	userdom "myfootfirst/internal/domain/user"
)

var (
	ErrAssessInvalidArgument = errors.New("assessment_usecase: invalid argument")
)

// AssessmentUsecase scores the foot-pain questionnaire and records the
// raw answers on the user document.
type AssessmentUsecase struct {
	users userdom.Repository
}

func NewAssessmentUsecase(users userdom.Repository) *AssessmentUsecase {
	return &AssessmentUsecase{users: users}
}

// AssessmentResult is the scored outcome returned to the client.
type AssessmentResult struct {
	Scores      assessdom.Scores `json:"scores"`
	Recommended string           `json:"recommended"`
}

// Evaluate scores the answers, persists them and returns the
// recommended insole family. Persistence is best effort: losing the
// stored answers does not lose the recommendation.
func (uc *AssessmentUsecase) Evaluate(ctx context.Context, userID string, answers assessdom.Answers) (AssessmentResult, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return AssessmentResult{}, ErrAssessInvalidArgument
	}

	scores, err := assessdom.Score(answers)
	if err != nil {
		return AssessmentResult{}, err
	}

	if err := uc.users.SaveInsoleAnswers(ctx, uid, answers.ToMap()); err != nil {
		log.Printf("[assessment_uc] WARN: answers not stored uid=%s err=%v", uid, err)
	}

	rec := scores.Recommended()
	log.Printf("[assessment_uc] evaluated uid=%s sport=%d comfort=%d stability=%d -> %s",
		uid, scores.Sport, scores.Comfort, scores.Stability, rec)

	return AssessmentResult{Scores: scores, Recommended: rec}, nil
}
