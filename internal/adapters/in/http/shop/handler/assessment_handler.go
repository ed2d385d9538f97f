// internal/adapters/in/http/shop/handler/assessment_handler.go
package shopHandler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"myfootfirst/internal/adapters/in/http/middleware"
	usecase "myfootfirst/internal/application/usecase"
	assessdom "myfootfirst/internal/domain/assessment"
)

// AssessmentHandler serves POST /shop/assessment: scores the foot-pain
// questionnaire and returns the recommended insole family.
type AssessmentHandler struct {
	uc *usecase.AssessmentUsecase
}

func NewAssessmentHandler(uc *usecase.AssessmentUsecase) http.Handler {
	return &AssessmentHandler{uc: uc}
}

func (h *AssessmentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	uid, ok := middleware.CurrentUserUID(r)
	if !ok {
		unauthorized(w)
		return
	}
	if h.uc == nil {
		internalError(w, "assessment handler is not configured")
		return
	}
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var answers assessdom.Answers
	if err := readJSON(r, &answers); err != nil {
		badRequest(w, "invalid json body")
		return
	}

	res, err := h.uc.Evaluate(r.Context(), uid, answers)
	if err != nil {
		if errors.Is(err, assessdom.ErrIncomplete) {
			badRequest(w, "all questions must be answered")
			return
		}
		log.Printf("[shop_assessment_handler] exit status=500 err=%v elapsed=%s", err, time.Since(start))
		internalError(w, "failed to evaluate assessment")
		return
	}

	log.Printf("[shop_assessment_handler] evaluated uid=%s recommended=%s elapsed=%s",
		maskUID(uid), res.Recommended, time.Since(start))
	writeJSON(w, http.StatusOK, res)
}
