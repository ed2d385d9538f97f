// internal/adapters/in/http/shop/handler/user_handler.go
package shopHandler

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"myfootfirst/internal/adapters/in/http/middleware"
	usecase "myfootfirst/internal/application/usecase"
	userdom "myfootfirst/internal/domain/user"
)

// UserHandler serves the profile side of the user document:
//
//   - GET   /shop/me/profile  current profile
//   - PATCH /shop/me/profile  partial update
//   - GET   /shop/me/address  saved shipping address
//   - PUT   /shop/me/address  overwrite shipping address
//   - POST  /shop/me/steps    raise the onboarding high-water mark
type UserHandler struct {
	uc *usecase.UserUsecase
}

func NewUserHandler(uc *usecase.UserUsecase) http.Handler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	path := strings.TrimRight(r.URL.Path, "/")

	uid, ok := middleware.CurrentUserUID(r)
	if !ok {
		unauthorized(w)
		return
	}

	log.Printf("[shop_user_handler] enter method=%s path=%q uid=%s", r.Method, path, maskUID(uid))

	if h.uc == nil {
		internalError(w, "user handler is not configured")
		return
	}

	switch {
	case r.Method == http.MethodGet && strings.HasSuffix(path, "/profile"):
		h.handleGetProfile(w, r, uid, start)
	case r.Method == http.MethodPatch && strings.HasSuffix(path, "/profile"):
		h.handlePatchProfile(w, r, uid, start)
	case r.Method == http.MethodGet && strings.HasSuffix(path, "/address"):
		h.handleGetAddress(w, r, uid, start)
	case r.Method == http.MethodPut && strings.HasSuffix(path, "/address"):
		h.handlePutAddress(w, r, uid, start)
	case r.Method == http.MethodPost && strings.HasSuffix(path, "/steps"):
		h.handleSteps(w, r, uid, start)
	default:
		methodNotAllowed(w)
	}
}

func (h *UserHandler) handleGetProfile(w http.ResponseWriter, r *http.Request, uid string, start time.Time) {
	p, err := h.uc.GetProfile(r.Context(), uid)
	if err != nil {
		log.Printf("[shop_user_handler] exit status=500 op=get_profile err=%v elapsed=%s", err, time.Since(start))
		internalError(w, "failed to load profile")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type patchProfileRequest struct {
	FirstName *string `json:"firstName"`
	Surname   *string `json:"surname"`
	Email     *string `json:"email"`
	Gender    *string `json:"gender"`
	Country   *string `json:"country"`
	Phone     *string `json:"phone"`
	DOB       *string `json:"dob"`
}

func (h *UserHandler) handlePatchProfile(w http.ResponseWriter, r *http.Request, uid string, start time.Time) {
	var req patchProfileRequest
	if err := readJSON(r, &req); err != nil {
		badRequest(w, "invalid json body")
		return
	}

	patch := userdom.ProfilePatch{
		FirstName: trimPtr(req.FirstName),
		Surname:   trimPtr(req.Surname),
		Email:     trimPtr(req.Email),
		Gender:    trimPtr(req.Gender),
		Country:   trimPtr(req.Country),
		Phone:     trimPtr(req.Phone),
		DOB:       trimPtr(req.DOB),
	}

	if err := h.uc.UpdateProfile(r.Context(), uid, patch); err != nil {
		if errors.Is(err, usecase.ErrUserEmptyPatch) {
			badRequest(w, "patch changes nothing")
			return
		}
		log.Printf("[shop_user_handler] exit status=500 op=patch_profile err=%v elapsed=%s", err, time.Since(start))
		internalError(w, "failed to update profile")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"updated": true})
}

func (h *UserHandler) handleGetAddress(w http.ResponseWriter, r *http.Request, uid string, start time.Time) {
	addr, err := h.uc.GetAddress(r.Context(), uid)
	if err != nil {
		log.Printf("[shop_user_handler] exit status=500 op=get_address err=%v elapsed=%s", err, time.Since(start))
		internalError(w, "failed to load address")
		return
	}
	if addr == nil {
		writeErr(w, http.StatusNotFound, "no address saved")
		return
	}
	writeJSON(w, http.StatusOK, addr)
}

func (h *UserHandler) handlePutAddress(w http.ResponseWriter, r *http.Request, uid string, start time.Time) {
	var addr userdom.Address
	if err := readJSON(r, &addr); err != nil {
		badRequest(w, "invalid json body")
		return
	}

	if err := h.uc.SaveAddress(r.Context(), uid, addr); err != nil {
		if errors.Is(err, userdom.ErrInvalidAddress) {
			badRequest(w, "line1, city, country, pinCode and phoneNumber are required")
			return
		}
		log.Printf("[shop_user_handler] exit status=500 op=put_address err=%v elapsed=%s", err, time.Since(start))
		internalError(w, "failed to save address")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"saved": true})
}

type stepsRequest struct {
	Step int `json:"step"`
}

func (h *UserHandler) handleSteps(w http.ResponseWriter, r *http.Request, uid string, start time.Time) {
	var req stepsRequest
	if err := readJSON(r, &req); err != nil {
		badRequest(w, "invalid json body")
		return
	}

	reached, err := h.uc.AdvanceStep(r.Context(), uid, req.Step)
	if err != nil {
		if errors.Is(err, userdom.ErrInvalidStep) {
			badRequest(w, "step out of range")
			return
		}
		log.Printf("[shop_user_handler] exit status=500 op=steps err=%v elapsed=%s", err, time.Since(start))
		internalError(w, "failed to update step")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"maxStepReached": reached})
}
