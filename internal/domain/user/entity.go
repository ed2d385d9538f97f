// internal/domain/user/entity.go
package user

import (
	"errors"
	"strings"
)

var (
	ErrInvalidUserID  = errors.New("user: invalid userId")
	ErrInvalidStep    = errors.New("user: invalid step")
	ErrInvalidAddress = errors.New("user: invalid address")
)

// Profile mirrors the identity fields of users/{uid}.
// Set at signup / profile completion, mutated via partial updates.
type Profile struct {
	ID             string `json:"id" firestore:"id"`
	FirstName      string `json:"firstName" firestore:"firstName"`
	Surname        string `json:"surname" firestore:"surname"`
	Email          string `json:"email" firestore:"email"`
	Gender         string `json:"gender" firestore:"gender"`
	Country        string `json:"country" firestore:"country"`
	Phone          string `json:"phone" firestore:"phone"`
	DOB            string `json:"dob" firestore:"dob"`
	MaxStepReached int    `json:"maxStepReached" firestore:"maxStepReached"`
}

// CustomerName is the name stamped onto order records.
func (p *Profile) CustomerName() string {
	if p == nil {
		return "Anonymous"
	}
	if n := strings.TrimSpace(p.FirstName); n != "" {
		return n
	}
	return "Anonymous"
}

// ProfilePatch represents partial updates to Profile fields.
// A nil field means "no change".
type ProfilePatch struct {
	FirstName *string
	Surname   *string
	Email     *string
	Gender    *string
	Country   *string
	Phone     *string
	DOB       *string
}

// IsEmpty reports whether the patch changes nothing.
func (p ProfilePatch) IsEmpty() bool {
	return p.FirstName == nil && p.Surname == nil && p.Email == nil &&
		p.Gender == nil && p.Country == nil && p.Phone == nil && p.DOB == nil
}

// Address is the last-used shipping address, overwritten wholesale on
// save (no address book).
type Address struct {
	Line1       string `json:"line1" firestore:"line1"`
	Line2       string `json:"line2,omitempty" firestore:"line2"`
	City        string `json:"city" firestore:"city"`
	Country     string `json:"country" firestore:"country"`
	PinCode     string `json:"pinCode" firestore:"pinCode"`
	PhoneNumber string `json:"phoneNumber" firestore:"phoneNumber"`
}

// Validate enforces the required address fields (line2 is optional).
func (a Address) Validate() error {
	if strings.TrimSpace(a.Line1) == "" ||
		strings.TrimSpace(a.City) == "" ||
		strings.TrimSpace(a.Country) == "" ||
		strings.TrimSpace(a.PinCode) == "" ||
		strings.TrimSpace(a.PhoneNumber) == "" {
		return ErrInvalidAddress
	}
	return nil
}

// Normalize trims all fields.
func (a Address) Normalize() Address {
	return Address{
		Line1:       strings.TrimSpace(a.Line1),
		Line2:       strings.TrimSpace(a.Line2),
		City:        strings.TrimSpace(a.City),
		Country:     strings.TrimSpace(a.Country),
		PinCode:     strings.TrimSpace(a.PinCode),
		PhoneNumber: strings.TrimSpace(a.PhoneNumber),
	}
}

// InsoleAnswers holds the raw questionnaire answers as stored on the
// user document (insoleAnswers field).
type InsoleAnswers map[string]string
