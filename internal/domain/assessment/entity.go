// internal/domain/assessment/entity.go
package assessment

import (
	"errors"
	"strings"
)

var (
	ErrIncomplete = errors.New("assessment: all questions must be answered")
)

// Answers holds one completed foot-pain questionnaire.
type Answers struct {
	AgeGroup         string `json:"ageGroup"`
	ActivityLevel    string `json:"activityLevel"`
	PainLocation     string `json:"painLocation"`
	PainFrequency    string `json:"painFrequency"`
	FootPosture      string `json:"footPosture"`
	ArchType         string `json:"archType"`
	ShoeSize         string `json:"shoeSize"`
	MedicalCondition string `json:"medicalCondition"`
}

// Scores is the weighted tally per insole family.
type Scores struct {
	Sport     int `json:"sport"`
	Comfort   int `json:"comfort"`
	Stability int `json:"stability"`
}

// Complete reports whether every question has an answer.
func (a Answers) Complete() bool {
	for _, v := range []string{
		a.AgeGroup, a.ActivityLevel, a.PainLocation, a.PainFrequency,
		a.FootPosture, a.ArchType, a.ShoeSize, a.MedicalCondition,
	} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

// ToMap flattens the answers for storage on the user document.
func (a Answers) ToMap() map[string]string {
	return map[string]string{
		"ageGroup":         a.AgeGroup,
		"activityLevel":    a.ActivityLevel,
		"painLocation":     a.PainLocation,
		"painFrequency":    a.PainFrequency,
		"footPosture":      a.FootPosture,
		"archType":         a.ArchType,
		"shoeSize":         a.ShoeSize,
		"medicalCondition": a.MedicalCondition,
	}
}

// Score applies the questionnaire weights. Age and activity dominate
// (25 each), then pain location (20), pain frequency (15), posture (10)
// and arch type (5). Shoe size and medical condition are recorded but do
// not score.
func Score(a Answers) (Scores, error) {
	if !a.Complete() {
		return Scores{}, ErrIncomplete
	}

	var s Scores

	switch a.AgeGroup {
	case "18-40":
		s.Sport += 25
	case "41-60":
		s.Comfort += 25
	case "60+":
		s.Stability += 25
	}

	switch a.ActivityLevel {
	case "Active":
		s.Sport += 25
	case "Moderate":
		s.Comfort += 25
	case "Sedentary":
		s.Stability += 25
	}

	switch a.PainLocation {
	case "Forefoot":
		s.Sport += 20
	case "Heel", "Lower Back", "Knee":
		s.Stability += 20
	default:
		s.Comfort += 20
	}

	switch a.PainFrequency {
	case "Sometimes", "Regularly":
		s.Comfort += 15
	case "Permanently":
		s.Stability += 15
	default:
		s.Sport += 15
	}

	switch a.FootPosture {
	case "Rolling Inwards":
		s.Stability += 10
	case "Rolling Outwards":
		s.Comfort += 10
	case "Normal":
		s.Sport += 10
	}

	switch a.ArchType {
	case "Flat":
		s.Stability += 5
	case "High Arch":
		s.Sport += 5
	default:
		s.Comfort += 5
	}

	return s, nil
}

// Recommended picks the highest-scoring family. Ties resolve to the
// later family in Sport, Comfort, Stability order (the original
// questionnaire's reduce semantics).
func (s Scores) Recommended() string {
	name, best := "Sport", s.Sport
	if s.Comfort >= best {
		name, best = "Comfort", s.Comfort
	}
	if s.Stability >= best {
		name = "Stability"
	}
	return name
}
