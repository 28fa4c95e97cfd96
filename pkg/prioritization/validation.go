package prioritization

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"feature-prioritizer/internal/entity"

	"github.com/go-playground/validator/v10"
)

// Human-readable validation messages, one per rule.
const (
	MsgNameRequired     = "Feature name is required"
	MsgReachRange       = "Reach must be between 1 and 1000"
	MsgImpactSet        = "Impact must be one of 0.25, 0.5, 1, 2 or 3"
	MsgConfidenceRange  = "Confidence must be between 50% and 100%"
	MsgEffortRange      = "Effort must be between 1 and 50 person-months"
	MsgCategoryRequired = "Priority category is required"
)

// ImpactScale is the discrete set of allowed RICE impact values.
var ImpactScale = []float64{0.25, 0.5, 1, 2, 3}

// RiceDraft is unvalidated RICE input. Fields are declared in rule order so
// validation messages come out name, reach, impact, confidence, effort.
type RiceDraft struct {
	Name       string  `json:"name" yaml:"name" validate:"notblank"`
	Reach      int     `json:"reach" yaml:"reach" validate:"min=1,max=1000"`
	Impact     float64 `json:"impact" yaml:"impact" validate:"rice_impact"`
	Confidence int     `json:"confidence" yaml:"confidence" validate:"min=50,max=100"`
	Effort     int     `json:"effort" yaml:"effort" validate:"min=1,max=50"`
}

// MoscowDraft is unvalidated MoSCoW input.
type MoscowDraft struct {
	Name     string                `json:"name" yaml:"name" validate:"notblank"`
	Category entity.MoscowCategory `json:"category" yaml:"category" validate:"moscow_category"`
}

// Draft is input for either framework that can be turned into a Feature.
type Draft interface {
	Build(header entity.FeatureHeader) entity.Feature
	DraftName() string
}

func (d RiceDraft) DraftName() string { return d.Name }

// Build constructs a RiceFeature with a freshly computed score.
func (d RiceDraft) Build(header entity.FeatureHeader) entity.Feature {
	return entity.RiceFeature{
		FeatureHeader: header,
		Reach:         d.Reach,
		Impact:        d.Impact,
		Confidence:    d.Confidence,
		Effort:        d.Effort,
		Score:         ComputeRiceScore(d.Reach, d.Impact, d.Confidence, d.Effort),
	}
}

func (d MoscowDraft) DraftName() string { return d.Name }

func (d MoscowDraft) Build(header entity.FeatureHeader) entity.Feature {
	return entity.MoscowFeature{FeatureHeader: header, Category: d.Category}
}

// NewFeature validates d and builds a feature stamped with a new id and now.
func NewFeature(d Draft, now time.Time) (entity.Feature, error) {
	var msgs []string
	switch v := d.(type) {
	case RiceDraft:
		msgs = ValidateRiceFeature(v)
	case MoscowDraft:
		msgs = ValidateMoscowFeature(v)
	default:
		return nil, ErrUnknownFramework
	}
	if len(msgs) > 0 {
		return nil, &ValidationError{Messages: msgs}
	}
	return d.Build(entity.NewFeatureHeader(strings.TrimSpace(d.DraftName()), now)), nil
}

// ValidationError lists every violated rule in rule order.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// ErrUnknownFramework is returned for a framework tag other than rice or moscow.
var ErrUnknownFramework = errors.New("unknown prioritization framework")

var riceMessages = map[string]string{
	"Name":       MsgNameRequired,
	"Reach":      MsgReachRange,
	"Impact":     MsgImpactSet,
	"Confidence": MsgConfidenceRange,
	"Effort":     MsgEffortRange,
}

var moscowMessages = map[string]string{
	"Name":     MsgNameRequired,
	"Category": MsgCategoryRequired,
}

// validate is stateless apart from its struct metadata cache.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("rice_impact", func(fl validator.FieldLevel) bool {
		return IsValidImpact(fl.Field().Float())
	})
	_ = v.RegisterValidation("moscow_category", func(fl validator.FieldLevel) bool {
		_, ok := entity.ParseMoscowCategory(fl.Field().String())
		return ok
	})
	return v
}

// IsValidImpact reports whether v belongs to ImpactScale.
func IsValidImpact(v float64) bool {
	for _, s := range ImpactScale {
		if math.Abs(v-s) < 1e-9 {
			return true
		}
	}
	return false
}

// ValidateRiceFeature returns every violated RICE rule; empty means valid.
func ValidateRiceFeature(d RiceDraft) []string {
	return collect(validate.Struct(d), riceMessages)
}

// ValidateMoscowFeature returns every violated MoSCoW rule; empty means valid.
func ValidateMoscowFeature(d MoscowDraft) []string {
	return collect(validate.Struct(d), moscowMessages)
}

func collect(err error, messages map[string]string) []string {
	out := []string{}
	if err == nil {
		return out
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	for _, fe := range verrs {
		if msg, ok := messages[fe.StructField()]; ok {
			out = append(out, msg)
		}
	}
	return out
}

// RiceDraftFromStrings parses raw form values. Unparseable numbers stay zero
// so validation reports them as out of range.
func RiceDraftFromStrings(name, reach, impact, confidence, effort string) RiceDraft {
	return RiceDraft{
		Name:       name,
		Reach:      parseIntCell(reach),
		Impact:     parseFloatCell(impact),
		Confidence: parseIntCell(confidence),
		Effort:     parseIntCell(effort),
	}
}

// MoscowDraftFromStrings lower-cases the category and drops it when it is
// not part of the enumeration.
func MoscowDraftFromStrings(name, category string) MoscowDraft {
	c, _ := entity.ParseMoscowCategory(strings.ToLower(strings.TrimSpace(category)))
	return MoscowDraft{Name: name, Category: c}
}

func parseIntCell(s string) int {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	// "12.0" and "12.7" read as 12, like an integer form field would.
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return 0
	}
	return int(f)
}

func parseFloatCell(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
