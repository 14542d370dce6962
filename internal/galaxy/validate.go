package galaxy

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/papapumpkin/starfield/internal/geom"
)

const (
	maxTitleLen       = 200
	maxDescriptionLen = 5000
)

var (
	titleRules = []validation.Rule{
		validation.Required.Error("title is required"),
		validation.By(notBlank),
		validation.RuneLength(1, maxTitleLen),
	}
	descriptionRules = []validation.Rule{
		validation.RuneLength(0, maxDescriptionLen),
	}
	statusRules = []validation.Rule{
		validation.By(knownStatus),
	}
	unitRules = []validation.Rule{
		validation.Min(0.0),
		validation.Max(1.0),
	}
)

// ValidateDraft checks a create request. An empty status is allowed and
// means spark.
func ValidateDraft(d IdeaDraft) error {
	err := validation.ValidateStruct(&d,
		validation.Field(&d.Title, titleRules...),
		validation.Field(&d.Description, descriptionRules...),
		validation.Field(&d.Status, statusRules...),
		validation.Field(&d.Position, validation.By(unitPoint)),
	)
	return wrapInvalid(err)
}

// ValidatePatch checks a partial update. Only the fields present are checked.
func ValidatePatch(p IdeaPatch) error {
	err := validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.When(p.Title != nil, titleRules...)),
		validation.Field(&p.Description, descriptionRules...),
		validation.Field(&p.Status, validation.When(p.Status != nil, validation.By(knownStatus))),
		validation.Field(&p.Position, validation.By(unitPoint)),
	)
	return wrapInvalid(err)
}

// ValidateIdea checks a complete idea as returned by a backend.
func ValidateIdea(i Idea) error {
	err := validation.ValidateStruct(&i,
		validation.Field(&i.ID, validation.Required),
		validation.Field(&i.Title, titleRules...),
		validation.Field(&i.Status, validation.Required, validation.By(knownStatus)),
		validation.Field(&i.Position, validation.By(unitPoint)),
		validation.Field(&i.Brightness, unitRules...),
	)
	return wrapInvalid(err)
}

func wrapInvalid(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidIdea, err.Error())
}

func notBlank(v any) error {
	var s string
	switch x := v.(type) {
	case string:
		s = x
	case *string:
		if x != nil {
			s = *x
		}
	}
	if s != "" && strings.TrimSpace(s) == "" {
		return errors.New("title must not be blank")
	}
	return nil
}

func knownStatus(v any) error {
	var s Status
	switch x := v.(type) {
	case Status:
		s = x
	case *Status:
		if x == nil {
			return nil
		}
		s = *x
	}
	if s == "" || s.Valid() {
		return nil
	}
	return fmt.Errorf("unknown status %q", string(s))
}

func unitPoint(v any) error {
	var p geom.Point
	switch x := v.(type) {
	case geom.Point:
		p = x
	case *geom.Point:
		if x == nil {
			return nil
		}
		p = *x
	default:
		return nil
	}
	if p.X < 0 || p.X > 1 || p.Y < 0 || p.Y > 1 {
		return fmt.Errorf("position (%.3f, %.3f) is outside the unit square", p.X, p.Y)
	}
	return nil
}
