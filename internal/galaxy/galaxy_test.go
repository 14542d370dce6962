package galaxy

import (
	"errors"
	"strings"
	"testing"

	"github.com/papapumpkin/starfield/internal/geom"
)

func TestCheckLink(t *testing.T) {
	t.Parallel()

	existing := []Constellation{{ID: "c1", IdeaID1: "a", IdeaID2: "b"}}

	tests := []struct {
		name     string
		id1, id2 string
		want     error
	}{
		{"self link", "a", "a", ErrSelfLink},
		{"same order duplicate", "a", "b", ErrDuplicateLink},
		{"reverse order duplicate", "b", "a", ErrDuplicateLink},
		{"new pair", "a", "c", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := CheckLink(tt.id1, tt.id2, existing); !errors.Is(err, tt.want) {
				t.Errorf("CheckLink(%q, %q) = %v, want %v", tt.id1, tt.id2, err, tt.want)
			}
		})
	}
}

func TestConstellationEndpoints(t *testing.T) {
	t.Parallel()

	c := Constellation{IdeaID1: "x", IdeaID2: "y"}
	if !c.Touches("x") || !c.Touches("y") || c.Touches("z") {
		t.Error("Touches should match exactly the two endpoints")
	}
	if c.Other("x") != "y" || c.Other("y") != "x" || c.Other("z") != "" {
		t.Errorf("Other() returned unexpected endpoints")
	}
	if MakePair("y", "x") != c.Pair() {
		t.Error("pairs should be order independent")
	}
}

func TestPatchApply(t *testing.T) {
	t.Parallel()

	title := "renamed"
	status := StatusCompleted
	pos := geom.Point{X: 0.2, Y: 0.3}
	idea := Idea{ID: "i", Title: "old", Status: StatusSpark, Brightness: 0.3}

	got := IdeaPatch{Title: &title, Status: &status, Position: &pos}.Apply(idea)
	if got.Title != "renamed" || got.Status != StatusCompleted || got.Position != pos {
		t.Errorf("Apply() = %+v", got)
	}
	if got.Brightness != 1.0 {
		t.Errorf("brightness = %v, want 1.0 for completed", got.Brightness)
	}
	if !(IdeaPatch{}).Empty() {
		t.Error("zero patch should be empty")
	}
}

func TestStatusHelpers(t *testing.T) {
	t.Parallel()

	if s, err := ParseStatus(""); err != nil || s != StatusSpark {
		t.Errorf("ParseStatus(\"\") = %q, %v", s, err)
	}
	if _, err := ParseStatus("supernova"); err == nil {
		t.Error("ParseStatus should reject unknown statuses")
	}
	if StatusArchived.Next() != StatusSpark {
		t.Error("Next should wrap around after archived")
	}
	if BrightnessFor(Status("weird")) != 0.5 {
		t.Error("unknown status brightness should be 0.5")
	}
	if !StatusRefined.Public() || StatusSpark.Public() {
		t.Error("only refined and completed ideas are public")
	}
}

func TestValidateDraft(t *testing.T) {
	t.Parallel()

	outside := geom.Point{X: 1.2, Y: 0.5}
	tests := []struct {
		name    string
		draft   IdeaDraft
		wantErr bool
	}{
		{"minimal", IdeaDraft{Title: "Moon base"}, false},
		{"empty title", IdeaDraft{}, true},
		{"blank title", IdeaDraft{Title: "   "}, true},
		{"long title", IdeaDraft{Title: strings.Repeat("x", 201)}, true},
		{"bad status", IdeaDraft{Title: "t", Status: "nova"}, true},
		{"outside field", IdeaDraft{Title: "t", Position: &outside}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateDraft(tt.draft)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateDraft() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidIdea) {
				t.Errorf("error should wrap ErrInvalidIdea, got %v", err)
			}
		})
	}
}

func TestValidatePatch(t *testing.T) {
	t.Parallel()

	empty := ""
	bad := Status("nova")
	ok := "fine"
	if err := ValidatePatch(IdeaPatch{Title: &ok}); err != nil {
		t.Errorf("valid patch rejected: %v", err)
	}
	if err := ValidatePatch(IdeaPatch{Title: &empty}); err == nil {
		t.Error("patch with empty title should be rejected")
	}
	if err := ValidatePatch(IdeaPatch{Status: &bad}); err == nil {
		t.Error("patch with unknown status should be rejected")
	}
	if err := ValidatePatch(IdeaPatch{}); err != nil {
		t.Errorf("empty patch rejected: %v", err)
	}
}

func TestValidateIdea(t *testing.T) {
	t.Parallel()

	good := Idea{ID: "1", Title: "t", Status: StatusSpark, Position: geom.Point{X: 0.5, Y: 0.5}, Brightness: 0.3}
	if err := ValidateIdea(good); err != nil {
		t.Errorf("ValidateIdea(good) = %v", err)
	}
	bad := good
	bad.Brightness = 1.5
	if err := ValidateIdea(bad); err == nil {
		t.Error("brightness above 1 should be rejected")
	}
}
