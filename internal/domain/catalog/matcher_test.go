// internal/domain/catalog/matcher_test.go
package catalog

import "testing"

func testVariants() []Variant {
	return []Variant{
		{ID: 11, Title: "Red / S", Option1: "Red", Option2: "S", Available: true, Price: 1999},
		{ID: 12, Title: "Red / M", Option1: "Red", Option2: "M", Available: true, Price: 1999},
		{ID: 13, Title: "Blue / M", Option1: "Blue", Option2: "M", Available: false, Price: 2199},
	}
}

func TestMatchVariantExact(t *testing.T) {
	v, ok := MatchVariant(testVariants(), []string{"Red", "M"})
	if !ok {
		t.Fatal("expected a match")
	}
	if v.ID != 12 {
		t.Errorf("got variant %d, want 12", v.ID)
	}
}

func TestMatchVariantFirstWins(t *testing.T) {
	variants := []Variant{
		{ID: 1, Option1: "Red"},
		{ID: 2, Option1: "Red"},
	}
	v, ok := MatchVariant(variants, []string{"Red"})
	if !ok || v.ID != 1 {
		t.Errorf("expected first matching variant, got %+v ok=%v", v, ok)
	}
}

func TestMatchVariantNoMatch(t *testing.T) {
	if _, ok := MatchVariant(testVariants(), []string{"Green", "M"}); ok {
		t.Error("expected no match for unknown combination")
	}
}

func TestMatchVariantPositionMatters(t *testing.T) {
	// Same labels in the wrong order must not match
	if _, ok := MatchVariant(testVariants(), []string{"M", "Red"}); ok {
		t.Error("expected no match when positions are swapped")
	}
}

func TestMatchVariantLengthMismatch(t *testing.T) {
	// A partial selection does not match a two-option variant
	if _, ok := MatchVariant(testVariants(), []string{"Red"}); ok {
		t.Error("expected no match for incomplete selection")
	}
	if _, ok := MatchVariant(testVariants(), []string{"Red", "M", "Cotton"}); ok {
		t.Error("expected no match for over-long selection")
	}
}

func TestMatchVariantEmptySelection(t *testing.T) {
	if _, ok := MatchVariant(testVariants(), nil); ok {
		t.Error("expected no match for empty selection")
	}
}

func TestOptionValuesSkipsEmpty(t *testing.T) {
	v := Variant{Option1: "Red", Option3: "Cotton"}
	values := v.OptionValues()
	if len(values) != 2 || values[0] != "Red" || values[1] != "Cotton" {
		t.Errorf("got %v", values)
	}
}

func TestEffectivePrice(t *testing.T) {
	p := &Product{Price: 1500}
	v := &Variant{Price: 0}
	if got := v.EffectivePrice(p); got != 1500 {
		t.Errorf("got %d, want product fallback 1500", got)
	}
	v.Price = 1799
	if got := v.EffectivePrice(p); got != 1799 {
		t.Errorf("got %d, want variant price 1799", got)
	}
}
