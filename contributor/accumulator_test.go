package contributor

import (
	"testing"
)

func TestAccumulatorPushBack(t *testing.T) {
	a := NewAccumulator()

	if !a.IsEmpty() {
		t.Fatal("new accumulator should be empty")
	}

	a.PushBack("Temp", "98.6")
	a.PushBack("City", "Lowell")
	a.PushBack("Temp", "99.1")

	if a.IsEmpty() {
		t.Fatal("accumulator should not be empty after PushBack")
	}
	if a.Len() != 2 {
		t.Fatalf("expected 2 columns, got %d", a.Len())
	}

	names := a.FieldNames()
	if names[0] != "Temp" || names[1] != "City" {
		t.Errorf("column order = %v, want [Temp City]", names)
	}

	col := a.Column("Temp")
	if len(col) != 2 || col[0] != "98.6" || col[1] != "99.1" {
		t.Errorf("Temp column = %v", col)
	}
}

func TestAccumulatorPushVectorOverwrites(t *testing.T) {
	a := NewAccumulator()
	a.PushBack("Temp", "1")
	a.PushVector("Temp", []string{"2", "3"})

	col := a.Column("Temp")
	if len(col) != 2 || col[0] != "2" {
		t.Errorf("PushVector should replace the column, got %v", col)
	}

	// The stored column must be a copy, not an alias of the caller's slice.
	src := []string{"x"}
	a.PushVector("City", src)
	src[0] = "mutated"
	if a.Column("City")[0] != "x" {
		t.Error("PushVector must copy the input slice")
	}
}

func TestAccumulatorClear(t *testing.T) {
	a := NewAccumulator()
	a.PushBack("Temp", "1")
	a.Clear()

	if !a.IsEmpty() {
		t.Error("Clear should empty the accumulator")
	}
	if a.Column("Temp") != nil {
		t.Error("Clear should drop columns")
	}

	a.PushBack("Temp", "2")
	if a.Len() != 1 {
		t.Error("accumulator should be reusable after Clear")
	}
}

func TestAccumulatorRaggedLengths(t *testing.T) {
	a := NewAccumulator()
	a.PushVector("a", []string{"1", "2"})
	a.PushVector("b", []string{"1", "2"})
	a.PushVector("c", nil) // empty columns are allowed

	if got := a.raggedLengths(); got != nil {
		t.Errorf("equal columns reported ragged: %v", got)
	}

	a.PushBack("b", "3")
	got := a.raggedLengths()
	if got == nil {
		t.Fatal("unequal columns not reported")
	}
	if got["a"] != 2 || got["b"] != 3 {
		t.Errorf("lengths = %v", got)
	}
}
