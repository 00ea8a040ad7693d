package entity

import "testing"

func sampleList() List {
	return List{
		{Type: TypePhone, Text: "555-123-4567", Start: 20, End: 32},
		{Type: TypeEmail, Text: "a@b.co", Start: 0, End: 6},
		{Type: TypeEmail, Text: "c@d.io", Start: 40, End: 46},
	}
}

func TestFilterByType(t *testing.T) {
	l := sampleList()
	emails := l.FilterByType(TypeEmail)
	if len(emails) != 2 {
		t.Fatalf("got %d emails, want 2", len(emails))
	}
	for _, e := range emails {
		if e.Type != TypeEmail {
			t.Errorf("unexpected type %s", e.Type)
		}
	}
}

func TestCountByType(t *testing.T) {
	l := sampleList()
	if n := l.CountByType(TypeEmail); n != 2 {
		t.Errorf("email count: got %d, want 2", n)
	}
	if n := l.CountByType(TypeCreditCard); n != 0 {
		t.Errorf("credit card count: got %d, want 0", n)
	}
}

func TestCounts(t *testing.T) {
	counts := sampleList().Counts()
	if counts[TypeEmail] != 2 || counts[TypePhone] != 1 {
		t.Errorf("unexpected counts: %v", counts)
	}
	if _, ok := counts[TypeURL]; ok {
		t.Error("zero-count types must not appear in Counts")
	}
}

func TestSortByStart(t *testing.T) {
	l := sampleList()
	l.SortByStart()
	for i := 1; i < len(l); i++ {
		if l[i].Start < l[i-1].Start {
			t.Fatalf("not sorted at %d: %v", i, l)
		}
	}
}

func TestSortByStart_StableAtEqualStarts(t *testing.T) {
	l := List{
		{Type: TypeURL, Start: 5, End: 20},
		{Type: TypeLocation, Start: 5, End: 10},
	}
	l.SortByStart()
	if l[0].Type != TypeURL {
		t.Error("stable sort must keep insertion order at equal starts")
	}
}

func TestAllCoversEveryType(t *testing.T) {
	want := map[Type]bool{
		TypeEmail: true, TypePhone: true, TypeIPAddress: true,
		TypeCreditCard: true, TypeURL: true, TypeDateTime: true,
		TypePerson: true, TypeLocation: true,
	}
	if len(All) != len(want) {
		t.Fatalf("All has %d types, want %d", len(All), len(want))
	}
	for _, typ := range All {
		if !want[typ] {
			t.Errorf("unexpected type in All: %s", typ)
		}
	}
}
