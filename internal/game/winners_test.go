package game

import (
	"strconv"
	"testing"
)

func TestWinnerString(t *testing.T) {
	w := Winner{Name: "Ana", Seconds: 125}
	if got := w.String(); got != "Ana --> 00h02m05s" {
		t.Errorf("String() = %q, want %q", got, "Ana --> 00h02m05s")
	}
}

func TestWinnersNewestFirst(t *testing.T) {
	w := NewWinners()
	w.Add(Winner{Name: "first"})
	w.Add(Winner{Name: "second"})

	recent := w.Recent()
	if len(recent) != 2 {
		t.Fatalf("Recent() length = %d, want 2", len(recent))
	}
	if recent[0].Name != "second" || recent[1].Name != "first" {
		t.Errorf("Recent() = %v, want newest first", recent)
	}
}

func TestWinnersKeepsLastTen(t *testing.T) {
	w := NewWinners()
	for i := 1; i <= 13; i++ {
		w.Add(Winner{Name: "p" + strconv.Itoa(i)})
	}

	if w.Len() != MaxWinners {
		t.Fatalf("Len() = %d, want %d", w.Len(), MaxWinners)
	}
	recent := w.Recent()
	if recent[0].Name != "p13" {
		t.Errorf("newest = %q, want p13", recent[0].Name)
	}
	if recent[MaxWinners-1].Name != "p4" {
		t.Errorf("oldest = %q, want p4", recent[MaxWinners-1].Name)
	}
}

func TestWinnersRecentIsACopy(t *testing.T) {
	w := NewWinners()
	w.Add(Winner{Name: "Ana"})

	recent := w.Recent()
	recent[0].Name = "changed"

	if w.Recent()[0].Name != "Ana" {
		t.Error("modifying Recent() result changed the stored winners")
	}
}
