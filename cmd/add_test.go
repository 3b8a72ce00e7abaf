package cmd

import (
	"errors"
	"testing"

	"github.com/theirongolddev/subtrack/internal/store"
	"github.com/theirongolddev/subtrack/internal/tracker"
)

func setAddFlags(t *testing.T, name, amount string, day int) {
	t.Helper()
	oldName, oldAmount, oldDay := flagAddName, flagAddAmount, flagAddDay
	t.Cleanup(func() { flagAddName, flagAddAmount, flagAddDay = oldName, oldAmount, oldDay })
	flagAddName, flagAddAmount, flagAddDay = name, amount, day
}

func TestAddFormFromFlags_DayDefault(t *testing.T) {
	setAddFlags(t, "Netflix", "5", 0)

	if f := addFormFromFlags(false, 19); f.Day != "19" {
		t.Errorf("Day without --day = %q, want today (19)", f.Day)
	}
	if f := addFormFromFlags(true, 19); f.Day != "0" {
		t.Errorf("Day with --day 0 = %q, want 0", f.Day)
	}
}

func TestAddFormFromFlags_ExplicitZeroDayRejected(t *testing.T) {
	setAddFlags(t, "Netflix", "5", 0)

	in, err := addFormFromFlags(true, 19).Input()
	if err != nil {
		t.Fatalf("Input: %v", err)
	}
	tr := tracker.New(store.NewMemory())
	if _, err := tr.Add(in); !errors.Is(err, tracker.ErrValidation) {
		t.Fatalf("Add(--day 0) error = %v, want ErrValidation", err)
	}
	if tr.Len() != 0 {
		t.Errorf("Len = %d, want 0", tr.Len())
	}
}

func TestAddFormFromFlags_ParsesAliases(t *testing.T) {
	setAddFlags(t, "Spotify", "15.90", 7)
	oldCur, oldCat := flagAddCurrency, flagAddCategory
	t.Cleanup(func() { flagAddCurrency, flagAddCategory = oldCur, oldCat })
	flagAddCurrency, flagAddCategory = "usd", "music"

	f := addFormFromFlags(true, 19)
	if f.Currency != "USD" || f.Category != "Music" || f.Day != "7" {
		t.Errorf("form = %+v", f)
	}
}
