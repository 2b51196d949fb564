package deck

import "testing"

// TestEmptyDeck: a fresh engine has three empty zones, the default name,
// and a score of 0.
func TestEmptyDeck(t *testing.T) {
	e := New(nil)

	snap := e.Snapshot()
	if snap.Name != DefaultName {
		t.Errorf("name = %q, want %q", snap.Name, DefaultName)
	}
	for _, z := range Zones {
		if len(snap.Zone(z)) != 0 {
			t.Errorf("%s not empty", z)
		}
	}
	if e.Score() != 0 {
		t.Errorf("score = %d, want 0", e.Score())
	}
}

// TestAddStacksCopies: adding the same card twice yields one entry with
// quantity 2, not two entries.
func TestAddStacksCopies(t *testing.T) {
	e := New(nil)
	card := monster(1, "Gemini Elf")

	if !e.Add(card, ZoneAuto) || !e.Add(card, ZoneAuto) {
		t.Fatal("adds should succeed")
	}

	main := e.Snapshot().Main
	if len(main) != 1 {
		t.Fatalf("entries = %d, want 1", len(main))
	}
	if main[0].Quantity != 2 {
		t.Errorf("quantity = %d, want 2", main[0].Quantity)
	}
}

// TestCopyCap: the fourth copy of a card is rejected and leaves state
// unchanged.
func TestCopyCap(t *testing.T) {
	e := New(nil)
	card := monster(1, "Gemini Elf")

	for i := 0; i < MaxCopies; i++ {
		if !e.Add(card, ZoneAuto) {
			t.Fatalf("copy %d should be allowed", i+1)
		}
	}

	v := e.CanAdd(card, ZoneAuto)
	if v.Allowed {
		t.Error("fourth copy should be denied")
	}
	if v.Reason == "" {
		t.Error("denial should carry a reason")
	}
	if e.Add(card, ZoneAuto) {
		t.Error("Add should refuse the fourth copy")
	}
	if got := e.Snapshot().Main[0].Quantity; got != MaxCopies {
		t.Errorf("quantity = %d, want %d", got, MaxCopies)
	}
}

// TestZoneCapacity: the Side Deck refuses its 16th card and state is
// unchanged by the failed add.
func TestZoneCapacity(t *testing.T) {
	e := New(nil)
	for i := 1; i <= 15; i++ {
		if !e.Add(monster(i, "Filler"), ZoneSide) {
			t.Fatalf("card %d should fit in the side deck", i)
		}
	}

	v := e.CanAdd(monster(16, "Overflow"), ZoneSide)
	if v.Allowed {
		t.Error("16th side card should be denied")
	}
	if e.Add(monster(16, "Overflow"), ZoneSide) {
		t.Error("Add should refuse a full zone")
	}
	if got := e.Snapshot().Count(ZoneSide); got != 15 {
		t.Errorf("side count = %d, want 15", got)
	}
}

// TestExtraCardSuggestion: an Extra Deck card added on the classifier path
// is rejected with a suggestion, and succeeds with the explicit zone.
func TestExtraCardSuggestion(t *testing.T) {
	e := New(nil)
	card := fusionMonster(1, "Thousand-Eyes Restrict")

	v := e.CanAdd(card, ZoneAuto)
	if v.Allowed {
		t.Fatal("classifier path should reject an extra-deck card")
	}
	if !v.HasSuggestion || v.Suggested != ZoneExtra {
		t.Fatalf("suggestion = %v %v, want Extra", v.HasSuggestion, v.Suggested)
	}

	if !e.Add(card, ZoneExtra) {
		t.Fatal("explicit extra placement should succeed")
	}
	if len(e.Snapshot().Extra) != 1 {
		t.Error("card should be in the extra deck")
	}
}

// TestExplicitZoneIsAuthoritative: an explicit target bypasses the
// classifier entirely, even for an extra-deck card aimed at the side deck.
func TestExplicitZoneIsAuthoritative(t *testing.T) {
	e := New(nil)
	card := fusionMonster(1, "Thousand-Eyes Restrict")

	v := e.CanAdd(card, ZoneSide)
	if !v.Allowed {
		t.Fatalf("explicit side placement denied: %s", v.Reason)
	}
	if !e.Add(card, ZoneSide) {
		t.Fatal("explicit side placement should succeed")
	}
}

// TestAddByID: adds another copy of a card already in the deck, and fails
// for ids the deck has never seen.
func TestAddByID(t *testing.T) {
	e := New(nil)
	card := monster(7, "Gemini Elf")
	e.Add(card, ZoneAuto)

	if !e.AddByID(7, ZoneMain) {
		t.Fatal("AddByID should find the existing entry")
	}
	if got := e.Snapshot().Main[0].Quantity; got != 2 {
		t.Errorf("quantity = %d, want 2", got)
	}

	if e.AddByID(99, ZoneMain) {
		t.Error("AddByID should fail for a card not in the deck")
	}
}

// TestRemove: decrements by default, deletes at quantity 1 or with all
// set, and preserves the order of the remaining entries.
func TestRemove(t *testing.T) {
	e := New(nil)
	a, b, c := monster(1, "A"), monster(2, "B"), monster(3, "C")
	e.Add(a, ZoneAuto)
	e.Add(a, ZoneAuto)
	e.Add(b, ZoneAuto)
	e.Add(c, ZoneAuto)

	if !e.Remove(1, ZoneMain, false) {
		t.Fatal("remove should succeed")
	}
	if got := e.Snapshot().Main[0].Quantity; got != 1 {
		t.Errorf("quantity = %d, want 1", got)
	}

	// quantity 1, removeAll=false → entry deleted, no quantity-0 entry left
	if !e.Remove(1, ZoneMain, false) {
		t.Fatal("remove should succeed")
	}
	main := e.Snapshot().Main
	if len(main) != 2 || main[0].Card.Name != "B" || main[1].Card.Name != "C" {
		t.Fatalf("remaining order wrong: %v", main)
	}

	if e.Remove(1, ZoneMain, false) {
		t.Error("removing an absent card should fail")
	}

	if !e.Remove(2, ZoneMain, true) {
		t.Fatal("removeAll should succeed")
	}
	if len(e.Snapshot().Main) != 1 {
		t.Error("removeAll should delete the whole entry")
	}
}

// TestClearAndRename: clearing zones and renaming, with blank-name
// normalization.
func TestClearAndRename(t *testing.T) {
	e := New(nil)
	e.Add(monster(1, "A"), ZoneAuto)
	e.Add(fusionMonster(2, "B"), ZoneExtra)
	e.Add(monster(3, "C"), ZoneSide)

	e.ClearZone(ZoneExtra)
	snap := e.Snapshot()
	if len(snap.Extra) != 0 || len(snap.Main) != 1 || len(snap.Side) != 1 {
		t.Fatal("ClearZone should only empty the one zone")
	}

	e.Clear()
	snap = e.Snapshot()
	for _, z := range Zones {
		if len(snap.Zone(z)) != 0 {
			t.Errorf("%s not empty after Clear", z)
		}
	}

	e.SetName("  Chaos Control  ")
	if e.Name() != "Chaos Control" {
		t.Errorf("name = %q", e.Name())
	}
	e.SetName("   ")
	if e.Name() != DefaultName {
		t.Errorf("blank name should normalize to %q, got %q", DefaultName, e.Name())
	}
}

// TestScore: the deck score is the point-weighted copy count, and is
// linear in quantities.
func TestScore(t *testing.T) {
	table := pointTable{"Pot of Greed": 100, "Gemini Elf": 5}
	e := New(table)

	greed := spell(1, "Pot of Greed")
	elf := monster(2, "Gemini Elf")
	unscored := monster(3, "Unknown Filler")

	e.Add(greed, ZoneAuto)
	e.Add(elf, ZoneAuto)
	e.Add(unscored, ZoneAuto)
	if got := e.Score(); got != 105 {
		t.Fatalf("score = %d, want 105", got)
	}

	// Double every quantity → score doubles.
	e.Add(greed, ZoneAuto)
	e.Add(elf, ZoneAuto)
	e.Add(unscored, ZoneAuto)
	if got := e.Score(); got != 210 {
		t.Errorf("score = %d, want 210", got)
	}

	snap := e.Snapshot()
	if snap.Score != 210 {
		t.Errorf("snapshot score = %d, want 210", snap.Score)
	}
}

// TestListenerExactlyOnce: one notification per successful mutation, none
// for failed or no-op calls.
func TestListenerExactlyOnce(t *testing.T) {
	e := New(nil)
	var l countListener
	e.Subscribe(l.listen)

	card := monster(1, "Gemini Elf")
	e.Add(card, ZoneAuto)
	e.Add(card, ZoneAuto)
	e.Add(card, ZoneAuto)
	if l.calls != 3 {
		t.Fatalf("calls = %d, want 3", l.calls)
	}

	e.Add(card, ZoneAuto)            // copy cap → no notify
	e.Remove(99, ZoneMain, false)    // absent → no notify
	e.AddByID(42, ZoneMain)          // absent → no notify
	e.CanAdd(card, ZoneAuto)         // pure check → no notify
	if l.calls != 3 {
		t.Fatalf("failed operations notified: calls = %d, want 3", l.calls)
	}

	e.SetName("Exodia")
	if l.calls != 4 {
		t.Fatalf("calls = %d, want 4", l.calls)
	}
	if l.last.Type != EventRenamed {
		t.Errorf("last event = %s, want Renamed", l.last.Type)
	}
	if l.last.Deck.Name != "Exodia" {
		t.Errorf("event snapshot name = %q", l.last.Deck.Name)
	}
}

// TestListenerOrderAndUnsubscribe: listeners fire in registration order
// and stop after Unsubscribe.
func TestListenerOrderAndUnsubscribe(t *testing.T) {
	e := New(nil)
	var order []string
	first := e.Subscribe(func(Event) { order = append(order, "first") })
	e.Subscribe(func(Event) { order = append(order, "second") })

	e.Add(monster(1, "A"), ZoneAuto)
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("order = %v", order)
	}

	e.Unsubscribe(first)
	order = nil
	e.Add(monster(2, "B"), ZoneAuto)
	if len(order) != 1 || order[0] != "second" {
		t.Fatalf("order after unsubscribe = %v", order)
	}
}

// TestSnapshotIsolation: mutating a snapshot's slices must not leak into
// the engine.
func TestSnapshotIsolation(t *testing.T) {
	e := New(nil)
	e.Add(monster(1, "A"), ZoneAuto)

	snap := e.Snapshot()
	snap.Main[0].Quantity = 99

	if got := e.Snapshot().Main[0].Quantity; got != 1 {
		t.Errorf("engine quantity = %d, snapshot mutation leaked", got)
	}
}

// TestLoad: wholesale replace, including normalizing a blank name, and
// accepting over-limit snapshots as-is.
func TestLoad(t *testing.T) {
	e := New(nil)
	e.Add(monster(1, "Old"), ZoneAuto)

	var l countListener
	e.Subscribe(l.listen)

	over := Snapshot{
		Main: []Entry{{Card: monster(2, "New"), Quantity: 5}}, // beyond MaxCopies, loaded as-is
	}
	e.Load(over)

	snap := e.Snapshot()
	if snap.Name != DefaultName {
		t.Errorf("name = %q, want default", snap.Name)
	}
	if len(snap.Main) != 1 || snap.Main[0].Card.Name != "New" || snap.Main[0].Quantity != 5 {
		t.Fatalf("main = %v", snap.Main)
	}
	if l.calls != 1 {
		t.Errorf("load notified %d times, want 1", l.calls)
	}

	if len(Violations(snap)) == 0 {
		t.Error("over-limit snapshot should report violations")
	}
}

// TestRecorder: the Recorder keeps events with rising sequence numbers.
func TestRecorder(t *testing.T) {
	e := New(nil)
	rec := NewRecorder()
	e.Subscribe(rec.Record)

	e.Add(monster(1, "A"), ZoneAuto)
	e.Remove(1, ZoneMain, true)

	adds := rec.EventsOfType(EventCardAdded)
	if len(adds) != 1 || adds[0].Card != "A" {
		t.Fatalf("adds = %v", adds)
	}
	if rec.LastEvent().Type != EventCardRemoved {
		t.Errorf("last event = %s", rec.LastEvent().Type)
	}
	if rec.Events()[0].Seq >= rec.Events()[1].Seq {
		t.Error("sequence numbers should rise")
	}
}
