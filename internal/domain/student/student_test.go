package student

import "testing"

func TestValidPlacedStatus(t *testing.T) {
	for _, value := range []string{"unplaced", "placed_tier1", "placed_tier2", "placed_tier3"} {
		if !ValidPlacedStatus(value) {
			t.Fatalf("expected %q accepted", value)
		}
	}
	for _, value := range []string{"", "tier1", "placed", "placed_tier4"} {
		if ValidPlacedStatus(value) {
			t.Fatalf("expected %q rejected", value)
		}
	}
}

func TestIsPlaced(t *testing.T) {
	for _, status := range []PlacedStatus{PlacedTier1, PlacedTier2, PlacedTier3} {
		if !status.IsPlaced() {
			t.Fatalf("expected %q placed", status)
		}
	}
	// A status that was never written counts the same as unplaced.
	for _, status := range []PlacedStatus{Unplaced, PlacedStatus("")} {
		if status.IsPlaced() {
			t.Fatalf("expected %q not placed", status)
		}
	}
}
