package stay

import (
	"testing"
)

func TestCheckServiceAvailability(t *testing.T) {
	e := newTestEngine(t, octoberBlocks(t))

	t.Run("fully available", func(t *testing.T) {
		got, err := e.CheckServiceAvailability(rng(t, "2025-10-02", "2025-10-18"), roomOnly)
		if err != nil {
			t.Fatalf("CheckServiceAvailability() error = %v", err)
		}

		if _, ok := got.(FullyAvailable); !ok {
			t.Errorf("CheckServiceAvailability() = %#v, want FullyAvailable", got)
		}
	})

	t.Run("partially available", func(t *testing.T) {
		got, err := e.CheckServiceAvailability(rng(t, "2025-10-05", "2025-10-15"), breakfast)
		if err != nil {
			t.Fatalf("CheckServiceAvailability() error = %v", err)
		}

		partial, ok := got.(PartiallyAvailable)
		if !ok {
			t.Fatalf("CheckServiceAvailability() = %#v, want PartiallyAvailable", got)
		}

		if len(partial.AvailablePeriods) != 1 || !partial.AvailablePeriods[0].Equal(rng(t, "2025-10-05", "2025-10-10")) {
			t.Errorf("AvailablePeriods = %v, want [[2025-10-05, 2025-10-10)]", partial.AvailablePeriods)
		}
	})

	t.Run("uncovered tail makes it partial", func(t *testing.T) {
		got, err := e.CheckServiceAvailability(rng(t, "2025-10-15", "2025-10-25"), roomOnly)
		if err != nil {
			t.Fatalf("CheckServiceAvailability() error = %v", err)
		}

		if _, ok := got.(PartiallyAvailable); !ok {
			t.Errorf("CheckServiceAvailability() = %#v, want PartiallyAvailable", got)
		}
	})

	t.Run("unavailable lists sorted alternatives", func(t *testing.T) {
		got, err := e.CheckServiceAvailability(rng(t, "2025-10-05", "2025-10-15"), "full-board")
		if err != nil {
			t.Fatalf("CheckServiceAvailability() error = %v", err)
		}

		unavailable, ok := got.(Unavailable)
		if !ok {
			t.Fatalf("CheckServiceAvailability() = %#v, want Unavailable", got)
		}

		want := []string{breakfast, halfBoard, roomOnly}
		if len(unavailable.AlternativeServiceTypeIDs) != len(want) {
			t.Fatalf("alternatives = %v, want %v", unavailable.AlternativeServiceTypeIDs, want)
		}

		for i := range want {
			if unavailable.AlternativeServiceTypeIDs[i] != want[i] {
				t.Errorf("alternatives[%d] = %v, want %v", i, unavailable.AlternativeServiceTypeIDs[i], want[i])
			}
		}
	})

	t.Run("drafts never make a service available", func(t *testing.T) {
		draft := block(t, "draft", "2025-12-01", "2025-12-31", breakfast)
		draft.IsDraft = true

		got, err := newTestEngine(t, []SeasonBlock{draft}).CheckServiceAvailability(rng(t, "2025-12-05", "2025-12-10"), breakfast)
		if err != nil {
			t.Fatalf("CheckServiceAvailability() error = %v", err)
		}

		unavailable, ok := got.(Unavailable)
		if !ok || len(unavailable.AlternativeServiceTypeIDs) != 0 {
			t.Errorf("CheckServiceAvailability() = %#v, want Unavailable without alternatives", got)
		}
	})

	t.Run("touching blocks offering the service merge into one period", func(t *testing.T) {
		e := newTestEngine(t, []SeasonBlock{
			block(t, "1", "2025-10-01", "2025-10-05", breakfast),
			block(t, "2", "2025-10-05", "2025-10-09", breakfast),
			block(t, "3", "2025-10-09", "2025-10-12", roomOnly),
		})

		got, err := e.CheckServiceAvailability(rng(t, "2025-10-02", "2025-10-11"), breakfast)
		if err != nil {
			t.Fatalf("CheckServiceAvailability() error = %v", err)
		}

		partial, ok := got.(PartiallyAvailable)
		if !ok || len(partial.AvailablePeriods) != 1 || !partial.AvailablePeriods[0].Equal(rng(t, "2025-10-02", "2025-10-09")) {
			t.Errorf("CheckServiceAvailability() = %#v, want one period [2025-10-02, 2025-10-09)", got)
		}
	})
}
