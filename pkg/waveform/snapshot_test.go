package waveform

import (
	"path/filepath"
	"reflect"
	"testing"
)

func buildTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	s.Add(0, Waypoint{0, 1100})
	s.Add(0, Waypoint{10, 1900})
	s.Add(3, Waypoint{2.5, 1450})
	s.Add(7, Waypoint{1, 1500})
	s.Add(7, Waypoint{4, 1600})
	s.Add(7, Waypoint{8, 1200})
	return s
}

func assertStoresEqual(t *testing.T, got, want *Store) {
	t.Helper()
	for ch := 0; ch < 8; ch++ {
		g, _ := got.Waypoints(ch)
		w, _ := want.Waypoints(ch)
		if len(g) == 0 && len(w) == 0 {
			continue
		}
		if !reflect.DeepEqual(g, w) {
			t.Errorf("channel %d mismatch:\n got %+v\nwant %+v", ch, g, w)
		}
	}
}

func TestSnapshot_RoundTripJSON(t *testing.T) {
	store := buildTestStore(t)
	snap := TakeSnapshot(store, ModeStepHold, 50)

	data, err := snap.EncodeJSON()
	if err != nil {
		t.Fatalf("EncodeJSON failed: %v", err)
	}

	decoded, err := DecodeSnapshotJSON(data)
	if err != nil {
		t.Fatalf("DecodeSnapshotJSON failed: %v", err)
	}

	restored, mode, freq, err := decoded.Restore()
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if mode != ModeStepHold {
		t.Errorf("mode = %v, want ModeStepHold", mode)
	}
	if freq != 50 {
		t.Errorf("frequency = %d, want 50", freq)
	}
	assertStoresEqual(t, restored, store)
}

func TestSnapshot_RoundTripCBOR(t *testing.T) {
	store := buildTestStore(t)
	snap := TakeSnapshot(store, ModePolynomial, 30)

	data, err := snap.EncodeCBOR()
	if err != nil {
		t.Fatalf("EncodeCBOR failed: %v", err)
	}

	decoded, err := DecodeSnapshotCBOR(data)
	if err != nil {
		t.Fatalf("DecodeSnapshotCBOR failed: %v", err)
	}

	restored, mode, freq, err := decoded.Restore()
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if mode != ModePolynomial || freq != 30 {
		t.Errorf("mode, freq = %v, %d; want ModePolynomial, 30", mode, freq)
	}
	assertStoresEqual(t, restored, store)
}

func TestSnapshot_MissingFieldsDefault(t *testing.T) {
	decoded, err := DecodeSnapshotJSON([]byte(`{}`))
	if err != nil {
		t.Fatalf("DecodeSnapshotJSON failed: %v", err)
	}

	store, mode, freq, err := decoded.Restore()
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if mode != ModeLinear {
		t.Errorf("default mode = %v, want ModeLinear", mode)
	}
	if freq != DefaultFrequency {
		t.Errorf("default frequency = %d, want %d", freq, DefaultFrequency)
	}
	if !store.Empty() {
		t.Error("default store should be empty")
	}
}

func TestSnapshot_CompatibleJSONLayout(t *testing.T) {
	// Fixed document in the format written by the original controller
	doc := []byte(`{
        "interpolation_method": "constant",
        "frequency": 10,
        "thruster_data": {
            "0": [[0.0, 1100], [5.0, 1900]],
            "5": [[2.0, 1300]]
        }
    }`)

	decoded, err := DecodeSnapshotJSON(doc)
	if err != nil {
		t.Fatalf("DecodeSnapshotJSON failed: %v", err)
	}
	store, mode, freq, err := decoded.Restore()
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	if mode != ModeStepHold || freq != 10 {
		t.Errorf("mode, freq = %v, %d; want ModeStepHold, 10", mode, freq)
	}
	pts, _ := store.Waypoints(0)
	if len(pts) != 2 || pts[1].Time != 5 || pts[1].PWM != 1900 {
		t.Errorf("channel 0 waypoints = %+v", pts)
	}
	pts5, _ := store.Waypoints(5)
	if len(pts5) != 1 || pts5[0].PWM != 1300 {
		t.Errorf("channel 5 waypoints = %+v", pts5)
	}
}

func TestSnapshot_UnknownModeRejected(t *testing.T) {
	decoded, err := DecodeSnapshotJSON([]byte(`{"interpolation_method": "spline"}`))
	if err != nil {
		t.Fatalf("DecodeSnapshotJSON failed: %v", err)
	}
	if _, _, _, err := decoded.Restore(); err == nil {
		t.Error("Restore with unknown mode: expected error")
	}
}

func TestSnapshot_FileRoundTrip(t *testing.T) {
	store := buildTestStore(t)
	snap := TakeSnapshot(store, ModeLinear, 20)

	for _, name := range []string{"seq.json", "seq.cbor"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := snap.SaveFile(path); err != nil {
				t.Fatalf("SaveFile failed: %v", err)
			}
			loaded, err := LoadFile(path)
			if err != nil {
				t.Fatalf("LoadFile failed: %v", err)
			}
			restored, mode, freq, err := loaded.Restore()
			if err != nil {
				t.Fatalf("Restore failed: %v", err)
			}
			if mode != ModeLinear || freq != 20 {
				t.Errorf("mode, freq = %v, %d; want ModeLinear, 20", mode, freq)
			}
			assertStoresEqual(t, restored, store)
		})
	}
}
