package period

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		m, err := Parse("2025-08")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.Year != 2025 || m.Month != time.August {
			t.Errorf("expected 2025-08, got %v", m)
		}
	})

	t.Run("invalid_format", func(t *testing.T) {
		for _, s := range []string{"2025", "2025-13", "08-2025", "2025-8", "not-a-month", ""} {
			if _, err := Parse(s); err == nil {
				t.Errorf("expected error for %q", s)
			}
		}
	})

	t.Run("round_trip", func(t *testing.T) {
		m, err := Parse("2024-02")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.String() != "2024-02" {
			t.Errorf("expected 2024-02, got %s", m.String())
		}
	})
}

func TestBounds(t *testing.T) {
	m := Month{Year: 2025, Month: time.January}
	start, end := m.Bounds()

	if start.Day() != 1 || start.Month() != time.January || start.Year() != 2025 {
		t.Errorf("unexpected start %v", start)
	}
	if end.Day() != 1 || end.Month() != time.February {
		t.Errorf("unexpected end %v", end)
	}

	// Half-open: last instant of January is inside, first of February is not.
	if !m.Contains(time.Date(2025, 1, 31, 23, 59, 59, 0, time.Local)) {
		t.Error("expected Jan 31 to be inside the month")
	}
	if m.Contains(end) {
		t.Error("expected first of next month to be outside the month")
	}
}

func TestNext(t *testing.T) {
	m := Month{Year: 2025, Month: time.December}
	next := m.Next()
	if next.Year != 2026 || next.Month != time.January {
		t.Errorf("expected 2026-01, got %v", next)
	}
}

func TestOf(t *testing.T) {
	m := Of(time.Date(2025, 6, 15, 10, 30, 0, 0, time.Local))
	if m.String() != "2025-06" {
		t.Errorf("expected 2025-06, got %s", m)
	}
}
