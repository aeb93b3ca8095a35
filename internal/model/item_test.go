package model

import "testing"

func TestNextStatus(t *testing.T) {
	tests := []struct {
		status string
		next   string
		ok     bool
	}{
		{StatusIntake, StatusProcessing, true},
		{StatusProcessing, StatusDrafted, true},
		{StatusDrafted, StatusReview, true},
		{StatusReview, StatusReady, true},
		{StatusReady, StatusListed, true},
		{StatusListed, StatusSold, true},
		{StatusSold, "", false},
		{StatusScrap, "", false},
		{"bogus", "", false},
	}

	for _, tt := range tests {
		next, ok := NextStatus(tt.status)
		if next != tt.next || ok != tt.ok {
			t.Errorf("NextStatus(%q) = (%q, %v), want (%q, %v)", tt.status, next, ok, tt.next, tt.ok)
		}
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusIntake, StatusProcessing, StatusDrafted,
		StatusReview, StatusReady, StatusListed, StatusSold, StatusScrap} {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"", "Intake", "deleted", "INTAKE"} {
		if ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = true, want false", s)
		}
	}
}

// Every valid status is either archived or in the working set, never both.
func TestArchivedPartition(t *testing.T) {
	archived := map[string]bool{StatusListed: true, StatusSold: true, StatusScrap: true}

	for _, s := range []string{StatusIntake, StatusProcessing, StatusDrafted,
		StatusReview, StatusReady, StatusListed, StatusSold, StatusScrap} {
		if IsArchivedStatus(s) != archived[s] {
			t.Errorf("IsArchivedStatus(%q) = %v, want %v", s, IsArchivedStatus(s), archived[s])
		}
	}
}
