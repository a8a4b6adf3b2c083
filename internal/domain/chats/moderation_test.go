package chats

import "testing"

func TestContainsPhoneNumber(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"call me at 5551234567", true},
		{"555-123-4567", true},
		{"555.123.4567 after six", true},
		{"my number is 555 123 4567", true},
		{"+1 (555) 123 4567", true},
		{"+44-20-7946-0958", true},
		{"0555 123 456", true},
		{"0555-123-456", true},
		{"is it still available?", false},
		{"I can pay 15000", false},
		{"meet at 5pm on 12/05", false},
		{"order 12345", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := ContainsPhoneNumber(tt.text); got != tt.want {
				t.Errorf("ContainsPhoneNumber(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
