package finance

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		amount    string
		frequency Frequency
		want      string
	}{
		{"daily uses 30 days", "30", FrequencyDaily, "900"},
		{"weekly uses 4.33 weeks", "100", FrequencyWeekly, "433"},
		{"monthly unchanged", "500", FrequencyMonthly, "500"},
		{"yearly divided by 12", "1200", FrequencyYearly, "100"},
		{"unknown frequency is zero", "250", Frequency("bogus"), "0"},
		{"empty frequency is zero", "250", Frequency(""), "0"},
		{"negative passes through", "-10", FrequencyDaily, "-300"},
		{"fractional weekly", "12.5", FrequencyWeekly, "54.125"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(dec(tt.amount), tt.frequency)
			if !got.Equal(dec(tt.want)) {
				t.Errorf("Normalize(%s, %q) = %s, want %s", tt.amount, tt.frequency, got, tt.want)
			}
		})
	}
}

func TestFrequencyValid(t *testing.T) {
	for _, f := range Frequencies() {
		if !f.Valid() {
			t.Errorf("%q should be valid", f)
		}
	}
	if Frequency("fortnightly").Valid() {
		t.Error("fortnightly should not be valid")
	}
}

func TestRound(t *testing.T) {
	tests := []struct{ in, want string }{
		{"300.23", "300"},
		{"2.5", "3"},
		{"2.4999", "2"},
		{"-2.5", "-2"},
		{"-2.6", "-3"},
		{"0", "0"},
	}
	for _, tt := range tests {
		if got := Round(dec(tt.in)); !got.Equal(dec(tt.want)) {
			t.Errorf("Round(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
