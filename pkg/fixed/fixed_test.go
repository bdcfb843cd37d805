package fixed

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRoundHalfAwayFromZero(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2.345", "2.35"},
		{"2.344", "2.34"},
		{"-2.345", "-2.35"},
		{"0.005", "0.01"},
		{"1.00", "1"},
		{"43251.00", "43251"},
	}
	for _, c := range cases {
		got := Round(dec(c.in))
		if !got.Equal(dec(c.want)) {
			t.Errorf("Round(%s) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestMin(t *testing.T) {
	if got := Min(dec("0.35"), dec("1.00")); !got.Equal(dec("0.35")) {
		t.Errorf("Min = %s, want 0.35", got)
	}
	if got := Min(dec("2.00"), dec("0.65")); !got.Equal(dec("0.65")) {
		t.Errorf("Min = %s, want 0.65", got)
	}
}

func TestSub(t *testing.T) {
	if got := Sub(dec("1.00"), dec("0.35")); !got.Equal(dec("0.65")) {
		t.Errorf("Sub = %s, want 0.65", got)
	}
	if got := Sub(dec("0.65"), dec("0.65")); !got.IsZero() {
		t.Errorf("Sub = %s, want 0", got)
	}
}

func TestCentsRoundTrip(t *testing.T) {
	for _, s := range []string{"43251.00", "0.01", "55600.00", "1.5"} {
		d := dec(s)
		if got := FromCents(Cents(d)); !got.Equal(d) {
			t.Errorf("FromCents(Cents(%s)) = %s", s, got)
		}
	}
	if Cents(dec("43251.00")) != 4325100 {
		t.Errorf("Cents(43251.00) = %d", Cents(dec("43251.00")))
	}
}

func TestValid(t *testing.T) {
	for _, s := range []string{"0.01", "1", "43251.99"} {
		if !Valid(dec(s)) {
			t.Errorf("Valid(%s) = false", s)
		}
	}
	for _, s := range []string{"0", "-1.00", "0.001", "1.555"} {
		if Valid(dec(s)) {
			t.Errorf("Valid(%s) = true", s)
		}
	}
}
