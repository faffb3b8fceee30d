package validate

import (
	"strings"
	"testing"
)

func TestQuantity(t *testing.T) {
	cases := map[string]struct {
		n  int
		ok bool
	}{
		"50":   {50, true},
		" 0 ":  {0, true},
		"-1":   {0, false},
		"abc":  {0, false},
		"":     {0, false},
		"12.5": {0, false},

		"1000000000":          {MaxQuantity, true},
		"1000000001":          {0, false},
		"9223372036854775807": {0, false},
	}
	for in, want := range cases {
		n, ok := Quantity(in)
		if n != want.n || ok != want.ok {
			t.Errorf("Quantity(%q) = %d,%t want %d,%t", in, n, ok, want.n, want.ok)
		}
	}
}

func TestPrice(t *testing.T) {
	cases := map[string]struct {
		want string
		ok   bool
	}{
		"15.50":           {"15.5", true},
		"0":               {"0", true},
		"8":               {"8", true},
		"7.500":           {"7.5", true},
		"999999999999.99": {"999999999999.99", true},
		"1e3":             {"1000", true},

		"":                    {"0", false},
		"ten":                 {"0", false},
		"-3":                  {"0", false},
		"1,5":                 {"0", false},
		"0.001":               {"0", false},
		"1000000000000":       {"0", false},
		"1e12":                {"0", false},
		"1e50000000":          {"0", false},
		"1e2000000000":        {"0", false},
		"1e-2000000000":       {"0", false},
		"0.00000000000000001": {"0", false},

		strings.Repeat("1", 33): {"0", false},
	}
	for in, want := range cases {
		d, ok := Price(in)
		if ok != want.ok || d.String() != want.want {
			t.Errorf("Price(%q) = %s,%t want %s,%t", in, d, ok, want.want, want.ok)
		}
	}
}

func TestStatus(t *testing.T) {
	if _, ok := Status("Harvested"); !ok {
		t.Fatal("Harvested should be known")
	}
	if _, ok := Status("harvested"); ok {
		t.Fatal("statuses are case sensitive")
	}
	if _, ok := Status("Rotten"); ok {
		t.Fatal("Rotten should be rejected")
	}
}

func TestSignupFields(t *testing.T) {
	if _, ok := Email("kofi@swapnstay.test"); !ok {
		t.Fatal("valid email rejected")
	}
	if _, ok := Email("not-an-email"); ok {
		t.Fatal("invalid email accepted")
	}
	if _, ok := Phone(""); !ok {
		t.Fatal("phone is optional")
	}
	if _, ok := Phone("+233 20 123 4567"); !ok {
		t.Fatal("valid phone rejected")
	}
	if _, ok := Phone("call me"); ok {
		t.Fatal("invalid phone accepted")
	}
	if Password("12345") {
		t.Fatal("5 characters should be too weak")
	}
	if !Password("123456") {
		t.Fatal("6 characters should be accepted")
	}
}
