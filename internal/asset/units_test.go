package asset_test

import (
	"errors"
	"math/big"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fd1az/usdt-bridge/internal/asset"
)

func TestToBaseUnits(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		decimals uint8
		want     string
	}{
		{"whole usdt", "100", 6, "100000000"},
		{"fractional usdt", "1.5", 6, "1500000"},
		{"one ether", "1", 18, "1000000000000000000"},
		{"truncates extra digits", "1.23456789", 6, "1234567"},
		{"zero decimals", "42.9", 0, "42"},
		{"max precision", "0.000000000000000001", 18, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := asset.ToBaseUnits(decimal.RequireFromString(tt.amount), tt.decimals)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("ToBaseUnits(%s, %d) = %s, want %s", tt.amount, tt.decimals, got, tt.want)
			}
		})
	}
}

func TestToBaseUnits_RejectsNonPositive(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		decimals uint8
	}{
		{"zero", "0", 6},
		{"negative", "-5", 6},
		{"below one base unit", "0.0000001", 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := asset.ToBaseUnits(decimal.RequireFromString(tt.amount), tt.decimals)
			if !errors.Is(err, asset.ErrNonPositiveAmount) {
				t.Errorf("expected ErrNonPositiveAmount, got %v", err)
			}
		})
	}
}

func TestBaseUnits_RoundTrip(t *testing.T) {
	amounts := []string{"1", "0.5", "123.456789", "99999.999999999", "0.000001", "7.1234567891234"}
	decimalsSet := []uint8{0, 2, 6, 8, 18}

	one := big.NewInt(1)
	for _, a := range amounts {
		for _, d := range decimalsSet {
			amount := decimal.RequireFromString(a)

			first, err := asset.ToBaseUnits(amount, d)
			if err != nil {
				// sub-unit amounts at low precision are rejected, nothing to round-trip
				continue
			}

			back := asset.FromBaseUnits(first, d)
			second, err := asset.ToBaseUnits(back, d)
			if err != nil {
				t.Fatalf("round-trip of %s at %d decimals failed: %v", a, d, err)
			}

			diff := new(big.Int).Sub(first, second)
			diff.Abs(diff)
			if diff.Cmp(one) > 0 {
				t.Errorf("round-trip of %s at %d decimals drifted by %s base units", a, d, diff)
			}
		}
	}
}

func TestFromBaseUnits(t *testing.T) {
	got := asset.FromBaseUnits(big.NewInt(99_000_000), 6)
	if !got.Equal(decimal.NewFromInt(99)) {
		t.Errorf("expected 99, got %s", got)
	}

	if !asset.FromBaseUnits(nil, 6).IsZero() {
		t.Error("expected zero for nil value")
	}
}

func TestParseAmount(t *testing.T) {
	if _, err := asset.ParseAmount("100.25"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	for _, in := range []string{"", "abc", "NaN", "1e"} {
		if _, err := asset.ParseAmount(in); !errors.Is(err, asset.ErrNotNumeric) {
			t.Errorf("ParseAmount(%q): expected ErrNotNumeric, got %v", in, err)
		}
	}

	for _, in := range []string{"0", "-1", "-0.01"} {
		if _, err := asset.ParseAmount(in); !errors.Is(err, asset.ErrNonPositiveAmount) {
			t.Errorf("ParseAmount(%q): expected ErrNonPositiveAmount, got %v", in, err)
		}
	}
}

func TestParseDecimal_NoRangeCheck(t *testing.T) {
	for in, want := range map[string]string{"0": "0", " -1.5 ": "-1.5", "42": "42"} {
		got, err := asset.ParseDecimal(in)
		if err != nil {
			t.Errorf("ParseDecimal(%q): unexpected error: %v", in, err)
			continue
		}
		if got.String() != want {
			t.Errorf("ParseDecimal(%q) = %s, want %s", in, got, want)
		}
	}

	if _, err := asset.ParseDecimal("ten"); !errors.Is(err, asset.ErrNotNumeric) {
		t.Errorf("expected ErrNotNumeric, got %v", err)
	}
}

func TestFormatUnits(t *testing.T) {
	wei := new(big.Int).Mul(big.NewInt(25), big.NewInt(1e14)) // 0.0025 ETH
	if got := asset.FormatUnits(wei, 18); got != "0.0025" {
		t.Errorf("expected 0.0025, got %s", got)
	}
}
