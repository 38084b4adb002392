package model

import (
	"fmt"
	"strconv"
)

// Payback is the 1-indexed period in which cumulative net profit first covers
// the initial investment. NoPayback means it never does within the horizon.
type Payback int

const NoPayback Payback = 0

// Recovered reports whether the investment is recovered within the horizon.
func (p Payback) Recovered() bool { return p > NoPayback }

// Label is the period header ("Y3") or "" when not recovered.
func (p Payback) Label() string {
	if !p.Recovered() || int(p) > Periods {
		return ""
	}
	return PeriodLabels[p-1]
}

// String is intended for CSV and CLI output; keep the values stable.
func (p Payback) String() string {
	if !p.Recovered() {
		return "no payback"
	}
	return strconv.Itoa(int(p))
}

func (p Payback) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Payback) UnmarshalText(b []byte) error {
	s := string(b)
	if s == "no payback" || s == "" {
		*p = NoPayback
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > Periods {
		return fmt.Errorf("invalid payback period %q", s)
	}
	*p = Payback(n)
	return nil
}
