package types

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRouteTypeNames(t *testing.T) {
	tests := []struct {
		in   string
		want RouteType
		ok   bool
	}{
		{"unicast", RTN_UNICAST, true},
		{"Local", RTN_LOCAL, true},
		{"5", RTN_MULTICAST, true},
		{"0x3", RTN_BROADCAST, true},
		{"256", 0, false},
		{"bogus", 0, false},
	}

	for _, test := range tests {
		got, ok := ParseRouteType(test.in)
		if got != test.want || ok != test.ok {
			t.Errorf("%q: got (%v, %v), want (%v, %v)", test.in, got, ok, test.want, test.ok)
		}
	}

	if got := RouteType(42).String(); got != "42" {
		t.Errorf("unknown route type: got %q, want %q", got, "42")
	}
}

func TestScopeAndTable(t *testing.T) {
	if s, ok := ParseScope("link"); !ok || s != RT_SCOPE_LINK || uint8(s) != 253 {
		t.Errorf("link scope: got (%d, %v)", s, ok)
	}
	if got := RT_SCOPE_UNIVERSE.String(); got != "global" {
		t.Errorf("universe scope: got %q, want %q", got, "global")
	}

	tests := []struct {
		in   string
		want uint32
		ok   bool
	}{
		{"main", RT_TABLE_MAIN, true},
		{"local", RT_TABLE_LOCAL, true},
		{"1000", 1000, true},
		{"65535", 65535, true},
		{"65536", 0, false},
	}
	for _, test := range tests {
		got, ok := ParseTable(test.in)
		if got != test.want || ok != test.ok {
			t.Errorf("table %q: got (%d, %v), want (%d, %v)", test.in, got, ok, test.want, test.ok)
		}
	}
	if got := TableName(254); got != "main" {
		t.Errorf("table name: got %q, want %q", got, "main")
	}
}

func TestNudState(t *testing.T) {
	s := NUD_REACHABLE | NUD_PERMANENT
	if !s.Has(NUD_PERMANENT) || s.Has(NUD_STALE) {
		t.Errorf("unexpected Has result for %v", s)
	}
	if got, want := s.Names(), []string{"reachable", "permanent"}; !cmp.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if got := NudState(0).String(); got != "none" {
		t.Errorf("got %q, want %q", got, "none")
	}
	if got := s.String(); got != "reachable|permanent" {
		t.Errorf("got %q, want %q", got, "reachable|permanent")
	}
}
