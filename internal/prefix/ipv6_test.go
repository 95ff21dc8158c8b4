package prefix

import "testing"

func TestIpv6PrefixRoundTrip(t *testing.T) {
	cases := []string{"2800:200:44:8814::/64", "::/1", "fe80::1/128", "2001:db8::/32"}
	for _, s := range cases {
		p, err := ParseIpv6Prefix(s)
		if err != nil {
			t.Fatalf("parse(%q): %v", s, err)
		}
		if p.String() != s {
			t.Fatalf("round trip: parse(%q).String() = %q", s, p.String())
		}
	}
}

func TestIpv6PrefixEndpointsDegenerate(t *testing.T) {
	p, _ := ParseIpv6Prefix("2001:db8::1/128")
	first, last := p.Endpoints()
	if first != last {
		t.Fatalf("len=128: first %v != last %v", first, last)
	}
}

func TestIpv6PrefixTruncateThenExtendRoundTrips(t *testing.T) {
	base, _ := ParseIpv6Prefix("2001:db8::/32")
	child, _ := ParseIpv6Prefix("2001:db8:1234::/48")

	truncated, ok := child.Truncate(32)
	if !ok || truncated != base {
		t.Fatalf("truncate mismatch: %v ok=%v want %v", truncated, ok, base)
	}

	extended, ok := base.Extend(child)
	if !ok {
		t.Fatal("extend failed")
	}
	back, ok := extended.Truncate(base.Len())
	if !ok || back != base {
		t.Fatalf("extend-then-truncate mismatch: back=%v base=%v", back, base)
	}
	if extended.Len() != child.Len() {
		t.Fatalf("extended len = %d, want %d", extended.Len(), child.Len())
	}
}

func TestIpv6PrefixOverlapsSymmetric(t *testing.T) {
	a, _ := ParseIpv6Prefix("2001:db8::/32")
	b, _ := ParseIpv6Prefix("2001:db8:1234::/48")
	c, _ := ParseIpv6Prefix("fe80::/10")

	ab, okAB := a.Overlaps(b)
	ba, okBA := b.Overlaps(a)
	if okAB != okBA || ab != ba {
		t.Fatalf("overlap not symmetric: %v/%v vs %v/%v", ab, okAB, ba, okBA)
	}
	if ab != Ipv6OverlapSubset {
		t.Fatalf("expected subset, got %v", ab)
	}
	if _, ok := a.Overlaps(c); ok {
		t.Fatal("expected disjoint prefixes to not overlap")
	}
}
