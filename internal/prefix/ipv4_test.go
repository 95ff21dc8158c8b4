package prefix

import "testing"

func TestIpv4PrefixCanonicalisesHostBits(t *testing.T) {
	p := NewIpv4Prefix([4]byte{192, 168, 1, 200}, 24)
	if got, want := p.String(), "192.168.1.0/24"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
	first, last := p.Endpoints()
	if first != [4]byte{192, 168, 1, 0} {
		t.Fatalf("first = %v", first)
	}
	if last != [4]byte{192, 168, 1, 255} {
		t.Fatalf("last = %v", last)
	}
}

func TestIpv4PrefixEndpointsDegenerate(t *testing.T) {
	for _, length := range []uint8{0, 32} {
		p := NewIpv4Prefix([4]byte{10, 0, 0, 1}, length)
		first, last := p.Endpoints()
		if length == 32 && first != last {
			t.Fatalf("len=32: first %v != last %v", first, last)
		}
		if length == 0 && p.Addr() != [4]byte{0, 0, 0, 0} {
			t.Fatalf("len=0: addr not zeroed: %v", p.Addr())
		}
	}
}

func TestIpv4PrefixRoundTrip(t *testing.T) {
	cases := []string{"10.10.100.0/24", "0.0.0.0/0", "255.255.255.255/32", "172.16.0.0/12"}
	for _, s := range cases {
		p, err := ParseIpv4Prefix(s)
		if err != nil {
			t.Fatalf("parse(%q): %v", s, err)
		}
		if p.String() != s {
			t.Fatalf("round trip: parse(%q).String() = %q", s, p.String())
		}
	}
}

func TestIpv4PrefixTruncateThenExtendRoundTrips(t *testing.T) {
	base, _ := ParseIpv4Prefix("10.10.0.0/16")
	child, _ := ParseIpv4Prefix("10.10.100.0/24")

	truncated, ok := child.Truncate(16)
	if !ok {
		t.Fatal("truncate failed")
	}
	if truncated != base {
		t.Fatalf("truncated = %v, want %v", truncated, base)
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

func TestIpv4PrefixExtendRejectsConflictingBits(t *testing.T) {
	base, _ := ParseIpv4Prefix("10.10.0.0/16")
	conflicting, _ := ParseIpv4Prefix("10.11.100.0/24")
	if _, ok := base.Extend(conflicting); ok {
		t.Fatal("expected extend to reject conflicting high bits")
	}
}

func TestIpv4PrefixOverlapsSymmetric(t *testing.T) {
	a, _ := ParseIpv4Prefix("10.0.0.0/8")
	b, _ := ParseIpv4Prefix("10.10.0.0/16")
	c, _ := ParseIpv4Prefix("192.168.0.0/16")

	ab, okAB := a.Overlaps(b)
	ba, okBA := b.Overlaps(a)
	if okAB != okBA || ab != ba {
		t.Fatalf("overlap not symmetric: a.Overlaps(b)=(%v,%v) b.Overlaps(a)=(%v,%v)", ab, okAB, ba, okBA)
	}
	if ab != Ipv4OverlapSubset {
		t.Fatalf("expected subset, got %v", ab)
	}

	if _, ok := a.Overlaps(c); ok {
		t.Fatal("expected disjoint prefixes to not overlap")
	}

	same, _ := ParseIpv4Prefix("10.0.0.0/8")
	if eq, ok := a.Overlaps(same); !ok || eq != Ipv4OverlapEqual {
		t.Fatalf("expected equal overlap, got (%v, %v)", eq, ok)
	}
}
