package filter_test

import (
	"testing"

	"github.com/mewkiz/bgen/filter"
)

func TestMatchesNoInclusionRules(t *testing.T) {
	s := &filter.Set{ExclRange: []filter.Range{{Chr: "1", Start: 800000, End: 850000}}}
	if s.Matches("1", 800001, "x") {
		t.Fatal("expected exclusion to reject")
	}
	if !s.Matches("1", 1, "x") {
		t.Fatal("expected non-excluded record to be accepted")
	}
}

func TestMatchesInclusionAndExclusion(t *testing.T) {
	s := &filter.Set{
		InclRange: []filter.Range{{Chr: "1", Start: 0, End: 900000}},
		ExclRange: []filter.Range{{Chr: "1", Start: 800000, End: 850000}},
	}
	if !s.Matches("1", 752566, "x") {
		t.Fatal("expected in-range record to be accepted")
	}
	if s.Matches("1", 820000, "x") {
		t.Fatal("expected excluded sub-range to be rejected")
	}
	if s.Matches("2", 100, "x") {
		t.Fatal("expected record on a different chromosome to be rejected")
	}
}

func TestMatchesRSIDInclusion(t *testing.T) {
	s := &filter.Set{InclRSID: []string{"rs123"}}
	if !s.Matches("1", 1, "rs123") {
		t.Fatal("expected rsid match to be accepted")
	}
	if s.Matches("1", 1, "rs999") {
		t.Fatal("expected non-matching rsid to be rejected")
	}
}

func TestIdempotence(t *testing.T) {
	s := &filter.Set{InclRange: []filter.Range{{Chr: "1", Start: 0, End: 900000}}}
	a := s.Matches("1", 500, "x")
	b := s.Matches("1", 500, "x")
	if a != b {
		t.Fatal("filter is not idempotent")
	}
}

func TestMonotonicityExclusionOnlyShrinks(t *testing.T) {
	small := &filter.Set{ExclRange: []filter.Range{{Chr: "1", Start: 100, End: 200}}}
	large := &filter.Set{ExclRange: []filter.Range{{Chr: "1", Start: 100, End: 300}}}
	// pos 250 is excluded by the larger range but not the smaller one: the
	// larger exclusion set's accepted set must not be a superset.
	if !small.Matches("1", 250, "x") {
		t.Fatal("smaller excl_range unexpectedly rejects pos 250")
	}
	if large.Matches("1", 250, "x") {
		t.Fatal("larger excl_range unexpectedly accepts pos 250")
	}
}

func TestParseRange(t *testing.T) {
	r, err := filter.ParseRange("1:100-200")
	if err != nil {
		t.Fatal(err)
	}
	if r.Chr != "1" || r.Start != 100 || r.End != 200 {
		t.Fatalf("unexpected parse result: %+v", r)
	}
	if _, err := filter.ParseRange("bad-range"); err == nil {
		t.Fatal("expected an error for a malformed range")
	}
	if _, err := filter.ParseRange("1:200-100"); err == nil {
		t.Fatal("expected an error for start > end")
	}
}
