package bgen_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/mewkiz/bgen"
	"github.com/mewkiz/bgen/variant"
)

func writeTempContainer(t *testing.T, dir, name string, samples []string, recs []variant.Record) string {
	t.Helper()
	data := buildContainer(t, samples, recs)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestMergeCommutesWithConcatenation(t *testing.T) {
	dir := t.TempDir()
	samples := []string{"s1", "s2"}
	recsA := []variant.Record{
		twoSampleRecord("1", 752566, "1_752566_G_A", []string{"G", "A"}),
		twoSampleRecord("1", 752721, "1_752721_A_G", []string{"A", "G"}),
	}
	recsB := []variant.Record{
		twoSampleRecord("1", 873558, "1_873558_G_T", []string{"G", "T"}),
	}
	pathA := writeTempContainer(t, dir, "a.bgen", samples, recsA)
	pathB := writeTempContainer(t, dir, "b.bgen", samples, recsB)

	var out bytes.Buffer
	if err := bgen.NewMerger([]string{pathA, pathB}).WriteTo(&out); err != nil {
		t.Fatal(err)
	}

	merged, err := bgen.OpenBytes(out.Bytes(), true)
	if err != nil {
		t.Fatal(err)
	}
	defer merged.Close()

	want := append(append([]variant.Record{}, recsA...), recsB...)
	if merged.Header.VariantNum != uint32(len(want)) {
		t.Fatalf("variant_num mismatch: got %d, want %d", merged.Header.VariantNum, len(want))
	}
	var i int
	for {
		rec, err := merged.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		if rec.RSID != want[i].RSID {
			t.Fatalf("record %d mismatch: got %q, want %q", i, rec.RSID, want[i].RSID)
		}
		i++
	}
	if i != len(want) {
		t.Fatalf("record count mismatch: got %d, want %d", i, len(want))
	}
}

func TestMergeRejectsMismatchedSamples(t *testing.T) {
	dir := t.TempDir()
	recs := []variant.Record{twoSampleRecord("1", 1, "r1", []string{"A", "G"})}
	pathA := writeTempContainer(t, dir, "a.bgen", []string{"s1", "s2"}, recs)
	pathB := writeTempContainer(t, dir, "b.bgen", []string{"s1", "s3"}, recs)

	var out bytes.Buffer
	err := bgen.NewMerger([]string{pathA, pathB}).WriteTo(&out)
	if err == nil {
		t.Fatal("expected an error for mismatched sample sets")
	}
}
