package list_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mewkiz/bgen"
	"github.com/mewkiz/bgen/header"
	"github.com/mewkiz/bgen/internal/wire"
	"github.com/mewkiz/bgen/sink/list"
	"github.com/mewkiz/bgen/variant"
)

func buildContainer(t *testing.T, samples []string, records []variant.Record) []byte {
	t.Helper()
	var body bytes.Buffer
	bw := wire.NewWriter(&body)
	for _, rec := range records {
		if err := variant.Write(bw, rec, true); err != nil {
			t.Fatal(err)
		}
	}
	hdr := header.Header{
		HeaderSize: 20,
		VariantNum: uint32(len(records)),
		SampleNum:  uint32(len(samples)),
		Flags:      header.Flags{Compressed: true, Layout: 2, SamplesEmbedded: true},
	}
	hdr.StartDataOffset = 20 + header.SampleBlockOverhead(samples)
	var out bytes.Buffer
	ww := wire.NewWriter(&out)
	if err := header.Write(ww, hdr, samples); err != nil {
		t.Fatal(err)
	}
	out.Write(body.Bytes())
	return out.Bytes()
}

func rec(rsid string, empty bool) variant.Record {
	id := rsid
	if empty {
		id = ""
	}
	return variant.Record{
		VariantID:  id,
		RSID:       rsid,
		Chromosome: "1",
		Position:   100,
		Alleles:    []string{"G", "A"},
		Data: variant.DataBlock{
			NIndividuals:      1,
			NAlleles:          2,
			MinPloidy:         2,
			MaxPloidy:         2,
			PloidyMissingness: []byte{2},
			BitsPerProb:       16,
			Probabilities:     []uint32{10, 20},
		},
	}
}

func TestWriteBgenixMode(t *testing.T) {
	data := buildContainer(t, []string{"s1"}, []variant.Record{rec("rs1", true)})
	st, err := bgen.OpenBytes(data, true)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	var out bytes.Buffer
	if err := list.Write(&out, st, list.ModeBgenix); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	fields := strings.Split(lines[1], "\t")
	if fields[0] != "." {
		t.Fatalf("expected empty variant_id to render as '.', got %q", fields[0])
	}
	if fields[1] != "rs1" {
		t.Fatalf("expected rsid column rs1, got %q", fields[1])
	}
}

func TestWriteRSIDMode(t *testing.T) {
	data := buildContainer(t, []string{"s1"}, []variant.Record{rec("rs1", false), rec("rs2", false)})
	st, err := bgen.OpenBytes(data, true)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	var out bytes.Buffer
	if err := list.Write(&out, st, list.ModeRSID); err != nil {
		t.Fatal(err)
	}
	want := "rsid\nrs1\nrs2\n"
	if out.String() != want {
		t.Fatalf("unexpected output: got %q, want %q", out.String(), want)
	}
}
