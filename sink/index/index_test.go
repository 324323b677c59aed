package index_test

import (
	"bytes"
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mewkiz/bgen"
	"github.com/mewkiz/bgen/header"
	"github.com/mewkiz/bgen/internal/wire"
	"github.com/mewkiz/bgen/sink/index"
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

func rec(rsid string, pos uint32) variant.Record {
	return variant.Record{
		RSID:       rsid,
		Chromosome: "1",
		Position:   pos,
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

func TestBuildIndexesAllVariants(t *testing.T) {
	data := buildContainer(t, []string{"s1"}, []variant.Record{
		rec("rs1", 100),
		rec("rs2", 200),
	})
	st, err := bgen.OpenBytes(data, true)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	dbPath := filepath.Join(t.TempDir(), "out.bgen.bgi")
	info := index.FileInfo{Filename: "out.bgen", FileSize: int64(len(data)), LastWriteTime: "2026-07-31T00:00:00Z"}
	if err := index.Build(dbPath, st, info); err != nil {
		t.Fatal(err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM Variant").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Fatalf("expected 2 variant rows, got %d", count)
	}

	var rsid string
	if err := db.QueryRow("SELECT rsid FROM Variant WHERE position = 100").Scan(&rsid); err != nil {
		t.Fatal(err)
	}
	if rsid != "rs1" {
		t.Fatalf("expected rs1, got %q", rsid)
	}

	var metaCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM Metadata").Scan(&metaCount); err != nil {
		t.Fatal(err)
	}
	if metaCount != 1 {
		t.Fatalf("expected 1 metadata row, got %d", metaCount)
	}
}
