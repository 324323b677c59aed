// Package index implements the SQLite variant-index sink, modeled after
// bgenix's index database.
package index

import (
	"database/sql"
	"io"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mewkiz/bgen"
	"github.com/mewkiz/bgen/internal/errs"
)

const schema = `
CREATE TABLE IF NOT EXISTS Variant (
	chromosome TEXT NOT NULL,
	position INT NOT NULL,
	rsid TEXT NOT NULL,
	number_of_alleles INT NOT NULL,
	allele1 TEXT NOT NULL,
	allele2 TEXT NOT NULL,
	file_start_position INT NOT NULL,
	size_in_bytes INT NOT NULL,
	PRIMARY KEY (chromosome, position, rsid, allele1, allele2, file_start_position)
) WITHOUT ROWID;

CREATE TABLE IF NOT EXISTS Metadata (
	filename TEXT NOT NULL,
	file_size INT NOT NULL,
	last_write_time TEXT NOT NULL,
	index_creation_time INT NOT NULL,
	first_1000_bytes BLOB NOT NULL
);
`

const batchSize = 10000

// FileInfo describes the source container recorded in the Metadata table.
type FileInfo struct {
	Filename      string
	FileSize      int64
	LastWriteTime string
	First1000     []byte
}

// Build writes a bgenix-style index for st into the database at dbPath,
// recording info alongside the per-variant rows. The tables are created
// only if they do not already exist; existing rows are kept, not replaced.
func Build(dbPath string, st *bgen.Stream, info FileInfo) error {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return errs.WrapIO(err, "index: open database")
	}
	defer db.Close()

	pragmas := []string{
		"PRAGMA journal_mode=OFF",
		"PRAGMA synchronous=0",
		"PRAGMA locking_mode=EXCLUSIVE",
		"PRAGMA temp_store=MEMORY",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return errs.WrapIO(err, "index: set pragma")
		}
	}

	if _, err := db.Exec(schema); err != nil {
		return errs.WrapIO(err, "index: create schema")
	}

	if _, err := db.Exec(
		"INSERT INTO Metadata (filename, file_size, last_write_time, index_creation_time, first_1000_bytes) VALUES (?, ?, ?, ?, ?)",
		info.Filename, info.FileSize, info.LastWriteTime, time.Now().Unix(), info.First1000,
	); err != nil {
		return errs.WrapIO(err, "index: insert metadata")
	}

	type row struct {
		chr, rsid, a1, a2              string
		pos, nAlleles, startPos, bytes uint64
	}
	batch := make([]row, 0, batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		tx, err := db.Begin()
		if err != nil {
			return errs.WrapIO(err, "index: begin transaction")
		}
		var sb strings.Builder
		sb.WriteString("INSERT INTO Variant (chromosome, position, rsid, number_of_alleles, allele1, allele2, file_start_position, size_in_bytes) VALUES ")
		args := make([]interface{}, 0, len(batch)*8)
		for i, r := range batch {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString("(?,?,?,?,?,?,?,?)")
			args = append(args, r.chr, r.pos, r.rsid, r.nAlleles, r.a1, r.a2, r.startPos, r.bytes)
		}
		if _, err := tx.Exec(sb.String(), args...); err != nil {
			tx.Rollback()
			return errs.WrapIO(err, "index: insert variant batch")
		}
		if err := tx.Commit(); err != nil {
			return errs.WrapIO(err, "index: commit variant batch")
		}
		batch = batch[:0]
		return nil
	}

	for {
		rec, err := st.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		a1, a2 := "", ""
		if len(rec.Alleles) > 0 {
			a1 = rec.Alleles[0]
		}
		if len(rec.Alleles) > 1 {
			a2 = rec.Alleles[1]
		}
		batch = append(batch, row{
			chr:      rec.Chromosome,
			rsid:     rec.RSID,
			a1:       a1,
			a2:       a2,
			pos:      uint64(rec.Position),
			nAlleles: uint64(rec.AlleleCount()),
			startPos: rec.StartOffset,
			bytes:    rec.ByteSize,
		})
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	return flush()
}
