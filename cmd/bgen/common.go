package main

import (
	"github.com/mewkiz/bgen"
	"github.com/mewkiz/bgen/filter"
	"github.com/mewkiz/bgen/internal/errs"
)

// buildFilterSet assembles a filter.Set from the persistent filter flags,
// rejecting the case where both a repeatable flag and its corresponding
// file flag are set for the same rule.
func buildFilterSet() (*filter.Set, error) {
	if len(flagInclRange) > 0 && flagInclRangeFile != "" {
		return nil, errs.Configf("--incl-range and --incl-range-file are mutually exclusive")
	}
	if len(flagExclRange) > 0 && flagExclRangeFile != "" {
		return nil, errs.Configf("--excl-range and --excl-range-file are mutually exclusive")
	}
	if len(flagInclRSID) > 0 && flagInclRSIDFile != "" {
		return nil, errs.Configf("--incl-rsid and --incl-rsid-file are mutually exclusive")
	}
	if len(flagExclRSID) > 0 && flagExclRSIDFile != "" {
		return nil, errs.Configf("--excl-rsid and --excl-rsid-file are mutually exclusive")
	}

	fs := &filter.Set{}

	if flagInclRangeFile != "" {
		rs, err := filter.ReadRangeFile(flagInclRangeFile)
		if err != nil {
			return nil, err
		}
		fs.InclRange = rs
	} else {
		for _, s := range flagInclRange {
			r, err := filter.ParseRange(s)
			if err != nil {
				return nil, err
			}
			fs.InclRange = append(fs.InclRange, r)
		}
	}

	if flagExclRangeFile != "" {
		rs, err := filter.ReadRangeFile(flagExclRangeFile)
		if err != nil {
			return nil, err
		}
		fs.ExclRange = rs
	} else {
		for _, s := range flagExclRange {
			r, err := filter.ParseRange(s)
			if err != nil {
				return nil, err
			}
			fs.ExclRange = append(fs.ExclRange, r)
		}
	}

	if flagInclRSIDFile != "" {
		ids, err := filter.ReadRSIDFile(flagInclRSIDFile)
		if err != nil {
			return nil, err
		}
		fs.InclRSID = ids
	} else {
		fs.InclRSID = append(fs.InclRSID, flagInclRSID...)
	}

	if flagExclRSIDFile != "" {
		ids, err := filter.ReadRSIDFile(flagExclRSIDFile)
		if err != nil {
			return nil, err
		}
		fs.ExclRSID = ids
	} else {
		fs.ExclRSID = append(fs.ExclRSID, flagExclRSID...)
	}

	return fs, nil
}

// openFilteredStream opens flagFilename, honoring --use-sample-file, and
// installs the filter built from the command's filter flags.
func openFilteredStream(decodePayload bool) (*bgen.Stream, error) {
	var preSamples []string
	if flagUseSampleFile {
		samples, err := bgen.LoadSidecarSamples(flagFilename)
		if err != nil {
			return nil, err
		}
		preSamples = samples
	}

	st, err := bgen.OpenFile(flagFilename, preSamples, decodePayload)
	if err != nil {
		return nil, err
	}

	fs, err := buildFilterSet()
	if err != nil {
		st.Close()
		return nil, err
	}
	if !fs.IsEmpty() {
		st.SetFilter(fs)
	}
	return st, nil
}
