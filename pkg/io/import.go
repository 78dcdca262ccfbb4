package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/assetgraph/pkg/errors"
)

// ReadPortfolio decodes a portfolio in the given format from r.
//
// ReadPortfolio returns ErrCodeInvalidFormat if the document is malformed and
// the model's validation error (wrapped with the record's position) if a
// record is invalid: an unknown class or event type, a missing id or name, or
// an out-of-range score or strength. ReadPortfolio does not close r.
func ReadPortfolio(r io.Reader, format Format) (Portfolio, error) {
	var doc document
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return Portfolio{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json portfolio")
		}
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
			return Portfolio{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml portfolio")
		}
	default:
		return Portfolio{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported portfolio format %q", format)
	}

	p := Portfolio{}
	for i, rec := range doc.Assets {
		a, err := rec.ToAsset()
		if err != nil {
			return Portfolio{}, fmt.Errorf("asset %d (%s): %w", i, rec.ID, err)
		}
		p.Assets = append(p.Assets, a)
	}
	for i, rec := range doc.Events {
		e, err := rec.ToEvent()
		if err != nil {
			return Portfolio{}, fmt.Errorf("event %d (%s): %w", i, rec.ID, err)
		}
		p.Events = append(p.Events, e)
	}
	for i, rec := range doc.Relationships {
		rel, err := rec.ToRelationship()
		if err != nil {
			return Portfolio{}, fmt.Errorf("relationship %d (%s→%s): %w", i, rec.Source, rec.Target, err)
		}
		p.Relationships = append(p.Relationships, rel)
	}
	return p, nil
}

// ImportPortfolio reads the portfolio file at path. The format is chosen by
// [FormatFromPath]. A missing file yields ErrCodeFileNotFound.
func ImportPortfolio(path string) (Portfolio, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Portfolio{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Portfolio{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "portfolio %s", path)
		}
		return Portfolio{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadPortfolio(f, format)
}
