package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/assetgraph/pkg/errors"
)

// WritePortfolio encodes p in the given format and writes it to w.
// The output can be re-imported with [ReadPortfolio].
func WritePortfolio(p Portfolio, w io.Writer, format Format) error {
	doc := document{
		Assets:        make([]AssetRecord, len(p.Assets)),
		Events:        make([]EventRecord, len(p.Events)),
		Relationships: make([]RelationshipRecord, len(p.Relationships)),
	}
	for i, a := range p.Assets {
		doc.Assets[i] = NewAssetRecord(a)
	}
	for i, e := range p.Events {
		doc.Events[i] = NewEventRecord(e)
	}
	for i, r := range p.Relationships {
		doc.Relationships[i] = NewRelationshipRecord(r)
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(doc); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported portfolio format %q", format)
	}
	return nil
}

// ExportPortfolio writes p to a file at path, choosing the format from the
// extension.
func ExportPortfolio(p Portfolio, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WritePortfolio(p, f, format)
}
