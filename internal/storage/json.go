package storage

import (
	"encoding/json"
	"os"
)

type ExportData struct {
	TraceMetadata
	Samples []Sample `json:"samples"`
}

// ExportJSON writes a stored trace as a single JSON document.
func (s *Store) ExportJSON(id, path string) error {
	meta, err := s.Load(id)
	if err != nil {
		return err
	}
	samples, err := s.LoadSamples(id)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ExportData{TraceMetadata: *meta, Samples: samples}); err != nil {
		return err
	}
	return f.Close()
}
