package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/asciikey/internal/timeline"
)

var (
	ErrUnknownChannel = errors.New("storage: unknown channel")
	ErrMalformed      = errors.New("storage: malformed sample row")
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type TraceMetadata struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	FPS       int       `json:"fps"`
	Cycles    int       `json:"cycles"`
	Ticks     int       `json:"ticks"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	// PhaseTicks counts ticks spent in each phase.
	PhaseTicks map[string]int     `json:"phase_ticks"`
	Metrics    map[string]float64 `json:"metrics,omitempty"`
}

var header = []string{
	"time_ms", "cycle", "phase", "progress", "split", "key_y", "key_scale",
	"ground_scale", "door_scale", "door_visible", "balls_visible", "hands_visible",
}

// Save writes a trace directory holding metadata.json and samples.csv.
// Ticks and PhaseTicks are derived from samples.
func (s *Store) Save(meta TraceMetadata, samples []Sample) (string, error) {
	now := time.Now()
	if meta.ID == "" {
		meta.ID = fmt.Sprintf("trace_%d", now.UnixMilli())
	}
	meta.Timestamp = now
	meta.Ticks = len(samples)
	meta.PhaseTicks = make(map[string]int)
	for _, smp := range samples {
		meta.PhaseTicks[smp.Phase.String()]++
	}

	dir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(dir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(dir, "samples.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(header); err != nil {
		return "", err
	}
	for _, smp := range samples {
		if err := w.Write(encode(smp)); err != nil {
			return "", err
		}
	}
	w.Flush()
	return meta.ID, w.Error()
}

func (s *Store) List() ([]TraceMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []TraceMetadata{}, nil
		}
		return nil, err
	}

	traces := make([]TraceMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		traces = append(traces, *meta)
	}
	return traces, nil
}

func (s *Store) Load(id string) (*TraceMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta TraceMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadSamples(id string) ([]Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, id, "samples.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(header)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []Sample{}, nil
	}

	samples := make([]Sample, 0, len(records)-1)
	for i, rec := range records[1:] {
		smp, err := decode(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, i+2, err)
		}
		samples = append(samples, smp)
	}
	return samples, nil
}

func ftoa(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }

func encode(s Sample) []string {
	return []string{
		ftoa(s.TimeMS),
		strconv.Itoa(s.Cycle),
		s.Phase.String(),
		ftoa(s.Progress),
		strconv.FormatBool(s.Split),
		ftoa(s.KeyY),
		ftoa(s.KeyScale),
		ftoa(s.GroundScale),
		ftoa(s.DoorScale),
		strconv.FormatBool(s.DoorVisible),
		strconv.Itoa(s.BallsVisible),
		strconv.FormatBool(s.HandsVisible),
	}
}

// fieldReader parses successive columns and keeps the first error.
type fieldReader struct {
	rec []string
	i   int
	err error
}

func (f *fieldReader) next() string {
	v := f.rec[f.i]
	f.i++
	return v
}

func (f *fieldReader) float() float64 {
	v, err := strconv.ParseFloat(f.next(), 64)
	if f.err == nil {
		f.err = err
	}
	return v
}

func (f *fieldReader) integer() int {
	v, err := strconv.Atoi(f.next())
	if f.err == nil {
		f.err = err
	}
	return v
}

func (f *fieldReader) flag() bool {
	v, err := strconv.ParseBool(f.next())
	if f.err == nil {
		f.err = err
	}
	return v
}

func (f *fieldReader) phase() timeline.Phase {
	name := f.next()
	p, ok := timeline.ParsePhase(name)
	if !ok && f.err == nil {
		f.err = fmt.Errorf("unknown phase %q", name)
	}
	return p
}

func decode(rec []string) (Sample, error) {
	f := &fieldReader{rec: rec}
	s := Sample{
		TimeMS:       f.float(),
		Cycle:        f.integer(),
		Phase:        f.phase(),
		Progress:     f.float(),
		Split:        f.flag(),
		KeyY:         f.float(),
		KeyScale:     f.float(),
		GroundScale:  f.float(),
		DoorScale:    f.float(),
		DoorVisible:  f.flag(),
		BallsVisible: f.integer(),
		HandsVisible: f.flag(),
	}
	return s, f.err
}
