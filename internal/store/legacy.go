package store

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ironsheep/captmoose/internal/logging"
)

// legacyDoc is one line of the old nedb datafile: the moose as nested colour
// names plus its creation time in Unix milliseconds.
type legacyDoc struct {
	Name    string     `json:"name"`
	Moose   [][]string `json:"moose"`
	Added   int64      `json:"added"`
	Deleted bool       `json:"$$deleted"`
	Index   *struct{}  `json:"$$indexCreated"`
}

// ImportResult summarises an ImportLegacy run.
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Failed   []string `json:"failed,omitempty"`
}

// ImportLegacy reads a newline-delimited nedb dump and stores every valid
// moose in encoded form, keeping its original creation time.
//
// Index and deletion markers are ignored, names that already exist are
// skipped, and invalid moose are listed in Failed without aborting the run.
func (s *Store) ImportLegacy(ctx context.Context, r io.Reader) (*ImportResult, error) {
	result := &ImportResult{}

	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return result, err
		}
		data := scanner.Bytes()
		if len(data) == 0 {
			continue
		}

		var doc legacyDoc
		if err := json.Unmarshal(data, &doc); err != nil {
			result.Failed = append(result.Failed, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		if doc.Deleted || doc.Index != nil || doc.Name == "" {
			continue
		}

		g, err := s.def.Validate(doc.Moose)
		if err != nil {
			result.Failed = append(result.Failed, fmt.Sprintf("line %d (%s): %v", line, doc.Name, err))
			continue
		}

		created := time.UnixMilli(doc.Added)
		if doc.Added == 0 {
			created = s.now()
		}
		if _, err := s.create(ctx, doc.Name, g, created); err != nil {
			if errors.Is(err, ErrExists) {
				result.Skipped++
				continue
			}
			result.Failed = append(result.Failed, fmt.Sprintf("line %d (%s): %v", line, doc.Name, err))
			continue
		}
		result.Imported++
	}
	if err := scanner.Err(); err != nil {
		return result, fmt.Errorf("scanner error: %w", err)
	}

	logging.Info("Store", "Legacy import: %d imported, %d skipped, %d failed", result.Imported, result.Skipped, len(result.Failed))
	return result, nil
}
