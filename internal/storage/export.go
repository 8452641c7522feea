package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/curtain/internal/sim"
)

type ExportData struct {
	ID        string             `json:"id"`
	Cols      int                `json:"cols"`
	Rows      int                `json:"rows"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Steps     int                `json:"steps"`
	Times     []float64          `json:"times"`
	Frames    [][]float64        `json:"frames"`
	TornLinks int                `json:"torn_links"`
	Metrics   map[string]float64 `json:"metrics"`
}

// ExportJSON writes one run as a single JSON document.
func ExportJSON(w io.Writer, meta *RunMetadata, frames []sim.Frame, times []float64) error {
	data := ExportData{
		ID:        meta.ID,
		Cols:      meta.Cols,
		Rows:      meta.Rows,
		Dt:        meta.Dt,
		Duration:  meta.Duration,
		Steps:     len(times),
		Times:     times,
		Frames:    make([][]float64, len(frames)),
		TornLinks: meta.TornLinks,
		Metrics:   meta.Metrics,
	}
	for i, f := range frames {
		data.Frames[i] = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportCSV streams the frames as CSV, same layout as frames.csv.
func ExportCSV(w io.Writer, frames []sim.Frame, times []float64) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if len(frames) == 0 {
		return nil
	}

	header := []string{"time"}
	for i := 0; i < len(frames[0])/2; i++ {
		header = append(header, fmt.Sprintf("x%d", i), fmt.Sprintf("y%d", i))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, frame := range frames {
		row := make([]string, 0, len(frame)+1)
		row = append(row, strconv.FormatFloat(times[i], 'f', 6, 64))
		for _, v := range frame {
			row = append(row, strconv.FormatFloat(v, 'f', 4, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	return nil
}
