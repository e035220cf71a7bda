// Package report formats benchmark results into comparison tables.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/vectordb/vbench/harness"
)

// Write renders rows as a markdown comparison table.
func Write(w io.Writer, rows []harness.Row) error {
	if len(rows) == 0 {
		return fmt.Errorf("no results to report")
	}

	fmt.Fprintln(w, "| N | Dim | Storage | Write (s) | Read (s) "+
		"| Seq Read (MB/s) | Latency (ms/op) | Size |")
	fmt.Fprintln(w, "|---|-----|---------|-----------|----------"+
		"|-----------------|-----------------|------|")

	for _, row := range rows {
		fmt.Fprintf(w, "| %s | %d | %s | %.2f | %.2f | %s | %.3f | %s |\n",
			formatCount(row.Num),
			row.Dim,
			row.Result.Name,
			row.Result.WriteSec,
			row.Result.ReadSec,
			formatThroughput(row.Result.SeqReadMBps),
			row.Result.LatencyMs,
			formatBytes(row.Result.SizeBytes),
		)
	}

	return nil
}

// WriteJSON renders rows as indented JSON. Infinite throughput is
// encoded as null since JSON has no Inf literal.
func WriteJSON(w io.Writer, rows []harness.Row) error {
	type jsonRow struct {
		N           int      `json:"n"`
		Dim         int      `json:"dim"`
		Storage     string   `json:"storage"`
		WriteSec    float64  `json:"write_sec"`
		ReadSec     float64  `json:"read_sec"`
		SizeBytes   int64    `json:"size_bytes"`
		SeqReadMBps *float64 `json:"seq_read_mb_s"`
		LatencyMs   float64  `json:"latency_ms"`
	}

	out := make([]jsonRow, 0, len(rows))
	for _, row := range rows {
		jr := jsonRow{
			N:         row.Num,
			Dim:       row.Dim,
			Storage:   row.Result.Name,
			WriteSec:  row.Result.WriteSec,
			ReadSec:   row.Result.ReadSec,
			SizeBytes: row.Result.SizeBytes,
			LatencyMs: row.Result.LatencyMs,
		}

		if !math.IsInf(row.Result.SeqReadMBps, 1) {
			mbps := row.Result.SeqReadMBps
			jr.SeqReadMBps = &mbps
		}

		out = append(out, jr)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(out)
}

func formatCount(n int) string {
	if n >= 1000 {
		return strconv.Itoa(n/1000) + "k"
	}

	return strconv.Itoa(n)
}

func formatThroughput(mbps float64) string {
	if math.IsInf(mbps, 1) {
		return "∞"
	}

	return fmt.Sprintf("%.2f", mbps)
}

func formatBytes(b int64) string {
	size := float64(b)

	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if size < 1024 {
			return fmt.Sprintf("%.1f %s", size, unit)
		}

		size /= 1024
	}

	return fmt.Sprintf("%.1f TB", size)
}
