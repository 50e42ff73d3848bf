// Package batch runs the line-counting phase over batches of files on a
// bounded worker pool.
package batch

import (
	"runtime"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/pool"

	"github.com/phobologic/repoindex/internal/count"
	"github.com/phobologic/repoindex/internal/model"
)

// syncThreshold is the workload below which batching and goroutines cost
// more than they save.
const syncThreshold = 100

// Counter produces a line count for the file at an absolute path.
type Counter func(abs string) int

// Process counts lines for every file and returns one FileRecord per input,
// in unspecified order. workers <= 0 selects the available CPU count, and a
// nil counter selects count.Lines. Small workloads and parallel=false run on
// the calling goroutine. A panicking batch is logged at warn level and its
// files are recorded with zero lines; the scan is never aborted.
func Process(files []model.FilePathPair, workers int, parallel bool, counter Counter, log zerolog.Logger) []model.FileRecord {
	if counter == nil {
		counter = count.Lines
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if !parallel || workers == 1 || len(files) < syncThreshold {
		return safeBatch(files, counter, log)
	}

	batches := Partition(files, workers)
	results := make([][]model.FileRecord, len(batches))

	p := pool.New().WithMaxGoroutines(workers)
	for i, b := range batches {
		i, b := i, b
		p.Go(func() {
			results[i] = safeBatch(b, counter, log)
		})
	}
	p.Wait()

	records := make([]model.FileRecord, 0, len(files))
	for _, rs := range results {
		records = append(records, rs...)
	}
	return records
}

// Partition splits files into contiguous batches sized to amortize per-task
// dispatch overhead: roughly len(files) / (workers * 4), at least one file
// per batch.
func Partition(files []model.FilePathPair, workers int) [][]model.FilePathPair {
	if len(files) == 0 {
		return nil
	}
	size := len(files) / (workers * 4)
	if size < 1 {
		size = 1
	}
	batches := make([][]model.FilePathPair, 0, (len(files)+size-1)/size)
	for start := 0; start < len(files); start += size {
		end := min(start+size, len(files))
		batches = append(batches, files[start:end])
	}
	return batches
}

// safeBatch converts a batch panic into zero-line records so one bad batch
// cannot take down a long scan.
func safeBatch(b []model.FilePathPair, counter Counter, log zerolog.Logger) (records []model.FileRecord) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn().
				Interface("panic", r).
				Int("files", len(b)).
				Msg("batch worker failed; recording batch as zero lines")
			records = zeroBatch(b)
		}
	}()
	return runBatch(b, counter)
}

func runBatch(b []model.FilePathPair, counter Counter) []model.FileRecord {
	records := make([]model.FileRecord, 0, len(b))
	for _, f := range b {
		records = append(records, model.FileRecord{
			Path:      f.Rel,
			LineCount: counter(f.Abs),
			Extension: model.ExtensionOf(f.Rel),
		})
	}
	return records
}

func zeroBatch(b []model.FilePathPair) []model.FileRecord {
	records := make([]model.FileRecord, len(b))
	for i, f := range b {
		records[i] = model.FileRecord{Path: f.Rel, Extension: model.ExtensionOf(f.Rel)}
	}
	return records
}
