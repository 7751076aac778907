// CLAUDE:SUMMARY Batch processing — independent documents run in parallel, per-file errors become warnings.
package measure

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// BatchFile is one uploaded file: raw bytes plus the client filename the
// cavity ID derives from.
type BatchFile struct {
	Filename string
	Data     []byte
}

// BatchResult is the aggregate outcome of one multi-file request. Success
// is false only when zero files produced a result; individual failures are
// reported as warnings alongside the successful documents. Files carries
// the per-file accounting, in upload order, for callers that persist or
// record outcomes; the Data map alone cannot resolve a file once two
// filenames derive the same cavity ID.
type BatchResult struct {
	Success        bool                       `json:"success"`
	FilesProcessed int                        `json:"files_processed"`
	Warnings       []string                   `json:"warnings,omitempty"`
	Data           map[string]*DocumentResult `json:"data"`
	Files          []FileOutcome              `json:"-"`
}

// FileOutcome reports one uploaded file's processing result. Exactly one of
// Doc and Err is set. Duration covers that file's pipeline run only.
type FileOutcome struct {
	Filename string
	Doc      *DocumentResult
	Err      error
	Duration time.Duration
}

// DefaultBatchWorkers bounds how many documents decode concurrently.
const DefaultBatchWorkers = 4

// ProcessBatch extracts every file of a batch. Documents are independent —
// no shared mutable state — so they run in parallel worker tasks; results
// and warnings are collected under a lock. A document-level failure never
// aborts the rest of the batch.
func (e *Extractor) ProcessBatch(ctx context.Context, files []BatchFile, workers int) BatchResult {
	if workers <= 0 {
		workers = DefaultBatchWorkers
	}

	// Workers write to their own slot; the envelope is assembled in upload
	// order afterwards so batch output is deterministic.
	docs := make([]*DocumentResult, len(files))
	errs := make([]error, len(files))
	durs := make([]time.Duration, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, f := range files {
		g.Go(func() error {
			started := time.Now()
			docs[i], errs[i] = e.ProcessDocument(gctx, f.Data, f.Filename)
			durs[i] = time.Since(started)
			return nil
		})
	}
	// Workers never return errors; Wait only synchronizes completion.
	_ = g.Wait()

	res := BatchResult{
		Data:  make(map[string]*DocumentResult, len(files)),
		Files: make([]FileOutcome, 0, len(files)),
	}
	for i, f := range files {
		res.Files = append(res.Files, FileOutcome{
			Filename: f.Filename,
			Doc:      docs[i],
			Err:      errs[i],
			Duration: durs[i],
		})
		if errs[i] != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s: %v", f.Filename, errs[i]))
			continue
		}
		res.FilesProcessed++
		res.Data[docs[i].CavityID] = docs[i]
	}
	res.Success = res.FilesProcessed > 0
	return res
}
