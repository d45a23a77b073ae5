// Package batch fans one translation request out per input row and joins
// on all completions before handing the assembled output back. Output
// order always matches input order, whatever order the network answers in.
package batch

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/oukeidos/kvlate/internal/gtx"
	"github.com/oukeidos/kvlate/internal/rowfile"
)

// State is the terminal state of one row, reported through Progress.
type State int

const (
	StateCompleted State = iota
	StateFailed
	StateCanceled
)

// Progress is delivered once per finished row, and once more with
// RowIndex -1 if the run was canceled mid-flight.
type Progress struct {
	RowIndex   int
	Key        string
	Completed  int
	Reserved   int
	TotalLines int
	State      State
	Err        error
}

// RowError records a row whose request failed. Its output slot holds the
// key with an empty quoted value.
type RowError struct {
	Index int
	Key   string
	Err   error
}

// Outcome is the joined result of a run.
type Outcome struct {
	// Lines is the output sequence, one entry per dispatched row, in
	// input order.
	Lines []string
	// Failed lists rows whose requests errored, sorted by index.
	Failed []RowError
	// DroppedTokens maps row index to placeholder keys the remote lost.
	DroppedTokens map[int][]string
}

// Orchestrator runs the fan-out/fan-in over a Translator.
type Orchestrator struct {
	client      gtx.Translator
	source      string
	target      string
	concurrency int
}

// New creates an Orchestrator. concurrency bounds in-flight requests.
func New(client gtx.Translator, sourceName, targetName string, concurrency int) (*Orchestrator, error) {
	if client == nil {
		return nil, fmt.Errorf("client must not be nil")
	}
	if concurrency <= 0 {
		return nil, fmt.Errorf("concurrency must be greater than 0, got %d", concurrency)
	}
	return &Orchestrator{
		client:      client,
		source:      sourceName,
		target:      targetName,
		concurrency: concurrency,
	}, nil
}

// Run dispatches every row and blocks until all have completed. Every
// dispatched row reaches exactly one terminal state; failed rows count
// toward completion so the run always finalizes, with the gap marked in
// Outcome.Failed. totalLines is the input file's full line count and is
// only echoed into Progress for percentage reporting.
func (o *Orchestrator) Run(ctx context.Context, rows []rowfile.Row, totalLines int, onProgress func(Progress)) Outcome {
	// Reserve one output slot per row up front; a slot that never gets a
	// translation keeps its empty quoted value.
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = rowfile.FormatLine(row.Key, "")
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	completed := 0
	var failed []RowError
	dropped := make(map[int][]string)

	jobs := make(chan int, len(rows))
	for i := range rows {
		jobs <- i
	}
	close(jobs)

	workers := o.concurrency
	if workers > len(rows) {
		workers = len(rows)
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				row := rows[i]

				var res gtx.Result
				err := ctx.Err()
				if err == nil {
					res, err = o.client.Translate(ctx, row.Value, o.source, o.target)
				}

				mu.Lock()
				completed++
				state := StateCompleted
				if err != nil {
					state = StateFailed
					failed = append(failed, RowError{Index: i, Key: row.Key, Err: err})
				} else {
					lines[i] = rowfile.FormatLine(row.Key, res.Text)
					if len(res.DroppedTokens) > 0 {
						dropped[i] = res.DroppedTokens
					}
				}
				p := Progress{
					RowIndex:   i,
					Key:        row.Key,
					Completed:  completed,
					Reserved:   len(rows),
					TotalLines: totalLines,
					State:      state,
					Err:        err,
				}
				mu.Unlock()

				if onProgress != nil {
					onProgress(p)
				}
			}
		}()
	}

	wg.Wait()

	if ctx.Err() != nil && onProgress != nil {
		onProgress(Progress{
			RowIndex:   -1,
			Completed:  completed,
			Reserved:   len(rows),
			TotalLines: totalLines,
			State:      StateCanceled,
			Err:        ctx.Err(),
		})
	}

	sort.Slice(failed, func(a, b int) bool { return failed[a].Index < failed[b].Index })

	return Outcome{
		Lines:         lines,
		Failed:        failed,
		DroppedTokens: dropped,
	}
}
