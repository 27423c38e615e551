package mutate

import (
	"context"

	"github.com/google/uuid"

	"github.com/navfs/navigator/internal/fserr"
	"github.com/navfs/navigator/internal/types"
)

// BatchPair is one source/destination copy request within a batch.
type BatchPair struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

// BatchCopy copies each pair independently and reports one outcome per
// pair, in input order. A failed pair never aborts the batch unless
// failFast is set, in which case remaining pairs are reported as skipped.
func BatchCopy(ctx context.Context, pairs []BatchPair, opts CopyOptions, failFast bool) *types.BatchReport {
	report := &types.BatchReport{
		ID:    uuid.New().String(),
		Total: len(pairs),
		Items: make([]types.BatchOutcome, 0, len(pairs)),
	}

	aborted := false
	for _, pair := range pairs {
		outcome := types.BatchOutcome{
			Source:      pair.Source,
			Destination: pair.Destination,
		}

		switch {
		case aborted:
			outcome.Skipped = true
		case ctx.Err() != nil:
			aborted = true
			outcome.Skipped = true
		default:
			if err := Copy(ctx, pair.Source, pair.Destination, opts); err != nil {
				msg := err.Error()
				outcome.Error = &msg
				outcome.Kind = string(fserr.KindOf(err))
				report.Failed++
				if failFast {
					aborted = true
				}
			} else {
				outcome.OK = true
				report.Succeeded++
			}
		}
		report.Items = append(report.Items, outcome)
	}
	return report
}
