package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ironsheep/card-fusion/internal/discovery"
	"github.com/ironsheep/card-fusion/internal/fusion"
)

// cardOutcome is the result of one batch card, kept by index.
type cardOutcome struct {
	group  discovery.CardGroup
	result *CardResult
	err    error
	ran    bool
}

// RunBatch fuses every complete card in the flat directory batchDir.
//
// For each card <name> the composite is written to <resultsDir>/<name>.png
// and "Processed <name>.png" is printed. Incomplete cards print
// "Skipping <name>: missing views [...]" and failing cards print
// "Error processing <name>: <err>"; neither stops the batch. defectName is
// recorded in the report only.
//
// The returned error is non-nil only if batchDir cannot be listed, the
// results directory cannot be created or ctx is cancelled. In the last case
// cards already started are finished and no new card is begun.
func (p *Processor) RunBatch(ctx context.Context, batchDir, resultsDir, defectName string) (*RunReport, error) {
	report := p.newReport(batchDir, resultsDir, defectName)

	if err := p.Options.Mode.Validate(); err != nil {
		return report, err
	}

	groups, skipped, err := discovery.GroupFlatHeicFiles(batchDir, fusion.Directions())
	if err != nil {
		return report, err
	}
	for _, s := range skipped {
		p.Log.Warn().Str("card", s.Name).Str("missing", fmt.Sprint(s.Missing)).Msg("skipping incomplete card")
		p.printf("Skipping %s", s)
		report.addSkipped(s)
	}

	if err := os.MkdirAll(resultsDir, 0o755); err != nil {
		return report, fmt.Errorf("failed to create results directory: %w", err)
	}

	outcomes := make([]cardOutcome, len(groups))
	workers := p.Workers
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, workers)

schedule:
	for i, group := range groups {
		outcomes[i].group = group

		select {
		case <-ctx.Done():
			break schedule
		case semaphore <- struct{}{}:
		}
		// A slot and a cancellation may be ready together.
		if ctx.Err() != nil {
			<-semaphore
			break schedule
		}

		wg.Add(1)
		go func(i int, group discovery.CardGroup) {
			defer wg.Done()
			defer func() { <-semaphore }()

			outPath := filepath.Join(resultsDir, group.Name+".png")
			result, err := p.ProcessCard(group, outPath)
			outcomes[i].result, outcomes[i].err, outcomes[i].ran = result, err, true

			if err != nil {
				p.Log.Error().Err(err).Str("card", group.Name).Msg("card failed")
				p.printf("Error processing %s: %v", group.Name, unwrapCard(err))
				return
			}
			p.printf("Processed %s", filepath.Base(outPath))
		}(i, group)
	}
	wg.Wait()

	for _, o := range outcomes {
		switch {
		case !o.ran:
			continue
		case o.err != nil:
			report.addFailure(o.group, o.err)
		default:
			report.addResult(o.result)
		}
	}

	p.Log.Info().
		Int("processed", report.Processed).
		Int("failed", report.Failed).
		Int("skipped", len(report.Skipped)).
		Msg("batch finished")

	if err := ctx.Err(); err != nil {
		return report, fmt.Errorf("batch interrupted: %w", err)
	}
	return report, nil
}

// unwrapCard drops the card name from a *CardError, which the console line
// already carries.
func unwrapCard(err error) error {
	if ce, ok := err.(*CardError); ok {
		return ce.Err
	}
	return err
}
