package batch

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"tubedigest/internal/logging"
	"tubedigest/internal/media"
	"tubedigest/internal/pipeline"
)

// ItemProcessor runs one candidate through the per-item pipeline.
type ItemProcessor interface {
	Process(ctx context.Context, candidate media.Candidate) pipeline.Outcome
}

// Result aggregates what a batch run produced.
type Result struct {
	Records       []pipeline.Record
	Outcomes      []pipeline.Outcome
	Candidates    int
	Processed     int
	Skipped       int
	Failed        int
	FailedSources int
}

// Scheduler fans out over sources to collect candidates, then over
// candidates to process them, with a bounded worker width at each stage.
type Scheduler struct {
	lister      media.Lister
	processor   ItemProcessor
	sourceWidth int
	itemWidth   int
	logger      *slog.Logger
}

// NewScheduler builds a scheduler with the given stage widths. Widths below
// one are treated as one.
func NewScheduler(lister media.Lister, processor ItemProcessor, sourceWidth, itemWidth int, logger *slog.Logger) *Scheduler {
	if sourceWidth < 1 {
		sourceWidth = 1
	}
	if itemWidth < 1 {
		itemWidth = 1
	}
	return &Scheduler{
		lister:      lister,
		processor:   processor,
		sourceWidth: sourceWidth,
		itemWidth:   itemWidth,
		logger:      logging.WithComponent(logger, "batch"),
	}
}

// Run lists every source, deduplicates the combined candidates, and
// processes them. A failing source contributes zero candidates; a failing
// candidate is recorded in the result. Run itself never fails.
func (s *Scheduler) Run(ctx context.Context, sources []string, window media.Window, perSource int) Result {
	candidates, listed := s.listAll(ctx, sources, window, perSource)
	unique := dedupe(candidates, s.logger)

	result := s.processAll(ctx, unique)
	result.Candidates = len(unique)
	result.FailedSources = len(sources) - listed

	s.logger.Info("batch complete",
		logging.Int("sources", len(sources)),
		logging.Int("candidates", result.Candidates),
		logging.Int("processed", result.Processed),
		logging.Int("skipped", result.Skipped),
		logging.Int("failed", result.Failed))
	return result
}

// listAll fans out over the sources and returns the combined candidates
// plus the number of sources that listed successfully.
func (s *Scheduler) listAll(ctx context.Context, sources []string, window media.Window, perSource int) ([]media.Candidate, int) {
	var (
		mu         sync.Mutex
		candidates []media.Candidate
		listed     int
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.sourceWidth)
	for _, sourceID := range sources {
		group.Go(func() error {
			found, err := s.lister.ListRecent(groupCtx, sourceID, window, perSource)
			if err != nil {
				s.logger.Error("source listing failed",
					logging.String(logging.FieldSource, sourceID),
					logging.Error(err))
				return nil
			}
			mu.Lock()
			candidates = append(candidates, found...)
			listed++
			mu.Unlock()
			return nil
		})
	}
	_ = group.Wait()
	return candidates, listed
}

func (s *Scheduler) processAll(ctx context.Context, candidates []media.Candidate) Result {
	var (
		mu     sync.Mutex
		result Result
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.itemWidth)
	for _, candidate := range candidates {
		group.Go(func() error {
			outcome := s.processor.Process(groupCtx, candidate)
			mu.Lock()
			defer mu.Unlock()
			result.Outcomes = append(result.Outcomes, outcome)
			switch outcome.Status {
			case pipeline.StatusSuccess:
				result.Processed++
				if outcome.Record != nil {
					result.Records = append(result.Records, *outcome.Record)
				}
			case pipeline.StatusSkipped:
				result.Skipped++
			case pipeline.StatusFailed:
				result.Failed++
			}
			return nil
		})
	}
	_ = group.Wait()
	return result
}

// dedupe drops repeated video IDs, keeping the first listing of each.
func dedupe(candidates []media.Candidate, logger *slog.Logger) []media.Candidate {
	seen := make(map[string]struct{}, len(candidates))
	unique := candidates[:0:0]
	for _, candidate := range candidates {
		if _, dup := seen[candidate.ID]; dup {
			logger.Debug("dropping duplicate candidate",
				logging.String(logging.FieldVideoID, candidate.ID),
				logging.String(logging.FieldSource, candidate.SourceID))
			continue
		}
		seen[candidate.ID] = struct{}{}
		unique = append(unique, candidate)
	}
	return unique
}
