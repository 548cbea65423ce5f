package orchestrator

import (
	"context"
	"log/slog"
	"time"

	"tubedigest/internal/batch"
	"tubedigest/internal/digest"
	"tubedigest/internal/ledger"
	"tubedigest/internal/logging"
	"tubedigest/internal/media"
	"tubedigest/internal/pipeline"
	"tubedigest/internal/runlog"
	"tubedigest/internal/services/postmark"
)

// BatchRunner collects and processes candidates across all sources.
type BatchRunner interface {
	Run(ctx context.Context, sources []string, window media.Window, perSource int) batch.Result
}

// Assembler builds the digest message from a batch's records.
type Assembler interface {
	Assemble(ctx context.Context, records []pipeline.Record) (digest.Message, bool)
}

// Journal records finished runs.
type Journal interface {
	Append(ctx context.Context, entry runlog.Entry) error
}

// Summary reports what a run did.
type Summary struct {
	RunID      string
	Candidates int
	Processed  int
	Skipped    int
	Failed     int
	DigestSent bool
}

// Runner drives one complete digest run: batch, ledger save, email,
// journal entry.
type Runner struct {
	scheduler BatchRunner
	ledger    *ledger.Ledger
	assembler Assembler
	sender    postmark.Sender
	journal   Journal
	logger    *slog.Logger
	now       func() time.Time
}

// New wires a runner from its collaborators. journal may be nil.
func New(scheduler BatchRunner, completed *ledger.Ledger, assembler Assembler, sender postmark.Sender, journal Journal, logger *slog.Logger) *Runner {
	return &Runner{
		scheduler: scheduler,
		ledger:    completed,
		assembler: assembler,
		sender:    sender,
		journal:   journal,
		logger:    logging.WithComponent(logger, "orchestrator"),
		now:       time.Now,
	}
}

// Run executes one digest cycle. In-run failures are logged and tallied;
// Run itself never fails so a partially successful batch still saves its
// progress and sends what it produced.
func (r *Runner) Run(ctx context.Context, runID string, sources []string, window media.Window, perSource int) Summary {
	started := r.now().UTC()
	logger := r.logger.With(logging.String(logging.FieldRunID, runID))
	logger.Info("digest run started", logging.Int("sources", len(sources)))

	result := r.scheduler.Run(ctx, sources, window, perSource)

	for _, record := range result.Records {
		r.ledger.Set(record.VideoID, ledger.Entry{
			SourceID:       record.SourceID,
			Title:          record.Title,
			ProcessedAt:    record.ProcessedAt,
			TranscriptPath: record.TranscriptPath,
			SummaryPath:    record.SummaryPath,
		})
	}
	if len(result.Records) > 0 {
		if err := r.ledger.Save(); err != nil {
			// Records stay in memory for this run; the digest still goes out.
			logger.Error("ledger save failed", logging.Error(err))
		}
	}

	digestSent := false
	if message, ok := r.assembler.Assemble(ctx, result.Records); ok {
		if err := r.sender.Send(ctx, message.Subject, message.TextBody, message.HTMLBody); err != nil {
			logger.Error("digest delivery failed", logging.Error(err))
		} else {
			logger.Info("digest sent", logging.Int("videos", len(result.Records)))
			digestSent = true
		}
	}

	summary := Summary{
		RunID:      runID,
		Candidates: result.Candidates,
		Processed:  result.Processed,
		Skipped:    result.Skipped,
		Failed:     result.Failed,
		DigestSent: digestSent,
	}
	if r.journal != nil {
		entry := runlog.Entry{
			ID:         runID,
			StartedAt:  started,
			FinishedAt: r.now().UTC(),
			Sources:    len(sources),
			Candidates: result.Candidates,
			Processed:  result.Processed,
			Skipped:    result.Skipped,
			Failed:     result.Failed,
			DigestSent: digestSent,
		}
		if err := r.journal.Append(ctx, entry); err != nil {
			logger.Warn("run journal append failed", logging.Error(err))
		}
	}

	logger.Info("digest run finished",
		logging.Duration("elapsed", r.now().UTC().Sub(started)),
		logging.Int("candidates", summary.Candidates),
		logging.Int("processed", summary.Processed),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed),
		logging.Bool("digest_sent", summary.DigestSent))
	return summary
}
