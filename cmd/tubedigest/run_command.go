package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"tubedigest/internal/batch"
	"tubedigest/internal/config"
	"tubedigest/internal/digest"
	"tubedigest/internal/docstore"
	"tubedigest/internal/ledger"
	"tubedigest/internal/logging"
	"tubedigest/internal/media"
	"tubedigest/internal/orchestrator"
	"tubedigest/internal/pipeline"
	"tubedigest/internal/runlog"
	"tubedigest/internal/services/llm"
	"tubedigest/internal/services/postmark"
	"tubedigest/internal/services/transcribe"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Process recent videos and send the digest email",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("configure logging: %w", err)
			}

			lock := flock.New(cfg.LockPath())
			held, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire run lock: %w", err)
			}
			if !held {
				logger.Info("another run is already in progress, exiting",
					logging.String("lock", cfg.LockPath()))
				return nil
			}
			defer func() { _ = lock.Unlock() }()

			runner, journal := buildRunner(cfg, logger)
			if journal != nil {
				defer journal.Close()
			}

			window := media.WindowAround(time.Now().UTC(), cfg.Window.DaysBack, cfg.Window.DaysForward)
			summary := runner.Run(cmd.Context(), uuid.NewString(), cfg.Sources.Channels, window, cfg.Sources.ItemsPerSource)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run %s: %d candidates, %d processed, %d skipped, %d failed\n",
				summary.RunID, summary.Candidates, summary.Processed, summary.Skipped, summary.Failed)
			if summary.DigestSent {
				fmt.Fprintln(out, "Digest email sent")
			} else {
				fmt.Fprintln(out, "No digest sent")
			}
			return nil
		},
	}
}

// buildRunner wires the orchestrator from configuration. The journal is
// optional; a failure to open it is logged and the run proceeds without.
func buildRunner(cfg *config.Config, logger *slog.Logger) (*orchestrator.Runner, *runlog.Store) {
	completed := ledger.Open(cfg.LedgerPath(), logger)
	documents := docstore.New(cfg.Paths.TranscriptDir)

	generator := llm.NewClient(llm.Config{
		APIKey:         cfg.OpenAI.APIKey,
		BaseURL:        cfg.OpenAI.BaseURL,
		Model:          cfg.OpenAI.Model,
		TimeoutSeconds: cfg.OpenAI.TimeoutSeconds,
	})
	transcriber := transcribe.NewClient(transcribe.Config{
		APIKey:         cfg.Transcriber.APIKey,
		BaseURL:        cfg.Transcriber.BaseURL,
		Model:          cfg.Transcriber.Model,
		TimeoutSeconds: cfg.Transcriber.TimeoutSeconds,
	})
	sender := postmark.NewSender(postmark.Config{
		ServerToken:    cfg.Postmark.ServerToken,
		FromEmail:      cfg.Postmark.FromEmail,
		ToEmail:        cfg.Postmark.ToEmail,
		RequestTimeout: cfg.Postmark.RequestTimeout,
	})

	source := media.NewYtDlp(cfg.Paths.AudioDir, logger)
	var lister media.Lister = source
	if cfg.Sources.Listing == config.ListingRSS {
		lister = media.NewFeedLister(logger)
	}

	processor := pipeline.NewProcessor(source, transcriber, generator, documents, completed, logger)
	scheduler := batch.NewScheduler(lister, processor, cfg.Workers.SourceWidth, cfg.Workers.ItemWidth, logger)
	assembler := digest.NewAssembler(generator, logger)

	journal, err := runlog.Open(cfg.RunLogPath())
	if err != nil {
		logger.Warn("run journal unavailable", logging.Error(err))
		journal = nil
	}

	var journalIface orchestrator.Journal
	if journal != nil {
		journalIface = journal
	}
	return orchestrator.New(scheduler, completed, assembler, sender, journalIface, logger), journal
}
