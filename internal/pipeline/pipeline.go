package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"tubedigest/internal/docstore"
	"tubedigest/internal/logging"
	"tubedigest/internal/media"
)

// Stage identifies the pipeline step an item was in when it failed.
type Stage string

const (
	StageFetch      Stage = "fetch"
	StageTranscribe Stage = "transcribe"
	StageDerive     Stage = "derive"
	StageSummarize  Stage = "summarize"
)

// Status classifies how an item left the pipeline.
type Status string

const (
	StatusSuccess Status = "success"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Record is the fully processed result for one video.
type Record struct {
	VideoID        string
	SourceID       string
	Title          string
	ThumbnailURL   string
	VideoURL       string
	ProcessedAt    time.Time
	TranscriptPath string
	DerivedPath    string
	SummaryPath    string
	Summary        string
}

// Outcome reports how one candidate fared. Record is set only on success;
// Stage and Err are set only on failure.
type Outcome struct {
	VideoID  string
	SourceID string
	Status   Status
	Stage    Stage
	Err      error
	Record   *Record
}

// Transcriber converts downloaded audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Generator produces text from a system instruction and a user prompt.
type Generator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// DoneSet answers whether a video has already been processed.
type DoneSet interface {
	Contains(videoID string) bool
}

// Processor runs one candidate through the full per-item pipeline.
type Processor struct {
	fetcher     media.Fetcher
	transcriber Transcriber
	generator   Generator
	documents   *docstore.Store
	done        DoneSet
	logger      *slog.Logger
	now         func() time.Time
}

// NewProcessor wires the per-item pipeline from its collaborators.
func NewProcessor(fetcher media.Fetcher, transcriber Transcriber, generator Generator, documents *docstore.Store, done DoneSet, logger *slog.Logger) *Processor {
	return &Processor{
		fetcher:     fetcher,
		transcriber: transcriber,
		generator:   generator,
		documents:   documents,
		done:        done,
		logger:      logging.WithComponent(logger, "pipeline"),
		now:         time.Now,
	}
}

// Process runs fetch, transcribe, derive, and summarize for one candidate.
// Failures are absorbed into the returned Outcome so one bad video never
// stops the batch.
func (p *Processor) Process(ctx context.Context, candidate media.Candidate) Outcome {
	logger := p.logger.With(
		logging.String(logging.FieldSource, candidate.SourceID),
		logging.String(logging.FieldVideoID, candidate.ID))

	if p.done != nil && p.done.Contains(candidate.ID) {
		logger.Info("already processed, skipping")
		return Outcome{VideoID: candidate.ID, SourceID: candidate.SourceID, Status: StatusSkipped}
	}

	logger.Info("processing video", logging.String("title", candidate.Title))

	audioPath, err := p.fetcher.FetchAudio(ctx, candidate.ID)
	if err != nil {
		return p.fail(logger, candidate, StageFetch, err)
	}
	defer func() {
		if removeErr := os.Remove(audioPath); removeErr != nil && !os.IsNotExist(removeErr) {
			logger.Warn("failed to clean up audio file",
				logging.String("path", audioPath),
				logging.Error(removeErr))
		}
	}()

	transcript, err := p.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return p.fail(logger, candidate, StageTranscribe, err)
	}
	transcriptPath, err := p.documents.Write(candidate.SourceID, candidate.ID, docstore.KindTranscript, transcript)
	if err != nil {
		return p.fail(logger, candidate, StageTranscribe, err)
	}

	bullets, err := p.generator.Generate(ctx, bulletPointsPrompt, fmt.Sprintf("Transcript to analyze:\n\n%s", transcript))
	if err != nil {
		return p.fail(logger, candidate, StageDerive, err)
	}
	derivedPath, err := p.documents.Write(candidate.SourceID, candidate.ID, docstore.KindDerived, bullets)
	if err != nil {
		return p.fail(logger, candidate, StageDerive, err)
	}

	summary, err := p.generator.Generate(ctx, summaryPrompt, bullets)
	if err != nil {
		return p.fail(logger, candidate, StageSummarize, err)
	}
	summaryPath, err := p.documents.Write(candidate.SourceID, candidate.ID, docstore.KindSummary, summary)
	if err != nil {
		return p.fail(logger, candidate, StageSummarize, err)
	}

	logger.Info("video processed")
	return Outcome{
		VideoID:  candidate.ID,
		SourceID: candidate.SourceID,
		Status:   StatusSuccess,
		Record: &Record{
			VideoID:        candidate.ID,
			SourceID:       candidate.SourceID,
			Title:          candidate.Title,
			ThumbnailURL:   candidate.ThumbnailURL(),
			VideoURL:       candidate.WatchURL(),
			ProcessedAt:    p.now().UTC(),
			TranscriptPath: transcriptPath,
			DerivedPath:    derivedPath,
			SummaryPath:    summaryPath,
			Summary:        summary,
		},
	}
}

func (p *Processor) fail(logger *slog.Logger, candidate media.Candidate, stage Stage, err error) Outcome {
	logger.Error("pipeline stage failed",
		logging.String(logging.FieldStage, string(stage)),
		logging.Error(err))
	return Outcome{
		VideoID:  candidate.ID,
		SourceID: candidate.SourceID,
		Status:   StatusFailed,
		Stage:    stage,
		Err:      err,
	}
}
