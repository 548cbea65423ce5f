package digest

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"tubedigest/internal/logging"
	"tubedigest/internal/pipeline"
)

//go:embed email.html
var emailTemplate string

const (
	contentPlaceholder = "<!-- VIDEO_CONTENT_PLACEHOLDER -->"
	headingPlaceholder = "<h1>YouTube Update</h1>"
)

const markdownSystemPrompt = "You are a markdown to HTML converter. Return only the raw HTML without any markdown code block formatting or HTML tags around the entire response."

// Message is a fully assembled digest ready for delivery.
type Message struct {
	Subject  string
	TextBody string
	HTMLBody string
}

// Assembler composes one email covering every record in a batch.
type Assembler struct {
	generator pipeline.Generator
	logger    *slog.Logger
	now       func() time.Time
}

// NewAssembler builds an assembler that uses generator to render markdown
// summaries as HTML.
func NewAssembler(generator pipeline.Generator, logger *slog.Logger) *Assembler {
	return &Assembler{
		generator: generator,
		logger:    logging.WithComponent(logger, "digest"),
		now:       time.Now,
	}
}

// Assemble builds the digest message. It returns false when there is
// nothing to send.
func (a *Assembler) Assemble(ctx context.Context, records []pipeline.Record) (Message, bool) {
	if len(records) == 0 {
		a.logger.Info("no videos processed, skipping digest")
		return Message{}, false
	}

	dateStr := a.now().Format("January 2, 2006")
	subject := "YouTube Update - " + dateStr

	var text strings.Builder
	fmt.Fprintf(&text, "YouTube Update - %s\n\n", dateStr)
	for _, record := range records {
		fmt.Fprintf(&text, "Channel: %s\n", record.SourceID)
		text.WriteString(record.Summary)
		text.WriteString("\n\n---\n\n")
	}

	return Message{
		Subject:  subject,
		TextBody: text.String(),
		HTMLBody: a.buildHTML(ctx, records, dateStr),
	}, true
}

func (a *Assembler) buildHTML(ctx context.Context, records []pipeline.Record, dateStr string) string {
	var cards strings.Builder
	for _, record := range records {
		fmt.Fprintf(&cards, `
            <div class="video-card">
                <p class="channel-name">Channel: %s</p>
                <a href="%s">
                    <img class="thumbnail" src="%s" alt="%s">
                </a>
                %s
            </div>
        `, displayName(record.SourceID), record.VideoURL, record.ThumbnailURL, record.Title, a.summaryHTML(ctx, record))
	}

	html := strings.Replace(emailTemplate, contentPlaceholder, cards.String(), 1)
	html = strings.Replace(html, headingPlaceholder, fmt.Sprintf("<h1>YouTube Update - %s</h1>", dateStr), 1)
	return html
}

// summaryHTML converts the markdown summary to HTML via the model, falling
// back to a mechanical escape when the conversion fails.
func (a *Assembler) summaryHTML(ctx context.Context, record pipeline.Record) string {
	prompt := "Convert this markdown to HTML, returning only the raw HTML without any code block formatting:\n\n" + record.Summary
	html, err := a.generator.Generate(ctx, markdownSystemPrompt, prompt)
	if err != nil {
		a.logger.Warn("markdown conversion failed, using plain fallback",
			logging.String(logging.FieldVideoID, record.VideoID),
			logging.Error(err))
		return fallbackHTML(record.Summary)
	}
	return html
}

func fallbackHTML(summary string) string {
	escaped := strings.ReplaceAll(summary, "<", "&lt;")
	escaped = strings.ReplaceAll(escaped, ">", "&gt;")
	escaped = strings.ReplaceAll(escaped, "\n", "<br>")
	return "<p>" + escaped + "</p>"
}

// displayName renders a channel identifier as a readable label. Handles
// like @some-channel become "Some Channel"; anything else passes through.
func displayName(sourceID string) string {
	handle, ok := strings.CutPrefix(sourceID, "@")
	if !ok {
		return sourceID
	}
	cleaned := strings.NewReplacer("-", " ", "_", " ", ".", " ").Replace(handle)
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	if cleaned == "" {
		return sourceID
	}
	return cases.Title(language.Und).String(cleaned)
}
