package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/mediumghost"
)

// Ensure LoggingParser implements mediumghost.Parser.
var _ mediumghost.Parser = (*LoggingParser)(nil)

// LoggingParser wraps a Parser with debug logging.
type LoggingParser struct {
	next   mediumghost.Parser
	logger *slog.Logger
}

// NewLoggingParser creates a new LoggingParser.
func NewLoggingParser(next mediumghost.Parser, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{next: next, logger: logger}
}

// Parse delegates to the wrapped parser and logs the size of the result.
func (p *LoggingParser) Parse(html string) (doc *mediumghost.Mobiledoc, err error) {
	defer func(begin time.Time) {
		var sections, cards int
		if doc != nil {
			sections, cards = len(doc.Sections), len(doc.Cards)
		}
		p.logger.Debug("parse",
			"bytes", len(html),
			"sections", sections,
			"cards", cards,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Parse(html)
}
