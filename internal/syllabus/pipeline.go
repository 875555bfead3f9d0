// Package syllabus sequences document text extraction and AI analysis, and
// derives tasks from the dated events an analysis finds.
package syllabus

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/DalPra0/MetodoCanvas/internal/gemini"
	"github.com/DalPra0/MetodoCanvas/internal/model"
)

const (
	// eventDateLayout is the date format the analysis prompt requests for
	// dated events.
	eventDateLayout = "2006-01-02"

	derivedDescription = "Generated from syllabus analysis"

	// effortPerWeightPoint scales an event's grade weight into estimated
	// effort: one minute of study per weight point.
	effortPerWeightPoint = time.Minute
)

// ErrEmptyDocument indicates an empty input blob, rejected before any work.
var ErrEmptyDocument = errors.New("document is empty")

// TextExtractor produces plain text from a document blob.
type TextExtractor interface {
	ExtractText(data []byte) (string, error)
}

// Analyzer turns syllabus text into a structured analysis.
type Analyzer interface {
	AnalyzeSyllabus(ctx context.Context, syllabusText string) (gemini.SyllabusAnalysis, error)
}

// Pipeline runs extraction and analysis in sequence: analysis needs the
// extracted text, so the stages never overlap, and an extraction failure
// short-circuits the analysis stage.
type Pipeline struct {
	extractor TextExtractor
	analyzer  Analyzer
	logger    *zap.Logger

	mu     sync.Mutex
	status string
}

// NewPipeline creates a document analysis pipeline.
func NewPipeline(extractor TextExtractor, analyzer Analyzer, logger *zap.Logger) (*Pipeline, error) {
	if extractor == nil {
		return nil, errors.New("text extractor is required")
	}
	if analyzer == nil {
		return nil, errors.New("analyzer is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{extractor: extractor, analyzer: analyzer, logger: logger}, nil
}

// Status returns the human-readable state of the last operation.
func (p *Pipeline) Status() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

func (p *Pipeline) setStatus(format string, args ...any) {
	p.mu.Lock()
	p.status = fmt.Sprintf(format, args...)
	p.mu.Unlock()
}

// AnalyzeDocument extracts text from the blob and analyzes it.
func (p *Pipeline) AnalyzeDocument(ctx context.Context, blob []byte) (gemini.SyllabusAnalysis, error) {
	if len(blob) == 0 {
		p.setStatus("Document is empty")
		return gemini.SyllabusAnalysis{}, ErrEmptyDocument
	}

	p.setStatus("Extracting document text...")
	text, err := p.extractor.ExtractText(blob)
	if err != nil {
		p.setStatus("Text extraction failed: %v", err)
		return gemini.SyllabusAnalysis{}, fmt.Errorf("extract text: %w", err)
	}

	p.setStatus("Analyzing content...")
	analysis, err := p.analyzer.AnalyzeSyllabus(ctx, text)
	if err != nil {
		p.setStatus("Analysis failed: %v", err)
		return gemini.SyllabusAnalysis{}, fmt.Errorf("analyze syllabus: %w", err)
	}

	p.logger.Info("document analyzed",
		zap.Int("topics", len(analysis.Topics)),
		zap.Int("dated_events", len(analysis.ImportantDates)))
	p.setStatus("Document analysis complete")
	return analysis, nil
}

// DeriveTasks creates one task per dated event in the analysis. Events whose
// date does not parse are dropped silently. Priority follows the event's
// grade weight and estimated effort is one minute per weight point.
func (p *Pipeline) DeriveTasks(analysis gemini.SyllabusAnalysis, courseName string) []model.Task {
	tasks := make([]model.Task, 0, len(analysis.ImportantDates))

	for _, event := range analysis.ImportantDates {
		due, err := time.Parse(eventDateLayout, event.Date)
		if err != nil {
			p.logger.Debug("dropping event with unparsable date",
				zap.String("event", event.Event),
				zap.String("date", event.Date))
			continue
		}

		tasks = append(tasks, model.NewTask(
			event.Event,
			derivedDescription,
			due,
			courseName,
			priorityForWeight(event.Weight),
			time.Duration(event.Weight)*effortPerWeightPoint,
		))
	}
	return tasks
}

// priorityForWeight maps an event's grade weight to a task priority.
func priorityForWeight(weight int) model.Priority {
	switch {
	case weight >= 40:
		return model.PriorityUrgent
	case weight >= 20:
		return model.PriorityHigh
	case weight >= 10:
		return model.PriorityMedium
	default:
		return model.PriorityLow
	}
}
