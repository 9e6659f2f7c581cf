package estimate

import (
	"github.com/runnerr0/cursorstats/internal/analysis"
	"github.com/runnerr0/cursorstats/internal/workspace"
)

// Params are the prompt-based estimation knobs. Every value is a fixed
// calibration constant; nothing here is fitted to data.
type Params struct {
	// BaseMinutes is the overhead charged to every prompt: context
	// switching, reading the situation, deciding what to ask.
	BaseMinutes float64
	// WritingWordsPerMin divides the word count into composition time.
	WritingWordsPerMin float64
	// ThinkingFactor scales the complexity-derived thinking time
	// (complexity * 0.05 * factor).
	ThinkingFactor float64
	// ReadingWordsPerMin is the assumed reading speed for the response.
	ReadingWordsPerMin float64
	// ResponseRatio assumes the assistant's response is this many times
	// the prompt's length.
	ResponseRatio float64
	// ProductiveDayHours converts total hours into "productive days".
	ProductiveDayHours float64
}

// DefaultParams returns the calibration defaults.
func DefaultParams() Params {
	return Params{
		BaseMinutes:        5,
		WritingWordsPerMin: 20,
		ThinkingFactor:     1.5,
		ReadingWordsPerMin: 180,
		ResponseRatio:      2,
		ProductiveDayHours: 4,
	}
}

// PromptBreakdown is the per-prompt minute budget.
type PromptBreakdown struct {
	Base       float64
	Writing    float64
	Thinking   float64
	Reading    float64
	Complexity float64
	WordCount  int
}

// Minutes is the prompt's total estimated minutes.
func (b PromptBreakdown) Minutes() float64 {
	return b.Base + b.Writing + b.Thinking + b.Reading
}

// PromptEstimate aggregates prompt-based time estimates.
type PromptEstimate struct {
	Prompts        []PromptBreakdown
	TotalMinutes   float64
	TotalHours     float64
	AvgMinutes     float64
	LongestMinutes float64
	ProductiveDays float64
}

// EstimatePrompts estimates time spent from a prompt collection. Empty
// input yields a zero estimate.
func EstimatePrompts(prompts []workspace.Prompt, p Params) PromptEstimate {
	est := PromptEstimate{}
	if len(prompts) == 0 {
		return est
	}

	est.Prompts = make([]PromptBreakdown, 0, len(prompts))
	for _, prompt := range prompts {
		words := analysis.CountWords(prompt.Text)
		complexity := analysis.ComplexityScore(prompt.Text)

		b := PromptBreakdown{
			Base:       p.BaseMinutes,
			Writing:    float64(words) / p.WritingWordsPerMin,
			Thinking:   complexity * 0.05 * p.ThinkingFactor,
			Reading:    float64(words) * p.ResponseRatio / p.ReadingWordsPerMin,
			Complexity: complexity,
			WordCount:  words,
		}
		est.Prompts = append(est.Prompts, b)

		minutes := b.Minutes()
		est.TotalMinutes += minutes
		if minutes > est.LongestMinutes {
			est.LongestMinutes = minutes
		}
	}

	est.TotalHours = est.TotalMinutes / 60
	est.AvgMinutes = est.TotalMinutes / float64(len(prompts))
	if p.ProductiveDayHours > 0 {
		est.ProductiveDays = est.TotalHours / p.ProductiveDayHours
	}

	return est
}
