package tracker

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/runnerr0/cursorstats/internal/analysis"
)

// projectsFile is the single JSON file holding all tracked projects. It
// is read and written wholesale on every mutation; the data is small and
// there is exactly one writer.
const projectsFile = "projects.json"

var ErrProjectExists = errors.New("project already exists")
var ErrProjectNotFound = errors.New("project not found")

// PromptEntry is one manually logged prompt.
type PromptEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Text      string    `json:"text"`
	WordCount int       `json:"word_count"`
}

// SessionEntry is one completed timer interval.
type SessionEntry struct {
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationSeconds float64   `json:"duration_seconds"`
}

// Project is one tracked project's full state.
type Project struct {
	CreatedAt      time.Time      `json:"created_at"`
	Prompts        []PromptEntry  `json:"prompts"`
	Sessions       []SessionEntry `json:"sessions"`
	TotalTime      float64        `json:"total_time"` // seconds
	TotalPrompts   int            `json:"total_prompts"`
	TotalWordCount int            `json:"total_word_count"`
}

// AvgWords is the mean word count per logged prompt.
func (p *Project) AvgWords() float64 {
	if p.TotalPrompts == 0 {
		return 0
	}
	return float64(p.TotalWordCount) / float64(p.TotalPrompts)
}

// Store persists tracked projects under a data directory.
type Store struct {
	path     string
	projects map[string]*Project
}

// Open loads the project store from dataDir, creating the directory if
// needed. A missing projects file is an empty store; a corrupt one is an
// error rather than silent data loss.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create tracker data directory: %w", err)
	}

	s := &Store{
		path:     filepath.Join(dataDir, projectsFile),
		projects: make(map[string]*Project),
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read projects file: %w", err)
	}

	if err := json.Unmarshal(data, &s.projects); err != nil {
		return nil, fmt.Errorf("parse projects file %s: %w", s.path, err)
	}
	return s, nil
}

// save writes the whole store back to disk.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.projects, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal projects: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write projects file: %w", err)
	}
	return nil
}

// ProjectNames returns all project names, sorted.
func (s *Store) ProjectNames() []string {
	names := make([]string, 0, len(s.projects))
	for name := range s.projects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Project returns a project's state.
func (s *Store) Project(name string) (*Project, error) {
	p, ok := s.projects[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, name)
	}
	return p, nil
}

// CreateProject registers a new empty project and persists immediately.
func (s *Store) CreateProject(name string) error {
	if name == "" {
		return fmt.Errorf("project name must not be empty")
	}
	if _, ok := s.projects[name]; ok {
		return fmt.Errorf("%w: %s", ErrProjectExists, name)
	}

	s.projects[name] = &Project{CreatedAt: time.Now()}
	return s.save()
}

// LogPrompt appends a prompt to a project, updating the running totals.
func (s *Store) LogPrompt(name, text string) (PromptEntry, error) {
	p, err := s.Project(name)
	if err != nil {
		return PromptEntry{}, err
	}
	if text == "" {
		return PromptEntry{}, fmt.Errorf("prompt text must not be empty")
	}

	entry := PromptEntry{
		Timestamp: time.Now(),
		Text:      text,
		WordCount: analysis.CountWords(text),
	}
	p.Prompts = append(p.Prompts, entry)
	p.TotalPrompts++
	p.TotalWordCount += entry.WordCount

	return entry, s.save()
}

// AddSession records a completed timer interval against a project.
func (s *Store) AddSession(name string, iv Interval) error {
	p, err := s.Project(name)
	if err != nil {
		return err
	}

	seconds := iv.Duration().Seconds()
	p.Sessions = append(p.Sessions, SessionEntry{
		StartTime:       iv.Start,
		EndTime:         iv.End,
		DurationSeconds: seconds,
	})
	p.TotalTime += seconds

	return s.save()
}
