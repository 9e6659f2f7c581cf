package estimate

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// SessionParams control how file activity is grouped into work sessions.
type SessionParams struct {
	// IdleGap starts a new session when consecutive file timestamps are
	// further apart than this.
	IdleGap time.Duration
	// Buffer extends each multi-file session on both ends, covering the
	// work before the first save and after the last.
	Buffer time.Duration
	// Cap bounds a single session's counted duration.
	Cap time.Duration
	// SourceExtensions is the allow-list of file extensions considered
	// work activity. When a tree contains none of them, all files count.
	SourceExtensions []string
}

// DefaultSessionParams returns the calibration defaults: 30 minute idle
// gap, 10 minute buffers, 8 hour cap.
func DefaultSessionParams() SessionParams {
	return SessionParams{
		IdleGap: 30 * time.Minute,
		Buffer:  10 * time.Minute,
		Cap:     8 * time.Hour,
	}
}

// Session is one contiguous run of file activity.
type Session struct {
	Start     time.Time
	End       time.Time
	Duration  time.Duration
	FileCount int
}

// SessionEstimate aggregates the session-based heuristic over one
// directory tree.
type SessionEstimate struct {
	Sessions   []Session
	FileCount  int
	TotalHours float64
}

// EstimateSessions walks root and estimates hours worked from file
// timestamps. A directory with no files yields a zero estimate, not an
// error; only the walk itself failing is an error.
func EstimateSessions(root string, p SessionParams) (SessionEstimate, error) {
	var sourceTimes, allTimes []time.Time

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Skip unreadable entries rather than abort the walk.
			return nil
		}
		if d.IsDir() {
			if d.Name() == ".git" || d.Name() == "node_modules" {
				return filepath.SkipDir
			}
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}

		ts := fileTimestamp(info)
		allTimes = append(allTimes, ts)
		if matchesExtension(path, p.SourceExtensions) {
			sourceTimes = append(sourceTimes, ts)
		}
		return nil
	})
	if err != nil {
		return SessionEstimate{}, fmt.Errorf("walking %s: %w", root, err)
	}

	times := sourceTimes
	if len(times) == 0 {
		times = allTimes
	}

	est := SessionEstimate{
		Sessions:  PartitionSessions(times, p),
		FileCount: len(times),
	}
	for _, s := range est.Sessions {
		est.TotalHours += s.Duration.Hours()
	}
	return est, nil
}

// PartitionSessions sorts timestamps and splits them into sessions at
// idle gaps. Sessions with at least two files get the buffer extension
// and the duration cap; single-file sessions are listed but count zero
// time.
func PartitionSessions(times []time.Time, p SessionParams) []Session {
	if len(times) == 0 {
		return nil
	}

	sorted := make([]time.Time, len(times))
	copy(sorted, times)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	var sessions []Session
	current := Session{Start: sorted[0], End: sorted[0], FileCount: 1}

	for _, ts := range sorted[1:] {
		if ts.Sub(current.End) > p.IdleGap {
			sessions = append(sessions, current)
			current = Session{Start: ts, End: ts, FileCount: 1}
			continue
		}
		current.End = ts
		current.FileCount++
	}
	sessions = append(sessions, current)

	for i := range sessions {
		s := &sessions[i]
		if s.FileCount < 2 {
			continue
		}
		s.Start = s.Start.Add(-p.Buffer)
		s.End = s.End.Add(p.Buffer)
		s.Duration = s.End.Sub(s.Start)
		if p.Cap > 0 && s.Duration > p.Cap {
			s.Duration = p.Cap
		}
	}

	return sessions
}

func matchesExtension(path string, extensions []string) bool {
	if len(extensions) == 0 {
		return false
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
