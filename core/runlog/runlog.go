// Package runlog handles the append-only outcome log for wp-post-copier.
// One line per outcome: the created post's permalink, or "Failed: {title}".
// The file is opened per write so an interrupted run keeps every line
// belonging to a fully completed stage.
package runlog

import (
	"fmt"
	"os"
)

// Log appends outcome lines to a file.
type Log struct {
	path string
}

// New creates a Log targeting the given path.
func New(path string) *Log {
	return &Log{path: path}
}

// Created records the permalink of a created draft.
func (l *Log) Created(link string) error {
	return l.append(link)
}

// Failed records a publish failure by post title.
func (l *Log) Failed(title string) error {
	return l.append("Failed: " + title)
}

func (l *Log) append(line string) error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening run log %s: %w", l.path, err)
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, line); err != nil {
		return fmt.Errorf("writing run log %s: %w", l.path, err)
	}
	return nil
}
