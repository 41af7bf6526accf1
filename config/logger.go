package config

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

const (
	maxLogSize  = 10 * 1024 * 1024 // 10MB
	maxLogFiles = 3                // Keep 3 backup files
)

// rotatingFile is an io.Writer over a log file that rotates itself once
// it grows past maxLogSize, keeping maxLogFiles numbered backups.
type rotatingFile struct {
	mu   sync.Mutex
	path string
	file *os.File
	size int64
}

var (
	activeLog   *rotatingFile
	activeLogMu sync.Mutex
)

// InitLogger tees the standard logger to stderr and to path.
// This should be called once during command startup.
func InitLogger(path string) error {
	activeLogMu.Lock()
	defer activeLogMu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	rf := &rotatingFile{path: path}
	if info, err := os.Stat(path); err == nil {
		rf.size = info.Size()
		if rf.size >= maxLogSize {
			if err := rotateLogs(path); err != nil {
				return fmt.Errorf("failed to rotate logs: %w", err)
			}
			rf.size = 0
		}
	}
	if err := rf.open(); err != nil {
		return err
	}

	activeLog = rf
	log.SetOutput(io.MultiWriter(os.Stderr, rf))
	log.SetFlags(log.LstdFlags)
	return nil
}

// CloseLogger restores stderr logging and closes the file handle.
func CloseLogger() {
	activeLogMu.Lock()
	defer activeLogMu.Unlock()

	log.SetOutput(os.Stderr)
	if activeLog != nil {
		activeLog.close()
		activeLog = nil
	}
}

func (r *rotatingFile) open() error {
	file, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	r.file = file
	return nil
}

func (r *rotatingFile) close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file != nil {
		r.file.Close()
		r.file = nil
	}
}

func (r *rotatingFile) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return len(p), nil
	}

	n, err := r.file.Write(p)
	r.size += int64(n)
	if err != nil {
		return n, err
	}

	if r.size >= maxLogSize {
		r.file.Close()
		r.file = nil
		if err := rotateLogs(r.path); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to rotate logs: %v\n", err)
		}
		if err := r.open(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to reopen log after rotation: %v\n", err)
		}
		r.size = 0
	}
	return n, nil
}

// rotateLogs shifts path.N to path.N+1, dropping the oldest backup,
// and moves the live file to path.1.
func rotateLogs(basePath string) error {
	oldestBackup := fmt.Sprintf("%s.%d", basePath, maxLogFiles)
	os.Remove(oldestBackup) // Ignore error if file doesn't exist

	for i := maxLogFiles - 1; i >= 1; i-- {
		oldPath := fmt.Sprintf("%s.%d", basePath, i)
		newPath := fmt.Sprintf("%s.%d", basePath, i+1)
		os.Rename(oldPath, newPath) // Ignore error if source doesn't exist
	}

	if err := os.Rename(basePath, basePath+".1"); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
