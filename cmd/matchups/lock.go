package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
)

// lockDataFile takes an exclusive flock on <data>.lock and writes our PID
// into it. The returned cleanup releases and removes the lock file.
func lockDataFile(dataPath string) (func(), error) {
	path := dataPath + ".lock"

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("cannot open lock file: %w", err)
	}

	if err = syscall.Flock(int(file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		file.Close()
		if errors.Is(err, syscall.EWOULDBLOCK) {
			return nil, fmt.Errorf("another session is using %s%s", dataPath, holderSuffix(path))
		}
		return nil, fmt.Errorf("lock failed: %w", err)
	}

	// A leftover file from a crashed session is ours now
	if err = file.Truncate(0); err != nil {
		release(file, path)
		return nil, fmt.Errorf("cannot truncate lock file: %w", err)
	}
	if _, err = fmt.Fprintf(file, "%d\n", os.Getpid()); err != nil {
		release(file, path)
		return nil, fmt.Errorf("cannot write PID: %w", err)
	}
	if err = file.Sync(); err != nil {
		release(file, path)
		return nil, fmt.Errorf("cannot sync lock file: %w", err)
	}

	return func() { release(file, path) }, nil
}

func release(file *os.File, path string) {
	os.Remove(path)
	syscall.Flock(int(file.Fd()), syscall.LOCK_UN)
	file.Close()
}

// holderSuffix names the PID recorded by the current holder, if readable
func holderSuffix(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return ""
	}
	return fmt.Sprintf(" (pid %d)", pid)
}
