// Package recording locates and rotates screen-recording artifacts.
//
// The agent process drops recordings named <prefix>_*.mp4 into a single
// directory while it plays. At most one of those is "live" from the
// checkpoint subsystem's point of view: the newest by modification time.
// A Rotator either claims that file for a checkpoint (copy) or discards it
// when a failed attempt is retried (delete).
package recording

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Rotator selects the most recent recording artifact in Dir.
//
// The directory listing is injectable so selection and tie-break logic can be
// tested without real filesystem metadata. When List is nil, os.ReadDir is
// used. Subdirectories are never descended into.
type Rotator struct {
	Dir    string
	Prefix string

	List func(dir string) ([]fs.DirEntry, error)
}

// NewRotator returns a Rotator over dir for recordings named <prefix>_*.mp4.
func NewRotator(dir, prefix string) *Rotator {
	return &Rotator{Dir: dir, Prefix: prefix}
}

// matches reports whether name follows the live-recording naming convention.
func (r *Rotator) matches(name string) bool {
	return strings.HasPrefix(name, r.Prefix+"_") && strings.HasSuffix(name, ".mp4")
}

// Latest returns the path of the most recently modified recording, or ""
// when no recording exists. Ties on modification time are broken by taking
// the lexicographically greatest filename, so the result is deterministic
// for identical filesystem metadata.
func (r *Rotator) Latest() (string, error) {
	list := r.List
	if list == nil {
		list = os.ReadDir
	}

	entries, err := list(r.Dir)
	if err != nil {
		return "", fmt.Errorf("list recording dir: %w", err)
	}

	var (
		bestName string
		bestInfo fs.FileInfo
	)
	for _, entry := range entries {
		if entry.IsDir() || !r.matches(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return "", fmt.Errorf("stat recording %s: %w", entry.Name(), err)
		}
		if bestInfo == nil ||
			info.ModTime().After(bestInfo.ModTime()) ||
			(info.ModTime().Equal(bestInfo.ModTime()) && entry.Name() > bestName) {
			bestName = entry.Name()
			bestInfo = info
		}
	}

	if bestName == "" {
		return "", nil
	}
	return filepath.Join(r.Dir, bestName), nil
}

// Claim copies the latest recording to dst and returns the source path.
// The source file is left in place. Returns "" when no recording exists.
func (r *Rotator) Claim(dst string) (string, error) {
	src, err := r.Latest()
	if err != nil {
		return "", err
	}
	if src == "" {
		return "", nil
	}
	if err := copyFile(src, dst); err != nil {
		return "", fmt.Errorf("claim recording: %w", err)
	}
	return src, nil
}

// Discard deletes the latest recording and returns its path.
// Returns "" when no recording exists.
func (r *Rotator) Discard() (string, error) {
	src, err := r.Latest()
	if err != nil {
		return "", err
	}
	if src == "" {
		return "", nil
	}
	if err := os.Remove(src); err != nil {
		return "", fmt.Errorf("discard recording: %w", err)
	}
	return src, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
