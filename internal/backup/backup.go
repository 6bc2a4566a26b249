// Package backup snapshots the résumé before it is overwritten. Snapshots
// land in a flat directory as backup_<timestamp><ext> copies of the file.
package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const stampLayout = "20060102_150405"

// Snapshot copies the file at path into dir, creating dir if needed, and
// returns the snapshot path. The copy happens before the caller rewrites
// path, so the previous revision stays recoverable.
func Snapshot(path, dir string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir %s: %w", dir, err)
	}

	src, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s for backup: %w", path, err)
	}
	defer src.Close()

	name := fmt.Sprintf("backup_%s%s", now.Format(stampLayout), filepath.Ext(path))
	target := filepath.Join(dir, name)

	dst, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create backup %s: %w", target, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(target)
		return "", fmt.Errorf("copy backup %s: %w", target, err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(target)
		return "", fmt.Errorf("close backup %s: %w", target, err)
	}
	return target, nil
}

// Prune removes the oldest snapshots in dir, keeping the newest keep files.
// Snapshot names sort chronologically, so pruning is a name sort. It
// returns the number of snapshots removed.
func Prune(dir string, keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read backup dir %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), "backup_") {
			names = append(names, e.Name())
		}
	}
	if len(names) <= keep {
		return 0, nil
	}

	sort.Strings(names)
	removed := 0
	for _, name := range names[:len(names)-keep] {
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			return removed, fmt.Errorf("remove old backup %s: %w", name, err)
		}
		removed++
	}
	return removed, nil
}
