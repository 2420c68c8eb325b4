package checkpoint

import (
	"fmt"
	"io"
	"os"
)

// copyFile copies src to dst wholesale, truncating any existing dst.
func copyFile(src, dst string) error {
	return doCopy(src, dst, false)
}

// copyFileSync is copyFile plus an fsync before close. Used for the live
// milestone document: the agent reads it exactly once at startup, so the
// reset must be durable on disk before the agent process is launched.
func copyFileSync(src, dst string) error {
	return doCopy(src, dst, true)
}

func doCopy(src, dst string, sync bool) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}
	if sync {
		if err := out.Sync(); err != nil {
			out.Close()
			return fmt.Errorf("sync %s: %w", dst, err)
		}
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", dst, err)
	}
	return nil
}
