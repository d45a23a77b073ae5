package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// RejectSymlinkPath refuses output and log destinations with a symlink
// anywhere on the path. The atomic rename would follow a symlinked
// component, so a planted link could redirect the translated file
// outside its intended directory.
func RejectSymlinkPath(path string) error {
	abs, err := absNonEmpty(path)
	if err != nil {
		return err
	}

	// Check the path and every ancestor from the root downward, so the
	// error names the shallowest offending component. Past the first
	// component that does not exist yet there is nothing left to check.
	chain := ancestorChain(abs)
	for i := len(chain) - 1; i >= 0; i-- {
		p := chain[i]
		info, err := os.Lstat(p)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil
			}
			return fmt.Errorf("failed to access %s: %w", p, err)
		}
		if info.Mode()&os.ModeSymlink != 0 {
			return fmt.Errorf("refusing to write through symlink %s (writing %s)", p, abs)
		}
		reparse, err := isReparsePoint(p)
		if err != nil {
			return fmt.Errorf("failed to check reparse point %s: %w", p, err)
		}
		if reparse {
			return fmt.Errorf("refusing to write through reparse point %s (writing %s)", p, abs)
		}
	}
	return nil
}

func absNonEmpty(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("path is empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}
	return abs, nil
}

// ancestorChain lists abs and each parent directory up to the
// filesystem root, deepest first.
func ancestorChain(abs string) []string {
	var chain []string
	for p := abs; ; p = filepath.Dir(p) {
		chain = append(chain, p)
		if filepath.Dir(p) == p {
			break
		}
	}
	return chain
}
