package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// SafePath picks a destination that will not clobber an existing file.
// Derived output names collide whenever the same input is translated to
// the same language twice, so the first nine collisions get a numeric
// suffix before the extension and anything past that gets a random one.
// The bool reports whether the path was changed.
func SafePath(path string) (string, bool, error) {
	if strings.TrimSpace(path) == "" {
		return "", false, fmt.Errorf("output path is empty")
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path, false, nil
	} else if err != nil {
		return "", false, err
	}

	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for i := 1; i <= 9; i++ {
		candidate := fmt.Sprintf("%s_%d%s", base, i, ext)
		_, err := os.Stat(candidate)
		if os.IsNotExist(err) {
			return candidate, true, nil
		}
		if err != nil {
			return "", false, err
		}
	}

	// All numbered fallbacks taken; give up on readable names.
	return fmt.Sprintf("%s_%s%s", base, uuid.NewString()[:8], ext), true, nil
}
