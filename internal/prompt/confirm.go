package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Confirmer asks the user before clobbering an existing output file.
// In, Out and IsInteractive are swappable so tests can drive the prompt
// without a terminal.
type Confirmer struct {
	In            io.Reader
	Out           io.Writer
	IsInteractive func() bool
}

func DefaultConfirmer() Confirmer {
	return Confirmer{
		In:            os.Stdin,
		Out:           os.Stderr,
		IsInteractive: func() bool { return term.IsTerminal(int(os.Stdin.Fd())) },
	}
}

// ConfirmOverwrite returns true when the user agrees to replace path.
// With assumeYes the prompt is skipped entirely. A non-interactive
// stdin is an error rather than a silent "no" so scripted runs fail
// loudly instead of producing a surprise -N suffixed file.
func (c Confirmer) ConfirmOverwrite(path string, assumeYes bool) (bool, error) {
	if assumeYes {
		return true, nil
	}
	if c.IsInteractive == nil || !c.IsInteractive() {
		return false, fmt.Errorf("output file %s exists and stdin is not a terminal: pass -y to overwrite", path)
	}
	if c.Out != nil {
		fmt.Fprintf(c.Out, "Output file %s already exists. Overwrite? [y/N]: ", path)
	}
	sc := bufio.NewScanner(c.In)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return false, err
		}
		return false, nil
	}
	switch strings.ToLower(strings.TrimSpace(sc.Text())) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
