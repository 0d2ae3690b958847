// Package clipboard writes snippet code to the system clipboard.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// Writer copies text somewhere the user can paste it from.
type Writer interface {
	WriteAll(text string) error
}

// System writes to the OS clipboard (pbcopy, xclip/xsel/wl-copy, or the
// Windows clipboard API, depending on platform).
type System struct{}

// WriteAll implements Writer.
func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("no clipboard utility available on this system")
	}
	return clipboard.WriteAll(text)
}

// Memory records the last text written. Used in tests and when no system
// clipboard should be touched.
type Memory struct {
	Text   string
	Writes int
	Err    error
}

// WriteAll implements Writer.
func (m *Memory) WriteAll(text string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Text = text
	m.Writes++
	return nil
}
