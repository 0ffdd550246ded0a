package fastansi

import "fmt"

// StatusPrinter paints a small stack of status lines in place: height picks
// the line counted from the bottom, 0 being the current one.
type StatusPrinter struct {
	maxlines int
}

func NewStatusPrinter() *StatusPrinter {
	return &StatusPrinter{maxlines: 0}
}

func (sp *StatusPrinter) Status(height int, str ...any) {
	if sp.maxlines < height {
		sp.maxlines = height
	}
	CR()
	Up(height + 1)
	EraseLine()
	fmt.Print(str...)
	Down(height + 1)
	CR()
}

// PushLines scrolls past the painted block so normal printing can resume.
func (sp *StatusPrinter) PushLines() {
	for i := 0; i < sp.maxlines+1; i++ {
		fmt.Print("\n")
	}
	sp.maxlines = 0
}
