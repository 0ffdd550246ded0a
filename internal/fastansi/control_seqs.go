// "fast"ansi -- the bare minimum of ANSI control sequences for multiline
// terminal statuses.
package fastansi

import "fmt"

func Up(lines int) {
	fmt.Printf("\x1b[%vA", lines)
}

func Down(lines int) {
	fmt.Printf("\x1b[%vB", lines)
}

func EraseLine() {
	fmt.Print("\x1b[K")
}

func CR() {
	fmt.Print("\x1b[0E")
}
