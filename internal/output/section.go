package output

import (
	"fmt"
	"strings"
)

// Section returns a styled section header with a horizontal rule.
func Section(title string, width int) string {
	if width <= 0 {
		width = 66
	}
	header := StyleHeader.Render(title)
	rule := StyleMuted.Render(strings.Repeat("─", width))
	return fmt.Sprintf("%s\n%s", header, rule)
}

// Count formats n with a singular or plural noun, e.g. "1 path", "3 paths",
// "2 directories".
func Count(noun string, n int) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %s", n, plural(noun))
}

func plural(noun string) string {
	if len(noun) > 1 && strings.HasSuffix(noun, "y") && !strings.ContainsRune("aeiou", rune(noun[len(noun)-2])) {
		return noun[:len(noun)-1] + "ies"
	}
	return noun + "s"
}

// KeyValue renders a label/value line.
func KeyValue(label, value string) string {
	return StyleLabel.Render(label) + value
}

// Bool renders a yes/no flag.
func Bool(v bool) string {
	if v {
		return StyleSuccess.Render("yes")
	}
	return StyleMuted.Render("no")
}
