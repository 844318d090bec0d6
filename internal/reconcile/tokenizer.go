package reconcile

import "strings"

const delimiter = ','

// SplitLine splits one raw export line into fields on the comma delimiter,
// honoring quoted regions. A doubled quote inside a quoted region is a
// literal quote, not a region terminator. An unterminated quoted region
// consumes to end of line; malformed trailing rows are common in exports,
// so this never fails. Always returns at least one field.
func SplitLine(line string) []string {
	fields := make([]string, 0, 16)
	var b strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case inQuotes && c == '"':
			if i+1 < len(line) && line[i+1] == '"' {
				// Escaped literal quote.
				b.WriteByte('"')
				i++
			} else {
				inQuotes = false
			}
		case !inQuotes && c == '"':
			inQuotes = true
		case !inQuotes && c == delimiter:
			fields = append(fields, b.String())
			b.Reset()
		default:
			b.WriteByte(c)
		}
	}
	fields = append(fields, b.String())
	return fields
}
