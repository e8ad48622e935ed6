// Package csvline splits single CSV lines into fields without the strictness
// of encoding/csv. Bank exports routinely contain unbalanced quotes and
// mid-file junk; a malformed line degrades to best-effort splitting instead
// of failing the whole file.
package csvline

import "strings"

// Split returns the ordered fields of one CSV line. Double-quoted fields may
// contain commas; "" inside a quoted field becomes a literal quote. Split
// never fails.
func Split(line string) []string {
	var fields []string
	var field strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				field.WriteByte('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			fields = append(fields, field.String())
			field.Reset()
		default:
			field.WriteByte(c)
		}
	}
	fields = append(fields, field.String())
	return fields
}

// SplitTrimmed is Split with surrounding whitespace removed from each field.
func SplitTrimmed(line string) []string {
	fields := Split(line)
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}
	return fields
}
