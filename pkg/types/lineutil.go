package types

// SplitLines splits content into lines, accepting "\n", "\r\n" and a lone
// "\r" as terminators. Terminators are not included. A trailing terminator
// does not produce an extra empty line.
func SplitLines(content []byte) []string {
	var lines []string
	start := 0
	for i := 0; i < len(content); i++ {
		switch content[i] {
		case '\n':
			lines = append(lines, string(content[start:i]))
			start = i + 1
		case '\r':
			lines = append(lines, string(content[start:i]))
			if i+1 < len(content) && content[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	if start < len(content) {
		lines = append(lines, string(content[start:]))
	}
	return lines
}
