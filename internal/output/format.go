package output

import "strings"

type Format string

const (
	FormatAuto  Format = "auto"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
)

var formats = []Format{FormatAuto, FormatJSON, FormatYAML, FormatTable, FormatCSV}

// Formats 返回所有受支持的格式（按帮助文本中的顺序）。
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// FormatList 返回 "json|yaml|table|csv|auto" 形式的帮助文本。
func FormatList() string {
	names := make([]string, 0, len(formats))
	for _, f := range formats[1:] {
		names = append(names, string(f))
	}
	return strings.Join(append(names, string(FormatAuto)), "|")
}

func IsValid(f Format) bool {
	switch f {
	case FormatAuto, FormatJSON, FormatYAML, FormatTable, FormatCSV:
		return true
	default:
		return false
	}
}
