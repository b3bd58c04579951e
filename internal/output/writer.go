package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/zx06/xkeyring/internal/errors"
	"gopkg.in/yaml.v3"
)

// TableFormatter 由希望自定义 table/csv 呈现的数据实现。
type TableFormatter interface {
	ToTableData() (columns []string, rows []map[string]any, ok bool)
}

type Writer struct {
	Out io.Writer
	Err io.Writer
}

func New(out, err io.Writer) Writer {
	return Writer{Out: out, Err: err}
}

func (w Writer) WriteOK(format Format, data any) error {
	return w.write(format, OKEnvelope(data))
}

func (w Writer) WriteError(format Format, xe *errors.XError) error {
	return w.write(format, ErrorEnvelope(xe))
}

func (w Writer) write(format Format, env Envelope) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w.Out)
		enc.SetEscapeHTML(false)
		return enc.Encode(env)
	case FormatYAML:
		b, err := yaml.Marshal(env)
		if err != nil {
			return err
		}
		_, err = w.Out.Write(b)
		if err != nil {
			return err
		}
		if len(b) == 0 || b[len(b)-1] != '\n' {
			_, _ = w.Out.Write([]byte("\n"))
		}
		return nil
	case FormatTable:
		return writeTable(w.Out, env)
	case FormatCSV:
		return writeCSV(w.Out, env)
	default:
		return errors.New(errors.CodeCfgInvalid, "invalid output format", map[string]any{"format": string(format)})
	}
}

var profileColumns = []string{"name", "description", "service", "user"}

func writeTable(out io.Writer, env Envelope) error {
	tw := tabwriter.NewWriter(out, 0, 2, 2, ' ', 0)
	if !env.OK {
		_, _ = fmt.Fprintf(tw, "ok\t%v\n", false)
		_, _ = fmt.Fprintf(tw, "schema_version\t%d\n", env.SchemaVersion)
		if env.Error != nil {
			_, _ = fmt.Fprintf(tw, "error.code\t%s\n", env.Error.Code)
			_, _ = fmt.Fprintf(tw, "error.message\t%s\n", env.Error.Message)
		}
		return tw.Flush()
	}

	if cols, rows, ok := tableData(env.Data); ok {
		writeRows(tw, cols, rows)
		if profiles, ok := tryAsProfileList(env.Data); ok {
			noun := "profiles"
			if len(profiles) == 1 {
				noun = "profile"
			}
			_, _ = fmt.Fprintf(tw, "\n(%d %s)\n", len(profiles), noun)
		}
		return tw.Flush()
	}

	if m, ok := env.Data.(map[string]any); ok {
		for _, k := range sortedKeys(m) {
			_, _ = fmt.Fprintf(tw, "%s\t%s\n", k, formatCellValue(m[k], ""))
		}
		return tw.Flush()
	}

	_, _ = fmt.Fprintf(tw, "ok\t%v\n", true)
	_, _ = fmt.Fprintf(tw, "schema_version\t%d\n", env.SchemaVersion)
	if env.Data != nil {
		b, _ := json.MarshalIndent(env.Data, "", "  ")
		_, _ = fmt.Fprintf(tw, "data\t%s\n", strings.ReplaceAll(string(b), "\n", " "))
	}
	return tw.Flush()
}

func writeRows(tw io.Writer, cols []string, rows []map[string]any) {
	header := make([]string, len(cols))
	sep := make([]string, len(cols))
	for i, c := range cols {
		header[i] = strings.ToUpper(c)
		sep[i] = strings.Repeat("-", len(c))
	}
	_, _ = fmt.Fprintln(tw, strings.Join(header, "\t"))
	_, _ = fmt.Fprintln(tw, strings.Join(sep, "\t"))
	for _, row := range rows {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = formatCellValue(row[c], "")
		}
		_, _ = fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
}

func writeCSV(out io.Writer, env Envelope) error {
	cw := csv.NewWriter(out)
	defer cw.Flush()
	if !env.OK {
		_ = cw.Write([]string{"ok", "false"})
		_ = cw.Write([]string{"schema_version", strconv.Itoa(env.SchemaVersion)})
		if env.Error != nil {
			_ = cw.Write([]string{"error.code", string(env.Error.Code)})
			_ = cw.Write([]string{"error.message", env.Error.Message})
		}
		return cw.Error()
	}

	if cols, rows, ok := tableData(env.Data); ok {
		_ = cw.Write(cols)
		for _, row := range rows {
			rec := make([]string, len(cols))
			for i, c := range cols {
				rec[i] = formatCellValue(row[c], "")
			}
			_ = cw.Write(rec)
		}
		return cw.Error()
	}

	if m, ok := env.Data.(map[string]any); ok {
		_ = cw.Write([]string{"key", "value"})
		for _, k := range sortedKeys(m) {
			_ = cw.Write([]string{k, formatCellValue(m[k], "")})
		}
		return cw.Error()
	}

	_ = cw.Write([]string{"ok", "true"})
	_ = cw.Write([]string{"schema_version", strconv.Itoa(env.SchemaVersion)})
	return cw.Error()
}

func tableData(data any) ([]string, []map[string]any, bool) {
	if tf, ok := data.(TableFormatter); ok {
		return tf.ToTableData()
	}
	if profiles, ok := tryAsProfileList(data); ok {
		return profileColumns, profiles, true
	}
	return nil, nil, false
}

// tryAsProfileList 识别 {"profiles": [...]} 形式的数据。
func tryAsProfileList(data any) ([]map[string]any, bool) {
	m, ok := data.(map[string]any)
	if !ok {
		return nil, false
	}
	return extractMapSlice(m["profiles"])
}

func extractMapSlice(v any) ([]map[string]any, bool) {
	switch s := v.(type) {
	case []map[string]any:
		return s, true
	case []any:
		out := make([]map[string]any, 0, len(s))
		for _, item := range s {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, false
			}
			out = append(out, m)
		}
		return out, true
	default:
		return nil, false
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func formatCellValue(v any, null string) string {
	switch x := v.(type) {
	case nil:
		return null
	case string:
		return x
	case float64:
		if x == float64(int64(x)) {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case []byte:
		return string(x)
	case map[string]any, []any:
		b, _ := json.Marshal(x)
		return string(b)
	default:
		return fmt.Sprint(x)
	}
}
