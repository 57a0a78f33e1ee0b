package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wayli-app/firelens/internal/output"
	"github.com/wayli-app/firelens/internal/wire"
)

// wireDocument is one fetched row as the remote protocol returns it.
type wireDocument struct {
	Name   string                `json:"name,omitempty"`
	Fields map[string]wire.Value `json:"fields"`
}

var decodeCmd = &cobra.Command{
	Use:   "decode [file]",
	Short: "Decode wire-format result rows and render them",
	Long: `Decode reads query result rows (a wire-tagged document or a JSON array
of them) from a file or stdin and renders the decoded field values.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readDocumentData(args)
		if err != nil {
			return err
		}

		docs, err := parseDocuments(data)
		if err != nil {
			return fmt.Errorf("failed to parse wire documents: %w", err)
		}

		rows := make([]map[string]wire.Dynamic, len(docs))
		for i, doc := range docs {
			rows[i] = wire.DecodeFields(doc.Fields)
		}

		if formatter.Format != output.FormatTable {
			plain := make([]map[string]interface{}, len(rows))
			for i, row := range rows {
				plain[i] = plainFields(row)
			}
			return formatter.Print(plain)
		}

		return formatter.PrintTable(rowTable(rows))
	},
}

func readDocumentData(args []string) ([]byte, error) {
	if len(args) > 0 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		return data, nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read from stdin: %w", err)
	}
	return data, nil
}

// parseDocuments accepts either a JSON array of documents or a single
// document object.
func parseDocuments(data []byte) ([]wireDocument, error) {
	var docs []wireDocument
	if err := json.Unmarshal(data, &docs); err == nil {
		return docs, nil
	}
	var doc wireDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return []wireDocument{doc}, nil
}

// rowTable lays decoded rows out with the union of field names as
// columns, sorted for stable output.
func rowTable(rows []map[string]wire.Dynamic) output.TableData {
	seen := make(map[string]bool)
	var headers []string
	for _, row := range rows {
		for name := range row {
			if !seen[name] {
				seen[name] = true
				headers = append(headers, name)
			}
		}
	}
	sort.Strings(headers)

	table := output.TableData{Headers: headers}
	for _, row := range rows {
		cells := make([]string, len(headers))
		for i, name := range headers {
			if v, ok := row[name]; ok {
				cells[i] = formatDynamic(v)
			}
		}
		table.Rows = append(table.Rows, cells)
	}
	return table
}

// formatDynamic renders one decoded value as display text.
func formatDynamic(v wire.Dynamic) string {
	switch v := v.(type) {
	case wire.String:
		return string(v)
	case wire.Integer:
		return fmt.Sprintf("%d", int64(v))
	case wire.Double:
		return fmt.Sprintf("%g", float64(v))
	case wire.Boolean:
		return fmt.Sprintf("%t", bool(v))
	case wire.Null:
		return "null"
	case wire.Array:
		parts := make([]string, len(v))
		for i, elem := range v {
			parts[i] = formatDynamic(elem)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case wire.Map:
		return fmt.Sprintf("{%d fields}", len(v))
	case wire.Timestamp:
		return fmt.Sprintf("%d.%09d", v.Seconds, v.Nanos)
	case wire.GeoPoint:
		return fmt.Sprintf("[%g, %g]", v.Latitude, v.Longitude)
	case wire.Reference:
		return string(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// plainFields converts a decoded row into plain JSON-friendly values.
func plainFields(row map[string]wire.Dynamic) map[string]interface{} {
	plain := make(map[string]interface{}, len(row))
	for name, v := range row {
		plain[name] = plainValue(v)
	}
	return plain
}

func plainValue(v wire.Dynamic) interface{} {
	switch v := v.(type) {
	case wire.String:
		return string(v)
	case wire.Integer:
		return int64(v)
	case wire.Double:
		return float64(v)
	case wire.Boolean:
		return bool(v)
	case wire.Null:
		return nil
	case wire.Array:
		elems := make([]interface{}, len(v))
		for i, elem := range v {
			elems[i] = plainValue(elem)
		}
		return elems
	case wire.Map:
		return plainFields(v)
	case wire.Timestamp:
		return map[string]interface{}{"seconds": v.Seconds, "nanoseconds": v.Nanos}
	case wire.GeoPoint:
		return map[string]interface{}{"latitude": v.Latitude, "longitude": v.Longitude}
	case wire.Reference:
		return string(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
