package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"emperror.dev/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"ghgrip/internal/domain"
)

// Formats accepted by PrintStructured
const (
	FormatPlain = "plain"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// DefaultColumns is used for plain output when no columns are requested
var DefaultColumns = []string{"name", "updatedAt", "description"}

var knownColumns = map[string]func(domain.RepositorySummary) string{
	"id":          func(r domain.RepositorySummary) string { return r.ID },
	"name":        func(r domain.RepositorySummary) string { return r.Name },
	"description": func(r domain.RepositorySummary) string { return r.DescriptionText() },
	"createdat":   func(r domain.RepositorySummary) string { return r.CreatedAt.Format(time.RFC3339) },
	"updatedat":   func(r domain.RepositorySummary) string { return r.UpdatedAt.Format(time.RFC3339) },
	"url":         func(r domain.RepositorySummary) string { return r.URL },
	"visibility": func(r domain.RepositorySummary) string {
		if r.IsPrivate {
			return "private"
		}
		return "public"
	},
}

// ParseColumns splits a comma separated column list, dropping blanks
func ParseColumns(s string) []string {
	var cols []string
	for _, c := range strings.Split(s, ",") {
		c = strings.TrimSpace(c)
		if c != "" {
			cols = append(cols, c)
		}
	}
	return cols
}

// ValidateColumns reports the first unknown column name
func ValidateColumns(cols []string) error {
	for _, c := range cols {
		if _, ok := knownColumns[strings.ToLower(c)]; !ok {
			return errors.Errorf("unknown column %q", c)
		}
	}
	return nil
}

// PrintStructured prints data in JSON, YAML, or plain table format.
// Plain output only understands repository lists; name wraps the
// structured forms.
func PrintStructured(w io.Writer, name string, data interface{}, format string, columns []string) error {
	switch strings.ToLower(format) {
	case FormatJSON:
		out := map[string]interface{}{name: data}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(out), "encode json")

	case FormatYAML, "yml":
		out := map[string]interface{}{name: data}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return errors.Wrap(err, "encode yaml")
		}
		return errors.Wrap(enc.Close(), "encode yaml")

	case FormatPlain, "":
		switch v := data.(type) {
		case []domain.RepositorySummary:
			return PrintRepositories(w, v, columns)
		case domain.RepositorySummary:
			return PrintRepositories(w, []domain.RepositorySummary{v}, columns)
		default:
			return errors.Errorf("plain output does not support %T", data)
		}

	default:
		return errors.Errorf("unsupported format: %s", format)
	}
}

// PrintRepositories renders repositories as an aligned table
func PrintRepositories(w io.Writer, repos []domain.RepositorySummary, columns []string) error {
	if len(columns) == 0 {
		columns = DefaultColumns
	}
	if err := ValidateColumns(columns); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	titleCaser := cases.Title(language.English, cases.NoLower)

	for i, col := range columns {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, titleCaser.String(col))
	}
	fmt.Fprintln(tw)

	for _, r := range repos {
		for i, col := range columns {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, sanitize(knownColumns[strings.ToLower(col)](r)))
		}
		fmt.Fprintln(tw)
	}

	return errors.Wrap(tw.Flush(), "flush table")
}

// tabs and newlines would break the table layout
func sanitize(s string) string {
	return strings.NewReplacer("\t", " ", "\n", " ", "\r", "").Replace(s)
}
