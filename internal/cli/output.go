package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/smartfarm/pkg/types"
)

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// column describes one column of a rendered table.
type column[T any] struct {
	header string
	value  func(*T) string
}

// render prints rows as JSON in --json mode and as an aligned table otherwise.
func render[T any](a *app, w io.Writer, rows []*T, cols []column[T]) error {
	if a.jsonMode {
		return printJSON(w, rows)
	}
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No records.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.header
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, r := range rows {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = c.value(r)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

// renderOne prints a single entity: JSON in --json mode, otherwise
// "field: value" lines.
func renderOne(a *app, w io.Writer, v any, fields [][2]string) error {
	if a.jsonMode {
		return printJSON(w, v)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	for _, f := range fields {
		fmt.Fprintf(tw, "%s:\t%s\n", f[0], f[1])
	}
	return tw.Flush()
}

// confirm asks a yes/no question on the command's streams. --yes answers it.
func (a *app) confirm(cmd *cobra.Command, question string) (bool, error) {
	if a.yes {
		return true, nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", question)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("reading answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
	return false, nil
}

// changedCount reports how many of the named flags were set.
func changedCount(cmd *cobra.Command, names ...string) int {
	n := 0
	for _, name := range names {
		if cmd.Flags().Changed(name) {
			n++
		}
	}
	return n
}

// parseID parses a positive entity identifier.
func parseID(field, s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s %q: %w", field, s, types.ErrInvalidID)
	}
	return id, nil
}

// optionalID returns nil for 0, the unset value of ID flags.
func optionalID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

// dateFlag parses a YYYY-MM-DD flag value; blank means unset.
func dateFlag(s string) (time.Time, error) {
	d, err := types.ParseDate(s)
	if err != nil || d == nil {
		return time.Time{}, err
	}
	return *d, nil
}

func fmtDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(types.DateLayout)
}

func fmtDatePtr(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return fmtDate(*t)
}

func fmtID(id *int64) string {
	if id == nil {
		return "-"
	}
	return strconv.FormatInt(*id, 10)
}

func fmtInt(id int64) string {
	return strconv.FormatInt(id, 10)
}

func fmtAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// notFound reports a missing entity as ErrNotFound.
func notFound(entity string, id int64) error {
	return fmt.Errorf("%s %d: %w", entity, id, types.ErrNotFound)
}
