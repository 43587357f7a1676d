package summarizer

import (
	"fmt"
	"strings"
)

// MarkdownFormatter renders a Summary as a Markdown document.
type MarkdownFormatter struct {
	opts options
}

// NewMarkdownFormatter creates a MarkdownFormatter.
func NewMarkdownFormatter(opts ...Option) *MarkdownFormatter {
	return &MarkdownFormatter{opts: newOptions(opts)}
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	t := f.opts.translate
	totals := s.Totals()

	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t("Annotation Summary"))

	fmt.Fprintf(&b, "## %s\n\n", t("Batch"))
	fmt.Fprintf(&b, "| %s | %s |\n", t("Item"), t("Value"))
	b.WriteString("|---|---|\n")
	fmt.Fprintf(&b, "| %s | %s |\n", t("Input Directory"), escapeCell(s.InputDir))
	fmt.Fprintf(&b, "| %s | %s |\n", t("Record Directory"), escapeCell(s.RecordDir))
	fmt.Fprintf(&b, "| %s | %d |\n", t("Videos"), len(s.Videos))
	fmt.Fprintf(&b, "| %s | %d |\n", t("Saved"), totals.Committed)
	fmt.Fprintf(&b, "| %s | %d |\n", t("Skipped"), totals.Skipped)
	fmt.Fprintf(&b, "| %s | %d |\n", t("Not saved"), totals.Unsaved)
	fmt.Fprintf(&b, "| %s | %d |\n", t("Not visited"), totals.NotVisited)
	fmt.Fprintf(&b, "| %s | %d |\n", t("Annotated Frames"), totals.Annotated)
	ending := t("End of list")
	if s.Quit {
		ending = t("Quit")
	}
	fmt.Fprintf(&b, "| %s | %s |\n", t("Finished By"), ending)
	b.WriteString("\n")

	if len(s.Videos) > 0 {
		fmt.Fprintf(&b, "## %s\n\n", t("Videos"))
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			t("Video"), t("Status"), t("Frames"), t("Annotated"), t("Note"))
		b.WriteString("|---|---|---:|---:|---|\n")
		for _, v := range s.Videos {
			fmt.Fprintf(&b, "| %s | %s | %s | %d | %s |\n",
				escapeCell(v.Name), t(statusLabel(v.Status)), frames(v.Frames),
				v.Annotated, escapeCell(note(v)))
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n\n")
	generated := s.GeneratedAt.Format("2006-01-02 15:04:05")
	if f.opts.version != "" {
		fmt.Fprintf(&b, "*%s pinframe %s, %s*\n", t("Generated by"), f.opts.version, generated)
	} else {
		fmt.Fprintf(&b, "*%s pinframe, %s*\n", t("Generated by"), generated)
	}

	return b.String()
}

// note is the skip reason, or the record path of a saved video.
func note(v VideoEntry) string {
	if v.Reason != "" {
		return v.Reason
	}
	return v.RecordPath
}

// frames renders an unknown frame count as a dash.
func frames(n int) string {
	if n <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d", n)
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
