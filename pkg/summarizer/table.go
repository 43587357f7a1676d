package summarizer

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// TableFormatter renders a Summary as a terminal table.
type TableFormatter struct {
	opts options
}

// NewTableFormatter creates a TableFormatter.
func NewTableFormatter(opts ...Option) *TableFormatter {
	return &TableFormatter{opts: newOptions(opts)}
}

// Format implements Formatter. An empty batch renders as an empty string.
func (f *TableFormatter) Format(s *Summary) string {
	if len(s.Videos) == 0 {
		return ""
	}
	t := f.opts.translate

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{t("Video"), t("Status"), t("Frames"), t("Annotated"), t("Note")})

	for _, v := range s.Videos {
		tw.AppendRow(table.Row{
			v.Name,
			t(statusLabel(v.Status)),
			frames(v.Frames),
			strconv.Itoa(v.Annotated),
			note(v),
		})
	}

	totals := s.Totals()
	tw.AppendFooter(table.Row{
		fmt.Sprintf("%d %s", len(s.Videos), t("Videos")),
		fmt.Sprintf("%d %s", totals.Committed, t("Saved")),
		"",
		strconv.Itoa(totals.Annotated),
		"",
	})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft, AlignFooter: text.AlignRight},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft, AlignFooter: text.AlignRight},
		{Number: 5, Align: text.AlignLeft, AlignHeader: text.AlignLeft, WidthMax: 60},
	})

	return tw.Render()
}
