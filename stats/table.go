package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var lang language.Tag = language.English

var summaryHeader = []string{"name", "count", "mean", "std", "min", "p50", "max"}

// fmtSummaries 把多筆 ColumnSummary 排成對齊的文字表格。
func fmtSummaries(title string, cs []ColumnSummary) string {
	p := message.NewPrinter(lang)
	rows := make([][]string, 0, len(cs))
	for _, c := range cs {
		rows = append(rows, []string{
			c.Name,
			p.Sprintf("%d", c.Count),
			p.Sprintf("%.3f", c.Mean),
			p.Sprintf("%.3f", c.Std),
			p.Sprintf("%.3f", c.Min),
			p.Sprintf("%.3f", c.P50),
			p.Sprintf("%.3f", c.Max),
		})
	}
	return fmtGrid(title, summaryHeader, rows)
}

// fmtGrid 輸出帶標題列的多欄表格；第一欄靠左，其餘靠右。
func fmtGrid(title string, header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, r := range rows {
		for i, cell := range r {
			if w := runewidth.StringWidth(cell); i < len(widths) && w > widths[i] {
				widths[i] = w
			}
		}
	}

	var sb strings.Builder
	divider := "+"
	inner := -1
	for _, w := range widths {
		divider += strings.Repeat("-", w+2) + "+"
		inner += w + 3
	}
	divider += "\n"

	titleW := runewidth.StringWidth(title)
	if titleW > inner {
		inner = titleW
	}
	left := (inner - titleW) / 2
	sb.WriteString("+" + strings.Repeat("-", inner) + "+\n")
	sb.WriteString("|" + blank(left) + title + blank(inner-titleW-left) + "|\n")
	sb.WriteString(divider)
	writeRow := func(cells []string) {
		sb.WriteString("|")
		for i, w := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			pad := blank(w - runewidth.StringWidth(cell))
			if i == 0 {
				sb.WriteString(" " + cell + pad + " |")
			} else {
				sb.WriteString(" " + pad + cell + " |")
			}
		}
		sb.WriteString("\n")
	}
	writeRow(header)
	sb.WriteString(divider)
	for _, r := range rows {
		writeRow(r)
	}
	sb.WriteString(divider)
	return sb.String()
}

// fmtTable 輸出兩欄的 key / value 表格。
func fmtTable(title string, keys []string, msg map[string]string) string {
	p := message.NewPrinter(lang)
	maxKeyLen := 0
	maxValLen := 0
	for _, k := range keys {
		if w := runewidth.StringWidth(k); w > maxKeyLen {
			maxKeyLen = w
		}
		if w := runewidth.StringWidth(msg[k]); w > maxValLen {
			maxValLen = w
		}
	}
	maxKeyLen += 2
	maxValLen += 2

	totalInner := maxKeyLen + maxValLen + 1
	titleW := runewidth.StringWidth(title)
	if titleW > totalInner {
		maxValLen += titleW - totalInner
		totalInner = titleW
	}
	divider := "+" + strings.Repeat("-", maxKeyLen) + "+" + strings.Repeat("-", maxValLen) + "+\n"
	top := "+" + strings.Repeat("-", totalInner) + "+\n"

	left := (totalInner - titleW) / 2
	right := totalInner - titleW - left

	fmtStr := top
	fmtStr += p.Sprintf("|%s%s%s|\n", blank(left), title, blank(right))
	fmtStr += divider
	for _, k := range keys {
		fmtStr += p.Sprintf("| %s%s | %s%s |\n", k, blank(maxKeyLen-2-runewidth.StringWidth(k)), msg[k], blank(maxValLen-2-runewidth.StringWidth(msg[k])))
	}
	fmtStr += divider

	return fmtStr
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
