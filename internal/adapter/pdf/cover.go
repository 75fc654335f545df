// Package pdf renders transmittal cover sheets with pdfcpu.
package pdf

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/heartmarshall/doccontrol-backend/internal/domain"
)

const (
	pageHeight   = 842.0
	marginLeft   = 50.0
	marginTop    = 60.0
	lineHeight   = 16.0
	rowsPerPage  = 38
	titleSize    = 18
	bodySize     = 10
	titleFont    = "Helvetica-Bold"
	bodyFont     = "Helvetica"
	columnNumber = marginLeft
	columnRev    = 250.0
	columnCopies = 300.0
	columnFormat = 350.0
	columnAction = 420.0

	// maxLineChars fits a body-size Helvetica line between the A4 margins.
	maxLineChars = 90
)

// CoverRenderer renders a one-or-more page A4 cover sheet for a transmittal.
type CoverRenderer struct {
	conf *model.Configuration
}

// NewCoverRenderer creates a CoverRenderer.
func NewCoverRenderer() *CoverRenderer {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &CoverRenderer{conf: conf}
}

// Render returns the cover sheet PDF for t.
func (r *CoverRenderer) Render(ctx context.Context, t domain.Transmittal) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := json.Marshal(coverLayout(t))
	if err != nil {
		return nil, fmt.Errorf("marshal cover layout: %w", err)
	}

	var buf bytes.Buffer
	if err := api.Create(nil, bytes.NewReader(raw), &buf, r.conf); err != nil {
		return nil, fmt.Errorf("render cover sheet %s: %w", t.Number, err)
	}
	return buf.Bytes(), nil
}

// layout mirrors the subset of pdfcpu's JSON page description used here.
type layout struct {
	Paper string           `json:"paper"`
	Pages map[string]*page `json:"pages"`
}

type page struct {
	Content content `json:"content"`
}

type content struct {
	Text []textBox `json:"text"`
}

type textBox struct {
	Value string     `json:"value"`
	Pos   [2]float64 `json:"pos"`
	Font  font       `json:"font"`
}

type font struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

// lines accumulates text boxes top-down, breaking onto a new page when full.
type lines struct {
	pages []*page
	row   int
}

func (l *lines) current() *page {
	if len(l.pages) == 0 || l.row >= rowsPerPage {
		l.pages = append(l.pages, &page{})
		l.row = 0
	}
	return l.pages[len(l.pages)-1]
}

func (l *lines) add(cells ...cell) {
	p := l.current()
	y := pageHeight - marginTop - float64(l.row)*lineHeight
	for _, c := range cells {
		size, name := bodySize, bodyFont
		if c.title {
			size, name = titleSize, titleFont
		}
		p.Content.Text = append(p.Content.Text, textBox{
			Value: c.value,
			Pos:   [2]float64{c.x, y},
			Font:  font{Name: name, Size: size},
		})
	}
	l.row++
	if len(cells) > 0 && cells[0].title {
		l.row++
	}
}

func (l *lines) blank() { l.current(); l.row++ }

// para writes label+value at the left margin, wrapped onto as many rows as needed.
func (l *lines) para(label, value string) {
	for _, row := range wrap(label+value, maxLineChars) {
		l.add(text(marginLeft, row))
	}
}

// wrap splits s into rows of at most width runes, breaking at spaces and
// hard-splitting words longer than a row. Newlines start a new row.
func wrap(s string, width int) []string {
	var out []string
	for _, para := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		row := ""
		for _, w := range strings.Fields(para) {
			for utf8.RuneCountInString(w) > width {
				if row != "" {
					out = append(out, row)
					row = ""
				}
				r := []rune(w)
				out = append(out, string(r[:width]))
				w = string(r[width:])
			}
			switch {
			case w == "":
			case row == "":
				row = w
			case utf8.RuneCountInString(row)+1+utf8.RuneCountInString(w) <= width:
				row += " " + w
			default:
				out = append(out, row)
				row = w
			}
		}
		if row != "" || len(out) == 0 || para == "" {
			out = append(out, row)
		}
	}
	return out
}

type cell struct {
	x     float64
	value string
	title bool
}

func text(x float64, v string) cell { return cell{x: x, value: v} }

func coverLayout(t domain.Transmittal) layout {
	var l lines

	l.add(cell{x: marginLeft, value: "TRANSMITTAL " + t.Number, title: true})
	l.para("Subject: ", t.Subject)
	l.add(text(marginLeft, "Type: "+string(t.Type)))
	if t.ProjectCode != nil {
		l.add(text(marginLeft, "Project: "+*t.ProjectCode))
	}
	l.para("From: ", partyLine(t.Sender))
	l.para("To: ", partyLine(t.Recipient))
	if t.IssuedAt != nil {
		l.add(text(marginLeft, "Issued: "+t.IssuedAt.UTC().Format(time.DateOnly)))
	}
	if t.DueAt != nil {
		l.add(text(marginLeft, "Response due: "+t.DueAt.UTC().Format(time.DateOnly)))
	}
	l.blank()

	l.add(
		text(columnNumber, "Document"),
		text(columnRev, "Rev"),
		text(columnCopies, "Copies"),
		text(columnFormat, "Format"),
		text(columnAction, "Action"),
	)
	for _, d := range t.Documents {
		number := d.DocumentNumber
		if number == "" {
			number = d.DocumentID
		}
		l.add(
			text(columnNumber, number),
			text(columnRev, d.Revision),
			text(columnCopies, strconv.Itoa(d.Copies)),
			text(columnFormat, string(d.Format)),
			text(columnAction, string(d.Action)),
		)
	}

	if t.Notes != nil && *t.Notes != "" {
		l.blank()
		l.para("Notes: ", *t.Notes)
	}

	out := layout{Paper: "A4P", Pages: make(map[string]*page, len(l.pages))}
	for i, p := range l.pages {
		out.Pages[strconv.Itoa(i+1)] = p
	}
	return out
}

func partyLine(p domain.Party) string {
	if p.Organization == "" {
		return p.Name
	}
	return p.Name + " (" + p.Organization + ")"
}
