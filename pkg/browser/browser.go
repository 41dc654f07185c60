// Package browser implements an interactive terminal browser of the
// instructions of a database.
package browser

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/Manu343726/copro/pkg/hw/copro/codegen"
	"github.com/Manu343726/copro/pkg/hw/copro/database"
	"github.com/Manu343726/copro/pkg/hw/copro/instructions"
)

type Section struct {
	Title string
	Body  string
}

type Browser struct {
	db        *database.Database
	generator *codegen.Generator

	app     *tview.Application
	filter  *tview.InputField
	list    *tview.List
	details *tview.TextView
	shown   []*instructions.Pair
}

func New(db *database.Database, generator *codegen.Generator) *Browser {
	b := &Browser{
		db:        db,
		generator: generator,
		app:       tview.NewApplication(),
		filter:    tview.NewInputField(),
		list:      tview.NewList(),
		details:   tview.NewTextView(),
	}

	b.filter.SetLabel("Filter: ").SetChangedFunc(b.refresh)

	b.list.ShowSecondaryText(false).
		SetChangedFunc(func(index int, _ string, _ string, _ rune) {
			b.show(index)
		})
	b.list.SetBorder(true).SetTitle(" Instructions ")

	b.details.SetDynamicColors(true).SetScrollable(true).SetWrap(false)
	b.details.SetBorder(true).SetTitle(" Details ")

	return b
}

// Returns the pairs whose hardware or software name contains the filter, case insensitive
func (b *Browser) Matching(filter string) []*instructions.Pair {
	filter = strings.ToLower(filter)
	var result []*instructions.Pair

	for _, pair := range b.db.Pairs() {
		if strings.Contains(strings.ToLower(pair.Hardware.Name), filter) || strings.Contains(pair.Software.Name, filter) {
			result = append(result, pair)
		}
	}

	return result
}

// Returns the details shown for an instruction
func (b *Browser) Sections(pair *instructions.Pair) []Section {
	var sections []Section

	if description, ok := b.db.Description(pair.Hardware.Name); ok && len(description) > 0 {
		sections = append(sections, Section{"Description", strings.Join(description, "\n")})
	}

	if documentation, err := pair.Documentation(0); err != nil {
		sections = append(sections, Section{"Encoding", "error: " + err.Error()})
	} else {
		sections = append(sections, Section{"Encoding", documentation})
	}

	var timings []string
	for _, cell := range b.db.Timings().Cells(pair.Hardware.Name) {
		if cell.Value != "" {
			timings = append(timings, fmt.Sprintf("%v: %v", cell.Stage, cell.Value))
		}
	}

	if len(timings) > 0 {
		sections = append(sections, Section{"Timings", strings.Join(timings, "\n")})
	}

	if b.generator != nil {
		if code, err := b.generator.Function(pair); err != nil {
			sections = append(sections, Section{"Generated code", "error: " + err.Error()})
		} else {
			sections = append(sections, Section{"Generated code", code})
		}
	}

	return sections
}

func (b *Browser) refresh(filter string) {
	b.shown = b.Matching(filter)
	b.list.Clear()

	for _, pair := range b.shown {
		b.list.AddItem(pair.Hardware.Name, pair.Software.Name, 0, nil)
	}

	if len(b.shown) == 0 {
		b.details.SetText("[red]no matching instructions[-]")
		return
	}

	b.list.SetCurrentItem(0)
	b.show(0)
}

func (b *Browser) show(index int) {
	if index < 0 || index >= len(b.shown) {
		return
	}

	var text strings.Builder
	for _, section := range b.Sections(b.shown[index]) {
		fmt.Fprintf(&text, "[yellow::b]%v[-::-]\n%v\n\n", section.Title, tview.Escape(section.Body))
	}

	b.details.SetText(text.String()).ScrollToBeginning()
}

// Runs the browser until the user quits (Esc, or q outside the filter)
func (b *Browser) Run() error {
	body := tview.NewFlex().
		AddItem(b.list, 32, 0, true).
		AddItem(b.details, 0, 1, false)

	root := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(b.filter, 1, 0, false).
		AddItem(body, 0, 1, true)

	focus := []tview.Primitive{b.list, b.details, b.filter}

	b.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch {
		case event.Key() == tcell.KeyEscape:
			b.app.Stop()
			return nil
		case event.Key() == tcell.KeyTab:
			for i, primitive := range focus {
				if primitive.HasFocus() {
					b.app.SetFocus(focus[(i+1)%len(focus)])
					return nil
				}
			}
		case event.Rune() == 'q' && !b.filter.HasFocus():
			b.app.Stop()
			return nil
		}

		return event
	})

	b.refresh("")
	return b.app.SetRoot(root, true).EnableMouse(true).Run()
}
