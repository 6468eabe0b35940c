package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"clawtrack/internal/prize"
)

// formField indexes the focusable fields in tab order.
type formField int

const (
	fieldName formField = iota
	fieldCategory
	fieldManufacturer
	fieldQuantity
	fieldDate
	fieldPhoto
	fieldNotes
	fieldCount
)

// formModel is the edit buffer for one record. It is seeded from an
// existing record when editing, or from blank defaults (quantity 1, date
// today) when adding, and only touches the collection on submit.
type formModel struct {
	styles Styles

	// editingID is empty when adding; edits keep the identifier.
	editingID string

	name     textinput.Model
	quantity textinput.Model
	date     textinput.Model
	photo    textinput.Model
	notes    textarea.Model

	categoryIdx     int
	manufacturerIdx int

	focus  formField
	errMsg string

	// existingPhoto carries an already-embedded photo through an edit in
	// which the photo path field is left empty.
	existingPhoto string
}

func newForm(styles Styles, rec *prize.Record) *formModel {
	f := &formModel{styles: styles}

	f.name = textinput.New()
	f.name.Placeholder = "prize name"
	f.name.CharLimit = 120
	f.name.Width = 40

	f.quantity = textinput.New()
	f.quantity.Placeholder = "1"
	f.quantity.CharLimit = 5
	f.quantity.Width = 6

	f.date = textinput.New()
	f.date.Placeholder = "YYYY-MM-DD"
	f.date.CharLimit = 10
	f.date.Width = 12

	f.photo = textinput.New()
	f.photo.Placeholder = "path to image (optional)"
	f.photo.CharLimit = 260
	f.photo.Width = 40

	f.notes = textarea.New()
	f.notes.Placeholder = "notes (markdown ok)"
	f.notes.SetWidth(46)
	f.notes.SetHeight(4)
	f.notes.CharLimit = 2000

	if rec != nil {
		f.editingID = rec.Identifier
		f.name.SetValue(rec.Name)
		f.quantity.SetValue(strconv.Itoa(rec.Quantity))
		f.date.SetValue(rec.AcquisitionDate.String())
		f.notes.SetValue(rec.Notes)
		f.existingPhoto = rec.Photo
		f.categoryIdx = indexOfCategory(rec.Category)
		f.manufacturerIdx = indexOfManufacturer(rec.Manufacturer)
	} else {
		f.quantity.SetValue("1")
		f.date.SetValue(prize.Today().String())
	}

	f.name.Focus()
	return f
}

func indexOfCategory(c prize.Category) int {
	for i, cat := range prize.Categories() {
		if cat == c {
			return i
		}
	}
	return len(prize.Categories()) - 1
}

func indexOfManufacturer(m prize.Manufacturer) int {
	for i, mk := range prize.Manufacturers() {
		if mk == m {
			return i
		}
	}
	return len(prize.Manufacturers()) - 1
}

func (f *formModel) category() prize.Category {
	return prize.Categories()[f.categoryIdx]
}

func (f *formModel) manufacturer() prize.Manufacturer {
	return prize.Manufacturers()[f.manufacturerIdx]
}

// Update handles one key event. Tab order wraps in both directions; the
// enum fields cycle with left/right.
func (f *formModel) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			if f.focus != fieldNotes || key.String() == "tab" {
				f.setFocus((f.focus + 1) % fieldCount)
				return nil
			}
		case "shift+tab", "up":
			if f.focus != fieldNotes || key.String() == "shift+tab" {
				f.setFocus((f.focus + fieldCount - 1) % fieldCount)
				return nil
			}
		case "left":
			if f.cycleEnum(-1) {
				return nil
			}
		case "right":
			if f.cycleEnum(1) {
				return nil
			}
		}
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldName:
		f.name, cmd = f.name.Update(msg)
	case fieldQuantity:
		f.quantity, cmd = f.quantity.Update(msg)
	case fieldDate:
		f.date, cmd = f.date.Update(msg)
	case fieldPhoto:
		f.photo, cmd = f.photo.Update(msg)
	case fieldNotes:
		f.notes, cmd = f.notes.Update(msg)
	}
	return cmd
}

func (f *formModel) cycleEnum(dir int) bool {
	switch f.focus {
	case fieldCategory:
		n := len(prize.Categories())
		f.categoryIdx = (f.categoryIdx + dir + n) % n
		return true
	case fieldManufacturer:
		n := len(prize.Manufacturers())
		f.manufacturerIdx = (f.manufacturerIdx + dir + n) % n
		return true
	}
	return false
}

func (f *formModel) setFocus(field formField) {
	f.name.Blur()
	f.quantity.Blur()
	f.date.Blur()
	f.photo.Blur()
	f.notes.Blur()

	f.focus = field
	switch field {
	case fieldName:
		f.name.Focus()
	case fieldQuantity:
		f.quantity.Focus()
	case fieldDate:
		f.date.Focus()
	case fieldPhoto:
		f.photo.Focus()
	case fieldNotes:
		f.notes.Focus()
	}
}

// submit validates the buffer and builds the record. On a validation
// failure it sets errMsg and reports false; the form stays open.
func (f *formModel) submit() (prize.Record, bool) {
	name := strings.TrimSpace(f.name.Value())
	if name == "" {
		f.errMsg = "name is required"
		return prize.Record{}, false
	}

	dateStr := strings.TrimSpace(f.date.Value())
	if dateStr == "" {
		f.errMsg = "acquisition date is required"
		return prize.Record{}, false
	}
	date, err := prize.ParseDate(dateStr)
	if err != nil {
		f.errMsg = "date must be YYYY-MM-DD"
		return prize.Record{}, false
	}

	qty := 1
	if qs := strings.TrimSpace(f.quantity.Value()); qs != "" {
		qty, err = strconv.Atoi(qs)
		if err != nil || qty < 0 {
			f.errMsg = "quantity must be a non-negative number"
			return prize.Record{}, false
		}
	}

	photo := f.existingPhoto
	if path := strings.TrimSpace(f.photo.Value()); path != "" {
		photo, err = prize.EncodePhoto(path)
		if err != nil {
			f.errMsg = fmt.Sprintf("photo: %v", err)
			return prize.Record{}, false
		}
	}

	id := f.editingID
	if id == "" {
		id = prize.NewIdentifier()
	}

	f.errMsg = ""
	return prize.Record{
		Identifier:      id,
		Name:            name,
		Category:        f.category(),
		Manufacturer:    f.manufacturer(),
		Quantity:        qty,
		AcquisitionDate: date,
		Photo:           photo,
		Notes:           f.notes.Value(),
	}, true
}
