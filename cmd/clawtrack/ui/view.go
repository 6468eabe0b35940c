// Package ui provides the interactive terminal interface for clawtrack.
// This file contains the view rendering functions.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"clawtrack/internal/inventory"
	"clawtrack/internal/prize"
)

// View implements tea.Model.
func (m Model) View() string {
	var body string
	switch m.mode {
	case modeForm:
		body = m.renderForm()
	case modeConfirm:
		body = m.renderConfirm()
	case modeDetail:
		body = m.detail.View()
	default:
		body = m.renderList()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderFooter(),
	)
}

func (m Model) renderHeader() string {
	title := m.styles.Header.Render("🧸 clawtrack")
	sub := m.styles.Subtitle.Render(fmt.Sprintf("%d prizes", m.col.Len()))
	return lipgloss.JoinHorizontal(lipgloss.Center, title, " ", sub)
}

func (m Model) renderList() string {
	var top string
	if m.searching || m.query.Search != "" {
		top = m.styles.Body.Render("🔍 ") + m.search.View()
	} else {
		top = m.styles.Muted.Render("press / to search")
	}

	cat := "all"
	if m.query.Category != "" && m.query.Category != prize.CategoryAll {
		cat = string(m.query.Category)
	}
	filters := m.styles.Muted.Render(fmt.Sprintf("category: %s · sort: %s", cat, m.query.Sort))

	var empty string
	if len(m.prizeList.Items()) == 0 {
		empty = m.styles.Muted.Render("\n  nothing here — press a to add your first prize")
	}

	return lipgloss.JoinVertical(lipgloss.Left, top, filters, m.prizeList.View()+empty)
}

func (m Model) renderForm() string {
	f := m.form
	if f == nil {
		return ""
	}

	title := "Add prize"
	if f.editingID != "" {
		title = "Edit prize"
	}

	label := func(field formField, name string) string {
		if f.focus == field {
			return m.styles.FieldName.Render("▸ " + name)
		}
		return m.styles.Muted.Render("  " + name)
	}
	enum := func(field formField, value string) string {
		if f.focus == field {
			return m.styles.Bold.Render("← " + value + " →")
		}
		return m.styles.Body.Render(value)
	}

	photoLine := f.photo.View()
	if f.existingPhoto != "" && strings.TrimSpace(f.photo.Value()) == "" {
		photoLine += m.styles.Muted.Render("  (keeping current photo)")
	}

	rows := []string{
		m.styles.Title.Render(title),
		"",
		label(fieldName, "Name         ") + f.name.View(),
		label(fieldCategory, "Category     ") + enum(fieldCategory, string(f.category())),
		label(fieldManufacturer, "Manufacturer ") + enum(fieldManufacturer, string(f.manufacturer())),
		label(fieldQuantity, "Quantity     ") + f.quantity.View(),
		label(fieldDate, "Date         ") + f.date.View(),
		label(fieldPhoto, "Photo        ") + photoLine,
		label(fieldNotes, "Notes        "),
		f.notes.View(),
	}

	if f.errMsg != "" {
		rows = append(rows, "", m.styles.Error.Render("✗ "+f.errMsg))
	}

	return m.styles.Card.Render(strings.Join(rows, "\n"))
}

func (m Model) renderConfirm() string {
	msg := fmt.Sprintf("Delete %q?", m.confirmName)
	dialog := lipgloss.JoinVertical(lipgloss.Center,
		m.styles.Bold.Render(msg),
		"",
		m.styles.Muted.Render("y: delete    n: keep"),
	)
	return m.styles.Dialog.Render(dialog)
}

// renderDetail builds the detail pane content for one record. Notes are
// rendered as markdown.
func (m Model) renderDetail(rec prize.Record) string {
	field := func(name, value string) string {
		return m.styles.FieldName.Render(name) + " " + m.styles.Body.Render(value)
	}

	photo := "none"
	if rec.Photo != "" {
		photo = fmt.Sprintf("embedded (%d bytes)", len(rec.Photo))
	}

	sections := []string{
		m.styles.Title.Render(rec.Name),
		m.styles.Badge.Render(string(rec.Category)),
		"",
		field("Manufacturer:", string(rec.Manufacturer)),
		field("Quantity:    ", fmt.Sprintf("%d", rec.Quantity)),
		field("Acquired:    ", rec.AcquisitionDate.String()),
		field("Photo:       ", photo),
	}

	if rec.Notes != "" {
		sections = append(sections, "", m.styles.FieldName.Render("Notes"), m.safeRenderMarkdown(rec.Notes))
	}

	return strings.Join(sections, "\n")
}

// safeRenderMarkdown renders markdown with panic recovery; glamour can
// choke on pathological input and the notes field is free text.
func (m Model) safeRenderMarkdown(content string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			m.log.Warn("markdown render panicked", zap.Any("panic", r))
			result = content
		}
	}()

	if m.renderer == nil {
		return content
	}
	rendered, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

func (m Model) renderFooter() string {
	var keys string
	switch m.mode {
	case modeForm:
		keys = "enter/ctrl+s save · esc cancel · tab next field"
	case modeConfirm:
		keys = "y confirm · n cancel"
	case modeDetail:
		keys = "e edit · d delete · esc back"
	default:
		keys = "a add · e edit · d delete · enter view · +/- qty · / search · c category · s sort · q quit"
	}

	var status string
	switch m.status {
	case inventory.StatusSaving:
		status = m.styles.Warning.Render("● saving…")
	case inventory.StatusSaved:
		status = m.styles.Success.Render("✓ saved")
	}

	footer := m.styles.Footer.Render(keys)
	if status != "" {
		footer += "  " + status
	}
	return footer
}
