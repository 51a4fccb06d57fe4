package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/clcollins/hero/pkg/incidents"
	"github.com/clcollins/hero/pkg/tui/style"
)

const (
	initialTableHeight = 20
	initialTableWidth  = 100

	idWidth    = 6
	valueWidth = 16
)

func incidentColumns(width int) []table.Column {
	cellPadding := style.HorizontalPadding * 2 * 4
	rest := max(width-idWidth-valueWidth-cellPadding, 20)
	nameWidth := rest / 3

	return []table.Column{
		{Title: "ID", Width: idWidth},
		{Title: "ONG", Width: nameWidth},
		{Title: "CASO", Width: rest - nameWidth},
		{Title: "VALOR", Width: valueWidth},
	}
}

func newTableWithStyles() table.Model {
	t := table.New(
		table.WithColumns(incidentColumns(initialTableWidth)),
		table.WithRows([]table.Row{}),
		table.WithFocused(true),
		table.WithHeight(initialTableHeight),
	)
	t.SetStyles(style.Table)
	return t
}

func incidentRows(l []incidents.Incident) []table.Row {
	rows := make([]table.Row, 0, len(l))
	for _, i := range l {
		rows = append(rows, table.Row{i.ID.String(), i.Name, i.Title, incidents.FormatValue(i.Value)})
	}
	return rows
}
