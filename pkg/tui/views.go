package tui

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/clcollins/hero/pkg/incidents"
	"github.com/clcollins/hero/pkg/pager"
	"github.com/clcollins/hero/pkg/tui/style"
	"github.com/dustin/go-humanize"
)

const (
	dot       = "•"
	upArrow   = "↑"
	downArrow = "↓"

	logoText        = "Be The Hero"
	welcomeText     = "Bem-vindo!"
	descriptionText = "Escolha um dos casos abaixo e salve o dia."
)

func (m model) View() string {
	var s strings.Builder

	switch {
	case m.err != nil:
		log.Debug("View", "error", m.err)

		s.WriteString(dot)
		s.WriteString("ERROR")
		s.WriteString(dot)
		s.WriteString("\n\n")
		s.WriteString(m.err.Error())
		s.WriteString("\n\n")
		s.WriteString(help.New().View(errorViewKeyMap))

		return style.Error.Render(s.String())

	case m.screen == DetailScreen:
		s.WriteString(m.renderHeader(0))
		s.WriteString("\n")
		s.WriteString(style.IncidentViewer.Render(m.incidentViewer.View()))
		s.WriteString("\n")
		s.WriteString(m.renderFooter())
		s.WriteString("\n")
		s.WriteString(style.Help.Render(m.help.View(detailKeyMap)))

	default:
		s.WriteString(m.renderHeader(m.scrollOffset()))
		s.WriteString("\n")
		s.WriteString(m.renderList())
		s.WriteString("\n")
		s.WriteString(m.renderFooter())
		s.WriteString("\n")
		s.WriteString(style.Help.Render(m.help.View(defaultKeyMap)))
	}

	return style.Main.Render(s.String())
}

// renderHeader draws the logo, the total and the welcome text. The header
// collapses as the list scrolls: the welcome title dims then disappears,
// and the description goes first.
func (m model) renderHeader(scroll float64) string {
	layout := layoutHeader(scroll)

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		style.Logo.Render(logoText),
		"   ",
		style.HeaderText.Render(totalArea(m.pager.Total())),
	)

	lines := []string{top}
	if layout.showTitle() {
		title := style.Title
		if layout.boldTitle() {
			title = title.Bold(true)
		}
		lines = append(lines, title.Render(welcomeText))
	}
	if layout.showDescription() {
		lines = append(lines, style.Description.Render(descriptionText))
	}

	n := min(len(lines), layout.lines())
	return strings.Join(lines[:n], "\n")
}

func totalArea(total int) string {
	return fmt.Sprintf("Total de %s casos.", humanize.FormatInteger("#.###,", total))
}

// renderList draws the table indented and tinted by the entrance animation
func (m model) renderList() string {
	body := style.TableContainer.Render(m.table.View())
	if len(m.table.Rows()) == 0 {
		body = style.TableContainer.Render(emptyListArea(m.pager))
	}

	return lipgloss.NewStyle().
		MarginLeft(m.entrance.indent()).
		Foreground(m.entrance.color()).
		Render(body)
}

func emptyListArea(p *pager.Pager) string {
	switch {
	case p.Loading():
		return loadingIncidentsStatus
	case p.Exhausted():
		return "Nenhum caso encontrado."
	}
	return ""
}

func (m model) renderFooter() string {
	status := statusArea(m.listStatus())
	if m.pager.Loading() {
		status = m.spinner.View() + " " + status
	}

	if m.pager.Status() == pager.Failed {
		return style.Warning.Render(status)
	}

	if m.debug && m.status != "" {
		status += "  " + style.HeaderText.Render(m.status)
	}
	return style.Status.Render(status)
}

// listStatus describes the pager state for the footer
func (m model) listStatus() string {
	p := m.pager
	switch {
	case p.Refreshing():
		return refreshingIncidentsStatus
	case p.Loading():
		return loadingIncidentsStatus
	case p.Status() == pager.Failed:
		return fmt.Sprintf("falha ao carregar: %v (R para tentar novamente)", p.Err())
	case p.Exhausted():
		return fmt.Sprintf("todos os %d casos carregados", p.Len())
	case p.Len() > 0:
		return fmt.Sprintf("mostrando %d de %d casos", p.Len(), p.Total())
	}
	return ""
}

func statusArea(s string) string {
	var fstring = "> %s"
	return strings.TrimSuffix(fmt.Sprintf(fstring, s), "\n")
}

type incidentSummary struct {
	ID          string
	Title       string
	Name        string
	City        string
	UF          string
	Value       string
	Description string
	Email       string
	WhatsApp    string
	WhatsAppURL string
}

func summarizeIncident(i incidents.Incident) incidentSummary {
	s := incidentSummary{
		ID:          i.ID.String(),
		Title:       i.Title,
		Name:        i.Name,
		City:        i.City,
		UF:          i.UF,
		Value:       incidents.FormatValue(i.Value),
		Description: i.Description,
		Email:       i.Email,
		WhatsApp:    i.WhatsApp,
	}

	if digits := onlyDigits(i.WhatsApp); digits != "" {
		s.WhatsAppURL = "https://wa.me/" + digits
	}
	return s
}

func onlyDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

func incidentMarkdown(i incidents.Incident) (string, error) {
	t, err := template.New("incident").Funcs(funcMap).Parse(incidentTemplate)
	if err != nil {
		return "", err
	}

	o := new(bytes.Buffer)
	if err := t.Execute(o, summarizeIncident(i)); err != nil {
		return "", err
	}

	return o.String(), nil
}

var funcMap = template.FuncMap{
	"ToLink": func(s, link string) string {
		return fmt.Sprintf("[%s](%s)", s, link)
	},
	"ToUpper": strings.ToUpper,
}

const incidentTemplate = `# {{ .Title }}

* CASO: {{ .ID }}
* ONG: **{{ .Name }}**
{{- if .City }}
* Local: {{ .City }}{{ if .UF }}/{{ .UF }}{{ end }}
{{- end }}
* VALOR: **{{ .Value }}**

## Descrição

{{ if .Description -}}
{{ .Description }}
{{- else -}}
_sem descrição_
{{- end }}

## Contato

{{ if or .Email .WhatsApp -}}
{{ if .Email }}* E-mail: {{ ToLink .Email (printf "mailto:%s" .Email) }}
{{ end -}}
{{ if .WhatsAppURL }}* WhatsApp: {{ ToLink .WhatsApp .WhatsAppURL }}
{{ end -}}
{{- else -}}
_nenhum contato informado_
{{- end }}
`

// renderIncidentMarkdown renders with r, or returns the raw markdown when no
// renderer could be created
func renderIncidentMarkdown(r *glamour.TermRenderer, content string) (string, error) {
	if r == nil {
		return content, nil
	}

	str, err := r.Render(content)
	if err != nil {
		return str, err
	}

	return str, nil
}
