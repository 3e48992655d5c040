package table

import (
	"html/template"
	"io"
)

var gridTemplate = template.Must(template.New("grid").Parse(`<table class="grid">
<thead><tr>{{range .Headers}}<th data-key="{{.Key}}"{{if .Sortable}} data-sortable="true"{{end}}{{if .Direction}} aria-sort="{{if eq .Direction "asc"}}ascending{{else}}descending{{end}}"{{end}}>{{.Label}}</th>{{end}}</tr></thead>
<tbody>
{{- if .Loading}}{{range $.Skeleton}}
<tr class="skeleton"><td colspan="{{len $.Headers}}"></td></tr>
{{- end}}{{else}}{{range .Rows}}
<tr{{if $.Empty}} class="empty"{{end}}>{{range .Cells}}<td{{if .ColSpan}} colspan="{{.ColSpan}}"{{end}}>{{.Text}}</td>{{end}}</tr>
{{- end}}{{end}}
</tbody>
</table>
`))

// WriteHTML renders the grid as an HTML table. A loading grid renders
// SkeletonRows empty rows.
func (g Grid) WriteHTML(w io.Writer) error {
	return gridTemplate.Execute(w, struct {
		Grid
		Skeleton []struct{}
	}{g, make([]struct{}, SkeletonRows)})
}
