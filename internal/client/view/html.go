package view

import (
	"io"
	"strings"
	"text/template"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeHTML escapes the five HTML metacharacters & < > " '.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

const cardTemplate = `{{define "card"}}<div class="sweet-card" data-id="{{.ID}}">
  <div class="sweet-card-header">
    <div class="sweet-card-title">{{esc .Name}}</div>
    <div class="sweet-card-category">{{esc .Category}}</div>
  </div>
  <div class="sweet-card-body">
    <p class="sweet-card-description">{{esc .Description}}</p>
    <div class="sweet-card-price">{{price .Price}}</div>
    <div class="sweet-card-quantity">
      <span class="quantity-label">Stock Available:</span>
      <span class="{{stockClass .Stock}}">{{.Quantity}}</span>
    </div>
  </div>
  <div class="sweet-card-footer">
    <button class="purchase-btn" data-action="purchase"{{if not .CanPurchase}} disabled{{end}}>{{.PurchaseLabel}}</button>
{{- if .ShowAdmin}}
    <div class="admin-actions">
      <button class="edit-btn" data-action="edit">Edit</button>
      <button class="delete-btn" data-action="delete">Delete</button>
    </div>
{{- end}}
  </div>
</div>
{{end}}{{define "grid"}}<div class="sweets-grid">
{{range .}}{{template "card" .}}{{else}}<p class="empty">` + emptyGridMsg + `</p>
{{end}}</div>
{{end}}`

var htmlTemplates = template.Must(template.New("html").Funcs(template.FuncMap{
	"esc":   EscapeHTML,
	"price": FormatPrice,
	"stockClass": func(s Stock) string {
		if s == StockNormal {
			return "quantity-value"
		}
		return "quantity-value " + string(s)
	},
}).Parse(cardTemplate))

// RenderGridHTML writes all cards, or the empty-grid message. Every text
// field is escaped.
func RenderGridHTML(w io.Writer, cards []Card) error {
	return htmlTemplates.ExecuteTemplate(w, "grid", cards)
}
