// Package view renders the storefront. Rendering code talks to semantic
// slots (auth section, dashboard, item grid, notification) and never to a
// concrete widget; TerminalView is the implementation used by the REPL.
package view

// Kind classifies a transient notification.
type Kind int

const (
	KindInfo Kind = iota
	KindSuccess
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	default:
		return "info"
	}
}

// Form names an input form owned by the view.
type Form int

const (
	FormLogin Form = iota
	FormRegister
	FormAddItem
	FormFilter
)

func (f Form) String() string {
	switch f {
	case FormLogin:
		return "login"
	case FormRegister:
		return "register"
	case FormAddItem:
		return "add-item"
	case FormFilter:
		return "filter"
	}
	return "unknown"
}

// View is the set of slots the application controller drives.
type View interface {
	// ShowAuth hides the dashboard and shows the auth section with form active.
	ShowAuth(form Form)
	// ShowDashboard hides the auth section and shows the dashboard.
	ShowDashboard(greeting string)
	SetAdminControls(visible bool)
	SetAdminPanel(visible bool)
	RenderItems(cards []Card)
	// Notify shows a transient message that dismisses itself.
	Notify(kind Kind, message string)
	// FieldError shows an inline error banner on form.
	FieldError(form Form, message string)
	ClearFieldErrors()
	ResetForm(form Form)
}
