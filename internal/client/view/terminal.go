package view

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"text/tabwriter"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"github.com/dmitrijs2005/sweetshop/internal/client/models"
)

type Section int

const (
	SectionAuth Section = iota
	SectionDashboard
)

type Notification struct {
	Kind    Kind
	Message string
}

// State is a snapshot of what a TerminalView currently shows.
type State struct {
	Section       Section
	ActiveForm    Form
	Greeting      string
	AdminControls bool
	AdminPanel    bool
	Notification  *Notification
	FieldErrors   map[Form]string
	Cards         []Card
}

// TerminalView prints to an io.Writer. It is safe for concurrent use; the
// notification timer is the only goroutine besides the caller's.
type TerminalView struct {
	mu    sync.Mutex
	out   io.Writer
	delay time.Duration
	now   func() time.Time

	state     State
	notifySeq uint64
	timer     *time.Timer
}

// NewTerminalView writes to out. Notifications dismiss after delay; a
// non-positive delay keeps them until replaced.
func NewTerminalView(out io.Writer, delay time.Duration) *TerminalView {
	return &TerminalView{
		out:   out,
		delay: delay,
		now:   time.Now,
		state: State{FieldErrors: map[Form]string{}},
	}
}

// State returns a copy of the current view state.
func (v *TerminalView) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()

	s := v.state
	s.FieldErrors = make(map[Form]string, len(v.state.FieldErrors))
	for k, msg := range v.state.FieldErrors {
		s.FieldErrors[k] = msg
	}
	s.Cards = append([]Card(nil), v.state.Cards...)
	if v.state.Notification != nil {
		n := *v.state.Notification
		s.Notification = &n
	}
	return s
}

func (v *TerminalView) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(v.out, format, args...)
}

func (v *TerminalView) ShowAuth(form Form) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.state.Section = SectionAuth
	v.state.ActiveForm = form
	v.state.Greeting = ""
	v.state.AdminControls = false
	v.state.AdminPanel = false
	v.state.Cards = nil
	v.printf("Please %s to continue (type \"help\" for commands).\n", authVerb(form))
}

func authVerb(f Form) string {
	if f == FormRegister {
		return "register"
	}
	return "login"
}

func (v *TerminalView) ShowDashboard(greeting string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.state.Section = SectionDashboard
	v.state.Greeting = greeting
	v.printf("%s\n", greeting)
}

func (v *TerminalView) SetAdminControls(visible bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.state.AdminControls = visible
	if !visible {
		v.state.AdminPanel = false
	}
}

func (v *TerminalView) SetAdminPanel(visible bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.state.AdminPanel == visible {
		return
	}
	v.state.AdminPanel = visible
	if visible {
		v.printf("Admin panel opened: add, edit <id>, delete <id>, restock <id>, stats, sales.\n")
	} else {
		v.printf("Admin panel closed.\n")
	}
}

func (v *TerminalView) RenderItems(cards []Card) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.state.Cards = append([]Card(nil), cards...)
	if len(cards) == 0 {
		v.printf("%s\n", emptyGridMsg)
		return
	}

	tw := tabwriter.NewWriter(v.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK\tACTION")
	for _, c := range cards {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			c.ID, c.Name, c.Category, FormatPrice(c.Price), stockCell(c), actionCell(c))
	}
	_ = tw.Flush()
}

func stockCell(c Card) string {
	switch c.Stock {
	case StockOutOfStock:
		return "0 (out of stock)"
	case StockLow:
		return fmt.Sprintf("%d (low)", c.Quantity)
	}
	return fmt.Sprintf("%d", c.Quantity)
}

func actionCell(c Card) string {
	label := "buy " + fmt.Sprint(c.ID)
	if !c.CanPurchase {
		label = c.PurchaseLabel
	}
	if c.ShowAdmin {
		label += " | edit | delete"
	}
	return label
}

// Notify prints message and keeps it in the notification slot until the
// delay elapses or another notification replaces it.
func (v *TerminalView) Notify(kind Kind, message string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.state.Notification = &Notification{Kind: kind, Message: message}
	v.printf("[%s] %s\n", strings.ToUpper(kind.String()), message)

	v.notifySeq++
	if v.timer != nil {
		v.timer.Stop()
		v.timer = nil
	}
	if v.delay <= 0 {
		return
	}
	seq := v.notifySeq
	v.timer = time.AfterFunc(v.delay, func() { v.dismiss(seq) })
}

func (v *TerminalView) dismiss(seq uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if seq != v.notifySeq {
		return
	}
	v.state.Notification = nil
	v.timer = nil
}

// Close stops a pending notification timer.
func (v *TerminalView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.timer != nil {
		v.timer.Stop()
		v.timer = nil
	}
}

func (v *TerminalView) FieldError(form Form, message string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.state.FieldErrors[form] = message
	v.printf("! %s\n", message)
}

func (v *TerminalView) ClearFieldErrors() {
	v.mu.Lock()
	defer v.mu.Unlock()

	clear(v.state.FieldErrors)
}

// ResetForm drops the inline error of form. Terminal forms keep no drafts.
func (v *TerminalView) ResetForm(form Form) {
	v.mu.Lock()
	defer v.mu.Unlock()

	delete(v.state.FieldErrors, form)
}

// Print writes a plain line of output.
func (v *TerminalView) Print(a ...any) {
	v.mu.Lock()
	defer v.mu.Unlock()

	_, _ = fmt.Fprintln(v.out, a...)
}

// RenderDetail prints every field of one card.
func (v *TerminalView) RenderDetail(c Card) {
	v.mu.Lock()
	defer v.mu.Unlock()

	tw := tabwriter.NewWriter(v.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%d\n", c.ID)
	fmt.Fprintf(tw, "Name:\t%s\n", c.Name)
	fmt.Fprintf(tw, "Category:\t%s\n", c.Category)
	fmt.Fprintf(tw, "Description:\t%s\n", c.Description)
	fmt.Fprintf(tw, "Price:\t%s\n", FormatPrice(c.Price))
	fmt.Fprintf(tw, "Stock Available:\t%s\n", stockCell(c))
	fmt.Fprintf(tw, "Action:\t%s\n", actionCell(c))
	_ = tw.Flush()
}

// RenderPurchases prints a purchase history table.
func (v *TerminalView) RenderPurchases(list []models.Purchase) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if len(list) == 0 {
		v.printf("No purchases yet\n")
		return
	}

	tw := tabwriter.NewWriter(v.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSWEET\tQTY\tTOTAL\tDATE")
	for _, p := range list {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n",
			p.ID, p.SweetName, p.Quantity, FormatPrice(float64(p.TotalPrice)), v.when(p.PurchasedAt))
	}
	_ = tw.Flush()
}

// RenderReceipt prints one purchase.
func (v *TerminalView) RenderReceipt(p models.Purchase) {
	v.mu.Lock()
	defer v.mu.Unlock()

	tw := tabwriter.NewWriter(v.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Receipt:\t#%d\n", p.ID)
	fmt.Fprintf(tw, "Sweet:\t%s (#%d)\n", p.SweetName, p.SweetID)
	fmt.Fprintf(tw, "Quantity:\t%d\n", p.Quantity)
	fmt.Fprintf(tw, "Total:\t%s\n", FormatPrice(float64(p.TotalPrice)))
	fmt.Fprintf(tw, "Date:\t%s\n", v.when(p.PurchasedAt))
	_ = tw.Flush()
}

func (v *TerminalView) when(raw string) string {
	t, err := ParseTimestamp(raw)
	if err != nil {
		return raw
	}
	return FormatDate(t) + " (" + humanize.RelTime(t, v.now(), "ago", "from now") + ")"
}

// RenderReport prints a flat JSON object as sorted key/value lines. Nested
// objects are indented.
func (v *TerminalView) RenderReport(title string, report map[string]any) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.printf("%s\n", title)
	tw := tabwriter.NewWriter(v.out, 0, 4, 2, ' ', 0)
	writeReport(tw, report, "  ")
	_ = tw.Flush()
}

func writeReport(w io.Writer, m map[string]any, indent string) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		label := humanLabel(k)
		switch val := m[k].(type) {
		case map[string]any:
			fmt.Fprintf(w, "%s%s:\t\n", indent, label)
			writeReport(w, val, indent+"  ")
		case []any:
			fmt.Fprintf(w, "%s%s:\t%d item(s)\n", indent, label, len(val))
			for i, item := range val {
				if obj, ok := item.(map[string]any); ok {
					fmt.Fprintf(w, "%s  #%d\t\n", indent, i+1)
					writeReport(w, obj, indent+"    ")
					continue
				}
				fmt.Fprintf(w, "%s  -\t%v\n", indent, item)
			}
		case float64:
			fmt.Fprintf(w, "%s%s:\t%s\n", indent, label, reportNumber(k, val))
		case nil:
			fmt.Fprintf(w, "%s%s:\t-\n", indent, label)
		default:
			fmt.Fprintf(w, "%s%s:\t%v\n", indent, label, val)
		}
	}
}

func reportNumber(key string, f float64) string {
	if strings.Contains(key, "revenue") || strings.Contains(key, "price") || strings.Contains(key, "sales") {
		return FormatPrice(f)
	}
	if f == float64(int64(f)) {
		return humanize.Comma(int64(f))
	}
	return humanize.Commaf(f)
}

// humanLabel turns "total_sales" into "Total sales".
func humanLabel(key string) string {
	s := strings.ReplaceAll(key, "_", " ")
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
