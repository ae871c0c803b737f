package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/dmitrijs2005/sweetshop/internal/client/api"
	"github.com/dmitrijs2005/sweetshop/internal/client/models"
	"github.com/dmitrijs2005/sweetshop/internal/client/session"
	"github.com/dmitrijs2005/sweetshop/internal/client/view"
	"github.com/dmitrijs2005/sweetshop/internal/common"
	"github.com/dmitrijs2005/sweetshop/internal/logging"
)

type State int

const (
	Unauthenticated State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

// Store is driven from a single goroutine and is not safe for concurrent use.
type Store struct {
	svc    Services
	tokens TokenStore
	codec  *session.Codec
	view   view.View
	logger logging.Logger

	token      string
	session    *session.Session
	all        []models.Sweet
	filtered   []models.Sweet
	criteria   Criteria
	adminPanel bool
}

func NewStore(svc Services, tokens TokenStore, codec *session.Codec, v view.View, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.Nop()
	}
	if codec == nil {
		codec = session.NewCodec(logger)
	}
	return &Store{
		svc:    svc,
		tokens: tokens,
		codec:  codec,
		view:   v,
		logger: logger.With("component", "store"),
	}
}

func (s *Store) State() State {
	if s.session == nil {
		return Unauthenticated
	}
	return Authenticated
}

// Session returns a copy of the current session, or nil.
func (s *Store) Session() *session.Session {
	if s.session == nil {
		return nil
	}
	cp := *s.session
	return &cp
}

func (s *Store) Token() string { return s.token }

func (s *Store) IsAdmin() bool {
	return s.session != nil && s.session.IsAdmin
}

// Items returns the full cached list.
func (s *Store) Items() []models.Sweet {
	return append([]models.Sweet(nil), s.all...)
}

// Visible returns the filtered list currently on screen.
func (s *Store) Visible() []models.Sweet {
	return append([]models.Sweet(nil), s.filtered...)
}

func (s *Store) Criteria() Criteria { return s.criteria }

func (s *Store) AdminPanelOpen() bool { return s.adminPanel }

// Find looks id up in the full cached list.
func (s *Store) Find(id int64) (models.Sweet, bool) {
	for _, sw := range s.all {
		if int64(sw.ID) == id {
			return sw, true
		}
	}
	return models.Sweet{}, false
}

// Init restores the persisted token. An absent, unreadable or undecodable
// token leaves the store unauthenticated.
func (s *Store) Init(ctx context.Context) error {
	token, err := s.tokens.Load(ctx)
	if err != nil {
		s.logger.Warn(ctx, "failed to load stored token", "error", err)
		token = ""
	}
	if token == "" {
		s.view.ShowAuth(view.FormLogin)
		return nil
	}

	if err := s.Authenticate(ctx, token); err != nil && !errors.Is(err, common.ErrInvalidToken) {
		return err
	}
	return nil
}

// Authenticate moves the store to Authenticated with token. A token that
// does not decode logs the store out and yields common.ErrInvalidToken.
func (s *Store) Authenticate(ctx context.Context, token string) error {
	sess := s.codec.Decode(ctx, token)
	if sess == nil {
		_ = s.Logout(ctx)
		return common.ErrInvalidToken
	}

	if err := s.tokens.SaveSession(ctx, token, sess.Username); err != nil {
		s.logger.Error(ctx, "failed to persist token", "error", err)
	}
	s.token = token
	s.session = sess
	s.adminPanel = false

	s.view.ShowDashboard(fmt.Sprintf("Welcome, %s!", sess.Username))
	s.view.SetAdminControls(sess.IsAdmin)
	s.logger.Info(ctx, "session started", "username", sess.Username, "admin", sess.IsAdmin)

	_ = s.ReloadItems(ctx)
	return nil
}

// LastUsername is the username of the previous session, or "".
func (s *Store) LastUsername(ctx context.Context) string {
	u, err := s.tokens.LastUsername(ctx)
	if err != nil {
		s.logger.Warn(ctx, "failed to load last username", "error", err)
		return ""
	}
	return u
}

// Logout clears the persisted token and every piece of session state.
func (s *Store) Logout(ctx context.Context) error {
	err := s.tokens.Clear(ctx)
	if err != nil {
		s.logger.Error(ctx, "failed to clear stored token", "error", err)
	}

	s.token = ""
	s.session = nil
	s.all = nil
	s.filtered = nil
	s.criteria = Criteria{}
	s.adminPanel = false

	s.view.ShowAuth(view.FormLogin)
	for _, f := range []view.Form{view.FormLogin, view.FormRegister, view.FormAddItem, view.FormFilter} {
		s.view.ResetForm(f)
	}
	s.view.ClearFieldErrors()
	return err
}

// Login validates form, exchanges the credentials for a token and
// authenticates with it. Every server-side failure is reported as invalid
// credentials.
func (s *Store) Login(ctx context.Context, form LoginForm) error {
	if err := form.Validate(); err != nil {
		s.view.FieldError(view.FormLogin, err.Error())
		return err
	}
	form = form.trimmed()

	resp, err := s.svc.Auth.Login(ctx, form.Username, form.Password)
	if err == nil && resp.Token == "" {
		err = common.ErrNoToken
	}
	if err != nil {
		s.callFailed(ctx, "login failed", err, "username", form.Username)
		s.view.FieldError(view.FormLogin, msgInvalidLogin)
		return err
	}

	return s.finishAuth(ctx, resp.Token, view.FormLogin, "Login successful!")
}

func (s *Store) Register(ctx context.Context, form RegisterForm) error {
	if err := form.Validate(); err != nil {
		s.view.FieldError(view.FormRegister, err.Error())
		return err
	}
	form = form.trimmed()

	resp, err := s.svc.Auth.Register(ctx, form.Username, form.Email, form.Password)
	if err == nil && resp.Token == "" {
		s.view.FieldError(view.FormRegister, "Registration failed: "+msgNoToken)
		return common.ErrNoToken
	}
	if err != nil {
		s.callFailed(ctx, "registration failed", err, "username", form.Username)
		s.view.FieldError(view.FormRegister, "Registration failed: "+err.Error())
		return err
	}

	return s.finishAuth(ctx, resp.Token, view.FormRegister, "Registration successful!")
}

func (s *Store) finishAuth(ctx context.Context, token string, form view.Form, success string) error {
	if err := s.Authenticate(ctx, token); err != nil {
		s.view.FieldError(form, msgInvalidLogin)
		return err
	}
	s.view.ResetForm(view.FormLogin)
	s.view.ResetForm(view.FormRegister)
	s.view.ClearFieldErrors()
	s.view.Notify(view.KindSuccess, success)
	return nil
}

// ReloadItems replaces both lists with the server's list. On failure the
// cached lists are kept.
func (s *Store) ReloadItems(ctx context.Context) error {
	list, err := s.svc.Sweets.List(ctx)
	if err != nil {
		s.callFailed(ctx, "failed to load sweets", err)
		s.view.Notify(view.KindError, msgLoadFailed)
		return err
	}
	if list == nil {
		list = []models.Sweet{}
	}

	s.all = list
	s.filtered = list
	s.criteria = Criteria{}
	s.render()
	return nil
}

// callFailed logs a failed API call along with the HTTP status, 0 when no
// response came back.
func (s *Store) callFailed(ctx context.Context, msg string, err error, args ...any) {
	s.logger.Warn(ctx, msg, append(args, "status", api.StatusOf(err), "error", err)...)
}

func (s *Store) render() {
	s.view.RenderItems(view.NewCards(s.filtered, s.IsAdmin()))
}

func (s *Store) requireItem(id int64) (models.Sweet, error) {
	sw, ok := s.Find(id)
	if !ok {
		s.view.Notify(view.KindError, msgNotFound)
		return models.Sweet{}, common.ErrNotFound
	}
	return sw, nil
}

// Purchase buys qtyInput units of item id. The quantity is checked before
// any network call.
func (s *Store) Purchase(ctx context.Context, id int64, qtyInput string) error {
	if _, err := s.requireItem(id); err != nil {
		return err
	}
	qty, err := ParseQuantity(qtyInput)
	if err != nil {
		return err
	}

	res, err := s.svc.Sweets.Purchase(ctx, id, qty, s.token)
	if err != nil {
		s.callFailed(ctx, "purchase failed", err, "id", id)
		s.view.Notify(view.KindError, "Purchase failed: "+err.Error())
		return err
	}

	s.view.Notify(view.KindSuccess, "Purchase successful! Total: $"+formatTotal(res.TotalPrice))
	_ = s.ReloadItems(ctx)
	return nil
}

func formatTotal(n models.Number) string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

// Delete removes item id when confirmed is true; otherwise it does nothing.
func (s *Store) Delete(ctx context.Context, id int64, confirmed bool) error {
	if !confirmed {
		return nil
	}

	if err := s.svc.Sweets.Delete(ctx, id, s.token); err != nil {
		s.callFailed(ctx, "delete failed", err, "id", id)
		s.view.Notify(view.KindError, "Failed to delete sweet: "+err.Error())
		return err
	}

	s.view.Notify(view.KindSuccess, "Sweet deleted successfully")
	_ = s.ReloadItems(ctx)
	return nil
}

func (s *Store) AddItem(ctx context.Context, form ItemForm) error {
	in, err := form.Input()
	if err != nil {
		s.view.Notify(view.KindError, err.Error())
		return err
	}

	if _, err := s.svc.Sweets.Create(ctx, in, s.token); err != nil {
		s.callFailed(ctx, "create failed", err, "name", in.Name)
		s.view.Notify(view.KindError, "Failed to add sweet: "+err.Error())
		return err
	}

	s.view.Notify(view.KindSuccess, "Sweet added successfully!")
	s.view.ResetForm(view.FormAddItem)
	_ = s.ReloadItems(ctx)
	return nil
}

func (s *Store) UpdateItem(ctx context.Context, id int64, form ItemForm) error {
	if _, err := s.requireItem(id); err != nil {
		return err
	}
	in, err := form.Input()
	if err != nil {
		s.view.Notify(view.KindError, err.Error())
		return err
	}

	if _, err := s.svc.Sweets.Update(ctx, id, in, s.token); err != nil {
		s.callFailed(ctx, "update failed", err, "id", id)
		s.view.Notify(view.KindError, "Failed to update sweet: "+err.Error())
		return err
	}

	s.view.Notify(view.KindSuccess, "Sweet updated successfully!")
	_ = s.ReloadItems(ctx)
	return nil
}

func (s *Store) Restock(ctx context.Context, id int64, qtyInput string) error {
	if _, err := s.requireItem(id); err != nil {
		return err
	}
	qty, err := ParseQuantity(qtyInput)
	if err != nil {
		return err
	}

	if err := s.svc.Sweets.Restock(ctx, id, qty, s.token); err != nil {
		s.callFailed(ctx, "restock failed", err, "id", id)
		s.view.Notify(view.KindError, "Restock failed: "+err.Error())
		return err
	}

	s.view.Notify(view.KindSuccess, "Sweet restocked successfully!")
	_ = s.ReloadItems(ctx)
	return nil
}

// ToggleAdminPanel shows or hides the admin panel. Non-admins get
// common.ErrForbidden; the server still authorizes every admin call.
func (s *Store) ToggleAdminPanel() error {
	if !s.IsAdmin() {
		return common.ErrForbidden
	}
	s.adminPanel = !s.adminPanel
	s.view.SetAdminPanel(s.adminPanel)
	return nil
}

// Filter narrows the visible list without touching the network.
func (s *Store) Filter(term, category string) {
	s.criteria = Criteria{Term: term, Category: category}
	s.filtered = Filter(s.all, term, category)
	s.render()
}

func (s *Store) ResetFilters() {
	s.criteria = Criteria{}
	s.filtered = s.all
	s.view.ResetForm(view.FormFilter)
	s.render()
}

// Categories lists the categories present in the cached list.
func (s *Store) Categories() []string {
	return Categories(s.all)
}

// ExportHTML writes the visible list as HTML cards.
func (s *Store) ExportHTML(w io.Writer) error {
	return view.RenderGridHTML(w, view.NewCards(s.filtered, s.IsAdmin()))
}

func (s *Store) requireAuth() error {
	if s.session == nil {
		return common.ErrNotAuthenticated
	}
	return nil
}

func (s *Store) requireAdmin() error {
	if err := s.requireAuth(); err != nil {
		return err
	}
	if !s.session.IsAdmin {
		return common.ErrForbidden
	}
	return nil
}

func (s *Store) History(ctx context.Context) ([]models.Purchase, error) {
	if err := s.requireAuth(); err != nil {
		return nil, err
	}
	list, err := s.svc.Purchases.History(ctx, s.token)
	if err != nil {
		s.callFailed(ctx, "history failed", err)
		s.view.Notify(view.KindError, "Failed to load purchase history: "+err.Error())
		return nil, err
	}
	return list, nil
}

func (s *Store) Receipt(ctx context.Context, id int64) (*models.Purchase, error) {
	if err := s.requireAuth(); err != nil {
		return nil, err
	}
	p, err := s.svc.Purchases.Get(ctx, id, s.token)
	if err != nil {
		s.callFailed(ctx, "receipt failed", err, "id", id)
		s.view.Notify(view.KindError, "Failed to load purchase: "+err.Error())
		return nil, err
	}
	return p, nil
}

func (s *Store) Dashboard(ctx context.Context) (models.DashboardStats, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}
	st, err := s.svc.Stats.Dashboard(ctx, s.token)
	if err != nil {
		s.callFailed(ctx, "stats failed", err)
		s.view.Notify(view.KindError, "Failed to load statistics: "+err.Error())
		return nil, err
	}
	return st, nil
}

// Sales fetches the sales report between two YYYY-MM-DD dates.
func (s *Store) Sales(ctx context.Context, start, end string) (models.SalesReport, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}
	start, err := ParseDate("start", start)
	if err != nil {
		return nil, err
	}
	end, err = ParseDate("end", end)
	if err != nil {
		return nil, err
	}

	rep, err := s.svc.Stats.Sales(ctx, start, end, s.token)
	if err != nil {
		s.callFailed(ctx, "sales report failed", err)
		s.view.Notify(view.KindError, "Failed to load sales report: "+err.Error())
		return nil, err
	}
	return rep, nil
}
