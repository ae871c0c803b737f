// Package apitest provides an in-process fake of the sweet shop REST API
// for tests. It keeps its state in memory, issues HS256 tokens shaped like
// the real backend's and records every request it receives.
package apitest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
)

// Call is one request seen by the fake.
type Call struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Body   []byte
}

// Sweet is the fake's own storage record.
type Sweet struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

type purchase struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"user_id"`
	SweetID     int64   `json:"sweet_id"`
	SweetName   string  `json:"sweet_name"`
	Quantity    int     `json:"quantity"`
	TotalPrice  float64 `json:"total_price"`
	PurchasedAt string  `json:"purchase_date"`
}

type user struct {
	ID       int64
	Username string
	Email    string
	Password string
	IsAdmin  bool
}

type failure struct {
	status int
	body   string
	// handled runs the real handler first and replaces only its reply.
	handled bool
}

// FakeShop is a running fake API server. URL holds its base address.
type FakeShop struct {
	*httptest.Server

	Secret   []byte
	TokenTTL time.Duration

	mu        sync.Mutex
	calls     []Call
	users     map[string]*user
	sweets    []*Sweet
	purchases []purchase
	nextID    int64
	failures  map[string]failure
}

// NewFakeShop starts a fake server that is closed when the test ends.
func NewFakeShop(t testing.TB) *FakeShop {
	t.Helper()

	f := &FakeShop{
		Secret:   []byte("fake-shop-secret"),
		TokenTTL: time.Hour,
		users:    make(map[string]*user),
		failures: make(map[string]failure),
		nextID:   1,
	}
	f.Server = httptest.NewServer(f.recorder(f.router()))
	t.Cleanup(f.Close)
	return f
}

func (f *FakeShop) router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/auth/register", f.register).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", f.login).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/validate", f.validate).Methods(http.MethodPost)

	r.HandleFunc("/api/sweets", f.listSweets).Methods(http.MethodGet)
	r.HandleFunc("/api/sweets", f.admin(f.createSweet)).Methods(http.MethodPost)
	r.HandleFunc("/api/sweets/search", f.searchSweets).Methods(http.MethodGet)
	r.HandleFunc("/api/sweets/{id:[0-9]+}", f.getSweet).Methods(http.MethodGet)
	r.HandleFunc("/api/sweets/{id:[0-9]+}", f.admin(f.updateSweet)).Methods(http.MethodPut)
	r.HandleFunc("/api/sweets/{id:[0-9]+}", f.admin(f.deleteSweet)).Methods(http.MethodDelete)
	r.HandleFunc("/api/sweets/{id:[0-9]+}/purchase", f.authed(f.purchaseSweet)).Methods(http.MethodPost)
	r.HandleFunc("/api/sweets/{id:[0-9]+}/restock", f.admin(f.restockSweet)).Methods(http.MethodPost)

	r.HandleFunc("/api/purchases/history", f.authed(f.history)).Methods(http.MethodGet)
	r.HandleFunc("/api/purchases/{id:[0-9]+}", f.authed(f.getPurchase)).Methods(http.MethodGet)

	r.HandleFunc("/api/admin/stats", f.admin(f.stats)).Methods(http.MethodGet)
	r.HandleFunc("/api/admin/sales", f.admin(f.sales)).Methods(http.MethodGet)

	return r
}

// recorder logs the call and applies any failure queued with FailNext.
func (f *FakeShop) recorder(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()
		r.Body = io.NopCloser(strings.NewReader(string(body)))

		f.mu.Lock()
		f.calls = append(f.calls, Call{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Auth:   r.Header.Get("Authorization"),
			Body:   body,
		})
		key := r.Method + " " + r.URL.Path
		fail, ok := f.failures[key]
		if ok {
			delete(f.failures, key)
		}
		f.mu.Unlock()

		if ok {
			if fail.handled {
				next.ServeHTTP(httptest.NewRecorder(), r)
			}
			w.Header().Set("Content-Type", "text/plain")
			w.WriteHeader(fail.status)
			_, _ = io.WriteString(w, fail.body)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// FailNext makes the next request for method and path answer with status
// and a text/plain body, without touching the fake's state.
func (f *FakeShop) FailNext(method, path string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[method+" "+path] = failure{status: status, body: body}
}

// PlainReplyNext lets the next request for method and path take effect but
// answers it with 200 and a text/plain body.
func (f *FakeShop) PlainReplyNext(method, path, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[method+" "+path] = failure{status: http.StatusOK, body: body, handled: true}
}

// Calls returns a copy of the recorded requests.
func (f *FakeShop) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// ResetCalls forgets the recorded requests.
func (f *FakeShop) ResetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

// AddUser registers an account directly and returns a token for it.
func (f *FakeShop) AddUser(username, password, email string, isAdmin bool) string {
	f.mu.Lock()
	u := &user{ID: f.nextID, Username: username, Email: email, Password: password, IsAdmin: isAdmin}
	f.nextID++
	f.users[username] = u
	f.mu.Unlock()
	return f.issue(u)
}

// AddSweet stores s, assigns it an id and returns that id.
func (f *FakeShop) AddSweet(s Sweet) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	s.ID = f.nextID
	f.nextID++
	f.sweets = append(f.sweets, &s)
	return s.ID
}

// Sweet returns a copy of the stored sweet with the given id.
func (f *FakeShop) Sweet(id int64) (Sweet, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s := f.find(id); s != nil {
		return *s, true
	}
	return Sweet{}, false
}

// MintToken signs claims with secret using HS256.
func MintToken(secret []byte, claims jwt.MapClaims) string {
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		panic(err)
	}
	return s
}

// issue mirrors the real backend, which stores every claim as a string.
func (f *FakeShop) issue(u *user) string {
	return MintToken(f.Secret, jwt.MapClaims{
		"username": u.Username,
		"email":    u.Email,
		"is_admin": strconv.FormatBool(u.IsAdmin),
		"user_id":  strconv.FormatInt(u.ID, 10),
		"exp":      time.Now().Add(f.TokenTTL).Unix(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (f *FakeShop) find(id int64) *Sweet {
	for _, s := range f.sweets {
		if s.ID == id {
			return s
		}
	}
	return nil
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

func (f *FakeShop) parse(r *http.Request) (*user, error) {
	raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || raw == "" {
		return nil, errors.New("missing token")
	}
	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) { return f.Secret, nil }); err != nil {
		return nil, err
	}
	name, _ := claims["username"].(string)

	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[name]
	if !ok {
		return nil, errors.New("unknown user")
	}
	return u, nil
}

type handlerWithUser func(w http.ResponseWriter, r *http.Request, u *user)

func (f *FakeShop) authed(next handlerWithUser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := f.parse(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next(w, r, u)
	}
}

func (f *FakeShop) admin(next handlerWithUser) http.HandlerFunc {
	return f.authed(func(w http.ResponseWriter, r *http.Request, u *user) {
		if !u.IsAdmin {
			writeError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next(w, r, u)
	})
}

func (f *FakeShop) register(w http.ResponseWriter, r *http.Request) {
	var req struct{ Username, Email, Password string }
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	f.mu.Lock()
	if _, exists := f.users[req.Username]; exists {
		f.mu.Unlock()
		writeJSON(w, http.StatusConflict, map[string]string{"message": "Username already exists"})
		return
	}
	u := &user{ID: f.nextID, Username: req.Username, Email: req.Email, Password: req.Password}
	f.nextID++
	f.users[u.Username] = u
	f.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]string{"message": "registered", "username": u.Username, "token": f.issue(u)})
}

func (f *FakeShop) login(w http.ResponseWriter, r *http.Request) {
	var req struct{ Username, Password string }
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	f.mu.Lock()
	u, ok := f.users[req.Username]
	f.mu.Unlock()
	if !ok || u.Password != req.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": f.issue(u), "username": u.Username})
}

func (f *FakeShop) validate(w http.ResponseWriter, r *http.Request) {
	var req struct{ Token string }
	_ = json.NewDecoder(r.Body).Decode(&req)

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(req.Token, claims, func(*jwt.Token) (any, error) { return f.Secret, nil })
	name, _ := claims["username"].(string)
	writeJSON(w, http.StatusOK, map[string]any{"valid": err == nil, "username": name})
}

func (f *FakeShop) listSweets(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	out := make([]Sweet, 0, len(f.sweets))
	for _, s := range f.sweets {
		out = append(out, *s)
	}
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (f *FakeShop) searchSweets(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	term := strings.ToLower(q.Get("q"))
	category := q.Get("category")
	minPrice, minErr := strconv.ParseFloat(q.Get("minPrice"), 64)
	maxPrice, maxErr := strconv.ParseFloat(q.Get("maxPrice"), 64)

	f.mu.Lock()
	out := make([]Sweet, 0)
	for _, s := range f.sweets {
		if term != "" && !strings.Contains(strings.ToLower(s.Name), term) && !strings.Contains(strings.ToLower(s.Description), term) {
			continue
		}
		if category != "" && s.Category != category {
			continue
		}
		if minErr == nil && s.Price < minPrice {
			continue
		}
		if maxErr == nil && s.Price > maxPrice {
			continue
		}
		out = append(out, *s)
	}
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (f *FakeShop) getSweet(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	s := f.find(pathID(r))
	var out Sweet
	if s != nil {
		out = *s
	}
	f.mu.Unlock()

	if s == nil {
		writeError(w, http.StatusNotFound, "Sweet not found")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (f *FakeShop) createSweet(w http.ResponseWriter, r *http.Request, _ *user) {
	var in Sweet
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Name == "" {
		writeError(w, http.StatusBadRequest, "Invalid sweet")
		return
	}
	id := f.AddSweet(in)
	in.ID = id
	writeJSON(w, http.StatusCreated, in)
}

func (f *FakeShop) updateSweet(w http.ResponseWriter, r *http.Request, _ *user) {
	var in Sweet
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid sweet")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	s := f.find(pathID(r))
	if s == nil {
		writeError(w, http.StatusNotFound, "Sweet not found")
		return
	}
	in.ID = s.ID
	*s = in
	writeJSON(w, http.StatusOK, in)
}

func (f *FakeShop) deleteSweet(w http.ResponseWriter, r *http.Request, _ *user) {
	id := pathID(r)

	f.mu.Lock()
	defer f.mu.Unlock()
	for i, s := range f.sweets {
		if s.ID == id {
			f.sweets = append(f.sweets[:i], f.sweets[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "Sweet deleted"})
			return
		}
	}
	writeError(w, http.StatusNotFound, "Sweet not found")
}

func (f *FakeShop) purchaseSweet(w http.ResponseWriter, r *http.Request, u *user) {
	var req struct{ Quantity int }
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Quantity <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid quantity")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	s := f.find(pathID(r))
	if s == nil {
		writeError(w, http.StatusNotFound, "Sweet not found")
		return
	}
	if s.Quantity < req.Quantity {
		writeError(w, http.StatusBadRequest, "Insufficient stock")
		return
	}
	s.Quantity -= req.Quantity
	total := float64(req.Quantity) * s.Price
	p := purchase{
		ID:          f.nextID,
		UserID:      u.ID,
		SweetID:     s.ID,
		SweetName:   s.Name,
		Quantity:    req.Quantity,
		TotalPrice:  total,
		PurchasedAt: time.Now().UTC().Format(time.RFC3339),
	}
	f.nextID++
	f.purchases = append(f.purchases, p)
	writeJSON(w, http.StatusOK, map[string]any{"message": "Purchase successful", "total_price": total, "quantity": req.Quantity, "sweet_id": s.ID})
}

func (f *FakeShop) restockSweet(w http.ResponseWriter, r *http.Request, _ *user) {
	var req struct{ Quantity int }
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Quantity <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid quantity")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	s := f.find(pathID(r))
	if s == nil {
		writeError(w, http.StatusNotFound, "Sweet not found")
		return
	}
	s.Quantity += req.Quantity
	writeJSON(w, http.StatusOK, map[string]any{"message": "Restocked", "quantity": s.Quantity})
}

func (f *FakeShop) history(w http.ResponseWriter, _ *http.Request, u *user) {
	f.mu.Lock()
	out := make([]purchase, 0)
	for _, p := range f.purchases {
		if p.UserID == u.ID {
			out = append(out, p)
		}
	}
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (f *FakeShop) getPurchase(w http.ResponseWriter, r *http.Request, u *user) {
	id := pathID(r)

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.purchases {
		if p.ID == id && (p.UserID == u.ID || u.IsAdmin) {
			writeJSON(w, http.StatusOK, p)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Purchase not found")
}

func (f *FakeShop) stats(w http.ResponseWriter, _ *http.Request, _ *user) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var revenue float64
	lowStock := 0
	for _, p := range f.purchases {
		revenue += p.TotalPrice
	}
	for _, s := range f.sweets {
		if s.Quantity < 10 {
			lowStock++
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total_sweets":    len(f.sweets),
		"total_purchases": len(f.purchases),
		"total_revenue":   revenue,
		"low_stock":       lowStock,
		"total_users":     len(f.users),
	})
}

func (f *FakeShop) sales(w http.ResponseWriter, r *http.Request, _ *user) {
	start, end := r.URL.Query().Get("startDate"), r.URL.Query().Get("endDate")
	if start == "" || end == "" {
		writeError(w, http.StatusBadRequest, "startDate and endDate are required")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	var total float64
	for _, p := range f.purchases {
		total += p.TotalPrice
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"start_date":   start,
		"end_date":     end,
		"total_sales":  total,
		"transactions": len(f.purchases),
		"summary":      fmt.Sprintf("%d purchases", len(f.purchases)),
	})
}
