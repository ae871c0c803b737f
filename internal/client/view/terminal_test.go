package view

import (
	"bytes"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/sweetshop/internal/client/models"
)

func TestTerminalView_Sections(t *testing.T) {
	var out bytes.Buffer
	v := NewTerminalView(&out, 0)

	v.ShowDashboard("Welcome, alice!")
	v.SetAdminControls(true)
	v.SetAdminPanel(true)

	s := v.State()
	assert.Equal(t, SectionDashboard, s.Section)
	assert.Equal(t, "Welcome, alice!", s.Greeting)
	assert.True(t, s.AdminControls)
	assert.True(t, s.AdminPanel)
	assert.Contains(t, out.String(), "Welcome, alice!")
	assert.Contains(t, out.String(), "Admin panel opened")

	v.ShowAuth(FormLogin)
	s = v.State()
	assert.Equal(t, SectionAuth, s.Section)
	assert.Equal(t, FormLogin, s.ActiveForm)
	assert.False(t, s.AdminControls)
	assert.False(t, s.AdminPanel)
	assert.Empty(t, s.Greeting)
}

func TestTerminalView_HidingControlsClosesPanel(t *testing.T) {
	v := NewTerminalView(&bytes.Buffer{}, 0)
	v.SetAdminControls(true)
	v.SetAdminPanel(true)
	v.SetAdminControls(false)
	assert.False(t, v.State().AdminPanel)
}

func TestTerminalView_RenderItems(t *testing.T) {
	var out bytes.Buffer
	v := NewTerminalView(&out, 0)

	v.RenderItems(nil)
	assert.Contains(t, out.String(), "No sweets found")

	out.Reset()
	v.RenderItems(NewCards([]models.Sweet{
		{ID: 1, Name: "Toffee", Category: "Candy", Price: 1.25, Quantity: 0},
		{ID: 2, Name: "Fudge", Category: "Chocolate", Price: 2, Quantity: 5},
		{ID: 3, Name: "Gum", Category: "Gummy", Price: 0.5, Quantity: 50},
	}, false))

	got := out.String()
	assert.Contains(t, got, "0 (out of stock)")
	assert.Contains(t, got, "Out of Stock")
	assert.Contains(t, got, "5 (low)")
	assert.Contains(t, got, "buy 3")
	assert.Contains(t, got, "$1.25")
	assert.Len(t, v.State().Cards, 3)
}

func TestTerminalView_NotificationAutoDismiss(t *testing.T) {
	var out bytes.Buffer
	v := NewTerminalView(&out, 20*time.Millisecond)
	defer v.Close()

	v.Notify(KindSuccess, "Sweet added successfully!")
	s := v.State()
	require.NotNil(t, s.Notification)
	assert.Equal(t, KindSuccess, s.Notification.Kind)
	assert.Contains(t, out.String(), "[SUCCESS] Sweet added successfully!")

	require.Eventually(t, func() bool { return v.State().Notification == nil },
		time.Second, 5*time.Millisecond)
}

func TestTerminalView_NewerNotificationSurvivesOldTimer(t *testing.T) {
	v := NewTerminalView(&bytes.Buffer{}, time.Hour)
	defer v.Close()

	v.Notify(KindInfo, "first")
	first := v.notifySeq
	v.Notify(KindError, "second")

	v.dismiss(first)
	s := v.State()
	require.NotNil(t, s.Notification)
	assert.Equal(t, "second", s.Notification.Message)
}

func TestTerminalView_ZeroDelayKeepsNotification(t *testing.T) {
	v := NewTerminalView(&bytes.Buffer{}, 0)
	v.Notify(KindError, "Failed to load sweets")
	time.Sleep(10 * time.Millisecond)
	require.NotNil(t, v.State().Notification)
}

func TestTerminalView_FieldErrors(t *testing.T) {
	var out bytes.Buffer
	v := NewTerminalView(&out, 0)

	v.FieldError(FormLogin, "Please fill in all fields")
	v.FieldError(FormRegister, "Password must be at least 6 characters")
	assert.Len(t, v.State().FieldErrors, 2)
	assert.Contains(t, out.String(), "! Please fill in all fields")

	v.ResetForm(FormLogin)
	assert.Equal(t, map[Form]string{FormRegister: "Password must be at least 6 characters"}, v.State().FieldErrors)

	v.ClearFieldErrors()
	assert.Empty(t, v.State().FieldErrors)
}

func TestTerminalView_PurchasesAndReport(t *testing.T) {
	var out bytes.Buffer
	v := NewTerminalView(&out, 0)
	v.now = func() time.Time { return time.Date(2024, 3, 6, 14, 7, 0, 0, time.UTC) }

	v.RenderPurchases(nil)
	assert.Contains(t, out.String(), "No purchases yet")

	out.Reset()
	v.RenderPurchases([]models.Purchase{{ID: 4, SweetName: "Fudge", Quantity: 2, TotalPrice: 5, PurchasedAt: "2024-03-05 14:07:00"}})
	assert.Contains(t, out.String(), "Fudge")
	assert.Contains(t, out.String(), "$5.00")
	assert.Contains(t, out.String(), "Mar 5, 2024, 02:07 PM (1 day ago)")

	out.Reset()
	v.RenderReport("Dashboard", map[string]any{
		"total_revenue": 1234.5,
		"total_users":   float64(1200),
		"low_stock":     []any{map[string]any{"name": "Fudge"}},
		"note":          nil,
	})
	got := out.String()
	assert.Contains(t, got, "Dashboard")
	assert.Contains(t, got, "$1234.50")
	assert.Contains(t, got, "1,200")
	assert.Contains(t, got, "Low stock:")
	assert.Contains(t, got, "Fudge")
	assert.Less(t, bytes.Index(out.Bytes(), []byte("Low stock")), bytes.Index(out.Bytes(), []byte("Total revenue")))
}

func TestHumanLabel(t *testing.T) {
	tests := map[string]string{
		"total_sales":     "Total sales",
		"low_stock":       "Low stock",
		"émission_totale": "Émission totale",
		"ürün_sayısı":     "Ürün sayısı",
		"x":               "X",
		"":                "",
	}
	for in, want := range tests {
		assert.Equal(t, want, humanLabel(in), in)
	}

	var out bytes.Buffer
	NewTerminalView(&out, 0).RenderReport("Rapport", map[string]any{"équipe": "sucre"})
	assert.Contains(t, out.String(), "Équipe:")
	assert.True(t, utf8.Valid(out.Bytes()))
}
