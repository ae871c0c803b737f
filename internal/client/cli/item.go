package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/sweetshop/internal/client/app"
	"github.com/dmitrijs2005/sweetshop/internal/client/view"
)

// List fetches the catalogue again and shows it.
func (a *App) List(ctx context.Context) error {
	return a.store.ReloadItems(ctx)
}

// Filter narrows the shown list locally.
func (a *App) Filter(_ context.Context) error {
	term, err := getSimpleText(a.reader, "Search term (empty for any)", a.out)
	if err != nil {
		return err
	}

	prompt := "Category (empty for all)"
	if cats := a.store.Categories(); len(cats) > 0 {
		prompt = fmt.Sprintf("Category: %s (empty for all)", strings.Join(cats, ", "))
	}
	category, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return err
	}

	a.store.Filter(term, category)
	return nil
}

func (a *App) Reset(_ context.Context) error {
	a.store.ResetFilters()
	return nil
}

func (a *App) Show(_ context.Context, id int64) error {
	sw, ok := a.store.Find(id)
	if !ok {
		a.view.Print("Sweet not found")
		return nil
	}
	a.view.RenderDetail(view.NewCard(sw, a.store.IsAdmin()))
	return nil
}

// Buy asks for a quantity and purchases. An empty answer means one.
func (a *App) Buy(ctx context.Context, id int64) error {
	qty := "1"
	if sw, ok := a.store.Find(id); ok {
		if sw.Quantity == 0 {
			a.view.Print("Out of Stock")
			return nil
		}
		var err error
		prompt := fmt.Sprintf("Enter quantity to purchase (Available: %d):", sw.Quantity)
		if qty, err = getWithDefault(a.reader, prompt, "1", a.out); err != nil {
			return err
		}
	}
	return a.report(a.store.Purchase(ctx, id, qty))
}

func (a *App) Delete(ctx context.Context, id int64) error {
	ok, err := confirm(a.reader, "Are you sure you want to delete this sweet?", a.out)
	if err != nil {
		return err
	}
	return a.store.Delete(ctx, id, ok)
}

func (a *App) Add(ctx context.Context) error {
	form, err := a.readItemForm(app.ItemForm{})
	if err != nil {
		return err
	}
	return a.store.AddItem(ctx, form)
}

// Edit prefills the form with the cached item; empty answers keep a field.
func (a *App) Edit(ctx context.Context, id int64) error {
	sw, ok := a.store.Find(id)
	if !ok {
		a.view.Print("Sweet not found")
		return nil
	}
	form, err := a.readItemForm(app.FormFromSweet(sw))
	if err != nil {
		return err
	}
	return a.store.UpdateItem(ctx, id, form)
}

func (a *App) Restock(ctx context.Context, id int64) error {
	qty, err := getSimpleText(a.reader, "Enter quantity to add", a.out)
	if err != nil {
		return err
	}
	return a.report(a.store.Restock(ctx, id, qty))
}

func (a *App) readItemForm(cur app.ItemForm) (app.ItemForm, error) {
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Name", &cur.Name},
		{"Description", &cur.Description},
		{"Category", &cur.Category},
		{"Price", &cur.Price},
		{"Quantity", &cur.Quantity},
	}

	for _, f := range fields {
		var (
			v   string
			err error
		)
		if *f.dst == "" {
			v, err = getSimpleText(a.reader, f.prompt, a.out)
		} else {
			v, err = getWithDefault(a.reader, f.prompt, *f.dst, a.out)
		}
		if err != nil {
			return app.ItemForm{}, err
		}
		*f.dst = v
	}
	return cur, nil
}
