package cli

import (
	"context"
	"fmt"
	"os"
)

func (a *App) History(ctx context.Context) error {
	list, err := a.store.History(ctx)
	if err != nil {
		return err
	}
	a.view.RenderPurchases(list)
	return nil
}

func (a *App) Receipt(ctx context.Context, id int64) error {
	p, err := a.store.Receipt(ctx, id)
	if err != nil {
		return err
	}
	a.view.RenderReceipt(*p)
	return nil
}

func (a *App) Stats(ctx context.Context) error {
	st, err := a.store.Dashboard(ctx)
	if err != nil {
		return a.report(err)
	}
	a.view.RenderReport("Dashboard statistics", st)
	return nil
}

func (a *App) Sales(ctx context.Context, start, end string) error {
	rep, err := a.store.Sales(ctx, start, end)
	if err != nil {
		return a.report(err)
	}
	a.view.RenderReport(fmt.Sprintf("Sales report %s .. %s", start, end), rep)
	return nil
}

// Export writes the shown list as HTML cards to path.
func (a *App) Export(ctx context.Context, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		a.view.Print("Export failed:", err)
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	if err := a.store.ExportHTML(f); err != nil {
		a.logger.Error(ctx, "export failed", "path", path, "error", err)
		a.view.Print("Export failed:", err)
		return err
	}
	a.view.Print(fmt.Sprintf("Exported %d sweets to %s", len(a.store.Visible()), path))
	return nil
}
