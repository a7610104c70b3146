package cli

import (
	"context"
	"fmt"
	"log"
)

func (a *App) List(ctx context.Context) error {

	entries := a.feed.Entries()
	if len(entries) == 0 {
		printlnFn("No entries loaded.")
		return nil
	}

	for _, e := range entries {
		mark := " "
		switch {
		case e.IsResolving:
			mark = "~"
		case e.DisplayURL != "":
			mark = "*"
		}
		printlnFn(fmt.Sprintf("%s %8d  %s  %s", mark, e.ID, e.CreatedAt.Format("2006-01-02 15:04"), e.Prompt))
	}

	if a.feed.HasMore() {
		printlnFn("(more available, type 'more')")
	}
	return nil
}

func (a *App) More(ctx context.Context) error {
	a.watcher.NearEnd(ctx)
	return a.List(ctx)
}

func (a *App) Refresh(ctx context.Context) error {
	if err := a.feed.Load(ctx, false, true); err != nil {
		log.Printf("Refresh failed: %v", err)
		return err
	}
	return a.List(ctx)
}

// Images forces re-resolution of every display URL, bypassing the image
// cache.
func (a *App) Images(ctx context.Context) error {
	if err := a.feed.Load(ctx, true, true); err != nil {
		log.Printf("Refresh failed: %v", err)
		return err
	}
	return nil
}

func (a *App) Invalidate(ctx context.Context) error {
	if err := a.feed.Invalidate(ctx); err != nil {
		log.Printf("Invalidate failed: %v", err)
		return err
	}
	printlnFn("Caches cleared.")
	return nil
}
