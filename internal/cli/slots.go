package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/dustin/go-humanize"

	"github.com/dmitrijs2005/rbacdash/internal/nav"
)

// Slots lists the persisted slots and their sizes.
func (a *App) Slots(ctx context.Context) error {
	m, err := a.slots.Slots().List(ctx)
	if err != nil {
		a.logger.Error(ctx, "failed to list slots", "error", err)
		a.printf("Cannot read storage: %v\n", err)
		return err
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	tw := newTable(a.out)
	fmt.Fprintln(tw, "SLOT\tSIZE")
	for _, k := range keys {
		fmt.Fprintf(tw, "%s\t%s\n", k, humanize.Bytes(uint64(len(m[k]))))
	}
	return tw.Flush()
}

// Reset wipes every slot, ends the session and restores the seed
// directory.
func (a *App) Reset(ctx context.Context) error {
	ok, err := GetYesNo(a.reader, "This removes all stored data. Continue?", false, a.out)
	if err != nil || !ok {
		return err
	}

	a.modal.Cancel()
	if err := a.slots.Reset(ctx); err != nil {
		a.logger.Error(ctx, "failed to reset storage", "error", err)
		a.printf("Cannot reset storage: %v\n", err)
		return err
	}
	a.session.Logout(ctx)
	a.session.ReplaceUsers(ctx, a.seed())
	a.intent = nav.Intent{}

	a.logger.Info(ctx, "storage reset")
	a.println("Storage reset")
	return a.Goto(ctx, nav.PathLogin)
}
