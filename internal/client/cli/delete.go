package cli

import (
	"context"
	"fmt"
	"log"
	"strconv"
)

func (a *App) Delete(ctx context.Context, args []string) error {

	if !a.loggedIn {
		printlnFn("Login required for delete.")
		return nil
	}

	if len(args) == 0 {
		printlnFn("Usage: delete <id> [<id>...]")
		return nil
	}

	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			printlnFn(fmt.Sprintf("Not an entry id: %s", arg))
			return nil
		}
		ids = append(ids, id)
	}

	if len(ids) == 1 {
		if err := a.feed.DeleteOne(ctx, ids[0]); err != nil {
			log.Printf("Delete failed: %v", err)
			return err
		}
		printlnFn("Deleted.")
		return nil
	}

	res := a.feed.DeleteBatch(ctx, ids)
	printlnFn(fmt.Sprintf("Deleted %d, failed %d.", res.Succeeded, res.Failed))
	for id, err := range res.Errors {
		log.Printf("entry %d: %v", id, err)
	}
	return nil
}
