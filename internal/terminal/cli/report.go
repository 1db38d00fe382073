package cli

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dmitrijs2005/hammampos/internal/terminal/models"
)

func (a *App) list(ctx context.Context) {
	tickets, err := a.tickets.ListByDay(ctx, time.Now())
	if err != nil {
		log.Println(err.Error())
		return
	}

	for _, t := range tickets {
		fmt.Printf("%s  %s  %-12s %s  %s\n",
			t.CreatedAt.Format("15:04"), shortID(t.ID), t.TypeName,
			FormatAmount(t.Price), syncMark(t.SyncStatus))
	}
	fmt.Printf("%d tickets today\n", len(tickets))
}

func (a *App) totals(ctx context.Context) {
	count, revenue, err := a.tickets.DayTotals(ctx, time.Now())
	if err != nil {
		log.Println(err.Error())
		return
	}
	fmt.Printf("Today: %d tickets, %s\n", count, FormatAmount(revenue))
}

func (a *App) review(ctx context.Context) {
	tickets, err := a.tickets.NeedsReview(ctx)
	if err != nil {
		log.Println(err.Error())
		return
	}
	if len(tickets) == 0 {
		fmt.Println("Nothing needs review")
		return
	}

	for _, t := range tickets {
		fmt.Printf("%s  %s  %s  %d attempts\n",
			t.CreatedAt.Format("2006-01-02 15:04"), shortID(t.ID),
			FormatAmount(t.Price), t.Attempts)
	}
}

func syncMark(status string) string {
	if status == models.SyncStatusSynced {
		return "synced"
	}
	return "pending"
}
