package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
)

// sell shows the catalog, asks for a type and records the sale locally. The
// ticket prints from the local row; the sync engine delivers it later.
func (a *App) sell(ctx context.Context) {
	types, err := a.catalog.List(ctx)
	if err != nil {
		log.Println(err.Error())
		return
	}
	if len(types) == 0 {
		fmt.Println("Catalog is empty, run 'refresh' while online first")
		return
	}

	for i, t := range types {
		fmt.Printf("%d. %s  %s\n", i+1, t.Name, FormatAmount(t.Price))
	}

	choice, err := getSimpleText(a.reader, "Ticket number", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return
	}
	n, err := strconv.Atoi(choice)
	if err != nil || n < 1 || n > len(types) {
		fmt.Println("Unknown ticket:", choice)
		return
	}

	ticket, err := a.tickets.Sell(ctx, types[n-1].ID)
	if err != nil {
		log.Println(err.Error())
		return
	}

	fmt.Printf("Ticket %s  %s  %s\n", shortID(ticket.ID), ticket.TypeName, FormatAmount(ticket.Price))
}

// shortID keeps printed receipts readable; the full uuid stays in the store.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
