package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"
)

// remit records a cash remittance; it syncs with the same lifecycle as
// tickets.
func (a *App) remit(ctx context.Context) {
	amount, err := GetAmount(a.reader, "Amount in DH", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return
	}

	v, err := a.versements.Deposit(ctx, amount, time.Now())
	if err != nil {
		log.Println(err.Error())
		return
	}

	fmt.Printf("Remittance %s recorded: %s\n", shortID(v.ID), FormatAmount(v.Amount))
}
