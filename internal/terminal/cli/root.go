package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	s := ""
	if a.userName != "" {
		s = a.userName + " "
	}
	if a.Mode != "" {
		s = s + string(a.Mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to the hammam terminal (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	a.restoreSession(ctx)
	if !a.isLoggedIn() {
		a.Login(ctx)
	}

	for {
		fmt.Printf("pos %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Println("Available commands: (s)ell, (l)ist, totals, remit, review, refresh, sync, status, logout, exit")
			} else {
				fmt.Println("Available commands: login, exit")
			}

		case "login":
			a.Login(ctx)
		case "s", "sell":
			a.sell(ctx)
		case "l", "list":
			a.list(ctx)
		case "totals":
			a.totals(ctx)
		case "remit":
			a.remit(ctx)
		case "review":
			a.review(ctx)
		case "refresh":
			if err := a.catalog.Refresh(ctx); err != nil {
				log.Println(err.Error())
			}
		case "sync":
			a.scheduler.Kick()
			fmt.Println("Sync requested")
		case "status":
			fmt.Printf("Mode: %s\n", a.Mode)
		case "logout":
			a.Logout(ctx)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}

}
