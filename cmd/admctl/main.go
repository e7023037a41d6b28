// admctl is a terminal client for the PingPay admin API. It lists the
// user-management table under the same filters the dashboard uses and can
// run bulk activate/suspend actions, with a confirmation prompt standing in
// for the dashboard's modal.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"

	"github.com/pingpay/dashboard/internal/dashboard"
)

func main() {
	_ = godotenv.Load()

	var (
		server = flag.String("server", envOr("PINGPAY_SERVER", "http://localhost:8080"), "API base URL")
		token  = flag.String("token", os.Getenv("PINGPAY_TOKEN"), "Session token from the auth provider")
		search = flag.String("search", "", "Search term (name, email, or phone)")
		status = flag.String("status", "all", "Status filter (all, active, suspended, pending)")
		kyc    = flag.String("kyc", "all", "KYC filter (all, unverified, basic, full, business)")
		page   = flag.Int("page", 1, "Page number (1-based)")
		limit  = flag.Int("limit", dashboard.DefaultPageSize, "Page size")
		action = flag.String("action", "", "Bulk action to run (activate, suspend)")
		ids    = flag.String("ids", "", "Comma-separated user IDs for -action")
		yes    = flag.Bool("yes", false, "Skip the confirmation prompt")
	)
	flag.Parse()

	ctx := context.Background()

	coord := dashboard.NewCoordinator(*server, dashboard.CoordinatorOptions{
		Token:    *token,
		PageSize: *limit,
		OnUnauthorized: func() {
			fmt.Fprintln(os.Stderr, "session expired: sign in again and pass a fresh token")
		},
	})

	filters := dashboard.FilterState{
		dashboard.KeySearchTerm:   *search,
		dashboard.KeyStatusFilter: *status,
		dashboard.KeyTypeFilter:   *kyc,
		dashboard.KeyDateFilter:   "all",
	}

	if *action != "" {
		if err := runAction(ctx, coord, dashboard.Action(*action), *ids, filters, *page, *yes); err != nil {
			slog.Error("action failed", "error", err)
			os.Exit(1)
		}
	} else if err := coord.Fetch(ctx, filters, *page); err != nil {
		slog.Error("failed to fetch users", "error", err)
		os.Exit(1)
	}

	printUsers(coord, *page)
}

func runAction(ctx context.Context, coord *dashboard.Coordinator, action dashboard.Action, rawIDs string, filters dashboard.FilterState, page int, yes bool) error {
	var userIDs []string
	for _, id := range strings.Split(rawIDs, ",") {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			userIDs = append(userIDs, trimmed)
		}
	}
	if len(userIDs) == 0 {
		return dashboard.ErrNoSelection
	}

	gate := dashboard.NewConfirmGate()
	if err := gate.Open(dashboard.ConfirmRequest{
		Title:   fmt.Sprintf("Confirm action: %s", action),
		Message: fmt.Sprintf("Are you sure you want to %s %d user(s)?", action, len(userIDs)),
		OnConfirm: func(ctx context.Context) error {
			return coord.ExecuteAction(ctx, action, userIDs, filters, page)
		},
	}); err != nil {
		return err
	}

	if !yes {
		req, _ := gate.Pending()
		fmt.Printf("%s [y/N]: ", req.Message)
		answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			gate.Cancel()
			fmt.Println("cancelled")
			return nil
		}
	}

	return gate.Confirm(ctx)
}

func printUsers(coord *dashboard.Coordinator, page int) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPHONE\tKYC\tSTATUS\tTXNS\tVOLUME")
	for _, u := range coord.Users() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%d\t%.2f\n",
			u.ID, u.FullName, u.Email, u.Phone, u.KYCLevel, u.Status,
			u.TotalTransactions, u.TotalVolume)
	}
	w.Flush()
	fmt.Printf("page %d of %d (%d users)\n", page, coord.TotalPages(), coord.Total())
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
