package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/courtside-app/courtside/internal/api"
)

// usersClient is the API surface the users command needs; narrowed for tests
type usersClient interface {
	ListUsers(ctx context.Context, page, perPage int) (*api.UserPage, error)
	SearchUsers(ctx context.Context, query string) ([]api.User, error)
}

// usersOptions carries injectable dependencies
type usersOptions struct {
	client usersClient
	output io.Writer
}

// UsersOption overrides a dependency (used by tests)
type UsersOption func(*usersOptions)

// WithUsersClient injects the API client
func WithUsersClient(c usersClient) UsersOption {
	return func(o *usersOptions) { o.client = c }
}

// WithUsersOutput injects the output writer
func WithUsersOutput(w io.Writer) UsersOption {
	return func(o *usersOptions) { o.output = w }
}

// NewUsersCmd creates the users command
func NewUsersCmd() *cobra.Command {
	var page, perPage int
	var query string

	cmd := &cobra.Command{
		Use:   "users",
		Short: "List or search members (admin only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUsers(page, perPage, query)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&perPage, "per-page", 25, "Users per page")
	cmd.Flags().StringVar(&query, "search", "", "Search by name or email instead of listing")

	return cmd
}

func runUsers(page, perPage int, query string, opts ...UsersOption) error {
	options := &usersOptions{output: os.Stdout}
	for _, opt := range opts {
		opt(options)
	}

	if options.client == nil {
		apiClient, _, err := newAuthedClient()
		if err != nil {
			return err
		}
		options.client = apiClient
	}

	if query != "" {
		users, err := options.client.SearchUsers(context.Background(), query)
		if err != nil {
			return err
		}
		if len(users) == 0 {
			fmt.Fprintf(options.output, "No members match %q.\n", query)
			return nil
		}
		printUsers(options.output, users)
		return nil
	}

	userPage, err := options.client.ListUsers(context.Background(), page, perPage)
	if err != nil {
		return err
	}

	if len(userPage.Users) == 0 {
		fmt.Fprintln(options.output, "No members found.")
		return nil
	}

	printUsers(options.output, userPage.Users)
	fmt.Fprintf(options.output, "\nPage %d (%d members total)\n", userPage.Page, userPage.Total)
	return nil
}

func printUsers(out io.Writer, users []api.User) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tVERIFIED\tROLE")
	fmt.Fprintln(w, "──\t────\t─────\t────────\t────")

	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\t%v\t%s\n",
			u.ID,
			u.Name,
			u.Email,
			u.IsVerified,
			roleLabel(u),
		)
	}

	w.Flush()
}

func roleLabel(u api.User) string {
	switch {
	case u.IsSuperAdmin:
		return "super-admin"
	case u.IsAdmin:
		return "admin"
	default:
		return "member"
	}
}
