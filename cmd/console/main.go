package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const defaultAPIURL = "http://localhost:3001/api"

func main() {
	var apiURL string

	root := &cobra.Command{
		Use:   "library-console",
		Short: "Console client for the library lending service",
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand: run the interactive menu.
			return runMenu(newAPIClient(apiURL))
		},
	}
	root.PersistentFlags().StringVar(&apiURL, "api", envOr("LIBRARY_API_URL", defaultAPIURL), "base URL of the lending API")

	client := func() *apiClient { return newAPIClient(apiURL) }

	root.AddCommand(
		&cobra.Command{
			Use:   "add-book <title> <author> <category>",
			Short: "Add a book to the catalog",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				book, err := client().AddBook(args[0], args[1], args[2])
				if err != nil {
					return err
				}
				fmt.Printf("Book added: %s\n", book.ID)
				return nil
			},
		},
		&cobra.Command{
			Use:   "add-member <name>",
			Short: "Register a member",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				member, err := client().AddMember(args[0])
				if err != nil {
					return err
				}
				fmt.Printf("Member added: %s\n", member.ID)
				return nil
			},
		},
		&cobra.Command{
			Use:   "list-books",
			Short: "List all books",
			RunE: func(cmd *cobra.Command, args []string) error {
				books, err := client().ListBooks()
				if err != nil {
					return err
				}
				printBooks(books)
				return nil
			},
		},
		&cobra.Command{
			Use:   "list-members",
			Short: "List all members",
			RunE: func(cmd *cobra.Command, args []string) error {
				members, err := client().ListMembers()
				if err != nil {
					return err
				}
				printMembers(members)
				return nil
			},
		},
		&cobra.Command{
			Use:   "borrow <bookId> <memberId>",
			Short: "Borrow a book for a member",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := client().Borrow(args[0], args[1]); err != nil {
					return err
				}
				fmt.Println("Book borrowed successfully.")
				return nil
			},
		},
		&cobra.Command{
			Use:   "return <bookId> <memberId>",
			Short: "Return a borrowed book",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := client().Return(args[0], args[1]); err != nil {
					return err
				}
				fmt.Println("Book returned successfully.")
				return nil
			},
		},
		&cobra.Command{
			Use:   "overdue",
			Short: "List overdue transactions",
			RunE: func(cmd *cobra.Command, args []string) error {
				txns, err := client().Overdue()
				if err != nil {
					return err
				}
				printTransactions(txns)
				return nil
			},
		},
		func() *cobra.Command {
			var title, author, category string
			c := &cobra.Command{
				Use:   "search",
				Short: "Search books by title, author and/or category",
				RunE: func(cmd *cobra.Command, args []string) error {
					books, err := client().SearchBooks(title, author, category)
					if err != nil {
						return err
					}
					printBooks(books)
					return nil
				},
			}
			c.Flags().StringVar(&title, "title", "", "title substring")
			c.Flags().StringVar(&author, "author", "", "author substring")
			c.Flags().StringVar(&category, "category", "", "category substring")
			return c
		}(),
		&cobra.Command{
			Use:   "borrowed <memberId>",
			Short: "List books a member currently has out",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				books, err := client().BorrowedByMember(args[0])
				if err != nil {
					return err
				}
				printBooks(books)
				return nil
			},
		},
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
