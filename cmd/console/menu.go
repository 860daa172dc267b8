package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"library-lending/models"
)

// runMenu drives the numbered interactive menu against the API.
func runMenu(client *apiClient) error {
	sc := bufio.NewScanner(os.Stdin)
	ask := func(prompt string) string {
		fmt.Print(prompt)
		if !sc.Scan() {
			return ""
		}
		return strings.TrimSpace(sc.Text())
	}

	for {
		fmt.Println("Library Management System")
		fmt.Println("1. Add Book")
		fmt.Println("2. Add Member")
		fmt.Println("3. Borrow Book")
		fmt.Println("4. Return Book")
		fmt.Println("5. Display Overdue Transactions")
		fmt.Println("6. Display All Books")
		fmt.Println("7. Display All Members")
		fmt.Println("8. Search Books")
		fmt.Println("9. Get Member's Borrowed Books")
		fmt.Println("10. Exit")

		switch ask("Select an option: ") {
		case "1":
			title := ask("Enter book title: ")
			author := ask("Enter book author: ")
			category := ask("Enter book category: ")
			if book, err := client.AddBook(title, author, category); err != nil {
				fmt.Println("Error:", err)
			} else {
				fmt.Println("Book added successfully:", book.ID)
			}
		case "2":
			name := ask("Enter member name: ")
			if member, err := client.AddMember(name); err != nil {
				fmt.Println("Error:", err)
			} else {
				fmt.Println("Member added successfully:", member.ID)
			}
		case "3":
			bookID := ask("Enter book ID: ")
			memberID := ask("Enter member ID: ")
			if err := client.Borrow(bookID, memberID); err != nil {
				fmt.Println("Error:", err)
			} else {
				fmt.Println("Book borrowed successfully.")
			}
		case "4":
			bookID := ask("Enter book ID: ")
			memberID := ask("Enter member ID: ")
			if err := client.Return(bookID, memberID); err != nil {
				fmt.Println("Error:", err)
			} else {
				fmt.Println("Book returned successfully.")
			}
		case "5":
			txns, err := client.Overdue()
			if err != nil {
				fmt.Println("Error:", err)
				break
			}
			printTransactions(txns)
		case "6":
			books, err := client.ListBooks()
			if err != nil {
				fmt.Println("Error:", err)
				break
			}
			printBooks(books)
		case "7":
			members, err := client.ListMembers()
			if err != nil {
				fmt.Println("Error:", err)
				break
			}
			printMembers(members)
		case "8":
			title := ask("Title filter (empty to skip): ")
			author := ask("Author filter (empty to skip): ")
			category := ask("Category filter (empty to skip): ")
			books, err := client.SearchBooks(title, author, category)
			if err != nil {
				fmt.Println("Error:", err)
				break
			}
			printBooks(books)
		case "9":
			memberID := ask("Enter member ID: ")
			books, err := client.BorrowedByMember(memberID)
			if err != nil {
				fmt.Println("Error:", err)
				break
			}
			printBooks(books)
		case "10":
			return nil
		default:
			fmt.Println("Invalid option. Please try again.")
		}
		fmt.Println()
	}
}

func printBooks(books []models.Book) {
	if len(books) == 0 {
		fmt.Println("No books found.")
		return
	}
	for _, b := range books {
		status := "available"
		if !b.Available {
			status = "borrowed"
		}
		fmt.Printf("%s  %q by %s [%s] (%s)\n", b.ID, b.Title, b.Author, b.Category, status)
	}
}

func printMembers(members []models.Member) {
	if len(members) == 0 {
		fmt.Println("No members found.")
		return
	}
	for _, m := range members {
		fmt.Printf("%s  %s (%d borrowed)\n", m.ID, m.Name, m.BorrowedBooksCount)
	}
}

func printTransactions(txns []models.Transaction) {
	if len(txns) == 0 {
		fmt.Println("No overdue transactions.")
		return
	}
	for _, t := range txns {
		fmt.Printf("%s  book=%s member=%s borrowed=%s due=%s\n",
			t.ID, t.BookID, t.MemberID,
			t.BorrowedAt.Format("2006-01-02"), t.DueAt.Format("2006-01-02"))
	}
}
