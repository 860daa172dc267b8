package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"library-lending/models"
)

// apiClient is a thin wrapper over the lending service's REST API.
type apiClient struct {
	baseURL string
	http    *http.Client
}

func newAPIClient(baseURL string) *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type apiError struct {
	Error string `json:"error"`
}

func (c *apiClient) do(method, path string, body, out interface{}) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequest(method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var ae apiError
		if json.NewDecoder(resp.Body).Decode(&ae) == nil && ae.Error != "" {
			return fmt.Errorf("%s", ae.Error)
		}
		return fmt.Errorf("request failed: %s", resp.Status)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *apiClient) AddBook(title, author, category string) (*models.Book, error) {
	var book models.Book
	in := map[string]string{"title": title, "author": author, "category": category}
	if err := c.do(http.MethodPost, "/books", in, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

func (c *apiClient) AddMember(name string) (*models.Member, error) {
	var member models.Member
	if err := c.do(http.MethodPost, "/members", map[string]string{"name": name}, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

func (c *apiClient) ListBooks() ([]models.Book, error) {
	var out struct {
		Books []models.Book `json:"books"`
	}
	if err := c.do(http.MethodGet, "/books", nil, &out); err != nil {
		return nil, err
	}
	return out.Books, nil
}

func (c *apiClient) ListMembers() ([]models.Member, error) {
	var out struct {
		Members []models.Member `json:"members"`
	}
	if err := c.do(http.MethodGet, "/members", nil, &out); err != nil {
		return nil, err
	}
	return out.Members, nil
}

func (c *apiClient) SearchBooks(title, author, category string) ([]models.Book, error) {
	q := url.Values{}
	for k, v := range map[string]string{"title": title, "author": author, "category": category} {
		if v != "" {
			q.Set(k, v)
		}
	}
	path := "/books/search"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out struct {
		Books []models.Book `json:"books"`
	}
	if err := c.do(http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Books, nil
}

func (c *apiClient) BorrowedByMember(memberID string) ([]models.Book, error) {
	var out struct {
		Books []models.Book `json:"books"`
	}
	if err := c.do(http.MethodGet, "/books/member/"+memberID+"/borrowed", nil, &out); err != nil {
		return nil, err
	}
	return out.Books, nil
}

func (c *apiClient) Borrow(bookID, memberID string) error {
	in := map[string]string{"bookId": bookID, "memberId": memberID}
	return c.do(http.MethodPost, "/transactions/borrow", in, nil)
}

func (c *apiClient) Return(bookID, memberID string) error {
	in := map[string]string{"bookId": bookID, "memberId": memberID}
	return c.do(http.MethodPost, "/transactions/return", in, nil)
}

func (c *apiClient) Overdue() ([]models.Transaction, error) {
	var out struct {
		Transactions []models.Transaction `json:"transactions"`
	}
	if err := c.do(http.MethodGet, "/transactions/overdue", nil, &out); err != nil {
		return nil, err
	}
	return out.Transactions, nil
}
