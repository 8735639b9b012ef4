package preview

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/preview" {
			t.Errorf("path = %q, want /preview", r.URL.Path)
		}
		if got := r.URL.Query().Get("url"); got != "https://example.com/a?b=c" {
			t.Errorf("url param = %q", got)
		}
		json.NewEncoder(w).Encode(Metadata{
			Title:       "Example",
			Description: "An example page",
			Image:       "https://example.com/cover.png",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	meta, err := c.Fetch(context.Background(), "https://example.com/a?b=c")
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if meta.Title != "Example" || meta.Description != "An example page" {
		t.Errorf("unexpected metadata: %+v", meta)
	}
}

func TestClientFetchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if _, err := c.Fetch(context.Background(), "https://example.com"); err == nil {
		t.Fatal("Fetch() on 502 should fail")
	}
}

func TestClientFetchBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if _, err := c.Fetch(context.Background(), "https://example.com"); err == nil {
		t.Fatal("Fetch() on invalid JSON should fail")
	}
}
