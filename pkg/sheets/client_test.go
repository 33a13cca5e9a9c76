package sheets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchMembers(t *testing.T) {
	var gotBuster string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBuster = r.URL.Query().Get("t")
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte("Socio,Nombre,Teléfono,Cuota\n101,GARCÍA LÓPEZ ANA,612345678,SI\n102,FERNÁNDEZ BREIXO,698765432,NO\n"))
	}))
	defer srv.Close()

	members, err := NewClient(srv.URL).FetchMembers(context.Background())
	if err != nil {
		t.Fatalf("FetchMembers: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(members))
	}
	if members[0].ID != "101" || !members[0].Paid || members[1].Paid {
		t.Fatalf("unexpected members: %+v", members)
	}
	if gotBuster == "" {
		t.Fatalf("fetch must carry a cache-busting parameter")
	}
}

func TestFetchMembers_RaggedRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Published exports often drop trailing empty cells.
		_, _ = w.Write([]byte("Socio,Nombre,Cuota\n101,ANA,SI\n102,BREIXO\n"))
	}))
	defer srv.Close()

	members, err := NewClient(srv.URL).FetchMembers(context.Background())
	if err != nil {
		t.Fatalf("FetchMembers: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(members))
	}
	if members[1].Paid {
		t.Fatalf("a missing payment cell must not count as paid")
	}
}

func TestFetchMembers_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).FetchMembers(context.Background()); err == nil {
		t.Fatalf("expected an error on non-200 status")
	}
}

func TestFetchMembers_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	if _, err := NewClient(srv.URL).FetchMembers(context.Background()); err == nil {
		t.Fatalf("expected an error when the host is down")
	}
}
