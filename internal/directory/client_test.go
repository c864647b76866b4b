package directory

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": 1, "name": "Central Rx", "phone": "15551234567", "email": "rx@central.com",
			 "city": "Austin", "state": "TX",
			 "prescriptions": [{"drug": "DrugX", "count": 60}, {"drug": "DrugY", "count": 41}]},
			{"id": 2, "name": "Westside Pharmacy", "phone": "15559998888", "city": "Reno", "state": "NV"}
		]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	pharmacies, err := client.FetchAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(pharmacies) != 2 {
		t.Fatalf("expected 2 pharmacies, got %d", len(pharmacies))
	}
	if pharmacies[0].TotalRxVolume() != 101 {
		t.Errorf("expected total volume 101, got %d", pharmacies[0].TotalRxVolume())
	}
	if !pharmacies[0].IsHighVolume() {
		t.Error("expected first pharmacy to be high-volume")
	}
	if pharmacies[1].Email != "" {
		t.Error("email should be optional and empty when absent")
	}
}

func TestFetchAllMissingRequiredField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": 1, "name": "No Phone", "city": "Austin", "state": "TX"}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.FetchAll(context.Background())

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %v", err)
	}
}

func TestFetchAllMalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "an array"`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.FetchAll(context.Background())

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %v", err)
	}
}

func TestFetchAllServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.FetchAll(context.Background())

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %v", err)
	}
}

func TestFetchAllNegativePrescriptionCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": 1, "name": "Bad Rx", "phone": "1555", "city": "A", "state": "B",
			"prescriptions": [{"drug": "DrugX", "count": -1}]}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	if _, err := client.FetchAll(context.Background()); err == nil {
		t.Fatal("expected error for negative prescription count")
	}
}
