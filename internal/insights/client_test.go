package insights

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"goalpulse/internal/analytics"
	"goalpulse/internal/model"
)

func TestGenerateSuccess(t *testing.T) {
	var gotBody Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("Request body did not decode: %v", err)
		}
		json.NewEncoder(w).Encode(envelope{
			Success: true,
			Data:    &Payload{WeeklySummary: "a good week"},
		})
	}))
	defer server.Close()

	client := NewClient(Config{URL: server.URL})
	req := Request{
		Goals: []model.Goal{{ID: "g1", Title: "Learn Go"}},
		Stats: analytics.Summary{TotalGoals: 1},
		FocusGoal: &analytics.FocusGoal{
			Goal:   model.Goal{ID: "g1"},
			Reason: "Overdue by 2 days with 3 tasks remaining",
		},
	}

	payload, err := client.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if payload.WeeklySummary != "a good week" {
		t.Errorf("Unexpected payload: %+v", payload)
	}
	if len(gotBody.Goals) != 1 || gotBody.Stats.TotalGoals != 1 || gotBody.FocusGoal == nil {
		t.Errorf("Service did not receive the full context: %+v", gotBody)
	}
}

func TestGenerateRetriesOnServerError(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(envelope{Success: true, Data: &Payload{WeeklySummary: "second try"}})
	}))
	defer server.Close()

	payload, err := NewClient(Config{URL: server.URL}).Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Expected retry to succeed, got %v", err)
	}
	if payload.WeeklySummary != "second try" {
		t.Errorf("Unexpected payload: %+v", payload)
	}
	if calls != 2 {
		t.Errorf("Expected 2 calls, got %d", calls)
	}
}

func TestGenerateDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	if _, err := NewClient(Config{URL: server.URL}).Generate(context.Background(), Request{}); err == nil {
		t.Fatal("Expected an error for 400")
	}
	if calls != 1 {
		t.Errorf("Expected no retry on 400, got %d calls", calls)
	}
}

func TestGenerateRejectsFailureEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(envelope{Success: false, Error: "model overloaded"})
	}))
	defer server.Close()

	_, err := NewClient(Config{URL: server.URL}).Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("Expected an error for success=false")
	}
}

func TestGenerateRejectsMalformedPayload(t *testing.T) {
	cases := map[string]string{
		"success without data": `{"success":true}`,
		"not json":             `insights go here`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			}))
			defer server.Close()

			if _, err := NewClient(Config{URL: server.URL}).Generate(context.Background(), Request{}); err == nil {
				t.Error("Expected a remote-failure error, got nil")
			}
		})
	}
}
