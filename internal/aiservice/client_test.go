package aiservice

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhrigu136/shopify-ai-analytics/internal/model"
)

func TestClient_Ask(t *testing.T) {
	var (
		gotMethod string
		gotPath   string
		gotToken  string
		gotType   string
		gotBody   string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotToken = r.Header.Get(AccessTokenHeader)
		gotType = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"answer":"42"}`))
	}))
	defer srv.Close()

	c := New(srv.URL + "/")
	relay, err := c.Ask(context.Background(), "shpat_mock_secure_token_12345", model.Question{
		StoreID:  "S1",
		Question: "Do you ship to Canada?",
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, relay.StatusCode)
	assert.JSONEq(t, `{"answer":"42"}`, string(relay.Body))

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/ask", gotPath)
	assert.Equal(t, "shpat_mock_secure_token_12345", gotToken)
	assert.Equal(t, "application/json", gotType)
	assert.Equal(t, `{"store_id":"S1","question":"Do you ship to Canada?"}`, gotBody)
}

func TestClient_AskRelaysErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Not Found"}`))
	}))
	defer srv.Close()

	relay, err := New(srv.URL).Ask(context.Background(), "t", model.Question{StoreID: "S1", Question: "q"})

	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, relay.StatusCode)
	assert.Equal(t, `{"detail":"Not Found"}`, string(relay.Body))
}

func TestClient_AskMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`Internal Server Error`))
	}))
	defer srv.Close()

	relay, err := New(srv.URL).Ask(context.Background(), "t", model.Question{StoreID: "S1", Question: "q"})

	assert.Nil(t, relay)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "invalid character")
}

func TestClient_AskConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	relay, err := New(url).Ask(context.Background(), "t", model.Question{StoreID: "S1", Question: "q"})

	assert.Nil(t, relay)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClient_AskCanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(srv.URL).Ask(ctx, "t", model.Question{StoreID: "S1", Question: "q"})

	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrUnavailable)
}
