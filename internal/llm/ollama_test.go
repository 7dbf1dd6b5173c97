package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaComplete_OK(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response": "tailored resume text"}`))
	}))
	defer srv.Close()

	client := NewOllamaClient(srv.URL, "llama3")
	text, err := client.Complete(context.Background(), "rewrite this resume")
	require.NoError(t, err)
	assert.Equal(t, "tailored resume text", text)
	assert.Equal(t, "/api/generate", gotPath)
}

func TestOllamaComplete_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewOllamaClient(srv.URL, "llama3")
	_, err := client.Complete(context.Background(), "prompt")
	require.Error(t, err)

	terr, ok := AsTransportError(err)
	require.True(t, ok)
	assert.Equal(t, TransportServerError, terr.Kind)
	assert.Contains(t, terr.Message, "500")
}

func TestOllamaComplete_EmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"response": "   "}`))
	}))
	defer srv.Close()

	client := NewOllamaClient(srv.URL, "llama3")
	_, err := client.Complete(context.Background(), "prompt")

	terr, ok := AsTransportError(err)
	require.True(t, ok)
	assert.Equal(t, TransportEmptyResponse, terr.Kind)
}

func TestOllamaComplete_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	client := NewOllamaClient(srv.URL, "llama3")
	_, err := client.Complete(context.Background(), "prompt")

	terr, ok := AsTransportError(err)
	require.True(t, ok)
	assert.Equal(t, TransportEmptyResponse, terr.Kind)
}

func TestOllamaComplete_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
		_, _ = w.Write([]byte(`{"response": "too late"}`))
	}))
	defer srv.Close()

	client := NewOllamaClient(srv.URL, "llama3")
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Complete(ctx, "prompt")
	terr, ok := AsTransportError(err)
	require.True(t, ok)
	assert.Equal(t, TransportTimeout, terr.Kind)
}

func TestOllamaComplete_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	srv.Close() // nothing listening anymore

	client := NewOllamaClient(srv.URL, "llama3")
	_, err := client.Complete(context.Background(), "prompt")

	terr, ok := AsTransportError(err)
	require.True(t, ok)
	assert.Equal(t, TransportUnreachable, terr.Kind)
}

func TestNewClient_UnknownProvider(t *testing.T) {
	_, err := NewClient(context.Background(), &Config{Provider: "bedrock"})
	require.Error(t, err)
}

func TestNewClient_DefaultsToOllama(t *testing.T) {
	client, err := NewClient(context.Background(), &Config{Model: "llama3"})
	require.NoError(t, err)
	defer func() { _ = client.Close() }()
	assert.Equal(t, "llama3", client.Model())
	_, ok := client.(*OllamaClient)
	assert.True(t, ok)
}
