package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAuxClient_BothPresent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/robots.txt":
			_, _ = w.Write([]byte("User-agent: *\nAllow: /"))
		case "/sitemap.xml":
			_, _ = w.Write([]byte("<urlset></urlset>"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewAuxClient(DefaultAuxTimeout)
	robots, sitemap := client.Check(context.Background(), server.URL)

	assert.True(t, robots.Exists)
	assert.Contains(t, robots.Content, "User-agent")
	assert.True(t, sitemap.Exists)
	assert.Contains(t, sitemap.Content, "urlset")
}

func TestAuxClient_AbsenceIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewAuxClient(DefaultAuxTimeout)
	robots, sitemap := client.Check(context.Background(), server.URL)

	assert.False(t, robots.Exists)
	assert.Empty(t, robots.Content)
	assert.False(t, sitemap.Exists)
	assert.Empty(t, sitemap.Content)
}

func TestAuxClient_OneOfTwo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *"))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewAuxClient(DefaultAuxTimeout)
	robots, sitemap := client.Check(context.Background(), server.URL)

	assert.True(t, robots.Exists)
	assert.False(t, sitemap.Exists)
}

func TestAuxClient_TimeoutDegradesToAbsent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte("late"))
	}))
	defer server.Close()

	client := NewAuxClient(20 * time.Millisecond)
	robots, sitemap := client.Check(context.Background(), server.URL)

	assert.False(t, robots.Exists)
	assert.False(t, sitemap.Exists)
}

func TestAuxClient_UnreachableOrigin(t *testing.T) {
	client := NewAuxClient(100 * time.Millisecond)
	robots, sitemap := client.Check(context.Background(), "http://127.0.0.1:1")

	assert.False(t, robots.Exists)
	assert.False(t, sitemap.Exists)
}
