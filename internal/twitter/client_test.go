package twitter

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchURL(t *testing.T) {
	client := NewClient("http://feed.example.com/feed/random", "noodle")

	tests := []struct {
		term string
		want string
	}{
		{"ramen", "http://feed.example.com/feed/random?q=ramen"},
		{"", "http://feed.example.com/feed/random?q=noodle"},
		{"two words", "http://feed.example.com/feed/random?q=two+words"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, client.SearchURL(tt.term), "term=%q", tt.term)
	}

	assert.Equal(t, "http://feed.example.com/feed/random?q=noodle", client.DefaultURL())
}

func TestFetchParsesTimeline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ramen", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"statuses": [
				{
					"id": 101,
					"id_str": "101",
					"text": "fresh ramen",
					"created_at": "Mon Jun 01 12:00:00 +0000 2020",
					"user": {
						"id": 7,
						"name": "Chef",
						"screen_name": "chef7",
						"profile_image_url": "http://img.example.com/chef7.png"
					}
				},
				{
					"id": 102,
					"text": "instant ramen",
					"created_at": "2020-06-01T13:00:00Z",
					"user": {"id": 8, "name": "Student", "screen_name": "stu8"}
				}
			]
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "noodle")
	records, err := client.Fetch(context.Background(), client.SearchURL("ramen"))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "101", records[0].ID)
	assert.Equal(t, "fresh ramen", records[0].Text)
	assert.Equal(t, time.Date(2020, 6, 1, 12, 0, 0, 0, time.UTC), records[0].CreatedAt.UTC())
	assert.Equal(t, "7", records[0].Author.ID)
	assert.Equal(t, "Chef", records[0].Author.Name)
	assert.Equal(t, "chef7", records[0].Author.Handle)
	assert.Equal(t, "http://img.example.com/chef7.png", records[0].Author.AvatarURL)

	// id_str missing: the numeric id is rendered in decimal.
	assert.Equal(t, "102", records[1].ID)
	assert.Equal(t, time.Date(2020, 6, 1, 13, 0, 0, 0, time.UTC), records[1].CreatedAt.UTC())
}

func TestFetchZeroResultsIsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"statuses": []}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "noodle")
	records, err := client.Fetch(context.Background(), client.DefaultURL())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFetchNon2xxIsPayloadError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "noodle")
	records, err := client.Fetch(context.Background(), client.DefaultURL())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPayload))
	assert.Nil(t, records)
}

func TestFetchMalformedBodyIsPayloadError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"statuses": [{]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "noodle")
	_, err := client.Fetch(context.Background(), client.DefaultURL())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPayload))
}

func TestFetchConnectionFailureIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // nothing listening anymore

	client := NewClient(srv.URL, "noodle")
	_, err := client.Fetch(context.Background(), client.DefaultURL())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTransport))
}

func TestParseCreatedAtFallsBackToZero(t *testing.T) {
	assert.True(t, parseCreatedAt("not a date").IsZero())
	assert.True(t, parseCreatedAt("").IsZero())
}
