package pagination

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"testing"
)

type message struct{ ID string }

func messages(n int) []message {
	out := make([]message, n)
	for i := range out {
		out[i] = message{ID: fmt.Sprintf("m%03d", i+1)}
	}
	return out
}

func messageID(m message) string { return m.ID }

func TestPageSize(t *testing.T) {
	tests := []struct {
		limit, want int
	}{
		{0, DefaultLimit},
		{-5, DefaultLimit},
		{1, 1},
		{50, 50},
		{MaxLimit, MaxLimit},
		{MaxLimit + 1, MaxLimit},
	}
	for _, tt := range tests {
		if got := (Params{Limit: tt.limit}).PageSize(); got != tt.want {
			t.Errorf("PageSize(%d) = %d, want %d", tt.limit, got, tt.want)
		}
	}
}

func TestCursorRoundTrip(t *testing.T) {
	token := Cursor{Type: "message", Value: "abc:def"}.Encode()
	if strings.ContainsAny(token, "+/=") {
		t.Fatalf("expected URL-safe token, got %q", token)
	}
	c, err := DecodeCursor(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Type != "message" || c.Value != "abc:def" {
		t.Fatalf("unexpected cursor %+v", c)
	}
}

func TestDecodeCursorRejectsGarbage(t *testing.T) {
	for _, s := range []string{"!!!", "bm9jb2xvbg", Cursor{Type: "chat"}.Encode()} {
		if _, err := DecodeCursor(s); !errors.Is(err, ErrInvalidCursor) {
			t.Errorf("DecodeCursor(%q): expected ErrInvalidCursor, got %v", s, err)
		}
	}
	if c, err := DecodeCursor(""); err != nil || c != (Cursor{}) {
		t.Fatalf("expected zero cursor for empty input, got %+v %v", c, err)
	}
}

func TestDecodeCursorFor(t *testing.T) {
	id, err := DecodeCursorFor(Cursor{Type: "chat", Value: "c1"}.Encode(), "chat")
	if err != nil || id != "c1" {
		t.Fatalf("expected c1, got %q %v", id, err)
	}
	if _, err := DecodeCursorFor(Cursor{Type: "message", Value: "m1"}.Encode(), "chat"); !errors.Is(err, ErrInvalidCursor) {
		t.Fatalf("expected type mismatch error, got %v", err)
	}
	if id, err := DecodeCursorFor("", "chat"); err != nil || id != "" {
		t.Fatalf("expected first page, got %q %v", id, err)
	}
}

func TestNewPageWithMore(t *testing.T) {
	page := NewPage(messages(11), 10, "message", messageID, "/v1/chats/c1/messages", url.Values{"cursor": {"old"}})

	if len(page.Items) != 10 || page.Items[9].ID != "m010" {
		t.Fatalf("unexpected items %+v", page.Items)
	}
	c, err := DecodeCursor(page.NextCursor)
	if err != nil || c.Value != "m010" || c.Type != "message" {
		t.Fatalf("unexpected next cursor %+v %v", c, err)
	}
	if !strings.HasPrefix(page.LinkHeader, "</v1/chats/c1/messages?") || !strings.HasSuffix(page.LinkHeader, `>; rel="next"`) {
		t.Fatalf("unexpected link header %q", page.LinkHeader)
	}
	if !strings.Contains(page.LinkHeader, "limit=10") || strings.Contains(page.LinkHeader, "cursor=old") {
		t.Fatalf("expected fresh cursor and limit in link, got %q", page.LinkHeader)
	}
}

func TestNewPageLastPage(t *testing.T) {
	page := NewPage(messages(3), 10, "message", messageID, "/v1/chats", nil)
	if len(page.Items) != 3 || page.NextCursor != "" || page.LinkHeader != "" {
		t.Fatalf("expected final page without link, got %+v", page)
	}
}

func TestNewPageEmpty(t *testing.T) {
	page := NewPage[message](nil, 10, "message", messageID, "/v1/chats", nil)
	if page.Items == nil || len(page.Items) != 0 {
		t.Fatalf("expected empty non-nil items, got %#v", page.Items)
	}
}

func TestBuildLinkHeaderKeepsQuery(t *testing.T) {
	q := url.Values{"limit": {"5"}}
	link := BuildLinkHeader("/v1/chats", q, "tok")
	if link != `</v1/chats?cursor=tok&limit=5>; rel="next"` {
		t.Fatalf("unexpected link %q", link)
	}
	if q.Get("cursor") != "" {
		t.Fatal("expected caller query to be left unchanged")
	}
}
