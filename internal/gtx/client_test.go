package gtx

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/oukeidos/kvlate/internal/apperrors"
)

func TestTranslate(t *testing.T) {
	var gotQuery url.Values
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotUA = r.Header.Get("User-Agent")
		fmt.Fprint(w, `[[["Bonjour {1}","Hello {1}",null,null,1]],[["fr"]]],,"en"`)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	res, err := client.Translate(context.Background(), "Hello {name}", "English", "French")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	if res.Text != "Bonjour {name}" {
		t.Errorf("Text = %q, want %q", res.Text, "Bonjour {name}")
	}
	if res.Elapsed <= 0 {
		t.Errorf("Elapsed = %v, want > 0", res.Elapsed)
	}
	if len(res.DroppedTokens) != 0 {
		t.Errorf("DroppedTokens = %v, want none", res.DroppedTokens)
	}

	if gotQuery.Get("client") != "gtx" {
		t.Errorf("client = %q, want gtx", gotQuery.Get("client"))
	}
	if gotQuery.Get("sl") != "en" || gotQuery.Get("tl") != "fr" {
		t.Errorf("sl/tl = %q/%q, want en/fr", gotQuery.Get("sl"), gotQuery.Get("tl"))
	}
	if gotQuery.Get("dt") != "t" {
		t.Errorf("dt = %q, want t", gotQuery.Get("dt"))
	}
	if gotQuery.Get("q") != "Hello {1}" {
		t.Errorf("q = %q, want masked text", gotQuery.Get("q"))
	}
	if !strings.Contains(gotUA, "Mozilla") {
		t.Errorf("User-Agent = %q, want browser-like", gotUA)
	}
}

func TestTranslate_UnknownLanguage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("sl") != "" {
			t.Errorf("sl = %q, want empty for unknown language", r.URL.Query().Get("sl"))
		}
		fmt.Fprint(w, `[[["word","word"]]]`)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	res, err := client.Translate(context.Background(), "word", "Klingon", "French")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if res.Text != "word" {
		t.Errorf("Text = %q, want %q", res.Text, "word")
	}
}

func TestTranslate_DroppedToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Remote lost the {2} reference.
		fmt.Fprint(w, `[[["Salut {1}","Hi {1} {2}",null,null,1]],,"en"`)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	res, err := client.Translate(context.Background(), "Hi {a} {b}", "English", "French")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if res.Text != "Salut {a}" {
		t.Errorf("Text = %q, want %q", res.Text, "Salut {a}")
	}
	if len(res.DroppedTokens) != 1 || res.DroppedTokens[0] != "2" {
		t.Errorf("DroppedTokens = %v, want [2]", res.DroppedTokens)
	}
}

func TestTranslate_StatusClassification(t *testing.T) {
	tests := []struct {
		status   int
		wantKind apperrors.Kind
	}{
		{http.StatusTooManyRequests, apperrors.KindRateLimit},
		{http.StatusInternalServerError, apperrors.KindTransport},
		{http.StatusForbidden, apperrors.KindBadRequest},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := NewClient(Config{BaseURL: server.URL})
			_, err := client.Translate(context.Background(), "text", "English", "French")
			if err == nil {
				t.Fatalf("expected error for status %d", tt.status)
			}
			kind, ok := apperrors.KindOf(err)
			if !ok || kind != tt.wantKind {
				t.Errorf("KindOf() = (%q, %v), want %q", kind, ok, tt.wantKind)
			}
		})
	}
}

func TestTranslate_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // immediately, to force a connection error

	client := NewClient(Config{BaseURL: server.URL})
	_, err := client.Translate(context.Background(), "text", "English", "French")
	if err == nil {
		t.Fatal("expected transport error")
	}
	if kind, ok := apperrors.KindOf(err); !ok || kind != apperrors.KindTransport {
		t.Errorf("KindOf() = (%q, %v), want transport", kind, ok)
	}
}

func TestTranslate_Canceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[[["x","x"]]]`)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(Config{BaseURL: server.URL})
	if _, err := client.Translate(ctx, "text", "English", "French"); err == nil {
		t.Fatal("expected error from canceled context")
	}
}
