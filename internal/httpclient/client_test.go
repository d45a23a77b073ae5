package httpclient

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestGetDefaultClient(t *testing.T) {
	client := GetDefaultClient()
	if client == nil {
		t.Fatal("Expected client to not be nil")
	}

	expected := 30 * time.Second
	if client.Timeout != expected {
		t.Errorf("Expected timeout to be %v, got %v", expected, client.Timeout)
	}

	if GetDefaultClient() != client {
		t.Errorf("Expected singleton client instance")
	}
}

func TestNewClient(t *testing.T) {
	customTimeout := 5 * time.Second
	client := NewClient(customTimeout, false)
	if client.Timeout != customTimeout {
		t.Errorf("Expected timeout to be %v, got %v", customTimeout, client.Timeout)
	}
	transport, ok := client.Transport.(*http.Transport)
	if !ok || transport == nil {
		t.Fatalf("Expected transport to be *http.Transport")
	}
	if transport.MaxIdleConns != MaxIdleConns {
		t.Errorf("Expected MaxIdleConns to be %d, got %d", MaxIdleConns, transport.MaxIdleConns)
	}
	if transport.TLSClientConfig != nil {
		t.Errorf("Expected secure client to keep default TLS config")
	}
}

func TestNewClientInsecure(t *testing.T) {
	client := NewClient(DefaultTimeout, true)
	transport, ok := client.Transport.(*http.Transport)
	if !ok || transport == nil {
		t.Fatalf("Expected transport to be *http.Transport")
	}
	if transport.TLSClientConfig == nil || !transport.TLSClientConfig.InsecureSkipVerify {
		t.Errorf("Expected InsecureSkipVerify to be set")
	}
}

func TestInsecureClientAcceptsSelfSigned(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "ok")
	}))
	defer server.Close()

	secure := NewClient(DefaultTimeout, false)
	req, _ := http.NewRequest("GET", server.URL, nil)
	if _, _, err := DoAndRead(secure, req); err == nil {
		t.Error("Expected certificate error from secure client")
	} else if !strings.Contains(err.Error(), "certificate") && !strings.Contains(err.Error(), "x509") {
		t.Errorf("Expected certificate error, got: %v", err)
	}

	insecure := NewClient(DefaultTimeout, true)
	req2, _ := http.NewRequest("GET", server.URL, nil)
	body, resp, err := DoAndRead(insecure, req2)
	if err != nil {
		t.Fatalf("Insecure client failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Errorf("Unexpected response: %d %q", resp.StatusCode, body)
	}
}

func TestDoAndRead(t *testing.T) {
	expectedBody := "hello world"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, expectedBody)
	}))
	defer server.Close()

	client := GetDefaultClient()
	req, _ := http.NewRequest("GET", server.URL, nil)

	body, resp, err := DoAndRead(client, req)
	if err != nil {
		t.Fatalf("DoAndRead failed: %v", err)
	}

	if string(body) != expectedBody {
		t.Errorf("Expected body %q, got %q", expectedBody, string(body))
	}

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status OK, got %v", resp.Status)
	}
}

func TestDoAndReadTooLarge(t *testing.T) {
	oversized := make([]byte, MaxResponseBytes+1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", fmt.Sprintf("%d", len(oversized)))
		w.WriteHeader(http.StatusOK)
		w.Write(oversized)
	}))
	defer server.Close()

	client := GetDefaultClient()
	req, _ := http.NewRequest("GET", server.URL, nil)

	_, _, err := DoAndRead(client, req)
	if err == nil || !strings.Contains(err.Error(), "response body too large") {
		t.Fatalf("expected response body too large error, got: %v", err)
	}
}

func TestSetDefaultClientForTesting(t *testing.T) {
	custom := &http.Client{Timeout: 3 * time.Second}
	restore := SetDefaultClientForTesting(custom)
	defer restore()

	if GetDefaultClient() != custom {
		t.Fatalf("Expected overridden default client")
	}
}
