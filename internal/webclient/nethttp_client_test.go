package webclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sitelens/sitelens/internal/model"
	"github.com/sitelens/sitelens/internal/testutil"
	"github.com/sitelens/sitelens/internal/webclient"
)

func TestNetHTTPClient_Get(t *testing.T) {
	t.Parallel()

	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("X-Test", "yes")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("hello"))
	}))
	defer srv.Close()

	wc, err := webclient.NewNetHTTPClient(webclient.Config{}, &testutil.DummyLogger{}, srv.Client())
	if err != nil {
		t.Fatalf("NewNetHTTPClient: %v", err)
	}
	defer wc.Close()

	resp, err := wc.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !resp.OK() {
		t.Errorf("status = %d, want 2xx", resp.StatusCode)
	}
	if string(resp.Body) != "hello" {
		t.Errorf("body = %q", resp.Body)
	}
	if resp.Header("X-Test") != "yes" {
		t.Error("response headers not captured")
	}
	if gotUA != webclient.DefaultUserAgent {
		t.Errorf("User-Agent = %q, want the default", gotUA)
	}
}

func TestNetHTTPClient_Do_CustomHeadersAndMethod(t *testing.T) {
	t.Parallel()

	var gotMethod, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	wc, err := webclient.NewNetHTTPClient(webclient.Config{UserAgent: "custom-ua"}, &testutil.DummyLogger{}, srv.Client())
	if err != nil {
		t.Fatalf("NewNetHTTPClient: %v", err)
	}
	defer wc.Close()

	resp, err := wc.Do(context.Background(), &model.Request{
		Method:  "post",
		URL:     srv.URL,
		Headers: http.Header{"Authorization": []string{"Bearer tok"}},
		Body:    []byte(`{}`),
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if gotMethod != http.MethodPost {
		t.Errorf("method = %q, want POST (uppercased)", gotMethod)
	}
	if gotAuth != "Bearer tok" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestNetHTTPClient_Do_NilRequest(t *testing.T) {
	t.Parallel()

	wc, err := webclient.NewNetHTTPClient(webclient.Config{}, &testutil.DummyLogger{}, nil)
	if err != nil {
		t.Fatalf("NewNetHTTPClient: %v", err)
	}
	if _, err := wc.Do(context.Background(), nil); err == nil {
		t.Error("expected error for nil request")
	}
}

func TestNewWebClient_UnknownBackend(t *testing.T) {
	t.Parallel()

	if _, err := webclient.NewWebClient(webclient.Config{Client: "nonsense"}, &testutil.DummyLogger{}); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestNewWebClient_DefaultBackend(t *testing.T) {
	t.Parallel()

	wc, err := webclient.NewWebClient(webclient.Config{}, &testutil.DummyLogger{})
	if err != nil {
		t.Fatalf("NewWebClient: %v", err)
	}
	if _, ok := wc.(*webclient.NetHTTPClient); !ok {
		t.Errorf("default backend = %T, want *NetHTTPClient", wc)
	}
	_ = wc.Close()
}
