package media

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shashankj99/med-o-sys-api-auth/domain"
)

func TestCDNAvatarService_Store(t *testing.T) {
	t.Run("empty image stores the default avatar", func(t *testing.T) {
		svc := NewCDNAvatarService("http://unused.invalid", "http://cdn.invalid/image/avatar/")
		name, err := svc.Store(context.Background(), "", "9841000000")
		if err != nil {
			t.Fatalf("Store: %v", err)
		}
		if name != DefaultAvatar {
			t.Errorf("expected %q, got %q", DefaultAvatar, name)
		}
	})

	t.Run("data URI is stripped and uploaded", func(t *testing.T) {
		var got uploadRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
				t.Errorf("bad upload body: %v", err)
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		svc := NewCDNAvatarService(server.URL, "http://cdn.invalid/image/avatar/")
		name, err := svc.Store(context.Background(), "data:image/jpeg;base64,QUJD", "9841000000")
		if err != nil {
			t.Fatalf("Store: %v", err)
		}
		if name != "9841000000.jpg" {
			t.Errorf("expected the filename to carry the mobile, got %q", name)
		}
		if got.ImgString != "QUJD" {
			t.Errorf("expected the data URI prefix to be stripped, got %q", got.ImgString)
		}
		if got.MobileNumber != "9841000000" {
			t.Errorf("unexpected mobile %q", got.MobileNumber)
		}
	})

	t.Run("server errors surface as internal", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		svc := NewCDNAvatarService(server.URL, "http://cdn.invalid/image/avatar/")
		_, err := svc.Store(context.Background(), "data:image/jpeg;base64,QUJD", "9841000000")
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if domain.KindOf(err) != domain.KindInternal {
			t.Errorf("expected internal, got %v", domain.KindOf(err))
		}
	})

	t.Run("repeated failures open the breaker", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		svc := NewCDNAvatarService(server.URL, "http://cdn.invalid/image/avatar/")
		for i := 0; i < 6; i++ {
			_, _ = svc.Store(context.Background(), "data:image/jpeg;base64,QUJD", "9841000000")
		}
		// The breaker rejects before reaching the server once tripped.
		_, err := svc.Store(context.Background(), "data:image/jpeg;base64,QUJD", "9841000000")
		if err == nil {
			t.Fatal("expected the open breaker to reject the call")
		}
	})
}

func TestCDNAvatarService_URL(t *testing.T) {
	svc := NewCDNAvatarService("http://unused.invalid", "http://cdn.invalid/image/avatar/")
	if got := svc.URL("9841000000.jpg"); got != "http://cdn.invalid/image/avatar/9841000000.jpg" {
		t.Errorf("unexpected avatar URL %q", got)
	}

	svc = NewCDNAvatarService("http://unused.invalid", "http://cdn.invalid/image/avatar")
	if got := svc.URL(DefaultAvatar); got != "http://cdn.invalid/image/avatar/default.png" {
		t.Errorf("unexpected avatar URL %q", got)
	}
}
