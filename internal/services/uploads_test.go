package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestImgbbHostForwardsBodyVerbatim(t *testing.T) {
	var gotBody []byte
	var gotType, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotType = r.Header.Get("Content-Type")
		gotKey = r.URL.Query().Get("key")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"display_url":"https://i.example/x.png"},"success":true}`))
	}))
	defer srv.Close()

	host := NewImgbbHost(srv.URL+"/1/upload", "secret-key")
	resp, err := host.Upload(context.Background(), "application/x-www-form-urlencoded", []byte("image=aGVsbG8="))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if string(gotBody) != "image=aGVsbG8=" {
		t.Fatalf("body changed in transit: %q", gotBody)
	}
	if gotType != "application/x-www-form-urlencoded" {
		t.Fatalf("content type not forwarded: %q", gotType)
	}
	if gotKey != "secret-key" {
		t.Fatalf("expected api key in query, got %q", gotKey)
	}
	if !strings.Contains(string(resp.Body), "display_url") || resp.ContentType != "application/json" {
		t.Fatalf("unexpected response %q %q", resp.ContentType, resp.Body)
	}
}

func TestImgbbHostKeepsExistingKey(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	host := NewImgbbHost(srv.URL+"?key=from-url", "configured")
	if _, err := host.Upload(context.Background(), "", nil); err != nil {
		t.Fatal(err)
	}
	if gotKey != "from-url" {
		t.Fatalf("expected key from endpoint, got %q", gotKey)
	}
}

func TestImgbbHostRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"bad key"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	host := NewImgbbHost(srv.URL, "k")
	if _, err := host.Upload(context.Background(), "application/json", []byte(`{}`)); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}

func TestReadImagePayloadMultipart(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("name", "banner")
	fw, err := mw.CreateFormFile("image", "banner.png")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte("png-bytes"))
	mw.Close()

	got, err := ReadImagePayload(mw.FormDataContentType(), buf.Bytes())
	if err != nil {
		t.Fatalf("ReadImagePayload: %v", err)
	}
	r, ok := got.(io.Reader)
	if !ok {
		t.Fatalf("expected a reader, got %T", got)
	}
	data, _ := io.ReadAll(r)
	if string(data) != "png-bytes" {
		t.Fatalf("unexpected image bytes %q", data)
	}
}

func TestReadImagePayloadMultipartWithoutImage(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("name", "banner")
	mw.Close()

	if _, err := ReadImagePayload(mw.FormDataContentType(), buf.Bytes()); !errors.Is(err, errNoImage) {
		t.Fatalf("expected errNoImage, got %v", err)
	}
}

func TestReadImagePayloadJSON(t *testing.T) {
	pngHeader := []byte("\x89PNG\r\n\x1a\n0000")
	encoded := base64.StdEncoding.EncodeToString(pngHeader)

	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{"url", `{"image":"https://cdn.example/a.jpg"}`, "https://cdn.example/a.jpg", false},
		{"data uri", `{"image":"data:image/gif;base64,R0lG"}`, "data:image/gif;base64,R0lG", false},
		{"bare base64", `{"image":"` + encoded + `"}`, "data:image/png;base64," + encoded, false},
		{"empty", `{"image":""}`, "", true},
		{"not base64", `{"image":"%%%"}`, "", true},
		{"not json", `image=abc`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadImagePayload("application/json", []byte(tt.body))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestImgbbEnvelope(t *testing.T) {
	env := imgbbEnvelope("camps/abc", "https://res.example/abc.png")
	data := env["data"].(map[string]interface{})
	if data["display_url"] != "https://res.example/abc.png" || data["id"] != "camps/abc" {
		t.Fatalf("unexpected envelope %v", env)
	}
	if env["success"] != true {
		t.Fatal("expected success flag")
	}
}
