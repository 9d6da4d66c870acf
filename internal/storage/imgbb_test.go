package storage

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestImgBBUpload(t *testing.T) {
	var gotKey, gotName, gotImage string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parsing form: %v", err)
		}
		gotKey = r.FormValue("key")
		gotName = r.FormValue("name")
		gotImage = r.FormValue("image")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"display_url":"https://i.ibb.co/abc/foto.png"}}`))
	}))
	defer srv.Close()

	client := newImgBBForTest("chave-de-teste", srv.URL)

	url, err := client.Upload(context.Background(), "foto.png", []byte("conteudo-da-imagem"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if url != "https://i.ibb.co/abc/foto.png" {
		t.Errorf("url: got %q", url)
	}
	if gotKey != "chave-de-teste" {
		t.Errorf("key: got %q", gotKey)
	}
	if gotName != "foto.png" {
		t.Errorf("name: got %q", gotName)
	}
	if decoded, _ := base64.StdEncoding.DecodeString(gotImage); string(decoded) != "conteudo-da-imagem" {
		t.Errorf("image should be base64 of the payload, got %q", gotImage)
	}
}

func TestImgBBUploadGeneratesNameWhenEmpty(t *testing.T) {
	var gotName string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		gotName = r.FormValue("name")
		w.Write([]byte(`{"success":true,"data":{"display_url":"https://i.ibb.co/x/y.png"}}`))
	}))
	defer srv.Close()

	client := newImgBBForTest("k", srv.URL)
	if _, err := client.Upload(context.Background(), "", []byte("x")); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if gotName == "" {
		t.Error("an upload name should be generated when none is given")
	}
}

func TestImgBBUploadFailures(t *testing.T) {
	t.Run("non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer srv.Close()

		if _, err := newImgBBForTest("k", srv.URL).Upload(context.Background(), "n", []byte("x")); err == nil {
			t.Error("expected error on non-200 response")
		}
	})

	t.Run("success=false", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success":false}`))
		}))
		defer srv.Close()

		if _, err := newImgBBForTest("k", srv.URL).Upload(context.Background(), "n", []byte("x")); err == nil {
			t.Error("expected error when the store reports failure")
		}
	})
}
