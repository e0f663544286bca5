package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testGemini(t *testing.T, handler http.HandlerFunc) *Gemini {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	g := NewGemini("test-key", "gemini-2.5-flash", time.Second, nil)
	g.baseURL = srv.URL
	return g
}

func TestGeminiRequestShape(t *testing.T) {
	var gotPath, gotKey string
	var gotReq geminiRequest
	g := testGemini(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": "  A Title  "}}}},
			},
		})
	})

	out, err := g.GenerateTitle(context.Background(), "note text")
	if err != nil {
		t.Fatalf("GenerateTitle: %v", err)
	}
	if out != "A Title" {
		t.Errorf("out = %q, want trimmed text", out)
	}
	if gotPath != "/v1beta/models/gemini-2.5-flash:generateContent" {
		t.Errorf("path = %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("key = %q", gotKey)
	}
	if len(gotReq.Contents) != 1 || len(gotReq.Contents[0].Parts) != 1 {
		t.Fatalf("request shape: %+v", gotReq)
	}
	if !strings.Contains(gotReq.Contents[0].Parts[0].Text, "note text") {
		t.Errorf("prompt missing context: %q", gotReq.Contents[0].Parts[0].Text)
	}
}

func TestGeminiCustomGenerateAttachments(t *testing.T) {
	var gotReq geminiRequest
	g := testGemini(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": "ok"}}}},
			},
		})
	})

	// An image travels as a separate inline-data part.
	img := &Attachment{Name: "shot.png", MIME: "image/png", Data: []byte{1, 2, 3}}
	if _, err := g.CustomGenerate(context.Background(), "describe", "ctx", img); err != nil {
		t.Fatalf("CustomGenerate image: %v", err)
	}
	parts := gotReq.Contents[0].Parts
	if len(parts) != 2 || parts[1].InlineData == nil || parts[1].InlineData.MIMEType != "image/png" {
		t.Fatalf("image request parts: %+v", parts)
	}

	// A text file is folded into the prompt, not sent as a part.
	txt := &Attachment{Name: "data.csv", MIME: "text/csv", Data: []byte("a,b,c")}
	if _, err := g.CustomGenerate(context.Background(), "analyze", "ctx", txt); err != nil {
		t.Fatalf("CustomGenerate text: %v", err)
	}
	parts = gotReq.Contents[0].Parts
	if len(parts) != 1 {
		t.Fatalf("text request parts: %+v", parts)
	}
	if !strings.Contains(parts[0].Text, "data.csv") || !strings.Contains(parts[0].Text, "a,b,c") {
		t.Errorf("prompt = %q", parts[0].Text)
	}
}

func TestGeminiErrorResponse(t *testing.T) {
	g := testGemini(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "quota exceeded"},
		})
	})
	if _, err := g.Summarize(context.Background(), "x"); err == nil || !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("err = %v", err)
	}
}

func TestGeminiNoKey(t *testing.T) {
	g := NewGemini("", "gemini-2.5-flash", time.Second, nil)
	if _, err := g.Summarize(context.Background(), "x"); err == nil {
		t.Error("missing key should fail before any network call")
	}
}
