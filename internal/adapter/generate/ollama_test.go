package generate

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestExtractTextSingleObject(t *testing.T) {
	got := ExtractText(`{"response": "hello"}`)
	if got != "hello" {
		t.Errorf("ExtractText = %q, want %q", got, "hello")
	}
}

func TestExtractTextConcatenatedObjects(t *testing.T) {
	// Streaming backends write objects back to back with no separator.
	got := ExtractText(`{"response":"A "}{"response":"B"}`)
	if got != "A B" {
		t.Errorf("ExtractText = %q, want %q", got, "A B")
	}
}

func TestExtractTextNDJSON(t *testing.T) {
	got := ExtractText("{\"response\":\"first \"}\n{\"response\":\"second\"}\n")
	if got != "first second" {
		t.Errorf("ExtractText = %q, want %q", got, "first second")
	}
}

func TestExtractTextStrayBytesBetweenObjects(t *testing.T) {
	// The parser advances one byte on decode failure instead of
	// aborting, so garbage between objects is tolerated.
	got := ExtractText(`{"response":"A"}xx{{"response":"B"}`)
	if got != "AB" {
		t.Errorf("ExtractText = %q, want %q", got, "AB")
	}
}

func TestExtractTextFieldPrecedence(t *testing.T) {
	// When an object carries both, text wins over response.
	got := ExtractText(`{"response": "secondary", "text": "primary"}`)
	if got != "primary" {
		t.Errorf("ExtractText = %q, want %q", got, "primary")
	}
}

func TestExtractTextRawText(t *testing.T) {
	got := ExtractText("just text")
	if got != "just text" {
		t.Errorf("ExtractText = %q, want %q", got, "just text")
	}
}

func TestExtractTextChatMessageShape(t *testing.T) {
	got := ExtractText(`{"message": {"role": "assistant", "content": "chat reply"}}`)
	if got != "chat reply" {
		t.Errorf("ExtractText = %q, want %q", got, "chat reply")
	}
}

func TestExtractTextObjectWithoutTextField(t *testing.T) {
	// A well-formed object with no recognizable text field comes back
	// as its serialization rather than an error.
	got := ExtractText(`{"done": true}`)
	if got == "" {
		t.Error("expected a non-empty fallback for an unrecognized object")
	}
}

func TestGenerateSingleResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"response": "a summary"}`))
	}))
	defer srv.Close()

	client := NewOllamaClient(srv.URL, "llama3:latest", 256, 5*time.Second, false)
	gen, err := client.Generate("prompt")
	if err != nil {
		t.Fatal(err)
	}
	if gen.Text != "a summary" {
		t.Errorf("Text = %q, want %q", gen.Text, "a summary")
	}
	if gen.Raw != `{"response": "a summary"}` {
		t.Errorf("Raw = %q", gen.Raw)
	}
}

func TestGenerateStreamedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":"one "}{"response":"two "}{"response":"three"}`))
	}))
	defer srv.Close()

	client := NewOllamaClient(srv.URL, "llama3:latest", 256, 5*time.Second, false)
	gen, err := client.Generate("prompt")
	if err != nil {
		t.Fatal(err)
	}
	if gen.Text != "one two three" {
		t.Errorf("Text = %q, want %q", gen.Text, "one two three")
	}
}

func TestGenerateChatEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"message": {"content": "chat text"}}`))
	}))
	defer srv.Close()

	client := NewOllamaClient(srv.URL, "llama3:latest", 256, 5*time.Second, true)
	gen, err := client.Generate("prompt")
	if err != nil {
		t.Fatal(err)
	}
	if gen.Text != "chat text" {
		t.Errorf("Text = %q, want %q", gen.Text, "chat text")
	}
}

func TestGenerateHTTPErrorIsHard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewOllamaClient(srv.URL, "missing", 256, 5*time.Second, false)
	if _, err := client.Generate("prompt"); err == nil {
		t.Error("HTTP error status must propagate as a hard error")
	}
}
