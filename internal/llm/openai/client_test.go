package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"resumegen/resume/model"
)

func TestIsGPT5(t *testing.T) {
	tests := []struct {
		name  string
		model string
		want  bool
	}{
		{name: "gpt5", model: "gpt-5", want: true},
		{name: "gpt5 variant", model: "gpt-5-nano", want: true},
		{name: "gpt5 uppercase", model: " GPT-5o ", want: true},
		{name: "gpt4", model: "gpt-4o", want: false},
		{name: "empty", model: "", want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := isGPT5(tt.model); got != tt.want {
				t.Fatalf("isGPT5(%q) = %v, want %v", tt.model, got, tt.want)
			}
		})
	}
}

type fakeAPI struct {
	mu       sync.Mutex
	requests []map[string]any
	replies  []string
}

func (f *fakeAPI) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		f.mu.Lock()
		f.requests = append(f.requests, payload)
		reply := f.replies[0]
		if len(f.replies) > 1 {
			f.replies = f.replies[1:]
		}
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		body, _ := json.Marshal(map[string]any{
			"choices": []any{map[string]any{"message": map[string]any{"role": "assistant", "content": reply}}},
			"usage":   map[string]any{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
		})
		_, _ = w.Write(body)
	}
}

func newTestClient(t *testing.T, api *fakeAPI, modelName string) *Client {
	t.Helper()
	server := httptest.NewServer(api.handler(t))
	t.Cleanup(server.Close)

	oldURL := apiURL
	apiURL = server.URL
	t.Cleanup(func() { apiURL = oldURL })

	client, err := NewClient("test-key", modelName)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestGenerateResumeContentDecodesAndNormalizes(t *testing.T) {
	api := &fakeAPI{replies: []string{`{
		"name": " Jane Doe ",
		"email": "jane@example.com",
		"summary": "Builds things.",
		"experience": [{"title": "Engineer", "company": "Acme", "duration": "2020 - 2024", "description": ["Shipped", " "]}],
		"education": [{"degree": "", "institution": "", "year": ""}],
		"skills": ["Go", ""],
		"projects": []
	}`}}
	client := newTestClient(t, api, "")

	content, err := client.GenerateResumeContent(context.Background(), "Go engineer", model.PersonalInfo{Name: "Jane"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if content.Name != "Jane Doe" {
		t.Fatalf("expected trimmed name, got %q", content.Name)
	}
	if len(content.Experience) != 1 || len(content.Experience[0].Description) != 1 {
		t.Fatalf("unexpected experience: %+v", content.Experience)
	}
	if len(content.Education) != 0 {
		t.Fatalf("expected empty education entry dropped, got %+v", content.Education)
	}
	if len(content.Skills) != 1 {
		t.Fatalf("expected blank skill dropped, got %v", content.Skills)
	}

	req := api.requests[0]
	if req["model"] != DefaultModel {
		t.Fatalf("expected default model, got %v", req["model"])
	}
	if _, ok := req["temperature"]; ok {
		t.Fatalf("temperature must be omitted for gpt-5 models")
	}
	format, ok := req["response_format"].(map[string]any)
	if !ok || format["type"] != "json_object" {
		t.Fatalf("expected json_object response format, got %v", req["response_format"])
	}
	messages := req["messages"].([]any)
	user := messages[len(messages)-1].(map[string]any)["content"].(string)
	if !strings.Contains(user, "Go engineer") || !strings.Contains(user, `"name": "Jane"`) {
		t.Fatalf("prompt missing inputs: %s", user)
	}
}

func TestGenerateResumeContentRepairsInvalidJSON(t *testing.T) {
	api := &fakeAPI{replies: []string{"not json", `{"name": "Jane"}`}}
	client := newTestClient(t, api, "gpt-5-nano")

	content, err := client.GenerateResumeContent(context.Background(), "offer", model.PersonalInfo{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if content.Name != "Jane" {
		t.Fatalf("expected repaired content, got %+v", content)
	}
	if len(api.requests) != 2 {
		t.Fatalf("expected a repair request, got %d requests", len(api.requests))
	}
}

func TestGenerateCoverLetterContentPlainText(t *testing.T) {
	api := &fakeAPI{replies: []string{"```text\nFirst paragraph.\n\nSecond paragraph.\n```"}}
	client := newTestClient(t, api, "gpt-4o-mini")

	body, err := client.GenerateCoverLetterContent(context.Background(), "offer", model.PersonalInfo{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if body != "First paragraph.\n\nSecond paragraph." {
		t.Fatalf("unexpected body %q", body)
	}

	req := api.requests[0]
	if _, ok := req["response_format"]; ok {
		t.Fatalf("plain text request must not set response_format")
	}
	if temp, ok := req["temperature"].(float64); !ok || temp < 0.69 || temp > 0.71 {
		t.Fatalf("expected temperature 0.7, got %v", req["temperature"])
	}
}

func TestCompleteSurfacesAPIErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
	}))
	defer server.Close()
	oldURL := apiURL
	apiURL = server.URL
	t.Cleanup(func() { apiURL = oldURL })

	client, err := NewClient("test-key", "")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = client.GenerateCoverLetterContent(context.Background(), "offer", model.PersonalInfo{})
	if err == nil || !strings.Contains(err.Error(), "openai http status 401: bad key") {
		t.Fatalf("expected api error, got %v", err)
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient(" ", "gpt-5-nano"); err == nil {
		t.Fatalf("expected error without api key")
	}
}

func TestStripFences(t *testing.T) {
	cases := map[string]string{
		"plain":            "plain",
		"```\nbody\n```":   "body",
		"```md\nbody\n```": "body",
		"```one line```":   "one line",
		"  spaced text  ":  "spaced text",
	}
	for in, want := range cases {
		if got := stripFences(in); got != want {
			t.Fatalf("stripFences(%q) = %q, want %q", in, got, want)
		}
	}
}
