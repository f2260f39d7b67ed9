package proxy

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// mockProvider returns an httptest.Server plus an endpoint map routing the
// named provider at it.
func mockProvider(t *testing.T, provider string, handler http.HandlerFunc) map[string]string {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return map[string]string{provider: srv.URL}
}

func TestComplete_NoProvidersConfigured(t *testing.T) {
	c := NewClient()

	res := c.Complete(context.Background(), "hello", nil, "system")
	if res.Success {
		t.Fatal("Success = true, want false")
	}
	if res.Error != "API key not configured" {
		t.Errorf("Error = %q, want %q", res.Error, "API key not configured")
	}
	if res.Fallback == "" {
		t.Error("Fallback is empty, want non-empty canned reply")
	}
}

func TestComplete_EmptyAPIKeyMakesNoRequest(t *testing.T) {
	called := false
	endpoints := mockProvider(t, ProviderOpenAI, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	c := NewClientWithEndpoints(endpoints, Settings{Provider: ProviderOpenAI, APIKey: ""})

	res := c.Complete(context.Background(), "hello", nil, "system")
	if res.Success {
		t.Fatal("Success = true, want false")
	}
	if res.Error != "API key not configured" {
		t.Errorf("Error = %q, want %q", res.Error, "API key not configured")
	}
	if res.Fallback == "" {
		t.Error("Fallback is empty")
	}
	if called {
		t.Error("upstream was called despite missing API key")
	}
}

func TestComplete_OpenAISuccess(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any

	endpoints := mockProvider(t, ProviderOpenAI, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"Hi there"}}],"usage":{"prompt_tokens":10,"completion_tokens":5,"total_tokens":15}}`))
	})
	c := NewClientWithEndpoints(endpoints, Settings{Provider: ProviderOpenAI, APIKey: "test-key"})

	history := []Turn{{Role: "user", Content: "earlier"}, {Role: "assistant", Content: "reply"}}
	res := c.Complete(context.Background(), "hello", history, "system prompt")

	if !res.Success {
		t.Fatalf("Success = false, error = %q", res.Error)
	}
	if res.Content != "Hi there" {
		t.Errorf("Content = %q", res.Content)
	}
	if res.Usage == nil || res.Usage.TotalTokens != 15 {
		t.Errorf("Usage = %+v, want total 15", res.Usage)
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer test-key")
	}
	if gotBody["model"] != "gpt-3.5-turbo" {
		t.Errorf("model = %v, want default gpt-3.5-turbo", gotBody["model"])
	}
	if gotBody["temperature"] != 0.7 {
		t.Errorf("temperature = %v, want 0.7", gotBody["temperature"])
	}
	if gotBody["max_tokens"] != float64(500) {
		t.Errorf("max_tokens = %v, want 500", gotBody["max_tokens"])
	}

	msgs, ok := gotBody["messages"].([]any)
	if !ok || len(msgs) != 4 {
		t.Fatalf("messages = %v, want system + 2 history + user", gotBody["messages"])
	}
	first := msgs[0].(map[string]any)
	last := msgs[3].(map[string]any)
	if first["role"] != "system" || first["content"] != "system prompt" {
		t.Errorf("messages[0] = %v, want system prompt first", first)
	}
	if last["role"] != "user" || last["content"] != "hello" {
		t.Errorf("messages[3] = %v, want current user message last", last)
	}
}

func TestComplete_UpstreamError(t *testing.T) {
	endpoints := mockProvider(t, ProviderOpenAI, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	c := NewClientWithEndpoints(endpoints, Settings{Provider: ProviderOpenAI, APIKey: "test-key"})

	res := c.Complete(context.Background(), "hello", nil, "system")
	if res.Success {
		t.Fatal("Success = true, want false")
	}
	if res.Error != "openai API error: 500" {
		t.Errorf("Error = %q, want %q", res.Error, "openai API error: 500")
	}
	if res.Fallback == "" {
		t.Error("Fallback is empty")
	}
}

func TestComplete_MalformedResponse(t *testing.T) {
	endpoints := mockProvider(t, ProviderOpenAI, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	})
	c := NewClientWithEndpoints(endpoints, Settings{Provider: ProviderOpenAI, APIKey: "test-key"})

	res := c.Complete(context.Background(), "hello", nil, "system")
	if res.Success {
		t.Fatal("Success = true, want false")
	}
	if res.Error != "invalid response from openai API" {
		t.Errorf("Error = %q", res.Error)
	}
}

func TestComplete_Gemini(t *testing.T) {
	var gotPath string
	var gotKey string
	var gotAuth string
	var gotBody map[string]any

	endpoints := mockProvider(t, ProviderGemini, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Gemini says hi"}]}}]}`))
	})
	c := NewClientWithEndpoints(endpoints, Settings{Provider: ProviderGemini, APIKey: "g-key"})

	res := c.Complete(context.Background(), "hello", nil, "system")
	if !res.Success {
		t.Fatalf("Success = false, error = %q", res.Error)
	}
	if res.Content != "Gemini says hi" {
		t.Errorf("Content = %q", res.Content)
	}

	if !strings.HasSuffix(gotPath, "/gemini-1.5-flash:generateContent") {
		t.Errorf("path = %q, want default model generateContent", gotPath)
	}
	if gotKey != "g-key" {
		t.Errorf("key query param = %q, want %q", gotKey, "g-key")
	}
	if _, ok := gotBody["contents"]; !ok {
		t.Error("request body has no contents field")
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want none for key-in-URL auth", gotAuth)
	}
}

func TestComplete_ChainFallsThrough(t *testing.T) {
	failing := mockProvider(t, ProviderOpenAI, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	working := mockProvider(t, ProviderDeepSeek, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"content":"backup reply"}}]}`))
	})
	endpoints := map[string]string{
		ProviderOpenAI:   failing[ProviderOpenAI],
		ProviderDeepSeek: working[ProviderDeepSeek],
	}

	c := NewClientWithEndpoints(endpoints,
		Settings{Provider: ProviderOpenAI, APIKey: "k1"},
		Settings{Provider: ProviderDeepSeek, APIKey: "k2"},
	)

	res := c.Complete(context.Background(), "hello", nil, "system")
	if !res.Success {
		t.Fatalf("Success = false, error = %q", res.Error)
	}
	if res.Content != "backup reply" {
		t.Errorf("Content = %q, want %q", res.Content, "backup reply")
	}
}

func TestComplete_AllProvidersFailJoinsErrors(t *testing.T) {
	endpoints := map[string]string{}
	for provider, m := range map[string]int{ProviderOpenAI: 500, ProviderDeepSeek: 429} {
		status := m
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))
		t.Cleanup(srv.Close)
		endpoints[provider] = srv.URL
	}

	c := NewClientWithEndpoints(endpoints,
		Settings{Provider: ProviderOpenAI, APIKey: "k1"},
		Settings{Provider: ProviderDeepSeek, APIKey: "k2"},
	)

	res := c.Complete(context.Background(), "hello", nil, "system")
	if res.Success {
		t.Fatal("Success = true, want false")
	}
	if !strings.Contains(res.Error, "openai API error: 500") {
		t.Errorf("Error = %q, missing openai part", res.Error)
	}
	if !strings.Contains(res.Error, "deepseek API error: 429") {
		t.Errorf("Error = %q, missing deepseek part", res.Error)
	}
	if !strings.Contains(res.Error, "; ") {
		t.Errorf("Error = %q, want parts joined with %q", res.Error, "; ")
	}
}

func TestComplete_UnsupportedProvider(t *testing.T) {
	c := NewClient(Settings{Provider: "mystery", APIKey: "k"})

	res := c.Complete(context.Background(), "hello", nil, "system")
	if res.Success {
		t.Fatal("Success = true, want false")
	}
	if !strings.Contains(res.Error, "unsupported provider") {
		t.Errorf("Error = %q", res.Error)
	}
}

func TestConfigured(t *testing.T) {
	if NewClient().Configured() {
		t.Error("Configured() = true for empty chain")
	}
	if !NewClient(Settings{Provider: ProviderOpenAI, APIKey: "k"}).Configured() {
		t.Error("Configured() = false for populated chain")
	}
}
