package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/genstream"
	"github.com/fwojciec/genstream/gemini"
	"github.com/fwojciec/genstream/mock"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frame(payload string) string {
	return "data: " + payload + "\r\n\r\n"
}

// streamingProvider answers every Stream call with a real stream over the
// given frames and records the request.
func streamingProvider(got *genstream.Request, frames ...string) *mock.Provider {
	return &mock.Provider{
		StreamFn: func(ctx context.Context, req genstream.Request) (genstream.Stream, error) {
			*got = req
			chunks := make([]string, len(frames))
			for i, f := range frames {
				chunks[i] = frame(f)
			}
			return gemini.NewStream(mock.NewBody(chunks...)), nil
		},
	}
}

type run struct {
	stdout, stderr bytes.Buffer
}

// testCmd builds the root command with an injected provider. seen, when
// set, receives the resolved config.
func testCmd(stdin string, stdout, stderr *bytes.Buffer, env map[string]string, p genstream.Provider, seen func(config)) *cobra.Command {
	getenv := func(k string) string { return env[k] }
	return newRootCmdWithProvider(strings.NewReader(stdin), stdout, stderr, getenv, func(cfg config, _ genstream.Logger) genstream.Provider {
		if seen != nil {
			seen(cfg)
		}
		return p
	})
}

func execute(t *testing.T, r *run, stdin string, env map[string]string, p genstream.Provider, args ...string) error {
	t.Helper()
	cmd := testCmd(stdin, &r.stdout, &r.stderr, env, p, nil)
	cmd.SetArgs(append([]string{}, args...))
	return cmd.ExecuteContext(context.Background())
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRoot_StreamsText(t *testing.T) {
	t.Parallel()
	var req genstream.Request
	p := streamingProvider(&req,
		`{"candidates":[{"content":{"role":"model","parts":[{"text":"Hello"}]}}]}`,
		`{"candidates":[{"content":{"role":"model","parts":[{"text":", world"}]},"finishReason":"STOP"}]}`,
	)
	cfg := writeConfig(t, "api_key: k\n")

	var r run
	err := execute(t, &r, "", nil, p, "--config", cfg, "--system", "be brief", "--temperature", "0.5", "say", "hi")
	require.NoError(t, err)

	assert.Equal(t, "Hello, world\n", r.stdout.String())
	require.Len(t, req.Contents, 1)
	assert.Equal(t, "say hi", req.Contents[0].Parts[0].Text)
	assert.Equal(t, "be brief", req.SystemInstruction)
	require.NotNil(t, req.Temperature)
	assert.Equal(t, 0.5, *req.Temperature)
}

func TestRoot_PromptFromStdin(t *testing.T) {
	t.Parallel()
	var req genstream.Request
	p := streamingProvider(&req, `{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`)

	var r run
	err := execute(t, &r, "  from stdin\n", map[string]string{"GEMINI_API_KEY": "k"}, p, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err, "an explicit missing config path is an error")

	r = run{}
	err = execute(t, &r, "  from stdin\n", map[string]string{"GEMINI_API_KEY": "k"}, p)
	require.NoError(t, err)
	assert.Equal(t, "from stdin", req.Contents[0].Parts[0].Text)
}

func TestRoot_EmptyPrompt(t *testing.T) {
	t.Parallel()
	var r run
	err := execute(t, &r, "   ", map[string]string{"GEMINI_API_KEY": "k"}, &mock.Provider{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty prompt")
}

func TestRoot_MissingAPIKey(t *testing.T) {
	t.Parallel()
	var r run
	err := execute(t, &r, "", nil, &mock.Provider{}, "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY not set")
}

func TestRoot_Precedence(t *testing.T) {
	t.Parallel()
	cfgPath := writeConfig(t, "api_key: from-file\nmodel: file-model\nbase_url: http://file\n")

	tests := []struct {
		name      string
		env       map[string]string
		args      []string
		wantKey   string
		wantModel string
	}{
		{"file only", nil, nil, "from-file", "file-model"},
		{"env over file", map[string]string{"GEMINI_API_KEY": "from-env"}, nil, "from-env", "file-model"},
		{"flag over env", map[string]string{"GEMINI_API_KEY": "from-env"}, []string{"--api-key", "from-flag", "--model", "flag-model"}, "from-flag", "flag-model"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var got config
			var stdout, stderr bytes.Buffer
			p := streamingProvider(new(genstream.Request), `{"candidates":[]}`)
			cmd := testCmd("", &stdout, &stderr, tt.env, p, func(cfg config) { got = cfg })
			cmd.SetArgs(append(append([]string{"--config", cfgPath}, tt.args...), "hi"))
			require.NoError(t, cmd.ExecuteContext(context.Background()))
			assert.Equal(t, tt.wantKey, got.APIKey)
			assert.Equal(t, tt.wantModel, got.Model)
			assert.Equal(t, "http://file", got.BaseURL)
		})
	}
}

func TestRoot_InvalidConfigFile(t *testing.T) {
	t.Parallel()
	cfgPath := writeConfig(t, "model: [unterminated\n")
	var r run
	err := execute(t, &r, "", map[string]string{"GEMINI_API_KEY": "k"}, &mock.Provider{}, "--config", cfgPath, "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestRoot_BlockedResponse(t *testing.T) {
	t.Parallel()
	p := streamingProvider(new(genstream.Request), `{"promptFeedback":{"blockReason":"SAFETY"}}`)
	var r run
	err := execute(t, &r, "", map[string]string{"GEMINI_API_KEY": "k"}, p, "hi")
	require.ErrorIs(t, err, genstream.ErrResponse)
	assert.Empty(t, r.stdout.String())
}

func TestRoot_ParseFailure(t *testing.T) {
	t.Parallel()
	p := streamingProvider(new(genstream.Request), `{"candidates":[{"content":{"parts":[{"text":"a"}]}}]}`, `not json`)
	var r run
	err := execute(t, &r, "", map[string]string{"GEMINI_API_KEY": "k"}, p, "hi")
	require.ErrorIs(t, err, genstream.ErrParseFailed)
	assert.Equal(t, "a", r.stdout.String())
}

func TestRoot_Render(t *testing.T) {
	t.Parallel()
	p := streamingProvider(new(genstream.Request),
		`{"candidates":[{"content":{"parts":[{"text":"# Title\n\n"}]}}]}`,
		`{"candidates":[{"content":{"parts":[{"text":"body"}]},"finishReason":"STOP"}]}`,
	)
	var r run
	err := execute(t, &r, "", map[string]string{"GEMINI_API_KEY": "k"}, p, "--render", "--width", "40", "hi")
	require.NoError(t, err)
	out := r.stdout.String()
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "body")
	assert.NotContains(t, out, "# Title")
}

func TestRoot_FunctionCallsListed(t *testing.T) {
	t.Parallel()
	p := streamingProvider(new(genstream.Request),
		`{"candidates":[{"content":{"parts":[{"functionCall":{"name":"lookup","args":{"q":"x"}}}]},"finishReason":"STOP"}]}`,
	)
	var r run
	err := execute(t, &r, "", map[string]string{"GEMINI_API_KEY": "k"}, p, "hi")
	require.NoError(t, err)
	assert.Equal(t, "→ lookup\n", r.stdout.String())
}

func TestRoot_LogsSummaryWithRequestID(t *testing.T) {
	t.Parallel()
	p := streamingProvider(new(genstream.Request),
		`{"candidates":[{"content":{"parts":[{"text":"ok"}]},"finishReason":"STOP"}],"usageMetadata":{"promptTokenCount":1,"candidatesTokenCount":2,"totalTokenCount":3}}`,
	)
	var r run
	err := execute(t, &r, "", map[string]string{"GEMINI_API_KEY": "k"}, p,
		"--log-level", "info", "--log-format", "json", "hi")
	require.NoError(t, err)
	logs := r.stderr.String()
	assert.Contains(t, logs, `"request_id"`)
	assert.Contains(t, logs, "finished: reason=STOP")
	assert.Contains(t, logs, "total_tokens=3")
}

func TestRoot_UnknownLogFormat(t *testing.T) {
	t.Parallel()
	var r run
	err := execute(t, &r, "", map[string]string{"GEMINI_API_KEY": "k"}, &mock.Provider{}, "--log-format", "xml", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log format")
}
