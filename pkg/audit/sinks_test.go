package audit

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSinksFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write sinks file: %v", err)
	}
	return path
}

func TestLoadRegistryYAML(t *testing.T) {
	path := writeSinksFile(t, "sinks.yaml", `
sinks:
  - id: webhook
    type: http
    http:
      url: https://audit.example.com/hook
      headers:
        X-Team: netops
  - id: queue
    type: sqs
    enabled: false
    sqs:
      uri: https://sqs.ap-south-1.amazonaws.com/123/audit
      region: ap-south-1
  - id: topic
    type: sns
    sns:
      topic_arn: arn:aws:sns:ap-south-1:123:audit
      region: ap-south-1
  - id: stream
    type: pubsub
    pubsub:
      project_id: cp-audit
      topic: control-plane-calls
`)

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}

	if got := len(reg.All()); got != 4 {
		t.Fatalf("All() = %d sinks", got)
	}
	if got := len(reg.Enabled()); got != 3 {
		t.Fatalf("Enabled() = %d sinks, disabled sqs should be excluded", got)
	}

	webhook, ok := reg.ByID("webhook")
	if !ok || webhook.HTTP == nil {
		t.Fatalf("webhook sink missing: %+v", webhook)
	}
	if webhook.HTTP.Method != "POST" {
		t.Fatalf("http method default = %q", webhook.HTTP.Method)
	}
	if webhook.HTTP.TimeoutSeconds != httpDefaultTimeoutSeconds {
		t.Fatalf("http timeout default = %d", webhook.HTTP.TimeoutSeconds)
	}
}

func TestLoadRegistryRejectsInvalidConfigs(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{
			name: "missing id",
			content: `
sinks:
  - type: http
    http:
      url: https://example.com
`,
		},
		{
			name: "sqs without region",
			content: `
sinks:
  - id: queue
    type: sqs
    sqs:
      uri: https://sqs.example.com/q
`,
		},
		{
			name: "pubsub without topic",
			content: `
sinks:
  - id: stream
    type: pubsub
    pubsub:
      project_id: cp-audit
`,
		},
		{
			name: "duplicate ids",
			content: `
sinks:
  - id: hook
    type: http
    http:
      url: https://example.com
  - id: hook
    type: http
    http:
      url: https://example.org
`,
		},
		{
			name:    "no sinks",
			content: "sinks: []\n",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeSinksFile(t, "sinks.yaml", tc.content)
			if _, err := LoadRegistry(path); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoadRegistryJSON(t *testing.T) {
	path := writeSinksFile(t, "sinks.json", `{
  "sinks": [
    {"id": "hook", "type": "http", "http": {"url": "https://example.com", "method": "put"}}
  ]
}`)

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	hook, ok := reg.ByID("hook")
	if !ok {
		t.Fatalf("hook sink missing")
	}
	if hook.HTTP.Method != "PUT" {
		t.Fatalf("method = %q, want normalized PUT", hook.HTTP.Method)
	}
}
