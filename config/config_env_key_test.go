package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeEnvKey(t *testing.T) {
	t.Parallel()

	existing := map[string]any{
		"env": map[string]any{
			"serviceName": "shelfmark",
			"log": map[string]any{
				"pretty": true,
			},
		},
		"http": map[string]any{
			"maxRequestBodySize": "100KB",
		},
		"secretKey": map[string]any{
			"access":  "",
			"refresh": "",
		},
	}

	tests := []struct {
		name   string
		rawKey string
		want   string
	}{
		{
			name:   "aligns casing with existing yaml keys",
			rawKey: "ENV_SERVICENAME",
			want:   "env.serviceName",
		},
		{
			name:   "nested segment keeps yaml casing",
			rawKey: "HTTP_MAXREQUESTBODYSIZE",
			want:   "http.maxRequestBodySize",
		},
		{
			name:   "camel case parent matched case-insensitively",
			rawKey: "SECRETKEY_ACCESS",
			want:   "secretKey.access",
		},
		{
			name:   "unknown segments pass through lowercased",
			rawKey: "UNKNOWN_SETTING",
			want:   "unknown.setting",
		},
		{
			name:   "unknown child under known parent",
			rawKey: "ENV_LOG_FORMAT",
			want:   "env.log.format",
		},
		{
			name:   "empty segments dropped",
			rawKey: "ENV__DEBUG",
			want:   "env.debug",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := canonicalizeEnvKey(tt.rawKey, existing)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeToken(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "servicename", normalizeToken("serviceName"))
	assert.Equal(t, "maxrequestbodysize", normalizeToken("max_request-bodySize"))
	assert.Equal(t, "", normalizeToken("___"))
}
