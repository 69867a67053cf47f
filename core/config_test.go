package core

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestConfig_Validate(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		config := &Config{}
		config.Validate(WithTimeout(defaultTimeout), WithUserAgent, WithLogger, WithHTTPClient)

		if config.Timeout == nil || *config.Timeout != defaultTimeout {
			t.Errorf("Timeout = %v", config.Timeout)
		}
		if config.HTTPClient == nil || config.HTTPClient.Timeout != defaultTimeout {
			t.Errorf("HTTPClient = %+v", config.HTTPClient)
		}
		if config.Logger == nil {
			t.Error("Logger not set")
		}
	})

	t.Run("negative timeout panics", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Error("Expected panic for negative timeout")
			}
		}()
		negative := -time.Second
		config := &Config{Timeout: &negative}
		config.Validate(WithTimeout(defaultTimeout))
	})

	t.Run("client before timeout panics", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Error("Expected panic when timeout is missing")
			}
		}()
		config := &Config{}
		config.Validate(WithHTTPClient)
	})
}

func TestWithTimeout(t *testing.T) {
	config := &Config{}
	timeout := 5 * time.Second

	if err := WithTimeout(timeout)(config); err != nil {
		t.Errorf("WithTimeout() error = %v", err)
	}
	if config.Timeout == nil || *config.Timeout != timeout {
		t.Errorf("WithTimeout() timeout = %v, want %v", config.Timeout, timeout)
	}

	// an explicit timeout is kept
	explicit := time.Minute
	config = &Config{Timeout: &explicit}
	if err := WithTimeout(timeout)(config); err != nil {
		t.Errorf("WithTimeout() error = %v", err)
	}
	if *config.Timeout != explicit {
		t.Errorf("WithTimeout() overrode explicit timeout: %v", *config.Timeout)
	}
}

func TestWithUserAgent(t *testing.T) {
	config := &Config{}
	if err := WithUserAgent(config); err != nil {
		t.Errorf("WithUserAgent() error = %v", err)
	}
	if !strings.HasPrefix(config.UserAgent, "go-endpoints-"+ClientVersion()) {
		t.Errorf("WithUserAgent() UserAgent = %q", config.UserAgent)
	}

	config = &Config{UserAgent: "mine"}
	_ = WithUserAgent(config)
	if config.UserAgent != "mine" {
		t.Errorf("WithUserAgent() overrode custom value: %q", config.UserAgent)
	}
}

func TestWithLoggerAndClient(t *testing.T) {
	logger := zap.NewExample()
	client := &http.Client{}
	config := &Config{Logger: logger, HTTPClient: client}
	config.Validate(WithTimeout(time.Second), WithLogger, WithHTTPClient)

	if config.Logger != logger {
		t.Error("WithLogger() replaced a supplied logger")
	}
	if config.HTTPClient != client {
		t.Error("WithHTTPClient() replaced a supplied client")
	}
}

func TestWithServerVersion(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		defaultVer string
		want       string
		wantErr    bool
	}{
		{name: "default applied", defaultVer: "5.2.0", want: "5.2.0"},
		{name: "configured kept", configured: "4.7", defaultVer: "5.2.0", want: "4.7"},
		{name: "nothing configured", want: ""},
		{name: "invalid", configured: "five", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{ServerVersion: tt.configured}
			err := WithServerVersion(tt.defaultVer)(config)
			if (err != nil) != tt.wantErr {
				t.Fatalf("WithServerVersion() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && config.ServerVersion != tt.want {
				t.Errorf("ServerVersion = %q, want %q", config.ServerVersion, tt.want)
			}
		})
	}
}

func TestClientVersion(t *testing.T) {
	if ClientVersion() == "" || strings.ContainsAny(ClientVersion(), " \n") {
		t.Errorf("ClientVersion() = %q", ClientVersion())
	}
}
