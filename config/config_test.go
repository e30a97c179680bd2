package config

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PRACTICUM_TOKEN", "p-token")
	t.Setenv("TELEGRAM_TOKEN", "t-token")
	t.Setenv("TELEGRAM_CHAT_ID", "-100500")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "p-token", cfg.PracticumToken)
	assert.Equal(t, "t-token", cfg.TelegramToken)
	assert.Equal(t, int64(-100500), cfg.TelegramChatID)
	assert.Equal(t, DefaultEndpoint, cfg.Endpoint)
	assert.Equal(t, 600*time.Second, cfg.RetryTime)
	assert.Equal(t, "main.log", cfg.LogFile)
	assert.Equal(t, "https://ntfy.sh", cfg.NtfyServer)
	assert.NoError(t, cfg.CheckTokens())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("TELEGRAM_TOKEN", "from-env")
	t.Setenv("PRACTICUM_TOKEN", "")
	t.Setenv("TELEGRAM_CHAT_ID", "")

	file := filepath.Join(dir, "bot.yaml")
	content := []byte("practicum_token: from-file\ntelegram_token: from-file\ntelegram_chat_id: 42\nretry_time: 1m\nntfy_topic: homework\n")
	require.NoError(t, os.WriteFile(file, content, 0o600))

	cfg, err := Load(viper.New(), file)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.PracticumToken)
	assert.Equal(t, "from-env", cfg.TelegramToken)
	assert.Equal(t, int64(42), cfg.TelegramChatID)
	assert.Equal(t, time.Minute, cfg.RetryTime)
	assert.Equal(t, "homework", cfg.NtfyTopic)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load(viper.New(), "does-not-exist.yaml")
	assert.Error(t, err)
}

func TestCheckTokens(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "all present",
			cfg:  Config{PracticumToken: "a", TelegramToken: "b", TelegramChatID: 1},
		},
		{
			name:    "chat id missing",
			cfg:     Config{PracticumToken: "a", TelegramToken: "b"},
			wantErr: "missing required environment variables: TELEGRAM_CHAT_ID",
		},
		{
			name:    "everything missing",
			cfg:     Config{},
			wantErr: "missing required environment variables: PRACTICUM_TOKEN, TELEGRAM_TOKEN, TELEGRAM_CHAT_ID",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.CheckTokens()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tc.wantErr)
		})
	}
}

func TestLoadRejectsBadIntervals(t *testing.T) {
	testCases := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "zero retry time",
			env:     map[string]string{"RETRY_TIME": "0s"},
			wantErr: "retry_time must be positive",
		},
		{
			name:    "negative retry time",
			env:     map[string]string{"RETRY_TIME": "-1m"},
			wantErr: "retry_time must be positive",
		},
		{
			name:    "negative request timeout",
			env:     map[string]string{"REQUEST_TIMEOUT": "-5s"},
			wantErr: "request_timeout must not be negative",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			for k, val := range tc.env {
				t.Setenv(k, val)
			}

			_, err := Load(viper.New(), "")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestMustLoadConfigExitsWithoutTokens(t *testing.T) {
	if os.Getenv("HOMEWORK_BOT_MUST_LOAD") == "1" {
		t.Chdir(t.TempDir())
		MustLoadConfig(viper.New(), "")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestMustLoadConfigExitsWithoutTokens$")
	cmd.Env = append(os.Environ(),
		"HOMEWORK_BOT_MUST_LOAD=1",
		"PRACTICUM_TOKEN=",
		"TELEGRAM_TOKEN=",
		"TELEGRAM_CHAT_ID=",
	)
	out, err := cmd.CombinedOutput()

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())
	assert.Contains(t, string(out), "missing required environment variables")
}
