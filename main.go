package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"homework-bot/bot"
	"homework-bot/config"
	"homework-bot/notify"
	"homework-bot/practicum"
	"homework-bot/utils"
)

var (
	v          = viper.New()
	configFile string
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "homework-bot",
		Short:         "Relays homework review status changes to Telegram",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBot(cmd.Context())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "path to the config file (default ./config.yaml)")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.Duration("retry-time", 0, "interval between polls")
	_ = v.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = v.BindPFlag("retry_time", flags.Lookup("retry-time"))

	rootCmd.AddCommand(newOnceCmd(), newCheckTokensCmd())

	return rootCmd
}

func runBot(ctx context.Context) error {
	cfg := config.MustLoadConfig(v, configFile)
	_, closeLog, err := utils.SetupLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		slog.Error("can't open log file", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := practicum.NewClient(cfg.Endpoint, cfg.PracticumToken, cfg.RequestTimeout)
	b := bot.New(client, buildNotifier(cfg), cfg.RetryTime, time.Now().Unix())

	slog.Info("bot started", slog.Duration("retry_time", cfg.RetryTime), slog.String("endpoint", cfg.Endpoint))
	b.Run(ctx)
	slog.Info("done")

	return nil
}

func buildNotifier(cfg *config.Config) notify.Notifier {
	var mirrors []notify.Notifier
	if cfg.NtfyTopic != "" {
		mirrors = append(mirrors, notify.NewNtfy(cfg.NtfyServer, cfg.NtfyTopic, nil))
	}
	if cfg.PushoverToken != "" && cfg.PushoverUser != "" {
		mirrors = append(mirrors, notify.NewPushover(cfg.PushoverToken, cfg.PushoverUser))
	}

	return notify.NewMulti(notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID, nil), mirrors...)
}

func newOnceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "once",
		Short: "Poll the status API once and print the latest status without sending it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.MustLoadConfig(v, configFile)
			if _, closeLog, err := utils.SetupLogger(cfg.LogLevel, ""); err == nil {
				defer closeLog()
			}

			client := practicum.NewClient(cfg.Endpoint, cfg.PracticumToken, cfg.RequestTimeout)
			resp, err := client.Poll(cmd.Context(), time.Now().Add(-30*24*time.Hour).Unix())
			if err != nil {
				return err
			}
			if len(resp.Homeworks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no status updates in the last 30 days")
				return nil
			}

			status, err := practicum.ParseStatus(resp.Homeworks[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), status)
			return nil
		},
	}
}

func newCheckTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-tokens",
		Short: "Report missing credentials",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v, configFile)
			if err != nil {
				return err
			}
			if err := cfg.CheckTokens(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "all credentials are set")
			return nil
		},
	}
}
