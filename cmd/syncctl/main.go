package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"offline_sync/internal/app"
	"offline_sync/internal/config"
	"offline_sync/internal/domain"
)

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	limit := flag.Int("limit", 20, "max rows for list commands (0 = all)")
	logLevel := flag.String("log-level", "warn", "log level (debug, info, warn, error)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage:
  syncctl [flags] status
  syncctl [flags] sync
  syncctl [flags] submit ACTION ENTITY ID [PAYLOAD_JSON]
  syncctl [flags] state ACTION_ID
  syncctl [flags] failed
  syncctl [flags] bookmark TYPE ID [DATA_JSON]
  syncctl [flags] bookmarks [TYPE]
  syncctl [flags] news|articles|feasts|reading [KEY]
  syncctl [flags] audio ID [URL]
  syncctl [flags] sweep
  syncctl [flags] clear
`)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fatal(err)
	}

	logger := app.NewLogger(*logLevel, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		fatal(err)
	}

	err = run(ctx, a, *limit, flag.Args())
	if cerr := a.Close(); err == nil {
		err = cerr
	}
	if errors.Is(err, errUsage) {
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		fatal(err)
	}
}

var errUsage = errors.New("usage")

func run(ctx context.Context, a *app.App, limit int, args []string) error {
	cmd, args := args[0], args[1:]

	switch cmd {
	case "status":
		return status(ctx, a)

	case "sync":
		if !a.Network.Check(ctx) {
			return errors.New("remote api unreachable")
		}
		result, err := a.Sync.Sync(ctx, domain.TriggerManual)
		if result != nil {
			fmt.Printf("replayed=%d failed=%d refreshed=%d refresh_errors=%d duration=%s\n",
				result.Success, result.Failed, result.Refreshed, result.RefreshErrors, result.Duration.Round(time.Millisecond))
		}
		return err

	case "submit":
		if len(args) < 3 {
			return errUsage
		}
		actionType, err := domain.ParseActionType(args[0])
		if err != nil {
			return err
		}
		entityType, err := domain.ParseEntityType(args[1])
		if err != nil {
			return err
		}
		var payload []byte
		if len(args) > 3 {
			payload = []byte(args[3])
		}
		a.Network.Check(ctx)
		receipt, err := a.Actions.Submit(ctx, actionType, entityType, args[2], payload)
		if err != nil {
			return err
		}
		fmt.Println(receipt.State, receipt.ActionID)
		return nil

	case "state":
		if len(args) < 1 {
			return errUsage
		}
		state, err := a.Actions.State(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Println(state)
		return nil

	case "failed":
		actions, err := a.Queue.FailedActions(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tACTION\tRETRIES\tCREATED")
		for _, act := range actions {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", act.ID, act.Key(), act.RetryCount, act.CreatedAt.Format(time.RFC3339))
		}
		return w.Flush()

	case "bookmark":
		if len(args) < 2 {
			return errUsage
		}
		t, err := domain.ParseBookmarkType(args[0])
		if err != nil {
			return err
		}
		var data []byte
		if len(args) > 2 {
			data = []byte(args[2])
		}
		a.Network.Check(ctx)
		bookmarked, receipt, err := a.Actions.ToggleBookmark(ctx, t, args[1], data)
		if err != nil {
			return err
		}
		fmt.Printf("bookmarked=%t state=%s %s\n", bookmarked, receipt.State, receipt.ActionID)
		return nil

	case "bookmarks":
		var t domain.BookmarkType
		if len(args) > 0 {
			parsed, err := domain.ParseBookmarkType(args[0])
			if err != nil {
				return err
			}
			t = parsed
		}
		bookmarks, err := a.Bookmarks.List(ctx, t)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TYPE\tENTITY\tCREATED")
		for _, b := range bookmarks {
			fmt.Fprintf(w, "%s\t%s\t%s\n", b.Type, b.EntityID, b.CreatedAt.Format(time.RFC3339))
		}
		return w.Flush()

	case "news", "articles", "feasts", "reading":
		table := domain.Table(cmd)
		if cmd == "reading" {
			table = domain.TableReadings
		}
		if len(args) > 0 {
			entry, err := a.Content.Entry(ctx, table, args[0])
			if err != nil {
				return err
			}
			return printJSON(entry.Data)
		}
		entries, err := a.Content.Entries(ctx, table, limit)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if err := printJSON(e.Data); err != nil {
				return err
			}
		}
		return nil

	case "audio":
		if len(args) < 1 {
			return errUsage
		}
		if len(args) > 1 {
			localPath, err := a.Audio.Ensure(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Println(localPath)
			return nil
		}
		localPath, ok, err := a.Audio.Lookup(ctx, args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("audio %s is not cached", args[0])
		}
		fmt.Println(localPath)
		return nil

	case "sweep":
		report, err := a.Sweeper.RunOnce(ctx)
		if report != nil {
			fmt.Printf("audio_files=%d content_rows=%d failed_actions=%d\n",
				report.AudioFiles, report.ContentRows, report.FailedActions)
		}
		return err

	case "clear":
		if err := a.Content.ClearAll(ctx); err != nil {
			return err
		}
		if err := a.Audio.ClearAll(ctx); err != nil {
			return err
		}
		fmt.Println("OK")
		return nil
	}

	return errUsage
}

func status(ctx context.Context, a *app.App) error {
	online := a.Network.Check(ctx)

	pending, err := a.Sync.PendingCount(ctx)
	if err != nil {
		return err
	}
	failed, err := a.Queue.FailedActions(ctx)
	if err != nil {
		return err
	}
	state, err := a.SyncState.Get(ctx, a.Config.DeviceID)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "device\t%s\n", a.Config.DeviceID)
	fmt.Fprintf(w, "online\t%t\n", online)
	fmt.Fprintf(w, "pending actions\t%d\n", pending)
	fmt.Fprintf(w, "failed actions\t%d\n", len(failed))
	if state.LastSyncedAt.IsZero() {
		fmt.Fprintf(w, "last sync\tnever\n")
	} else {
		fmt.Fprintf(w, "last sync\t%s\n", state.LastSyncedAt.Format(time.RFC3339))
	}
	fmt.Fprintf(w, "total replayed\t%d\n", state.TotalReplayed)
	fmt.Fprintf(w, "total failed\t%d\n", state.TotalFailed)
	for _, table := range domain.ContentTables {
		entries, err := a.Content.Entries(ctx, table, 0)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "cached %s\t%d\n", table, len(entries))
	}
	return w.Flush()
}

// loadConfig falls back to defaults when the default config file is absent.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err == nil {
		return cfg, nil
	}
	if errors.Is(err, os.ErrNotExist) && path == "config.yaml" {
		return config.Default(), nil
	}
	return nil, err
}

func printJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("malformed cache entry: %w", err)
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
