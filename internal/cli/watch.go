package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"ssmde/internal/watch"
)

var (
	watchInbox  string
	watchOutbox string
	watchPoll   bool
)

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchInbox, "inbox", "", "inbox directory of .jsonl job files (required)")
	watchCmd.Flags().StringVar(&watchOutbox, "outbox", "", "outbox directory for record streams (required)")
	watchCmd.Flags().BoolVar(&watchPoll, "poll", false, "use polling instead of inotify")
	watchCmd.MarkFlagRequired("inbox")
	watchCmd.MarkFlagRequired("outbox")
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch an inbox directory and convert job files as they arrive",
	Long: "Watches the inbox for .jsonl job files, converts each through the session\n" +
		"manifest, and writes the record stream plus a run report to the outbox.\n" +
		"Finished jobs move to <inbox>/done. Runs until interrupted.",
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	m, err := sessionManifest()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(watchInbox, 0750); err != nil {
		return fmt.Errorf("create inbox: %w", err)
	}
	if err := os.MkdirAll(watchOutbox, 0750); err != nil {
		return fmt.Errorf("create outbox: %w", err)
	}

	proc := watch.NewProcessor(watchOutbox, filepath.Join(watchInbox, "done"), m)
	handle := func(path string) {
		rep, err := proc.Process(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "job %s failed: %v\n", filepath.Base(path), err)
			return
		}
		fmt.Printf("job %s -> %d records (run %s)\n", rep.Job, rep.Records, rep.RunID)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	fmt.Printf("manifest: %s\n", m.ID)
	fmt.Printf("inbox:    %s\n", watchInbox)
	fmt.Printf("outbox:   %s\n", watchOutbox)
	if watchPoll {
		fmt.Println("watcher:  polling")
	} else {
		fmt.Println("watcher:  fsnotify")
	}

	if err := watch.ScanExisting(watchInbox, handle); err != nil {
		return fmt.Errorf("scan inbox: %w", err)
	}

	fmt.Println("Watching for jobs...")
	if watchPoll {
		return watch.NewPollWatcher(watchInbox, handle, 0).Run(ctx)
	}
	return watch.NewInboxWatcher(watchInbox, handle).Run(ctx)
}
