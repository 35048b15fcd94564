// tsmap is an interactive shell for exercising the timestamp-indexed store.
//
// It constructs one wrapped backend and drives it through the public store
// contract: add, addu, at, range, last, all, ts, rm, clear, len, wait,
// notify, stats.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/c-bata/go-prompt"

	"github.com/xtxerr/tsmap/internal/loader"
	"github.com/xtxerr/tsmap/internal/logging"
	"github.com/xtxerr/tsmap/internal/store"
)

// Version is set at build time via ldflags
var Version = "dev"

var suggestions = []prompt.Suggest{
	{Text: "add", Description: "add <ts> <value> - insert at exact timestamp"},
	{Text: "addu", Description: "addu <ts> <value> - insert, offsetting on collision"},
	{Text: "at", Description: "at <ts> - value at timestamp"},
	{Text: "range", Description: "range <start> <end> - values in inclusive window"},
	{Text: "last", Description: "last <duration> - values in trailing window"},
	{Text: "all", Description: "all stored values"},
	{Text: "ts", Description: "all stored timestamps"},
	{Text: "rm", Description: "rm <ts> - remove entry"},
	{Text: "clear", Description: "remove all entries"},
	{Text: "len", Description: "entry count"},
	{Text: "wait", Description: "wait [duration] - block until data arrives"},
	{Text: "notify", Description: "wake all waiters without inserting"},
	{Text: "stats", Description: "wrapper statistics"},
	{Text: "exit", Description: "quit"},
}

type repl struct {
	store     *store.Concurrent[string]
	maxOffset time.Duration
}

func main() {
	cfgPath := flag.String("config", "", "config file path")
	backend := flag.String("backend", "", "backend kind: hash, tree or seq (overrides config)")
	flag.Parse()

	cfg := loader.DefaultConfig()
	if *cfgPath != "" {
		var err error
		if cfg, err = loader.Load(*cfgPath); err != nil {
			fmt.Fprintf(os.Stderr, "load config: %v\n", err)
			os.Exit(1)
		}
	}
	if *backend != "" {
		cfg.Store.Backend = *backend
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	level, _ := cfg.LogLevel()
	logging.Init(level, cfg.Log.JSON)
	log := logging.Component("repl")

	s, err := store.NewShared[string](cfg.Backend())
	if err != nil {
		log.Error("create store", "error", err)
		os.Exit(1)
	}

	log.Info("tsmap starting", "version", Version, "backend", cfg.Backend())
	fmt.Printf("tsmap %s (backend=%s). Type a command, or exit to quit.\n", Version, cfg.Backend())

	r := &repl{store: s, maxOffset: cfg.MaxOffset()}
	p := prompt.New(
		r.execute,
		complete,
		prompt.OptionTitle("tsmap"),
		prompt.OptionPrefix("tsmap> "),
	)
	p.Run()
}

func complete(d prompt.Document) []prompt.Suggest {
	if d.TextBeforeCursor() != d.GetWordBeforeCursor() {
		return nil // only complete the command word
	}
	return prompt.FilterHasPrefix(suggestions, d.GetWordBeforeCursor(), true)
}

func (r *repl) execute(in string) {
	fields := strings.Fields(in)
	if len(fields) == 0 {
		return
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "add":
		if len(args) < 2 {
			fmt.Println("usage: add <ts> <value>")
			return
		}
		ts, err := parseTime(args[0])
		if err != nil {
			fmt.Println(err)
			return
		}
		if err := r.store.Add(ts, strings.Join(args[1:], " ")); err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		fmt.Printf("added at %s\n", ts.Format(time.RFC3339Nano))

	case "addu":
		if len(args) < 2 {
			fmt.Println("usage: addu <ts> <value>")
			return
		}
		ts, err := parseTime(args[0])
		if err != nil {
			fmt.Println(err)
			return
		}
		actual := r.store.AddUnique(ts, strings.Join(args[1:], " "), r.maxOffset)
		fmt.Printf("added at %s", actual.Format(time.RFC3339Nano))
		if !actual.Equal(ts) {
			fmt.Printf(" (offset %v from requested)", actual.Sub(ts))
		}
		fmt.Println()

	case "at":
		if len(args) != 1 {
			fmt.Println("usage: at <ts>")
			return
		}
		ts, err := parseTime(args[0])
		if err != nil {
			fmt.Println(err)
			return
		}
		if value, ok := r.store.At(ts); ok {
			fmt.Println(value)
		} else {
			fmt.Println("(absent)")
		}

	case "range":
		if len(args) != 2 {
			fmt.Println("usage: range <start> <end>")
			return
		}
		start, err := parseTime(args[0])
		if err != nil {
			fmt.Println(err)
			return
		}
		end, err := parseTime(args[1])
		if err != nil {
			fmt.Println(err)
			return
		}
		printValues(r.store.Range(start, end))

	case "last":
		if len(args) != 1 {
			fmt.Println("usage: last <duration>")
			return
		}
		span, err := time.ParseDuration(args[0])
		if err != nil {
			fmt.Printf("bad duration %q: %v\n", args[0], err)
			return
		}
		printValues(r.store.Last(span))

	case "all":
		printValues(r.store.All())

	case "ts":
		stamps := r.store.Timestamps()
		for _, ts := range stamps {
			fmt.Println(ts.Format(time.RFC3339Nano))
		}
		fmt.Printf("%d timestamp(s)\n", len(stamps))

	case "rm":
		if len(args) != 1 {
			fmt.Println("usage: rm <ts>")
			return
		}
		ts, err := parseTime(args[0])
		if err != nil {
			fmt.Println(err)
			return
		}
		if r.store.Remove(ts) {
			fmt.Println("removed")
		} else {
			fmt.Println("(absent)")
		}

	case "clear":
		r.store.Clear()
		fmt.Println("cleared")

	case "len":
		fmt.Println(r.store.Len())

	case "wait":
		timeout := time.Duration(0)
		if len(args) == 1 {
			var err error
			if timeout, err = time.ParseDuration(args[0]); err != nil {
				fmt.Printf("bad duration %q: %v\n", args[0], err)
				return
			}
		}
		if r.store.WaitForData(timeout) {
			fmt.Println("signaled")
		} else {
			fmt.Println("timed out")
		}

	case "notify":
		r.store.NotifyDataAvailable()
		fmt.Println("notified")

	case "stats":
		st := r.store.Stats()
		fmt.Printf("len=%d adds=%d removes=%d notifies=%d waits=%d\n",
			st.Len, st.AddCount, st.RemoveCount, st.NotifyCount, st.WaitCount)

	case "exit", "quit":
		fmt.Println("bye")
		os.Exit(0)

	default:
		fmt.Printf("unknown command %q\n", cmd)
	}
}

func printValues(values []string) {
	for _, v := range values {
		fmt.Println(v)
	}
	fmt.Printf("%d value(s)\n", len(values))
}

// parseTime accepts "now", now-relative offsets like "now+5s" or "now-2m",
// RFC 3339 timestamps, and raw Unix nanosecond integers.
func parseTime(s string) (time.Time, error) {
	if s == "now" {
		return time.Now(), nil
	}
	if strings.HasPrefix(s, "now+") || strings.HasPrefix(s, "now-") {
		d, err := time.ParseDuration(s[4:])
		if err != nil {
			return time.Time{}, fmt.Errorf("bad offset %q: %v", s, err)
		}
		if s[3] == '-' {
			d = -d
		}
		return time.Now().Add(d), nil
	}
	if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return ts, nil
	}
	if nanos, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(0, nanos), nil
	}
	return time.Time{}, fmt.Errorf("bad timestamp %q (want now, now±dur, RFC3339 or unix nanos)", s)
}
