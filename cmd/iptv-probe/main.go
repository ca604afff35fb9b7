// Command iptv-probe resolves every configured channel template and reports
// whether its server answers, without starting the GUI or a media engine.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"

	"github.com/ytget/iptv-player/internal/logging"
	"github.com/ytget/iptv-player/internal/model"
	"github.com/ytget/iptv-player/internal/platform"
	"github.com/ytget/iptv-player/internal/probe"
	"github.com/ytget/iptv-player/internal/registry"
	"github.com/ytget/iptv-player/internal/store"
	"github.com/ytget/iptv-player/internal/templater"
)

// Probing defaults
const (
	DefaultWorkers = 4
)

type result struct {
	entry     model.ChannelEntry
	url       string
	reachable bool
	info      *probe.StreamInfo
	err       error
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	configDir, err := platform.GetConfigDir()
	if err != nil {
		configDir = "."
	}
	defaults := store.New(configDir)

	fs := flag.NewFlagSet("iptv-probe", flag.ContinueOnError)
	fs.SetOutput(stderr)
	channelsPath := fs.String("channels", defaults.ChannelsPath, "channel list (YAML or JSON)")
	serversPath := fs.String("servers", defaults.ServersPath, "server list (YAML or JSON)")
	timeout := fs.Duration("timeout", probe.DefaultTimeout, "per-request timeout")
	inspect := fs.Bool("inspect", false, "list HLS variants of reachable streams")
	workers := fs.Int("workers", DefaultWorkers, "parallel probes")
	level := fs.String("log-level", "warn", "log level")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger := logging.New(zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.TimeOnly}, logging.ParseLevel(*level))

	reg := registry.New(logger)
	reg.Load(&store.Store{ChannelsPath: *channelsPath, ServersPath: *serversPath})

	prober := probe.NewProber(logger)
	prober.Timeout = *timeout

	results := probeAll(context.Background(), prober, templater.New(), reg, *inspect, max(1, *workers))

	failed := report(stdout, results)
	if failed > 0 {
		fmt.Fprintf(stderr, "%d of %d channels unreachable\n", failed, len(results))
		return 1
	}
	return 0
}

// probeAll checks every channel; results keep registry order
func probeAll(ctx context.Context, prober *probe.Prober, urls *templater.Templater, reg *registry.Registry, inspect bool, workers int) []result {
	entries := reg.Entries()
	servers := reg.Servers()
	results := make([]result, len(entries))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				r := result{entry: entries[i], url: urls.Generate(entries[i].URLTemplate, servers)}
				r.reachable = prober.IsReachable(ctx, r.url)
				if inspect && r.reachable {
					r.info, r.err = prober.Inspect(ctx, r.url)
				}
				results[i] = r
			}
		}()
	}
	for i := range entries {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

// report prints a table and returns the number of unreachable channels
func report(w io.Writer, results []result) int {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "STATUS\tNAME\tURL\tDETAILS")
	failed := 0
	for _, r := range results {
		status := "OK"
		if !r.reachable {
			status = "FAIL"
			failed++
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", status, r.entry.GetDisplayName(), r.url, details(r))
	}
	return failed
}

func details(r result) string {
	switch {
	case r.err != nil:
		return "inspect: " + r.err.Error()
	case r.info == nil:
		return ""
	case !r.info.HLS:
		return r.info.ContentType
	}
	best, ok := r.info.BestVariant()
	if !ok {
		return "hls media playlist"
	}
	return fmt.Sprintf("hls %d variants, best %dp %d kbit/s", len(r.info.Variants), best.Height, best.Bandwidth/1000)
}
