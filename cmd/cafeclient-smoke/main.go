// Command cafeclient-smoke exercises the client against a real backend: it
// restores or establishes a session, pages through the menu, and prints a
// metrics summary. The session persists in Redis, so a second run restores
// the session the first run created; with no Redis address an embedded
// miniredis is used and persistence only spans the process.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	cafeclient "github.com/rymdrosten/cafeclient"
)

func main() {
	var (
		baseURL   = flag.String("base-url", "", "cafe backend origin, e.g. https://cafe.example.com (required)")
		redisAddr = flag.String("redis-addr", "", "redis address for session persistence; if empty, REDIS_ADDR env or miniredis is used")
		prefix    = flag.String("prefix", "cafe", "session key prefix")
		email     = flag.String("email", "", "account email; with -password, logs in when no session was restored")
		password  = flag.String("password", "", "account password")
		pages     = flag.Int("pages", 3, "number of menu pages to walk")
		pageSize  = flag.Int("page-size", 10, "products per page")
		timeout   = flag.Duration("timeout", 15*time.Second, "per-request timeout")
	)
	flag.Parse()

	if *baseURL == "" {
		fmt.Fprintln(os.Stderr, "-base-url is required")
		os.Exit(2)
	}
	if *pages <= 0 || *pageSize <= 0 {
		fmt.Fprintln(os.Stderr, "pages and page-size must be > 0")
		os.Exit(2)
	}

	ctx := context.Background()

	addr := *redisAddr
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}

	var (
		cleanup func()
		rdb     redis.UniversalClient
	)
	if addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to start miniredis: %v\n", err)
			os.Exit(1)
		}
		rdb = redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{mr.Addr()}})
		cleanup = func() {
			_ = rdb.Close()
			mr.Close()
		}
		fmt.Printf("using miniredis at %s\n", mr.Addr())
	} else {
		rdb = redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{addr}})
		cleanup = func() { _ = rdb.Close() }
		fmt.Printf("using redis at %s\n", addr)
	}
	defer cleanup()

	client, err := cafeclient.New().
		WithBaseURL(*baseURL).
		WithRedis(rdb).
		WithStoragePrefix(*prefix).
		WithTimeout(*timeout).
		WithDefaultPageSize(*pageSize).
		WithMetricsEnabled(true).
		WithLatencyHistograms(true).
		WithAuditSink(cafeclient.NewJSONWriterSink(os.Stderr)).
		Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "build client: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	client.Start(ctx)

	if !client.LoggedIn() && *email != "" && *password != "" {
		user, err := client.Login(ctx, *email, *password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "login: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("logged in as %s (%s)\n", user.Fullname(), user.Role)
	} else if client.LoggedIn() {
		user, _ := client.CurrentUser()
		fmt.Printf("restored session for %s (%s)\n", user.Fullname(), user.Role)
	} else {
		fmt.Println("browsing anonymously")
	}

	walkMenu(ctx, client, *pages, *pageSize)

	decision := client.Guard().CanActivate()
	fmt.Printf("dashboard access: allowed=%v redirect=%q\n", decision.Allowed, decision.RedirectTo)

	printMetrics(client)
}

func walkMenu(ctx context.Context, client *cafeclient.Client, pages, pageSize int) {
	for page := 1; page <= pages; page++ {
		listing, err := client.API().Products(ctx, page, pageSize)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fetch page %d: %v\n", page, err)
			return
		}
		fmt.Printf("page %d/%d (%d items total)\n",
			listing.Pagination.CurrentPage, listing.Pagination.TotalPages, listing.Pagination.TotalItems)
		for _, p := range listing.Products {
			fmt.Printf("  %-24s %8.2f\n", p.Name.Normal, p.Price)
		}
		if page >= listing.Pagination.TotalPages {
			return
		}
	}
}

func printMetrics(client *cafeclient.Client) {
	snap := client.MetricsSnapshot()
	fmt.Println("metrics:")
	fmt.Printf("  requests ok/failed: %d/%d\n",
		snap.Counters[cafeclient.MetricRequestSuccess],
		snap.Counters[cafeclient.MetricRequestFailure])
	fmt.Printf("  sessions restored/rejected: %d/%d\n",
		snap.Counters[cafeclient.MetricSessionRestored],
		snap.Counters[cafeclient.MetricSessionReplayRejected])
	if buckets, ok := snap.Histograms[cafeclient.MetricRequestLatency]; ok {
		fmt.Printf("  latency buckets: %v\n", buckets)
	}
	if dropped := client.AuditDropped(); dropped > 0 {
		fmt.Printf("  audit events dropped: %d\n", dropped)
	}
}
