// Command contestlog runs the feature-engineering pipeline over one Cabrillo
// log: parse, enrich with CTY/geodesy data, score for the selected contest,
// and persist the dataset for the dashboard layer.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"contestlog/cabrillo"
	"contestlog/config"
	"contestlog/contest"
	"contestlog/cty"
	"contestlog/geocache"
	"contestlog/store"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to config.yaml (optional)")
		logPath    = flag.String("log", "", "path to the Cabrillo log file")
		contestArg = flag.String("contest", "", "contest name (cqww, cqwpx, iaru, arrldx)")
		year       = flag.Int("year", 0, "contest year")
		mode       = flag.String("mode", "CW", "contest mode (CW, SSB)")
		noCache    = flag.Bool("no-geocache", false, "bypass the persistent callsign cache")
	)
	flag.Parse()

	if *logPath == "" || *contestArg == "" || *year == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("contestlog: %v", err)
		}
		cfg = loaded
	}
	rule, ok := cfg.ContestRule(*contestArg)
	if !ok {
		log.Fatalf("contestlog: no calendar rule for contest %q (have %s)",
			*contestArg, strings.Join(cfg.ContestNames(), ", "))
	}

	db, err := cty.Load(cfg.CTY.Path)
	if err != nil {
		log.Fatalf("contestlog: %v", err)
	}
	log.Printf("contestlog: loaded %s CTY entries from %s",
		humanize.Comma(int64(db.Size())), cfg.CTY.Path)

	var resolver contest.GeoResolver = db
	if cfg.GeoCache.Enabled && !*noCache {
		cache, err := geocache.Open(cfg.GeoCache.Path, db)
		if err != nil {
			log.Fatalf("contestlog: %v", err)
		}
		defer cache.Close()
		resolver = cache
	}

	f, err := os.Open(*logPath)
	if err != nil {
		log.Fatalf("contestlog: open log: %v", err)
	}
	parsed, err := cabrillo.Parse(f)
	_ = f.Close()
	if err != nil {
		log.Fatalf("contestlog: %v", err)
	}
	callsign := parsed.Callsign()
	if callsign == "" && len(parsed.Records) > 0 {
		callsign = parsed.Records[0].MyCall
	}

	scope := contest.Scope{
		Callsign: callsign,
		Contest:  strings.ToLower(*contestArg),
		Year:     *year,
		Mode:     strings.ToUpper(*mode),
	}
	started := time.Now()
	result, err := contest.EnrichAndScore(parsed.Records, scope, rule, resolver)
	if err != nil {
		log.Fatalf("contestlog: %v", err)
	}

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		log.Fatalf("contestlog: %v", err)
	}
	defer st.Close()
	if err := st.Save(result); err != nil {
		log.Fatalf("contestlog: %v", err)
	}

	printSummary(result, parsed.Skipped, time.Since(started))
}

func printSummary(result *contest.Result, parseSkipped int, elapsed time.Duration) {
	records := result.Records
	var finalScore int64
	validQSOs, mults := 0, 0
	if n := len(records); n > 0 {
		last := records[n-1]
		finalScore = last.CumContestScore
		validQSOs = last.CumValidQSOs
		mults = last.CumMult
	}
	fmt.Printf("%s\n", result.Scope)
	fmt.Printf("  rows:        %s (%d dropped, %d unparseable)\n",
		humanize.Comma(int64(len(records))), result.DroppedRows, parseSkipped)
	fmt.Printf("  valid QSOs:  %s\n", humanize.Comma(int64(validQSOs)))
	fmt.Printf("  multipliers: %s\n", humanize.Comma(int64(mults)))
	fmt.Printf("  claimed:     %s points\n", humanize.Comma(finalScore))
	if len(result.Suspects) > 0 {
		fmt.Printf("  suspects:    %d possible busted duplicates\n", len(result.Suspects))
		for _, s := range result.Suspects {
			fmt.Printf("    %s on %dm (near %s)\n", s.Call, s.Band, s.Nearest)
		}
	}
	fmt.Printf("  fingerprint: %016x (%s)\n", result.Fingerprint, elapsed.Round(time.Millisecond))
}
