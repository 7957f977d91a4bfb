// Command appraise runs the direct-comparison valuation engine over a subject
// property and a set of resolved comparables supplied as JSON files.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/danish-msa/summitly-sub001/internal/config"
	"github.com/danish-msa/summitly-sub001/internal/property"
	"github.com/danish-msa/summitly-sub001/internal/report"
	"github.com/danish-msa/summitly-sub001/internal/testdata"
	"github.com/danish-msa/summitly-sub001/internal/tui"
	"github.com/danish-msa/summitly-sub001/internal/valuation"
)

func main() {
	var (
		subjectPath = flag.String("subject", "", "path to subject property JSON")
		compsPath   = flag.String("comps", "", "path to comparables JSON (array)")
		marketPath  = flag.String("market", "", "path to market data JSON (optional)")
		asOfFlag    = flag.String("as-of", "", "valuation date YYYY-MM-DD (default today)")
		jsonOut     = flag.Bool("json", false, "emit the ValuationResult as JSON")
		interactive = flag.Bool("i", false, "browse the result interactively")
		demo        = flag.Bool("demo", false, "run on generated fixtures")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	asOf := time.Now().UTC()
	if *asOfFlag != "" {
		asOf, err = time.Parse("2006-01-02", *asOfFlag)
		if err != nil {
			log.Fatalf("parse -as-of: %v", err)
		}
	}

	var (
		subject property.Details
		comps   []property.Comparable
		market  valuation.MarketData
	)
	switch {
	case *demo:
		subject = testdata.Subject()
		comps = testdata.Comparables(asOf)
		market = testdata.Market()
	default:
		if *subjectPath == "" || *compsPath == "" {
			log.Fatal("either -demo or both -subject and -comps are required")
		}
		if err := readJSON(*subjectPath, &subject); err != nil {
			log.Fatalf("subject: %v", err)
		}
		if err := readJSON(*compsPath, &comps); err != nil {
			log.Fatalf("comparables: %v", err)
		}
		if *marketPath != "" {
			if err := readJSON(*marketPath, &market); err != nil {
				log.Fatalf("market data: %v", err)
			}
		}
	}

	estimator := valuation.NewEstimator(cfg.Engine, asOf, log.Default())
	result, err := estimator.EstimateMarketValue(subject, comps, market)
	if err != nil {
		log.Fatalf("valuation: %v", err)
	}

	switch {
	case *jsonOut:
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			log.Fatalf("marshal result: %v", err)
		}
		fmt.Println(string(out))
	case *interactive:
		if _, err := tea.NewProgram(tui.New(result)).Run(); err != nil {
			log.Fatalf("tui: %v", err)
		}
	default:
		renderer := report.NewRenderer(cfg.UI.CurrencySymbol, cfg.UI.DateFormat)
		fmt.Print(renderer.Render(result))
	}
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
