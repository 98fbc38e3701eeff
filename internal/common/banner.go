package common

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ternarybob/banner"
)

const bannerWidth = 58

// bannerSection is a titled block of label/value rows.
type bannerSection struct {
	title string
	rows  [][2]string
}

// PrintBanner shows the server endpoints and the active analysis settings on
// stderr, then logs the same facts.
func PrintBanner(config *Config, logger *Logger) {
	writeBanner(os.Stderr, config)

	logger.Info().
		Str("version", GetVersion()).
		Str("commit", GetGitCommit()).
		Str("environment", config.Environment).
		Str("listen", listenAddr(config)).
		Int("lookback_days", config.Reports.LookbackDays).
		Msg("Folio ready")
}

// PrintShutdownBanner marks the end of the server run on stderr.
func PrintShutdownBanner(logger *Logger) {
	rule := banner.ColorCyan + strings.Repeat("-", bannerWidth) + banner.ColorReset
	fmt.Fprintf(os.Stderr, "\n%s\n  %sfolio stopped, reports flushed%s\n%s\n\n",
		rule, banner.ColorBold, banner.ColorReset, rule)
	logger.Info().Msg("Folio stopped")
}

func writeBanner(w io.Writer, config *Config) {
	rule := banner.ColorCyan + strings.Repeat("-", bannerWidth) + banner.ColorReset
	scenarios := make([]string, 0, len(config.Analysis.Forecast.Scenarios))
	for _, sc := range config.Analysis.Forecast.Scenarios {
		scenarios = append(scenarios, fmt.Sprintf("%s %+.1f%%", sc.Name, sc.AnnualReturn))
	}
	history := "unlimited"
	if config.Reports.MaxHistory > 0 {
		history = fmt.Sprintf("%d per user", config.Reports.MaxHistory)
	}

	sections := []bannerSection{
		{title: "server", rows: [][2]string{
			{"rest", "http://" + listenAddr(config) + "/api"},
			{"mcp", "http://" + listenAddr(config) + "/mcp"},
			{"store", config.Storage.Path},
			{"env", config.Environment},
		}},
		{title: "analysis", rows: [][2]string{
			{"scenarios", strings.Join(scenarios, ", ")},
			{"neutral band", fmt.Sprintf("+/-%.2f", config.Analysis.Sentiment.NeutralBand)},
			{"compare", fmt.Sprintf("against reports %d+ days old", config.Reports.LookbackDays)},
			{"history", history},
		}},
	}

	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintf(w, "  %sfolio %s%s  (%s)\n", banner.ColorBold, GetVersion(), banner.ColorReset, GetGitCommit())
	fmt.Fprintf(w, "  holdings in, risk and outlook out\n")
	for _, sec := range sections {
		fmt.Fprintf(w, "%s\n", rule)
		fmt.Fprintf(w, "  %s[%s]%s\n", banner.ColorCyan, sec.title, banner.ColorReset)
		for _, row := range sec.rows {
			fmt.Fprintf(w, "    %-13s %s\n", row[0], row[1])
		}
	}
	fmt.Fprintf(w, "%s\n\n", rule)
}

func listenAddr(config *Config) string {
	return fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)
}
