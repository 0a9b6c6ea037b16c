package outwriter

import (
	"fmt"
	"io"
	"strings"

	"github.com/finsight/finsight/internal/contract"
	"github.com/finsight/finsight/schema"
)

// WriteReport renders the plain-text executive report: health scores,
// headline statistics and the anomaly head. This is presentation glue over
// the engine's summary; the narrative lines are fixed templates.
func (ow *OutWriter) WriteReport(summary schema.DatasetSummary, scores schema.HealthScore, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeReportText(w, summary, scores, fmtFloat)
	}, "report")
}

func writeReportText(w io.Writer, summary schema.DatasetSummary, scores schema.HealthScore, fmtFloat func(float64) string) error {
	var b strings.Builder

	b.WriteString("FINANCIAL REPORT\n")
	b.WriteString("================\n\n")
	fmt.Fprintf(&b, "Dataset: %d rows from %s\n\n", summary.RowCount, strings.Join(summary.Sources, ", "))

	b.WriteString("Health Scores:\n")
	for _, ind := range schema.AllIndicators {
		score, ok := scores[ind]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "  %-18s %d%% (%s)\n", ind+":", score, contract.GetPlainHealthLabel(score))
	}
	b.WriteString("\n")

	if len(summary.Measures) > 0 {
		b.WriteString("Key Measures:\n")
		for _, m := range summary.Measures {
			fmt.Fprintf(&b, "  %s: mean %s, std dev %s over %d values\n",
				m.Name, fmtFloat(m.Mean), fmtFloat(m.StdDev), m.Count)
		}
		b.WriteString("\n")
	}

	if len(summary.TopAnomalies) > 0 {
		b.WriteString("Flagged Outliers:\n")
		for _, a := range summary.TopAnomalies {
			fmt.Fprintf(&b, "  %s: %s=%s against group mean %s\n",
				a.Category, a.Measure, fmtFloat(a.Value), fmtFloat(a.GroupMean))
		}
		b.WriteString("\n")
	}

	b.WriteString("Recommended Actions:\n")
	b.WriteString("  - Audit the flagged categories\n")
	b.WriteString("  - Validate assumptions behind volatile measures\n")
	b.WriteString("  - Strengthen cashflow planning\n")

	_, err := io.WriteString(w, b.String())
	return err
}
