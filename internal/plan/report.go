package plan

import (
	"fmt"
	"strings"

	"swizzle-generator/internal/diagnostic"
)

// Report summarizes a resolved plan for humans.
type Report struct {
	Swizzles []SwizzleReport
	Total    int
	Errors   []diagnostic.Diagnostic
	Warnings []diagnostic.Diagnostic
}

// SwizzleReport describes one bound declaration.
type SwizzleReport struct {
	Origin    string
	Source    string
	Target    string
	Accessors []string
	Converted []string // "Target.F <- Source.G" bindings emitted as conversions
}

// GenerateReport creates a report from a resolved plan.
func GenerateReport(plan *ResolvedPlan) *Report {
	report := &Report{
		Swizzles: []SwizzleReport{},
		Errors:   plan.Diagnostics.Errors,
		Warnings: plan.Diagnostics.Warnings,
	}

	for i := range plan.Swizzles {
		s := &plan.Swizzles[i]

		sr := SwizzleReport{
			Origin:    s.Origin,
			Source:    s.SourceType.ID.String(),
			Target:    s.TargetType.ID.String(),
			Accessors: make([]string, len(s.Accessors)),
		}

		for j, acc := range s.Accessors {
			sr.Accessors[j] = acc.Name
		}

		for _, f := range s.Fields {
			for _, src := range f.Sources {
				if src.Strategy == StrategyConvert {
					sr.Converted = append(sr.Converted, fmt.Sprintf("%s.%s <- %s.%s",
						s.TargetType.ID.Name, f.Name, s.SourceType.ID.Name, src.Field.Name))
				}
			}
		}

		report.Total += len(sr.Accessors)
		report.Swizzles = append(report.Swizzles, sr)
	}

	return report
}

// FormatReport formats a report as human-readable text. With verbose set
// every accessor name is listed.
func FormatReport(report *Report, verbose bool) string {
	var sb strings.Builder

	for _, s := range report.Swizzles {
		fmt.Fprintf(&sb, "\n=== %s -> %s (%s) ===\n", s.Source, s.Target, s.Origin)
		fmt.Fprintf(&sb, "Accessors: %d\n", len(s.Accessors))

		if len(s.Converted) > 0 {
			sb.WriteString("Conversions:\n")

			for _, c := range s.Converted {
				fmt.Fprintf(&sb, "  ~ %s\n", c)
			}
		}

		if verbose {
			sb.WriteString("  " + strings.Join(s.Accessors, " ") + "\n")
		}
	}

	if len(report.Warnings) > 0 {
		sb.WriteString("\nWarnings:\n")

		for _, w := range report.Warnings {
			fmt.Fprintf(&sb, "  ⚠ %s\n", w.String())
		}
	}

	if len(report.Errors) > 0 {
		sb.WriteString("\nErrors:\n")

		for _, e := range report.Errors {
			fmt.Fprintf(&sb, "  ✗ %s\n", e.String())
		}
	}

	fmt.Fprintf(&sb, "\n%d declarations, %d accessors\n", len(report.Swizzles), report.Total)

	return sb.String()
}
