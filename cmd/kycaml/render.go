package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"kycaml/internal/review"
)

const (
	formatJSON = "json"
	formatText = "text"
)

type output struct {
	Reports []review.Report `json:"reports"`
	Totals  review.Totals   `json:"totals"`
}

func render(w io.Writer, format string, reports []review.Report) error {
	if format == formatText {
		return renderText(w, reports)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output{Reports: reports, Totals: review.Summarize(reports)})
}

func renderText(w io.Writer, reports []review.Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tREFERENCE\tSHAPE\tID\tCLEARED\tKYC\tAML")
	for _, r := range reports {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Index,
			r.Reference,
			r.Shape,
			r.IDNumber,
			yesNo(r.Cleared),
			orDash(r.KYCSummary),
			orDash(r.AMLSummary),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	t := review.Summarize(reports)
	shapes := make([]string, 0, len(t.ByShape))
	for shape, n := range t.ByShape {
		shapes = append(shapes, fmt.Sprintf("%s=%d", shape, n))
	}
	sort.Strings(shapes)

	_, err := fmt.Fprintf(w, "\n%d records: %d cleared, %d not cleared (%d KYC, %d AML disapproved), %d degraded [%s]\n",
		t.Records, t.Cleared, t.NotCleared, t.KYCDisapproved, t.AMLDisapproved, t.Degraded, strings.Join(shapes, " "))
	return err
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
