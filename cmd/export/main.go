// Command export converts a CSV or XLSX file into the data sheet PDF
// without the interactive UI: every row that survives normalization and
// the optional name filter is exported.
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"datasheet/adapters/pdf"
	"datasheet/adapters/tabular"
	"datasheet/domain/sheet"
)

func main() {
	in := flag.String("in", "", "input CSV or XLSX file (required)")
	out := flag.String("out", "classification.pdf", "output PDF file")
	hasHeader := flag.Bool("header", false, "first row contains headers")
	search := flag.String("search", "", "keep only rows whose name contains this term")
	logoFile := flag.String("logo", "logo.png", "logo image placed at the top of the sheet")
	flag.Parse()

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		log.Fatalf("Failed to read input file: %v", err)
	}

	rows, err := tabular.NewReader(*in).ReadRows(data)
	if err != nil {
		log.Fatalf("Failed to parse input file: %v", err)
	}

	table, err := sheet.Normalize(rows, *hasHeader)
	if err != nil {
		log.Fatalf("Failed to normalize input: %v", err)
	}
	table = table.FilterByName(*search)

	logo, err := os.ReadFile(*logoFile)
	if err != nil {
		log.Printf("WARNING - Could not load logo %s: %v", *logoFile, err)
	}

	output, err := pdf.NewRenderer().Render(table, logo, time.Now())
	if err != nil {
		log.Fatalf("Failed to render data sheet: %v", err)
	}

	if err := os.WriteFile(*out, output, 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}
	log.Printf("Wrote %s (%d rows, %d bytes)", *out, table.Len(), len(output))
}
