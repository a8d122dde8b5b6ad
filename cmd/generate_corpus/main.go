package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/soumenkm/TranslateApp/infrastructure/source"
)

func main() {
	var (
		size       = flag.Int("size", 20, "Number of examples to generate")
		outputPath = flag.String("output", "data.json", "Output file path")
	)
	flag.Parse()

	// Generate the corpus.
	demo, err := source.NewDemo(*size)
	if err != nil {
		log.Fatalf("Failed to create generator: %v", err)
	}
	examples, err := demo.LoadExamples(context.Background())
	if err != nil {
		log.Fatalf("Failed to generate corpus: %v", err)
	}

	data, err := json.MarshalIndent(examples, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode corpus: %v", err)
	}
	if err := os.WriteFile(*outputPath, data, 0o600); err != nil {
		log.Fatalf("Failed to save corpus: %v", err)
	}

	fmt.Printf("Generated sample corpus:\n")
	fmt.Printf("- Path: %s\n", *outputPath)
	fmt.Printf("- Examples: %d\n", len(examples))
	fmt.Printf("\nCorpus saved successfully!\n")

	// Create a README for the corpus.
	readmePath := filepath.Join(filepath.Dir(*outputPath), "README.md")
	readme := `# Sample Rating Corpus

This file is a synthetic corpus generated for exercising the rating
console without real data.

## Format

A JSON array of records, rated in array order:

` + "```json" + `
[
  {"x": "source sentence", "y1": "first candidate", "y2": "second candidate"}
]
` + "```" + `

## Using Real Data

Replace the generated file with your own corpus in the same format and
point the rater at it:

    rater -config config.yaml

Records with missing fields are kept with placeholder text so the
corpus positions stay aligned; the rater logs a finding for each one.
`

	if err := os.WriteFile(readmePath, []byte(readme), 0o600); err != nil {
		log.Printf("Warning: Failed to create README: %v", err)
	}
}
