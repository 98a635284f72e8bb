package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/powercastio/powercast/internal/regression"
)

func main() {
	// Command line flags
	modelPath := flag.String("model", "", "Path to a trained model artifact (.bin)")
	asJSON := flag.Bool("json", false, "Print metadata as JSON instead of text")

	flag.Parse()

	// Validate required parameters
	if *modelPath == "" {
		log.Fatal("Error: -model parameter is required (path to a .bin artifact)")
	}

	art, err := regression.LoadArtifact(*modelPath)
	if err != nil {
		log.Fatalf("Error reading artifact: %v", err)
	}
	meta := art.Metadata

	if *asJSON {
		out, err := json.MarshalIndent(meta, "", "    ")
		if err != nil {
			log.Fatalf("Error encoding metadata: %v", err)
		}
		fmt.Println(string(out))
		return
	}

	fmt.Printf("Artifact:       %s\n", *modelPath)
	fmt.Printf("ID:             %s\n", meta.ID)
	fmt.Printf("Algorithm:      %s\n", meta.Algorithm)
	fmt.Printf("Format version: %d\n", meta.FormatVersion)
	fmt.Printf("Trained at:     %s\n", meta.TrainedAt.Format(time.RFC3339))
	fmt.Printf("Target column:  %s\n", meta.TargetColumn)
	fmt.Printf("Training rows:  %d\n", meta.Rows)
	fmt.Printf("Train MAE:      %.6f\n", meta.TrainMAE)
	fmt.Printf("Train RMSE:     %.6f\n", meta.TrainRMSE)
	fmt.Printf("Features (%d):\n", len(meta.Features))
	for _, f := range meta.Features {
		fmt.Printf("  - %s\n", f)
	}
}
