// Package main provides a command-line harness around the CDSS evaluation
// core: it loads a patient snapshot from a JSON file, evaluates the
// guideline rule catalog (optionally filtered by module), runs the drug
// interaction check when the snapshot carries medications, and prints the
// combined result as JSON.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/cdss-core/internal/catalog"
	"github.com/cdss-core/internal/config"
	"github.com/cdss-core/internal/domain"
	"github.com/cdss-core/internal/service"
)

type output struct {
	Evaluation   *domain.EvaluationResult       `json:"evaluation"`
	Interactions *domain.InteractionCheckResult `json:"interactions,omitempty"`
}

func main() {
	moduleFlag := flag.String("module", "", "restrict evaluation to one clinical module (dialyse, cardiology, ophthalmology, general)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [-module name] <snapshot.json>\n", os.Args[0])
		os.Exit(2)
	}

	manager, err := config.NewManager()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := manager.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	cfg := manager.GetConfig()
	logger := manager.NewLogger()

	cdss, err := service.NewCDSSService(cfg, logger, catalog.DefaultRuleCatalog(), catalog.DefaultDrugCatalog())
	if err != nil {
		log.Fatalf("Failed to initialize CDSS service: %v", err)
	}

	snapshot, err := readSnapshot(flag.Arg(0))
	if err != nil {
		log.Fatalf("Failed to read snapshot: %v", err)
	}

	var result output

	if *moduleFlag != "" {
		result.Evaluation, err = cdss.EvaluateModule(snapshot, domain.Module(*moduleFlag))
	} else {
		result.Evaluation, err = cdss.Evaluate(snapshot)
	}
	if err != nil {
		log.Fatalf("Evaluation failed: %v", err)
	}

	if len(snapshot.Medications) > 0 {
		result.Interactions, err = cdss.CheckInteractions(service.InteractionCheckRequest{
			Medications: snapshot.MedicationNames(),
			Conditions:  snapshot.Conditions,
			Allergies:   snapshot.Allergies,
			EGFR:        snapshot.Labs.EGFR,
			OnDialysis:  snapshot.Dialysis != nil,
		})
		if err != nil {
			log.Fatalf("Interaction check failed: %v", err)
		}
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		log.Fatalf("Failed to encode result: %v", err)
	}
}

func readSnapshot(path string) (*domain.PatientSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	snapshot := &domain.PatientSnapshot{}
	if err := json.Unmarshal(data, snapshot); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	return snapshot, nil
}
