package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ironsheep/card-fusion/internal/discovery"
	"github.com/ironsheep/card-fusion/internal/fusion"
	"github.com/ironsheep/card-fusion/internal/imaging"
)

// RunReport summarizes one run. It is written as JSON when a report path is
// configured.
type RunReport struct {
	Mode       string `json:"mode"`
	Engine     string `json:"engine"`
	BlueValue  uint8  `json:"blue_value"`
	InputDir   string `json:"input_dir"`
	ResultsDir string `json:"results_dir"`
	DefectName string `json:"defect_name,omitempty"`

	Processed int `json:"processed"`
	Failed    int `json:"failed"`

	Cards   []CardReport `json:"cards"`
	Skipped []SkipReport `json:"skipped,omitempty"`
}

// CardReport is the entry for one card that was attempted.
type CardReport struct {
	Name string `json:"name"`

	// Inputs maps direction keywords ("Up", ...) to file paths.
	Inputs map[string]string `json:"inputs"`

	Output string                  `json:"output,omitempty"`
	Width  int                     `json:"width,omitempty"`
	Height int                     `json:"height,omitempty"`
	Stats  *imaging.CompositeStats `json:"stats,omitempty"`
	Error  string                  `json:"error,omitempty"`
}

// SkipReport is the entry for an incomplete batch card.
type SkipReport struct {
	Name    string   `json:"name"`
	Missing []string `json:"missing"`
}

func (p *Processor) newReport(inputDir, resultsDir, defectName string) *RunReport {
	engine := ""
	if p.Engine != nil {
		engine = p.Engine.Name()
	}
	return &RunReport{
		Mode:       string(p.Options.Mode),
		Engine:     engine,
		BlueValue:  p.Options.BlueValue,
		InputDir:   inputDir,
		ResultsDir: resultsDir,
		DefectName: defectName,
		Cards:      []CardReport{},
	}
}

func (r *RunReport) addResult(res *CardResult) {
	r.Processed++
	r.Cards = append(r.Cards, CardReport{
		Name:   res.Name,
		Inputs: inputNames(res.Inputs),
		Output: res.Output,
		Width:  res.Size.X,
		Height: res.Size.Y,
		Stats:  res.Stats,
	})
}

func (r *RunReport) addFailure(group discovery.CardGroup, err error) {
	r.Failed++
	r.Cards = append(r.Cards, CardReport{
		Name:   group.Name,
		Inputs: inputNames(group.Files),
		Error:  unwrapCard(err).Error(),
	})
}

func (r *RunReport) addSkipped(e *discovery.IncompleteGroupError) {
	missing := make([]string, len(e.Missing))
	for i, d := range e.Missing {
		missing[i] = d.Token()
	}
	r.Skipped = append(r.Skipped, SkipReport{Name: e.Name, Missing: missing})
}

func inputNames(files map[fusion.Direction]string) map[string]string {
	m := make(map[string]string, len(files))
	for d, path := range files {
		m[d.String()] = path
	}
	return m
}

// WriteReport writes r to path as indented JSON.
func WriteReport(path string, r *RunReport) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
