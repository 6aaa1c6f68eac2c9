package pipeline

import (
	"fmt"
	"path/filepath"

	"github.com/ironsheep/card-fusion/internal/discovery"
	"github.com/ironsheep/card-fusion/internal/fusion"
)

// SingleOutputPath returns <resultsDir>/<card>.<mode>.png.
func (p *Processor) SingleOutputPath(resultsDir, card string) string {
	return filepath.Join(resultsDir, fmt.Sprintf("%s.%s.png", card, p.Options.Mode))
}

// RunSingle fuses the card photographed in imageDir and writes
// <resultsDir>/<base(imageDir)>.<mode>.png. "Done." is printed on success.
//
// Any failure is returned; nothing is printed for it.
func (p *Processor) RunSingle(imageDir, resultsDir string) (*RunReport, error) {
	report := p.newReport(imageDir, resultsDir, "")

	if err := p.Options.Mode.Validate(); err != nil {
		return report, err
	}

	group, err := discovery.FindPictureFiles(imageDir, fusion.Directions())
	if err != nil {
		return report, err
	}

	outPath := p.SingleOutputPath(resultsDir, group.Name)
	result, err := p.ProcessCard(group, outPath)
	if err != nil {
		report.addFailure(group, err)
		return report, err
	}
	report.addResult(result)

	p.printf("Done.")
	return report, nil
}
