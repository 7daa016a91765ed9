package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmharper/textorient"
	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/stoty/underflipper"
	"github.com/stoty/underflipper/internal/logger"
)

// You give this program a directory, and it recursively scans for all the PDF files in that directory.
// It runs card detection on every card page of every PDF, and prints what it found, along with the
// page skew and orientation. The detection renders are written into one big output directory.
// You can then flip through those images, and check that the sample row crosses every card edge.

func check(err error) {
	if err != nil {
		panic(err)
	}
}

func main() {
	if len(os.Args) != 3 {
		fmt.Printf("Usage: %s <input-dir> <output-dir>\n", os.Args[0])
		os.Exit(1)
	}
	inputDir := os.Args[1]
	outputDir := os.Args[2]

	pdfapi.DisableConfigDir()
	check(os.MkdirAll(outputDir, 0755))

	log := logger.New(false, false)
	defer log.Sync()

	orient, err := textorient.NewOrient()
	check(err)
	detector := underflipper.NewDetector(underflipper.DefaultLayout(), log)
	inspector := underflipper.NewInspector(detector, orient)

	pdfFiles := findAllPDFFilesInDirectory(inputDir)
	outputIdx := 1

	for _, pdfFile := range pdfFiles {
		base := filepath.Base(pdfFile)
		doc, err := underflipper.NewDocumentFromFile(pdfFile, log)
		if err != nil {
			fmt.Printf("Skipping %v (%v)\n", base, err)
			continue
		}
		fmt.Printf("Processing %v\n", base)
		check(doc.CheckTemplate(detector.Layout))

		for page := 1; page < doc.NumPages(); page++ {
			outputFile := fmt.Sprintf("%v/%05d_%v_%02d.jpg", outputDir, outputIdx, base, page+1)
			outputFile = strings.ReplaceAll(outputFile, " ", "_")

			report, err := inspector.Inspect(doc, page, outputFile)
			check(err)
			fmt.Printf("  %v\n", report)

			outputIdx++
		}
		doc.Close()
	}
}

func findAllPDFFilesInDirectory(dir string) []string {
	var pdfFiles []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.ToLower(filepath.Ext(path)) == ".pdf" {
			pdfFiles = append(pdfFiles, path)
		}
		return nil
	})
	check(err)
	return pdfFiles
}
