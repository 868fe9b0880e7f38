// Command ocrtest recognizes the text of one screenshot and prints the words,
// the fields they group into and each field's classified type.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"formdiff/internal/form"
	"formdiff/internal/header"
	"formdiff/internal/imageio"
	"formdiff/internal/ocr"
	"formdiff/internal/ocr/tesseract"
)

func main() {
	imagePath := flag.String("image", "", "Path to screenshot (PNG, JPEG, BMP, TIFF or GIF)")
	langs := flag.String("lang", "eng,jpn", "Comma-separated Tesseract languages")
	showRaw := flag.Bool("raw", false, "Also print words below the confidence threshold")
	flag.Parse()

	if *imagePath == "" {
		fmt.Println("Usage: ocrtest -image <path> [-lang eng,jpn] [-raw]")
		os.Exit(1)
	}

	shot, err := imageio.Load(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load image: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %s image: %dx%d pixels\n", shot.Format, shot.Width(), shot.Height())

	crop := header.NewCropper(header.DefaultParams()).Apply(shot.Image)
	fmt.Printf("Header: %d rows removed (%s)\n", crop.Offset, crop.Method)

	engine, err := tesseract.NewEngine(strings.Split(*langs, ",")...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start OCR: %v\n", err)
		os.Exit(1)
	}
	defer engine.Close()

	words, err := engine.Extract(crop.Image)
	if err != nil {
		fmt.Fprintf(os.Stderr, "OCR failed: %v\n", err)
		os.Exit(1)
	}

	if *showRaw {
		fmt.Printf("\nRaw words (%d):\n", len(words))
		for _, w := range words {
			fmt.Printf("  %-24q conf=%5.1f at (%d,%d) %dx%d\n", w.Text, w.Confidence, w.Left, w.Top, w.Width, w.Height)
		}
	}

	frags := ocr.Fragments(words, crop.Offset)
	fmt.Printf("\nFragments (%d of %d words, confidence > %d):\n", len(frags), len(words), ocr.MinConfidence)
	for _, f := range frags {
		fmt.Printf("  %-24q conf=%5.1f at (%d,%d) %dx%d\n", f.Text, f.Confidence, f.X, f.Y, f.Width, f.Height)
	}

	fields := form.Group(frags)
	fmt.Printf("\nFields (%d):\n", len(fields))
	counts := make(map[form.FieldType]int)
	for _, f := range fields {
		fmt.Printf("  %s\n", f)
		counts[f.Type]++
	}

	fmt.Printf("\nBy type:\n")
	for _, t := range []form.FieldType{
		form.FieldButton, form.FieldCheckbox, form.FieldRadio, form.FieldDropdown,
		form.FieldInputEmail, form.FieldInputPhone, form.FieldInputDate, form.FieldInputText,
	} {
		if counts[t] > 0 {
			fmt.Printf("  %-12s %d\n", t, counts[t])
		}
	}
}
