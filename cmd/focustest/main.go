// Command focustest runs header cropping and focus detection on one screenshot
// and prints every candidate found.
package main

import (
	"flag"
	"fmt"
	"os"

	"formdiff/internal/cvfocus"
	"formdiff/internal/focus"
	"formdiff/internal/header"
	"formdiff/internal/imageio"
)

func main() {
	imagePath := flag.String("image", "", "Path to screenshot (PNG, JPEG, BMP, TIFF or GIF)")
	fallback := flag.Float64("fallback", 0.12, "Header crop fraction used when detection fails")
	flag.Parse()

	if *imagePath == "" {
		fmt.Println("Usage: focustest -image <path> [-fallback 0.12]")
		os.Exit(1)
	}

	shot, err := imageio.Load(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load image: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %s image: %dx%d pixels\n", shot.Format, shot.Width(), shot.Height())

	cropper := header.NewCropper(header.DefaultParams().WithFallbackPercentage(*fallback))
	crop := cropper.Apply(shot.Image)
	fmt.Printf("Header: %d rows removed (%s)\n", crop.Offset, crop.Method)
	if crop.Reason != nil {
		fmt.Printf("  Detection rejected: %v\n", crop.Reason)
	}

	params := focus.DefaultParams()
	fmt.Printf("\nDetection parameters:\n")
	fmt.Printf("  Canny: %.0f/%.0f\n", params.CannyLow, params.CannyHigh)
	fmt.Printf("  Cursor: width <= %d, height %d-%d, aspect > %.1f\n",
		params.CursorMaxWidth, params.CursorMinHeight, params.CursorMaxHeight, params.CursorMinAspect)
	fmt.Printf("  Bold: area %.0f-%.0f, density > %.2f\n",
		params.BoldMinArea, params.BoldMaxArea, params.BoldMinDensity)
	fmt.Printf("  Border: area %.0f-%.0f, roundness %.2f-%.2f\n",
		params.BorderMinArea, params.BorderMaxArea, params.BorderMinRoundness, params.BorderMaxRoundness)

	res := cvfocus.NewDetector(params, cropper).Detect(crop.Image, crop.Offset)

	fmt.Printf("\nDetected %d candidates (%d cursors, %d bold areas, %d rounded borders):\n",
		len(res.Candidates), res.CursorsFound, res.BoldAreasFound, res.RoundedBordersFound)
	fmt.Printf("%-16s %8s %8s %8s %8s %10s\n", "Type", "X", "Y", "Width", "Height", "Strength")

	for _, c := range res.Candidates {
		fmt.Printf("%-16s %8d %8d %8d %8d %10.2f\n", c.Kind, c.X, c.Y, c.Width, c.Height, c.Strength)
	}

	if res.Primary != nil {
		fmt.Printf("\nPrimary focus: %s\n", res.Primary)
	} else {
		fmt.Printf("\nNo focus element detected\n")
	}
}
