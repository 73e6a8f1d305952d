package constants

import "os"

func GetOutDir() string {
	path := os.Getenv("PIXELROLL_OUT_DIR")
	if path != "" {
		return path
	}
	return "./out"
}

func GetAddr() string {
	addr := os.Getenv("PIXELROLL_ADDR")
	if addr != "" {
		return addr
	}
	return ":8080"
}

// empty means records are not persisted
func GetDynamoEndpoint() string {
	return os.Getenv("PIXELROLL_DYNAMO_ENDPOINT")
}

func GetDynamoTable() string {
	table := os.Getenv("PIXELROLL_DYNAMO_TABLE")
	if table != "" {
		return table
	}
	return "pixelroll-conversions"
}

// pixels with alpha below this are blank regardless of color
const AlphaThreshold = 128

// every note-on is written with this velocity
const NoteVelocity = 1

const ScanProgressInterval = 32

const WriteProgressMask = 0x3F

const StaticPreviewScale = 5

// rows per interactive preview block, multiplied by the scale
const PreviewBlockRows = 32

const PaletteColorsPerTrack = 16

const ClusterIterations = 10

const ClusterSampleWidth = 128
