package ffmpeg

import (
	"strconv"

	"github.com/backmassage/gsjoin/internal/config"
)

// BuildConcat constructs the complete ffmpeg argument slice (binary first)
// that joins the files listed in manifest into output.
//
// The template is fixed: concat demuxer with unsafe (absolute) paths
// allowed, stream copy, one -map per configured stream index of the first
// input, and -ignore_unknown so GoPro's unrecognized data tracks do not
// abort the copy.
func BuildConcat(cfg *config.Config, manifest, output string) []string {
	args := make([]string, 0, 24+2*len(cfg.StreamMaps))

	// --- Preamble ---
	args = append(args, cfg.FFmpegPath, "-hide_banner", "-nostdin", "-y")

	if cfg.Verbose {
		args = append(args, "-loglevel", "info")
	} else {
		args = append(args, "-loglevel", "error")
	}

	// --- Input ---
	args = append(args, "-f", "concat", "-safe", "0", "-i", manifest)

	// --- Codec ---
	args = append(args, "-c", "copy")

	// --- Stream maps ---
	for _, idx := range cfg.StreamMaps {
		args = append(args, "-map", "0:"+strconv.Itoa(idx))
	}
	args = append(args, "-ignore_unknown")

	// --- Output ---
	args = append(args, output)
	return args
}

// BuildUdtacopy constructs the udtacopy argument slice: donor first, then
// the file that receives the metadata.
func BuildUdtacopy(cfg *config.Config, donor, target string) []string {
	return []string{cfg.UdtacopyPath, donor, target}
}
