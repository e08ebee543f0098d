package ffmpeg

import (
	"context"
	"fmt"

	"github.com/backmassage/gsjoin/internal/config"
)

// udtacopy reports "nothing to copy" as exit status 1; both 0 and 1 leave
// the target usable.
var udtacopyAccepted = map[int]bool{0: true, 1: true}

// Concat runs the concat demuxer over manifest, writing output. Any exit
// status other than 0 is returned as an *ExitError.
func Concat(ctx context.Context, ex Executor, cfg *config.Config, manifest, output string) error {
	res := ex.Run(ctx, BuildConcat(cfg, manifest, output))
	if res.Err != nil {
		return fmt.Errorf("run ffmpeg: %w", res.Err)
	}
	if res.ExitCode != 0 {
		return &ExitError{Tool: "ffmpeg", Code: res.ExitCode, Output: res.Output}
	}
	return nil
}

// CopyMetadata runs udtacopy to transfer the udta atom from donor into
// target. Exit statuses 0 and 1 are accepted and returned as code; any
// other status is returned as an *ExitError.
func CopyMetadata(ctx context.Context, ex Executor, cfg *config.Config, donor, target string) (code int, err error) {
	res := ex.Run(ctx, BuildUdtacopy(cfg, donor, target))
	if res.Err != nil {
		return res.ExitCode, fmt.Errorf("run udtacopy: %w", res.Err)
	}
	if !udtacopyAccepted[res.ExitCode] {
		return res.ExitCode, &ExitError{Tool: "udtacopy", Code: res.ExitCode, Output: res.Output}
	}
	return res.ExitCode, nil
}
