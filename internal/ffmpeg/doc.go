// Package ffmpeg builds and runs the two external tools a merge depends on:
// ffmpeg's concat demuxer (stream copy into one container) and udtacopy
// (transfer of the GoPro udta metadata atom into the merged file).
//
// Both are black boxes judged by exit status only. [Executor] abstracts the
// subprocess so tests can substitute a fake.
package ffmpeg
