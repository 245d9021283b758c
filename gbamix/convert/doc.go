// Package convert turns common audio files into the raw signed 8-bit
// assets the mixer plays.
//
// The pipeline is Decode -> Resample -> Downmix/ToStereo -> Quantize,
// with File tying the steps together for the CLI. Decoding dispatches on
// the file extension: wav and aiff through the go-audio decoders, mp3
// through go-mp3, ogg through oggvorbis. Samples travel through the
// pipeline as normalized float32 and only become int8 at the very end.
//
// Conversion runs at build time on a host machine. The one hard
// requirement is that the output is produced at the exact rate the
// target mixer is configured for.
package convert
