// Package blob reconstructs NCS payloads from their containers and finds
// containers embedded in larger buffers.
//
// # Decompressing
//
// A container is a 16-byte outer header followed by a compressed region (see
// package section for the layout). Decompress returns the payload:
//
//	raw, err := blob.Decompress(data)
//
// The region is either stored verbatim, a single block at offset 0x40, or a
// table of blocks that each decompress to 256 KiB except the last. The
// decompressed length always equals the header's decompressed size; anything
// else is an *errs.DecompressionSizeError. A failing block is reported as an
// *errs.BlockError carrying its index.
//
// Blocks are decompressed by a compress.BlockDecompressor, the bundled LZ4
// backend unless WithDecompressor says otherwise. Blocks have no data
// dependency on each other, so WithConcurrency can decode them in parallel;
// the output is identical to sequential decoding.
//
// # Scanning
//
// Scan finds every container embedded in a buffer by locating the "NCS"
// magic, skipping matches whose version byte is not 1, which belong to a
// manifest ("_NCS/"), or whose declared size runs past the buffer:
//
//	for _, p := range blob.Scan(pak) {
//	    raw, err := p.Decompress()
//	    ...
//	}
//
// ScanManifests finds manifest chunks, which list the data store file names.
package blob
