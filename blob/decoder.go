package blob

import (
	"fmt"
	"sync"

	"github.com/arloliu/ncs/errs"
	"github.com/arloliu/ncs/internal/options"
	"github.com/arloliu/ncs/section"
)

// Decoder reconstructs the payload of one container.
//
// Note: The Decoder is NOT thread-safe. Its block decompressor may be shared.
type Decoder struct {
	data   []byte
	region []byte
	header section.Header
	cfg    *DecoderConfig
}

// NewDecoder parses the outer header of the container at the start of data.
//
// The decoder validates the header and the region length but does not
// decompress anything until Decode is called.
//
// Parameters:
//   - data: container bytes; trailing bytes after the region are ignored
//   - opts: decoder options
//
// Returns:
//   - *Decoder: decoder ready for Decode
//   - error: header errors, a truncated region, or an invalid option
func NewDecoder(data []byte, opts ...DecoderOption) (*Decoder, error) {
	cfg := NewDecoderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	header, err := section.ParseHeader(data)
	if err != nil {
		return nil, err
	}

	payload := data[section.HeaderSize:]
	if len(payload) < int(header.CompressedSize) {
		return nil, errs.NewDataTooShort(int(header.CompressedSize), len(payload))
	}

	return &Decoder{
		data:   data,
		region: payload[:header.CompressedSize],
		header: header,
		cfg:    cfg,
	}, nil
}

// Header returns the parsed outer header.
func (d *Decoder) Header() section.Header {
	return d.header
}

// Decode reconstructs the payload.
//
// Returns:
//   - []byte: exactly Header().DecompressedSize bytes
//   - error: inner header errors, *errs.BlockError for a failing block, or
//     *errs.DecompressionSizeError when the result has the wrong length
func (d *Decoder) Decode() ([]byte, error) {
	if !d.header.IsCompressed() {
		out := make([]byte, len(d.region))
		copy(out, d.region)

		return out, nil
	}

	inner, err := section.ParseInnerHeader(d.region)
	if err != nil {
		return nil, err
	}

	size := int(d.header.DecompressedSize)

	var out []byte
	if inner.IsMultiBlock() {
		out, err = d.decodeBlocks(inner, size)
	} else {
		out, err = d.decodeSingle(inner, size)
	}
	if err != nil {
		return nil, err
	}

	if len(out) != size {
		return nil, errs.NewDecompressionSize(size, len(out))
	}

	return out, nil
}

func (d *Decoder) decodeSingle(inner section.InnerHeader, size int) ([]byte, error) {
	data := d.region[inner.DataOffset():]
	if len(data) == size {
		out := make([]byte, size)
		copy(out, data)

		return out, nil
	}

	return d.cfg.decompressor.DecompressBlock(data, size)
}

// blockSpan locates one block inside the region.
type blockSpan struct {
	start  int
	end    int
	target int
}

func (d *Decoder) decodeBlocks(inner section.InnerHeader, size int) ([]byte, error) {
	count := len(inner.BlockSizes)
	if count == 0 {
		if size == 0 {
			return []byte{}, nil
		}

		return nil, fmt.Errorf("%w: no blocks for %d bytes", errs.ErrInvalidBlockTable, size)
	}

	spans := make([]blockSpan, count)
	offset := inner.DataOffset()
	for i, blockLen := range inner.BlockSizes {
		target := inner.BlockTarget(i, size)
		if target < 0 {
			return nil, fmt.Errorf("%w: %d blocks exceed %d bytes", errs.ErrInvalidBlockTable, count, size)
		}
		spans[i] = blockSpan{start: offset, end: offset + int(blockLen), target: target}
		offset += int(blockLen)
	}

	var (
		results [][]byte
		err     error
	)
	if d.cfg.concurrency > 1 && count > 1 {
		results, err = d.decodeParallel(spans)
	} else {
		results, err = d.decodeSequential(spans)
	}
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, size)
	for _, block := range results {
		out = append(out, block...)
	}

	return out, nil
}

func (d *Decoder) decodeBlock(i int, span blockSpan) ([]byte, error) {
	block, err := d.cfg.decompressor.DecompressBlock(d.region[span.start:span.end], span.target)
	if err != nil {
		return nil, &errs.BlockError{Index: i, Err: err}
	}

	return block, nil
}

func (d *Decoder) decodeSequential(spans []blockSpan) ([][]byte, error) {
	results := make([][]byte, len(spans))
	for i, span := range spans {
		block, err := d.decodeBlock(i, span)
		if err != nil {
			return nil, err
		}
		results[i] = block
	}

	return results, nil
}

// decodeParallel decodes blocks on up to concurrency workers. The error of the
// lowest failing block index is returned, matching sequential decoding.
func (d *Decoder) decodeParallel(spans []blockSpan) ([][]byte, error) {
	results := make([][]byte, len(spans))
	failures := make([]error, len(spans))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for range min(d.cfg.concurrency, len(spans)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i], failures[i] = d.decodeBlock(i, spans[i])
			}
		}()
	}

	for i := range spans {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range failures {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
