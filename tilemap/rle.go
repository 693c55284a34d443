package tilemap

import "fmt"

const (
	rleRunFlag = 0x80
	rleMaxRun  = 128
)

// DecodeRLE expands src into exactly n bytes. A control byte with the high
// bit set repeats the next byte (low7+1) times, otherwise it is a literal.
func DecodeRLE(src []byte, n int) ([]byte, error) {
	dst := make([]byte, 0, n)
	for i := 0; i < len(src); {
		c := src[i]
		i++
		if c&rleRunFlag == 0 {
			if len(dst) == n {
				return nil, fmt.Errorf("%w: literal at offset %d past %d bytes", ErrMalformedRLE, i-1, n)
			}
			dst = append(dst, c)
			continue
		}

		if i >= len(src) {
			return nil, fmt.Errorf("%w: run at offset %d missing value", ErrMalformedRLE, i-1)
		}
		v := src[i]
		i++
		count := int(c&^rleRunFlag) + 1
		if len(dst)+count > n {
			return nil, fmt.Errorf("%w: run of %d at offset %d overruns %d bytes", ErrMalformedRLE, count, i-2, n)
		}
		for k := 0; k < count; k++ {
			dst = append(dst, v)
		}
	}
	if len(dst) != n {
		return nil, fmt.Errorf("%w: decoded %d bytes, want %d", ErrMalformedRLE, len(dst), n)
	}
	return dst, nil
}

// EncodeRLE is the inverse of DecodeRLE. Bytes with the high bit set are
// always emitted as runs so they cannot be read back as control bytes.
func EncodeRLE(src []byte) []byte {
	out := make([]byte, 0, len(src)/2+2)
	for i := 0; i < len(src); {
		v := src[i]
		run := 1
		for i+run < len(src) && src[i+run] == v && run < rleMaxRun {
			run++
		}
		if run == 1 && v&rleRunFlag == 0 {
			out = append(out, v)
		} else {
			out = append(out, rleRunFlag|byte(run-1), v)
		}
		i += run
	}
	return out
}
