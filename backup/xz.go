//go:build xz

package backup

import (
	"io"

	"github.com/ulikunitz/xz"
)

// xzCodec is an optional higher-ratio snapshot codec, gated behind the xz
// build tag.
type xzCodec struct{}

func init() {
	Register(xzCodec{})
}

func (xzCodec) Name() string { return "xz" }

func (xzCodec) Compress(dst io.Writer, src io.Reader) error {
	w, err := xz.NewWriter(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, src); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func (xzCodec) Decompress(dst io.Writer, src io.Reader) error {
	r, err := xz.NewReader(src)
	if err != nil {
		return err
	}
	_, err = io.Copy(dst, r)
	return err
}
