package loader

import (
	"bytes"
	"io"
	"io/ioutil"

	"github.com/pkg/errors"

	"github.com/Hafsa-shoaib989/pmpcheck/go/models/pmp"
)

// LoadFile reads a PMP snapshot from path, in either text or binary form.
func LoadFile(path string) (*pmp.Table, error) {
	p, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read pmp snapshot")
	}
	t, err := Load(bytes.NewReader(p))
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return t, nil
}

// Load identifies the snapshot format by its magic and decodes it.
func Load(r io.ReadSeeker) (*pmp.Table, error) {
	bin, err := MatchBinary(r)
	if err != nil {
		return nil, err
	}
	if bin {
		return ReadBinary(r)
	}
	return ReadText(r)
}
