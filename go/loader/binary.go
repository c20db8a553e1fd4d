package loader

import (
	"bytes"
	"io"

	"github.com/golang/snappy"
	"github.com/lunixbochs/struc"
	"github.com/pkg/errors"

	"github.com/Hafsa-shoaib989/pmpcheck/go/models/pmp"
)

var SNAPSHOT_MAGIC = "PMPS"

const SNAPSHOT_VERSION = 1

type SnapshotHeader struct {
	// MAGIC ("PMPS")
	Magic string `struc:"[4]byte"`
	// file format version
	Version uint32
	// number of pmp entries in the body
	Count uint32
}

// body is snappy-compressed after the header
type snapshotBody struct {
	Cfg  []uint8  `struc:"[64]uint8"`
	Addr []uint64 `struc:"[64]uint64"`
}

// MatchBinary peeks at r for the binary snapshot magic and rewinds it.
func MatchBinary(r io.ReadSeeker) (bool, error) {
	magic := make([]byte, len(SNAPSHOT_MAGIC))
	n, err := io.ReadFull(r, magic)
	if _, serr := r.Seek(0, io.SeekStart); serr != nil {
		return false, errors.Wrap(serr, "failed to rewind pmp snapshot")
	}
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false, errors.Wrap(err, "failed to read pmp snapshot")
	}
	return n == len(magic) && bytes.Equal(magic, []byte(SNAPSHOT_MAGIC)), nil
}

// WriteBinary packs t as a header followed by a compressed body.
func WriteBinary(w io.Writer, t *pmp.Table) error {
	header := &SnapshotHeader{
		Magic:   SNAPSHOT_MAGIC,
		Version: SNAPSHOT_VERSION,
		Count:   pmp.NumEntries,
	}
	if err := struc.Pack(w, header); err != nil {
		return errors.Wrap(err, "failed to pack header")
	}
	cfg, addr := t.Raw()
	body := &snapshotBody{Cfg: cfg[:], Addr: addr[:]}
	zw := snappy.NewBufferedWriter(w)
	if err := struc.Pack(zw, body); err != nil {
		return errors.Wrap(err, "failed to pack body")
	}
	return errors.Wrap(zw.Close(), "failed to flush body")
}

// ReadBinary decodes a snapshot written by WriteBinary.
func ReadBinary(r io.Reader) (*pmp.Table, error) {
	var header SnapshotHeader
	if err := struc.Unpack(r, &header); err != nil {
		return nil, errors.Wrap(err, "failed to unpack header")
	}
	if header.Magic != SNAPSHOT_MAGIC {
		return nil, errors.New("invalid pmp snapshot magic")
	}
	if header.Version != SNAPSHOT_VERSION {
		return nil, errors.Errorf("unsupported pmp snapshot version %d", header.Version)
	}
	if header.Count != pmp.NumEntries {
		return nil, errors.Errorf("invalid pmp snapshot: expected %d entries, got %d", pmp.NumEntries, header.Count)
	}
	var body snapshotBody
	if err := struc.Unpack(snappy.NewReader(r), &body); err != nil {
		return nil, errors.Wrap(err, "failed to unpack body")
	}
	var cfg [pmp.NumEntries]uint8
	var addr [pmp.NumEntries]uint64
	copy(cfg[:], body.Cfg)
	copy(addr[:], body.Addr)
	return pmp.NewTable(&cfg, &addr), nil
}
