package ur

import (
	"github.com/pkg/errors"

	"github.com/blockchaincommons/bc-ur-go/cborlite"
	"github.com/blockchaincommons/bc-ur-go/fountain"
)

// encodeFrame renders a fountain part as the 5-element CBOR array spec.md
// §6 specifies: [seq_num, seq_len, message_len, checksum, data].
func encodeFrame(p fountain.Part) ([]byte, error) {
	arr := []cborlite.Value{
		uint64(p.SeqNum),
		uint64(p.SeqLen),
		uint64(p.MessageLen),
		uint64(p.Checksum),
		p.Data,
	}
	return cborlite.Encode(arr)
}

// decodeFrame parses a CBOR 5-tuple back into a fountain part.
func decodeFrame(data []byte) (fountain.Part, error) {
	v, err := cborlite.Decode(data)
	if err != nil {
		return fountain.Part{}, errors.Wrap(err, "decoding CBOR frame")
	}
	arr, ok := v.([]cborlite.Value)
	if !ok || len(arr) != 5 {
		return fountain.Part{}, errors.New("CBOR frame is not a 5-element array")
	}

	seqNum, ok := arr[0].(uint64)
	if !ok {
		return fountain.Part{}, errors.New("frame[0] (seq_num) is not a uint")
	}
	seqLen, ok := arr[1].(uint64)
	if !ok {
		return fountain.Part{}, errors.New("frame[1] (seq_len) is not a uint")
	}
	messageLen, ok := arr[2].(uint64)
	if !ok {
		return fountain.Part{}, errors.New("frame[2] (message_len) is not a uint")
	}
	checksum, ok := arr[3].(uint64)
	if !ok {
		return fountain.Part{}, errors.New("frame[3] (checksum) is not a uint")
	}
	data5, ok := arr[4].([]byte)
	if !ok {
		return fountain.Part{}, errors.New("frame[4] (data) is not a byte string")
	}

	return fountain.Part{
		SeqNum:     uint32(seqNum),
		SeqLen:     uint32(seqLen),
		MessageLen: uint32(messageLen),
		Checksum:   uint32(checksum),
		Data:       data5,
	}, nil
}
