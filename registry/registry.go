// Package registry implements the CBOR payload shapes UR envelopes carry
// (component I, spec.md §6 "Payload types"): crypto-bip39, crypto-psbt,
// bytes, and the tagged crypto-hdkey/crypto-keypath/crypto-output/
// crypto-eckey/script-expression family from BCR-2020-007/010. Only the
// fields a typical wallet-interchange flow exercises are modeled; see
// DESIGN.md for the fields intentionally left out.
package registry

import (
	"github.com/pkg/errors"

	"github.com/blockchaincommons/bc-ur-go/cborlite"
	"github.com/blockchaincommons/bc-ur-go/compress"
)

// Tag numbers from BCR-2020-007/010.
const (
	TagHDKey           uint64 = 303
	TagKeyPath         uint64 = 304
	TagECKey           uint64 = 306
	TagScriptExpression uint64 = 307
	TagOutput          uint64 = 308
)

// Bytes is the "bytes" UR type: a plain CBOR byte string (no outer tag),
// carrying an inner compress envelope so large opaque payloads benefit
// from snappy when it helps.
type Bytes struct {
	Data []byte
}

// Encode renders b as a CBOR byte string wrapping its compressed form.
func (b Bytes) Encode() ([]byte, error) {
	enveloped := compress.Compress(b.Data)
	return cborlite.Encode(enveloped)
}

// DecodeBytes parses a "bytes" CBOR payload.
func DecodeBytes(data []byte) (Bytes, error) {
	v, err := cborlite.Decode(data)
	if err != nil {
		return Bytes{}, errors.Wrap(err, "registry: decoding bytes payload")
	}
	enveloped, ok := v.([]byte)
	if !ok {
		return Bytes{}, errors.New("registry: bytes payload is not a CBOR byte string")
	}
	raw, err := compress.Decompress(enveloped)
	if err != nil {
		return Bytes{}, errors.Wrap(err, "registry: decompressing bytes payload")
	}
	return Bytes{Data: raw}, nil
}

// PSBT is the "crypto-psbt" UR type: a plain CBOR byte string, no outer
// tag, carrying the raw serialized PSBT.
type PSBT struct {
	Data []byte
}

func (p PSBT) Encode() ([]byte, error) {
	return cborlite.Encode(p.Data)
}

func DecodePSBT(data []byte) (PSBT, error) {
	v, err := cborlite.Decode(data)
	if err != nil {
		return PSBT{}, errors.Wrap(err, "registry: decoding psbt payload")
	}
	raw, ok := v.([]byte)
	if !ok {
		return PSBT{}, errors.New("registry: psbt payload is not a CBOR byte string")
	}
	return PSBT{Data: raw}, nil
}

// BIP39 is the "crypto-bip39" UR type: {1: [word, ...], 2: lang?}.
type BIP39 struct {
	Words []string
	Lang  string // empty means absent (no key 2)
}

func (b BIP39) Encode() ([]byte, error) {
	if len(b.Words) == 0 {
		return nil, errors.New("registry: bip39 requires at least one word")
	}
	words := make([]cborlite.Value, len(b.Words))
	for i, w := range b.Words {
		words[i] = w
	}
	m := cborlite.NewMap()
	m.Set(1, cborlite.Value(words))
	if b.Lang != "" {
		m.Set(2, b.Lang)
	}
	return cborlite.Encode(m)
}

func DecodeBIP39(data []byte) (BIP39, error) {
	v, err := cborlite.Decode(data)
	if err != nil {
		return BIP39{}, errors.Wrap(err, "registry: decoding bip39 payload")
	}
	m, ok := v.(*cborlite.Map)
	if !ok {
		return BIP39{}, errors.New("registry: bip39 payload is not a CBOR map")
	}
	wordsVal, ok := m.Get(1)
	if !ok {
		return BIP39{}, errors.New("registry: bip39 payload missing key 1 (words)")
	}
	arr, ok := wordsVal.([]cborlite.Value)
	if !ok {
		return BIP39{}, errors.New("registry: bip39 key 1 is not a CBOR array")
	}
	words := make([]string, len(arr))
	for i, e := range arr {
		s, ok := e.(string)
		if !ok {
			return BIP39{}, errors.Errorf("registry: bip39 word %d is not a CBOR text string", i)
		}
		words[i] = s
	}
	var lang string
	if langVal, ok := m.Get(2); ok {
		lang, ok = langVal.(string)
		if !ok {
			return BIP39{}, errors.New("registry: bip39 key 2 (lang) is not a CBOR text string")
		}
	}
	return BIP39{Words: words, Lang: lang}, nil
}
