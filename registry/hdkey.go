package registry

import (
	"github.com/pkg/errors"

	"github.com/blockchaincommons/bc-ur-go/cborlite"
)

// HDKey is crypto-hdkey (tag 303), BCR-2020-007. A practical subset of the
// full shape: master/private flags, the 33-byte key material, chain code,
// and the parent fingerprint used to display derivation lineage.
type HDKey struct {
	IsMaster          bool
	IsPrivate         bool
	KeyData           []byte
	ChainCode         []byte
	ParentFingerprint uint32
}

func (k HDKey) Encode() (cborlite.Value, error) {
	if len(k.KeyData) == 0 {
		return nil, errors.New("registry: hdkey requires key_data")
	}
	m := cborlite.NewMap()
	if k.IsMaster {
		m.Set(1, true)
	}
	if k.IsPrivate {
		m.Set(2, true)
	}
	m.Set(3, k.KeyData)
	if len(k.ChainCode) > 0 {
		m.Set(4, k.ChainCode)
	}
	if k.ParentFingerprint != 0 {
		m.Set(8, uint64(k.ParentFingerprint))
	}
	return cborlite.Tag{Number: TagHDKey, Content: m}, nil
}

func decodeHDKeyContent(content cborlite.Value) (HDKey, error) {
	m, ok := content.(*cborlite.Map)
	if !ok {
		return HDKey{}, errors.New("registry: hdkey content is not a CBOR map")
	}
	var k HDKey
	if v, ok := m.Get(1); ok {
		k.IsMaster, _ = v.(bool)
	}
	if v, ok := m.Get(2); ok {
		k.IsPrivate, _ = v.(bool)
	}
	keyData, ok := m.Get(3)
	if !ok {
		return HDKey{}, errors.New("registry: hdkey missing key 3 (key_data)")
	}
	k.KeyData, ok = keyData.([]byte)
	if !ok {
		return HDKey{}, errors.New("registry: hdkey key 3 (key_data) is not a byte string")
	}
	if v, ok := m.Get(4); ok {
		k.ChainCode, _ = v.([]byte)
	}
	if v, ok := m.Get(8); ok {
		fp, ok := v.(uint64)
		if !ok {
			return HDKey{}, errors.New("registry: hdkey key 8 (parent_fingerprint) is not a uint")
		}
		k.ParentFingerprint = uint32(fp)
	}
	return k, nil
}

// DecodeHDKey parses a complete crypto-hdkey CBOR item (the outer tag
// included).
func DecodeHDKey(data []byte) (HDKey, error) {
	v, err := cborlite.Decode(data)
	if err != nil {
		return HDKey{}, errors.Wrap(err, "registry: decoding hdkey payload")
	}
	tag, ok := v.(cborlite.Tag)
	if !ok || tag.Number != TagHDKey {
		return HDKey{}, errors.New("registry: hdkey payload is not tag 303")
	}
	return decodeHDKeyContent(tag.Content)
}

// PathComponent is one step of a crypto-keypath (BCR-2020-007): a
// derivation index plus its hardened flag.
type PathComponent struct {
	Index    uint32
	Hardened bool
}

// KeyPath is crypto-keypath (tag 304): an ordered derivation path plus the
// fingerprint of the key it originates from.
type KeyPath struct {
	Components        []PathComponent
	SourceFingerprint uint32
	Depth             uint32
}

func (p KeyPath) Encode() (cborlite.Value, error) {
	components := make([]cborlite.Value, 0, len(p.Components)*2)
	for _, c := range p.Components {
		components = append(components, uint64(c.Index), c.Hardened)
	}
	m := cborlite.NewMap()
	m.Set(1, cborlite.Value(components))
	if p.SourceFingerprint != 0 {
		m.Set(2, uint64(p.SourceFingerprint))
	}
	if p.Depth != 0 {
		m.Set(3, uint64(p.Depth))
	}
	return cborlite.Tag{Number: TagKeyPath, Content: m}, nil
}

func decodeKeyPathContent(content cborlite.Value) (KeyPath, error) {
	m, ok := content.(*cborlite.Map)
	if !ok {
		return KeyPath{}, errors.New("registry: keypath content is not a CBOR map")
	}
	compsVal, ok := m.Get(1)
	if !ok {
		return KeyPath{}, errors.New("registry: keypath missing key 1 (components)")
	}
	arr, ok := compsVal.([]cborlite.Value)
	if !ok || len(arr)%2 != 0 {
		return KeyPath{}, errors.New("registry: keypath key 1 (components) must be a flat [index,hardened,...] array")
	}
	comps := make([]PathComponent, 0, len(arr)/2)
	for i := 0; i < len(arr); i += 2 {
		idx, ok := arr[i].(uint64)
		if !ok {
			return KeyPath{}, errors.Errorf("registry: keypath component %d index is not a uint", i/2)
		}
		hardened, ok := arr[i+1].(bool)
		if !ok {
			return KeyPath{}, errors.Errorf("registry: keypath component %d hardened flag is not a bool", i/2)
		}
		comps = append(comps, PathComponent{Index: uint32(idx), Hardened: hardened})
	}
	var p KeyPath
	p.Components = comps
	if v, ok := m.Get(2); ok {
		fp, ok := v.(uint64)
		if !ok {
			return KeyPath{}, errors.New("registry: keypath key 2 (source_fingerprint) is not a uint")
		}
		p.SourceFingerprint = uint32(fp)
	}
	if v, ok := m.Get(3); ok {
		d, ok := v.(uint64)
		if !ok {
			return KeyPath{}, errors.New("registry: keypath key 3 (depth) is not a uint")
		}
		p.Depth = uint32(d)
	}
	return p, nil
}

func DecodeKeyPath(data []byte) (KeyPath, error) {
	v, err := cborlite.Decode(data)
	if err != nil {
		return KeyPath{}, errors.Wrap(err, "registry: decoding keypath payload")
	}
	tag, ok := v.(cborlite.Tag)
	if !ok || tag.Number != TagKeyPath {
		return KeyPath{}, errors.New("registry: keypath payload is not tag 304")
	}
	return decodeKeyPathContent(tag.Content)
}

// ECKey is crypto-eckey (tag 306): a raw elliptic-curve key.
type ECKey struct {
	IsPrivate bool
	Data      []byte
}

func (k ECKey) Encode() (cborlite.Value, error) {
	if len(k.Data) == 0 {
		return nil, errors.New("registry: eckey requires key data")
	}
	m := cborlite.NewMap()
	if k.IsPrivate {
		m.Set(2, true)
	}
	m.Set(3, k.Data)
	return cborlite.Tag{Number: TagECKey, Content: m}, nil
}

func decodeECKeyContent(content cborlite.Value) (ECKey, error) {
	m, ok := content.(*cborlite.Map)
	if !ok {
		return ECKey{}, errors.New("registry: eckey content is not a CBOR map")
	}
	var k ECKey
	if v, ok := m.Get(2); ok {
		k.IsPrivate, _ = v.(bool)
	}
	dataVal, ok := m.Get(3)
	if !ok {
		return ECKey{}, errors.New("registry: eckey missing key 3 (data)")
	}
	k.Data, ok = dataVal.([]byte)
	if !ok {
		return ECKey{}, errors.New("registry: eckey key 3 (data) is not a byte string")
	}
	return k, nil
}

func DecodeECKey(data []byte) (ECKey, error) {
	v, err := cborlite.Decode(data)
	if err != nil {
		return ECKey{}, errors.Wrap(err, "registry: decoding eckey payload")
	}
	tag, ok := v.(cborlite.Tag)
	if !ok || tag.Number != TagECKey {
		return ECKey{}, errors.New("registry: eckey payload is not tag 306")
	}
	return decodeECKeyContent(tag.Content)
}
