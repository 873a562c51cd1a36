package registry

import (
	"github.com/pkg/errors"

	"github.com/blockchaincommons/bc-ur-go/cborlite"
)

// scriptExpressionTags are the tag numbers BCR-2020-010 reserves for
// script expressions: 307 (generic) plus the 400-410 range (one per
// standard script template: pkh, sh, wpkh, wsh, cosigner, multi, ...).
func isScriptExpressionTag(n uint64) bool {
	return n == TagScriptExpression || (n >= 400 && n <= 410)
}

// ScriptExpression is the tagged union BCR-2020-010 uses to wrap a key (or
// a nested script expression) with a script template tag. Content is left
// generic — the *cborlite.Map inside the Tag that HDKey.Encode/ECKey.Encode
// returns (its Content, not the Tag itself), or another ScriptExpression's
// encoded tag — since the set of templates is
// open-ended and the core only needs to carry it intact.
type ScriptExpression struct {
	Tag     uint64
	Content cborlite.Value
}

func (s ScriptExpression) Encode() (cborlite.Value, error) {
	if !isScriptExpressionTag(s.Tag) {
		return nil, errors.Errorf("registry: %d is not a script-expression tag (307 or 400-410)", s.Tag)
	}
	return cborlite.Tag{Number: s.Tag, Content: s.Content}, nil
}

// DecodeScriptExpression parses a complete script-expression CBOR item.
func DecodeScriptExpression(data []byte) (ScriptExpression, error) {
	v, err := cborlite.Decode(data)
	if err != nil {
		return ScriptExpression{}, errors.Wrap(err, "registry: decoding script-expression payload")
	}
	tag, ok := v.(cborlite.Tag)
	if !ok || !isScriptExpressionTag(tag.Number) {
		return ScriptExpression{}, errors.New("registry: payload is not a script-expression tag")
	}
	return ScriptExpression{Tag: tag.Number, Content: tag.Content}, nil
}

// AsHDKey interprets Content as an embedded crypto-hdkey, for templates
// that wrap an HD key directly (e.g. pkh, wpkh).
func (s ScriptExpression) AsHDKey() (HDKey, error) {
	return decodeHDKeyContent(s.Content)
}

// AsECKey interprets Content as an embedded crypto-eckey.
func (s ScriptExpression) AsECKey() (ECKey, error) {
	return decodeECKeyContent(s.Content)
}

// Output is crypto-output (tag 308): a script expression describing how a
// set of keys forms a spendable output.
type Output struct {
	Expression ScriptExpression
}

func (o Output) Encode() ([]byte, error) {
	exprVal, err := o.Expression.Encode()
	if err != nil {
		return nil, err
	}
	return cborlite.Encode(cborlite.Tag{Number: TagOutput, Content: exprVal})
}

func DecodeOutput(data []byte) (Output, error) {
	v, err := cborlite.Decode(data)
	if err != nil {
		return Output{}, errors.Wrap(err, "registry: decoding output payload")
	}
	tag, ok := v.(cborlite.Tag)
	if !ok || tag.Number != TagOutput {
		return Output{}, errors.New("registry: output payload is not tag 308")
	}
	inner, ok := tag.Content.(cborlite.Tag)
	if !ok || !isScriptExpressionTag(inner.Number) {
		return Output{}, errors.New("registry: output content is not a script-expression tag")
	}
	return Output{Expression: ScriptExpression{Tag: inner.Number, Content: inner.Content}}, nil
}
