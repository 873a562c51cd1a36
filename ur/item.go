package ur

// Item pairs a UR type with the message bytes it carries. Constructing one
// validates the type against the UR type grammar eagerly, so a bad type
// fails at the call site rather than silently surfacing later from
// NextPart.
type Item struct {
	Type    string
	Message []byte
}

// NewItem validates urType and returns the Item.
func NewItem(urType string, message []byte) (Item, error) {
	if err := validateType(urType); err != nil {
		return Item{}, err
	}
	return Item{Type: urType, Message: message}, nil
}

// NewEncoderFromItem is NewEncoder taking a pre-validated Item.
func NewEncoderFromItem(item Item, minFrag, maxFrag int, firstSeqNum uint32) (*Encoder, error) {
	return NewEncoder(item.Type, item.Message, minFrag, maxFrag, firstSeqNum)
}
