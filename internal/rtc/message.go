package rtc

import "github.com/vmihailenco/msgpack/v5"

// MessageTypeHello announces a participant on the presence channel.
const MessageTypeHello = "hello"

// Message represents all data channel messages.
type Message struct {
	Type    string             `msgpack:"type"`
	Payload msgpack.RawMessage `msgpack:"payload"`
}

// HelloPayload identifies a participant to its peer once the channel opens.
type HelloPayload struct {
	Email         string `msgpack:"email"`
	ClientVersion string `msgpack:"clientVersion"`
}

// DecodePayload decodes the message payload into the provided struct
func (m Message) DecodePayload(v any) error {
	return msgpack.Unmarshal(m.Payload, v)
}

// NewMessage creates a new Message with the given type and payload
func NewMessage(t string, payload any) (Message, error) {
	b, err := msgpack.Marshal(payload)
	if err != nil {
		return Message{}, err
	}

	return Message{
		Type:    t,
		Payload: b,
	}, nil
}
