package rpc

import (
	"fmt"

	"google.golang.org/protobuf/proto"
)

type message interface {
	marshal() ([]byte, error)
	unmarshal([]byte) error
}

// Frame is an already-encoded message. The grpc-web bridge forwards frames
// without decoding them.
type Frame struct{ Data []byte }

func (f *Frame) marshal() ([]byte, error) { return f.Data, nil }

func (f *Frame) unmarshal(b []byte) error {
	f.Data = append([]byte(nil), b...)
	return nil
}

// Codec encodes the hand-written calendar messages and frames, and falls
// back to protobuf for generated messages such as the health service.
// It keeps the "proto" name so the wire content type is unchanged.
type Codec struct{}

func (Codec) Marshal(v any) ([]byte, error) {
	switch m := v.(type) {
	case message:
		return m.marshal()
	case proto.Message:
		return proto.Marshal(m)
	}
	return nil, fmt.Errorf("rpc codec: cannot marshal %T", v)
}

func (Codec) Unmarshal(data []byte, v any) error {
	switch m := v.(type) {
	case message:
		return m.unmarshal(data)
	case proto.Message:
		return proto.Unmarshal(data, m)
	}
	return fmt.Errorf("rpc codec: cannot unmarshal into %T", v)
}

func (Codec) Name() string { return "proto" }
