package prompt

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Snapshot serde for multi-shot resumptions.
//
// A multi-shot resumption is fully described by its prompt body, the
// body's argument, and the captured answer log. The log can be persisted
// when it holds only plain data: booleans, numbers, strings, nil, and
// lists or string-keyed maps thereof. Restored logs deliver values in the
// protobuf Value mapping (all numbers come back as float64), so bodies
// that round-trip through a snapshot should consume numeric answers as
// float64.

// MarshalSnapshot serializes the captured answer log of a multi-shot
// resumption. It fails on one-shot resumptions, whose suspended stack
// cannot be captured as data, and on logs holding values outside the
// plain-data subset.
func (r *Resume) MarshalSnapshot() ([]byte, error) {
	if !r.multi {
		return nil, errors.New("prompt: snapshot of a one-shot resumption")
	}
	list, err := structpb.NewList(r.snapshot)
	if err != nil {
		return nil, fmt.Errorf("prompt: snapshot answer log: %w", err)
	}
	return proto.Marshal(list)
}

// RestoreResume reconstructs a multi-shot resumption from a marshaled
// snapshot and the prompt body it was captured from. The caller must
// supply the same body and argument the original prompt ran with;
// replayed invocations re-run it against the restored log.
func RestoreResume(body Body, arg any, data []byte) (*Resume, error) {
	list := new(structpb.ListValue)
	if err := proto.Unmarshal(data, list); err != nil {
		return nil, fmt.Errorf("prompt: restore snapshot: %w", err)
	}
	return &Resume{
		multi:    true,
		body:     body,
		arg:      arg,
		snapshot: list.AsSlice(),
	}, nil
}
