package sleeper

import (
	"errors"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
)

var errTrailingData = errors.New("sleeper: unexpected data after JSON value")

// decodeBody reads exactly one JSON value from r into v. empty reports a body with no value
// at all; anything other than whitespace after the value is an error.
func decodeBody(r io.Reader, v any) (empty bool, err error) {
	iter := jsoniter.Parse(jsonAPI, r, bodyBuffer)
	if iter.WhatIsNext() == jsoniter.InvalidValue && iter.Error == io.EOF {
		return true, nil
	}
	iter.ReadVal(v)
	if iter.Error != nil {
		return false, fmt.Errorf("sleeper: decode body: %w", iter.Error)
	}
	return false, expectEnd(iter)
}

// expectEnd succeeds only when the iterator has reached the end of its input.
func expectEnd(iter *jsoniter.Iterator) error {
	if iter.WhatIsNext() == jsoniter.InvalidValue && iter.Error == io.EOF {
		return nil
	}
	if iter.Error != nil && iter.Error != io.EOF {
		return fmt.Errorf("sleeper: decode body: %w", iter.Error)
	}
	return errTrailingData
}
