package sleeper

import (
	"errors"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/preston-bernstein/fantasy-data-service/internal/domain/fantasy"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// decodePlayerDirectory reads the player directory one entry at a time so the raw payload is
// never held in memory. A null body yields an empty directory; null entries are skipped.
func decodePlayerDirectory(r io.Reader) (map[string]fantasy.Player, error) {
	iter := jsoniter.Parse(jsonAPI, r, playerStreamBuffer)
	players := make(map[string]fantasy.Player)

	switch iter.WhatIsNext() {
	case jsoniter.NilValue:
		iter.ReadNil()
		if err := iterError(iter); err != nil {
			return nil, err
		}
		if err := expectEnd(iter); err != nil {
			return nil, err
		}
		return players, nil
	case jsoniter.ObjectValue:
	default:
		if err := iterError(iter); err != nil {
			return nil, err
		}
		return nil, errors.New("sleeper: player directory is not an object")
	}

	var mapErr error
	iter.ReadMapCB(func(it *jsoniter.Iterator, key string) bool {
		if it.WhatIsNext() == jsoniter.NilValue {
			it.ReadNil()
			return true
		}
		var dto playerDTO
		it.ReadVal(&dto)
		if it.Error != nil {
			return false
		}
		player, err := mapPlayer(key, dto)
		if err != nil {
			mapErr = err
			return false
		}
		players[key] = player
		return true
	})
	if mapErr != nil {
		return nil, mapErr
	}
	if err := iterError(iter); err != nil {
		return nil, err
	}
	if err := expectEnd(iter); err != nil {
		return nil, err
	}
	return players, nil
}

func iterError(iter *jsoniter.Iterator) error {
	if iter.Error == nil {
		return nil
	}
	return fmt.Errorf("sleeper: decode player directory: %w", iter.Error)
}
