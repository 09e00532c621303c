package main

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// evalInput is the JSON document read by "ubon eval".
type evalInput struct {
	Augmentation [][]float64 `json:"augmentation"`
	Features     [][]float64 `json:"features"`
}

func loadInput(path string) (*evalInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read input %q", path)
	}
	in := &evalInput{}
	if err := json.Unmarshal(data, in); err != nil {
		return nil, errors.Wrapf(err, "failed to parse input %q", path)
	}
	if len(in.Augmentation) == 0 {
		return nil, errors.Errorf("input %q has no augmentation matrix", path)
	}
	if len(in.Features) == 0 {
		return nil, errors.Errorf("input %q has no feature rows", path)
	}
	return in, nil
}
