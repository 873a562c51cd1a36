// The MIT License (MIT)
//
// # Copyright (c) 2016 xtaci
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package urconfig loads the encoder/decoder configuration surface
// (spec.md §6) from JSON, the way server/config.go loads its Config.
package urconfig

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// Config is the JSON-loadable surface over both the encoder's constructor
// parameters and cmd/urcat's own flags, so a whole invocation can be
// replayed from a file. MinFragmentLen defaults to 10 and MaxFragmentLen
// is required; FirstSeqNum defaults to 0. The decoder's resource bounds
// (MAX_MIXED_PARTS and MAX_DUPLICATE_TRACKING) are not configurable here;
// they are compile-time constants in package fountain.
type Config struct {
	MinFragmentLen int     `json:"min_fragment_len"`
	MaxFragmentLen int     `json:"max_fragment_len"`
	FirstSeqNum    uint32  `json:"first_seq_num"`
	Type           string  `json:"type"`
	CrossReduce    bool    `json:"cross_reduce"`
	Compress       bool    `json:"compress"`
	AnimateMS      int     `json:"animate_ms"`
	Loss           float64 `json:"loss"`
	Seed           int64   `json:"seed"`
	Quiet          bool    `json:"quiet"`
}

// Load reads and validates a Config from path.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "urconfig: opening config file")
	}
	defer file.Close()

	cfg := &Config{MinFragmentLen: 10}
	if err := json.NewDecoder(file).Decode(cfg); err != nil {
		return nil, errors.Wrap(err, "urconfig: parsing config file")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the fields a constructor call would otherwise reject,
// so a malformed config file is caught before any part is encoded.
func (c *Config) Validate() error {
	if c.MaxFragmentLen <= 0 {
		return errors.New("urconfig: max_fragment_len is required and must be positive")
	}
	if c.MinFragmentLen <= 0 {
		c.MinFragmentLen = 10
	}
	if c.MinFragmentLen > c.MaxFragmentLen {
		return errors.Errorf("urconfig: min_fragment_len (%d) exceeds max_fragment_len (%d)", c.MinFragmentLen, c.MaxFragmentLen)
	}
	if c.Type == "" {
		return errors.New("urconfig: type is required")
	}
	return nil
}
