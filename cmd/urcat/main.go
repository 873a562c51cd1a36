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

package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli"

	"github.com/blockchaincommons/bc-ur-go/fountain"
	"github.com/blockchaincommons/bc-ur-go/registry"
	"github.com/blockchaincommons/bc-ur-go/ur"
	"github.com/blockchaincommons/bc-ur-go/urconfig"
)

// VERSION is injected by buildflags.
var VERSION = "SELFBUILD"

func main() {
	if VERSION == "SELFBUILD" {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	myApp := cli.NewApp()
	myApp.Name = "urcat"
	myApp.Usage = "encode/decode Uniform Resources over stdin/stdout"
	myApp.Version = VERSION
	myApp.Commands = []cli.Command{
		encodeCommand,
		decodeCommand,
	}
	if err := myApp.Run(os.Args); err != nil {
		checkError(err)
	}
}

var encodeCommand = cli.Command{
	Name:  "encode",
	Usage: "read a payload from stdin and write a UR animation to stdout",
	Flags: []cli.Flag{
		cli.StringFlag{Name: "type", Value: "bytes", Usage: "UR type, e.g. bytes, crypto-psbt, crypto-bip39"},
		cli.IntFlag{Name: "min-frag", Value: 10, Usage: "minimum fountain fragment length"},
		cli.IntFlag{Name: "max-frag", Value: 200, Usage: "maximum fountain fragment length"},
		cli.IntFlag{Name: "count", Value: 0, Usage: "number of parts to emit for a multi-part stream, 0 for N (the systematic run only)"},
		cli.IntFlag{Name: "first-seq", Value: 0, Usage: "first fountain sequence number"},
		cli.BoolFlag{Name: "compress", Usage: "wrap the payload in a registry.Bytes envelope, snappy-compressed when it helps"},
		cli.IntFlag{Name: "animate", Value: 0, Usage: "loop the multi-part stream indefinitely, INTERVAL milliseconds between parts, until interrupted"},
		cli.StringFlag{Name: "c", Usage: "load encoder settings from a urconfig JSON file; explicit flags still override it"},
	},
	Action: func(c *cli.Context) error {
		payload, err := readAll(os.Stdin)
		if err != nil {
			return err
		}

		urType := c.String("type")
		minFrag := c.Int("min-frag")
		maxFrag := c.Int("max-frag")
		firstSeq := uint32(c.Int("first-seq"))
		compress := c.Bool("compress")
		animate := c.Int("animate")
		if cfgPath := c.String("c"); cfgPath != "" {
			cfg, err := urconfig.Load(cfgPath)
			if err != nil {
				return err
			}
			if !c.IsSet("type") {
				urType = cfg.Type
			}
			if !c.IsSet("min-frag") {
				minFrag = cfg.MinFragmentLen
			}
			if !c.IsSet("max-frag") {
				maxFrag = cfg.MaxFragmentLen
			}
			if !c.IsSet("first-seq") {
				firstSeq = cfg.FirstSeqNum
			}
			if !c.IsSet("compress") {
				compress = cfg.Compress
			}
			if !c.IsSet("animate") {
				animate = cfg.AnimateMS
			}
		}

		if compress {
			wrapped, err := registry.Bytes{Data: payload}.Encode()
			if err != nil {
				return err
			}
			payload = wrapped
		}

		enc, err := ur.NewEncoder(urType, payload, minFrag, maxFrag, firstSeq)
		if err != nil {
			return err
		}

		w := bufio.NewWriter(os.Stdout)
		defer w.Flush()

		if enc.IsSinglePart() {
			color.Yellow("single-part message: N=1, emitting once")
			part, err := enc.NextPart()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(w, part)
			return err
		}

		if animate > 0 {
			return animateParts(w, enc, time.Duration(animate)*time.Millisecond)
		}

		count := c.Int("count")
		if count == 0 {
			count = enc.SeqLen()
		}
		for i := 0; i < count; i++ {
			part, err := enc.NextPart()
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintln(w, part); err != nil {
				return err
			}
		}
		return nil
	},
}

// animateParts writes an endless fountain stream, one part every interval,
// until it receives an interrupt, the way client/signal.go listens for
// SIGUSR1 for the life of the process, adapted here to stop a loop instead
// of dumping counters.
func animateParts(w *bufio.Writer, enc *ur.Encoder, interval time.Duration) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	defer signal.Stop(stop)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return w.Flush()
		case <-ticker.C:
			part, err := enc.NextPart()
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintln(w, part); err != nil {
				return err
			}
			if err := w.Flush(); err != nil {
				return err
			}
		}
	}
}

var decodeCommand = cli.Command{
	Name:  "decode",
	Usage: "read UR strings (one per line) from stdin until complete, write the payload to stdout",
	Flags: []cli.Flag{
		cli.BoolFlag{Name: "cross-reduce", Usage: "enable the optional cross-reduction pass"},
		cli.Float64Flag{Name: "loss", Usage: "drop each incoming part with this probability, to rehearse lossy delivery"},
		cli.Int64Flag{Name: "seed", Usage: "seed for the --loss simulation's randomness"},
		cli.StringFlag{Name: "c", Usage: "load decoder settings from a urconfig JSON file"},
		cli.StringFlag{Name: "progress-log", Usage: "append decode progress rows (CSV) to this file as parts arrive"},
		cli.IntFlag{Name: "progress-interval", Value: 5, Usage: "seconds between --progress-log rows"},
		cli.BoolFlag{Name: "quiet", Usage: "suppress rejected-part warnings and the completion summary"},
	},
	Action: func(c *cli.Context) error {
		strategy := fountain.StrategyPlain
		if c.Bool("cross-reduce") {
			strategy = fountain.StrategyCrossReduce
		}
		loss := c.Float64("loss")
		seed := c.Int64("seed")
		quiet := c.Bool("quiet")
		if cfgPath := c.String("c"); cfgPath != "" {
			cfg, err := urconfig.Load(cfgPath)
			if err != nil {
				return err
			}
			if cfg.CrossReduce && !c.IsSet("cross-reduce") {
				strategy = fountain.StrategyCrossReduce
			}
			if !c.IsSet("loss") {
				loss = cfg.Loss
			}
			if !c.IsSet("seed") {
				seed = cfg.Seed
			}
			if !c.IsSet("quiet") {
				quiet = cfg.Quiet
			}
		}
		dec := ur.NewDecoder(strategy)

		if progressPath := c.String("progress-log"); progressPath != "" {
			stop := make(chan struct{})
			defer close(stop)
			go urconfig.ProgressLogger(progressPath, c.Int("progress-interval"), dec, stop)
		}

		rng := rand.New(rand.NewSource(seed))

		scanner := bufio.NewScanner(os.Stdin)
		scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
		for scanner.Scan() && !dec.IsComplete() {
			line := scanner.Text()
			if line == "" {
				continue
			}
			if loss > 0 && rng.Float64() < loss {
				continue
			}
			if ok, err := dec.Receive(line); !ok && err != nil && !quiet {
				color.Red("rejected part: %v", err)
			}
		}
		if err := scanner.Err(); err != nil {
			return err
		}

		if !dec.IsComplete() {
			return fmt.Errorf("urcat: input ended before decoding completed (%d/%d parts)", dec.ProcessedPartsCount(), dec.ExpectedPartCount())
		}
		msg, err := dec.ResultMessage()
		if err != nil {
			return err
		}
		if _, err := os.Stdout.Write(msg); err != nil {
			return err
		}
		if !quiet {
			log.Printf("urcat: decoded type=%s len=%d parts=%d/%d complete=%.1f%%",
				dec.Type(), len(msg), dec.ProcessedPartsCount(), dec.ExpectedPartCount(), dec.EstimatedPercentComplete()*100)
		}
		return nil
	},
}

func readAll(f *os.File) ([]byte, error) {
	r := bufio.NewReader(f)
	var out []byte
	buf := make([]byte, 64*1024)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			out = append(out, buf[:n]...)
		}
		if err != nil {
			if err == io.EOF {
				return out, nil
			}
			return nil, err
		}
	}
}

func checkError(err error) {
	if err != nil {
		log.Printf("%+v\n", err)
		os.Exit(-1)
	}
}
