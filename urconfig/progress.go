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

package urconfig

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// ProgressSource is the subset of ur.Decoder a progress logger needs.
type ProgressSource interface {
	ExpectedPartCount() int
	ProcessedPartsCount() int
	EstimatedPercentComplete() float64
	IsComplete() bool
}

// ProgressLogger periodically appends a CSV row of decode progress to
// path, the way std/snmp.go's SnmpLogger periodically appends KCP
// transport counters. It returns once src.IsComplete() or stop is closed.
func ProgressLogger(path string, interval int, src ProgressSource, stop <-chan struct{}) {
	if path == "" || interval == 0 {
		return
	}
	ticker := time.NewTicker(time.Duration(interval) * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			logProgressRow(path, src)
			if src.IsComplete() {
				return
			}
		}
	}
}

func logProgressRow(path string, src ProgressSource) {
	logdir, logfile := filepath.Split(path)
	f, err := os.OpenFile(logdir+time.Now().Format(logfile), os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Println(err)
		return
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if stat, err := f.Stat(); err == nil && stat.Size() == 0 {
		if err := w.Write([]string{"Unix", "ExpectedParts", "ProcessedParts", "PercentComplete"}); err != nil {
			log.Println(err)
		}
	}
	row := []string{
		fmt.Sprint(time.Now().Unix()),
		fmt.Sprint(src.ExpectedPartCount()),
		fmt.Sprint(src.ProcessedPartsCount()),
		fmt.Sprintf("%.4f", src.EstimatedPercentComplete()),
	}
	if err := w.Write(row); err != nil {
		log.Println(err)
	}
	w.Flush()
}
