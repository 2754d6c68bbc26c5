package pose

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// ErrMalformedFrame is returned for feed lines that are not landmark frames
var ErrMalformedFrame = errors.New("malformed landmark frame")

// maxLineSize bounds one feed line; 2 hands of 21 landmarks fit comfortably
const maxLineSize = 64 * 1024

// Frame is one estimator result
type Frame struct {
	Hands      []Hand
	ReceivedAt time.Time
}

// Estimator yields the most recent hand detections without blocking the game loop
type Estimator interface {
	Latest() (Frame, bool)
}

// ParseFrame decodes one feed line of the form
// {"hands":[[{"x":0.5,"y":0.4,"z":-0.1}, ...21 landmarks], ...]}
func ParseFrame(line []byte) (Frame, error) {
	if !gjson.ValidBytes(line) {
		return Frame{}, ErrMalformedFrame
	}
	root := gjson.ParseBytes(line)
	handsJSON := root.Get("hands")
	if !handsJSON.IsArray() {
		return Frame{}, fmt.Errorf("%w: missing hands array", ErrMalformedFrame)
	}

	var frame Frame
	for _, handJSON := range handsJSON.Array() {
		if !handJSON.IsArray() {
			return Frame{}, fmt.Errorf("%w: hand is not an array", ErrMalformedFrame)
		}
		points := handJSON.Array()
		hand := make(Hand, 0, len(points))
		for _, p := range points {
			x, y := p.Get("x"), p.Get("y")
			if x.Type != gjson.Number || y.Type != gjson.Number {
				return Frame{}, fmt.Errorf("%w: landmark without x/y", ErrMalformedFrame)
			}
			hand = append(hand, Landmark{X: x.Float(), Y: y.Float(), Z: p.Get("z").Float()})
		}
		frame.Hands = append(frame.Hands, hand)
	}
	return frame, nil
}

// StreamEstimator reads newline-delimited landmark frames written by an external
// pose estimator process and keeps the latest one for the game loop
type StreamEstimator struct {
	r      io.Reader
	log    *zap.Logger
	maxAge time.Duration
	now    func() time.Time

	mu     sync.Mutex
	latest Frame
	have   bool

	frames    atomic.Int64
	malformed atomic.Int64
}

// NewStreamEstimator reads from r; frames older than maxAge count as no detection
func NewStreamEstimator(r io.Reader, maxAge time.Duration, log *zap.Logger) *StreamEstimator {
	if log == nil {
		log = zap.NewNop()
	}
	return &StreamEstimator{r: r, log: log, maxAge: maxAge, now: time.Now}
}

// Run consumes the feed until EOF, a read error or ctx cancellation
// Lines longer than maxLineSize are discarded and counted as malformed
func (s *StreamEstimator) Run(ctx context.Context) error {
	br := bufio.NewReaderSize(s.r, maxLineSize)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := br.ReadSlice('\n')
		if errors.Is(err, bufio.ErrBufferFull) {
			s.malformed.Add(1)
			s.log.Debug("skip oversized landmark line", zap.Int("limit", maxLineSize))
			err = skipLine(br)
			line = nil
		}
		if line = bytes.TrimRight(line, "\r\n"); len(line) > 0 {
			s.accept(line)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read landmark feed: %w", err)
		}
	}
	s.log.Info("landmark feed closed", zap.Int64("frames", s.frames.Load()), zap.Int64("malformed", s.malformed.Load()))
	return nil
}

// skipLine drops the rest of the current line
func skipLine(br *bufio.Reader) error {
	for {
		_, err := br.ReadSlice('\n')
		if !errors.Is(err, bufio.ErrBufferFull) {
			return err
		}
	}
}

func (s *StreamEstimator) accept(line []byte) {
	frame, err := ParseFrame(line)
	if err != nil {
		s.malformed.Add(1)
		s.log.Debug("skip landmark line", zap.Error(err))
		return
	}
	frame.ReceivedAt = s.now()
	s.mu.Lock()
	s.latest = frame
	s.have = true
	s.mu.Unlock()
	s.frames.Add(1)
}

// Latest returns the newest frame if it is fresh enough
func (s *StreamEstimator) Latest() (Frame, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.have {
		return Frame{}, false
	}
	if s.maxAge > 0 && s.now().Sub(s.latest.ReceivedAt) > s.maxAge {
		return Frame{}, false
	}
	return s.latest, true
}

// Frames returns how many frames were accepted
func (s *StreamEstimator) Frames() int64 { return s.frames.Load() }

// Malformed returns how many feed lines were skipped
func (s *StreamEstimator) Malformed() int64 { return s.malformed.Load() }
